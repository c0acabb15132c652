// Package defs gives a name to the item-identity sum types the spec
// calls out (ModuleDef, TypableDef, CallableDef, AdtDef, VariantDef):
// small, closed tagged unions over a definition id and its item kind.
//
// They all share the same (ids.DefID, Kind) shape but are kept as
// distinct Go types rather than one shared struct, so that e.g. a
// CallableDef can't be passed where a TypableDef is expected without
// going through the narrowing conversions below -- the compiler enforces
// the "total mapping ModuleDef -> Option<TypableDef> drops Module and
// Trait" rule from spec.md §3 instead of a comment enforcing it.
package defs

import "github.com/rust-type-core/hirty/internal/ids"

// Kind tags which item a definition id names.
type Kind int

const (
	KindFunction Kind = iota
	KindStruct
	KindEnum
	KindEnumVariant
	KindTypeAlias
	KindConst
	KindStatic
	KindModule
	KindTrait
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "fn"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindEnumVariant:
		return "enum variant"
	case KindTypeAlias:
		return "type alias"
	case KindConst:
		return "const"
	case KindStatic:
		return "static"
	case KindModule:
		return "module"
	case KindTrait:
		return "trait"
	default:
		return "unknown def kind"
	}
}

// ModuleDef is anything a module can export: the full set of item kinds,
// including Module and Trait (which TypableDef excludes).
type ModuleDef struct {
	ID   ids.DefID
	Kind Kind
}

// TypableDef is a ModuleDef known not to be a Module or a Trait -- the
// set of items type_for_def knows how to build a declared type for.
type TypableDef struct {
	ID   ids.DefID
	Kind Kind
}

// CallableDef is a TypableDef known to be callable: a free function, a
// tuple-struct constructor, or a tuple-enum-variant constructor.
type CallableDef struct {
	ID   ids.DefID
	Kind Kind
}

// AdtDef is a TypableDef known to be a nominal algebraic data type: a
// struct or an enum. It is also the fingerprint key used by the impl
// index (spec.md C8).
type AdtDef struct {
	ID   ids.DefID
	Kind Kind
}

// VariantDef is the parent of a struct field or enum-variant field: a
// struct or a single enum variant.
type VariantDef struct {
	ID   ids.DefID
	Kind Kind
}

func Function(id ids.DefID) ModuleDef   { return ModuleDef{ID: id, Kind: KindFunction} }
func Struct(id ids.DefID) ModuleDef     { return ModuleDef{ID: id, Kind: KindStruct} }
func Enum(id ids.DefID) ModuleDef       { return ModuleDef{ID: id, Kind: KindEnum} }
func EnumVariant(id ids.DefID) ModuleDef { return ModuleDef{ID: id, Kind: KindEnumVariant} }
func TypeAlias(id ids.DefID) ModuleDef  { return ModuleDef{ID: id, Kind: KindTypeAlias} }
func Const(id ids.DefID) ModuleDef      { return ModuleDef{ID: id, Kind: KindConst} }
func Static(id ids.DefID) ModuleDef     { return ModuleDef{ID: id, Kind: KindStatic} }
func Module(id ids.DefID) ModuleDef     { return ModuleDef{ID: id, Kind: KindModule} }
func Trait(id ids.DefID) ModuleDef      { return ModuleDef{ID: id, Kind: KindTrait} }

// ToTypable implements the total `ModuleDef -> Option<TypableDef>`
// mapping from spec.md §3: every ModuleDef maps to a TypableDef except
// Module and Trait.
func ToTypable(d ModuleDef) (TypableDef, bool) {
	switch d.Kind {
	case KindModule, KindTrait:
		return TypableDef{}, false
	default:
		return TypableDef{ID: d.ID, Kind: d.Kind}, true
	}
}

// ToCallable narrows a TypableDef to a CallableDef when it is a
// Function, Struct or EnumVariant (CallableDef ⊆ TypableDef per §3).
func ToCallable(d TypableDef) (CallableDef, bool) {
	switch d.Kind {
	case KindFunction, KindStruct, KindEnumVariant:
		return CallableDef{ID: d.ID, Kind: d.Kind}, true
	default:
		return CallableDef{}, false
	}
}

// ToAdt narrows a TypableDef to an AdtDef when it is a Struct or Enum.
func ToAdt(d TypableDef) (AdtDef, bool) {
	switch d.Kind {
	case KindStruct, KindEnum:
		return AdtDef{ID: d.ID, Kind: d.Kind}, true
	default:
		return AdtDef{}, false
	}
}

// CallableAsTypable widens a CallableDef back to a TypableDef; every
// CallableDef is a TypableDef by construction.
func CallableAsTypable(d CallableDef) TypableDef {
	return TypableDef{ID: d.ID, Kind: d.Kind}
}
