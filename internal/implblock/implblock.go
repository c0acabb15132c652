// Package implblock models one `impl` block: its id, the module that
// owns it, its (syntactic, not-yet-lowered) target type, an optional
// target trait, its own generic parameters, and the items it declares.
// It is a leaf package (no dependency on hirdb/lower/implindex) so that
// all three of them can depend on it without a cycle -- mirroring how
// rust-analyzer's ImplBlock lives in the `impl_block` module, separate
// from both the query-database trait and the lowering/indexing code that
// consume it.
package implblock

import (
	"github.com/rust-type-core/hirty/internal/defs"
	"github.com/rust-type-core/hirty/internal/generics"
	"github.com/rust-type-core/hirty/internal/hir"
	"github.com/rust-type-core/hirty/internal/ids"
)

// ItemKind tags what an ImplItem declares. Only Method matters to this
// core's method resolution (spec.md C7); the others are carried so a
// higher layer (hover, completion) can see associated consts/types too.
type ItemKind int

const (
	ItemMethod ItemKind = iota
	ItemAssocConst
	ItemAssocType
)

// Item is one declaration inside an impl block's body.
type Item struct {
	Kind ItemKind
	// Fn is populated when Kind == ItemMethod: the function def id this
	// method lowers to via type_for_def(Function, Values).
	Fn defs.ModuleDef
}

// Block is one `impl` block.
type Block struct {
	ID     ids.ImplID
	Module ids.ModuleID

	// TargetType is the impl header's self-type, not yet lowered -- e.g.
	// the syntactic `Vec<T>` in `impl<T> Vec<T> { ... }`.
	TargetType hir.TypeRef

	// TargetTrait is non-nil for a trait impl (`impl Trait for Ty`) and
	// nil for an inherent impl (`impl Ty`).
	TargetTrait *ids.TraitID

	// Generics are this impl block's own generic parameters (the `<T>`
	// in `impl<T> Vec<T>`), with no parent -- an impl block is never
	// itself nested inside another generic scope. A method declared
	// inside the impl chains its own GenericParams off of this.
	Generics *generics.Params

	Items []Item
}

// IsInherent reports whether this is a plain `impl Ty { ... }` with no
// target trait.
func (b Block) IsInherent() bool { return b.TargetTrait == nil }
