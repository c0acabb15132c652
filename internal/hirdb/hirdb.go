// Package hirdb declares the collaborator contracts this core consumes
// (spec.md C9 / §6): HirDatabase and Resolver. The two interfaces live
// together in one package because they are mutually referential --
// Resolver.ResolvePath takes a HirDatabase, and several HirDatabase
// queries return a Resolver -- the same way rust-analyzer's `db` and
// `Resolver` types both live in the `hir` crate rather than being split
// across crates that would otherwise need to depend on each other.
//
// This package holds contracts only. internal/lower implements the pure
// C3/C4/C5 logic against these interfaces; internal/hirdb/memdb provides
// a concrete in-memory HirDatabase (and internal/resolver a concrete
// Resolver) for tests, the demo CLI, and as the thing internal/querycache
// wraps with memoization.
package hirdb

import (
	"github.com/rust-type-core/hirty/internal/defs"
	"github.com/rust-type-core/hirty/internal/generics"
	"github.com/rust-type-core/hirty/internal/hir"
	"github.com/rust-type-core/hirty/internal/ids"
	"github.com/rust-type-core/hirty/internal/implblock"
	"github.com/rust-type-core/hirty/internal/ty"
)

// Namespace distinguishes the type namespace from the value namespace, as
// both a path can resolve into and an item's declared type can inhabit.
type Namespace int

const (
	Types Namespace = iota
	Values
)

func (n Namespace) String() string {
	if n == Values {
		return "values"
	}
	return "types"
}

// ResolutionKind tags which case of Resolution is populated.
type ResolutionKind int

const (
	// ResNone marks "no resolution" (the path didn't resolve to
	// anything in the requested namespace).
	ResNone ResolutionKind = iota
	ResDef
	ResLocalBinding
	ResGenericParam
	ResSelfType
)

// Resolution is what resolving a name/path in a given namespace yields.
type Resolution struct {
	Kind ResolutionKind

	// Def is populated when Kind == ResDef.
	Def defs.ModuleDef

	// LocalName is populated when Kind == ResLocalBinding; it names the
	// local variable for diagnostics. Its presence in the type namespace
	// is a fatal invariant violation (spec.md §7.1) -- this core never
	// constructs one from the type namespace itself, only Resolver
	// implementations can, and a buggy one doing so is the bug.
	LocalName string

	// GenericParamIdx is populated when Kind == ResGenericParam: the
	// index of the generic parameter this name resolved to, in the
	// resolving definition's full parent-including range.
	GenericParamIdx int

	// Impl is populated when Kind == ResSelfType: the impl block whose
	// `Self` this path refers to.
	Impl implblock.Block
}

// PerNs pairs the type-namespace and value-namespace resolutions of one
// name/path lookup. Either half may be absent (Kind == ResNone).
type PerNs struct {
	Types  Resolution
	Values Resolution
}

// TakeTypes returns the type-namespace half.
func (p PerNs) TakeTypes() Resolution { return p.Types }

// TakeValues returns the value-namespace half.
func (p PerNs) TakeValues() Resolution { return p.Values }

// Resolver maps a name or path, in whatever scope it was constructed for
// (a function body, an impl block, a module), to a Resolution.
type Resolver interface {
	// ResolvePath resolves a path as far as name resolution can: item
	// lookup, generic parameter scoping, and `Self` inside an impl body.
	ResolvePath(db HirDatabase, path *hir.Path) PerNs

	// AllNames returns every name visible in this scope, for consumers
	// like completion (spec.md §6: "used by consumer subsystems"). This
	// core itself never calls it.
	AllNames(db HirDatabase) map[string]PerNs
}

// FunctionSig is a function's declared (not yet lowered) signature.
type FunctionSig struct {
	Name         string
	Params       []hir.TypeRef
	Ret          hir.TypeRef
	HasSelfParam bool
}

// Field is one field of a struct or enum variant, in declaration order.
type Field struct {
	Name string
	Type hir.TypeRef
}

// VariantData is the field list of a struct or a single enum variant.
// Fields == nil marks a unit struct/variant. IsTuple marks a tuple
// struct/variant as opposed to a record one; a struct has a constructor
// function type and signature only when IsTuple is set. The enum-variant
// constructor builders check only Fields == nil and do not read IsTuple.
type VariantData struct {
	Fields  []Field
	IsTuple bool
}

// HasFields reports whether this variant carries any fields at all
// (tuple or record) as opposed to being a unit struct/variant.
func (v VariantData) HasFields() bool { return v.Fields != nil }

// ImplEntry is one (impl_id) pairing yielded by ImplsInModule, ready to be
// materialized via Impl.
type ImplEntry struct {
	ID ids.ImplID
}

// HirDatabase is the read-only query surface this core is built against.
// A concrete implementation is expected to memoize every method here
// (spec.md §9 "Query memoization"). internal/hirdb/memdb memoizes
// nothing itself; wrapping it in internal/querycache memoizes
// ImplsInCrate only.
type HirDatabase interface {
	// TypeForDef builds the declared type of def in namespace ns
	// (spec.md C4, §4.3). This is the query type_for_def's
	// *implementation* lives in internal/lower; a HirDatabase forwards
	// to it, optionally memoized.
	TypeForDef(def defs.TypableDef, ns Namespace) ty.Ty

	// ImplsInModule yields every impl block declared directly in module
	// (not recursively), in declaration order.
	ImplsInModule(module ids.ModuleID) []ImplEntry

	// ImplsInCrate returns the memoized per-crate impl index (spec.md
	// C6). Rebuilding must be deterministic: two calls against the same
	// snapshot produce structurally equal indices.
	ImplsInCrate(krate ids.CrateID) CrateImpls

	// Impl materializes the full Block for an impl id.
	Impl(id ids.ImplID) implblock.Block

	// RootModule returns the crate's root module, if it has one.
	RootModule(krate ids.CrateID) (ids.ModuleID, bool)

	// ChildModules returns module's direct children, in declaration
	// order, for the module-walk in CrateImplBlocks' build (spec.md
	// §4.6).
	ChildModules(module ids.ModuleID) []ids.ModuleID

	// CrateOf returns the crate a nominal def belongs to, if any. Used
	// by method resolution's def_crate(ty) helper (spec.md C7).
	CrateOf(def defs.AdtDef) (ids.CrateID, bool)

	// FunctionSignature returns a function's declared signature.
	FunctionSignature(f defs.ModuleDef) FunctionSig

	// GenericParamsOf returns a definition's own GenericParams, chained
	// to its parent per spec.md C2 (enum -> variant, ADT/trait/impl ->
	// method).
	GenericParamsOf(def defs.ModuleDef) *generics.Params

	// ResolverOf returns the resolver scoped to def's own body/header
	// (its own generics are in scope, its own Self if it's inside an
	// impl, etc).
	ResolverOf(def defs.ModuleDef) Resolver

	// ResolverForImplHeader returns the resolver in scope while lowering
	// an impl block's own header (its target type and target trait): the
	// impl's own generic parameters are visible, Self is not (Self's
	// meaning depends on the very target type this resolver helps lower).
	ResolverForImplHeader(id ids.ImplID) Resolver

	// VariantDataOf returns the field list of a struct or enum variant.
	VariantDataOf(v defs.VariantDef) VariantData

	// ParentEnumOf returns an enum variant's owning enum.
	ParentEnumOf(v defs.VariantDef) defs.AdtDef

	// VariantByName looks up enum's variant named name, for resolving a
	// qualified `Enum::Variant` path (the trailing segment is not a name
	// in any lexical scope -- it only makes sense relative to the enum
	// the leading segment resolved to).
	VariantByName(enum defs.AdtDef, name string) (defs.VariantDef, bool)

	// TypeAliasBody returns a type alias's target type reference.
	TypeAliasBody(t defs.ModuleDef) hir.TypeRef

	// ConstOrStaticType returns a const's or static's declared type
	// reference.
	ConstOrStaticType(d defs.ModuleDef) hir.TypeRef
}

// CrateImpls is the memoized per-crate impl index built by
// internal/implindex (spec.md C6). It is declared here, not in
// internal/implindex, solely so HirDatabase.ImplsInCrate can name its
// return type without hirdb importing implindex (which itself needs
// HirDatabase to build the index -- that would be the cycle).
type CrateImpls interface {
	// LookupInherent returns every (module, impl) pair inherently
	// implementing ty, in module-walk order.
	LookupInherent(t ty.Ty) []ImplRef

	// LookupByTrait returns every (module, impl) pair implementing
	// trait, in module-walk order.
	LookupByTrait(trait ids.TraitID) []ImplRef
}

// ImplRef names one impl block's location within a crate's module tree.
type ImplRef struct {
	Module ids.ModuleID
	Impl   ids.ImplID
}
