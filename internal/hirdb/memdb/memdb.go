// Package memdb is an in-memory reference implementation of
// hirdb.HirDatabase, built with a small Register-style builder API the
// way the teacher assembles its SymbolTable (symbols.SymbolTable's
// RegisterImplementation / RegisterInstanceMethod family in
// internal/symbols/symbol_table_implementations.go): the caller (a test,
// the demo CLI, or a future real crate-graph loader) populates a
// Database with AddX calls, then queries it through the hirdb.HirDatabase
// interface like any other implementation would.
//
// Every query here is a direct map lookup, except TypeForDef and
// ImplsInCrate, which compute their result afresh on each call; there is
// no caching because
// memdb itself is meant to be wrapped by internal/querycache, the same
// separation the teacher keeps between its SymbolTable (plain lookups)
// and its memoized evaluator-level caches.
package memdb

import (
	"fmt"

	"github.com/rust-type-core/hirty/internal/defs"
	"github.com/rust-type-core/hirty/internal/generics"
	"github.com/rust-type-core/hirty/internal/hir"
	"github.com/rust-type-core/hirty/internal/hirdb"
	"github.com/rust-type-core/hirty/internal/ids"
	"github.com/rust-type-core/hirty/internal/implblock"
	"github.com/rust-type-core/hirty/internal/implindex"
	"github.com/rust-type-core/hirty/internal/lower"
	"github.com/rust-type-core/hirty/internal/resolver"
	"github.com/rust-type-core/hirty/internal/ty"
)

// Database is a fully in-memory crate graph plus item table.
type Database struct {
	rootModules    map[ids.CrateID]ids.ModuleID
	children       map[ids.ModuleID][]ids.ModuleID
	implsByMod     map[ids.ModuleID][]hirdb.ImplEntry
	impls          map[ids.ImplID]implblock.Block
	implScope      map[ids.ImplID]*resolver.Scope
	defScope       map[ids.DefID]*resolver.Scope
	funcSigs       map[ids.DefID]hirdb.FunctionSig
	genericsOf     map[ids.DefID]*generics.Params
	variantData    map[ids.DefID]hirdb.VariantData
	parentEnum     map[ids.DefID]defs.AdtDef
	aliasBody      map[ids.DefID]hir.TypeRef
	constType      map[ids.DefID]hir.TypeRef
	adtCrate       map[ids.DefID]ids.CrateID
	variantsByEnum map[ids.DefID]map[string]ids.DefID
}

// New builds an empty Database ready for AddX calls.
func New() *Database {
	return &Database{
		rootModules:    make(map[ids.CrateID]ids.ModuleID),
		children:       make(map[ids.ModuleID][]ids.ModuleID),
		implsByMod:     make(map[ids.ModuleID][]hirdb.ImplEntry),
		impls:          make(map[ids.ImplID]implblock.Block),
		implScope:      make(map[ids.ImplID]*resolver.Scope),
		defScope:       make(map[ids.DefID]*resolver.Scope),
		funcSigs:       make(map[ids.DefID]hirdb.FunctionSig),
		genericsOf:     make(map[ids.DefID]*generics.Params),
		variantData:    make(map[ids.DefID]hirdb.VariantData),
		parentEnum:     make(map[ids.DefID]defs.AdtDef),
		aliasBody:      make(map[ids.DefID]hir.TypeRef),
		constType:      make(map[ids.DefID]hir.TypeRef),
		adtCrate:       make(map[ids.DefID]ids.CrateID),
		variantsByEnum: make(map[ids.DefID]map[string]ids.DefID),
	}
}

var _ hirdb.HirDatabase = (*Database)(nil)

// AddCrate registers krate's root module.
func (d *Database) AddCrate(krate ids.CrateID, root ids.ModuleID) {
	d.rootModules[krate] = root
}

// AddModule registers child as a direct submodule of parent. Modules are
// not recorded against a crate; crate ownership is tracked per ADT by
// AddAdt.
func (d *Database) AddModule(parent, child ids.ModuleID) {
	d.children[parent] = append(d.children[parent], child)
}

// AddImpl registers a fully built impl block, scoped by resolver header
// (the scope in effect while lowering its own target type and target
// trait -- its own generics visible, no Self yet) and, for an inherent
// impl's method bodies, whatever body scope the caller builds with
// WithSelf.
func (d *Database) AddImpl(module ids.ModuleID, block implblock.Block, headerScope *resolver.Scope) {
	d.implsByMod[module] = append(d.implsByMod[module], hirdb.ImplEntry{ID: block.ID})
	d.impls[block.ID] = block
	d.implScope[block.ID] = headerScope
}

// AddFunction registers a function's signature, generics and resolver.
func (d *Database) AddFunction(id ids.DefID, sig hirdb.FunctionSig, gp *generics.Params, scope *resolver.Scope) {
	d.funcSigs[id] = sig
	d.genericsOf[id] = gp
	d.defScope[id] = scope
}

// AddAdt registers a struct or enum's generics, resolver, variant data
// (its own fields, for a struct) and owning crate.
func (d *Database) AddAdt(id ids.DefID, krate ids.CrateID, gp *generics.Params, scope *resolver.Scope, data hirdb.VariantData) {
	d.genericsOf[id] = gp
	d.defScope[id] = scope
	d.adtCrate[id] = krate
	d.variantData[id] = data
}

// AddEnumVariant registers one variant's own name and field data under
// its parent enum; it inherits the parent enum's generics and resolver,
// so neither is set here (GenericParamsOf / ResolverOf redirect to the
// parent). name backs VariantByName, the lookup a qualified
// `Enum::Variant` path resolves its trailing segment through.
func (d *Database) AddEnumVariant(id ids.DefID, name string, parent defs.AdtDef, data hirdb.VariantData) {
	d.parentEnum[id] = parent
	d.variantData[id] = data
	byName, ok := d.variantsByEnum[parent.ID]
	if !ok {
		byName = make(map[string]ids.DefID)
		d.variantsByEnum[parent.ID] = byName
	}
	byName[name] = id
}

// AddTypeAlias registers a type alias's generics, resolver and body.
func (d *Database) AddTypeAlias(id ids.DefID, gp *generics.Params, scope *resolver.Scope, body hir.TypeRef) {
	d.genericsOf[id] = gp
	d.defScope[id] = scope
	d.aliasBody[id] = body
}

// AddConstOrStatic registers a const's or static's resolver and declared
// type reference.
func (d *Database) AddConstOrStatic(id ids.DefID, scope *resolver.Scope, typeRef hir.TypeRef) {
	d.defScope[id] = scope
	d.constType[id] = typeRef
}

// --- hirdb.HirDatabase ---

func (d *Database) TypeForDef(def defs.TypableDef, ns hirdb.Namespace) ty.Ty {
	return lower.TypeForDef(d, def, ns)
}

func (d *Database) ImplsInModule(module ids.ModuleID) []hirdb.ImplEntry {
	return d.implsByMod[module]
}

func (d *Database) ImplsInCrate(krate ids.CrateID) hirdb.CrateImpls {
	return implindex.Build(d, krate)
}

func (d *Database) Impl(id ids.ImplID) implblock.Block {
	block, ok := d.impls[id]
	if !ok {
		panic(fmt.Sprintf("memdb: unknown impl id %s", id))
	}
	return block
}

func (d *Database) RootModule(krate ids.CrateID) (ids.ModuleID, bool) {
	m, ok := d.rootModules[krate]
	return m, ok
}

func (d *Database) ChildModules(module ids.ModuleID) []ids.ModuleID {
	return d.children[module]
}

func (d *Database) CrateOf(def defs.AdtDef) (ids.CrateID, bool) {
	k, ok := d.adtCrate[def.ID]
	return k, ok
}

func (d *Database) FunctionSignature(f defs.ModuleDef) hirdb.FunctionSig {
	sig, ok := d.funcSigs[f.ID]
	if !ok {
		panic(fmt.Sprintf("memdb: unknown function %s", f.ID))
	}
	return sig
}

func (d *Database) GenericParamsOf(def defs.ModuleDef) *generics.Params {
	if gp, ok := d.genericsOf[def.ID]; ok {
		return gp
	}
	return generics.Empty
}

func (d *Database) ResolverOf(def defs.ModuleDef) hirdb.Resolver {
	scope, ok := d.defScope[def.ID]
	if !ok {
		panic(fmt.Sprintf("memdb: no resolver registered for %s", def.ID))
	}
	return scope
}

func (d *Database) ResolverForImplHeader(id ids.ImplID) hirdb.Resolver {
	scope, ok := d.implScope[id]
	if !ok {
		panic(fmt.Sprintf("memdb: no header resolver registered for impl %s", id))
	}
	return scope
}

func (d *Database) VariantDataOf(v defs.VariantDef) hirdb.VariantData {
	return d.variantData[v.ID]
}

func (d *Database) ParentEnumOf(v defs.VariantDef) defs.AdtDef {
	enum, ok := d.parentEnum[v.ID]
	if !ok {
		panic(fmt.Sprintf("memdb: %s is not a registered enum variant", v.ID))
	}
	return enum
}

func (d *Database) VariantByName(enum defs.AdtDef, name string) (defs.VariantDef, bool) {
	id, ok := d.variantsByEnum[enum.ID][name]
	if !ok {
		return defs.VariantDef{}, false
	}
	return defs.VariantDef{ID: id, Kind: defs.KindEnumVariant}, true
}

func (d *Database) TypeAliasBody(t defs.ModuleDef) hir.TypeRef {
	ref, ok := d.aliasBody[t.ID]
	if !ok {
		panic(fmt.Sprintf("memdb: unknown type alias %s", t.ID))
	}
	return ref
}

func (d *Database) ConstOrStaticType(dd defs.ModuleDef) hir.TypeRef {
	ref, ok := d.constType[dd.ID]
	if !ok {
		panic(fmt.Sprintf("memdb: unknown const/static %s", dd.ID))
	}
	return ref
}
