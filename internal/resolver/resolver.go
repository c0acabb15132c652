// Package resolver provides an in-memory hirdb.Resolver: a per-scope
// name table plus a link to the enclosing scope's own table, the same
// layered-scope shape the teacher's SymbolTable uses for nested lexical
// scopes (internal/symbols/symbol_table_core.go's ScopeType stack), just
// resolving HIR paths into hirdb.Resolution instead of expression types.
package resolver

import (
	"github.com/rust-type-core/hirty/internal/defs"
	"github.com/rust-type-core/hirty/internal/hir"
	"github.com/rust-type-core/hirty/internal/hirdb"
	"github.com/rust-type-core/hirty/internal/implblock"
)

// entry is one namespace's worth of names visible in a Scope.
type entry struct {
	defs       map[string]defs.ModuleDef
	locals     map[string]struct{}
	genericIdx map[string]int
}

func newEntry() entry {
	return entry{
		defs:       make(map[string]defs.ModuleDef),
		locals:     make(map[string]struct{}),
		genericIdx: make(map[string]int),
	}
}

func (e entry) resolve(name string) hirdb.Resolution {
	if idx, ok := e.genericIdx[name]; ok {
		return hirdb.Resolution{Kind: hirdb.ResGenericParam, GenericParamIdx: idx}
	}
	if _, ok := e.locals[name]; ok {
		return hirdb.Resolution{Kind: hirdb.ResLocalBinding, LocalName: name}
	}
	if def, ok := e.defs[name]; ok {
		return hirdb.Resolution{Kind: hirdb.ResDef, Def: def}
	}
	return hirdb.Resolution{Kind: hirdb.ResNone}
}

// Scope is one resolver scope (a module, a function body, an impl
// block's header), chained to its parent. Construction only ever adds
// names; nothing here mutates once the Define calls are done, so a *Scope
// can be shared freely across queries.
type Scope struct {
	parent *Scope
	types  entry
	values entry

	// selfImpl is non-nil when this scope is an impl block's body scope
	// (built by WithSelf), making `Self` resolve to ResSelfType.
	selfImpl *implblock.Block
}

var _ hirdb.Resolver = (*Scope)(nil)

// NewRootScope builds an empty top-level scope (a crate root module with
// nothing imported yet).
func NewRootScope() *Scope {
	return &Scope{types: newEntry(), values: newEntry()}
}

// Nested builds a child scope of s, inheriting everything s resolves
// while allowing its own additional names to shadow s's.
func (s *Scope) Nested() *Scope {
	return &Scope{parent: s, types: newEntry(), values: newEntry()}
}

// WithSelf returns a new child scope of s with `Self` bound to impl's
// target.
func (s *Scope) WithSelf(impl implblock.Block) *Scope {
	child := s.Nested()
	child.selfImpl = &impl
	return child
}

// DefineType binds name to def in the type namespace of this scope.
func (s *Scope) DefineType(name string, def defs.ModuleDef) { s.types.defs[name] = def }

// DefineValue binds name to def in the value namespace of this scope.
func (s *Scope) DefineValue(name string, def defs.ModuleDef) { s.values.defs[name] = def }

// DefineLocal binds name as a local variable in the value namespace.
// Local bindings never belong in the type namespace (spec.md §7.1) --
// there is deliberately no DefineLocalType.
func (s *Scope) DefineLocal(name string) { s.values.locals[name] = struct{}{} }

// DefineGenericParam binds name to generic parameter index idx, visible
// in the type namespace only.
func (s *Scope) DefineGenericParam(name string, idx int) { s.types.genericIdx[name] = idx }

// ResolvePath implements hirdb.Resolver. Single-identifier paths resolve
// against this in-memory scope chain directly. A two-segment path
// resolves against whatever the leading segment names: today that means
// `Enum::Variant` (the qualified form substsFromPath's enum-variant
// precedence branch exists to serve), resolved through
// db.VariantByName against the enum the leading segment resolves to.
// Any other multi-segment path (a qualified `module::Item` path) is out
// of scope for this reference resolver and resolves to ResNone in both
// namespaces, the same way an unresolved import resolves to nothing
// rather than panicking.
func (s *Scope) ResolvePath(db hirdb.HirDatabase, path *hir.Path) hirdb.PerNs {
	if name, ok := path.SingleIdent(); ok {
		return s.resolveIdent(name)
	}

	if len(path.Segments) == 2 {
		lead := s.resolveIdent(path.Segments[0].Name)
		if lead.Types.Kind == hirdb.ResDef && lead.Types.Def.Kind == defs.KindEnum {
			enum := defs.AdtDef{ID: lead.Types.Def.ID, Kind: defs.KindEnum}
			if variant, ok := db.VariantByName(enum, path.Segments[1].Name); ok {
				res := hirdb.Resolution{Kind: hirdb.ResDef, Def: defs.ModuleDef{ID: variant.ID, Kind: defs.KindEnumVariant}}
				return hirdb.PerNs{Types: res, Values: res}
			}
		}
	}
	return hirdb.PerNs{}
}

// resolveIdent resolves a bare identifier -- `Self`, a generic param, a
// local binding, or a def name -- against this scope chain.
func (s *Scope) resolveIdent(name string) hirdb.PerNs {
	if name == "Self" {
		if impl, scope := s.findSelf(); scope != nil {
			res := hirdb.Resolution{Kind: hirdb.ResSelfType, Impl: *impl}
			return hirdb.PerNs{Types: res}
		}
	}

	for cur := s; cur != nil; cur = cur.parent {
		typesRes := cur.types.resolve(name)
		valuesRes := cur.values.resolve(name)
		if typesRes.Kind != hirdb.ResNone || valuesRes.Kind != hirdb.ResNone {
			return hirdb.PerNs{Types: typesRes, Values: valuesRes}
		}
	}
	return hirdb.PerNs{}
}

// AllNames returns every name visible from this scope, innermost
// shadowing outermost, for consumers like completion (spec.md §6); this
// core's own lowering and method resolution never call it.
func (s *Scope) AllNames(db hirdb.HirDatabase) map[string]hirdb.PerNs {
	out := make(map[string]hirdb.PerNs)
	chain := make([]*Scope, 0)
	for cur := s; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		cur := chain[i]
		for name := range cur.types.defs {
			out[name] = hirdb.PerNs{Types: cur.types.resolve(name), Values: out[name].Values}
		}
		for name := range cur.types.genericIdx {
			out[name] = hirdb.PerNs{Types: cur.types.resolve(name), Values: out[name].Values}
		}
		for name := range cur.values.defs {
			p := out[name]
			p.Values = cur.values.resolve(name)
			out[name] = p
		}
		for name := range cur.values.locals {
			p := out[name]
			p.Values = cur.values.resolve(name)
			out[name] = p
		}
	}
	return out
}

func (s *Scope) findSelf() (*implblock.Block, *Scope) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.selfImpl != nil {
			return cur.selfImpl, cur
		}
	}
	return nil, nil
}
