// Package lower implements the pure HIR->Ty lowering and item-type-
// building logic (spec.md C3, C4, C5): Ty.FromHir, Ty.FromHirPath,
// TypeForDef and CallableItemSig. Every function here is total and takes
// its collaborators (a hirdb.HirDatabase, a hirdb.Resolver) as explicit
// parameters, exactly as rust-analyzer's `Ty::from_hir(db, resolver, ..)`
// does -- no package-level state, nothing memoized here (memoization, if
// any, lives one layer up in internal/querycache).
package lower

import (
	"fmt"

	"github.com/rust-type-core/hirty/internal/config"
	"github.com/rust-type-core/hirty/internal/defs"
	"github.com/rust-type-core/hirty/internal/generics"
	"github.com/rust-type-core/hirty/internal/hir"
	"github.com/rust-type-core/hirty/internal/hirdb"
	"github.com/rust-type-core/hirty/internal/implblock"
	"github.com/rust-type-core/hirty/internal/ty"
)

// FromHir lowers a syntactic type reference to a Ty. Total: every
// TypeRef variant maps to exactly one Ty shape (spec.md §4.1 table).
func FromHir(db hirdb.HirDatabase, resolver hirdb.Resolver, ref hir.TypeRef) ty.Ty {
	switch t := ref.(type) {
	case hir.Never:
		return ty.Never
	case hir.Placeholder:
		return ty.Unknown
	case hir.Error:
		return ty.Unknown
	case hir.Tuple:
		elems := make([]ty.Ty, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = FromHir(db, resolver, e)
		}
		return ty.Tuple{Elems: elems}
	case hir.Reference:
		return ty.Ref{Inner: FromHir(db, resolver, t.Inner), Mut: t.Mut}
	case hir.RawPtr:
		return ty.RawPtr{Inner: FromHir(db, resolver, t.Inner), Mut: t.Mut}
	case hir.Array:
		return ty.Array{Elem: FromHir(db, resolver, t.Elem)}
	case hir.Slice:
		return ty.Slice{Elem: FromHir(db, resolver, t.Elem)}
	case hir.Fn:
		params := make([]ty.Ty, len(t.ParamsAndReturn))
		for i, p := range t.ParamsAndReturn {
			params[i] = FromHir(db, resolver, p)
		}
		return ty.FnPtr{Sig: ty.FnSig{ParamsAndReturn: params}}
	case *hir.Path:
		return FromHirPath(db, resolver, t)
	default:
		panic(fmt.Sprintf("lower: unhandled TypeRef variant %T", ref))
	}
}

// FromHirPath resolves a path in the type namespace and applies whatever
// generic arguments it carries (spec.md §4.1, steps 1-5).
func FromHirPath(db hirdb.HirDatabase, resolver hirdb.Resolver, path *hir.Path) ty.Ty {
	// 1. Single-segment primitive shortcut -- does not touch the
	// resolver at all (spec.md §8 boundary behavior: "a single-identifier
	// path `u32` returns Int(u32) without invoking the resolver").
	if name, ok := path.SingleIdent(); ok {
		if intKind, ok := ty.UncertainIntTyFromName(name); ok {
			return ty.Int{Kind: intKind}
		}
		if floatKind, ok := ty.UncertainFloatTyFromName(name); ok {
			return ty.Float{Kind: floatKind}
		}
		switch name {
		case config.BoolName:
			return ty.Bool
		case config.CharName:
			return ty.Char
		case config.StrName:
			return ty.Str
		}
	}

	// 2. Resolve the path in the type namespace.
	res := resolver.ResolvePath(db, path).TakeTypes()
	switch res.Kind {
	case hirdb.ResNone:
		return ty.Unknown
	case hirdb.ResLocalBinding:
		panic("lower: path resolved to a local binding in the type namespace")
	case hirdb.ResGenericParam:
		name, ok := path.SingleIdent()
		if !ok {
			panic("lower: generic-param resolution for a multi-segment path")
		}
		return ty.Param{Idx: res.GenericParamIdx, Name: name}
	case hirdb.ResSelfType:
		return targetTy(db, res.Impl)

	case hirdb.ResDef:
		// fall through below
	default:
		panic(fmt.Sprintf("lower: unhandled Resolution.Kind %v", res.Kind))
	}

	typable, ok := defs.ToTypable(res.Def)
	if !ok {
		// Resolved to a Module or a Trait -- not typable.
		return ty.Unknown
	}

	// An enum variant has no type of its own in the type namespace --
	// `type_for_def` only builds types for struct/enum/alias there. A
	// path resolving to a variant (Option::None, Option::Some(1)'s
	// callee type, ...) names its *parent enum's* Adt type instead, with
	// the variant's own generic arguments (spec.md §4.2's enum-variant
	// precedence branch) substituted into it.
	var base ty.Ty
	if typable.Kind == defs.KindEnumVariant {
		enum := db.ParentEnumOf(defs.VariantDef{ID: typable.ID, Kind: typable.Kind})
		base = typeForEnum(db, defs.TypableDef{ID: enum.ID, Kind: enum.Kind})
	} else {
		base = TypeForDef(db, typable, hirdb.Types)
	}
	substs := substsFromPath(db, resolver, path, typable)
	return ty.Subst(base, substs)
}

// targetTy lowers an impl block's header self-type (spec.md §4.4). `Self`
// inside `impl<T> Vec<T> { .. }` is `Vec<T>` with `T` bound as a Param in
// the impl's own generic scope, lowered under the impl-header resolver
// (which sees the impl's own generics but not Self itself).
func targetTy(db hirdb.HirDatabase, impl implblock.Block) ty.Ty {
	resolver := db.ResolverForImplHeader(impl.ID)
	return FromHir(db, resolver, impl.TargetType)
}

// genericParamsOfResolved returns the GenericParams that govern resolved:
// an enum variant's substs are keyed on its *parent enum's* params, a
// const/static has none.
func genericParamsOfResolved(db hirdb.HirDatabase, resolved defs.TypableDef) *generics.Params {
	switch resolved.Kind {
	case defs.KindConst, defs.KindStatic:
		return generics.Empty
	case defs.KindEnumVariant:
		v := defs.VariantDef{ID: resolved.ID, Kind: resolved.Kind}
		parent := db.ParentEnumOf(v)
		return db.GenericParamsOf(defs.ModuleDef{ID: parent.ID, Kind: parent.Kind})
	default:
		return db.GenericParamsOf(defs.ModuleDef{ID: resolved.ID, Kind: resolved.Kind})
	}
}

// substsFromPath determines which path segment carries the generic
// arguments (spec.md §4.2): the last segment for everything except enum
// variants, where the enum segment wins if *it* has explicit args
// (`Option::<T>::None` over `Option::None::<T>` when both are present).
func substsFromPath(db hirdb.HirDatabase, resolver hirdb.Resolver, path *hir.Path, resolved defs.TypableDef) ty.Substs {
	if len(path.Segments) == 0 {
		panic("lower: path with no segments")
	}
	last := path.Segments[len(path.Segments)-1]
	segment := last
	if resolved.Kind == defs.KindEnumVariant {
		n := len(path.Segments)
		if n >= 2 && path.Segments[n-2].HasArgs() {
			segment = path.Segments[n-2]
		}
	}
	return substsFromPathSegment(db, resolver, segment, resolved)
}

// substsFromPathSegment builds the Substs for one path segment (spec.md
// §4.2): parent-params leading Unknowns, then as many lowered type
// arguments as the segment supplies (capped at the definition's own
// param count), then Unknown padding up to the full count.
func substsFromPathSegment(db hirdb.HirDatabase, resolver hirdb.Resolver, segment hir.PathSegment, resolved defs.TypableDef) ty.Substs {
	defGenerics := genericParamsOfResolved(db, resolved)

	substs := make(ty.Substs, 0, defGenerics.CountParamsIncludingParent())
	for i := 0; i < defGenerics.CountParentParams(); i++ {
		substs = append(substs, ty.Unknown)
	}

	if segment.ArgsAndBindings != nil {
		ownParamCount := defGenerics.CountOwnParams()
		args := segment.ArgsAndBindings.Args
		if len(args) > ownParamCount {
			args = args[:ownParamCount]
		}
		for _, arg := range args {
			substs = append(substs, FromHir(db, resolver, arg.Type))
		}
	}

	for len(substs) < defGenerics.CountParamsIncludingParent() {
		substs = append(substs, ty.Unknown)
	}

	if len(substs) != defGenerics.CountParamsIncludingParent() {
		panic("lower: substs length mismatch after padding")
	}
	return substs
}

// TypeForDef builds the declared type of def in namespace ns (spec.md C4,
// §4.3). A struct has two types: its own type in the type namespace, and
// its tuple-constructor function type in the value namespace; every
// combination that doesn't make sense (a function's "type" in the type
// namespace, say) returns Unknown rather than panicking -- these are
// ordinary query misuses, not the fatal invariant breaches spec.md §7
// calls out.
func TypeForDef(db hirdb.HirDatabase, def defs.TypableDef, ns hirdb.Namespace) ty.Ty {
	switch {
	case def.Kind == defs.KindFunction && ns == hirdb.Values:
		return typeForFn(db, def)
	case def.Kind == defs.KindStruct && ns == hirdb.Types:
		return typeForStruct(db, def)
	case def.Kind == defs.KindStruct && ns == hirdb.Values:
		return typeForStructConstructor(db, def)
	case def.Kind == defs.KindEnum && ns == hirdb.Types:
		return typeForEnum(db, def)
	case def.Kind == defs.KindEnumVariant && ns == hirdb.Values:
		return typeForEnumVariantConstructor(db, def)
	case def.Kind == defs.KindTypeAlias && ns == hirdb.Types:
		return typeForTypeAlias(db, def)
	case def.Kind == defs.KindConst && ns == hirdb.Values:
		return typeForConstOrStatic(db, def)
	case def.Kind == defs.KindStatic && ns == hirdb.Values:
		return typeForConstOrStatic(db, def)
	default:
		return ty.Unknown
	}
}

// CallableItemSig builds the signature of a callable item: a free
// function, or a tuple struct/enum-variant constructor (spec.md C5).
func CallableItemSig(db hirdb.HirDatabase, def defs.CallableDef) ty.FnSig {
	typable := defs.CallableAsTypable(def)
	switch def.Kind {
	case defs.KindFunction:
		return fnSigForFn(db, typable)
	case defs.KindStruct:
		return fnSigForStructConstructor(db, typable)
	case defs.KindEnumVariant:
		return fnSigForEnumVariantConstructor(db, typable)
	default:
		panic(fmt.Sprintf("lower: CallableItemSig called on non-callable kind %v", def.Kind))
	}
}

// TypeForField builds the type of one field of a struct or enum variant,
// lowered under the owning struct's (or owning enum's, for a variant
// field) resolver.
func TypeForField(db hirdb.HirDatabase, parent defs.VariantDef, fieldIdx int) ty.Ty {
	var resolver hirdb.Resolver
	if parent.Kind == defs.KindEnumVariant {
		enum := db.ParentEnumOf(parent)
		resolver = db.ResolverOf(defs.ModuleDef{ID: enum.ID, Kind: enum.Kind})
	} else {
		resolver = db.ResolverOf(defs.ModuleDef{ID: parent.ID, Kind: parent.Kind})
	}
	data := db.VariantDataOf(parent)
	if data.Fields == nil {
		panic("lower: TypeForField called on a unit struct/variant")
	}
	return FromHir(db, resolver, data.Fields[fieldIdx].Type)
}

func fnSigForFn(db hirdb.HirDatabase, def defs.TypableDef) ty.FnSig {
	module := defs.ModuleDef{ID: def.ID, Kind: def.Kind}
	sig := db.FunctionSignature(module)
	resolver := db.ResolverOf(module)
	params := make([]ty.Ty, len(sig.Params))
	for i, p := range sig.Params {
		params[i] = FromHir(db, resolver, p)
	}
	ret := FromHir(db, resolver, sig.Ret)
	return ty.FromParamsAndReturn(params, ret)
}

// typeForFn builds a function's declared item type: this never needs to
// look at its body, only its signature's generic arity.
func typeForFn(db hirdb.HirDatabase, def defs.TypableDef) ty.Ty {
	module := defs.ModuleDef{ID: def.ID, Kind: def.Kind}
	callable, ok := defs.ToCallable(def)
	if !ok {
		panic("lower: typeForFn called on a non-callable def")
	}
	gp := db.GenericParamsOf(module)
	return ty.FnDef{Def: callable, Substs: makeSubsts(gp)}
}

func typeForConstOrStatic(db hirdb.HirDatabase, def defs.TypableDef) ty.Ty {
	module := defs.ModuleDef{ID: def.ID, Kind: def.Kind}
	resolver := db.ResolverOf(module)
	ref := db.ConstOrStaticType(module)
	return FromHir(db, resolver, ref)
}

func fnSigForStructConstructor(db hirdb.HirDatabase, def defs.TypableDef) ty.FnSig {
	v := defs.VariantDef{ID: def.ID, Kind: def.Kind}
	data := db.VariantDataOf(v)
	if !data.IsTuple {
		panic("lower: fnSigForStructConstructor called on a unit or record struct")
	}
	module := defs.ModuleDef{ID: def.ID, Kind: def.Kind}
	resolver := db.ResolverOf(module)
	params := make([]ty.Ty, len(data.Fields))
	for i, f := range data.Fields {
		params[i] = FromHir(db, resolver, f.Type)
	}
	ret := typeForStruct(db, def)
	return ty.FromParamsAndReturn(params, ret)
}

// typeForStructConstructor builds the type of a tuple struct constructor
// (a unit or record struct has none -- its value-namespace type is just
// its own type).
func typeForStructConstructor(db hirdb.HirDatabase, def defs.TypableDef) ty.Ty {
	v := defs.VariantDef{ID: def.ID, Kind: def.Kind}
	data := db.VariantDataOf(v)
	if !data.IsTuple {
		return typeForStruct(db, def)
	}
	module := defs.ModuleDef{ID: def.ID, Kind: def.Kind}
	callable, _ := defs.ToCallable(def)
	gp := db.GenericParamsOf(module)
	return ty.FnDef{Def: callable, Substs: makeSubsts(gp)}
}

func fnSigForEnumVariantConstructor(db hirdb.HirDatabase, def defs.TypableDef) ty.FnSig {
	v := defs.VariantDef{ID: def.ID, Kind: def.Kind}
	data := db.VariantDataOf(v)
	if data.Fields == nil {
		panic("lower: fnSigForEnumVariantConstructor called on a unit variant")
	}
	enum := db.ParentEnumOf(v)
	enumModule := defs.ModuleDef{ID: enum.ID, Kind: enum.Kind}
	resolver := db.ResolverOf(enumModule)
	params := make([]ty.Ty, len(data.Fields))
	for i, f := range data.Fields {
		params[i] = FromHir(db, resolver, f.Type)
	}
	gp := db.GenericParamsOf(enumModule)
	substs := makeSubsts(gp)
	enumTypable := defs.TypableDef{ID: enum.ID, Kind: enum.Kind}
	ret := ty.Subst(typeForEnum(db, enumTypable), substs)
	return ty.FromParamsAndReturn(params, ret)
}

// typeForEnumVariantConstructor builds the type of a tuple enum-variant
// constructor (a unit variant has none -- its "constructor" is just its
// parent enum's own type).
func typeForEnumVariantConstructor(db hirdb.HirDatabase, def defs.TypableDef) ty.Ty {
	v := defs.VariantDef{ID: def.ID, Kind: def.Kind}
	data := db.VariantDataOf(v)
	enum := db.ParentEnumOf(v)
	enumTypable := defs.TypableDef{ID: enum.ID, Kind: enum.Kind}
	if data.Fields == nil {
		return typeForEnum(db, enumTypable)
	}
	callable, _ := defs.ToCallable(def)
	enumModule := defs.ModuleDef{ID: enum.ID, Kind: enum.Kind}
	gp := db.GenericParamsOf(enumModule)
	return ty.FnDef{Def: callable, Substs: makeSubsts(gp)}
}

// makeSubsts builds the identity Substs `[Param{0}, ..., Param{n-1}]` for
// a definition's own full parent-including parameter list -- the substs
// an item's own declared type carries before any use-site substitution.
func makeSubsts(params *generics.Params) ty.Substs {
	return ty.IdentitySubsts(params.ParamsIncludingParent())
}

func typeForStruct(db hirdb.HirDatabase, def defs.TypableDef) ty.Ty {
	module := defs.ModuleDef{ID: def.ID, Kind: def.Kind}
	adt, ok := defs.ToAdt(def)
	if !ok {
		panic("lower: typeForStruct called on a non-struct def")
	}
	gp := db.GenericParamsOf(module)
	return ty.Adt{DefID: adt, Substs: makeSubsts(gp)}
}

func typeForEnum(db hirdb.HirDatabase, def defs.TypableDef) ty.Ty {
	module := defs.ModuleDef{ID: def.ID, Kind: def.Kind}
	adt, ok := defs.ToAdt(def)
	if !ok {
		panic("lower: typeForEnum called on a non-enum def")
	}
	gp := db.GenericParamsOf(module)
	return ty.Adt{DefID: adt, Substs: makeSubsts(gp)}
}

func typeForTypeAlias(db hirdb.HirDatabase, def defs.TypableDef) ty.Ty {
	module := defs.ModuleDef{ID: def.ID, Kind: def.Kind}
	gp := db.GenericParamsOf(module)
	resolver := db.ResolverOf(module)
	ref := db.TypeAliasBody(module)
	substs := makeSubsts(gp)
	inner := FromHir(db, resolver, ref)
	return ty.Subst(inner, substs)
}
