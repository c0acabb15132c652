package lower_test

import (
	"testing"

	"github.com/rust-type-core/hirty/internal/defs"
	"github.com/rust-type-core/hirty/internal/generics"
	"github.com/rust-type-core/hirty/internal/hir"
	"github.com/rust-type-core/hirty/internal/hirdb"
	"github.com/rust-type-core/hirty/internal/hirdb/memdb"
	"github.com/rust-type-core/hirty/internal/ids"
	"github.com/rust-type-core/hirty/internal/implblock"
	"github.com/rust-type-core/hirty/internal/lower"
	"github.com/rust-type-core/hirty/internal/resolver"
	"github.com/rust-type-core/hirty/internal/ty"
)

func TestFromHirPrimitiveShortcutBypassesResolver(t *testing.T) {
	db := memdb.New()
	// A resolver that panics on any ResolvePath call -- the shortcut must
	// never reach it.
	var panicking hirdb.Resolver = panicResolver{}

	got := lower.FromHir(db, panicking, hir.NewPath("u32"))
	if got != (ty.Int{Kind: ty.IntU32}) {
		t.Errorf("FromHir(u32) = %v, want Int{U32}", got)
	}

	got = lower.FromHir(db, panicking, hir.NewPath("bool"))
	if got != ty.Bool {
		t.Errorf("FromHir(bool) = %v, want Bool", got)
	}

	got = lower.FromHir(db, panicking, hir.NewPath("f64"))
	if got != (ty.Float{Kind: ty.FloatF64}) {
		t.Errorf("FromHir(f64) = %v, want Float{F64}", got)
	}
}

type panicResolver struct{}

func (panicResolver) ResolvePath(db hirdb.HirDatabase, path *hir.Path) hirdb.PerNs {
	panic("ResolvePath should not be called for a primitive name")
}
func (panicResolver) AllNames(db hirdb.HirDatabase) map[string]hirdb.PerNs { return nil }

func TestFromHirStructuralVariants(t *testing.T) {
	db := memdb.New()
	r := resolver.NewRootScope()

	tuple := hir.Tuple{Elems: []hir.TypeRef{hir.NewPath("bool"), hir.NewPath("str")}}
	got := lower.FromHir(db, r, tuple).(ty.Tuple)
	if got.Elems[0] != ty.Bool || got.Elems[1] != ty.Str {
		t.Errorf("FromHir(tuple) = %v", got)
	}

	ref := hir.Reference{Inner: hir.NewPath("char"), Mut: hir.Mut}
	gotRef := lower.FromHir(db, r, ref).(ty.Ref)
	if gotRef.Inner != ty.Char || gotRef.Mut != hir.Mut {
		t.Errorf("FromHir(&mut char) = %v", gotRef)
	}

	if lower.FromHir(db, r, hir.Never{}) != ty.Never {
		t.Errorf("FromHir(Never) did not return ty.Never")
	}
	if lower.FromHir(db, r, hir.Placeholder{}) != ty.Unknown {
		t.Errorf("FromHir(Placeholder) did not return ty.Unknown")
	}
	if lower.FromHir(db, r, hir.Error{}) != ty.Unknown {
		t.Errorf("FromHir(Error) did not return ty.Unknown")
	}
}

func TestFromHirPathGenericParam(t *testing.T) {
	db := memdb.New()
	r := resolver.NewRootScope()
	r.DefineGenericParam("T", 0)

	got := lower.FromHir(db, r, hir.NewPath("T"))
	if got != (ty.Param{Idx: 0, Name: "T"}) {
		t.Errorf("FromHir(T) = %v, want Param{0, T}", got)
	}
}

func TestFromHirPathLocalBindingPanics(t *testing.T) {
	db := memdb.New()
	r := resolver.NewRootScope()
	r.DefineLocal("x")

	defer func() {
		if recover() == nil {
			t.Errorf("resolving a local binding in type position should panic")
		}
	}()
	lower.FromHir(db, r, hir.NewPath("x"))
}

func TestFromHirPathUnresolvedIsUnknown(t *testing.T) {
	db := memdb.New()
	r := resolver.NewRootScope()
	got := lower.FromHir(db, r, hir.NewPath("Nope"))
	if got != ty.Unknown {
		t.Errorf("FromHir(unresolved path) = %v, want Unknown", got)
	}
}

// buildGenericStruct registers `struct Box<T> { value: T }` and returns
// the database, its def id, and the root scope it was defined in.
func buildGenericStruct(t *testing.T) (*memdb.Database, ids.DefID, *resolver.Scope) {
	t.Helper()
	db := memdb.New()
	krate := ids.NewCrateID()
	root := ids.NewModuleID()
	db.AddCrate(krate, root)

	boxID := ids.NewDefID()
	gp := generics.New(nil, "T")
	scope := resolver.NewRootScope()
	scope.DefineGenericParam("T", 0)

	db.AddAdt(boxID, krate, gp, scope, hirdb.VariantData{
		IsTuple: false,
		Fields:  []hirdb.Field{{Name: "value", Type: hir.NewPath("T")}},
	})

	rootScope := resolver.NewRootScope()
	rootScope.DefineType("Box", defs.Struct(boxID))
	return db, boxID, rootScope
}

func TestFromHirPathAppliesExplicitGenericArg(t *testing.T) {
	db, boxID, rootScope := buildGenericStruct(t)

	path := &hir.Path{Segments: []hir.PathSegment{
		{Name: "Box", ArgsAndBindings: &hir.GenericArgs{Args: []hir.GenericArg{{Type: hir.NewPath("bool")}}}},
	}}
	got := lower.FromHir(db, rootScope, path).(ty.Adt)
	if got.DefID.ID != boxID {
		t.Fatalf("resolved to the wrong def id")
	}
	if got.Substs.At(0) != ty.Bool {
		t.Errorf("Box<bool>'s substs[0] = %v, want Bool", got.Substs.At(0))
	}
}

func TestFromHirPathPadsMissingGenericArgsWithUnknown(t *testing.T) {
	db, _, rootScope := buildGenericStruct(t)

	got := lower.FromHir(db, rootScope, hir.NewPath("Box")).(ty.Adt)
	if got.Substs.At(0) != ty.Unknown {
		t.Errorf("Box (no args) substs[0] = %v, want Unknown", got.Substs.At(0))
	}
}

func TestFromHirPathTruncatesExcessGenericArgs(t *testing.T) {
	db, _, rootScope := buildGenericStruct(t)

	path := &hir.Path{Segments: []hir.PathSegment{
		{Name: "Box", ArgsAndBindings: &hir.GenericArgs{Args: []hir.GenericArg{
			{Type: hir.NewPath("bool")},
			{Type: hir.NewPath("char")},
		}}},
	}}
	got := lower.FromHir(db, rootScope, path).(ty.Adt)
	if got.Substs.Len() != 1 {
		t.Fatalf("Box's substs has len %d, want 1 (own param count)", got.Substs.Len())
	}
	if got.Substs.At(0) != ty.Bool {
		t.Errorf("excess arg should be dropped, kept first: got %v", got.Substs.At(0))
	}
}

// buildEnumWithGenericVariant registers:
//
//	enum Option<T> { Some(T), None }
func buildEnumWithGenericVariant(t *testing.T) (db *memdb.Database, someID, noneID ids.DefID, enumID ids.DefID, rootScope *resolver.Scope) {
	t.Helper()
	db = memdb.New()
	krate := ids.NewCrateID()
	root := ids.NewModuleID()
	db.AddCrate(krate, root)

	enumID = ids.NewDefID()
	gp := generics.New(nil, "T")
	enumScope := resolver.NewRootScope()
	enumScope.DefineGenericParam("T", 0)
	db.AddAdt(enumID, krate, gp, enumScope, hirdb.VariantData{})

	someID = ids.NewDefID()
	db.AddEnumVariant(someID, "Some", defs.AdtDef{ID: enumID, Kind: defs.KindEnum}, hirdb.VariantData{
		IsTuple: true,
		Fields:  []hirdb.Field{{Type: hir.NewPath("T")}},
	})

	noneID = ids.NewDefID()
	db.AddEnumVariant(noneID, "None", defs.AdtDef{ID: enumID, Kind: defs.KindEnum}, hirdb.VariantData{})

	rootScope = resolver.NewRootScope()
	rootScope.DefineType("Option", defs.Enum(enumID))
	rootScope.DefineValue("Some", defs.EnumVariant(someID))
	rootScope.DefineValue("None", defs.EnumVariant(noneID))
	return
}

func TestSubstsFromPathPrefersEnumSegmentArgsOverVariantSegment(t *testing.T) {
	db, _, noneID, _, rootScope := buildEnumWithGenericVariant(t)
	_ = noneID

	// Option::<bool>::None::<char> -- both segments carry an explicit arg;
	// the enum segment's wins.
	path := &hir.Path{Segments: []hir.PathSegment{
		{Name: "Option", ArgsAndBindings: &hir.GenericArgs{Args: []hir.GenericArg{{Type: hir.NewPath("bool")}}}},
		{Name: "None", ArgsAndBindings: &hir.GenericArgs{Args: []hir.GenericArg{{Type: hir.NewPath("char")}}}},
	}}
	got := lower.FromHirPath(db, rootScope, path)
	adt, ok := got.(ty.Adt)
	if !ok {
		t.Fatalf("Option::<bool>::None lowered to %T, want ty.Adt (unit variant yields parent enum type)", got)
	}
	if adt.Substs.At(0) != ty.Bool {
		t.Errorf("Option::<bool>::None substs[0] = %v, want Bool", adt.Substs.At(0))
	}
}

func TestSubstsFromPathUsesVariantSegmentWhenEnumSegmentBare(t *testing.T) {
	db, _, noneID, _, rootScope := buildEnumWithGenericVariant(t)

	// Option::None::<bool> -- the enum segment has no args, so the
	// variant segment's own args are used instead.
	path := &hir.Path{Segments: []hir.PathSegment{
		{Name: "Option"},
		{Name: "None", ArgsAndBindings: &hir.GenericArgs{Args: []hir.GenericArg{{Type: hir.NewPath("bool")}}}},
	}}
	got := lower.FromHirPath(db, rootScope, path).(ty.Adt)
	if got.Substs.At(0) != ty.Bool {
		t.Errorf("Option::None::<bool> substs[0] = %v, want Bool", got.Substs.At(0))
	}
	_ = noneID
}

func TestTypeForDefWrongNamespaceReturnsUnknown(t *testing.T) {
	db := memdb.New()
	fnID := ids.NewDefID()
	scope := resolver.NewRootScope()
	db.AddFunction(fnID, hirdb.FunctionSig{Name: "f", Ret: hir.NewPath("bool")}, generics.Empty, scope)

	fnDef := defs.TypableDef{ID: fnID, Kind: defs.KindFunction}
	// A function has no "type" in the type namespace -- only in Values.
	got := lower.TypeForDef(db, fnDef, hirdb.Types)
	if got != ty.Unknown {
		t.Errorf("TypeForDef(fn, Types) = %v, want Unknown", got)
	}
}

func TestCallableItemSigPanicsOnNonCallable(t *testing.T) {
	db := memdb.New()
	aliasID := ids.NewDefID()
	defer func() {
		if recover() == nil {
			t.Errorf("CallableItemSig on a type alias should panic")
		}
	}()
	lower.CallableItemSig(db, defs.CallableDef{ID: aliasID, Kind: defs.KindTypeAlias})
}

func TestTypeForFieldPanicsOnUnitStruct(t *testing.T) {
	db := memdb.New()
	krate := ids.NewCrateID()
	root := ids.NewModuleID()
	db.AddCrate(krate, root)
	unitID := ids.NewDefID()
	db.AddAdt(unitID, krate, generics.Empty, resolver.NewRootScope(), hirdb.VariantData{})

	defer func() {
		if recover() == nil {
			t.Errorf("TypeForField on a unit struct should panic")
		}
	}()
	lower.TypeForField(db, defs.VariantDef{ID: unitID, Kind: defs.KindStruct}, 0)
}

func TestTargetTySelfResolvesToImplTarget(t *testing.T) {
	db, _, rootScope := buildGenericStruct(t)

	implID := ids.NewImplID()
	implGp := generics.New(nil, "T")
	headerScope := rootScope.Nested()
	headerScope.DefineGenericParam("T", 0)

	implBlock := implblock.Block{
		ID:         implID,
		Module:     ids.NewModuleID(),
		TargetType: hir.NewPath("Box"),
		Generics:   implGp,
	}
	db.AddImpl(implBlock.Module, implBlock, headerScope)

	bodyScope := headerScope.WithSelf(implBlock)
	selfTy := lower.FromHir(db, bodyScope, hir.NewPath("Self"))
	if _, ok := selfTy.(ty.Adt); !ok {
		t.Fatalf("Self lowered to %T, want ty.Adt", selfTy)
	}
}
