package methodres_test

import (
	"testing"

	"github.com/rust-type-core/hirty/internal/defs"
	"github.com/rust-type-core/hirty/internal/generics"
	"github.com/rust-type-core/hirty/internal/hir"
	"github.com/rust-type-core/hirty/internal/hirdb"
	"github.com/rust-type-core/hirty/internal/hirdb/memdb"
	"github.com/rust-type-core/hirty/internal/ids"
	"github.com/rust-type-core/hirty/internal/implblock"
	"github.com/rust-type-core/hirty/internal/methodres"
	"github.com/rust-type-core/hirty/internal/resolver"
	"github.com/rust-type-core/hirty/internal/ty"
)

// buildCrateWithMethod assembles `struct S` with an inherent impl
// declaring one method `fn greet(&self) -> bool`.
func buildCrateWithMethod(t *testing.T) (db *memdb.Database, structID, methodID ids.DefID) {
	t.Helper()
	db = memdb.New()
	krate := ids.NewCrateID()
	root := ids.NewModuleID()
	db.AddCrate(krate, root)

	structID = ids.NewDefID()
	structScope := resolver.NewRootScope()
	db.AddAdt(structID, krate, generics.Empty, structScope, hirdb.VariantData{})
	structScope.DefineType("S", defs.Struct(structID))

	implID := ids.NewImplID()
	implScope := structScope.Nested()
	methodID = ids.NewDefID()
	block := implblock.Block{
		ID:         implID,
		Module:     root,
		TargetType: hir.NewPath("S"),
		Generics:   generics.Empty,
		Items: []implblock.Item{
			{Kind: implblock.ItemMethod, Fn: defs.Function(methodID)},
		},
	}
	db.AddImpl(root, block, implScope)

	bodyScope := implScope.WithSelf(block)
	db.AddFunction(methodID, hirdb.FunctionSig{
		Name:         "greet",
		HasSelfParam: true,
		Ret:          hir.NewPath("bool"),
	}, generics.Empty, bodyScope)

	return
}

func noopAutoderef(t ty.Ty) []ty.Ty { return []ty.Ty{t} }

func TestLookupMethodFindsInherentMethod(t *testing.T) {
	db, structID, methodID := buildCrateWithMethod(t)
	sTy := ty.Adt{DefID: defs.AdtDef{ID: structID, Kind: defs.KindStruct}}

	match, ok := methodres.LookupMethod(db, noopAutoderef, sTy, "greet")
	if !ok {
		t.Fatalf("LookupMethod did not find greet")
	}
	if match.Method.ID != methodID {
		t.Errorf("LookupMethod found the wrong method id")
	}
	if got, isAdt := match.ReceiverTy.(ty.Adt); !isAdt || got.DefID != sTy.DefID || got.Substs.Len() != sTy.Substs.Len() {
		t.Errorf("LookupMethod.ReceiverTy = %v, want %v", match.ReceiverTy, sTy)
	}
}

func TestLookupMethodAutoderefsThroughReference(t *testing.T) {
	db, structID, methodID := buildCrateWithMethod(t)
	sTy := ty.Adt{DefID: defs.AdtDef{ID: structID, Kind: defs.KindStruct}}
	refTy := ty.Ref{Inner: sTy, Mut: hir.Shared}

	autoderef := func(t ty.Ty) []ty.Ty {
		if r, ok := t.(ty.Ref); ok {
			return []ty.Ty{t, r.Inner}
		}
		return []ty.Ty{t}
	}

	match, ok := methodres.LookupMethod(db, autoderef, refTy, "greet")
	if !ok {
		t.Fatalf("LookupMethod through a reference did not find greet")
	}
	if match.Method.ID != methodID {
		t.Errorf("LookupMethod found the wrong method id")
	}
	if got, isAdt := match.ReceiverTy.(ty.Adt); !isAdt || got.DefID != sTy.DefID || got.Substs.Len() != sTy.Substs.Len() {
		t.Errorf("ReceiverTy should be the derefed S, not the original &S: got %v", match.ReceiverTy)
	}
}

func TestLookupMethodUnknownNameNotFound(t *testing.T) {
	db, structID, _ := buildCrateWithMethod(t)
	sTy := ty.Adt{DefID: defs.AdtDef{ID: structID, Kind: defs.KindStruct}}

	_, ok := methodres.LookupMethod(db, noopAutoderef, sTy, "nope")
	if ok {
		t.Errorf("LookupMethod found a method that was never declared")
	}
}

func TestLookupMethodNoCrateForNonAdtIsNotFound(t *testing.T) {
	db, _, _ := buildCrateWithMethod(t)
	_, ok := methodres.LookupMethod(db, noopAutoderef, ty.Bool, "greet")
	if ok {
		t.Errorf("a primitive receiver has no owning crate and should never match")
	}
}

func TestIterateImplItemsNoAutoderef(t *testing.T) {
	db, structID, methodID := buildCrateWithMethod(t)
	sTy := ty.Adt{DefID: defs.AdtDef{ID: structID, Kind: defs.KindStruct}}

	var seen []ids.DefID
	methodres.IterateImplItems(db, sTy, func(item implblock.Item) bool {
		seen = append(seen, item.Fn.ID)
		return false
	})
	if len(seen) != 1 || seen[0] != methodID {
		t.Errorf("IterateImplItems saw %v, want exactly [%s]", seen, methodID)
	}

	refTy := ty.Ref{Inner: sTy, Mut: hir.Shared}
	var seenOnRef []ids.DefID
	methodres.IterateImplItems(db, refTy, func(item implblock.Item) bool {
		seenOnRef = append(seenOnRef, item.Fn.ID)
		return false
	})
	if len(seenOnRef) != 0 {
		t.Errorf("IterateImplItems on &S (no autoderef) should see nothing directly; got %v", seenOnRef)
	}
}
