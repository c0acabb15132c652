package querycache_test

import (
	"path/filepath"
	"testing"

	"github.com/rust-type-core/hirty/internal/defs"
	"github.com/rust-type-core/hirty/internal/generics"
	"github.com/rust-type-core/hirty/internal/hir"
	"github.com/rust-type-core/hirty/internal/hirdb"
	"github.com/rust-type-core/hirty/internal/hirdb/memdb"
	"github.com/rust-type-core/hirty/internal/ids"
	"github.com/rust-type-core/hirty/internal/implblock"
	"github.com/rust-type-core/hirty/internal/implindex"
	"github.com/rust-type-core/hirty/internal/querycache"
	"github.com/rust-type-core/hirty/internal/resolver"
	"github.com/rust-type-core/hirty/internal/ty"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	db := memdb.New()
	krate := ids.NewCrateID()
	root := ids.NewModuleID()
	db.AddCrate(krate, root)

	structID := ids.NewDefID()
	structScope := resolver.NewRootScope()
	db.AddAdt(structID, krate, generics.Empty, structScope, hirdb.VariantData{})
	structScope.DefineType("S", defs.Struct(structID))

	implID := ids.NewImplID()
	db.AddImpl(root, implblock.Block{
		ID:         implID,
		Module:     root,
		TargetType: hir.NewPath("S"),
		Generics:   generics.Empty,
	}, structScope.Nested())

	built := implindex.Build(db, krate)

	path := filepath.Join(t.TempDir(), "impls.sqlite")
	store, err := querycache.OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	defer store.Close()

	store.Save(krate, built)

	loaded, ok := store.Load(krate)
	if !ok {
		t.Fatalf("Load did not find the saved crate")
	}

	sTy := ty.Adt{DefID: defs.AdtDef{ID: structID, Kind: defs.KindStruct}}
	refs := loaded.LookupInherent(sTy)
	found := false
	for _, r := range refs {
		if r.Impl == implID {
			found = true
		}
	}
	if !found {
		t.Errorf("reloaded index did not contain the saved impl")
	}
}

func TestSQLiteStoreLoadMissingCrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "impls.sqlite")
	store, err := querycache.OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	defer store.Close()

	_, ok := store.Load(ids.NewCrateID())
	if ok {
		t.Errorf("Load on a never-saved crate should report ok=false")
	}
}

func TestSQLiteStoreSaveOverwritesPreviousEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "impls.sqlite")
	store, err := querycache.OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	defer store.Close()

	db := memdb.New()
	krate := ids.NewCrateID()
	root := ids.NewModuleID()
	db.AddCrate(krate, root)
	structID := ids.NewDefID()
	structScope := resolver.NewRootScope()
	db.AddAdt(structID, krate, generics.Empty, structScope, hirdb.VariantData{})
	structScope.DefineType("S", defs.Struct(structID))
	db.AddImpl(root, implblock.Block{
		ID:         ids.NewImplID(),
		Module:     root,
		TargetType: hir.NewPath("S"),
		Generics:   generics.Empty,
	}, structScope.Nested())
	built := implindex.Build(db, krate)

	store.Save(krate, built)
	store.Save(krate, built)

	loaded, ok := store.Load(krate)
	if !ok {
		t.Fatalf("Load after two Saves of the same crate should still find it")
	}
	sTy := ty.Adt{DefID: defs.AdtDef{ID: structID, Kind: defs.KindStruct}}
	if len(loaded.LookupInherent(sTy)) != 1 {
		t.Errorf("a second Save should replace, not duplicate, the crate's rows")
	}
}
