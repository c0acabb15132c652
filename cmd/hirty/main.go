// Command hirty wires a small toy crate through the full semantic core
// -- HIR->Ty lowering, impl indexing and method resolution -- and prints
// what it finds. It exists to exercise the package graph end to end, the
// way the teacher's cmd/funxy wires lexer->parser->analyzer->evaluator
// for a source file.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/rust-type-core/hirty/internal/defs"
	"github.com/rust-type-core/hirty/internal/generics"
	"github.com/rust-type-core/hirty/internal/hir"
	"github.com/rust-type-core/hirty/internal/hirdb"
	"github.com/rust-type-core/hirty/internal/hirdb/memdb"
	"github.com/rust-type-core/hirty/internal/ids"
	"github.com/rust-type-core/hirty/internal/implblock"
	"github.com/rust-type-core/hirty/internal/lower"
	"github.com/rust-type-core/hirty/internal/methodres"
	"github.com/rust-type-core/hirty/internal/querycache"
	"github.com/rust-type-core/hirty/internal/resolver"
	"github.com/rust-type-core/hirty/internal/ty"
)

var colorEnabled = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

func heading(s string) string {
	if !colorEnabled {
		return s
	}
	return "\x1b[1;36m" + s + "\x1b[0m"
}

func main() {
	db, pointID := buildToyCrate()
	cached := querycache.Wrap(db)

	structDef := defs.Struct(pointID)
	pointTy := lower.TypeForDef(cached, defs.TypableDef{ID: structDef.ID, Kind: structDef.Kind}, hirdb.Types)

	fmt.Println(heading("== lowered types =="))
	fmt.Printf("Point (types namespace):  %s\n", pointTy.String())

	fmt.Println()
	fmt.Println(heading("== method resolution =="))
	autoderef := func(t ty.Ty) []ty.Ty {
		// No user-defined Deref impls in this toy crate: the chain is
		// just the receiver followed by one level of reference peeling.
		if ref, ok := t.(ty.Ref); ok {
			return []ty.Ty{t, ref.Inner}
		}
		return []ty.Ty{t}
	}

	refToPoint := ty.Ref{Inner: pointTy, Mut: hir.Shared}
	match, ok := methodres.LookupMethod(cached, autoderef, refToPoint, "distance_from_origin")
	if !ok {
		fmt.Println("no method found")
		return
	}
	sig := cached.FunctionSignature(match.Method)
	fmt.Printf("&Point.distance_from_origin found on receiver %s, has_self=%v\n", match.ReceiverTy, sig.HasSelfParam)
}

// buildToyCrate assembles a tiny in-memory crate by hand:
//
//	struct Point { x: f64, y: f64 }
//	impl Point {
//	    fn distance_from_origin(&self) -> f64 { ... }
//	}
//
// and returns the database alongside Point's own def id.
func buildToyCrate() (*memdb.Database, ids.DefID) {
	db := memdb.New()

	krate := ids.NewCrateID()
	root := ids.NewModuleID()
	db.AddCrate(krate, root)

	pointID := ids.NewDefID()
	rootScope := resolver.NewRootScope()

	pointFields := hirdb.VariantData{
		IsTuple: false,
		Fields: []hirdb.Field{
			{Name: "x", Type: hir.NewPath("f64")},
			{Name: "y", Type: hir.NewPath("f64")},
		},
	}
	db.AddAdt(pointID, krate, generics.Empty, rootScope, pointFields)
	rootScope.DefineType("Point", defs.Struct(pointID))

	implID := ids.NewImplID()
	implScope := rootScope.Nested()
	methodID := ids.NewDefID()

	block := implblock.Block{
		ID:         implID,
		Module:     root,
		TargetType: hir.NewPath("Point"),
		Generics:   generics.Empty,
		Items: []implblock.Item{
			{Kind: implblock.ItemMethod, Fn: defs.Function(methodID)},
		},
	}
	db.AddImpl(root, block, implScope)

	methodScope := implScope.WithSelf(block)
	db.AddFunction(methodID, hirdb.FunctionSig{
		Name:         "distance_from_origin",
		HasSelfParam: true,
		Params:       nil,
		Ret:          hir.NewPath("f64"),
	}, generics.Empty, methodScope)

	return db, pointID
}
