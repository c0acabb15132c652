// Package methodres implements method and associated-item lookup by
// autoderef (spec.md C7): iterate_methods, lookup_method and
// iterate_impl_items, walking a type's autoderef chain against the
// per-crate impl index.
package methodres

import (
	"github.com/rust-type-core/hirty/internal/defs"
	"github.com/rust-type-core/hirty/internal/hirdb"
	"github.com/rust-type-core/hirty/internal/ids"
	"github.com/rust-type-core/hirty/internal/implblock"
	"github.com/rust-type-core/hirty/internal/ty"
)

// Autoderef produces the sequence of types reached by repeatedly
// dereferencing recv, starting with recv itself. How far autoderef goes
// (following `Deref` impls, stopping at a fixed-point or a cycle guard)
// is a policy decision that belongs to the caller wiring this package
// together, not to method resolution itself -- this core only consumes
// whatever sequence it is handed.
type Autoderef func(recv ty.Ty) []ty.Ty

// MethodMatch is one (receiver type, method def) pair found during
// iteration: the receiver type is the autoderefed type the method was
// actually found on, not the original (possibly reference) type the
// caller started from.
type MethodMatch struct {
	ReceiverTy ty.Ty
	Method     defs.ModuleDef
}

// LookupMethod finds the method named name on recv's autoderef chain
// that takes a self parameter, returning the first match in autoderef
// then module-walk order (spec.md §5.3).
func LookupMethod(db hirdb.HirDatabase, autoderef Autoderef, recv ty.Ty, name string) (MethodMatch, bool) {
	var found MethodMatch
	ok := IterateMethods(db, autoderef, recv, func(derefedTy ty.Ty, method defs.ModuleDef) bool {
		sig := db.FunctionSignature(method)
		if sig.Name == name && sig.HasSelfParam {
			found = MethodMatch{ReceiverTy: derefedTy, Method: method}
			return true
		}
		return false
	})
	return found, ok
}

// IterateMethods autoderefs recv and, for every derefed type in turn,
// walks its inherent and trait impls in module-walk order, calling
// callback with each method it finds. Iteration stops at the first
// callback call that returns true.
//
// Rust method dispatch does any number of autoderef steps and then one
// autoref (to make `&self`/`&mut self` receivers fit). This core does
// not implement that autoref step: once a name+self-param match is
// found at some autoderef depth, it is assumed to fit, the same way the
// original leaves the autoref step as a FIXME rather than implementing
// it. A receiver like `&S` still goes through the full autoderef
// sequence even if the method eventually found takes `&self` -- the
// autoderef steps happen regardless of what the matching method's self
// parameter turns out to need.
func IterateMethods(db hirdb.HirDatabase, autoderef Autoderef, recv ty.Ty, callback func(derefedTy ty.Ty, method defs.ModuleDef) bool) bool {
	for _, derefedTy := range autoderef(recv) {
		krate, ok := defCrate(db, derefedTy)
		if !ok {
			continue
		}
		impls := db.ImplsInCrate(krate)

		stop := false
		walkImplItems(db, impls, derefedTy, func(item implblock.Item) bool {
			if item.Kind != implblock.ItemMethod {
				return false
			}
			if callback(derefedTy, item.Fn) {
				stop = true
				return true
			}
			return false
		})
		if stop {
			return true
		}
	}
	return false
}

// IterateImplItems walks every impl item (method, associated const,
// associated type) declared on recv's own impls, without any autoderef
// -- recv's inherent and trait impls only, in module-walk order.
func IterateImplItems(db hirdb.HirDatabase, recv ty.Ty, callback func(item implblock.Item) bool) bool {
	krate, ok := defCrate(db, recv)
	if !ok {
		return false
	}
	impls := db.ImplsInCrate(krate)
	return walkImplItems(db, impls, recv, callback)
}

// walkImplItems walks every impl recorded against recv's fingerprint --
// inherent impls and trait impls targeting recv alike, interleaved in
// module-walk (declaration) order -- and within each impl block its items
// in declaration order.
func walkImplItems(db hirdb.HirDatabase, impls hirdb.CrateImpls, recv ty.Ty, callback func(item implblock.Item) bool) bool {
	for _, ref := range impls.LookupInherent(recv) {
		block := db.Impl(ref.Impl)
		for _, item := range block.Items {
			if callback(item) {
				return true
			}
		}
	}
	return false
}

// defCrate returns the crate a type's own nominal definition belongs to,
// for types that have one. A non-ADT type (a reference, a tuple, a
// primitive) has no owning crate of its own and cannot directly carry
// impls -- it can still appear as an autoderef step, just one that
// contributes no methods itself.
func defCrate(db hirdb.HirDatabase, t ty.Ty) (ids.CrateID, bool) {
	adtTy, ok := t.(ty.Adt)
	if !ok {
		return ids.CrateID{}, false
	}
	return db.CrateOf(adtTy.DefID)
}
