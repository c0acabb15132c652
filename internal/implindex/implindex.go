// Package implindex builds and serves the per-crate impl index (spec.md
// C6, C8): which inherent impls and trait impls exist for a given type,
// keyed by a coarse fingerprint so lookup never has to walk every impl
// block in a crate.
package implindex

import (
	"github.com/rust-type-core/hirty/internal/defs"
	"github.com/rust-type-core/hirty/internal/hirdb"
	"github.com/rust-type-core/hirty/internal/ids"
	"github.com/rust-type-core/hirty/internal/lower"
	"github.com/rust-type-core/hirty/internal/ty"
)

// TyFingerprint is a coarse, hashable key for indexing impls. Only
// nominal ADTs are keyable: given `struct S`, `impl S` is indexable, but
// `impl &S` or `impl [S]` is not -- those impls would need lookup by
// structural shape instead, which this core does not support.
//
// This stays a one-variant closed sum on purpose, mirroring the
// original's own `TyFingerprint::Adt` with no sibling variants: the
// single constructor function below, fingerprintFor, is the one place
// that would grow a case if a future type constructor became indexable.
type TyFingerprint struct {
	adt defs.AdtDef
}

// fingerprintFor builds the fingerprint for t, or ok=false if t has no
// impl-indexable fingerprint at all.
func fingerprintFor(t ty.Ty) (TyFingerprint, bool) {
	adt, ok := t.(ty.Adt)
	if !ok {
		return TyFingerprint{}, false
	}
	return TyFingerprint{adt: adt.DefID}, true
}

// CrateImplBlocks is the built impl index for one crate: it implements
// hirdb.CrateImpls. Two builds against the same snapshot of a crate are
// structurally equal because collectRecursive walks modules in a fixed,
// deterministic parent-before-children order and appends in per-module
// impl declaration order.
type CrateImplBlocks struct {
	inherent map[TyFingerprint][]hirdb.ImplRef
	byTrait  map[ids.TraitID][]hirdb.ImplRef

	// order is every distinct ImplRef this index holds, in the order
	// collectRecursive's module walk first encountered it -- Rows()
	// replays this order instead of ranging over inherent/byTrait
	// directly, since Go's map iteration order is randomized and would
	// otherwise make two builds of the same crate serialize their impl
	// references in different orders.
	order []hirdb.ImplRef
}

var _ hirdb.CrateImpls = (*CrateImplBlocks)(nil)

// LookupInherent returns every (module, impl) pair inherently
// implementing t, in module-walk order.
func (c *CrateImplBlocks) LookupInherent(t ty.Ty) []hirdb.ImplRef {
	fp, ok := fingerprintFor(t)
	if !ok {
		return nil
	}
	return c.inherent[fp]
}

// LookupByTrait returns every (module, impl) pair implementing trait, in
// module-walk order.
func (c *CrateImplBlocks) LookupByTrait(trait ids.TraitID) []hirdb.ImplRef {
	return c.byTrait[trait]
}

// Build walks krate's module tree, depth-first and parent-before-children
// (spec.md §4.6), recording every impl block it finds into the fingerprint-
// keyed inherent bucket and/or the trait-id-keyed bucket. A trait impl
// whose target type also has a fingerprint is recorded in both buckets --
// `impl Display for S` both answers "what implements Display" and
// contributes to "what inherent+trait impls exist for S" during method
// resolution, which walks LookupInherent only and reaches such trait
// impls through this dual recording.
func Build(db hirdb.HirDatabase, krate ids.CrateID) *CrateImplBlocks {
	c := &CrateImplBlocks{
		inherent: make(map[TyFingerprint][]hirdb.ImplRef),
		byTrait:  make(map[ids.TraitID][]hirdb.ImplRef),
	}
	root, ok := db.RootModule(krate)
	if !ok {
		return c
	}
	collectRecursive(db, c, root)
	return c
}

// Row is one flattened entry of a built index, the serialization unit
// internal/querycache's sqlite store persists and reloads a crate's
// index through -- a CrateImplBlocks itself keeps its maps unexported,
// so Rows/FromRows are the only way across a process boundary.
type Row struct {
	// AdtID/AdtKind are set (AdtKind != 0 is not a valid signal since
	// KindFunction is zero; HasAdt disambiguates) when this row came
	// from the inherent bucket.
	HasAdt  bool
	AdtID   ids.DefID
	AdtKind defs.Kind

	// HasTrait is set when this row came from the trait bucket. A row
	// can have both HasAdt and HasTrait set, since Build files a trait
	// impl whose target has a fingerprint into both buckets.
	HasTrait bool
	TraitID  ids.TraitID

	Ref hirdb.ImplRef
}

// Rows flattens c into a serializable slice, one entry per distinct impl
// ref (so a trait impl recorded in both buckets yields one row with both
// HasAdt and HasTrait set), in c.order's module-walk order --
// never by ranging over the inherent/byTrait maps directly, whose
// iteration order Go randomizes per run.
func (c *CrateImplBlocks) Rows() []Row {
	byRef := make(map[hirdb.ImplRef]*Row, len(c.order))
	for _, ref := range c.order {
		byRef[ref] = &Row{Ref: ref}
	}

	for fp, refs := range c.inherent {
		for _, ref := range refs {
			r := byRef[ref]
			r.HasAdt, r.AdtID, r.AdtKind = true, fp.adt.ID, fp.adt.Kind
		}
	}
	for trait, refs := range c.byTrait {
		for _, ref := range refs {
			r := byRef[ref]
			r.HasTrait, r.TraitID = true, trait
		}
	}

	rows := make([]Row, len(c.order))
	for i, ref := range c.order {
		rows[i] = *byRef[ref]
	}
	return rows
}

// FromRows rebuilds a CrateImplBlocks from a previously-flattened Rows
// slice, without re-walking the crate's module tree. rows is assumed to
// already be in module-walk order (as produced by Rows()), which
// FromRows preserves as c.order so a reload-then-reserialize round trip
// doesn't reshuffle it.
func FromRows(rows []Row) *CrateImplBlocks {
	c := &CrateImplBlocks{
		inherent: make(map[TyFingerprint][]hirdb.ImplRef),
		byTrait:  make(map[ids.TraitID][]hirdb.ImplRef),
	}
	for _, r := range rows {
		if r.HasAdt {
			fp := TyFingerprint{adt: defs.AdtDef{ID: r.AdtID, Kind: r.AdtKind}}
			c.inherent[fp] = append(c.inherent[fp], r.Ref)
		}
		if r.HasTrait {
			c.byTrait[r.TraitID] = append(c.byTrait[r.TraitID], r.Ref)
		}
		c.order = append(c.order, r.Ref)
	}
	return c
}

func collectRecursive(db hirdb.HirDatabase, c *CrateImplBlocks, module ids.ModuleID) {
	for _, entry := range db.ImplsInModule(module) {
		block := db.Impl(entry.ID)
		ref := hirdb.ImplRef{Module: module, Impl: entry.ID}

		resolver := db.ResolverForImplHeader(block.ID)
		targetTy := lower.FromHir(db, resolver, block.TargetType)
		fp, hasFingerprint := fingerprintFor(targetTy)
		if hasFingerprint {
			c.inherent[fp] = append(c.inherent[fp], ref)
		}
		if block.TargetTrait != nil {
			c.byTrait[*block.TargetTrait] = append(c.byTrait[*block.TargetTrait], ref)
		}
		if hasFingerprint || block.TargetTrait != nil {
			c.order = append(c.order, ref)
		}
	}

	for _, child := range db.ChildModules(module) {
		collectRecursive(db, c, child)
	}
}
