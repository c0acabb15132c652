// Package querycache wraps a hirdb.HirDatabase's impls_in_crate query
// with memoization: an in-process cache so repeated lookups for the same
// crate snapshot don't re-walk the module tree, deduplicated across
// concurrent callers with singleflight the way a real IDE backend would
// field overlapping requests (hover, completion, goto-definition) for
// the same crate while it's mid-rebuild.
package querycache

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/rust-type-core/hirty/internal/hirdb"
	"github.com/rust-type-core/hirty/internal/ids"
)

// Database wraps a hirdb.HirDatabase, memoizing ImplsInCrate. Every other
// query passes straight through: this core only specifies memoization
// for impls_in_crate (spec.md §9), not as a blanket policy for all
// queries.
type Database struct {
	hirdb.HirDatabase

	group singleflight.Group

	mu    sync.RWMutex
	cache map[ids.CrateID]hirdb.CrateImpls

	store Store
}

// Store is an optional persistence backend for the memoized index, so a
// rebuild survives a process restart instead of being paid again on
// every boot. A Database with a nil Store (the default from Wrap) is
// purely in-process.
type Store interface {
	Load(krate ids.CrateID) (hirdb.CrateImpls, bool)
	Save(krate ids.CrateID, impls hirdb.CrateImpls)
}

// Wrap builds a memoizing Database fronting db, with no on-disk
// persistence.
func Wrap(db hirdb.HirDatabase) *Database {
	return &Database{HirDatabase: db, cache: make(map[ids.CrateID]hirdb.CrateImpls)}
}

// WrapWithStore builds a memoizing Database fronting db, consulting store
// on a cache miss and populating it after every rebuild.
func WrapWithStore(db hirdb.HirDatabase, store Store) *Database {
	d := Wrap(db)
	d.store = store
	return d
}

// ImplsInCrate returns the memoized impl index for krate, rebuilding at
// most once even under concurrent callers racing for the same krate.
func (d *Database) ImplsInCrate(krate ids.CrateID) hirdb.CrateImpls {
	d.mu.RLock()
	if cached, ok := d.cache[krate]; ok {
		d.mu.RUnlock()
		return cached
	}
	d.mu.RUnlock()

	if d.store != nil {
		if loaded, ok := d.store.Load(krate); ok {
			d.mu.Lock()
			d.cache[krate] = loaded
			d.mu.Unlock()
			return loaded
		}
	}

	key := krate.String()
	result, _, _ := d.group.Do(key, func() (interface{}, error) {
		// A flight for krate may have finished between the cache check
		// above and this call; serve its result instead of building again.
		d.mu.RLock()
		cached, ok := d.cache[krate]
		d.mu.RUnlock()
		if ok {
			return cached, nil
		}
		built := d.HirDatabase.ImplsInCrate(krate)
		d.mu.Lock()
		d.cache[krate] = built
		d.mu.Unlock()
		if d.store != nil {
			d.store.Save(krate, built)
		}
		return built, nil
	})
	return result.(hirdb.CrateImpls)
}

// Invalidate drops krate's cached impl index, forcing the next
// ImplsInCrate call to rebuild it. A caller observing an edit to krate's
// source (a new impl block added or removed) calls this before its next
// query.
func (d *Database) Invalidate(krate ids.CrateID) {
	d.mu.Lock()
	delete(d.cache, krate)
	d.mu.Unlock()
}
