// Package ids defines the identifier types shared by every collaborator
// boundary in this module: crates, modules, impl blocks and the defs
// (functions, structs, enums, ...) that type_for_def and the impl index
// key their results on.
//
// The upstream this core is extracted from (rust-analyzer) keys these by
// small salted integers handed out by a query database. We key them by
// uuid.UUID instead: an IDE backend's HirDatabase is expected to persist
// CrateImplBlocks across process restarts (see internal/querycache), and
// restart-stable integer ids would require the database to replay its
// entire id-allocation history on every boot. A random v4 UUID is stable
// the moment it's minted and needs no replay.
package ids

import "github.com/google/uuid"

// CrateID identifies one crate in the (externally assembled) crate graph.
type CrateID uuid.UUID

// NewCrateID mints a fresh crate identifier.
func NewCrateID() CrateID { return CrateID(uuid.New()) }

func (c CrateID) String() string { return uuid.UUID(c).String() }

// ParseCrateID parses a CrateID previously rendered by String, e.g. when
// reloading one from internal/querycache's sqlite store.
func ParseCrateID(s string) (CrateID, error) {
	u, err := uuid.Parse(s)
	return CrateID(u), err
}

// ModuleID identifies one module within a single crate. Unlike CrateID,
// module identity is only meaningful relative to its owning crate, so
// ModuleID does not need to be globally unique on its own -- it still is,
// because minting it from the same uuid source costs nothing and avoids
// ever having to carry a (CrateID, localID) pair through the index.
type ModuleID uuid.UUID

func NewModuleID() ModuleID { return ModuleID(uuid.New()) }

func (m ModuleID) String() string { return uuid.UUID(m).String() }

// ParseModuleID parses a ModuleID previously rendered by String.
func ParseModuleID(s string) (ModuleID, error) {
	u, err := uuid.Parse(s)
	return ModuleID(u), err
}

// ImplID identifies one impl block (inherent or trait) within a crate.
type ImplID uuid.UUID

func NewImplID() ImplID { return ImplID(uuid.New()) }

func (i ImplID) String() string { return uuid.UUID(i).String() }

// ParseImplID parses an ImplID previously rendered by String.
func ParseImplID(s string) (ImplID, error) {
	u, err := uuid.Parse(s)
	return ImplID(u), err
}

// DefID identifies one item definition: a function, struct, enum, enum
// variant, type alias, const or static. It is the key CallableDef,
// TypableDef and AdtDef wrap.
type DefID uuid.UUID

func NewDefID() DefID { return DefID(uuid.New()) }

func (d DefID) String() string { return uuid.UUID(d).String() }

// ParseDefID parses a DefID previously rendered by String.
func ParseDefID(s string) (DefID, error) {
	u, err := uuid.Parse(s)
	return DefID(u), err
}

// TraitID identifies a trait declaration; it is the key impls_by_trait is
// indexed on.
type TraitID uuid.UUID

func NewTraitID() TraitID { return TraitID(uuid.New()) }

func (t TraitID) String() string { return uuid.UUID(t).String() }

// ParseTraitID parses a TraitID previously rendered by String.
func ParseTraitID(s string) (TraitID, error) {
	u, err := uuid.Parse(s)
	return TraitID(u), err
}
