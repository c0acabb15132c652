package querycache

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/rust-type-core/hirty/internal/defs"
	"github.com/rust-type-core/hirty/internal/hirdb"
	"github.com/rust-type-core/hirty/internal/ids"
	"github.com/rust-type-core/hirty/internal/implindex"
)

// SQLiteStore persists the memoized impl index to a sqlite database
// (pure-Go, via modernc.org/sqlite -- no cgo toolchain needed for an
// editor plugin host to embed this), so a rebuild survives a process
// restart instead of being paid again on every boot, the same
// restart-stability argument internal/ids gives for using UUID keys.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if necessary) a sqlite database at
// path and ensures its schema exists.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("querycache: open sqlite store: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("querycache: init sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS impl_index_rows (
	crate_id   TEXT NOT NULL,
	has_adt    INTEGER NOT NULL,
	adt_id     TEXT NOT NULL,
	adt_kind   INTEGER NOT NULL,
	has_trait  INTEGER NOT NULL,
	trait_id   TEXT NOT NULL,
	module_id  TEXT NOT NULL,
	impl_id    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_impl_index_rows_crate ON impl_index_rows(crate_id);
`

// Close releases the underlying sqlite connection.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Load reconstructs krate's impl index from previously-saved rows, or
// ok=false if nothing has been saved for it yet.
func (s *SQLiteStore) Load(krate ids.CrateID) (hirdb.CrateImpls, bool) {
	// ORDER BY rowid replays rows in insertion order, preserving Rows()'s
	// module-walk order (spec.md §4.6) across the round trip -- without
	// it, SQL makes no ordering promise for a plain WHERE scan.
	rows, err := s.db.Query(
		`SELECT has_adt, adt_id, adt_kind, has_trait, trait_id, module_id, impl_id
		 FROM impl_index_rows WHERE crate_id = ? ORDER BY rowid`,
		krate.String(),
	)
	if err != nil {
		return nil, false
	}
	defer rows.Close()

	var parsed []implindex.Row
	found := false
	for rows.Next() {
		found = true
		var (
			hasAdt, hasTrait       int
			adtIDStr, traitIDStr   string
			moduleIDStr, implIDStr string
			adtKind                int
		)
		if err := rows.Scan(&hasAdt, &adtIDStr, &adtKind, &hasTrait, &traitIDStr, &moduleIDStr, &implIDStr); err != nil {
			return nil, false
		}
		adtID, _ := ids.ParseDefID(adtIDStr)
		traitID, _ := ids.ParseTraitID(traitIDStr)
		moduleID, _ := ids.ParseModuleID(moduleIDStr)
		implID, _ := ids.ParseImplID(implIDStr)
		row := implindex.Row{
			HasAdt:   hasAdt != 0,
			AdtID:    adtID,
			AdtKind:  defs.Kind(adtKind),
			HasTrait: hasTrait != 0,
			TraitID:  traitID,
			Ref: hirdb.ImplRef{
				Module: moduleID,
				Impl:   implID,
			},
		}
		parsed = append(parsed, row)
	}
	if !found {
		return nil, false
	}
	return implindex.FromRows(parsed), true
}

// Save flushes krate's impl index to the store, replacing whatever was
// previously saved for it.
func (s *SQLiteStore) Save(krate ids.CrateID, impls hirdb.CrateImpls) {
	blocks, ok := impls.(*implindex.CrateImplBlocks)
	if !ok {
		// Not our own concrete type (a test double, say) -- nothing we
		// know how to serialize.
		return
	}

	tx, err := s.db.Begin()
	if err != nil {
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM impl_index_rows WHERE crate_id = ?`, krate.String()); err != nil {
		return
	}

	stmt, err := tx.Prepare(
		`INSERT INTO impl_index_rows
		 (crate_id, has_adt, adt_id, adt_kind, has_trait, trait_id, module_id, impl_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return
	}
	defer stmt.Close()

	for _, row := range blocks.Rows() {
		_, err := stmt.Exec(
			krate.String(),
			boolToInt(row.HasAdt), row.AdtID.String(), int(row.AdtKind),
			boolToInt(row.HasTrait), row.TraitID.String(),
			row.Ref.Module.String(), row.Ref.Impl.String(),
		)
		if err != nil {
			return
		}
	}
	tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
