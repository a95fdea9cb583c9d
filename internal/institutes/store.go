// Copyright Sigma Labs Ltd., 2026. All rights reserved.

// Package institutes loads the curated institution reference dataset and
// matches free-text organization mentions against it.
package institutes

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	_ "github.com/mattn/go-sqlite3"
)

// Reference-integrity errors. Both indicate the reference dataset itself is
// invalid, as opposed to unparseable source text.
var (
	ErrNotInReference     = errors.New("canonical name not in reference dataset")
	ErrDuplicateReference = errors.New("duplicate canonical name in reference dataset")
)

// Reference is one row of the reference CSV.
type Reference struct {
	Name   string `csv:"name"`
	GridID string `csv:"grid_id"`
}

// Store holds the reference dataset for one run: an in-memory SQLite table
// for identifier lookups plus the name list the matcher scores against.
// Read-only once loaded.
type Store struct {
	db    *sql.DB
	names []string
}

// NewStore reads the reference CSV at path into an in-memory database.
// A missing or malformed file is a fatal error for the run.
func NewStore(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reference dataset %s: %w", path, err)
	}
	defer f.Close()

	var refs []Reference
	if err := gocsv.UnmarshalFile(f, &refs); err != nil {
		return nil, fmt.Errorf("parsing reference dataset %s: %w", path, err)
	}

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening reference database: %w", err)
	}
	// A pooled second connection would see an empty :memory: database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE institutes (name TEXT NOT NULL, grid_id TEXT NOT NULL)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating reference schema: %w", err)
	}

	stmt, err := db.Prepare(`INSERT INTO institutes (name, grid_id) VALUES (?, ?)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing reference insert: %w", err)
	}
	defer stmt.Close()

	s := &Store{db: db, names: make([]string, 0, len(refs))}
	for _, ref := range refs {
		if _, err := stmt.Exec(ref.Name, ref.GridID); err != nil {
			db.Close()
			return nil, fmt.Errorf("loading reference row %q: %w", ref.Name, err)
		}
		s.names = append(s.names, ref.Name)
	}

	return s, nil
}

// Close releases the reference database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Names returns the canonical institution names in dataset order. The
// returned slice is shared; callers must not modify it.
func (s *Store) Names() []string {
	return s.names
}

// Len returns the number of reference rows.
func (s *Store) Len() int {
	return len(s.names)
}

// IdentifierFor returns the external identifier of a canonical institution
// name. An empty name resolves to an empty identifier. Zero or duplicate
// matching rows surface as reference-integrity errors rather than a silent
// default.
func (s *Store) IdentifierFor(name string) (string, error) {
	if name == "" {
		return "", nil
	}

	rows, err := s.db.Query(`SELECT grid_id FROM institutes WHERE name = ?`, name)
	if err != nil {
		return "", fmt.Errorf("querying identifier for %q: %w", name, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("reading identifier for %q: %w", name, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("reading identifiers for %q: %w", name, err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %q", ErrNotInReference, name)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %q has %d rows", ErrDuplicateReference, name, len(ids))
	}
}
