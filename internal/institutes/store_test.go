package institutes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeReferenceCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "institutes.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const referenceCSV = `name,grid_id
Harvard University,grid.38142.3c
University of Oxford,grid.4991.5
Institut Pasteur,grid.428999.7
`

func TestNewStore(t *testing.T) {
	store, err := NewStore(writeReferenceCSV(t, referenceCSV))
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, 3, store.Len())
	assert.Equal(t,
		[]string{"Harvard University", "University of Oxford", "Institut Pasteur"},
		store.Names(),
	)
}

func TestNewStoreMissingFile(t *testing.T) {
	_, err := NewStore(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorContains(t, err, "opening reference dataset")
}

func TestNewStoreMalformed(t *testing.T) {
	_, err := NewStore(writeReferenceCSV(t, `name,grid_id
"unterminated,grid.1
`))
	assert.ErrorContains(t, err, "parsing reference dataset")
}

func TestIdentifierFor(t *testing.T) {
	store, err := NewStore(writeReferenceCSV(t, referenceCSV))
	require.NoError(t, err)
	defer store.Close()

	id, err := store.IdentifierFor("Harvard University")
	require.NoError(t, err)
	assert.Equal(t, "grid.38142.3c", id)
}

func TestIdentifierForEmptyName(t *testing.T) {
	store, err := NewStore(writeReferenceCSV(t, referenceCSV))
	require.NoError(t, err)
	defer store.Close()

	id, err := store.IdentifierFor("")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestIdentifierForUnknownName(t *testing.T) {
	store, err := NewStore(writeReferenceCSV(t, referenceCSV))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.IdentifierFor("Miskatonic University")
	assert.ErrorIs(t, err, ErrNotInReference)
}

func TestIdentifierForDuplicateName(t *testing.T) {
	store, err := NewStore(writeReferenceCSV(t, referenceCSV+"Harvard University,grid.99999.9\n"))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.IdentifierFor("Harvard University")
	assert.ErrorIs(t, err, ErrDuplicateReference)
}
