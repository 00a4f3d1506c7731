package stores

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/taskboard/internal/data/db"
)

func TestIsCorruptionError(t *testing.T) {
	assert.False(t, IsCorruptionError(nil))
	assert.False(t, IsCorruptionError(errors.New("connection refused")))
	assert.True(t, IsCorruptionError(errors.New("database disk image is malformed")))
	assert.True(t, IsCorruptionError(errors.New("open: file is not a database")))
}

func TestRecoverFromCorruption(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, db.FileName)

	require.NoError(t, os.WriteFile(dbPath, []byte("garbage"), 0o644))
	require.NoError(t, os.WriteFile(dbPath+"-wal", []byte("wal"), 0o644))

	backup, err := RecoverFromCorruption(dir)
	require.NoError(t, err)

	assert.NoFileExists(t, dbPath)
	assert.NoFileExists(t, dbPath+"-wal")
	assert.FileExists(t, backup)
	assert.FileExists(t, backup+"-wal")

	// A fresh database can be opened afterwards.
	database, err := db.Open(dir, db.DefaultOpenOptions())
	require.NoError(t, err)
	require.NoError(t, database.Close())
}

func TestRecoverFromCorruption_NoDatabase(t *testing.T) {
	_, err := RecoverFromCorruption(t.TempDir())
	require.NoError(t, err)
}
