package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.json")

	s, err := Open(path)
	require.NoError(t, err)

	text, err := s.BlacklistText()
	require.NoError(t, err)
	assert.Equal(t, "", text, "a missing file means empty options")
	assert.Equal(t, 0, s.Revision())

	require.NoError(t, s.SetBlacklist("a.com\nb.com"))
	assert.Equal(t, 1, s.Revision())

	// A fresh store sees the persisted text.
	reopened, err := Open(path)
	require.NoError(t, err)
	text, err = reopened.BlacklistText()
	require.NoError(t, err)
	assert.Equal(t, "a.com\nb.com", text)
	assert.Equal(t, 1, reopened.Revision())
}

func TestFileStoreOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.json")
	s, err := Open(path)
	require.NoError(t, err)

	var got []string
	s.OnChange(func(blacklist string) { got = append(got, blacklist) })

	require.NoError(t, s.SetBlacklist("first"))
	require.NoError(t, s.SetBlacklist("second"))
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestFileStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "options.json")
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.SetBlacklist("a.com"))
	require.NoError(t, s.SetBlacklist("b.com"))

	// The rename-based save replaces the file in place; nothing else
	// survives in the directory.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "options.json", entries[0].Name())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestFileStoreSaveFailureKeepsOptions(t *testing.T) {
	// A path whose directory does not exist makes the temp-file creation
	// fail; the in-memory options and revision must stay untouched.
	path := filepath.Join(t.TempDir(), "missing", "options.json")
	s, err := Open(path)
	require.NoError(t, err)

	var fired bool
	s.OnChange(func(string) { fired = true })

	assert.Error(t, s.SetBlacklist("a.com"))
	text, err := s.BlacklistText()
	require.NoError(t, err)
	assert.Equal(t, "", text)
	assert.Equal(t, 0, s.Revision())
	assert.False(t, fired, "listeners must not fire on a failed save")
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Open(path)
	assert.Error(t, err, "a corrupt option file must not be silently reset")
}
