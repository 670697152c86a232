package checkpoint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Load_Absent(t *testing.T) {
	t.Parallel()

	s := NewStore(t.TempDir())

	id, found, err := s.Load()

	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, id)
}

func TestStore_SaveLoad_Roundtrip(t *testing.T) {
	t.Parallel()

	s := NewStore(t.TempDir())

	require.NoError(t, s.Save("0123456789abcdef0123456789abcdef01234567"))

	id, found, err := s.Load()

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "0123456789abcdef0123456789abcdef01234567", id)
}

func TestStore_Save_CreatesParentDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "corpus", "official")
	s := NewStore(dir)

	require.NoError(t, s.Save("abc123"))

	assert.FileExists(t, filepath.Join(dir, FileName))
}

func TestStore_Save_Replaces(t *testing.T) {
	t.Parallel()

	s := NewStore(t.TempDir())

	require.NoError(t, s.Save("old"))
	require.NoError(t, s.Save("new"))

	id, found, err := s.Load()

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "new", id)
}

func TestStore_Save_NoStrayTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := NewStore(dir)

	require.NoError(t, s.Save("abc123"))

	entries, err := os.ReadDir(dir)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, FileName, entries[0].Name())
}

func TestStore_Load_TrimsWhitespace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	// A hand-edited checkpoint may carry a trailing newline.
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("abc123\n"), 0o644))

	s := NewStore(dir)

	id, found, err := s.Load()

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "abc123", id)
}
