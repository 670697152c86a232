package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFixture creates a fixture file under root, creating directories as
// needed.
func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestWalker() *Walker {
	w := NewWalker(NewEmitter())
	w.DisplayRoot = "corpus/official"

	return w
}

func TestWalker_BasicScenario(t *testing.T) {
	t.Parallel()

	fixtures := t.TempDir()
	out := t.TempDir()

	writeFixture(t, fixtures, "basic.typ", "// header\n---\nfoo\n---\n// only comment\n")

	report, err := newTestWalker().Walk(fixtures, out)

	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.Equal(t, 3, report.Files[0].Candidates)
	assert.Equal(t, 1, report.Files[0].Emitted)

	entries, err := os.ReadDir(filepath.Join(out, "basic"))

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "test1.scm", entries[0].Name())

	content, err := os.ReadFile(filepath.Join(out, "basic", "test1.scm"))

	require.NoError(t, err)
	assert.Contains(t, string(content), "foo")
	assert.Contains(t, string(content), "corpus/official/basic Test 1")
}

func TestWalker_IndexStability(t *testing.T) {
	t.Parallel()

	fixtures := t.TempDir()
	out := t.TempDir()

	// Candidate 1 is comment-only; candidates 0 and 2 are substantive.
	// Emitted names keep the candidate indices, leaving a gap at 1.
	writeFixture(t, fixtures, "gaps.typ", "zero\n---\n// nothing here\n---\ntwo\n")

	_, err := newTestWalker().Walk(fixtures, out)

	require.NoError(t, err)

	dir := filepath.Join(out, "gaps")

	assert.FileExists(t, filepath.Join(dir, "test0.scm"))
	assert.NoFileExists(t, filepath.Join(dir, "test1.scm"))
	assert.FileExists(t, filepath.Join(dir, "test2.scm"))
}

func TestWalker_MirrorsTree(t *testing.T) {
	t.Parallel()

	fixtures := t.TempDir()
	out := t.TempDir()

	writeFixture(t, fixtures, "layout/grid.typ", "grid content\n")
	writeFixture(t, fixtures, "text/emph.typ", "emph content\n")
	writeFixture(t, fixtures, "notes.md", "not a fixture\n")

	report, err := newTestWalker().Walk(fixtures, out)

	require.NoError(t, err)
	assert.Len(t, report.Files, 2)

	assert.FileExists(t, filepath.Join(out, "layout", "grid", "test0.scm"))
	assert.FileExists(t, filepath.Join(out, "text", "emph", "test0.scm"))
	assert.NoDirExists(t, filepath.Join(out, "notes"))

	content, err := os.ReadFile(filepath.Join(out, "layout", "grid", "test0.scm"))

	require.NoError(t, err)
	assert.Contains(t, string(content), "corpus/official/layout/grid Test 0")
}

func TestWalker_AllVacuousEmitsNothing(t *testing.T) {
	t.Parallel()

	fixtures := t.TempDir()
	out := t.TempDir()

	writeFixture(t, fixtures, "empty.typ", "// a\n---\n\n---\n// b\n")

	report, err := newTestWalker().Walk(fixtures, out)

	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.Equal(t, 3, report.Files[0].Candidates)
	assert.Zero(t, report.Files[0].Emitted)
}

func TestWalker_Idempotent(t *testing.T) {
	t.Parallel()

	fixtures := t.TempDir()
	out := t.TempDir()

	writeFixture(t, fixtures, "a.typ", "one\n---\ntwo\n")
	writeFixture(t, fixtures, "sub/b.typ", "// note\n---\nthree\n")

	w := newTestWalker()

	_, err := w.Walk(fixtures, out)
	require.NoError(t, err)

	first := readTree(t, out)

	_, err = w.Walk(fixtures, out)
	require.NoError(t, err)

	second := readTree(t, out)

	assert.Equal(t, first, second)
}

// readTree collects every file under root keyed by relative path.
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()

	tree := map[string]string{}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}

		tree[rel] = string(content)

		return nil
	})

	require.NoError(t, err)

	return tree
}

func TestWalker_MissingFixtureRootFails(t *testing.T) {
	t.Parallel()

	out := t.TempDir()

	_, err := newTestWalker().Walk(filepath.Join(out, "does-not-exist"), out)

	require.Error(t, err)
}

func TestWalker_Preview(t *testing.T) {
	t.Parallel()

	fixtures := t.TempDir()
	out := t.TempDir()

	writeFixture(t, fixtures, "a.typ", "one\n---\ntwo\n")

	w := newTestWalker()

	// Nothing exists yet: everything is new.
	report, err := w.Preview(fixtures, out)

	require.NoError(t, err)
	assert.Len(t, report.New, 2)
	assert.Empty(t, report.Changed)
	assert.Zero(t, report.Unchanged)

	// Populate, then preview again: everything is unchanged.
	_, err = w.Walk(fixtures, out)
	require.NoError(t, err)

	report, err = w.Preview(fixtures, out)

	require.NoError(t, err)
	assert.Empty(t, report.New)
	assert.Empty(t, report.Changed)
	assert.Equal(t, 2, report.Unchanged)

	// Edit a fixture: its entry shows up as changed, on disk nothing moves.
	writeFixture(t, fixtures, "a.typ", "one\n---\ntwo edited\n")

	before := readTree(t, out)

	report, err = w.Preview(fixtures, out)

	require.NoError(t, err)
	require.Len(t, report.Changed, 1)
	assert.Equal(t, filepath.Join(out, "a", "test1.scm"), report.Changed[0].Path)
	assert.Equal(t, 1, report.Unchanged)

	assert.Equal(t, before, readTree(t, out))
}
