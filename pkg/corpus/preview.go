package corpus

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// EntryChange describes how a regeneration would alter one corpus entry.
type EntryChange struct {
	// Path is the entry file path under the corpus root.
	Path string
	// Diff is a line-level diff against the existing entry, empty for new
	// entries.
	Diff []diffmatchpatch.Diff
}

// PreviewReport summarizes a dry-run walk against the existing corpus.
type PreviewReport struct {
	// New are entries that do not exist in the corpus yet.
	New []string
	// Changed are existing entries whose regenerated content differs.
	Changed []EntryChange
	// Unchanged counts entries whose regenerated content is identical.
	Unchanged int
}

// previewSink renders entries in memory and compares them with the files
// already present under the corpus root, writing nothing.
type previewSink struct {
	emitter *Emitter
	dmp     *diffmatchpatch.DiffMatchPatch
	report  *PreviewReport
}

// Emit implements Sink by diffing the rendered entry against the existing
// file instead of writing it.
func (s *previewSink) Emit(dir, displayPath string, index int, body string) (int, error) {
	entryPath := filepath.Join(dir, s.emitter.EntryName(index))
	content := RenderEntry(displayPath, index, body)

	existing, err := os.ReadFile(entryPath)
	if errors.Is(err, fs.ErrNotExist) {
		s.report.New = append(s.report.New, entryPath)

		return len(content), nil
	}

	if err != nil {
		return 0, err
	}

	if string(existing) == content {
		s.report.Unchanged++

		return len(content), nil
	}

	diffs := s.dmp.DiffMain(string(existing), content, false)
	s.report.Changed = append(s.report.Changed, EntryChange{
		Path: entryPath,
		Diff: s.dmp.DiffCleanupSemantic(diffs),
	})

	return len(content), nil
}

// Preview runs the walker against fixtureRoot without modifying outputRoot,
// reporting which entries a real walk would create or rewrite. The walker's
// configured sink is ignored for the duration of the preview.
func (w *Walker) Preview(fixtureRoot, outputRoot string) (*PreviewReport, error) {
	sink := &previewSink{
		emitter: NewEmitter(),
		dmp:     diffmatchpatch.New(),
		report:  &PreviewReport{},
	}

	if e, ok := w.Sink.(*Emitter); ok {
		sink.emitter = e
	}

	preview := *w
	preview.Sink = sink

	_, err := preview.Walk(fixtureRoot, outputRoot)
	if err != nil {
		return nil, err
	}

	return sink.report, nil
}
