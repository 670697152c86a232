package corpus

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/grammarkit/corpusync/pkg/segment"
)

// DefaultFixtureExt is the extension of recognized upstream fixture files.
const DefaultFixtureExt = ".typ"

// Sink receives substantive segments discovered by a walk. The emitter is
// the production sink; previews substitute an in-memory one.
type Sink interface {
	// Emit handles the segment at the given candidate index of a fixture
	// file. dir is the mirrored output directory, displayPath the logical
	// entry location used in headers. Returns the number of bytes the
	// resulting entry occupies.
	Emit(dir, displayPath string, index int, body string) (int, error)
}

// FileReport describes the conversion of a single fixture file.
type FileReport struct {
	// FixturePath is the file's path relative to the fixture root.
	FixturePath string
	// Candidates is the number of separator-delimited segments found.
	Candidates int
	// Emitted is the number of substantive segments written.
	Emitted int
	// Bytes is the total size of the written entries.
	Bytes int
}

// WalkReport aggregates per-file conversion results for a full walk.
type WalkReport struct {
	Files []FileReport
}

// TotalEmitted returns the number of entries emitted across all files.
func (r *WalkReport) TotalEmitted() int {
	total := 0
	for _, f := range r.Files {
		total += f.Emitted
	}

	return total
}

// TotalBytes returns the total size of all emitted entries.
func (r *WalkReport) TotalBytes() int {
	total := 0
	for _, f := range r.Files {
		total += f.Bytes
	}

	return total
}

// Walker converts every fixture file under a fixture root into corpus
// entries under an output root, mirroring the directory structure with one
// subdirectory per fixture file named after the file's stem.
type Walker struct {
	// FixtureExt selects which files are treated as fixtures.
	FixtureExt string
	// Separator bounds test segments inside a fixture file.
	Separator string
	// CommentPrefix marks commentary lines for the vacuity filter.
	CommentPrefix string
	// DisplayRoot prefixes the logical entry paths written into headers.
	DisplayRoot string
	// Sink receives each substantive segment.
	Sink Sink
	// Log receives per-file progress records. Nil disables logging.
	Log *slog.Logger
}

// NewWalker creates a walker with default fixture and segment conventions,
// emitting through the given sink.
func NewWalker(sink Sink) *Walker {
	return &Walker{
		FixtureExt:    DefaultFixtureExt,
		Separator:     segment.DefaultSeparator,
		CommentPrefix: segment.DefaultCommentPrefix,
		Sink:          sink,
	}
}

// Walk visits every fixture file under fixtureRoot in lexical order and
// converts it into entries under outputRoot. Emitted entries are numbered by
// candidate index: filtering a vacuous segment leaves a gap instead of
// shifting later indices, so an entry's number tracks its segment's position
// in the source file across upstream edits. Any read or emit failure aborts
// the whole walk; a partial corpus must not pass for a complete one.
func (w *Walker) Walk(fixtureRoot, outputRoot string) (*WalkReport, error) {
	report := &WalkReport{}

	err := filepath.WalkDir(fixtureRoot, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() || !strings.HasSuffix(d.Name(), w.FixtureExt) {
			return nil
		}

		rel, relErr := filepath.Rel(fixtureRoot, p)
		if relErr != nil {
			return fmt.Errorf("relativize %s: %w", p, relErr)
		}

		fileReport, convErr := w.convertFile(p, rel, outputRoot)
		if convErr != nil {
			return convErr
		}

		report.Files = append(report.Files, fileReport)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk fixtures: %w", err)
	}

	return report, nil
}

// convertFile splits one fixture file and emits its substantive segments.
func (w *Walker) convertFile(fixturePath, rel, outputRoot string) (FileReport, error) {
	raw, err := os.ReadFile(fixturePath)
	if err != nil {
		return FileReport{}, fmt.Errorf("read fixture: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(rel), w.FixtureExt)
	outDir := filepath.Join(outputRoot, filepath.Dir(rel), stem)
	displayPath := w.displayPath(rel, stem)

	candidates := segment.Split(string(raw), w.Separator)
	fileReport := FileReport{FixturePath: rel, Candidates: len(candidates)}

	for i, candidate := range candidates {
		if segment.IsVacuous(candidate, w.CommentPrefix) {
			continue
		}

		n, emitErr := w.Sink.Emit(outDir, displayPath, i, candidate)
		if emitErr != nil {
			return FileReport{}, emitErr
		}

		fileReport.Emitted++
		fileReport.Bytes += n
	}

	if w.Log != nil {
		w.Log.Debug("converted fixture",
			"fixture", rel,
			"candidates", fileReport.Candidates,
			"emitted", fileReport.Emitted)
	}

	return fileReport, nil
}

// displayPath builds the logical entry location written into headers,
// always slash-separated regardless of host path conventions.
func (w *Walker) displayPath(rel, stem string) string {
	dir := filepath.ToSlash(filepath.Dir(rel))
	if dir == "." {
		dir = ""
	}

	return path.Join(w.DisplayRoot, dir, stem)
}
