package corpus

import (
	"fmt"
	"os"
	"path/filepath"
)

// entryFileMode is the permission for written corpus entries.
const entryFileMode = 0o644

// entryDirMode is the permission for created corpus directories.
const entryDirMode = 0o755

// DefaultEntryPrefix is the base name prefix for emitted entry files.
const DefaultEntryPrefix = "test"

// DefaultEntryExt is the file extension for emitted entry files.
const DefaultEntryExt = ".scm"

// Emitter writes rendered segments as corpus entry files. File names derive
// deterministically from the segment index, so re-running overwrites entries
// in place instead of accumulating duplicates.
type Emitter struct {
	// EntryPrefix is the base name prefix, e.g. "test" for test3.scm.
	EntryPrefix string
	// EntryExt is the entry file extension, e.g. ".scm".
	EntryExt string
}

// NewEmitter creates an emitter with the default entry naming scheme.
func NewEmitter() *Emitter {
	return &Emitter{
		EntryPrefix: DefaultEntryPrefix,
		EntryExt:    DefaultEntryExt,
	}
}

// EntryName returns the file name for the segment at the given candidate index.
func (e *Emitter) EntryName(index int) string {
	return fmt.Sprintf("%s%d%s", e.EntryPrefix, index, e.EntryExt)
}

// Emit renders one substantive segment into dir, creating dir if needed.
// It returns the number of bytes written. Failures are final: the walk is
// expected to be re-run from scratch, not resumed.
func (e *Emitter) Emit(dir, displayPath string, index int, body string) (int, error) {
	err := os.MkdirAll(dir, entryDirMode)
	if err != nil {
		return 0, fmt.Errorf("create entry directory: %w", err)
	}

	path := filepath.Join(dir, e.EntryName(index))
	content := RenderEntry(displayPath, index, body)

	err = os.WriteFile(path, []byte(content), entryFileMode)
	if err != nil {
		return 0, fmt.Errorf("write entry %s: %w", path, err)
	}

	return len(content), nil
}
