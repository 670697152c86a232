// Package checkpoint persists the upstream revision identifier last fully
// absorbed into the corpus. The record is a single text file whose whole
// content is the identifier, with no surrounding structure.
package checkpoint

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the checkpoint file's base name under the corpus root.
const FileName = "COMMIT"

// checkpointFileMode is the permission for the written checkpoint file.
const checkpointFileMode = 0o644

// checkpointDirMode is the permission for created parent directories.
const checkpointDirMode = 0o755

// Store reads and replaces the checkpoint record at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store for the checkpoint file inside dir.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, FileName)}
}

// Path returns the checkpoint file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted revision identifier. A missing checkpoint file
// is not an error: it reports found=false, which callers treat as "no
// revision absorbed yet".
func (s *Store) Load() (string, bool, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("read checkpoint: %w", err)
	}

	return strings.TrimSpace(string(raw)), true, nil
}

// Save replaces the checkpoint with id, creating the parent directory if
// missing. The write goes through a temp file renamed into place, so a crash
// mid-save leaves either the old record or the new one, never a torn file.
// Callers must only invoke Save after a fully successful walk.
func (s *Store) Save(id string) error {
	dir := filepath.Dir(s.path)

	err := os.MkdirAll(dir, checkpointDirMode)
	if err != nil {
		return fmt.Errorf("create checkpoint directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, FileName+".*")
	if err != nil {
		return fmt.Errorf("create checkpoint temp file: %w", err)
	}

	tmpName := tmp.Name()

	_, writeErr := tmp.WriteString(id)
	closeErr := tmp.Close()

	if writeErr != nil || closeErr != nil {
		os.Remove(tmpName)

		if writeErr != nil {
			return fmt.Errorf("write checkpoint: %w", writeErr)
		}

		return fmt.Errorf("write checkpoint: %w", closeErr)
	}

	err = os.Chmod(tmpName, checkpointFileMode)
	if err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("chmod checkpoint: %w", err)
	}

	err = os.Rename(tmpName, s.path)
	if err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("replace checkpoint: %w", err)
	}

	return nil
}
