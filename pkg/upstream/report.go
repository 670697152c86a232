package upstream

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git2go "github.com/libgit2/git2go/v34"
)

// Artifact file names for a divergence report, written to the operator's
// working directory.
const (
	// ContentDiffFileName holds the fixture-scoped content diff.
	ContentDiffFileName = "FIXTURE_CHANGES"
	// NameOnlyFileName holds the repository-wide changed-path list.
	NameOnlyFileName = "FIXTURE_CHANGES_NAME_ONLY"
)

// artifactFileMode is the permission for written report artifacts.
const artifactFileMode = 0o644

// DiffReport captures what changed upstream between two revisions: a content
// diff scoped to the fixture directory and a repository-wide list of changed
// paths. It exists only to support manual review; it is never merged.
type DiffReport struct {
	// OldID and NewID are the compared revision identifiers.
	OldID string
	NewID string
	// Patch is the unified content diff of the fixture directory.
	Patch string
	// ChangedFiles lists every path changed anywhere in the repository.
	ChangedFiles []string
}

// WriteFiles persists the report as two text files in dir and returns their
// paths.
func (r *DiffReport) WriteFiles(dir string) (contentPath, namesPath string, err error) {
	contentPath = filepath.Join(dir, ContentDiffFileName)

	err = os.WriteFile(contentPath, []byte(r.Patch), artifactFileMode)
	if err != nil {
		return "", "", fmt.Errorf("write content diff: %w", err)
	}

	namesPath = filepath.Join(dir, NameOnlyFileName)
	names := strings.Join(r.ChangedFiles, "\n")

	err = os.WriteFile(namesPath, []byte(names), artifactFileMode)
	if err != nil {
		return "", "", fmt.Errorf("write name-only diff: %w", err)
	}

	return contentPath, namesPath, nil
}

// Divergence builds a DiffReport between two revisions: the content diff is
// restricted to fixtureDir, while the changed-path list covers the whole
// repository.
func (r *Repo) Divergence(oldID, newID, fixtureDir string) (*DiffReport, error) {
	oldTree, err := r.lookupTree(oldID)
	if err != nil {
		return nil, err
	}
	defer oldTree.Free()

	newTree, err := r.lookupTree(newID)
	if err != nil {
		return nil, err
	}
	defer newTree.Free()

	patch, err := r.fixturePatch(oldTree, newTree, fixtureDir)
	if err != nil {
		return nil, err
	}

	changed, err := r.changedFiles(oldTree, newTree)
	if err != nil {
		return nil, err
	}

	return &DiffReport{
		OldID:        oldID,
		NewID:        newID,
		Patch:        patch,
		ChangedFiles: changed,
	}, nil
}

// fixturePatch renders the unified diff of fixtureDir between two trees.
func (r *Repo) fixturePatch(oldTree, newTree *git2go.Tree, fixtureDir string) (string, error) {
	opts, err := git2go.DefaultDiffOptions()
	if err != nil {
		return "", fmt.Errorf("diff options: %w", err)
	}

	opts.Pathspec = []string{fixtureDir}

	diff, err := r.repo.DiffTreeToTree(oldTree, newTree, &opts)
	if err != nil {
		return "", fmt.Errorf("diff fixture trees: %w", err)
	}
	defer diff.Free()

	numDeltas, err := diff.NumDeltas()
	if err != nil {
		return "", fmt.Errorf("count fixture deltas: %w", err)
	}

	var sb strings.Builder

	for i := range numDeltas {
		patch, patchErr := diff.Patch(i)
		if patchErr != nil {
			return "", fmt.Errorf("load patch %d: %w", i, patchErr)
		}

		text, textErr := patch.String()

		patch.Free()

		if textErr != nil {
			return "", fmt.Errorf("render patch %d: %w", i, textErr)
		}

		sb.WriteString(text)
	}

	return sb.String(), nil
}

// changedFiles lists every path changed between two trees, repository-wide.
func (r *Repo) changedFiles(oldTree, newTree *git2go.Tree) ([]string, error) {
	opts, err := git2go.DefaultDiffOptions()
	if err != nil {
		return nil, fmt.Errorf("diff options: %w", err)
	}

	diff, err := r.repo.DiffTreeToTree(oldTree, newTree, &opts)
	if err != nil {
		return nil, fmt.Errorf("diff trees: %w", err)
	}
	defer diff.Free()

	numDeltas, err := diff.NumDeltas()
	if err != nil {
		return nil, fmt.Errorf("count deltas: %w", err)
	}

	paths := make([]string, 0, numDeltas)

	for i := range numDeltas {
		delta, deltaErr := diff.Delta(i)
		if deltaErr != nil {
			return nil, fmt.Errorf("load delta %d: %w", i, deltaErr)
		}

		if delta.Status == git2go.DeltaDeleted {
			paths = append(paths, delta.OldFile.Path)

			continue
		}

		paths = append(paths, delta.NewFile.Path)
	}

	return paths, nil
}
