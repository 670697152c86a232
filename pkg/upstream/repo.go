// Package upstream tracks the revision state of the upstream fixture
// repository: synchronizing the local clone, resolving its head, and
// computing divergence reports between absorbed and current revisions.
package upstream

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	git2go "github.com/libgit2/git2go/v34"
)

// Repo wraps a local clone of the upstream repository.
type Repo struct {
	repo *git2go.Repository
	path string
}

// Open opens the upstream clone at the given path.
func Open(path string) (*Repo, error) {
	repo, err := git2go.OpenRepository(path)
	if err != nil {
		return nil, fmt.Errorf("open upstream repository: %w", err)
	}

	return &Repo{repo: repo, path: path}, nil
}

// Path returns the clone's filesystem path.
func (r *Repo) Path() string {
	return r.path
}

// Free releases the underlying repository resources.
func (r *Repo) Free() {
	if r.repo != nil {
		r.repo.Free()
		r.repo = nil
	}
}

// Head returns the clone's current head revision identifier.
func (r *Repo) Head() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	defer ref.Free()

	return ref.Target().String(), nil
}

// Pull synchronizes the clone with its remote via the system git client,
// which carries the operator's credential and ssh-agent configuration.
// On failure the underlying git error text is surfaced verbatim.
func (r *Repo) Pull(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "git", "pull")
	cmd.Dir = r.path

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("git pull: %w", err)
		}

		return fmt.Errorf("git pull: %w: %s", err, msg)
	}

	return nil
}

// SyncHead pulls the latest upstream state and returns the resulting head
// revision identifier.
func (r *Repo) SyncHead(ctx context.Context) (string, error) {
	err := r.Pull(ctx)
	if err != nil {
		return "", err
	}

	return r.Head()
}

// lookupTree resolves the root tree of the commit named by id.
func (r *Repo) lookupTree(id string) (*git2go.Tree, error) {
	oid, err := git2go.NewOid(id)
	if err != nil {
		return nil, fmt.Errorf("parse revision %q: %w", id, err)
	}

	commit, err := r.repo.LookupCommit(oid)
	if err != nil {
		return nil, fmt.Errorf("lookup commit %s: %w", id, err)
	}
	defer commit.Free()

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("lookup tree of %s: %w", id, err)
	}

	return tree, nil
}
