package commands

import (
	"context"

	"github.com/grammarkit/corpusync/pkg/upstream"
)

// revisionSource binds an upstream repository and its fixture directory to
// the orchestrator's revision source contract.
type revisionSource struct {
	repo       *upstream.Repo
	fixtureDir string
}

// SyncHead pulls the upstream clone and returns its head.
func (s *revisionSource) SyncHead(ctx context.Context) (string, error) {
	return s.repo.SyncHead(ctx)
}

// Divergence builds the diff report scoped to the fixture directory.
func (s *revisionSource) Divergence(oldID, newID string) (*upstream.DiffReport, error) {
	return s.repo.Divergence(oldID, newID, s.fixtureDir)
}
