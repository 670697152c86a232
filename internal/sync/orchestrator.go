package sync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/grammarkit/corpusync/pkg/checkpoint"
	"github.com/grammarkit/corpusync/pkg/corpus"
	"github.com/grammarkit/corpusync/pkg/upstream"
)

// corpusDirMode is the permission for a freshly created corpus directory.
const corpusDirMode = 0o755

// ErrNoPrompter is returned when a confirmation is needed but no prompter
// was wired in.
var ErrNoPrompter = errors.New("confirmation required but no prompter configured")

// RevisionSource abstracts the upstream revision tracker so the
// orchestrator can be driven by a fake in tests.
type RevisionSource interface {
	// SyncHead synchronizes the upstream clone and returns the resulting
	// head revision identifier.
	SyncHead(ctx context.Context) (string, error)
	// Divergence builds a diff report between two revisions.
	Divergence(oldID, newID string) (*upstream.DiffReport, error)
}

// CorpusWalker abstracts the fixture-to-corpus conversion pass.
type CorpusWalker interface {
	Walk(fixtureRoot, outputRoot string) (*corpus.WalkReport, error)
}

// Orchestrator runs one synchronization pass. It owns every interactive
// confirmation point; all revision and conversion work is delegated.
type Orchestrator struct {
	// Source tracks the upstream revision state.
	Source RevisionSource
	// Store persists the absorbed-revision checkpoint.
	Store *checkpoint.Store
	// Walker converts the fixture tree into corpus entries.
	Walker CorpusWalker
	// Prompt answers the initialization confirmations.
	Prompt Prompter

	// FixtureRoot is the fixture tree inside the upstream clone.
	FixtureRoot string
	// OutputRoot is the official corpus directory being populated.
	OutputRoot string
	// ArtifactDir receives divergence report files, normally the
	// operator's working directory.
	ArtifactDir string

	// Out receives operator-facing status messages.
	Out io.Writer
	// Log receives structured progress records.
	Log *slog.Logger
}

// Result is the final position of a sync run.
type Result struct {
	State  State
	Report *corpus.WalkReport
}

// Run executes the state machine until a terminal state. The returned error
// is non-nil only for StateFailed; UpToDate, DivergedHalt, Committed, and
// Aborted are all normal outcomes.
func (o *Orchestrator) Run(ctx context.Context) (Result, error) {
	oldID, state, err := o.prepare()
	if err != nil {
		return Result{State: StateFailed}, err
	}

	if state == StateAborted {
		return Result{State: StateAborted}, nil
	}

	o.logStep(state)

	head, err := o.Source.SyncHead(ctx)
	if err != nil {
		return Result{State: StateFailed}, fmt.Errorf("sync upstream: %w", err)
	}

	o.logStep(StateCheckingRevision, "checkpoint", oldID, "head", head)

	switch upstream.Compare(oldID, head) {
	case upstream.OutcomeUpToDate:
		fmt.Fprintln(o.Out, "The corpus already matches upstream. Nothing to do.")

		return Result{State: StateUpToDate}, nil

	case upstream.OutcomeDiverged:
		return o.halt(oldID, head)

	case upstream.OutcomeInitialize:
	}

	o.logStep(StateWalking)

	report, err := o.Walker.Walk(o.FixtureRoot, o.OutputRoot)
	if err != nil {
		return Result{State: StateFailed}, err
	}

	err = o.Store.Save(head)
	if err != nil {
		return Result{State: StateFailed}, err
	}

	o.logStep(StateCommitted, "revision", head, "entries", report.TotalEmitted())

	return Result{State: StateCommitted, Report: report}, nil
}

// prepare resolves the corpus directory's starting condition: absent (plain
// initialization), present without a checkpoint (destructive
// reinitialization, separately guarded), or present with one (ordinary
// revision check). It returns the loaded checkpoint identifier, empty when
// the run is an initialization.
func (o *Orchestrator) prepare() (string, State, error) {
	info, err := os.Stat(o.OutputRoot)

	switch {
	case errors.Is(err, os.ErrNotExist):
		return o.initialize()

	case err != nil:
		return "", StateFailed, fmt.Errorf("stat corpus directory: %w", err)

	case !info.IsDir():
		return "", StateFailed, fmt.Errorf("corpus path %s is not a directory", o.OutputRoot)
	}

	oldID, found, err := o.Store.Load()
	if err != nil {
		return "", StateFailed, err
	}

	if found {
		return oldID, StateCheckingRevision, nil
	}

	return o.reinitialize()
}

// initialize handles the first-time setup of a missing corpus directory.
func (o *Orchestrator) initialize() (string, State, error) {
	fmt.Fprintf(o.Out, "There is no corpus directory %s yet.\n", o.OutputRoot)

	ok, err := o.confirm("Initialize the corpus?")
	if err != nil {
		return "", StateFailed, err
	}

	if !ok {
		return "", StateAborted, nil
	}

	err = os.MkdirAll(o.OutputRoot, corpusDirMode)
	if err != nil {
		return "", StateFailed, fmt.Errorf("create corpus directory: %w", err)
	}

	return "", StateNeedsInit, nil
}

// reinitialize handles a corpus directory that exists without a checkpoint.
// The directory's contents are of unknown provenance, so rebuilding requires
// its own confirmation and deletes everything under it.
func (o *Orchestrator) reinitialize() (string, State, error) {
	fmt.Fprintf(o.Out, "There is no %s file under %s.\n", checkpoint.FileName, o.OutputRoot)

	question := fmt.Sprintf(
		"Reinitialize the corpus?\nWARNING: this deletes every file under %s.", o.OutputRoot)

	ok, err := o.confirm(question)
	if err != nil {
		return "", StateFailed, err
	}

	if !ok {
		return "", StateAborted, nil
	}

	err = os.RemoveAll(o.OutputRoot)
	if err != nil {
		return "", StateFailed, fmt.Errorf("remove corpus directory: %w", err)
	}

	err = os.MkdirAll(o.OutputRoot, corpusDirMode)
	if err != nil {
		return "", StateFailed, fmt.Errorf("recreate corpus directory: %w", err)
	}

	return "", StateReinit, nil
}

// halt writes the divergence report and stops for manual review. This is a
// normal outcome: reconciling upstream edits takes human judgment, and the
// checkpoint stays authoritative until the operator updates it.
func (o *Orchestrator) halt(oldID, head string) (Result, error) {
	report, err := o.Source.Divergence(oldID, head)
	if err != nil {
		return Result{State: StateFailed}, err
	}

	contentPath, namesPath, err := report.WriteFiles(o.ArtifactDir)
	if err != nil {
		return Result{State: StateFailed}, err
	}

	fmt.Fprintf(o.Out,
		"Upstream moved from %s to %s.\nDiff saved to %s and %s.\nReview the changes, update the corpus by hand, then update %s.\n",
		oldID, head, contentPath, namesPath, o.Store.Path())

	o.logStep(StateDivergedHalt, "old", oldID, "new", head)

	return Result{State: StateDivergedHalt}, nil
}

// confirm routes a question through the prompter.
func (o *Orchestrator) confirm(question string) (bool, error) {
	if o.Prompt == nil {
		return false, ErrNoPrompter
	}

	return o.Prompt.Confirm(question)
}

// logStep records a state transition when logging is wired.
func (o *Orchestrator) logStep(state State, args ...any) {
	if o.Log == nil {
		return
	}

	o.Log.Debug("sync state", append([]any{"state", state.String()}, args...)...)
}
