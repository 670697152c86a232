// Package sync sequences a corpus synchronization run: revision checking,
// initialization decisions, the fixture walk, and the checkpoint commit.
package sync

// State is a position in the sync state machine.
type State int

const (
	// StateStart is the initial state.
	StateStart State = iota
	// StateNeedsInit means the corpus directory is missing and first-time
	// initialization was confirmed.
	StateNeedsInit
	// StateReinit means the corpus directory exists without a checkpoint
	// and destructive reinitialization was confirmed.
	StateReinit
	// StateCheckingRevision means the checkpoint is being compared with
	// the upstream head.
	StateCheckingRevision
	// StateWalking means the fixture tree is being converted.
	StateWalking
	// StateUpToDate is terminal: the checkpoint already matches upstream.
	StateUpToDate
	// StateDivergedHalt is terminal: upstream moved past the checkpoint
	// and a diff report was written for manual review.
	StateDivergedHalt
	// StateCommitted is terminal: the walk finished and the checkpoint
	// was advanced.
	StateCommitted
	// StateAborted is terminal: the operator declined a confirmation.
	// It is a clean exit, not an error.
	StateAborted
	// StateFailed is terminal: the run hit an error before committing.
	StateFailed
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateNeedsInit:
		return "needs-init"
	case StateReinit:
		return "reinit"
	case StateCheckingRevision:
		return "checking-revision"
	case StateWalking:
		return "walking"
	case StateUpToDate:
		return "up-to-date"
	case StateDivergedHalt:
		return "diverged-halt"
	case StateCommitted:
		return "committed"
	case StateAborted:
		return "aborted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the machine stops in this state.
func (s State) Terminal() bool {
	switch s {
	case StateUpToDate, StateDivergedHalt, StateCommitted, StateAborted, StateFailed:
		return true
	default:
		return false
	}
}
