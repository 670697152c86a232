package upstream

// Outcome classifies the relationship between the absorbed checkpoint and
// the current upstream head.
type Outcome int

const (
	// OutcomeInitialize means no checkpoint exists; the corpus must be
	// populated from scratch.
	OutcomeInitialize Outcome = iota
	// OutcomeUpToDate means the checkpoint already matches the head.
	OutcomeUpToDate
	// OutcomeDiverged means the head moved past the checkpoint; the sync
	// halts for manual review instead of merging.
	OutcomeDiverged
)

// String returns a short label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeInitialize:
		return "initialize"
	case OutcomeUpToDate:
		return "up-to-date"
	case OutcomeDiverged:
		return "diverged"
	default:
		return "unknown"
	}
}

// Compare classifies oldID against newID. An empty oldID means no revision
// was ever absorbed.
func Compare(oldID, newID string) Outcome {
	switch {
	case oldID == "":
		return OutcomeInitialize
	case oldID == newID:
		return OutcomeUpToDate
	default:
		return OutcomeDiverged
	}
}
