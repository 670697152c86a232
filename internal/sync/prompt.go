package sync

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter answers yes/no questions on the orchestrator's behalf, so the
// state machine stays testable without console input.
type Prompter interface {
	// Confirm asks the question and returns the operator's decision.
	Confirm(question string) (bool, error)
}

// TerminalPrompter asks on Out and reads single-letter answers from In,
// case-insensitively, re-asking until it gets a y or an n.
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer

	scanner *bufio.Scanner
}

// Confirm implements Prompter.
func (p *TerminalPrompter) Confirm(question string) (bool, error) {
	if p.scanner == nil {
		p.scanner = bufio.NewScanner(p.In)
	}

	for {
		fmt.Fprintf(p.Out, "%s [y/n]: ", question)

		if !p.scanner.Scan() {
			err := p.scanner.Err()
			if err != nil {
				return false, fmt.Errorf("read answer: %w", err)
			}

			return false, io.ErrUnexpectedEOF
		}

		switch strings.ToLower(strings.TrimSpace(p.scanner.Text())) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		default:
			fmt.Fprintln(p.Out, "Enter y or n")
		}
	}
}

// AssumeYes is a Prompter that confirms everything, for unattended runs.
type AssumeYes struct{}

// Confirm implements Prompter by always answering yes.
func (AssumeYes) Confirm(string) (bool, error) {
	return true, nil
}
