// Package prompt implements the interactive confirmation flow that gates
// deletion. The state machine is decoupled from the console: it reads
// from an io.Reader and writes to an io.Writer, so tests drive it with
// scripted input instead of a terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Decision is the terminal outcome of the confirmation flow.
type Decision int

const (
	// DecisionAborted means input ended (EOF or interrupt) before the
	// flow completed. Not an error; no deletion happens.
	DecisionAborted Decision = iota
	// DecisionDeclined means the user answered no at some gate.
	DecisionDeclined
	// DecisionConfirmed means every gate was passed; deletion may proceed.
	DecisionConfirmed
)

// State identifies a node of the confirmation state machine.
type State int

const (
	StateProceed State = iota
	StateShowDetails
	StateAcknowledge
	StateDone
)

// warningMessage mirrors the caution shown before the final gate.
const warningMessage = `
WARNING: Deleting duplicate files can be dangerous!

- Essential files might be duplicated intentionally for accessibility.
- Programs may rely on these files being in specific directories.

- This tool will delete all duplicate instances of a file. Duplicates are
  defined as having the same binary data. Only one single instance will be
  kept: the file with the shortest path from the scanned root.

Please consider these risks before proceeding.
`

// Flow runs the multi-step deletion confirmation.
type Flow struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewFlow creates a confirmation flow reading answers from in and
// printing prompts to out.
func NewFlow(in io.Reader, out io.Writer) *Flow {
	return &Flow{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Confirm walks the state machine:
//
//	Proceed -> [no: Done] -> ShowDetails (skipped when details were
//	already printed) -> Acknowledge -> Done
//
// showDetails is invoked at most once, when the user asks to see the
// duplicate listings. detailsShown suppresses the ShowDetails gate when
// the listings were already printed during reporting.
func (f *Flow) Confirm(detailsShown bool, showDetails func()) Decision {
	state := StateProceed

	for state != StateDone {
		switch state {
		case StateProceed:
			answer, ok := f.askYesNo("Proceed to delete duplicates? (yes/no)? ")
			if !ok {
				return DecisionAborted
			}
			if !answer {
				return DecisionDeclined
			}
			fmt.Fprint(f.out, warningMessage)
			if detailsShown {
				state = StateAcknowledge
			} else {
				state = StateShowDetails
			}

		case StateShowDetails:
			answer, ok := f.askYesNo("Do you want to see all the files (absolute paths) which share the same binary data? (yes/no)? ")
			if !ok {
				return DecisionAborted
			}
			if answer && showDetails != nil {
				showDetails()
			}
			state = StateAcknowledge

		case StateAcknowledge:
			answer, ok := f.askYesNo("Do you know what you are doing (yes/no)? ")
			if !ok {
				return DecisionAborted
			}
			if !answer {
				return DecisionDeclined
			}
			state = StateDone
		}
	}

	return DecisionConfirmed
}

// askYesNo prompts until it reads one of yes/y/no/n (case-insensitive).
// Any other input re-prompts without a state change. ok is false when
// input is exhausted.
func (f *Flow) askYesNo(question string) (answer, ok bool) {
	for {
		fmt.Fprint(f.out, question)

		if !f.in.Scan() {
			fmt.Fprintln(f.out)
			return false, false
		}

		switch strings.ToLower(strings.TrimSpace(f.in.Text())) {
		case "yes", "y":
			return true, true
		case "no", "n":
			return false, true
		default:
			fmt.Fprintln(f.out, "Please enter 'yes'/'y' or 'no'/'n'.")
		}
	}
}
