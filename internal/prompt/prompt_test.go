package prompt

import (
	"bytes"
	"strings"
	"testing"
)

// runFlow drives the state machine with scripted input lines.
func runFlow(t *testing.T, input string, detailsShown bool) (Decision, *bytes.Buffer, int) {
	t.Helper()

	var out bytes.Buffer
	detailsCalls := 0

	flow := NewFlow(strings.NewReader(input), &out)
	decision := flow.Confirm(detailsShown, func() {
		detailsCalls++
	})

	return decision, &out, detailsCalls
}

func TestConfirmDeclinedAtProceed(t *testing.T) {
	decision, out, calls := runFlow(t, "no\n", false)

	if decision != DecisionDeclined {
		t.Errorf("decision = %v, want declined", decision)
	}
	if calls != 0 {
		t.Error("details must not be shown after declining")
	}
	if strings.Contains(out.String(), "WARNING") {
		t.Error("warning should not print when the user declines upfront")
	}
}

func TestConfirmFullAffirmativePath(t *testing.T) {
	decision, out, calls := runFlow(t, "yes\nyes\nyes\n", false)

	if decision != DecisionConfirmed {
		t.Errorf("decision = %v, want confirmed", decision)
	}
	if calls != 1 {
		t.Errorf("details shown %d times, want 1", calls)
	}
	if !strings.Contains(out.String(), "WARNING") {
		t.Error("warning text missing")
	}
}

func TestConfirmSkipDetails(t *testing.T) {
	decision, _, calls := runFlow(t, "y\nn\ny\n", false)

	if decision != DecisionConfirmed {
		t.Errorf("decision = %v, want confirmed", decision)
	}
	if calls != 0 {
		t.Error("details shown despite answering no")
	}
}

func TestConfirmDeclinedAtAcknowledgement(t *testing.T) {
	decision, _, _ := runFlow(t, "yes\nno\nno\n", false)

	if decision != DecisionDeclined {
		t.Errorf("decision = %v, want declined", decision)
	}
}

func TestConfirmDetailsAlreadyShownSkipsGate(t *testing.T) {
	// With details already printed, only two gates remain.
	decision, out, calls := runFlow(t, "yes\nyes\n", true)

	if decision != DecisionConfirmed {
		t.Errorf("decision = %v, want confirmed", decision)
	}
	if calls != 0 {
		t.Error("details callback must not fire when listings were already shown")
	}
	if strings.Contains(out.String(), "see all the files") {
		t.Error("show-details prompt should be skipped")
	}
}

func TestConfirmRepromptsOnInvalidInput(t *testing.T) {
	decision, out, _ := runFlow(t, "maybe\nsure\nYES\nn\ny\n", false)

	if decision != DecisionConfirmed {
		t.Errorf("decision = %v, want confirmed", decision)
	}
	if got := strings.Count(out.String(), "Please enter 'yes'/'y' or 'no'/'n'."); got != 2 {
		t.Errorf("expected 2 re-prompts, saw %d", got)
	}
}

func TestConfirmCaseInsensitiveTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Decision
	}{
		{"upper yes", "YES\nNO\nYES\n", DecisionConfirmed},
		{"mixed case", "Yes\nNo\nY\n", DecisionConfirmed},
		{"upper no", "NO\n", DecisionDeclined},
		{"padded", "  yes  \n n \n y \n", DecisionConfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, _, _ := runFlow(t, tt.input, false)
			if decision != tt.expected {
				t.Errorf("decision = %v, want %v", decision, tt.expected)
			}
		})
	}
}

func TestConfirmAbortedOnEOF(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"immediate EOF", ""},
		{"EOF at details", "yes\n"},
		{"EOF at acknowledgement", "yes\nno\n"},
		{"EOF mid re-prompt", "yes\nno\nwhat\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, _, _ := runFlow(t, tt.input, false)
			if decision != DecisionAborted {
				t.Errorf("decision = %v, want aborted", decision)
			}
		})
	}
}
