package session

import (
	"fmt"
	"time"
)

// Mode decides which questions a session draws and in what order.
type Mode string

const (
	// ModeAdaptive draws weighted random questions until the pool runs out.
	ModeAdaptive Mode = "adaptive"

	// ModeFailed reviews questions failed more often than passed.
	ModeFailed Mode = "failed"

	// ModeBookmarked reviews bookmarked questions.
	ModeBookmarked Mode = "bookmarked"

	// ModeBlock reviews one block of a module.
	ModeBlock Mode = "block"

	// ModeSequential walks every question in catalog order.
	ModeSequential Mode = "sequential"

	// ModeTimeAttack is adaptive selection against a countdown.
	ModeTimeAttack Mode = "time-attack"
)

// Modes lists every mode in menu order.
func Modes() []Mode {
	return []Mode{ModeAdaptive, ModeTimeAttack, ModeSequential, ModeFailed, ModeBookmarked, ModeBlock}
}

// ParseMode maps a CLI flag value to a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Label is the menu label for m.
func (m Mode) Label() string {
	switch m {
	case ModeAdaptive:
		return "Practice"
	case ModeFailed:
		return "Review failed"
	case ModeBookmarked:
		return "Review bookmarks"
	case ModeBlock:
		return "Review block"
	case ModeSequential:
		return "Sequential"
	case ModeTimeAttack:
		return "Time attack"
	default:
		return string(m)
	}
}

// Listed reports whether m walks a fixed list snapshotted at start rather
// than sampling with the selector.
func (m Mode) Listed() bool {
	switch m {
	case ModeFailed, ModeBookmarked, ModeBlock, ModeSequential:
		return true
	}
	return false
}

// TimeAttackDurations are the selectable countdown lengths.
var TimeAttackDurations = []time.Duration{3 * time.Minute, 5 * time.Minute}

// Phase is the session lifecycle.
type Phase int

const (
	PhaseSetup    Phase = iota // Created, not started
	PhasePlaying               // A question is shown and awaits an answer
	PhaseFeedback              // The answer was submitted and graded
	PhaseResults               // Session over; no more questions load
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhasePlaying:
		return "playing"
	case PhaseFeedback:
		return "feedback"
	case PhaseResults:
		return "results"
	default:
		return "unknown"
	}
}
