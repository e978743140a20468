package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/mastery"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/session"
)

func testSummary() session.Summary {
	return session.Summary{
		Mode:      session.ModeTimeAttack,
		Duration:  3 * time.Minute,
		TimeLimit: 3 * time.Minute,
		Answered:  8,
		Correct:   6,
		Incorrect: 2,
		Accuracy:  75,
		Blocks: []session.BlockResult{
			{Block: "TCP", Attempted: 5, Correct: 4},
			{Block: "UDP", Attempted: 3, Correct: 2},
		},
		Transitions: []mastery.LevelTransition{
			{ModuleID: "net", ModuleName: "Networking", From: mastery.LevelNone, To: mastery.LevelStarted},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	if got := New(testSummary()).Title(); got != "Time's up" {
		t.Errorf("Title = %q, want %q", got, "Time's up")
	}
	if got := New(session.Summary{Mode: session.ModeAdaptive}).Title(); got != "Results" {
		t.Errorf("Title = %q, want %q", got, "Results")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	view := New(testSummary()).View(80, 24)
	for _, want := range []string{"Well done!", "75%", "8 answered", "3:00 of 3:00", "TCP", "UDP", "Networking"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_Empty(t *testing.T) {
	view := New(session.Summary{Mode: session.ModeAdaptive}).View(80, 24)
	if !strings.Contains(view, "No questions answered") {
		t.Error("empty summary should say nothing was answered")
	}
}

func TestSummaryScreen_EnterGoesHome(t *testing.T) {
	_, cmd := New(testSummary()).Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Errorf("Enter should pop to root, got %T", cmd())
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	if n := len(New(testSummary()).KeyHints()); n != 2 {
		t.Errorf("KeyHints length = %d, want 2", n)
	}
}
