package screen

import (
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/logger"
	"github.com/abhisek/quizdeck/internal/selector"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Refresher is implemented by screens whose content depends on learner
// state. The router calls Refresh when the screen becomes active again.
type Refresher interface {
	Refresh() tea.Cmd
}

// BackInterceptor is implemented by screens that handle Esc themselves,
// e.g. to confirm quitting a quiz, instead of letting the app pop them.
type BackInterceptor interface {
	InterceptBack() bool
}

// StatusChangedMsg tells the app that learner data changed and the header
// should be recomputed.
type StatusChangedMsg struct{}

// StatusChanged is a tea.Cmd producing StatusChangedMsg.
func StatusChanged() tea.Msg { return StatusChangedMsg{} }

// Env is what screens need to run quizzes. It is shared by every screen
// of one program.
type Env struct {
	Catalog  *catalog.Catalog
	Learner  *store.Learner
	Events   store.EventRepo
	Rng      *rand.Rand
	Selector *selector.Selector
	Log      *logger.Logger

	// ExportDir receives progress exports.
	ExportDir string

	Now func() time.Time
}

// Clock returns e.Now or time.Now.
func (e *Env) Clock() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Logger returns e.Log, or a no-op logger when unset.
func (e *Env) Logger() *logger.Logger {
	if e.Log != nil {
		return e.Log
	}
	return logger.Nop()
}
