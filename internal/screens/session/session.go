// Package session is the quiz screen: one question at a time with shuffled
// options, feedback after each answer and, in time attack, a countdown.
package session

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/summary"
	sess "github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
)

// SessionScreen implements screen.Screen for a running quiz.
type SessionScreen struct {
	env   *screen.Env
	sess  *sess.Session
	title string

	// cursor is the highlighted display index while answering.
	cursor int

	bookmarked  map[string]bool
	confirmQuit bool
	finished    bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.BackInterceptor = (*SessionScreen)(nil)

// Start builds and starts a session and returns its screen. It fails with
// session.ErrEmpty when the options select no questions.
func Start(ctx context.Context, env *screen.Env, title string, opts sess.Options) (*SessionScreen, error) {
	s, err := sess.New(ctx, sess.Deps{
		Learner:  env.Learner,
		Events:   env.Events,
		Rng:      env.Rng,
		Selector: env.Selector,
		Log:      env.Log,
		Now:      env.Now,
	}, opts)
	if err != nil {
		return nil, err
	}
	if err := s.Start(ctx); err != nil {
		return nil, err
	}

	bm := make(map[string]bool)
	for _, id := range env.Learner.Bookmarks(ctx) {
		bm[id] = true
	}
	return &SessionScreen{env: env, sess: s, title: title, bookmarked: bm}, nil
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.sess.Countdown() != nil {
		return tickCmd()
	}
	return nil
}

func (s *SessionScreen) Title() string {
	return s.title
}

// InterceptBack keeps Esc for the quit confirmation.
func (s *SessionScreen) InterceptBack() bool { return !s.finished }

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.sess.Phase() == sess.PhaseFeedback {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "M", Description: "Bookmark"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "A-F", Description: "Choose"},
		{Key: "Enter", Description: "Check"},
		{Key: "M", Description: "Bookmark"},
	}
	if s.sess.Mode().Listed() {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Prev/Skip"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick()
	case bookmarkToggledMsg:
		return s, screen.StatusChanged
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleTick() (screen.Screen, tea.Cmd) {
	if s.finished {
		return s, nil
	}
	s.sess.Tick(context.Background())
	if s.sess.Phase() == sess.PhaseResults {
		return s, s.finish()
	}
	return s, tickCmd()
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.finished {
		return s, nil
	}
	key := msg.String()
	ctx := context.Background()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			s.sess.End(ctx)
			return s, s.finish()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "m", "M":
		return s, s.toggleBookmark()
	}

	if s.sess.Phase() == sess.PhaseFeedback {
		switch key {
		case "enter", "space", " ", "right", "l", "n":
			return s, s.next(ctx)
		}
		return s, nil
	}

	_, shuffled, ok := s.sess.Current()
	if !ok {
		return s, nil
	}
	n := len(shuffled.Options)

	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
		s.sess.Select(s.cursor)
	case "down", "j":
		if s.cursor < n-1 {
			s.cursor++
		}
		s.sess.Select(s.cursor)
	case "enter":
		if s.sess.Selected() < 0 {
			s.sess.Select(s.cursor)
		}
		if s.sess.Submit(ctx) != nil {
			return s, screen.StatusChanged
		}
	case "left", "h":
		if s.sess.Previous() {
			s.cursor = 0
		}
	case "right", "l":
		if s.sess.Mode().Listed() {
			return s, s.next(ctx)
		}
	default:
		if i := components.IndexForKey(key, n); i >= 0 {
			s.cursor = i
			s.sess.Select(i)
		}
	}
	return s, nil
}

// next advances to the next question or finishes when none are left.
func (s *SessionScreen) next(ctx context.Context) tea.Cmd {
	s.cursor = 0
	if !s.sess.Next(ctx) {
		return s.finish()
	}
	return nil
}

func (s *SessionScreen) toggleBookmark() tea.Cmd {
	q, _, ok := s.sess.Current()
	if !ok {
		return nil
	}
	on := s.sess.ToggleBookmark(context.Background())
	s.bookmarked[q.ID] = on
	return func() tea.Msg { return bookmarkToggledMsg{On: on} }
}

// finish swaps the quiz for its summary.
func (s *SessionScreen) finish() tea.Cmd {
	if s.finished {
		return nil
	}
	s.finished = true
	sum := s.sess.Summary()
	return tea.Batch(
		screen.StatusChanged,
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: summary.New(sum)} },
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
