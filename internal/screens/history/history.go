package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/progress"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

const (
	sessionLimit = 50
	answerLimit  = 2000
)

type historyLoadedMsg struct {
	Sessions []store.SessionEventRecord
	Answers  map[string][]store.AnswerEventRecord // sessionID → answers
	Err      error
}

// HistoryScreen displays finished sessions and their answers.
type HistoryScreen struct {
	env      *screen.Env
	spinner  spinner.Model
	sessions []store.SessionEventRecord
	answers  map[string][]store.AnswerEventRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(env *screen.Env) *HistoryScreen {
	return &HistoryScreen{
		env:      env,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary))),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.env.Events
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		return load(context.Background(), repo)
	})
}

func load(ctx context.Context, repo store.EventRepo) historyLoadedMsg {
	if repo == nil {
		return historyLoadedMsg{Answers: map[string][]store.AnswerEventRecord{}}
	}
	events, err := repo.QuerySessionEvents(ctx, store.QueryOpts{})
	if err != nil {
		return historyLoadedMsg{Err: err}
	}
	var ended []store.SessionEventRecord
	for _, e := range events {
		if e.Action == store.SessionEnd {
			ended = append(ended, e)
			if len(ended) == sessionLimit {
				break
			}
		}
	}

	bySession := make(map[string][]store.AnswerEventRecord)
	answers, err := repo.QueryAnswerEvents(ctx, store.QueryOpts{Limit: answerLimit})
	if err != nil {
		return historyLoadedMsg{Sessions: ended, Answers: bySession}
	}
	// Answers come newest first; list them in the order they were given.
	for i := len(answers) - 1; i >= 0; i-- {
		a := answers[i]
		bySession[a.SessionID] = append(bySession[a.SessionID], a)
	}
	return historyLoadedMsg{Sessions: ended, Answers: bySession}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.answers = msg.Answers
		}
		s.loaded = true
		return s, nil

	case spinner.TickMsg:
		if s.loaded {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  " + s.spinner.View() + " Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		dateStr := sess.Timestamp.Local().Format("Jan 02, 2006 15:04")

		var accuracy float64
		if sess.QuestionsAsked > 0 {
			accuracy = float64(sess.CorrectAnswers) / float64(sess.QuestionsAsked) * 100
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-16s %s  %d questions  ",
			prefix, dateStr, modeLabel(sess.Mode), session.FormatClock(sess.DurationSecs), sess.QuestionsAsked)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		acc := lipgloss.NewStyle().Foreground(theme.TierColor(progress.AccuracyTier(accuracy))).
			Render(fmt.Sprintf("%.0f%%", accuracy))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)+acc))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderAnswers(sess.SessionID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderAnswers(sessionID string, width int) string {
	answers := s.answers[sessionID]
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if len(answers) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    No answers recorded")) + "\n"
	}

	var b strings.Builder
	for _, a := range answers {
		mark := theme.Correct.Render("✓")
		if !a.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		text := truncate(s.questionText(a.ModuleID, a.QuestionID), 48)
		line := fmt.Sprintf("    %s %-48s %5.1fs", mark, text, float64(a.TimeMs)/1000)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	return b.String()
}

// questionText looks the question up in the catalog, falling back to its ID
// for questions that have since been removed.
func (s *HistoryScreen) questionText(moduleID, questionID string) string {
	if s.env.Catalog == nil {
		return questionID
	}
	if mod, ok := s.env.Catalog.Module(moduleID); ok {
		for _, q := range mod.Questions {
			if q.ID == questionID {
				return q.Question
			}
		}
	}
	return questionID
}

func modeLabel(mode string) string {
	if m, err := session.ParseMode(mode); err == nil {
		return m.Label()
	}
	return mode
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
