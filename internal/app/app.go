package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/home"
	"github.com/abhisek/quizdeck/internal/screens/welcome"
	"github.com/abhisek/quizdeck/internal/stats"
	"github.com/abhisek/quizdeck/internal/streak"
	"github.com/abhisek/quizdeck/internal/ui/layout"
)

// Options configure the first screens of a run.
type Options struct {
	// Initial, when set, is pushed above the home screen, e.g. a quiz
	// started from the command line. The splash is skipped.
	Initial screen.Screen
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	env     *screen.Env
	status  layout.Status
	initCmd tea.Cmd
	width   int
	height  int
}

// newAppModel creates the model with the home screen at the root, behind
// the splash on first launch.
func newAppModel(env *screen.Env, opts Options) AppModel {
	m := AppModel{env: env}
	newHome := func() screen.Screen { return home.New(env) }

	switch {
	case opts.Initial != nil:
		m.router = router.New(newHome())
		m.initCmd = m.router.Push(opts.Initial)
	case !env.Learner.HasSeenSplash(context.Background()):
		w := welcome.New(env, newHome)
		m.router = router.New(w)
		m.initCmd = w.Init()
	default:
		m.router = router.New(newHome())
	}
	m.status = computeStatus(env)
	return m
}

// computeStatus derives the header summary from learner data.
func computeStatus(env *screen.Env) layout.Status {
	ctx := context.Background()
	m := env.Learner.Stats(ctx)

	var all []catalog.Question
	for _, t := range env.Catalog.Topics() {
		for _, qs := range t.QuestionSets() {
			all = append(all, qs...)
		}
	}
	g := stats.Summarize(all, m)

	st := layout.Status{Accuracy: g.Accuracy(), Answered: g.AnsweredQuestions}
	if s := env.Learner.Streak(ctx); s != nil {
		st.Streak = streak.Current(*s, env.Clock()).CurrentStreak
	}
	return st
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.StatusChangedMsg:
		m.status = computeStatus(m.env)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bi, ok := m.router.Active().(screen.BackInterceptor); ok && bi.InterceptBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Any key", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(env *screen.Env, opts Options) error {
	p := tea.NewProgram(newAppModel(env, opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
