// Package modes is the quiz setup screen: pick a mode for the chosen
// modules, then a block or a time limit where the mode needs one.
package modes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	sessionscreen "github.com/abhisek/quizdeck/internal/screens/session"
	"github.com/abhisek/quizdeck/internal/selector"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

type level int

const (
	levelModes level = iota
	levelBlocks
	levelDurations
)

// ModesScreen lists the quiz modes available for a set of modules.
type ModesScreen struct {
	env     *screen.Env
	title   string
	modules []*catalog.Module

	level  level
	menu   components.Menu
	gen    int // bumped whenever menu is rebuilt
	counts map[session.Mode]int
	blocks []string
	errMsg string
}

var _ screen.Screen = (*ModesScreen)(nil)
var _ screen.KeyHintProvider = (*ModesScreen)(nil)
var _ screen.Refresher = (*ModesScreen)(nil)
var _ screen.BackInterceptor = (*ModesScreen)(nil)

// New creates a mode menu for modules. title names the selection, e.g. a
// module name or "All modules".
func New(env *screen.Env, title string, modules []*catalog.Module) *ModesScreen {
	s := &ModesScreen{env: env, title: title, modules: modules}
	s.recount()
	s.showModes()
	return s
}

func (s *ModesScreen) Init() tea.Cmd { return nil }

func (s *ModesScreen) Title() string { return s.title }

// Refresh recounts failed and bookmarked questions after a quiz.
func (s *ModesScreen) Refresh() tea.Cmd {
	s.recount()
	if s.level == levelModes {
		sel := s.menu.Selected
		s.showModes()
		s.menu.Selected = min(sel, len(s.menu.Items)-1)
	}
	return nil
}

// InterceptBack lets Esc leave the block and duration submenus.
func (s *ModesScreen) InterceptBack() bool { return s.level != levelModes }

func (s *ModesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ModesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" && s.level != levelModes {
		s.errMsg = ""
		s.showModes()
		return s, nil
	}
	// Menu actions may rebuild s.menu; keep the rebuilt one.
	gen := s.gen
	menu, cmd := s.menu.Update(msg)
	if s.gen == gen {
		s.menu = menu
	}
	return s, cmd
}

func (s *ModesScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	heading := "Choose a mode"
	switch s.level {
	case levelBlocks:
		heading = "Choose a block"
	case levelDurations:
		heading = "Choose a time limit"
	}
	b.WriteString(theme.Title.Render(heading))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render(s.errMsg))
	}
	return components.Centered(components.Card(b.String(), cw), width, height)
}

func (s *ModesScreen) questions() []catalog.Question {
	var qs []catalog.Question
	for _, m := range s.modules {
		qs = append(qs, m.Questions...)
	}
	return qs
}

func (s *ModesScreen) recount() {
	ctx := context.Background()
	qs := s.questions()
	m := s.env.Learner.Stats(ctx)
	s.blocks = catalog.Blocks(qs)
	s.counts = map[session.Mode]int{
		session.ModeAdaptive:   len(qs),
		session.ModeTimeAttack: len(qs),
		session.ModeSequential: len(qs),
		session.ModeFailed:     len(selector.FailingMoreThanPassing(qs, m)),
		session.ModeBookmarked: len(selector.Bookmarked(qs, selector.IDSet(s.env.Learner.Bookmarks(ctx)))),
		session.ModeBlock:      len(s.blocks),
	}
}

func (s *ModesScreen) showModes() {
	s.gen++
	s.level = levelModes
	var items []components.MenuItem
	for _, mode := range session.Modes() {
		mode := mode
		detail := fmt.Sprintf("%d questions", s.counts[mode])
		if mode == session.ModeBlock {
			detail = fmt.Sprintf("%d blocks", s.counts[mode])
		}
		items = append(items, components.MenuItem{
			Label:    mode.Label(),
			Detail:   detail,
			Disabled: mode == session.ModeBlock && len(s.blocks) == 0,
			Action: func() tea.Cmd {
				switch mode {
				case session.ModeBlock:
					s.showBlocks()
					return nil
				case session.ModeTimeAttack:
					s.showDurations()
					return nil
				}
				return s.start(session.Options{Mode: mode})
			},
		})
	}
	s.menu = components.NewMenu(items)
}

func (s *ModesScreen) showBlocks() {
	s.gen++
	s.level = levelBlocks
	qs := s.questions()
	items := make([]components.MenuItem, 0, len(s.blocks))
	for _, blk := range s.blocks {
		blk := blk
		items = append(items, components.MenuItem{
			Label:  blk,
			Detail: fmt.Sprintf("%d questions", len(selector.InBlock(qs, blk))),
			Action: func() tea.Cmd {
				return s.start(session.Options{Mode: session.ModeBlock, Block: blk})
			},
		})
	}
	s.menu = components.NewMenu(items)
}

func (s *ModesScreen) showDurations() {
	s.gen++
	s.level = levelDurations
	items := make([]components.MenuItem, 0, len(session.TimeAttackDurations))
	for _, d := range session.TimeAttackDurations {
		d := d
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("%d minutes", int(d/time.Minute)),
			Action: func() tea.Cmd {
				return s.start(session.Options{Mode: session.ModeTimeAttack, TimeLimit: d})
			},
		})
	}
	s.menu = components.NewMenu(items)
}

func (s *ModesScreen) start(opts session.Options) tea.Cmd {
	opts.Modules = s.modules
	title := opts.Mode.Label()
	if opts.Block != "" {
		title += ": " + opts.Block
	}

	scr, err := sessionscreen.Start(context.Background(), s.env, title, opts)
	if errors.Is(err, session.ErrEmpty) {
		s.errMsg = "Nothing to review in this mode yet."
		return nil
	}
	if err != nil {
		s.env.Logger().Error("start session failed", "mode", string(opts.Mode), "error", err)
		s.errMsg = "Could not start the quiz: " + err.Error()
		return nil
	}
	s.errMsg = ""
	if s.level != levelModes {
		s.showModes()
	}
	return router.Push(scr)
}
