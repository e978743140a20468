// Package picker lets the learner combine two or more modules of a topic
// into one quiz.
package picker

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/progress"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/modes"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// MinModules is the smallest selection that can start a quiz.
const MinModules = 2

// PickerScreen is a toggle list over a topic's modules.
type PickerScreen struct {
	env     *screen.Env
	topic   *catalog.Topic
	cursor  int
	picked  map[string]bool
	summary map[string]progress.Summary
	errMsg  string
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

func New(env *screen.Env, topic *catalog.Topic) *PickerScreen {
	p := &PickerScreen{
		env:     env,
		topic:   topic,
		picked:  make(map[string]bool),
		summary: make(map[string]progress.Summary),
	}
	m := env.Learner.Stats(context.Background())
	for _, mod := range topic.Modules {
		p.summary[mod.ID] = progress.ForModule(mod.Questions, m)
	}
	return p
}

func (p *PickerScreen) Init() tea.Cmd { return nil }

func (p *PickerScreen) Title() string { return "Mix modules" }

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Toggle"},
		{Key: "A", Description: "All"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selected returns the picked modules in catalog order.
func (p *PickerScreen) Selected() []*catalog.Module {
	var out []*catalog.Module
	for _, mod := range p.topic.Modules {
		if p.picked[mod.ID] {
			out = append(out, mod)
		}
	}
	return out
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	n := len(p.topic.Modules)
	switch kmsg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < n-1 {
			p.cursor++
		}
	case "space", " ", "x":
		if n > 0 {
			id := p.topic.Modules[p.cursor].ID
			p.picked[id] = !p.picked[id]
			p.errMsg = ""
		}
	case "a", "A":
		p.toggleAll()
	case "enter":
		return p, p.start()
	}
	return p, nil
}

// toggleAll selects every module, or clears the selection when all are
// already selected.
func (p *PickerScreen) toggleAll() {
	all := len(p.Selected()) == len(p.topic.Modules)
	for _, mod := range p.topic.Modules {
		p.picked[mod.ID] = !all
	}
	p.errMsg = ""
}

func (p *PickerScreen) start() tea.Cmd {
	sel := p.Selected()
	if len(sel) < MinModules {
		p.errMsg = fmt.Sprintf("Select at least %d modules.", MinModules)
		return nil
	}
	title := fmt.Sprintf("%s: %d modules", p.topic.Name, len(sel))
	next := modes.New(p.env, title, sel)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (p *PickerScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Mix modules"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Pick %d or more modules to practice together.", MinModules)))
	b.WriteString("\n\n")

	questions := 0
	for i, mod := range p.topic.Modules {
		check := "[ ]"
		if p.picked[mod.ID] {
			check = "[✓]"
			questions += len(mod.Questions)
		}
		line := fmt.Sprintf("%s %s", check, mod.Name)
		style := theme.Unselected
		if i == p.cursor {
			line = "▸ " + line
			style = theme.Selected
		} else {
			line = "  " + line
		}
		b.WriteString(style.Render(line))
		s := p.summary[mod.ID]
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  %d questions  %d%%", s.Total, s.Completion)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if k := len(p.Selected()); k > 0 {
		unit := "modules"
		if k == 1 {
			unit = "module"
		}
		b.WriteString(theme.Body.Render(fmt.Sprintf("%d %s · %d questions", k, unit, questions)))
		b.WriteString("\n")
	}
	if p.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render(p.errMsg))
	}
	return components.Centered(components.Card(b.String(), cw), width, height)
}
