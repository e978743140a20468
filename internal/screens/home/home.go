// Package home is the root screen: topic and module picker plus the entry
// points to the dashboard, history and backups.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/backup"
	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/mastery"
	"github.com/abhisek/quizdeck/internal/progress"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/dashboard"
	"github.com/abhisek/quizdeck/internal/screens/history"
	"github.com/abhisek/quizdeck/internal/screens/importer"
	"github.com/abhisek/quizdeck/internal/screens/modes"
	"github.com/abhisek/quizdeck/internal/screens/picker"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	env    *screen.Env
	topics []*catalog.Topic
	topic  int

	menu    components.Menu
	gen     int
	summary progress.TopicSummary

	status string
	failed bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a HomeScreen opened on the learner's last topic.
func New(env *screen.Env) *HomeScreen {
	h := &HomeScreen{env: env, topics: env.Catalog.Topics()}
	if id := env.Learner.SelectedTopic(context.Background()); id != "" {
		for i, t := range h.topics {
			if t.ID == id {
				h.topic = i
			}
		}
	}
	h.rebuild()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// Refresh recomputes badges after a quiz or an import.
func (h *HomeScreen) Refresh() tea.Cmd {
	sel := h.menu.Selected
	h.rebuild()
	h.menu.Selected = min(sel, len(h.menu.Items)-1)
	return nil
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if len(h.topics) > 1 {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Topic"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StatusChangedMsg:
		return h, h.Refresh()
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "shift+tab":
			h.switchTopic(-1)
			return h, nil
		case "right", "l", "tab":
			h.switchTopic(1)
			return h, nil
		case "q":
			return h, tea.Quit
		}
	}

	gen := h.gen
	menu, cmd := h.menu.Update(msg)
	if h.gen == gen {
		h.menu = menu
	}
	return h, cmd
}

func (h *HomeScreen) switchTopic(dir int) {
	n := len(h.topics)
	if n < 2 {
		return
	}
	h.topic = (h.topic + dir + n) % n
	h.env.Learner.SaveSelectedTopic(context.Background(), h.topics[h.topic].ID)
	h.status = ""
	h.rebuild()
}

func (h *HomeScreen) current() *catalog.Topic {
	if len(h.topics) == 0 {
		return nil
	}
	return h.topics[h.topic]
}

func (h *HomeScreen) rebuild() {
	h.gen++
	t := h.current()
	m := h.env.Learner.Stats(context.Background())

	var items []components.MenuItem
	if t != nil {
		h.summary = progress.ForTopic(t.QuestionSets(), m)
		all := t.Modules
		items = append(items, components.MenuItem{
			Label:  "All modules",
			Detail: fmt.Sprintf("%d%% complete", h.summary.Completion),
			Action: func() tea.Cmd { return router.Push(modes.New(h.env, t.Name, all)) },
		})
		for _, mod := range t.Modules {
			mod := mod
			level := mastery.Classify(mod.Questions, m).Level
			items = append(items, components.MenuItem{
				Label:  mod.Name,
				Detail: fmt.Sprintf("%s  %d%%", theme.Badge(level), progress.ForModule(mod.Questions, m).Completion),
				Action: func() tea.Cmd {
					return router.Push(modes.New(h.env, mod.Name, []*catalog.Module{mod}))
				},
			})
		}
		if len(t.Modules) >= picker.MinModules {
			items = append(items, components.MenuItem{
				Label:  "Mix modules",
				Detail: "pick several",
				Action: func() tea.Cmd { return router.Push(picker.New(h.env, t)) },
			})
		}
	}

	items = append(items,
		components.MenuItem{Label: "", Disabled: true},
		components.MenuItem{Label: "Dashboard", Action: func() tea.Cmd {
			return router.Push(dashboard.New(h.env))
		}},
		components.MenuItem{Label: "History", Action: func() tea.Cmd {
			return router.Push(history.New(h.env))
		}},
		components.MenuItem{Label: "Export progress", Action: h.export},
		components.MenuItem{Label: "Import progress", Action: func() tea.Cmd {
			return router.Push(importer.New(h.env))
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	)
	h.menu = components.NewMenu(items)
}

func (h *HomeScreen) export() tea.Cmd {
	ctx := context.Background()
	now := h.env.Clock()
	path, err := backup.WriteFile(h.env.ExportDir, backup.Gather(ctx, h.env.Learner, now), now)
	if err != nil {
		h.env.Logger().Error("export failed", "dir", h.env.ExportDir, "error", err)
		h.status, h.failed = "Export failed: "+err.Error(), true
		return nil
	}
	h.env.Logger().Info("progress exported", "path", path)
	h.status, h.failed = "Exported to "+path, false
	return nil
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	if t := h.current(); t != nil {
		title := t.Name
		if t.Icon != "" {
			title = t.Icon + " " + title
		}
		if len(h.topics) > 1 {
			title = fmt.Sprintf("‹ %s ›", title)
		}
		b.WriteString(theme.Title.Render(title))
		b.WriteString("\n")
		if t.Description != "" {
			b.WriteString(theme.Hint.Render(t.Description))
			b.WriteString("\n")
		}
		acc := lipgloss.NewStyle().Foreground(theme.TierColor(progress.AccuracyTier(h.summary.AccuracyValue)))
		b.WriteString(theme.Body.Render(fmt.Sprintf("%d/%d answered · ", h.summary.Answered, h.summary.Total)))
		b.WriteString(acc.Render(h.summary.Accuracy + "% accuracy"))
		b.WriteString("\n\n")
	} else {
		b.WriteString(theme.Hint.Render("The catalog has no topics."))
		b.WriteString("\n\n")
	}

	b.WriteString(h.menu.View())

	if h.status != "" {
		c := theme.Success
		if h.failed {
			c = theme.Error
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(c).Width(cw - 4).Render(h.status))
	}

	return components.Centered(components.Card(b.String(), cw), width, height)
}
