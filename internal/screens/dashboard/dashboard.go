// Package dashboard shows overall progress: answer totals, the practice
// streak and per-module mastery.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/mastery"
	"github.com/abhisek/quizdeck/internal/progress"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/stats"
	"github.com/abhisek/quizdeck/internal/streak"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

type moduleRow struct {
	name     string
	mastery  mastery.Result
	progress progress.Summary
}

type topicRow struct {
	name    string
	summary progress.TopicSummary
	modules []moduleRow
}

// DashboardScreen renders a snapshot of the learner's progress.
type DashboardScreen struct {
	env *screen.Env

	global stats.Global
	streak streak.Streak
	topics []topicRow

	offset int
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)
var _ screen.Refresher = (*DashboardScreen)(nil)

// New creates a DashboardScreen over env's catalog and learner data.
func New(env *screen.Env) *DashboardScreen {
	d := &DashboardScreen{env: env}
	d.load()
	return d
}

func (d *DashboardScreen) load() {
	ctx := context.Background()
	m := d.env.Learner.Stats(ctx)

	var all []catalog.Question
	d.topics = d.topics[:0]
	for _, t := range d.env.Catalog.Topics() {
		row := topicRow{name: t.Name, summary: progress.ForTopic(t.QuestionSets(), m)}
		for _, mod := range t.Modules {
			all = append(all, mod.Questions...)
			row.modules = append(row.modules, moduleRow{
				name:     mod.Name,
				mastery:  mastery.Classify(mod.Questions, m),
				progress: progress.ForModule(mod.Questions, m),
			})
		}
		d.topics = append(d.topics, row)
	}
	d.global = stats.Summarize(all, m)

	d.streak = streak.Streak{}
	if s := d.env.Learner.Streak(ctx); s != nil {
		d.streak = streak.Current(*s, d.env.Clock())
	}
}

func (d *DashboardScreen) Init() tea.Cmd { return nil }

func (d *DashboardScreen) Title() string { return "Dashboard" }

func (d *DashboardScreen) Refresh() tea.Cmd {
	d.load()
	return nil
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			d.offset = max(d.offset-1, 0)
		case "down", "j":
			d.offset++
		case "home", "g":
			d.offset = 0
		}
	}
	return d, nil
}

func (d *DashboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	lines := []string{
		theme.Title.Render("Overall"),
		d.renderGlobal(),
		"",
		theme.Title.Render("Streak"),
		d.renderStreak(),
		"",
	}
	for _, t := range d.topics {
		lines = append(lines, d.renderTopic(t, cw)...)
		lines = append(lines, "")
	}

	// Clamp scrolling so the last line stays reachable but not past it.
	maxOffset := max(len(lines)-height, 0)
	d.offset = min(d.offset, maxOffset)
	end := min(d.offset+height, len(lines))
	visible := strings.Join(lines[d.offset:end], "\n")

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(visible))
}

func (d *DashboardScreen) renderGlobal() string {
	g := d.global
	acc := g.Accuracy()
	accStyle := lipgloss.NewStyle().Foreground(theme.TierColor(progress.AccuracyTier(acc))).Bold(true)
	return fmt.Sprintf("%s  %s  %s  %s",
		theme.Body.Render(fmt.Sprintf("%d/%d answered", g.AnsweredQuestions, g.TotalQuestions)),
		theme.Correct.Render(fmt.Sprintf("✓ %d", g.Correct)),
		theme.Incorrect.Render(fmt.Sprintf("✗ %d", g.Incorrect)),
		accStyle.Render(fmt.Sprintf("%.1f%%", acc)),
	)
}

func (d *DashboardScreen) renderStreak() string {
	s := d.streak
	if s.CurrentStreak == 0 && s.LongestStreak == 0 {
		return theme.Hint.Render("Answer a question to start a streak.")
	}
	line := fmt.Sprintf("🔥 %d day", s.CurrentStreak)
	if s.CurrentStreak != 1 {
		line += "s"
	}
	return fmt.Sprintf("%s   %s   %s",
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(line),
		theme.Body.Render(fmt.Sprintf("best %d", s.LongestStreak)),
		theme.Hint.Render(fmt.Sprintf("next milestone %d", streak.NextMilestone(s.CurrentStreak))),
	)
}

func (d *DashboardScreen) renderTopic(t topicRow, cw int) []string {
	head := fmt.Sprintf("%s  %s", t.name, theme.Hint.Render(fmt.Sprintf(
		"%d/%d answered · %s%% accuracy", t.summary.Answered, t.summary.Total, t.summary.Accuracy)))
	lines := []string{theme.Subtitle.Render(head)}

	for _, m := range t.modules {
		lines = append(lines, fmt.Sprintf("  %s  %s", theme.Body.Render(m.name), theme.Badge(m.mastery.Level)))
		bar := components.ProgressBar{
			Label:       "  coverage",
			Percent:     m.mastery.Coverage,
			ShowPercent: true,
			Width:       cw,
			Fill:        theme.TierColor(progress.AccuracyTier(m.progress.AccuracyValue)),
		}
		lines = append(lines, bar.View())
	}
	return lines
}
