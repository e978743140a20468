package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/progress"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// SummaryScreen displays the results of a finished quiz.
type SummaryScreen struct {
	summary session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	if s.summary.Mode == session.ModeTimeAttack {
		return "Time's up"
	}
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "q":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	var b strings.Builder

	tier := progress.AccuracyTier(sum.Accuracy)
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(headline(sum)))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.TierColor(tier)).Bold(true).
		Render(fmt.Sprintf("%.0f%%", sum.Accuracy)))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Text).Render(fmt.Sprintf(
		"%d answered   %d correct   %d incorrect", sum.Answered, sum.Correct, sum.Incorrect)))
	b.WriteString("\n")

	duration := fmt.Sprintf("Time: %s", session.FormatClock(int(sum.Duration.Seconds())))
	if sum.TimeLimit > 0 {
		duration += fmt.Sprintf(" of %s", session.FormatClock(int(sum.TimeLimit.Seconds())))
	}
	b.WriteString(center.Foreground(theme.TextDim).Render(duration))
	b.WriteString("\n\n")

	if len(sum.Blocks) > 0 {
		b.WriteString(renderBlocks(sum.Blocks, cw))
		b.WriteString("\n")
	}

	for _, t := range sum.Transitions {
		if !t.Promoted() {
			continue
		}
		line := fmt.Sprintf("%s: %s → %s", t.ModuleName, t.From.Label(), theme.Badge(t.To))
		b.WriteString(center.Foreground(theme.Success).Render(line))
		b.WriteString("\n")
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func headline(sum session.Summary) string {
	switch {
	case sum.Answered == 0:
		return "No questions answered"
	case sum.Accuracy >= 90:
		return "Excellent!"
	case sum.Accuracy >= 75:
		return "Well done!"
	case sum.Accuracy >= 50:
		return "Keep practicing"
	default:
		return "Time to review"
	}
}

func renderBlocks(blocks []session.BlockResult, width int) string {
	var b strings.Builder
	b.WriteString(theme.Hint.Render("By block"))
	b.WriteString("\n")
	for _, br := range blocks {
		name := br.Block
		if name == "" {
			name = "(no block)"
		}
		pct := float64(br.Correct) / float64(max(br.Attempted, 1))
		bar := components.ProgressBar{
			Label:       fmt.Sprintf("%-20.20s %2d/%-2d", name, br.Correct, br.Attempted),
			Percent:     pct,
			ShowPercent: true,
			Width:       width,
			Fill:        theme.TierColor(progress.AccuracyTier(pct * 100)),
		}
		b.WriteString(bar.View())
		b.WriteString("\n")
	}
	return b.String()
}
