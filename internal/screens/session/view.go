package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/catalog"
	sess "github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width, height)
	}

	q, shuffled, ok := s.sess.Current()
	if !ok {
		return components.Message("No question loaded", theme.Hint, width)
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(s.renderInfoLine(q, cw))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(q.Question))
	b.WriteString("\n")
	if media := renderMedia(q); media != "" {
		b.WriteString("\n" + media + "\n")
	}
	b.WriteString("\n")

	list := components.OptionList{Options: shuffled.Options, Selected: s.cursor}
	if sel := s.sess.Selected(); sel >= 0 {
		list.Selected = sel
	}
	result := s.sess.LastResult()
	if s.sess.Phase() == sess.PhaseFeedback && result != nil {
		list.Graded = true
		list.Correct = shuffled.Correct
	}
	b.WriteString(list.View(cw))

	if list.Graded {
		b.WriteString("\n")
		b.WriteString(renderFeedback(q, result, cw))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// renderInfoLine shows block, position, score, bookmark and, in time
// attack, the clock.
func (s *SessionScreen) renderInfoLine(q catalog.Question, width int) string {
	block := q.Block
	if block == "" {
		block = s.sess.Mode().Label()
	}
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(block)
	if s.bookmarked[q.ID] {
		left += lipgloss.NewStyle().Foreground(theme.Accent).Render("  ★")
	}

	cur, total := s.sess.Progress()
	answered, correct := s.sess.Score()
	parts := []string{
		fmt.Sprintf("Q %d/%d", cur, total),
		lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("✓ %d", correct)),
		lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("✗ %d", answered-correct)),
	}
	if cd := s.sess.Countdown(); cd != nil {
		rem := cd.Remaining()
		parts = append(parts, lipgloss.NewStyle().
			Foreground(theme.UrgencyColor(sess.UrgencyOf(rem))).
			Bold(true).
			Render("⏱ "+sess.FormatClock(rem)))
	}
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Join(parts, "  "))

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func renderFeedback(q catalog.Question, r *sess.AnswerResult, width int) string {
	var b strings.Builder
	if r.Correct {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Incorrect."))
		b.WriteString(theme.Body.Render(" The answer is: " + q.CorrectOption()))
	}
	if r.Explanation != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(r.Explanation))
	}
	return components.Card(b.String(), width)
}

// renderMedia shows allow-listed media. Images cannot be drawn in a
// terminal, so their source is listed instead.
func renderMedia(q catalog.Question) string {
	m := q.SafeMedia()
	if m == nil {
		return ""
	}
	switch m.Type {
	case catalog.MediaCode:
		code := lipgloss.NewStyle().Foreground(theme.Accent).Render(m.Content)
		if m.Language != "" {
			code = theme.Hint.Render(m.Language) + "\n" + code
		}
		return code
	case catalog.MediaImage:
		label := m.Alt
		if label == "" {
			label = m.Src
		}
		if len(label) > 60 {
			label = label[:57] + "..."
		}
		return theme.Hint.Render("[image] " + label)
	}
	return ""
}

func renderQuitConfirm(width, height int) string {
	box := components.Card(
		theme.Body.Bold(true).Render("End this quiz?")+"\n\n"+
			theme.Hint.Render("Answers so far are already saved.\nY to end, N to keep going."),
		40)
	return components.Centered(box, width, height)
}
