package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// ContentWidth returns the inner width shared by the stacked cards of a
// screen, so their borders line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 30), 76)
}

// Card wraps content in a rounded border at content width cw.
func Card(content string, cw int) string {
	return theme.Card.Width(cw).Render(content)
}

// Centered places s in the middle of a width x height area.
func Centered(s string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}

// Message renders a centered one-line notice in color c.
func Message(text string, c lipgloss.Style, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render("\n\n" + c.Render(text))
}
