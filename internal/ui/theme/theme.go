package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/mastery"
	"github.com/abhisek/quizdeck/internal/progress"
	"github.com/abhisek/quizdeck/internal/session"
)

// Color palette, matching the web app's indigo gradient.
var (
	Primary   = lipgloss.Color("#667EEA") // Indigo
	Secondary = lipgloss.Color("#764BA2") // Violet
	Accent    = lipgloss.Color("#F6AD55") // Amber
	Success   = lipgloss.Color("#27AE60") // Green
	Warning   = lipgloss.Color("#F39C12") // Orange
	Error     = lipgloss.Color("#E74C3C") // Red
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#95A5A6") // Grey
	BgDark    = lipgloss.Color("#111827") // Near black
	BgCard    = lipgloss.Color("#1F2937") // Dark grey
	Border    = lipgloss.Color("#374151") // Grey
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// TierColor is the display color of an accuracy tier.
func TierColor(t progress.Tier) color.Color {
	return lipgloss.Color(t.Color())
}

// LevelColor is the badge color of a mastery level.
func LevelColor(l mastery.Level) color.Color {
	return lipgloss.Color(l.Color())
}

// UrgencyColor colors the time-attack clock.
func UrgencyColor(u session.Urgency) color.Color {
	switch u {
	case session.UrgencyUrgent:
		return Error
	case session.UrgencyWarning:
		return Warning
	default:
		return Text
	}
}

// Badge renders a mastery level as "icon label" in its color.
func Badge(l mastery.Level) string {
	label := l.Label()
	if icon := l.Icon(); icon != "" {
		label = icon + " " + label
	}
	return lipgloss.NewStyle().Foreground(LevelColor(l)).Render(label)
}
