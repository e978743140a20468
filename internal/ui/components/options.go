package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// OptionLetters label options A to F; longer lists fall back to numbers.
const OptionLetters = "ABCDEF"

// OptionList renders shuffled answer options. Indices are display indices.
type OptionList struct {
	Options  []string
	Selected int

	// Graded switches to feedback colors: Correct green, a wrong
	// Selected red, everything else dimmed.
	Graded  bool
	Correct int
}

// Label returns the key shown before option i.
func Label(i int) string {
	if i < len(OptionLetters) {
		return OptionLetters[i : i+1]
	}
	return fmt.Sprint(i + 1)
}

// IndexForKey maps "a".."f" and "1".."9" to an option index, or -1.
func IndexForKey(key string, n int) int {
	if len(key) != 1 {
		return -1
	}
	c := key[0]
	i := -1
	switch {
	case c >= 'a' && c <= 'f':
		i = int(c - 'a')
	case c >= 'A' && c <= 'F':
		i = int(c - 'A')
	case c >= '1' && c <= '9':
		i = int(c - '1')
	}
	if i >= n {
		return -1
	}
	return i
}

// View renders one option per line, wrapped to width.
func (o OptionList) View(width int) string {
	var b strings.Builder
	wrap := lipgloss.NewStyle().Width(max(width-6, 10))
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Selected && !o.Graded {
			prefix = "▸ "
		}
		line := wrap.Render(fmt.Sprintf("%s%s)  %s", prefix, Label(i), opt))

		style := theme.Unselected
		switch {
		case o.Graded && i == o.Correct:
			style = theme.Correct
		case o.Graded && i == o.Selected:
			style = theme.Incorrect
		case o.Graded:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == o.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}
