// Package importer restores learner progress from an export file.
package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/backup"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// ImportScreen asks for a file path and imports it, replacing the current
// stats, bookmarks and streak.
type ImportScreen struct {
	env   *screen.Env
	input components.TextInput

	result string
	failed bool
}

var _ screen.Screen = (*ImportScreen)(nil)
var _ screen.KeyHintProvider = (*ImportScreen)(nil)

func New(env *screen.Env) *ImportScreen {
	return &ImportScreen{
		env:   env,
		input: components.NewTextInput(filepath.Join(env.ExportDir, backup.FileName(env.Clock())), 1024),
	}
}

func (s *ImportScreen) Init() tea.Cmd { return s.input.Init() }

func (s *ImportScreen) Title() string { return "Import progress" }

func (s *ImportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Import"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ImportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return s, s.submit()
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ImportScreen) submit() tea.Cmd {
	path := expandHome(s.input.Value())
	if path == "" {
		s.failed, s.result = true, "Enter the path of an exported .json file."
		return nil
	}

	env, err := backup.Import(context.Background(), s.env.Learner, path, s.env.Clock())
	if err != nil {
		s.env.Logger().Warn("import failed", "path", path, "error", err)
		s.failed, s.result = true, describe(err)
		return nil
	}

	s.env.Logger().Info("progress imported", "path", path,
		"stats", len(env.Stats), "bookmarks", len(env.Bookmarks))
	s.failed = false
	s.result = fmt.Sprintf("Imported %d question stats and %d bookmarks.", len(env.Stats), len(env.Bookmarks))
	s.input.Reset()
	return screen.StatusChanged
}

func describe(err error) string {
	var ve *backup.ValidationError
	if errors.As(err, &ve) {
		return "Import failed: " + ve.Error()
	}
	if errors.Is(err, os.ErrNotExist) {
		return "Import failed: file not found"
	}
	return "Import failed: " + err.Error()
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}

func (s *ImportScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Import progress"))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Replaces your stats, bookmarks and streak with the file's."))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	if s.result != "" {
		c := theme.Success
		if s.failed {
			c = theme.Error
		}
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(c).Render(s.result))
	}
	return components.Centered(components.Card(b.String(), cw), width, height)
}
