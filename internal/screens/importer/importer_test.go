package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/store"
)

func testEnv(t *testing.T) *screen.Env {
	t.Helper()
	s, err := store.Open("file:importer_" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &screen.Env{
		Learner:   store.NewLearner(s.KV(), nil),
		ExportDir: t.TempDir(),
		Now:       func() time.Time { return now },
	}
}

func typePath(s *ImportScreen, path string) {
	for _, r := range path {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestImport_Success(t *testing.T) {
	env := testEnv(t)
	path := filepath.Join(env.ExportDir, "progress.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"version":1,"stats":{"q1":{"correct":2,"incorrect":1}},"bookmarks":["q1"]}`), 0o644))

	s := New(env)
	typePath(s, path)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, ok := cmd().(screen.StatusChangedMsg)
	assert.True(t, ok)
	assert.False(t, s.failed)
	assert.Contains(t, s.View(90, 30), "Imported 1 question stats and 1 bookmarks.")

	ctx := context.Background()
	assert.Equal(t, 2, env.Learner.Stats(ctx)["q1"].Correct)
	assert.Equal(t, []string{"q1"}, env.Learner.Bookmarks(ctx))
}

func TestImport_RejectsNewerVersion(t *testing.T) {
	env := testEnv(t)
	path := filepath.Join(env.ExportDir, "newer.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":5}`), 0o644))

	s := New(env)
	typePath(s, path)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.True(t, s.failed)
	assert.Contains(t, s.result, "newer version")
}

func TestImport_EmptyPath(t *testing.T) {
	s := New(testEnv(t))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.True(t, s.failed)
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/tmp/x.json", expandHome("/tmp/x.json"))
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x.json"), expandHome("~/x.json"))
}
