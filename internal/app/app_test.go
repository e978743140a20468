package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/store"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func testEnv(t *testing.T) *screen.Env {
	t.Helper()
	s, err := store.Open("file:app_" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	cat, err := catalog.New([]*catalog.Topic{{ID: "net", Name: "Networking", Modules: []*catalog.Module{
		{ID: "tcp", Name: "TCP", Questions: []catalog.Question{
			{ID: "t1", Question: "Q1", Options: []string{"a", "b"}},
			{ID: "t2", Question: "Q2", Options: []string{"a", "b"}},
		}},
	}}})
	require.NoError(t, err)
	return &screen.Env{
		Catalog: cat,
		Learner: store.NewLearner(s.KV(), nil),
		Events:  s.EventRepo(),
		Now:     func() time.Time { return testNow },
	}
}

// interceptor swallows Esc until released.
type interceptor struct {
	intercept bool
	escapes   int
}

func (i *interceptor) Init() tea.Cmd        { return nil }
func (i *interceptor) View(int, int) string { return "" }
func (i *interceptor) Title() string        { return "interceptor" }
func (i *interceptor) InterceptBack() bool  { return i.intercept }
func (i *interceptor) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		i.escapes++
	}
	return i, nil
}

func TestNewAppModel_SplashOnFirstRun(t *testing.T) {
	env := testEnv(t)
	m := newAppModel(env, Options{})
	assert.Equal(t, "", m.router.Active().Title())

	env.Learner.SetHasSeenSplash(context.Background())
	m = newAppModel(env, Options{})
	assert.Equal(t, "Home", m.router.Active().Title())
}

func TestNewAppModel_InitialAboveHome(t *testing.T) {
	i := &interceptor{}
	m := newAppModel(testEnv(t), Options{Initial: i})
	assert.Equal(t, 2, m.router.Depth())
	assert.Same(t, i, m.router.Active())
}

func TestEscRespectsBackInterceptor(t *testing.T) {
	i := &interceptor{intercept: true}
	m := newAppModel(testEnv(t), Options{Initial: i})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, i.escapes)
	assert.Equal(t, 2, m.router.Depth())

	i.intercept = false
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
	assert.Equal(t, 1, i.escapes)
}

func TestStatusChangedRecomputes(t *testing.T) {
	env := testEnv(t)
	m := newAppModel(env, Options{Initial: &interceptor{}})
	assert.Equal(t, 0, m.status.Answered)

	_, _ = env.Learner.RecordAnswer(context.Background(), "t1", true, testNow)
	model, _ := m.Update(screen.StatusChangedMsg{})
	st := model.(AppModel).status
	assert.Equal(t, 1, st.Answered)
	assert.Equal(t, 1, st.Streak)
	assert.InDelta(t, 100.0, st.Accuracy, 0.001)
}
