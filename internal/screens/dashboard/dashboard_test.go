package dashboard

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/store"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func testEnv(t *testing.T) *screen.Env {
	t.Helper()
	s, err := store.Open("file:dashboard_" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	q := func(id string) catalog.Question {
		return catalog.Question{ID: id, Question: "Q " + id, Options: []string{"a", "b"}, CorrectAnswer: 0}
	}
	cat, err := catalog.New([]*catalog.Topic{{
		ID: "net", Name: "Networking",
		Modules: []*catalog.Module{
			{ID: "tcp", Name: "TCP basics", Questions: []catalog.Question{q("t1"), q("t2")}},
			{ID: "dns", Name: "DNS", Questions: []catalog.Question{q("d1")}},
		},
	}})
	require.NoError(t, err)

	return &screen.Env{
		Catalog: cat,
		Learner: store.NewLearner(s.KV(), nil),
		Now:     func() time.Time { return testNow },
	}
}

func TestDashboard_Empty(t *testing.T) {
	view := New(testEnv(t)).View(90, 40)
	assert.Contains(t, view, "0/3 answered")
	assert.Contains(t, view, "start a streak")
	assert.Contains(t, view, "TCP basics")
	assert.Contains(t, view, "DNS")
}

func TestDashboard_RefreshPicksUpAnswers(t *testing.T) {
	env := testEnv(t)
	d := New(env)

	ctx := context.Background()
	_, _ = env.Learner.RecordAnswer(ctx, "t1", true, testNow)
	_, _ = env.Learner.RecordAnswer(ctx, "t2", false, testNow)

	assert.Contains(t, d.View(90, 40), "0/3 answered")
	d.Refresh()
	view := d.View(90, 40)
	assert.Contains(t, view, "2/3 answered")
	assert.Contains(t, view, "50.0%")
	assert.Contains(t, view, "1 day")
	assert.Contains(t, view, "next milestone 3")
}

func TestDashboard_ScrollClamps(t *testing.T) {
	d := New(testEnv(t))
	d.offset = 1000
	view := d.View(90, 5)
	assert.NotEmpty(t, view)
	assert.LessOrEqual(t, d.offset, 1000)
	assert.GreaterOrEqual(t, d.offset, 0)
}
