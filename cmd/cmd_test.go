package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	q := func(id string) catalog.Question {
		return catalog.Question{ID: id, Question: "Q " + id, Options: []string{"yes", "no"}, CorrectAnswer: 1, Explanation: "because"}
	}
	c, err := catalog.New([]*catalog.Topic{
		{ID: "net", Name: "Networking", Modules: []*catalog.Module{
			{ID: "tcp", Name: "TCP", Questions: []catalog.Question{q("t1")}},
			{ID: "dns", Name: "DNS", Questions: []catalog.Question{q("d1")}},
		}},
		{ID: "os", Name: "Operating systems", Modules: []*catalog.Module{
			{ID: "sched", Name: "Scheduling", Questions: []catalog.Question{q("s1")}},
		}},
	})
	require.NoError(t, err)
	return c
}

func TestResolveModules(t *testing.T) {
	c := testCatalog(t)

	mods, title, err := resolveModules(c, "", []string{"dns", "tcp"})
	require.NoError(t, err)
	assert.Equal(t, "DNS + TCP", title)
	assert.Len(t, mods, 2)

	mods, title, err = resolveModules(c, "os", nil)
	require.NoError(t, err)
	assert.Equal(t, "Operating systems", title)
	assert.Equal(t, "sched", mods[0].ID)

	_, title, err = resolveModules(c, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Networking", title)

	_, _, err = resolveModules(c, "", []string{"nope"})
	assert.Error(t, err)
	_, _, err = resolveModules(c, "nope", nil)
	assert.Error(t, err)
}

func TestValidDuration(t *testing.T) {
	assert.True(t, validDuration(3*time.Minute))
	assert.True(t, validDuration(5*time.Minute))
	assert.False(t, validDuration(4*time.Minute))
	assert.Equal(t, "3, 5", durationChoices())
}

func TestTryDrafts(t *testing.T) {
	c := testCatalog(t)
	qs, err := c.Questions("tcp", "dns")
	require.NoError(t, err)

	var out bytes.Buffer
	tryDrafts(strings.NewReader("b\na\n"), &out, qs)
	assert.Contains(t, out.String(), "Correct!")
	assert.Contains(t, out.String(), "Wrong.")
	assert.Contains(t, out.String(), "Summary: 1/2 correct")
}

func TestPrintDraftMarksAnswer(t *testing.T) {
	var out bytes.Buffer
	printDraft(&out, 1, 1, catalog.Question{Block: "TCP", Question: "Stem?", Options: []string{"x", "y"}, CorrectAnswer: 1})
	assert.Contains(t, out.String(), "Draft 1/1 · TCP")
	assert.Contains(t, out.String(), "* B) y")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "né", truncate("néé", 2))
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "quizdeck (devel)\n", out.String())
}
