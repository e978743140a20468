package selector

import (
	"testing"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/stats"
)

func ids(qs []catalog.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFailingMoreThanPassing(t *testing.T) {
	qs := questions("a", "b", "c", "d")
	m := stats.Map{
		"a": {Correct: 1, Incorrect: 2},
		"b": {Correct: 2, Incorrect: 2},
		"d": {Incorrect: 1},
	}
	got := ids(FailingMoreThanPassing(qs, m))
	if want := []string{"a", "d"}; !equalIDs(got, want) {
		t.Errorf("FailingMoreThanPassing = %v, want %v", got, want)
	}
}

func TestBookmarked(t *testing.T) {
	qs := questions("a", "b", "c")
	got := ids(Bookmarked(qs, IDSet([]string{"c", "a", "zz"})))
	if want := []string{"a", "c"}; !equalIDs(got, want) {
		t.Errorf("Bookmarked = %v, want %v", got, want)
	}
}

func TestInBlock(t *testing.T) {
	qs := []catalog.Question{
		{ID: "a", Block: "Bloque 1"},
		{ID: "b", Block: "Bloque 2"},
		{ID: "c", Block: "Bloque 1"},
		{ID: "d", Block: "bloque 1"},
	}
	got := ids(InBlock(qs, "Bloque 1"))
	if want := []string{"a", "c"}; !equalIDs(got, want) {
		t.Errorf("InBlock = %v, want %v", got, want)
	}
}
