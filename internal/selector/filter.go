package selector

import (
	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/stats"
)

// FailingMoreThanPassing returns the questions with a recorded stat whose
// incorrect count exceeds the correct count.
func FailingMoreThanPassing(qs []catalog.Question, m stats.Map) []catalog.Question {
	var out []catalog.Question
	for _, q := range qs {
		if s, ok := m[q.ID]; ok && s.Incorrect > s.Correct {
			out = append(out, q)
		}
	}
	return out
}

// Bookmarked returns the questions whose ID is in bookmarks.
func Bookmarked(qs []catalog.Question, bookmarks map[string]bool) []catalog.Question {
	var out []catalog.Question
	for _, q := range qs {
		if bookmarks[q.ID] {
			out = append(out, q)
		}
	}
	return out
}

// InBlock returns the questions whose block equals block exactly.
func InBlock(qs []catalog.Question, block string) []catalog.Question {
	var out []catalog.Question
	for _, q := range qs {
		if q.Block == block {
			out = append(out, q)
		}
	}
	return out
}

// IDSet builds a membership set from a list of IDs.
func IDSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
