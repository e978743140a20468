// Package stats holds per-question answer history.
package stats

import (
	"math"
	"time"

	"github.com/abhisek/quizdeck/internal/catalog"
)

// AnswerStat is the answer history of one question.
type AnswerStat struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`

	// LastAttempt is an RFC 3339 timestamp, empty when never recorded.
	LastAttempt string `json:"lastAttempt,omitempty"`
}

// Attempts returns Correct + Incorrect.
func (s AnswerStat) Attempts() int {
	return s.Correct + s.Incorrect
}

// Accuracy returns correct/attempts in [0, 1], or 0 with no attempts.
func (s AnswerStat) Accuracy() float64 {
	if s.Attempts() == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts())
}

// MostlyCorrect reports whether correct answers outnumber incorrect ones.
func (s AnswerStat) MostlyCorrect() bool {
	return s.Correct > s.Incorrect
}

// LastAttemptTime parses LastAttempt.
func (s AnswerStat) LastAttemptTime() (time.Time, bool) {
	if s.LastAttempt == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s.LastAttempt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// HoursSince returns the hours elapsed between the last attempt and now,
// or +Inf when there is no valid last attempt.
func (s AnswerStat) HoursSince(now time.Time) float64 {
	t, ok := s.LastAttemptTime()
	if !ok {
		return math.Inf(1)
	}
	return now.Sub(t).Hours()
}

// Map is the question ID -> AnswerStat table.
type Map map[string]AnswerStat

// Get returns the stat for id and whether an entry exists.
func (m Map) Get(id string) (AnswerStat, bool) {
	s, ok := m[id]
	return s, ok
}

// Record returns a copy of m with one answer added for id. The receiver is
// not modified.
func (m Map) Record(id string, correct bool, now time.Time) Map {
	out := make(Map, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	s := out[id]
	if correct {
		s.Correct++
	} else {
		s.Incorrect++
	}
	s.LastAttempt = now.UTC().Format(time.RFC3339Nano)
	out[id] = s
	return out
}

// Global summarizes m over a question set.
type Global struct {
	TotalQuestions    int
	AnsweredQuestions int
	Correct           int
	Incorrect         int
}

// Accuracy returns the overall accuracy in percent, 0 with no attempts.
func (g Global) Accuracy() float64 {
	total := g.Correct + g.Incorrect
	if total == 0 {
		return 0
	}
	return float64(g.Correct) / float64(total) * 100
}

// Summarize computes Global stats for qs.
func Summarize(qs []catalog.Question, m Map) Global {
	g := Global{TotalQuestions: len(qs)}
	for _, q := range qs {
		s, ok := m[q.ID]
		if !ok {
			continue
		}
		g.AnsweredQuestions++
		g.Correct += s.Correct
		g.Incorrect += s.Incorrect
	}
	return g
}
