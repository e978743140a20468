// Package selector implements adaptive question selection: weighted random
// sampling that favors unseen, frequently failed and under-practiced
// questions, with a spaced-repetition time adjustment.
package selector

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/stats"
)

// Weighting constants. Keep them exact: the relative ordering of weights is
// what the selection tests pin down.
const (
	// UnansweredWeight is given to questions with no attempts. It exceeds
	// every answered-question weight.
	UnansweredWeight = 20.0

	// FailureMultiplier scales the squared failure rate.
	FailureMultiplier = 7.5

	// BaseWeight keeps every answered question selectable.
	BaseWeight = 0.5

	// DefaultHalfLifeHours is the time for a mostly-correct question to
	// recover half of its suppressed weight.
	DefaultHalfLifeHours = 24.0

	// RecentFailureWindowHours bounds the recent-failure boost.
	RecentFailureWindowHours = 24.0

	// RecentFailureBoost multiplies mostly-incorrect questions attempted
	// within the window.
	RecentFailureBoost = 1.3

	// suppressedFloor is the fraction of weight kept right after a
	// mostly-correct question is answered.
	suppressedFloor = 0.2
)

// Selector draws the next question. The zero value is not usable; build
// one with New.
type Selector struct {
	rng           *rand.Rand
	now           func() time.Time
	halfLifeHours float64
}

// Option configures a Selector.
type Option func(*Selector)

// WithClock overrides the wall clock used for time since last attempt.
func WithClock(now func() time.Time) Option {
	return func(s *Selector) { s.now = now }
}

// WithHalfLife overrides the spaced-repetition half-life in hours.
// Non-positive values are ignored.
func WithHalfLife(hours float64) Option {
	return func(s *Selector) {
		if hours > 0 {
			s.halfLifeHours = hours
		}
	}
}

// New creates a Selector drawing from rng.
func New(rng *rand.Rand, opts ...Option) *Selector {
	s := &Selector{
		rng:           rng,
		now:           time.Now,
		halfLifeHours: DefaultHalfLifeHours,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Candidate pairs a question with its computed weight.
type Candidate struct {
	Question catalog.Question
	Weight   float64
}

// Next picks a question from pool, skipping IDs in exclude. It returns
// false when every question is excluded, which callers treat as the end
// of the session.
func (s *Selector) Next(pool []catalog.Question, m stats.Map, exclude map[string]bool) (catalog.Question, bool) {
	cands := s.Weights(pool, m, exclude)
	if len(cands) == 0 {
		return catalog.Question{}, false
	}

	total := 0.0
	for _, c := range cands {
		total += c.Weight
	}
	r := s.rng.Float64() * total
	for _, c := range cands {
		r -= c.Weight
		if r <= 0 {
			return c.Question, true
		}
	}
	return cands[0].Question, true
}

// Weights returns the non-excluded questions of pool with their weights,
// in pool order.
func (s *Selector) Weights(pool []catalog.Question, m stats.Map, exclude map[string]bool) []Candidate {
	available := make([]catalog.Question, 0, len(pool))
	for _, q := range pool {
		if !exclude[q.ID] {
			available = append(available, q)
		}
	}
	if len(available) == 0 {
		return nil
	}

	minFrequency := math.MaxInt
	for _, q := range available {
		if n := m[q.ID].Attempts(); n < minFrequency {
			minFrequency = n
		}
	}

	now := s.now()
	cands := make([]Candidate, len(available))
	for i, q := range available {
		cands[i] = Candidate{
			Question: q,
			Weight:   Weight(m[q.ID], minFrequency, now, s.halfLifeHours),
		}
	}
	return cands
}

// Weight computes one question's selection weight. minFrequency is the
// smallest attempt count among the candidates of the same draw.
func Weight(st stats.AnswerStat, minFrequency int, now time.Time, halfLifeHours float64) float64 {
	attempts := st.Attempts()
	if attempts == 0 {
		return UnansweredWeight
	}

	failureRate := float64(st.Incorrect) / float64(attempts)
	w := failureRate*failureRate*FailureMultiplier + BaseWeight

	w *= 1 + 1/float64(attempts-minFrequency+1)

	// A last attempt in the future (clock skew, imported data) counts as
	// just now; negative hours would push the decay factor below zero.
	hours := math.Max(0, st.HoursSince(now))
	switch {
	case st.MostlyCorrect() && !math.IsInf(hours, 1):
		recovered := 1 - math.Pow(0.5, hours/halfLifeHours)
		w *= suppressedFloor + (1-suppressedFloor)*recovered
	case !st.MostlyCorrect() && hours < RecentFailureWindowHours:
		w *= RecentFailureBoost
	}
	return w
}
