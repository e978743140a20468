package mastery

import (
	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/stats"
)

// Thresholds for the ladder.
const (
	CompetentAccuracy = 75.0
	MasteredAccuracy  = 90.0

	// MultiAttemptShare of questions must have at least two attempts.
	MultiAttemptShare = 0.8

	// GoodMultiAttemptShare of the multi-attempt questions must individually
	// reach GoodQuestionAccuracy.
	GoodMultiAttemptShare = 0.9
	GoodQuestionAccuracy  = 0.9
)

// Result is the mastery classification of a question set.
type Result struct {
	Level Level

	// Coverage is the answered fraction in [0, 1].
	Coverage float64

	// Accuracy is the overall accuracy in [0, 100].
	Accuracy float64

	TotalAttempts int
}

// Classify derives the mastery level of qs. Conditions are checked from
// least to most demanding and the last one satisfied wins.
func Classify(qs []catalog.Question, m stats.Map) Result {
	if len(qs) == 0 {
		return Result{Level: LevelNone}
	}

	total := len(qs)
	var answered, correct, incorrect, multi, goodMulti int
	for _, q := range qs {
		s := m[q.ID]
		if s.Correct == 0 && s.Incorrect == 0 {
			continue
		}
		answered++
		correct += s.Correct
		incorrect += s.Incorrect
		if s.Attempts() >= 2 {
			multi++
			if s.Accuracy() >= GoodQuestionAccuracy {
				goodMulti++
			}
		}
	}

	r := Result{
		Coverage:      float64(answered) / float64(total),
		TotalAttempts: correct + incorrect,
	}
	if r.TotalAttempts > 0 {
		r.Accuracy = float64(correct) / float64(r.TotalAttempts) * 100
	}

	covered := r.Coverage >= 1.0
	r.Level = LevelNone
	if answered > 0 {
		r.Level = LevelStarted
	}
	if covered {
		r.Level = LevelCovered
	}
	if covered && r.Accuracy >= CompetentAccuracy {
		r.Level = LevelCompetent
	}
	if covered &&
		r.Accuracy >= MasteredAccuracy &&
		float64(multi) >= float64(total)*MultiAttemptShare &&
		float64(goodMulti) >= float64(multi)*GoodMultiAttemptShare {
		r.Level = LevelMastered
	}
	return r
}
