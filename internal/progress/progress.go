// Package progress rolls per-question stats up into module and topic
// summaries for dashboards.
package progress

import (
	"fmt"
	"math"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/stats"
)

// Summary is the progress of one question set.
type Summary struct {
	// Answered counts questions that have a stat entry at all.
	Answered int `json:"answered"`
	Total    int `json:"total"`

	// Accuracy is the overall accuracy formatted to one decimal place,
	// "0.0" when nothing has been attempted.
	Accuracy string `json:"accuracy"`

	// Completion is round(Answered/Total*100), 0 for an empty set.
	Completion int `json:"completion"`

	// AccuracyValue is the unformatted accuracy in [0, 100].
	AccuracyValue float64 `json:"-"`
}

// TopicSummary is a Summary over every module of a topic.
type TopicSummary struct {
	Summary
	ModuleCount int `json:"moduleCount"`
}

// ForModule summarizes a single module's questions.
func ForModule(qs []catalog.Question, m stats.Map) Summary {
	return summarize(stats.Summarize(qs, m))
}

// ForTopic sums every module's questions before computing ratios, so larger
// modules weigh more than smaller ones.
func ForTopic(modules [][]catalog.Question, m stats.Map) TopicSummary {
	var g stats.Global
	for _, qs := range modules {
		mg := stats.Summarize(qs, m)
		g.TotalQuestions += mg.TotalQuestions
		g.AnsweredQuestions += mg.AnsweredQuestions
		g.Correct += mg.Correct
		g.Incorrect += mg.Incorrect
	}
	return TopicSummary{Summary: summarize(g), ModuleCount: len(modules)}
}

func summarize(g stats.Global) Summary {
	acc := g.Accuracy()
	s := Summary{
		Answered:      g.AnsweredQuestions,
		Total:         g.TotalQuestions,
		Accuracy:      fmt.Sprintf("%.1f", acc),
		AccuracyValue: acc,
	}
	if g.TotalQuestions > 0 {
		s.Completion = int(math.Round(float64(g.AnsweredQuestions) / float64(g.TotalQuestions) * 100))
	}
	return s
}
