package progress

import (
	"testing"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/stats"
)

func qs(ids ...string) []catalog.Question {
	out := make([]catalog.Question, len(ids))
	for i, id := range ids {
		out[i] = catalog.Question{ID: id}
	}
	return out
}

func TestForModule_Empty(t *testing.T) {
	got := ForModule(nil, stats.Map{"a": {Correct: 1}})
	want := Summary{Answered: 0, Total: 0, Accuracy: "0.0", Completion: 0}
	if got != want {
		t.Errorf("ForModule(empty) = %+v, want %+v", got, want)
	}
}

func TestForModule(t *testing.T) {
	tests := []struct {
		name string
		m    stats.Map
		want Summary
	}{
		{
			name: "nothing answered",
			m:    stats.Map{},
			want: Summary{Total: 3, Accuracy: "0.0"},
		},
		{
			name: "partial",
			m: stats.Map{
				"a":     {Correct: 2, Incorrect: 1},
				"other": {Correct: 9},
			},
			want: Summary{Answered: 1, Total: 3, Accuracy: "66.7", Completion: 33},
		},
		{
			name: "touched entry without attempts still counts as answered",
			m: stats.Map{
				"a": {Correct: 1},
				"b": {LastAttempt: "2025-01-01T00:00:00Z"},
			},
			want: Summary{Answered: 2, Total: 3, Accuracy: "100.0", Completion: 67},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForModule(qs("a", "b", "c"), tt.m)
			got.AccuracyValue = 0
			if got != tt.want {
				t.Errorf("ForModule = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestForTopic_WeightsByQuestionCount(t *testing.T) {
	small := qs("s1")
	large := qs("l1", "l2", "l3")
	m := stats.Map{
		"s1": {Correct: 1},
		"l1": {Incorrect: 1},
		"l2": {Incorrect: 1},
		"l3": {Incorrect: 1},
	}
	got := ForTopic([][]catalog.Question{small, large}, m)

	if got.ModuleCount != 2 {
		t.Errorf("ModuleCount = %d, want 2", got.ModuleCount)
	}
	if got.Answered != 4 || got.Total != 4 || got.Completion != 100 {
		t.Errorf("ForTopic = %+v, want 4/4 at 100%%", got)
	}
	// Pooled 1/4 = 25%, not the 50% an average of module accuracies gives.
	if got.Accuracy != "25.0" {
		t.Errorf("Accuracy = %q, want %q", got.Accuracy, "25.0")
	}
}

func TestForTopic_NoModules(t *testing.T) {
	got := ForTopic(nil, stats.Map{})
	if got.ModuleCount != 0 || got.Total != 0 || got.Accuracy != "0.0" || got.Completion != 0 {
		t.Errorf("ForTopic(nil) = %+v", got)
	}
}
