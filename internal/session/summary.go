package session

import (
	"time"

	"github.com/abhisek/quizdeck/internal/mastery"
)

// Summary holds the data displayed on the results screen.
type Summary struct {
	SessionID string
	Mode      Mode
	Duration  time.Duration
	TimeLimit time.Duration
	Answered  int
	Correct   int
	Incorrect int

	// Accuracy is a percentage in [0, 100].
	Accuracy float64

	Blocks      []BlockResult
	Transitions []mastery.LevelTransition
}

// Summary builds the results of the session so far. Blocks appear in the
// order they were first answered.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	end := s.endTime
	if end.IsZero() {
		end = s.deps.Now()
	}
	var duration time.Duration
	if !s.startTime.IsZero() {
		duration = end.Sub(s.startTime)
	}

	blocks := make([]BlockResult, 0, len(s.blockOrder))
	for _, b := range s.blockOrder {
		blocks = append(blocks, *s.blocks[b])
	}

	sum := Summary{
		SessionID:   s.id,
		Mode:        s.opts.Mode,
		Duration:    duration,
		Answered:    s.totalAnswered,
		Correct:     s.totalCorrect,
		Incorrect:   s.totalAnswered - s.totalCorrect,
		Blocks:      blocks,
		Transitions: append([]mastery.LevelTransition(nil), s.transitions...),
	}
	if s.opts.Mode == ModeTimeAttack {
		sum.TimeLimit = s.opts.TimeLimit
	}
	if s.totalAnswered > 0 {
		sum.Accuracy = float64(s.totalCorrect) / float64(s.totalAnswered) * 100
	}
	return sum
}
