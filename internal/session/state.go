package session

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/logger"
	"github.com/abhisek/quizdeck/internal/mastery"
	"github.com/abhisek/quizdeck/internal/selector"
	"github.com/abhisek/quizdeck/internal/shuffle"
	"github.com/abhisek/quizdeck/internal/store"
)

// Deps are the collaborators a session records into.
type Deps struct {
	// Learner persists stats, bookmarks and the streak. Required.
	Learner *store.Learner

	// Events receives answer and session events (nil disables them).
	Events store.EventRepo

	// Rng drives option shuffling and, unless Selector is set, selection.
	Rng *rand.Rand

	// Selector draws adaptive questions. Built from Rng when nil.
	Selector *selector.Selector

	Log *logger.Logger

	// Now is the clock; time.Now when nil.
	Now func() time.Time
}

// Options describe what a session covers.
type Options struct {
	Mode Mode

	// Modules are merged into one question list in the given order.
	Modules []*catalog.Module

	// Block selects the block for ModeBlock.
	Block string

	// TimeLimit is the countdown for ModeTimeAttack.
	TimeLimit time.Duration
}

// AnswerResult is the graded outcome of one submission.
type AnswerResult struct {
	QuestionID string
	Correct    bool

	// Selected and CorrectIndex are original option indices, so callers
	// can look options up in the unshuffled question.
	Selected     int
	CorrectIndex int

	Explanation string
	Elapsed     time.Duration
}

// BlockResult tracks per-block performance within a session.
type BlockResult struct {
	Block     string
	Attempted int
	Correct   int
}

// Session is one run through a question set. Methods are safe for
// concurrent use so a countdown goroutine can end a session that the UI
// is driving.
type Session struct {
	mu sync.Mutex

	id   string
	opts Options
	deps Deps
	log  *logger.Logger

	// pool is the candidate list fixed at creation.
	pool     []catalog.Question
	moduleOf map[string]string

	phase     Phase
	current   *catalog.Question
	shuffled  shuffle.Result
	selected  int // display index, -1 when nothing is selected
	last      *AnswerResult
	asked     map[string]bool
	position  int // index into pool for listed modes
	countdown *Countdown

	totalAnswered int
	totalCorrect  int
	blocks        map[string]*BlockResult
	blockOrder    []string

	levelsBefore map[string]mastery.Level
	transitions  []mastery.LevelTransition

	startTime         time.Time
	endTime           time.Time
	questionStartTime time.Time
	ended             bool
}
