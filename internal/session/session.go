// Package session runs quiz sessions: it picks questions according to the
// session mode, shuffles their options, grades answers and records the
// outcome.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/logger"
	"github.com/abhisek/quizdeck/internal/mastery"
	"github.com/abhisek/quizdeck/internal/selector"
	"github.com/abhisek/quizdeck/internal/shuffle"
	"github.com/abhisek/quizdeck/internal/store"
)

// ErrEmpty is returned when a mode has no questions to ask, for example a
// failed-question review with nothing failed.
var ErrEmpty = errors.New("no questions available for this mode")

// New builds a session in PhaseSetup. The question list of listed modes is
// snapshotted here, so answering a question never reshapes the list.
func New(ctx context.Context, deps Deps, opts Options) (*Session, error) {
	if deps.Learner == nil {
		return nil, fmt.Errorf("session requires a learner")
	}
	if len(opts.Modules) == 0 {
		return nil, fmt.Errorf("session requires at least one module")
	}
	if opts.Mode == "" {
		opts.Mode = ModeAdaptive
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Rng == nil {
		deps.Rng = shuffle.NewRand(0)
	}
	if deps.Selector == nil {
		deps.Selector = selector.New(deps.Rng, selector.WithClock(deps.Now))
	}
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}

	var all []catalog.Question
	moduleOf := make(map[string]string)
	for _, m := range opts.Modules {
		for _, q := range m.Questions {
			all = append(all, q)
			moduleOf[q.ID] = m.ID
		}
	}

	m := deps.Learner.Stats(ctx)
	var pool []catalog.Question
	switch opts.Mode {
	case ModeAdaptive, ModeSequential:
		pool = all
	case ModeTimeAttack:
		pool = all
		if opts.TimeLimit <= 0 {
			opts.TimeLimit = TimeAttackDurations[0]
		}
	case ModeFailed:
		pool = selector.FailingMoreThanPassing(all, m)
	case ModeBookmarked:
		pool = selector.Bookmarked(all, selector.IDSet(deps.Learner.Bookmarks(ctx)))
	case ModeBlock:
		if opts.Block == "" {
			return nil, fmt.Errorf("block mode requires a block name")
		}
		pool = selector.InBlock(all, opts.Block)
	default:
		return nil, fmt.Errorf("unknown mode %q", opts.Mode)
	}
	if len(pool) == 0 {
		return nil, ErrEmpty
	}

	levels := make(map[string]mastery.Level, len(opts.Modules))
	for _, mod := range opts.Modules {
		levels[mod.ID] = mastery.Classify(mod.Questions, m).Level
	}

	s := &Session{
		id:           uuid.NewString(),
		opts:         opts,
		deps:         deps,
		pool:         pool,
		moduleOf:     moduleOf,
		phase:        PhaseSetup,
		selected:     -1,
		asked:        make(map[string]bool),
		blocks:       make(map[string]*BlockResult),
		levelsBefore: levels,
	}
	s.log = deps.Log.With("session_id", s.id, "mode", string(opts.Mode))
	return s, nil
}

// Start moves to PhasePlaying, records the start event and loads the
// first question. For time attack it creates the countdown; the caller
// drives it with Countdown().Tick or Countdown().Start.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.phase != PhaseSetup {
		s.mu.Unlock()
		return fmt.Errorf("session already started")
	}
	s.startTime = s.deps.Now()
	if s.opts.Mode == ModeTimeAttack {
		s.countdown = NewCountdown(s.opts.TimeLimit)
	}
	s.phase = PhasePlaying
	s.mu.Unlock()

	s.appendSessionEvent(ctx, store.SessionStart, 0, 0, 0)
	s.log.Info("session started", "scope", s.scope(), "questions", len(s.pool))

	s.Next(ctx)
	return nil
}

// Next loads and shuffles the next question. It returns false, and the
// session moves to PhaseResults, when the pool is exhausted or the session
// is already over.
func (s *Session) Next(ctx context.Context) bool {
	s.mu.Lock()
	if s.phase == PhaseResults || s.phase == PhaseSetup {
		s.mu.Unlock()
		return false
	}

	var q catalog.Question
	ok := false
	if s.opts.Mode.Listed() {
		if s.current != nil {
			s.position++
		}
		if s.position < len(s.pool) {
			q, ok = s.pool[s.position], true
		}
	} else {
		m := s.deps.Learner.Stats(ctx)
		q, ok = s.deps.Selector.Next(s.pool, m, s.asked)
	}

	if !ok {
		s.mu.Unlock()
		s.End(ctx)
		return false
	}
	s.load(q)
	s.mu.Unlock()
	return true
}

// Previous steps back one question in listed modes. It returns false at
// the start of the list or in sampled modes.
func (s *Session) Previous() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opts.Mode.Listed() || s.phase == PhaseResults || s.position == 0 {
		return false
	}
	s.position--
	s.load(s.pool[s.position])
	return true
}

func (s *Session) load(q catalog.Question) {
	s.current = &q
	s.asked[q.ID] = true
	s.shuffled = shuffle.Shuffle(s.deps.Rng, q.Options, q.CorrectAnswer)
	s.selected = -1
	s.last = nil
	s.phase = PhasePlaying
	s.questionStartTime = s.deps.Now()
}

// Select marks a display index as the learner's choice. Choices are
// ignored once the answer is graded.
func (s *Session) Select(displayIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlaying || displayIndex < 0 || displayIndex >= len(s.shuffled.Options) {
		return
	}
	s.selected = displayIndex
}

// Submit grades the selected option. It returns nil when nothing is
// selected or no question is awaiting an answer. Correctness is decided in
// display space against the shuffled correct index.
func (s *Session) Submit(ctx context.Context) *AnswerResult {
	s.mu.Lock()
	if s.phase != PhasePlaying || s.current == nil || s.selected < 0 {
		s.mu.Unlock()
		return nil
	}

	q := *s.current
	now := s.deps.Now()
	res := &AnswerResult{
		QuestionID:   q.ID,
		Correct:      s.selected == s.shuffled.Correct,
		Selected:     s.shuffled.Original(s.selected),
		CorrectIndex: q.CorrectAnswer,
		Explanation:  q.Explanation,
		Elapsed:      now.Sub(s.questionStartTime),
	}

	s.totalAnswered++
	if res.Correct {
		s.totalCorrect++
	}
	br := s.blocks[q.Block]
	if br == nil {
		br = &BlockResult{Block: q.Block}
		s.blocks[q.Block] = br
		s.blockOrder = append(s.blockOrder, q.Block)
	}
	br.Attempted++
	if res.Correct {
		br.Correct++
	}
	s.last = res
	s.phase = PhaseFeedback
	s.mu.Unlock()

	if _, ok := s.deps.Learner.RecordAnswer(ctx, q.ID, res.Correct, now); !ok {
		s.log.Warn("answer not persisted", "question_id", q.ID)
	}
	if s.deps.Events != nil {
		err := s.deps.Events.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:  s.id,
			QuestionID: q.ID,
			ModuleID:   s.moduleOf[q.ID],
			Mode:       string(s.opts.Mode),
			Selected:   res.Selected,
			Correct:    res.Correct,
			TimeMs:     res.Elapsed.Milliseconds(),
		})
		if err != nil {
			s.log.Warn("append answer event failed", "error", err)
		}
	}
	return res
}

// ToggleBookmark flips the bookmark on the current question and reports
// whether it is now bookmarked.
func (s *Session) ToggleBookmark(ctx context.Context) bool {
	s.mu.Lock()
	q := s.current
	s.mu.Unlock()
	if q == nil {
		return false
	}
	on, ok := s.deps.Learner.ToggleBookmark(ctx, q.ID)
	if !ok {
		s.log.Warn("bookmark not persisted", "question_id", q.ID)
	}
	return on
}

// Tick advances the time-attack countdown by one second and ends the
// session when it reaches zero. It returns the remaining seconds.
func (s *Session) Tick(ctx context.Context) int {
	s.mu.Lock()
	cd := s.countdown
	s.mu.Unlock()
	if cd == nil {
		return 0
	}
	remaining, expired := cd.Tick()
	if expired {
		s.End(ctx)
	}
	return remaining
}

// End finishes the session: it stops the countdown, computes mastery
// transitions and records the end event. Calling End again is a no-op.
func (s *Session) End(ctx context.Context) {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	s.ended = true
	s.phase = PhaseResults
	s.endTime = s.deps.Now()
	if s.countdown != nil {
		s.countdown.Stop()
	}
	answered, correct := s.totalAnswered, s.totalCorrect
	duration := s.endTime.Sub(s.startTime)
	s.mu.Unlock()

	s.computeTransitions(ctx)
	s.appendSessionEvent(ctx, store.SessionEnd, answered, correct, int(duration.Seconds()))
	s.log.Info("session ended", "answered", answered, "correct", correct, "duration", duration.String())
}

func (s *Session) computeTransitions(ctx context.Context) {
	m := s.deps.Learner.Stats(ctx)
	var out []mastery.LevelTransition
	for _, mod := range s.opts.Modules {
		to := mastery.Classify(mod.Questions, m).Level
		from := s.levelsBefore[mod.ID]
		if to != from {
			out = append(out, mastery.LevelTransition{
				ModuleID:   mod.ID,
				ModuleName: mod.Name,
				From:       from,
				To:         to,
			})
		}
	}
	s.mu.Lock()
	s.transitions = out
	s.mu.Unlock()
}

func (s *Session) appendSessionEvent(ctx context.Context, action string, asked, correct, secs int) {
	if s.deps.Events == nil {
		return
	}
	err := s.deps.Events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:      s.id,
		Action:         action,
		Mode:           string(s.opts.Mode),
		Scope:          s.scope(),
		QuestionsAsked: asked,
		CorrectAnswers: correct,
		DurationSecs:   secs,
	})
	if err != nil {
		s.log.Warn("append session event failed", "action", action, "error", err)
	}
}

func (s *Session) scope() string {
	ids := make([]string, len(s.opts.Modules))
	for i, m := range s.opts.Modules {
		ids[i] = m.ID
	}
	scope := strings.Join(ids, ",")
	if s.opts.Block != "" {
		scope += "#" + s.opts.Block
	}
	return scope
}

// ID is the session's UUID.
func (s *Session) ID() string { return s.id }

// Mode is the session mode.
func (s *Session) Mode() Mode { return s.opts.Mode }

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Current returns the question on screen and its shuffled options.
func (s *Session) Current() (catalog.Question, shuffle.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return catalog.Question{}, shuffle.Result{}, false
	}
	return *s.current, s.shuffled, true
}

// Selected returns the selected display index, or -1.
func (s *Session) Selected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// LastResult returns the most recent graded answer while in feedback.
func (s *Session) LastResult() *AnswerResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Progress returns the 1-based position of the current question and the
// size of the question list.
func (s *Session) Progress() (current, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opts.Mode.Listed() {
		return min(s.position+1, len(s.pool)), len(s.pool)
	}
	return len(s.asked), len(s.pool)
}

// Score returns answered and correct counts so far.
func (s *Session) Score() (answered, correct int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalAnswered, s.totalCorrect
}

// Countdown returns the time-attack countdown, or nil in other modes.
func (s *Session) Countdown() *Countdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countdown
}
