package store

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"time"

	"github.com/abhisek/quizdeck/internal/logger"
	"github.com/abhisek/quizdeck/internal/stats"
	"github.com/abhisek/quizdeck/internal/streak"
)

// Keys of the learner's persisted state.
const (
	KeyStats         = "quizStats"
	KeyBookmarks     = "bookmarks"
	KeyHasSeenSplash = "hasSeenSplash"
	KeySelectedTopic = "selectedTopic"
	KeyStreak        = "quizStreak"
)

// AllKeys lists every key owned by the learner, in reset order.
var AllKeys = []string{KeyStats, KeyBookmarks, KeyHasSeenSplash, KeySelectedTopic, KeyStreak}

// Learner is a typed view over a KV. Reads never fail: a missing or
// unreadable value yields the default. Writes report success as a bool and
// log the cause on failure.
type Learner struct {
	kv  KV
	log *logger.Logger
	now func() time.Time
}

// LearnerOption configures a Learner.
type LearnerOption func(*Learner)

// WithClock sets the clock used when sanitizing stored dates.
func WithClock(now func() time.Time) LearnerOption {
	return func(l *Learner) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLearner wraps kv. A nil log discards output.
func NewLearner(kv KV, log *logger.Logger, opts ...LearnerOption) *Learner {
	if log == nil {
		log = logger.Nop()
	}
	l := &Learner{kv: kv, log: log, now: time.Now}
	for _, o := range opts {
		o(l)
	}
	return l
}

// GetJSON decodes key into dst. It returns false when the key is missing or
// its value does not decode.
func (l *Learner) GetJSON(ctx context.Context, key string, dst any) bool {
	b, err := l.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		l.log.Warn("kv read failed", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		l.log.Warn("kv value is not valid JSON", "key", key, "error", err)
		return false
	}
	return true
}

// SetJSON encodes v under key.
func (l *Learner) SetJSON(ctx context.Context, key string, v any) bool {
	b, err := json.Marshal(v)
	if err != nil {
		l.log.Error("kv encode failed", "key", key, "error", err)
		return false
	}
	if err := l.kv.Set(ctx, key, b); err != nil {
		l.log.Error("kv write failed", "key", key, "error", err)
		return false
	}
	return true
}

// Remove deletes key.
func (l *Learner) Remove(ctx context.Context, key string) bool {
	if err := l.kv.Delete(ctx, key); err != nil {
		l.log.Error("kv delete failed", "key", key, "error", err)
		return false
	}
	return true
}

// Stats returns the sanitized per-question statistics.
func (l *Learner) Stats(ctx context.Context) stats.Map {
	var raw map[string]any
	if !l.GetJSON(ctx, KeyStats, &raw) || raw == nil {
		return stats.Map{}
	}
	return stats.Sanitize(raw)
}

func (l *Learner) SaveStats(ctx context.Context, m stats.Map) bool {
	return l.SetJSON(ctx, KeyStats, m)
}

// RecordAnswer updates the question's counters and the practice streak.
func (l *Learner) RecordAnswer(ctx context.Context, questionID string, correct bool, now time.Time) (stats.Map, bool) {
	m := l.Stats(ctx).Record(questionID, correct, now)
	ok := l.SaveStats(ctx, m)

	var s streak.Streak
	if cur := l.Streak(ctx); cur != nil {
		s = *cur
	}
	ok = l.SaveStreak(ctx, streak.Record(s, now)) && ok
	return m, ok
}

// Bookmarks returns bookmarked question IDs. Non-string entries are dropped.
func (l *Learner) Bookmarks(ctx context.Context) []string {
	var raw []any
	if !l.GetJSON(ctx, KeyBookmarks, &raw) {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(string); ok && id != "" {
			out = append(out, id)
		}
	}
	return out
}

func (l *Learner) SaveBookmarks(ctx context.Context, ids []string) bool {
	if ids == nil {
		ids = []string{}
	}
	return l.SetJSON(ctx, KeyBookmarks, ids)
}

// ToggleBookmark adds or removes id and reports whether it is now bookmarked.
func (l *Learner) ToggleBookmark(ctx context.Context, id string) (bookmarked, ok bool) {
	ids := l.Bookmarks(ctx)
	if i := slices.Index(ids, id); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
	} else {
		ids = append(ids, id)
		bookmarked = true
	}
	return bookmarked, l.SaveBookmarks(ctx, ids)
}

func (l *Learner) HasSeenSplash(ctx context.Context) bool {
	var seen bool
	l.GetJSON(ctx, KeyHasSeenSplash, &seen)
	return seen
}

func (l *Learner) SetHasSeenSplash(ctx context.Context) bool {
	return l.SetJSON(ctx, KeyHasSeenSplash, true)
}

// SelectedTopic returns the last chosen topic ID, or "".
func (l *Learner) SelectedTopic(ctx context.Context) string {
	var id string
	l.GetJSON(ctx, KeySelectedTopic, &id)
	return id
}

func (l *Learner) SaveSelectedTopic(ctx context.Context, id string) bool {
	return l.SetJSON(ctx, KeySelectedTopic, id)
}

// Streak returns the stored streak, or nil when none is stored.
func (l *Learner) Streak(ctx context.Context) *streak.Streak {
	var raw map[string]any
	if !l.GetJSON(ctx, KeyStreak, &raw) || raw == nil {
		return nil
	}
	s := streak.Sanitize(raw, l.now())
	return &s
}

func (l *Learner) SaveStreak(ctx context.Context, s streak.Streak) bool {
	return l.SetJSON(ctx, KeyStreak, s)
}

func (l *Learner) RemoveStreak(ctx context.Context) bool {
	return l.Remove(ctx, KeyStreak)
}

// ResetAll removes every learner key. It attempts all keys and reports
// whether every removal succeeded.
func (l *Learner) ResetAll(ctx context.Context) bool {
	ok := true
	for _, k := range AllKeys {
		ok = l.Remove(ctx, k) && ok
	}
	return ok
}
