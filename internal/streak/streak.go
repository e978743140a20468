// Package streak tracks consecutive practice days.
package streak

import (
	"time"

	"github.com/abhisek/quizdeck/internal/stats"
)

// DateLayout is the calendar-day format stored in LastPracticeDate.
const DateLayout = "2006-01-02"

// Streak is the persisted daily-practice record. Its JSON shape is also the
// streak section of export files.
type Streak struct {
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`

	// LastPracticeDate is a calendar day (YYYY-MM-DD) or, for imported
	// data, an RFC 3339 timestamp. Nil when never practiced.
	LastPracticeDate *string `json:"lastPracticeDate"`
}

// Record registers practice at now. Practicing again on the same day is a
// no-op, the next calendar day extends the streak and any longer gap
// restarts it at 1.
func Record(s Streak, now time.Time) Streak {
	today := now.Format(DateLayout)

	next := 1
	if last, ok := lastDay(s, now.Location()); ok {
		switch daysBetween(last, now) {
		case 0:
			return s
		case 1:
			next = s.CurrentStreak + 1
		}
	}

	out := Streak{
		CurrentStreak:    next,
		LongestStreak:    max(s.LongestStreak, next),
		LastPracticeDate: &today,
	}
	return out
}

// Current returns s as seen at now: when more than one calendar day has
// passed since the last practice the current streak reads as 0.
func Current(s Streak, now time.Time) Streak {
	last, ok := lastDay(s, now.Location())
	if !ok {
		s.CurrentStreak = 0
		return s
	}
	if daysBetween(last, now) > 1 {
		s.CurrentStreak = 0
	}
	return s
}

// Sanitize builds a Streak from untrusted decoded JSON. Counters that are
// not non-negative numbers become 0; a practice date that does not parse or
// lies in the future becomes nil.
func Sanitize(raw map[string]any, now time.Time) Streak {
	s := Streak{
		CurrentStreak: stats.NonNegativeInt(raw["currentStreak"]),
		LongestStreak: stats.NonNegativeInt(raw["longestStreak"]),
	}
	if d, ok := raw["lastPracticeDate"].(string); ok {
		if t, ok := ParseDate(d, now.Location()); ok && !t.After(now) {
			s.LastPracticeDate = &d
		}
	}
	return s
}

// ParseDate accepts YYYY-MM-DD (midnight in loc) or an RFC 3339 timestamp.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), true
	}
	return time.Time{}, false
}

func lastDay(s Streak, loc *time.Location) (time.Time, bool) {
	if s.LastPracticeDate == nil {
		return time.Time{}, false
	}
	return ParseDate(*s.LastPracticeDate, loc)
}

// daysBetween counts calendar days from a to b, ignoring clock time and
// DST shifts.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
