package stats

import "math"

// reservedKeys never become question IDs. They are meaningful to
// JavaScript object prototypes and show up in hostile export files.
var reservedKeys = map[string]bool{
	"__proto__":   true,
	"constructor": true,
	"prototype":   true,
}

// Sanitize builds a Map from untrusted decoded JSON. Reserved keys and
// non-object entries are dropped, counters are coerced to non-negative
// integers, only whitelisted fields survive, and entries carrying no
// information (zero counters and no lastAttempt) are discarded.
func Sanitize(raw map[string]any) Map {
	out := make(Map, len(raw))
	for id, v := range raw {
		if id == "" || reservedKeys[id] {
			continue
		}
		entry, ok := v.(map[string]any)
		if !ok {
			continue
		}

		s := AnswerStat{
			Correct:   NonNegativeInt(entry["correct"]),
			Incorrect: NonNegativeInt(entry["incorrect"]),
		}
		if la, ok := entry["lastAttempt"].(string); ok {
			s.LastAttempt = la
		}
		if s.Correct == 0 && s.Incorrect == 0 && s.LastAttempt == "" {
			continue
		}
		out[id] = s
	}
	return out
}

// NonNegativeInt coerces a decoded JSON value to a non-negative integer.
// Non-numbers, NaN, infinities and negatives become 0; fractions are
// truncated toward zero.
func NonNegativeInt(v any) int {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(f))
}
