package questiongen

import (
	"strings"
	"unicode"

	"github.com/abhisek/quizdeck/internal/catalog"
)

// check returns why q is unusable, or "".
func check(q catalog.Question, seen *dedup) string {
	if errs := catalog.ValidateQuestions([]catalog.Question{q}); len(errs) > 0 {
		return errs[0]
	}
	opts := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if o == "" {
			return "empty option"
		}
		k := normalize(o)
		if opts[k] {
			return "duplicate option " + o
		}
		opts[k] = true
	}
	if seen.has(q.Question) {
		return "duplicates an existing question"
	}
	return ""
}

type dedup struct {
	texts map[string]bool
}

func newDedup(existing []catalog.Question) *dedup {
	d := &dedup{texts: make(map[string]bool, len(existing))}
	for _, q := range existing {
		d.add(q.Question)
	}
	return d
}

func (d *dedup) add(text string) { d.texts[normalize(text)] = true }

func (d *dedup) has(text string) bool { return d.texts[normalize(text)] }

// normalize lowercases and keeps only letters and digits, so punctuation and
// spacing differences do not hide a duplicate.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
