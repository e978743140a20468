package catalog

import (
	"fmt"
	"strings"
)

// validateTopics performs all structural checks on the topic tree.
// Returns a combined error describing all problems found, or nil if valid.
func validateTopics(topics []*Topic) error {
	var errs []string

	topicIDs := make(map[string]bool, len(topics))
	moduleIDs := make(map[string]bool)
	// question ID -> owning module, across the whole catalog
	owner := make(map[string]string)
	for _, t := range topics {
		if t.ID == "" {
			errs = append(errs, "topic with empty ID")
		}
		if topicIDs[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate topic ID: %q", t.ID))
		}
		topicIDs[t.ID] = true

		for _, m := range t.Modules {
			if m.ID == "" {
				errs = append(errs, fmt.Sprintf("topic %q has a module with empty ID", t.ID))
			}
			if moduleIDs[m.ID] {
				errs = append(errs, fmt.Sprintf("duplicate module ID: %q", m.ID))
			}
			moduleIDs[m.ID] = true
			for _, e := range ValidateQuestions(m.Questions) {
				errs = append(errs, fmt.Sprintf("module %q: %s", m.ID, e))
			}
			seen := make(map[string]bool, len(m.Questions))
			for _, q := range m.Questions {
				if q.ID == "" || seen[q.ID] {
					continue
				}
				seen[q.ID] = true
				if prev, ok := owner[q.ID]; ok {
					errs = append(errs, fmt.Sprintf("duplicate question ID %q (modules %q, %q)", q.ID, prev, m.ID))
					continue
				}
				owner[q.ID] = m.ID
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// ValidateQuestions returns one message per structural problem in qs.
func ValidateQuestions(qs []Question) []string {
	var errs []string
	ids := make(map[string]bool, len(qs))
	for i, q := range qs {
		label := q.ID
		if label == "" {
			label = fmt.Sprintf("#%d", i)
			errs = append(errs, fmt.Sprintf("question %s has empty ID", label))
		} else if ids[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		ids[q.ID] = true

		if strings.TrimSpace(q.Question) == "" {
			errs = append(errs, fmt.Sprintf("question %s has empty text", label))
		}
		if len(q.Options) < 2 {
			errs = append(errs, fmt.Sprintf("question %s needs at least 2 options, has %d", label, len(q.Options)))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			errs = append(errs, fmt.Sprintf("question %s correctAnswer %d out of range", label, q.CorrectAnswer))
		}
	}
	return errs
}
