package catalog

// Question is an immutable multiple-choice item from a module file.
type Question struct {
	ID            string   `json:"id" yaml:"id"`
	Block         string   `json:"block" yaml:"block"`
	Question      string   `json:"question" yaml:"question"`
	Options       []string `json:"options" yaml:"options"`
	CorrectAnswer int      `json:"correctAnswer" yaml:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	Media         *Media   `json:"media,omitempty" yaml:"media,omitempty"`
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectAnswer]
}

// Module is a named question set inside a topic.
type Module struct {
	ID        string
	Name      string
	TopicID   string
	Questions []Question
}

// Topic is the top-level content grouping.
type Topic struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Color       string
	Modules     []*Module
}

// Blocks returns the distinct block names of qs in first-seen order.
// Questions without a block are skipped.
func Blocks(qs []Question) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range qs {
		if q.Block == "" || seen[q.Block] {
			continue
		}
		seen[q.Block] = true
		out = append(out, q.Block)
	}
	return out
}
