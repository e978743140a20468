package questiongen

import "github.com/abhisek/quizdeck/internal/llm"

// DraftSchema is the structured output requested from the model: a batch of
// multiple-choice questions.
var DraftSchema = &llm.Schema{
	Name:        "quiz-question-drafts",
	Description: "A batch of multiple-choice quiz questions with explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text shown to the learner",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"minItems":    2,
							"maxItems":    6,
							"description": "Answer options. Exactly one is correct.",
						},
						"correct_index": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"description": "Zero-based index of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct option is right, in one or two sentences",
						},
						"block": map[string]any{
							"type":        "string",
							"description": "The sub-topic this question belongs to",
						},
					},
					"required":             []any{"question", "options", "correct_index", "explanation", "block"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

type draftOutput struct {
	Questions []draftQuestion `json:"questions"`
}

type draftQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
	Block        string   `json:"block"`
}
