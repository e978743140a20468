package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizdeck/internal/catalog"
)

const systemPrompt = `You write multiple-choice questions for a self-study quiz.

Rules:
- Each question must be self-contained and unambiguous.
- Provide 4 options unless the subject clearly calls for fewer. Exactly one option is correct.
- Distractors should reflect plausible misconceptions, not jokes or obviously wrong values.
- Do not use "all of the above" or "none of the above".
- Vary the position of the correct option.
- The explanation states why the correct option is right in one or two sentences.
- Write in the same language as the existing questions.
- Do not repeat or paraphrase any question from the "existing questions" list.`

// buildUserMessage describes the module, the wanted batch and the questions
// the model must not duplicate.
func buildUserMessage(in Input, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Module: %s\n", in.Module.Name)
	if in.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	}
	if in.Block != "" {
		fmt.Fprintf(&b, "Block: %s (use this exact value for every question's block)\n", in.Block)
	} else if blocks := catalog.Blocks(in.Module.Questions); len(blocks) > 0 {
		fmt.Fprintf(&b, "Known blocks: %s\n", strings.Join(blocks, ", "))
	}
	fmt.Fprintf(&b, "Number of questions: %d\n", in.Count)

	b.WriteString("\nExisting questions:\n")
	b.WriteString(existingList(in.Module.Questions, cfg.MaxExisting))
	return b.String()
}

// existingList numbers the most recent max question texts, or "None".
func existingList(qs []catalog.Question, max int) string {
	if len(qs) == 0 {
		return "None"
	}
	if max > 0 && len(qs) > max {
		qs = qs[len(qs)-max:]
	}
	var b strings.Builder
	for i, q := range qs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q.Question)
	}
	return strings.TrimRight(b.String(), "\n")
}
