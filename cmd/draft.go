package cmd

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/llm"
	"github.com/abhisek/quizdeck/internal/questiongen"
	"github.com/abhisek/quizdeck/internal/ui/components"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Draft new questions for a module with an LLM",
	Long: `Ask the configured LLM for new multiple-choice questions for a module.

Drafts are validated, checked against the module's existing questions and
written to a separate module file for review. They never enter the catalog
until you add the file to the manifest yourself.

Configure the provider with QUIZDECK_LLM_PROVIDER and the matching API key
(GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY).`,
	RunE: runDraft,
}

func init() {
	draftCmd.Flags().String("module", "", "Module ID (required)")
	draftCmd.Flags().IntP("count", "n", 5, "Number of questions to draft")
	draftCmd.Flags().String("block", "", "Pin every draft to this block")
	draftCmd.Flags().StringP("out", "o", "", "Output file (default <data dir>/drafts/<module>-<date>.json)")
	draftCmd.Flags().Bool("try", false, "Answer the drafts interactively before writing them")
	_ = draftCmd.MarkFlagRequired("module")
}

func runDraft(cmd *cobra.Command, args []string) error {
	moduleID, _ := cmd.Flags().GetString("module")
	count, _ := cmd.Flags().GetInt("count")
	block, _ := cmd.Flags().GetString("block")
	outPath, _ := cmd.Flags().GetString("out")
	try, _ := cmd.Flags().GetBool("try")

	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	c, err := d.loadCatalog()
	if err != nil {
		return err
	}
	mod, ok := c.Module(moduleID)
	if !ok {
		return fmt.Errorf("unknown module %q", moduleID)
	}
	topic := ""
	if t, ok := c.Topic(mod.TopicID); ok {
		topic = t.Name
	}

	ctx := cmd.Context()
	provider, err := llm.NewFromEnv(ctx, d.store.EventRepo(), d.log)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Module: %s (%s, %d existing questions)\n", mod.ID, mod.Name, len(mod.Questions))
	fmt.Fprintf(out, "Drafting %d questions with %s...\n\n", count, provider.ModelID())

	gen := questiongen.New(provider, questiongen.DefaultConfig(), d.log)
	res, err := gen.Draft(ctx, questiongen.Input{Module: mod, Topic: topic, Block: block, Count: count})
	if err != nil {
		return err
	}

	for _, r := range res.Rejected {
		fmt.Fprintf(out, "rejected: %s (%s)\n", truncate(r.Question, 60), r.Reason)
	}
	if len(res.Questions) == 0 {
		return fmt.Errorf("no usable drafts")
	}

	if try {
		tryDrafts(cmd.InOrStdin(), out, res.Questions)
	} else {
		for i, q := range res.Questions {
			printDraft(out, i+1, len(res.Questions), q)
			fmt.Fprintln(out)
		}
	}

	if outPath == "" {
		outPath = filepath.Join(d.cfg.DataDir, "drafts",
			fmt.Sprintf("%s-%s.json", mod.ID, timeNow().Format("20060102-150405")))
	}
	title := mod.Name + " (drafts)"
	if err := questiongen.WriteModuleFile(outPath, title, res.Questions); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %d drafts to %s (%d tokens)\n", len(res.Questions), outPath, res.Usage.Total())
	return nil
}

func printDraft(out io.Writer, i, n int, q catalog.Question) {
	fmt.Fprintf(out, "── Draft %d/%d", i, n)
	if q.Block != "" {
		fmt.Fprintf(out, " · %s", q.Block)
	}
	fmt.Fprintln(out, " ──")
	fmt.Fprintln(out, q.Question)
	for j, opt := range q.Options {
		mark := " "
		if j == q.CorrectAnswer {
			mark = "*"
		}
		fmt.Fprintf(out, " %s %s) %s\n", mark, components.Label(j), opt)
	}
	if q.Explanation != "" {
		fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
	}
}

// tryDrafts quizzes the user on each draft, the quickest way to spot a
// wrong key or an ambiguous stem.
func tryDrafts(in io.Reader, out io.Writer, qs []catalog.Question) {
	scanner := bufio.NewScanner(in)
	var correct int
	for i, q := range qs {
		fmt.Fprintf(out, "── Draft %d/%d ──\n", i+1, len(qs))
		fmt.Fprintln(out, q.Question)
		for j, opt := range q.Options {
			fmt.Fprintf(out, "  %s) %s\n", components.Label(j), opt)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			return
		}
		answer := strings.TrimSpace(scanner.Text())
		idx := components.IndexForKey(answer, len(q.Options))
		switch {
		case answer == "":
			fmt.Fprintln(out, "(skipped)")
		case idx == q.CorrectAnswer:
			correct++
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		default:
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s) %s\n",
				components.Label(q.CorrectAnswer), q.CorrectOption())
		}
		if q.Explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "── Summary: %d/%d correct ──\n\n", correct, len(qs))
}
