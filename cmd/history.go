package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent quizzes or answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		answers, _ := cmd.Flags().GetBool("answers")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if answers {
			return printAnswers(cmd, d.store.EventRepo(), limit)
		}
		return printSessions(cmd, d.store.EventRepo(), limit)
	},
}

func printSessions(cmd *cobra.Command, repo store.EventRepo, limit int) error {
	events, err := repo.QuerySessionEvents(cmd.Context(), store.QueryOpts{})
	if err != nil {
		return fmt.Errorf("query sessions: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-19s  %-12s  %-24s  %9s  %7s  %s\n",
		"Ended", "Mode", "Scope", "Questions", "Correct", "Time")
	fmt.Fprintln(out, strings.Repeat("─", 88))

	shown := 0
	for _, e := range events {
		if e.Action != store.SessionEnd {
			continue
		}
		fmt.Fprintf(out, "%-19s  %-12s  %-24s  %9d  %7d  %s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Mode, truncate(e.Scope, 24), e.QuestionsAsked, e.CorrectAnswers,
			session.FormatClock(e.DurationSecs))
		shown++
		if limit > 0 && shown == limit {
			break
		}
	}
	if shown == 0 {
		fmt.Fprintln(out, "No quizzes yet.")
	}
	return nil
}

func printAnswers(cmd *cobra.Command, repo store.EventRepo, limit int) error {
	events, err := repo.QueryAnswerEvents(cmd.Context(), store.QueryOpts{Limit: limit})
	if err != nil {
		return fmt.Errorf("query answers: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No answers yet.")
		return nil
	}
	fmt.Fprintf(out, "%-6s  %-19s  %-16s  %-20s  %-2s  %7s\n",
		"Seq", "Time", "Module", "Question", "OK", "Secs")
	fmt.Fprintln(out, strings.Repeat("─", 80))
	for _, e := range events {
		ok := "✓"
		if !e.Correct {
			ok = "✗"
		}
		fmt.Fprintf(out, "%-6d  %-19s  %-16s  %-20s  %-2s  %7.1f\n",
			e.Sequence, e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			truncate(e.ModuleID, 16), truncate(e.QuestionID, 20), ok, float64(e.TimeMs)/1000)
	}
	return nil
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of entries to show")
	historyCmd.Flags().BoolP("answers", "a", false, "List individual answers instead of quizzes")
}
