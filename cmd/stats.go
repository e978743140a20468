package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/mastery"
	"github.com/abhisek/quizdeck/internal/progress"
	"github.com/abhisek/quizdeck/internal/stats"
	"github.com/abhisek/quizdeck/internal/streak"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress per topic and module",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		c, err := d.loadCatalog()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		m := d.learner.Stats(ctx)
		out := cmd.OutOrStdout()

		var all []catalog.Question
		for _, t := range c.Topics() {
			for _, qs := range t.QuestionSets() {
				all = append(all, qs...)
			}
		}
		g := stats.Summarize(all, m)
		fmt.Fprintf(out, "Answered:  %d of %d questions\n", g.AnsweredQuestions, g.TotalQuestions)
		fmt.Fprintf(out, "Answers:   %d correct, %d incorrect (%.1f%%)\n", g.Correct, g.Incorrect, g.Accuracy())

		if s := d.learner.Streak(ctx); s != nil {
			cur := streak.Current(*s, timeNow())
			fmt.Fprintf(out, "Streak:    %d days (best %d, next milestone %d)\n",
				cur.CurrentStreak, cur.LongestStreak, streak.NextMilestone(cur.CurrentStreak))
		} else {
			fmt.Fprintln(out, "Streak:    none yet")
		}
		fmt.Fprintf(out, "Bookmarks: %d\n", len(d.learner.Bookmarks(ctx)))

		for _, t := range c.Topics() {
			ts := progress.ForTopic(t.QuestionSets(), m)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%s  (%d/%d answered, %s%%)\n", t.Name, ts.Answered, ts.Total, ts.Accuracy)
			fmt.Fprintln(out, strings.Repeat("─", 72))
			fmt.Fprintf(out, "%-28s  %-10s  %9s  %8s  %-6s\n", "Module", "Mastery", "Answered", "Accuracy", "Tier")
			for _, mod := range t.Modules {
				p := progress.ForModule(mod.Questions, m)
				level := mastery.Classify(mod.Questions, m).Level
				fmt.Fprintf(out, "%-28s  %-10s  %4d/%-4d  %7s%%  %-6s\n",
					truncate(mod.Name, 28), level.Label(), p.Answered, p.Total, p.Accuracy,
					progress.AccuracyTier(p.AccuracyValue))
			}
		}
		return nil
	},
}
