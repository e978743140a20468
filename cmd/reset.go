package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all learner data",
	Long: `Delete stats, bookmarks, streak, the selected topic and the splash flag,
along with the answer and session history. LLM request logs are kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("this deletes all progress; re-run with --yes to confirm")
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		if !d.learner.ResetAll(ctx) {
			return fmt.Errorf("some learner data could not be removed; see %s", d.cfg.LogFile)
		}
		if err := d.store.EventRepo().Clear(ctx); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		d.log.Info("learner data reset")
		fmt.Fprintln(cmd.OutOrStdout(), "All progress deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
