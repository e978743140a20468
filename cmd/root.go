package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizdeck",
	Short: "Multiple-choice quiz trainer for the terminal",
	Long: `QuizDeck is a terminal quiz app that drills multiple-choice question banks,
weighting questions you get wrong and bringing them back as you forget them.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZDECK_DB)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to the topics manifest (overrides QUIZDECK_CATALOG)")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed, 0 for a random one (overrides QUIZDECK_SEED)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
