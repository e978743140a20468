package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/backup"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stats, bookmarks and streak to a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = filepath.Join(d.cfg.DataDir, "exports")
		}
		now := timeNow()
		env := backup.Gather(cmd.Context(), d.learner, now)
		path, err := backup.WriteFile(dir, env, now)
		if err != nil {
			return err
		}
		d.log.Info("progress exported", "path", path)
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d question stats and %d bookmarks to %s\n",
			len(env.Stats), len(env.Bookmarks), path)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Replace stats, bookmarks and streak with an export file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		env, err := backup.Import(cmd.Context(), d.learner, args[0], timeNow())
		if err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}
		d.log.Info("progress imported", "path", args[0], "stats", len(env.Stats))
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d question stats and %d bookmarks\n",
			len(env.Stats), len(env.Bookmarks))
		return nil
	},
}

func init() {
	exportCmd.Flags().String("dir", "", "Output directory (default <data dir>/exports)")
}
