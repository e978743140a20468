package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the question catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List topics, modules and blocks",
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

		out := cmd.OutOrStdout()
		for _, t := range c.Topics() {
			fmt.Fprintf(out, "%s  %s\n", t.ID, t.Name)
			for _, m := range t.Modules {
				fmt.Fprintf(out, "  %-20s  %-32s  %4d questions\n", m.ID, truncate(m.Name, 32), len(m.Questions))
				if blocks := catalog.Blocks(m.Questions); len(blocks) > 0 {
					fmt.Fprintf(out, "  %-20s  blocks: %s\n", "", strings.Join(blocks, ", "))
				}
			}
		}
		fmt.Fprintf(out, "\n%d questions in total\n", c.QuestionCount())
		return nil
	},
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check <module-file>",
	Short: "Validate a module file, e.g. a reviewed draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mf, err := catalog.LoadModuleFile(args[0])
		if err != nil {
			return err
		}
		if errs := catalog.ValidateQuestions(mf.Questions); len(errs) > 0 {
			return fmt.Errorf("%d problems:\n  %s", len(errs), strings.Join(errs, "\n  "))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d questions OK\n", args[0], len(mf.Questions))
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogCheckCmd)
}
