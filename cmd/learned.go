package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Stohl/tsp-skolan-sub000/internal/mastery"
	"github.com/Stohl/tsp-skolan-sub000/internal/ui/theme"
)

var learnedCmd = &cobra.Command{
	Use:   "learned <id>...",
	Short: "Mark items as learned",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		for _, id := range args {
			o, err := d.service.ForceToLearned(cmd.Context(), id)
			if err != nil && !warnOnly(err) {
				return err
			}
			fmt.Fprintf(out, "%-24s %s\n", id, theme.Level(o.Record.Level).Render(mastery.Label(o.Record)))
			if err != nil {
				fmt.Fprintln(out, theme.Hint.Render("progress not saved: "+err.Error()))
			}
		}
		return nil
	},
}
