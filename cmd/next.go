package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Stohl/tsp-skolan-sub000/internal/ui/theme"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Suggest which items to learn next",
	Long:  "List the unlearned items that would complete the most phrases, given what is already learned.",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("n")
		showPhrases, _ := cmd.Flags().GetBool("phrases")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		candidates := d.service.TopCandidates(cmd.Context(), n)
		if len(candidates) == 0 {
			fmt.Fprintln(out, "No item is one step away from completing a phrase.")
			return nil
		}

		fmt.Fprintf(out, "%-24s  %s\n", "Item", "Phrases")
		fmt.Fprintln(out, strings.Repeat("─", 36))
		for _, c := range candidates {
			fmt.Fprintf(out, "%-24s  %d\n", theme.Title.Render(c.ItemID), c.Count)
			if !showPhrases {
				continue
			}
			for _, p := range c.Phrases {
				fmt.Fprintf(out, "    %s %s\n", theme.Body.Render(p.Text), theme.Hint.Render("level "+p.LevelTag))
			}
		}
		return nil
	},
}

func init() {
	nextCmd.Flags().Int("n", 0, "Number of suggestions (0 uses ranker.top_n)")
	nextCmd.Flags().Bool("phrases", false, "List the phrases each item would complete")
}
