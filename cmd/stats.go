package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Stohl/tsp-skolan-sub000/internal/progress"
	"github.com/Stohl/tsp-skolan-sub000/internal/ui/components"
	"github.com/Stohl/tsp-skolan-sub000/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("sessions")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		total := len(d.service.Catalog().Items())
		counts := d.service.Counts()
		// Items without a record are unmarked.
		counts[progress.Unmarked] = total - counts[progress.Learning] - counts[progress.Learned]

		fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("%d items", total)))
		for _, l := range []progress.Level{progress.Learned, progress.Learning, progress.Unmarked} {
			pct := 0.0
			if total > 0 {
				pct = float64(counts[l]) / float64(total)
			}
			label := theme.Level(l).Render(fmt.Sprintf("%-9s %5d", l, counts[l]))
			fmt.Fprintln(out, components.NewProgressBar(label, pct, true, 50).View())
		}

		part := d.service.PhrasePartition()
		fmt.Fprintf(out, "\nPhrases: %d complete, %d one item away\n", len(part.Complete), len(part.NearComplete))

		sessions, err := d.store.EventRepo().RecentSessions(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			return nil
		}

		fmt.Fprintf(out, "\n%-20s  %7s  %7s\n", "Session", "Answers", "Correct")
		fmt.Fprintln(out, strings.Repeat("─", 38))
		for _, s := range sessions {
			fmt.Fprintf(out, "%-20s  %7d  %7d\n", s.StartedAt.Local().Format("2006-01-02 15:04"), s.Answers, s.Correct)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("sessions", 5, "Number of recent sessions to list")
}
