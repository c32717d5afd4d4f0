package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Stohl/tsp-skolan-sub000/internal/progress"
)

var markCmd = &cobra.Command{
	Use:   "mark <id>...",
	Short: "Set the level of several items at once",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		levelFlag, _ := cmd.Flags().GetString("level")
		level, err := progress.ParseLevel(levelFlag)
		if err != nil {
			return err
		}

		var points *int
		if cmd.Flags().Changed("points") {
			p, _ := cmd.Flags().GetInt("points")
			points = &p
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.service.BulkTag(cmd.Context(), args, level, points); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d items set to %s\n", len(args), level)
		return nil
	},
}

func init() {
	markCmd.Flags().String("level", "learning", "Level: unmarked, learning or learned")
	markCmd.Flags().Int("points", 0, "Points to set (0-5); unchanged when omitted")
}
