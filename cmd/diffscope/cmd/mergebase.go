package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// mergeBaseCmd prints the nearest common ancestor of two revisions.
var mergeBaseCmd = &cobra.Command{
	Use:   "merge-base <revA> <revB>",
	Short: "Print the nearest common ancestor of two revisions",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		d, err := selectDriver(ctx, cfg)
		if err != nil {
			return err
		}

		base, err := d.MergeBase(ctx, args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), base)
		return nil
	},
}
