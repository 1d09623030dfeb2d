package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// detectCmd prints the selected backend, repository root, and current tip.
var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect the version control system of the current directory",
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

		tip, err := d.CurrentBranchTip(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Backend: %s\n", d.Name())
		fmt.Fprintf(out, "Root:    %s\n", d.Root())
		fmt.Fprintf(out, "Tip:     %s\n", tip)
		return nil
	},
}
