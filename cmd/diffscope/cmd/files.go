package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// filesCmd lists the source files changed since the base revision.
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List source files changed since the base revision",
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

		base, err := resolveBase(ctx, d)
		if err != nil {
			return err
		}

		files, err := d.ChangedFilenames(ctx, base)
		if err != nil {
			return err
		}

		for _, f := range files {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		return nil
	},
}

func init() {
	addBaseFlags(filesCmd)
}
