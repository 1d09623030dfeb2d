package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// configCmd prints the effective configuration after defaults, file, env,
// and flag overrides.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Current Configuration:")
		fmt.Fprintln(out, "----------------------")
		fmt.Fprintf(out, "Backend:         %s\n", cfg.VCS.Backend)
		fmt.Fprintf(out, "Root:            %s\n", cfg.VCS.Root)
		fmt.Fprintf(out, "Source Ext:      %s\n", cfg.VCS.SourceExt)
		fmt.Fprintf(out, "Debounce (ms):   %d\n", cfg.Watcher.DebounceMS)
		fmt.Fprintf(out, "Ignore Patterns: %s\n", strings.Join(cfg.Watcher.IgnorePatterns, ", "))
		fmt.Fprintf(out, "Log Level:       %s\n", cfg.Logging.Level)
		fmt.Fprintf(out, "Log Format:      %s\n", cfg.Logging.Format)
		fmt.Fprintf(out, "Max Diff (KB):   %d\n", cfg.Limits.MaxDiffSizeKB)
		return nil
	},
}
