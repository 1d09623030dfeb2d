package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/underyx/diffscope/internal/diff"
)

var (
	showLines bool
	maxDiffKB int
)

// diffCmd prints per-file diffs against the base revision.
var diffCmd = &cobra.Command{
	Use:   "diff [paths...]",
	Short: "Show per-file diffs against the base revision",
	Long: `Show the raw diff for each changed source file (or only the given
paths) against the base revision. With --lines, print the modified line
ranges of each file instead of the diff text.`,
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

		paths := args
		if len(paths) == 0 {
			paths, err = d.ChangedFilenames(ctx, base)
			if err != nil {
				return err
			}
		}

		limit := cfg.Limits.MaxDiffSizeKB
		if cmd.Flags().Changed("max-diff-kb") {
			limit = maxDiffKB
		}

		out := cmd.OutOrStdout()
		for _, path := range paths {
			text, err := d.FileDiff(ctx, base, path)
			if err != nil {
				return err
			}

			if showLines {
				ranges := diff.ModifiedLineRanges(text)
				if len(ranges) > 0 {
					fmt.Fprintf(out, "%s: %s\n", path, formatRanges(ranges))
				}
				continue
			}

			text, truncated := diff.Truncate(text, limit)
			if truncated {
				log.Warn().Str("path", path).Int("max_kb", limit).Msg("diff truncated")
			}
			if text != "" {
				fmt.Fprintln(out, text)
			}
		}
		return nil
	},
}

// formatRanges renders line ranges as "3-5, 9, 12-14".
func formatRanges(ranges []diff.LineRange) string {
	parts := make([]string, 0, len(ranges))
	for _, r := range ranges {
		if r.Start == r.End {
			parts = append(parts, strconv.Itoa(r.Start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", r.Start, r.End))
		}
	}
	return strings.Join(parts, ", ")
}

func init() {
	addBaseFlags(diffCmd)
	diffCmd.Flags().BoolVar(&showLines, "lines", false, "print modified line ranges instead of diff text")
	diffCmd.Flags().IntVar(&maxDiffKB, "max-diff-kb", 0, "cap each file's diff output (overrides limits.max_diff_size_kb)")
}
