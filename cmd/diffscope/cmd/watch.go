package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/underyx/diffscope/internal/adapters/watcher"
	"github.com/underyx/diffscope/internal/domain/ports"
)

// watchCmd re-lists changed files whenever a watched source file is written.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the working tree and re-list changed files on every save",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

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

		sessionID := uuid.NewString()
		logger := log.With().Str("session_id", sessionID).Logger()

		out := cmd.OutOrStdout()
		onChange := func(path string) {
			logger.Info().Str("path", path).Msg("change settled")

			files, err := d.ChangedFilenames(ctx, base)
			if err != nil {
				logger.Error().Err(err).Msg("failed to list changed files")
				return
			}
			fmt.Fprintf(out, "-- %s\n", path)
			for _, f := range files {
				fmt.Fprintln(out, f)
			}
		}

		var w ports.FileWatcher = watcher.NewWatcher(
			d.Root(),
			cfg.VCS.SourceExt,
			cfg.Watcher.IgnorePatterns,
			cfg.Watcher.DebounceMS,
			onChange,
		)
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer func() { _ = w.Stop() }()

		logger.Info().
			Str("backend", d.Name()).
			Str("root", d.Root()).
			Msg("watching for changes, press Ctrl+C to stop")

		<-ctx.Done()
		return nil
	},
}

func init() {
	addBaseFlags(watchCmd)
}
