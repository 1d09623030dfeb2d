package cmd

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/underyx/diffscope/internal/adapters/vcs"
	"github.com/underyx/diffscope/internal/config"
	"github.com/underyx/diffscope/internal/domain/ports"
	"github.com/underyx/diffscope/internal/shell"
)

// loadConfig loads the configuration, applies flag overrides, and configures
// the global logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if vcsName != "" {
		cfg.VCS.Backend = vcsName
	}
	if rootDir != "" {
		cfg.VCS.Root = rootDir
	}
	if sourceExt != "" {
		cfg.VCS.SourceExt = sourceExt
	}

	setupLogging(cfg)
	return cfg, nil
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Logging.Format == "console" || verbose {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// selectDriver resolves the configured backend to a driver instance.
func selectDriver(ctx context.Context, cfg *config.Config) (ports.Driver, error) {
	return vcs.Select(ctx, shell.Exec{}, cfg.VCS.Backend, cfg.VCS.Root, cfg.VCS.SourceExt)
}

// resolveBase resolves the base revision from the --rev and --branch-point flags.
func resolveBase(ctx context.Context, d ports.Driver) (ports.Revision, error) {
	return vcs.ResolveRevision(ctx, d, revArg, branchPoint)
}
