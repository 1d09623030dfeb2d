package config

import (
	"fmt"
	"os"
	"strings"
)

var knownBackends = map[string]bool{
	"auto": true,
	"git":  true,
	"hg":   true,
	"bzr":  true,
}

var knownLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate validates the configuration.
func Validate(cfg *Config) error {
	if err := validateVCS(&cfg.VCS); err != nil {
		return err
	}
	if err := validateWatcher(&cfg.Watcher); err != nil {
		return err
	}
	if err := validateLogging(&cfg.Logging); err != nil {
		return err
	}
	if err := validateLimits(&cfg.Limits); err != nil {
		return err
	}
	return nil
}

func validateVCS(cfg *VCSConfig) error {
	if !knownBackends[cfg.Backend] {
		return fmt.Errorf("vcs.backend must be one of auto, git, hg, bzr; got %q", cfg.Backend)
	}

	if cfg.SourceExt == "" || !strings.HasPrefix(cfg.SourceExt, ".") {
		return fmt.Errorf("vcs.source_ext must start with a dot; got %q", cfg.SourceExt)
	}

	if cfg.Root != "" {
		info, err := os.Stat(cfg.Root)
		if err != nil {
			return fmt.Errorf("vcs.root %q does not exist: %w", cfg.Root, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("vcs.root %q is not a directory", cfg.Root)
		}
	}

	return nil
}

func validateWatcher(cfg *WatcherConfig) error {
	if cfg.DebounceMS < 0 {
		return fmt.Errorf("watcher.debounce_ms must not be negative; got %d", cfg.DebounceMS)
	}
	return nil
}

func validateLogging(cfg *LoggingConfig) error {
	if !knownLogLevels[cfg.Level] {
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error; got %q", cfg.Level)
	}
	if cfg.Format != "console" && cfg.Format != "json" {
		return fmt.Errorf("logging.format must be console or json; got %q", cfg.Format)
	}
	return nil
}

func validateLimits(cfg *LimitsConfig) error {
	if cfg.MaxDiffSizeKB < 0 {
		return fmt.Errorf("limits.max_diff_size_kb must not be negative; got %d", cfg.MaxDiffSizeKB)
	}
	return nil
}
