// Package vcs implements the version-control backend drivers and their selector.
//
// Each driver wraps one backend's command line behind the uniform
// ports.Driver contract: root detection, current-tip lookup, merge base,
// changed-file listing, and per-file diff. The output grammars of the three
// tools are genuinely different, so each driver keeps its own parser.
package vcs

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/underyx/diffscope/internal/domain"
	"github.com/underyx/diffscope/internal/domain/ports"
)

// Backend identifies one supported version control system.
type Backend string

// The known backends.
const (
	Git Backend = "git"
	Hg  Backend = "hg"
	Bzr Backend = "bzr"
)

// Auto asks Select to probe for the backend instead of naming one.
const Auto = "auto"

// DefaultSourceExt is the source-file extension drivers filter for when the
// caller does not configure one.
const DefaultSourceExt = ".py"

// backendEntry binds a backend tag to its detection probe and constructor.
type backendEntry struct {
	name  Backend
	probe []string
	build func(ctx context.Context, run ports.Runner, root, ext string) (ports.Driver, error)
}

// backends is the explicit registry, in probe order: git, then hg, then bzr.
// When a working tree is valid under more than one backend (nested
// repositories), the first in this order wins.
var backends = []backendEntry{
	{
		name:  Git,
		probe: []string{"git", "log"},
		build: func(ctx context.Context, run ports.Runner, root, ext string) (ports.Driver, error) {
			return NewGit(ctx, run, root, ext)
		},
	},
	{
		name:  Hg,
		probe: []string{"hg", "log"},
		build: func(ctx context.Context, run ports.Runner, root, ext string) (ports.Driver, error) {
			return NewHg(ctx, run, root, ext)
		},
	},
	{
		name:  Bzr,
		probe: []string{"bzr", "log"},
		build: func(ctx context.Context, run ports.Runner, root, ext string) (ports.Driver, error) {
			return NewBzr(ctx, run, root, ext)
		},
	},
}

// Select resolves a backend name (or "auto") to a constructed driver.
//
// A known name constructs that driver directly; an unknown name fails with
// *domain.UnsupportedBackendError. "auto" (or the empty string) probes each
// backend's history-listing command in the current directory and picks the
// first that succeeds, failing with domain.ErrNoBackendDetected when none do.
// root, when non-empty, overrides root detection; ext is the source-file
// extension used by the changed-file parsers.
func Select(ctx context.Context, run ports.Runner, name, root, ext string) (ports.Driver, error) {
	if name == "" || name == Auto {
		return detect(ctx, run, root, ext)
	}
	for _, b := range backends {
		if name == string(b.name) {
			return b.build(ctx, run, root, ext)
		}
	}
	return nil, &domain.UnsupportedBackendError{Name: name}
}

func detect(ctx context.Context, run ports.Runner, root, ext string) (ports.Driver, error) {
	for _, b := range backends {
		if _, err := run.Run(ctx, "", b.probe...); err != nil {
			log.Debug().
				Str("backend", string(b.name)).
				Err(err).
				Msg("backend probe failed")
			continue
		}
		log.Debug().Str("backend", string(b.name)).Msg("backend detected")
		return b.build(ctx, run, root, ext)
	}
	return nil, domain.ErrNoBackendDetected
}

// splitLines splits command output into non-empty trimmed lines, preserving order.
func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func orDefaultExt(ext string) string {
	if ext == "" {
		return DefaultSourceExt
	}
	return ext
}
