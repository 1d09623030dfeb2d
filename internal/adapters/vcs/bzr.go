package vcs

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/underyx/diffscope/internal/domain"
	"github.com/underyx/diffscope/internal/domain/ports"
)

// BzrDriver implements ports.Driver against the Bazaar command line.
type BzrDriver struct {
	root string
	run  ports.Runner
	ext  string

	// statusRE extracts the trailing path from one "M  path" status line.
	statusRE *regexp.Regexp
}

// NewBzr creates a Bazaar driver rooted at root, or at the repository
// containing the process cwd when root is empty.
func NewBzr(ctx context.Context, run ports.Runner, root, ext string) (*BzrDriver, error) {
	if root == "" {
		r, err := bzrRootDir(ctx, run, "")
		if err != nil {
			return nil, err
		}
		root = r
	}
	ext = orDefaultExt(ext)
	return &BzrDriver{
		root:     root,
		run:      run,
		ext:      ext,
		statusRE: regexp.MustCompile(`^\S+\s+(.*` + regexp.QuoteMeta(ext) + `)$`),
	}, nil
}

func bzrRootDir(ctx context.Context, run ports.Runner, cwd string) (string, error) {
	out, err := run.Run(ctx, cwd, "bzr", "root")
	if err != nil {
		return "", domain.NewNotARepositoryError(string(Bzr), cwd, err)
	}
	return filepath.Clean(out), nil
}

// Name returns the backend tag.
func (d *BzrDriver) Name() string {
	return string(Bzr)
}

// Root returns the working-tree root.
func (d *BzrDriver) Root() string {
	return d.root
}

// CurrentBranchTip returns the revision id of the branch tip via a custom
// version-info template.
func (d *BzrDriver) CurrentBranchTip(ctx context.Context) (string, error) {
	return d.run.Run(ctx, d.root, "bzr", "version-info", "--custom", "--template={revision_id}")
}

// MergeBase computes the nearest common ancestor of two revisions.
//
// bzr has no single merge-base primitive. find-merge-base silently returns
// revA unchanged when revB cannot be found, so revA is validated up front by
// requesting its log entry; a bad revA fails with UnknownRevisionError. The
// revB substitution itself is a documented quirk of the tool and is preserved:
// callers must treat bzr merge-base as best-effort.
func (d *BzrDriver) MergeBase(ctx context.Context, revA, revB string) (string, error) {
	if _, err := d.run.Run(ctx, d.root, "bzr", "log", "-c", revA); err != nil {
		return "", domain.NewUnknownRevisionError(revA, err)
	}

	// find-merge-base exits non-zero in some configurations while still
	// printing its answer, so the exit code is ignored.
	out, err := d.run.RunIgnoringExit(ctx, d.root, "bzr", "find-merge-base", revA, revB)
	if err != nil {
		return "", err
	}

	// Output is a sentence: "merge base is revision <token>".
	idx := strings.LastIndexByte(out, ' ')
	if idx < 0 {
		return "", fmt.Errorf("bzr find-merge-base: unexpected output %q", out)
	}
	return out[idx+1:], nil
}

// ChangedFilenames parses bzr status -S output. Each line is a one or two
// character change code followed by the path; untracked entries (the "?"
// prefix) are not part of the diff and are excluded.
func (d *BzrDriver) ChangedFilenames(ctx context.Context, base ports.Revision) ([]string, error) {
	argv := []string{"bzr", "status", "-S"}
	if !base.IsWorkingTree() {
		argv = append(argv, "-r", string(base))
	}

	out, err := d.run.Run(ctx, d.root, argv...)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, line := range splitLines(out) {
		if strings.HasPrefix(line, "?") {
			continue
		}
		if m := d.statusRE.FindStringSubmatch(line); m != nil {
			files = append(files, m[1])
		}
	}
	return files, nil
}

// FileDiff returns the raw diff for one file against base.
func (d *BzrDriver) FileDiff(ctx context.Context, base ports.Revision, path string) (string, error) {
	argv := []string{"bzr", "diff", path}
	if !base.IsWorkingTree() {
		argv = append(argv, "-r", string(base))
	}

	return d.run.Run(ctx, d.root, argv...)
}
