package vcs

import (
	"context"
	"path/filepath"

	"github.com/underyx/diffscope/internal/domain"
	"github.com/underyx/diffscope/internal/domain/ports"
)

// GitDriver implements ports.Driver against the git command line.
type GitDriver struct {
	root string
	run  ports.Runner
	ext  string
}

// NewGit creates a git driver rooted at root, or at the repository containing
// the process cwd when root is empty.
func NewGit(ctx context.Context, run ports.Runner, root, ext string) (*GitDriver, error) {
	if root == "" {
		r, err := gitRootDir(ctx, run, "")
		if err != nil {
			return nil, err
		}
		root = r
	}
	return &GitDriver{root: root, run: run, ext: orDefaultExt(ext)}, nil
}

// gitRootDir resolves the repository root from cwd. A failing rev-parse means
// "not in a git repository", not a fatal system error.
func gitRootDir(ctx context.Context, run ports.Runner, cwd string) (string, error) {
	out, err := run.Run(ctx, cwd, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", domain.NewNotARepositoryError(string(Git), cwd, err)
	}
	return filepath.Clean(out), nil
}

// Name returns the backend tag.
func (d *GitDriver) Name() string {
	return string(Git)
}

// Root returns the working-tree root.
func (d *GitDriver) Root() string {
	return d.root
}

// CurrentBranchTip returns the full hash of HEAD.
func (d *GitDriver) CurrentBranchTip(ctx context.Context) (string, error) {
	return d.run.Run(ctx, d.root, "git", "rev-parse", "HEAD")
}

// MergeBase delegates to git merge-base and returns its trimmed output verbatim.
func (d *GitDriver) MergeBase(ctx context.Context, revA, revB string) (string, error) {
	return d.run.Run(ctx, d.root, "git", "merge-base", revA, revB)
}

// ChangedFilenames lists the files in the diff against base. git's name-only
// output is already one path per line, so parsing is a plain line split.
func (d *GitDriver) ChangedFilenames(ctx context.Context, base ports.Revision) ([]string, error) {
	argv := []string{"git", "diff"}
	if !base.IsWorkingTree() {
		argv = append(argv, string(base))
	}
	argv = append(argv, "--name-only")

	out, err := d.run.Run(ctx, d.root, argv...)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// FileDiff returns the raw diff for one file against base.
func (d *GitDriver) FileDiff(ctx context.Context, base ports.Revision, path string) (string, error) {
	argv := []string{"git", "diff"}
	if !base.IsWorkingTree() {
		argv = append(argv, string(base))
	}
	argv = append(argv, path)

	return d.run.Run(ctx, d.root, argv...)
}
