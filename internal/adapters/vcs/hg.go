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

// hgTokenLen is the length of the short node id printed by hg id.
const hgTokenLen = 12

// HgDriver implements ports.Driver against the Mercurial command line.
type HgDriver struct {
	root string
	run  ports.Runner
	ext  string

	// statRE matches one "path | N ++--" line of hg diff --stat output whose
	// path carries the tracked source extension. The leading space is optional
	// because the runner trims the first line of output.
	statRE *regexp.Regexp
}

// NewHg creates a Mercurial driver rooted at root, or at the repository
// containing the process cwd when root is empty.
func NewHg(ctx context.Context, run ports.Runner, root, ext string) (*HgDriver, error) {
	if root == "" {
		r, err := hgRootDir(ctx, run, "")
		if err != nil {
			return nil, err
		}
		root = r
	}
	ext = orDefaultExt(ext)
	return &HgDriver{
		root:   root,
		run:    run,
		ext:    ext,
		statRE: regexp.MustCompile(`(?m)^ ?(.*` + regexp.QuoteMeta(ext) + `)\s+\|`),
	}, nil
}

func hgRootDir(ctx context.Context, run ports.Runner, cwd string) (string, error) {
	out, err := run.Run(ctx, cwd, "hg", "root")
	if err != nil {
		return "", domain.NewNotARepositoryError(string(Hg), cwd, err)
	}
	return filepath.Clean(out), nil
}

// Name returns the backend tag.
func (d *HgDriver) Name() string {
	return string(Hg)
}

// Root returns the working-tree root.
func (d *HgDriver) Root() string {
	return d.root
}

// CurrentBranchTip returns the short node id of the working directory parent.
// hg id prints "<node>[+] [tags]"; the token is the first twelve characters.
func (d *HgDriver) CurrentBranchTip(ctx context.Context) (string, error) {
	out, err := d.run.Run(ctx, d.root, "hg", "id")
	if err != nil {
		return "", err
	}
	if len(out) > hgTokenLen {
		out = out[:hgTokenLen]
	}
	return out, nil
}

// MergeBase computes the nearest common ancestor via hg debugancestor, whose
// output is "revnum:hash"; the hash half is the token.
func (d *HgDriver) MergeBase(ctx context.Context, revA, revB string) (string, error) {
	out, err := d.run.Run(ctx, d.root, "hg", "debugancestor", revA, revB)
	if err != nil {
		return "", err
	}
	_, hash, ok := strings.Cut(out, ":")
	if !ok {
		return "", fmt.Errorf("hg debugancestor: unexpected output %q", out)
	}
	return strings.TrimSpace(hash), nil
}

// ChangedFilenames parses hg diff --stat output, keeping only the path column
// of lines whose path ends in the tracked source extension.
func (d *HgDriver) ChangedFilenames(ctx context.Context, base ports.Revision) ([]string, error) {
	argv := []string{"hg", "diff", "--stat"}
	if !base.IsWorkingTree() {
		argv = append(argv, "-r", string(base))
	}

	out, err := d.run.Run(ctx, d.root, argv...)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, m := range d.statRE.FindAllStringSubmatch(out, -1) {
		files = append(files, m[1])
	}
	return files, nil
}

// FileDiff returns the raw diff for one file against base.
func (d *HgDriver) FileDiff(ctx context.Context, base ports.Revision, path string) (string, error) {
	argv := []string{"hg", "diff"}
	if !base.IsWorkingTree() {
		argv = append(argv, "-r", string(base))
	}
	argv = append(argv, path)

	return d.run.Run(ctx, d.root, argv...)
}
