package ports

import "context"

// Revision is the base a diff is computed against, as a backend-native token.
// The zero value is the working-tree sentinel: no base revision, and diff
// commands omit the revision argument entirely.
type Revision string

// WorkingTree is the "no base" sentinel revision.
const WorkingTree Revision = ""

// IsWorkingTree reports whether the revision is the "no base" sentinel.
func (r Revision) IsWorkingTree() bool {
	return r == WorkingTree
}

// Runner executes an argument vector in a working directory and returns its
// trimmed standard output. Implementations translate a non-zero exit or a
// missing executable into a typed error carrying the command and its output.
type Runner interface {
	// Run executes argv in dir (process cwd if dir is empty).
	Run(ctx context.Context, dir string, argv ...string) (string, error)

	// RunIgnoringExit is Run, except that a non-zero exit still returns the
	// captured stdout with a nil error. A missing executable is still an error.
	RunIgnoringExit(ctx context.Context, dir string, argv ...string) (string, error)
}

// Driver is the uniform query contract one version-control backend implements.
// Drivers are stateless request/response wrappers around a Runner; the only
// fixed state is the working-tree root resolved at construction.
type Driver interface {
	// Name returns the backend tag (git, hg, bzr).
	Name() string

	// Root returns the absolute, normalized working-tree root.
	Root() string

	// CurrentBranchTip returns the backend-native token for the current revision.
	CurrentBranchTip(ctx context.Context) (string, error)

	// MergeBase returns the nearest common ancestor of two revision tokens.
	MergeBase(ctx context.Context, revA, revB string) (string, error)

	// ChangedFilenames lists source files changed relative to base, as paths
	// relative to the root, in the order the backend reports them.
	ChangedFilenames(ctx context.Context, base Revision) ([]string, error)

	// FileDiff returns the raw diff for exactly one file against base.
	FileDiff(ctx context.Context, base Revision, path string) (string, error)
}
