package vcs

import (
	"context"

	"github.com/underyx/diffscope/internal/domain/ports"
)

// ResolveRevision resolves the requested base revision to a token. Resolution
// happens exactly once per run; the result is immutable for its remainder.
//
// An empty requested revision resolves to the working-tree sentinel, and all
// subsequent diff commands omit the revision argument. Otherwise the token is
// the requested revision verbatim, or — when sinceBranchPoint is set — the
// merge base of the requested revision and the current branch tip.
func ResolveRevision(ctx context.Context, d ports.Driver, requested string, sinceBranchPoint bool) (ports.Revision, error) {
	if requested == "" {
		return ports.WorkingTree, nil
	}
	if !sinceBranchPoint {
		return ports.Revision(requested), nil
	}
	return BranchPoint(ctx, d, requested)
}

// BranchPoint computes the merge base of rev and the current branch tip,
// purely in terms of the Driver contract.
func BranchPoint(ctx context.Context, d ports.Driver, rev string) (ports.Revision, error) {
	tip, err := d.CurrentBranchTip(ctx)
	if err != nil {
		return ports.WorkingTree, err
	}
	base, err := d.MergeBase(ctx, rev, tip)
	if err != nil {
		return ports.WorkingTree, err
	}
	return ports.Revision(base), nil
}
