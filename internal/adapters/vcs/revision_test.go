package vcs

import (
	"context"
	"testing"

	"github.com/underyx/diffscope/internal/domain/ports"
	"github.com/underyx/diffscope/internal/testutil"
)

func TestResolveRevision_UnsetReturnsWorkingTree(t *testing.T) {
	m := testutil.NewMockRunner()
	d := newTestGit(t, m)

	base, err := ResolveRevision(context.Background(), d, "", false)
	if err != nil {
		t.Fatalf("ResolveRevision() error: %v", err)
	}
	if !base.IsWorkingTree() {
		t.Errorf("base = %q, want working-tree sentinel", base)
	}
	if len(m.Calls()) != 0 {
		t.Errorf("expected no commands, got %v", m.CommandLines())
	}
}

func TestResolveRevision_PlainRevisionVerbatim(t *testing.T) {
	m := testutil.NewMockRunner()
	d := newTestGit(t, m)

	base, err := ResolveRevision(context.Background(), d, "abc123", false)
	if err != nil {
		t.Fatalf("ResolveRevision() error: %v", err)
	}
	if base != ports.Revision("abc123") {
		t.Errorf("base = %q, want abc123", base)
	}
	if len(m.Calls()) != 0 {
		t.Errorf("expected no commands, got %v", m.CommandLines())
	}
}

func TestResolveRevision_BranchPointUsesMergeBase(t *testing.T) {
	m := testutil.NewMockRunner()
	m.Respond("git rev-parse HEAD", "tip999")
	m.Respond("git merge-base abc123 tip999", "base777")
	d := newTestGit(t, m)

	base, err := ResolveRevision(context.Background(), d, "abc123", true)
	if err != nil {
		t.Fatalf("ResolveRevision() error: %v", err)
	}
	if base != ports.Revision("base777") {
		t.Errorf("base = %q, want base777", base)
	}
}

func TestBranchPoint_TipFailurePropagates(t *testing.T) {
	m := testutil.NewMockRunner()
	d := newTestGit(t, m)

	if _, err := BranchPoint(context.Background(), d, "abc123"); err == nil {
		t.Fatal("expected error when the tip lookup fails")
	}
	if m.Ran("git merge-base") {
		t.Errorf("merge-base should not run after a failed tip lookup, got %v", m.CommandLines())
	}
}
