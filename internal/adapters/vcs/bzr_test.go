package vcs

import (
	"context"
	"errors"
	"testing"

	"github.com/underyx/diffscope/internal/domain"
	"github.com/underyx/diffscope/internal/domain/ports"
	"github.com/underyx/diffscope/internal/testutil"
)

func newTestBzr(t *testing.T, run ports.Runner) *BzrDriver {
	t.Helper()
	d, err := NewBzr(context.Background(), run, "/repo", ".py")
	if err != nil {
		t.Fatalf("NewBzr() error: %v", err)
	}
	return d
}

func TestBzrDriver_RootDetectionFails(t *testing.T) {
	m := testutil.NewMockRunner()

	_, err := NewBzr(context.Background(), m, "", ".py")
	assertNotARepository(t, err, "bzr")
}

func TestBzrDriver_CurrentBranchTip(t *testing.T) {
	m := testutil.NewMockRunner()
	m.Respond("bzr version-info --custom --template={revision_id}", "name@example.com-20140602232408-d3wspoer3m35")

	tip, err := newTestBzr(t, m).CurrentBranchTip(context.Background())
	if err != nil {
		t.Fatalf("CurrentBranchTip() error: %v", err)
	}
	if tip != "name@example.com-20140602232408-d3wspoer3m35" {
		t.Errorf("CurrentBranchTip() = %q", tip)
	}
}

func TestBzrDriver_MergeBase(t *testing.T) {
	m := testutil.NewMockRunner()
	m.Respond("bzr log -c r1", "revno: 1\nmessage: initial")
	m.Respond("bzr find-merge-base r1 r2", "merge base is revision name@example.com-20140602232408-d3wspoer3m35")

	base, err := newTestBzr(t, m).MergeBase(context.Background(), "r1", "r2")
	if err != nil {
		t.Fatalf("MergeBase() error: %v", err)
	}
	if base != "name@example.com-20140602232408-d3wspoer3m35" {
		t.Errorf("MergeBase() = %q", base)
	}
}

func TestBzrDriver_MergeBaseUnknownRevA(t *testing.T) {
	m := testutil.NewMockRunner()
	m.Fail("bzr log -c bad", 3, "", "bzr: ERROR: Requested revision: 'bad' does not exist")

	_, err := newTestBzr(t, m).MergeBase(context.Background(), "bad", "r2")

	var unknown *domain.UnknownRevisionError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want *domain.UnknownRevisionError", err)
	}
	if unknown.Rev != "bad" {
		t.Errorf("Rev = %q, want bad", unknown.Rev)
	}

	// The pre-check must fail before find-merge-base is ever attempted,
	// because find-merge-base would silently substitute instead of erroring.
	if m.Ran("bzr find-merge-base") {
		t.Errorf("find-merge-base should not have been invoked, got %v", m.CommandLines())
	}
}

func TestBzrDriver_MergeBaseUnknownRevBReturnsRevA(t *testing.T) {
	// find-merge-base returns revA unchanged when revB cannot be found.
	// That gap belongs to the tool and is preserved, not fixed.
	m := testutil.NewMockRunner()
	m.Respond("bzr log -c r1", "revno: 1")
	m.Fail("bzr find-merge-base r1 nonsense", 3, "merge base is revision r1", "bzr: ERROR: unknown revision")

	base, err := newTestBzr(t, m).MergeBase(context.Background(), "r1", "nonsense")
	if err != nil {
		t.Fatalf("MergeBase() error: %v", err)
	}
	if base != "r1" {
		t.Errorf("MergeBase() = %q, want r1", base)
	}
}

func TestBzrDriver_ChangedFilenames(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected []string
	}{
		{
			name:     "untracked entries are excluded",
			output:   "?   .gitignore\nM  0.py\n",
			expected: []string{"0.py"},
		},
		{
			name:     "mixed change codes",
			output:   "M  a.py\n D  gone.py\n+N  new.py\nM  notes.txt\n",
			expected: []string{"a.py", "gone.py", "new.py"},
		},
		{
			name:     "no changes",
			output:   "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testutil.NewMockRunner()
			m.Respond("bzr status -S", tt.output)

			files, err := newTestBzr(t, m).ChangedFilenames(context.Background(), ports.WorkingTree)
			if err != nil {
				t.Fatalf("ChangedFilenames() error: %v", err)
			}
			assertFilenames(t, files, tt.expected)
		})
	}
}

func TestBzrDriver_ChangedFilenamesWithRevision(t *testing.T) {
	m := testutil.NewMockRunner()
	m.Respond("bzr status -S -r abc123", "M  a.py\n")

	files, err := newTestBzr(t, m).ChangedFilenames(context.Background(), ports.Revision("abc123"))
	if err != nil {
		t.Fatalf("ChangedFilenames() error: %v", err)
	}
	assertFilenames(t, files, []string{"a.py"})
}

func TestBzrDriver_FileDiff(t *testing.T) {
	m := testutil.NewMockRunner()
	m.Respond("bzr diff a.py -r abc123", "=== modified file 'a.py'\n-x = 1\n+x = 2")

	text, err := newTestBzr(t, m).FileDiff(context.Background(), ports.Revision("abc123"), "a.py")
	if err != nil {
		t.Fatalf("FileDiff() error: %v", err)
	}
	testutil.AssertTextEqual(t, text, "=== modified file 'a.py'\n-x = 1\n+x = 2")
}
