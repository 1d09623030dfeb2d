package vcs

import (
	"context"
	"errors"
	"testing"

	"github.com/underyx/diffscope/internal/domain"
	"github.com/underyx/diffscope/internal/testutil"
)

func assertFilenames(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("filenames = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("filenames[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func assertNotARepository(t *testing.T, err error, backend string) {
	t.Helper()
	var repoErr *domain.NotARepositoryError
	if !errors.As(err, &repoErr) {
		t.Fatalf("error = %v, want *domain.NotARepositoryError", err)
	}
	if repoErr.Backend != backend {
		t.Errorf("Backend = %q, want %q", repoErr.Backend, backend)
	}
}

func TestSelect_ByName(t *testing.T) {
	tests := []struct {
		name        string
		rootCommand string
		wantName    string
	}{
		{"git", "git rev-parse --show-toplevel", "git"},
		{"hg", "hg root", "hg"},
		{"bzr", "bzr root", "bzr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testutil.NewMockRunner()
			m.Respond(tt.rootCommand, "/repo")

			d, err := Select(context.Background(), m, tt.name, "", "")
			if err != nil {
				t.Fatalf("Select(%q) error: %v", tt.name, err)
			}
			if d.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", d.Name(), tt.wantName)
			}
			if d.Root() != "/repo" {
				t.Errorf("Root() = %q, want /repo", d.Root())
			}
		})
	}
}

func TestSelect_RootOverrideSkipsDetection(t *testing.T) {
	m := testutil.NewMockRunner()

	d, err := Select(context.Background(), m, "git", "/override", "")
	if err != nil {
		t.Fatalf("Select() error: %v", err)
	}
	if d.Root() != "/override" {
		t.Errorf("Root() = %q, want /override", d.Root())
	}
	if len(m.Calls()) != 0 {
		t.Errorf("expected no commands, got %v", m.CommandLines())
	}
}

func TestSelect_UnsupportedBackend(t *testing.T) {
	m := testutil.NewMockRunner()

	_, err := Select(context.Background(), m, "svn", "", "")

	var unsupported *domain.UnsupportedBackendError
	if !errors.As(err, &unsupported) {
		t.Fatalf("error = %v, want *domain.UnsupportedBackendError", err)
	}
	if unsupported.Name != "svn" {
		t.Errorf("Name = %q, want svn", unsupported.Name)
	}
}

func TestSelect_AutoDetectsFirstSucceedingProbe(t *testing.T) {
	m := testutil.NewMockRunner()
	// Only the Mercurial probe succeeds.
	m.Respond("hg log", "changeset: 0:abc")
	m.Respond("hg root", "/repo")

	d, err := Select(context.Background(), m, "auto", "", "")
	if err != nil {
		t.Fatalf("Select(auto) error: %v", err)
	}
	if d.Name() != "hg" {
		t.Errorf("Name() = %q, want hg", d.Name())
	}

	// git is probed first; bzr is never reached once hg succeeds.
	lines := m.CommandLines()
	if len(lines) == 0 || lines[0] != "git log" {
		t.Errorf("first command = %v, want git log", lines)
	}
	if m.Ran("bzr") {
		t.Errorf("bzr should not have been invoked, got %v", lines)
	}
}

func TestSelect_AutoNoBackendDetected(t *testing.T) {
	m := testutil.NewMockRunner()

	_, err := Select(context.Background(), m, "auto", "", "")
	if !errors.Is(err, domain.ErrNoBackendDetected) {
		t.Fatalf("error = %v, want domain.ErrNoBackendDetected", err)
	}

	// All three probes ran, in order.
	want := []string{"git log", "hg log", "bzr log"}
	lines := m.CommandLines()
	if len(lines) != len(want) {
		t.Fatalf("commands = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("commands[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestSelect_EmptyNameMeansAuto(t *testing.T) {
	m := testutil.NewMockRunner()
	m.Respond("git log", "commit abc")
	m.Respond("git rev-parse --show-toplevel", "/repo")

	d, err := Select(context.Background(), m, "", "", "")
	if err != nil {
		t.Fatalf("Select(\"\") error: %v", err)
	}
	if d.Name() != "git" {
		t.Errorf("Name() = %q, want git", d.Name())
	}
}
