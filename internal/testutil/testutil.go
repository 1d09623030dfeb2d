// Package testutil provides shared test utilities and mocks for diffscope tests.
package testutil

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/underyx/diffscope/internal/shell"
)

// Call records one command invocation seen by the mock runner.
type Call struct {
	Dir  string
	Argv []string
}

// Key returns the space-joined argv, the form responses are registered under.
func (c Call) Key() string {
	return strings.Join(c.Argv, " ")
}

type response struct {
	stdout string
	err    error
}

// MockRunner implements ports.Runner for tests. Responses are registered per
// command; any unregistered command fails with an *shell.ExecError, which
// matches how backend probes fail outside their own repositories.
type MockRunner struct {
	mu        sync.Mutex
	calls     []Call
	responses map[string]response
}

// NewMockRunner creates a new mock runner with no registered responses.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		responses: make(map[string]response),
	}
}

// Respond registers trimmed stdout for the exact command "git diff --name-only" etc.
func (m *MockRunner) Respond(command, stdout string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[command] = response{stdout: strings.TrimSpace(stdout)}
}

// Fail registers a failure for the exact command, carrying stdout and stderr
// the way a real non-zero exit would.
func (m *MockRunner) Fail(command string, exitCode int, stdout, stderr string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	argv := strings.Fields(command)
	m.responses[command] = response{
		stdout: strings.TrimSpace(stdout),
		err: &shell.ExecError{
			Argv:     argv,
			ExitCode: exitCode,
			Stdout:   strings.TrimSpace(stdout),
			Stderr:   stderr,
		},
	}
}

// Run implements ports.Runner.
func (m *MockRunner) Run(ctx context.Context, dir string, argv ...string) (string, error) {
	resp := m.record(dir, argv)
	if resp.err != nil {
		return "", resp.err
	}
	return resp.stdout, nil
}

// RunIgnoringExit implements ports.Runner. A registered non-zero exit still
// yields its stdout, mirroring the real adapter.
func (m *MockRunner) RunIgnoringExit(ctx context.Context, dir string, argv ...string) (string, error) {
	resp := m.record(dir, argv)
	if execErr, ok := resp.err.(*shell.ExecError); ok && execErr.ExitCode >= 0 {
		return resp.stdout, nil
	}
	return resp.stdout, resp.err
}

func (m *MockRunner) record(dir string, argv []string) response {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := Call{Dir: dir, Argv: argv}
	m.calls = append(m.calls, call)

	if resp, ok := m.responses[call.Key()]; ok {
		return resp
	}
	return response{
		err: &shell.ExecError{
			Argv:     argv,
			Dir:      dir,
			ExitCode: 1,
			Stderr:   "mock: no response registered for " + call.Key(),
		},
	}
}

// Calls returns all recorded invocations.
func (m *MockRunner) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CommandLines returns the recorded invocations as space-joined strings.
func (m *MockRunner) CommandLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		lines = append(lines, c.Key())
	}
	return lines
}

// Ran reports whether any recorded command starts with the given prefix.
func (m *MockRunner) Ran(prefix string) bool {
	for _, line := range m.CommandLines() {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// AssertTextEqual fails the test with a unified diff when two multi-line
// strings differ.
func AssertTextEqual(t *testing.T, got, want string) {
	t.Helper()
	if got == want {
		return
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	if err != nil {
		t.Fatalf("text mismatch (diff failed: %v)\ngot:  %q\nwant: %q", err, got, want)
	}
	t.Errorf("text mismatch:\n%s", text)
}
