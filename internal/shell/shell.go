// Package shell implements the process execution adapter over os/exec.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// ExecError represents a failed command invocation: a non-zero exit, a missing
// executable, or a spawn failure. It carries the full command context so the
// caller can surface a diagnosable message.
type ExecError struct {
	Argv     []string // the command that was run
	Dir      string   // working directory ("" means process cwd)
	ExitCode int      // process exit code, -1 if the process never ran
	Stdout   string   // captured standard output
	Stderr   string   // captured standard error
	Err      error    // underlying error
}

func (e *ExecError) Error() string {
	detail := strings.TrimSpace(e.Stderr)
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}
	if detail == "" {
		detail = "command failed"
	}
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s: exit code %d: %s", strings.Join(e.Argv, " "), e.ExitCode, detail)
	}
	return fmt.Sprintf("%s: %s", strings.Join(e.Argv, " "), detail)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Exec runs commands with os/exec. It implements ports.Runner.
type Exec struct{}

// Run executes argv in dir and returns trimmed stdout.
func (Exec) Run(ctx context.Context, dir string, argv ...string) (string, error) {
	out, _, err := run(ctx, dir, argv)
	return out, err
}

// RunIgnoringExit executes argv in dir and returns trimmed stdout even when
// the process exits non-zero. Used for tools whose failure exit still carries
// usable output (bzr find-merge-base).
func (Exec) RunIgnoringExit(ctx context.Context, dir string, argv ...string) (string, error) {
	out, exited, err := run(ctx, dir, argv)
	if err != nil && exited {
		return out, nil
	}
	return out, err
}

// run executes argv and reports whether the process actually ran to an exit.
func run(ctx context.Context, dir string, argv []string) (stdout string, exited bool, err error) {
	if len(argv) == 0 {
		return "", false, errors.New("shell: empty argument vector")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	log.Debug().
		Strs("argv", argv).
		Str("dir", dir).
		Msg("running command")

	runErr := cmd.Run()
	stdout = strings.TrimSpace(outBuf.String())

	if runErr == nil {
		return stdout, true, nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		exited = true
		exitCode = exitErr.ExitCode()
	}

	return stdout, exited, &ExecError{
		Argv:     argv,
		Dir:      dir,
		ExitCode: exitCode,
		Stdout:   stdout,
		Stderr:   errBuf.String(),
		Err:      runErr,
	}
}
