// Package domain contains domain errors and value types used throughout diffscope.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrNoBackendDetected is returned when auto-detection probed every known
	// backend and none of them recognised the current directory.
	ErrNoBackendDetected = errors.New("no supported version control system detected")
)

// NotARepositoryError indicates that a backend's root-detection command failed.
// During auto-detection the selector treats this as "try the next backend";
// when the backend was named explicitly it is fatal.
type NotARepositoryError struct {
	Backend string // backend tag (git, hg, bzr)
	Dir     string // directory the detection ran in ("" means process cwd)
	Err     error  // underlying error
}

func (e *NotARepositoryError) Error() string {
	if e.Dir != "" {
		return fmt.Sprintf("%s: %s is not inside a repository: %v", e.Backend, e.Dir, e.Err)
	}
	return fmt.Sprintf("%s: not inside a repository: %v", e.Backend, e.Err)
}

func (e *NotARepositoryError) Unwrap() error {
	return e.Err
}

// NewNotARepositoryError creates a new NotARepositoryError.
func NewNotARepositoryError(backend, dir string, err error) *NotARepositoryError {
	return &NotARepositoryError{
		Backend: backend,
		Dir:     dir,
		Err:     err,
	}
}

// UnsupportedBackendError indicates that a named backend is not in the known set.
type UnsupportedBackendError struct {
	Name string
}

func (e *UnsupportedBackendError) Error() string {
	return fmt.Sprintf("unsupported version control system: %q", e.Name)
}

// UnknownRevisionError indicates that a requested revision does not exist in
// the repository. Revision existence is not transient, so this is never retried.
type UnknownRevisionError struct {
	Rev string
	Err error
}

func (e *UnknownRevisionError) Error() string {
	return fmt.Sprintf("unknown revision %q: %v", e.Rev, e.Err)
}

func (e *UnknownRevisionError) Unwrap() error {
	return e.Err
}

// NewUnknownRevisionError creates a new UnknownRevisionError.
func NewUnknownRevisionError(rev string, err error) *UnknownRevisionError {
	return &UnknownRevisionError{
		Rev: rev,
		Err: err,
	}
}
