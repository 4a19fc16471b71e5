package errors

import (
	"errors"
	"fmt"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, aborted review, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrProjectNotFound indicates no Xcode project descriptor was found
	// under the ios/ directory.
	ErrProjectNotFound = errors.New("iOS project not found")

	// ErrFileNotFound indicates an expected build configuration file is missing.
	ErrFileNotFound = errors.New("file not found")

	// ErrParse indicates a structured build file could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrBuildPhaseNotFound indicates the expected shell-script build phase
	// is missing from the Xcode project. Synthesizing one is out of scope.
	ErrBuildPhaseNotFound = errors.New("build phase not found")

	// ErrApplicationNotFound indicates the Android manifest has no
	// <application> element.
	ErrApplicationNotFound = errors.New("application element not found")

	// ErrDirtyTree indicates the working tree has uncommitted changes.
	ErrDirtyTree = errors.New("working tree is dirty")

	// ErrCommitAborted indicates the operator declined the review-and-commit
	// step. The command must be re-run after the operator resolves the tree.
	ErrCommitAborted = errors.New("commit review aborted")
)

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: otawire doctor",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
