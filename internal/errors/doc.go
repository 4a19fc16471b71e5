// Package errors provides error handling conventions for the otawire CLI.
//
// This package defines sentinel errors for the failure taxonomy of the
// configuration engine, an ExitError type for CLI exit code handling, and
// re-exports of cockroachdb/errors helpers so the rest of the repository
// uses a single errors import.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, errors.ErrProjectNotFound) {
//	    // no ios/*.xcodeproj in this tree
//	}
//
// None of the sentinels represent transient conditions: a missing file or
// build phase means the project does not follow the expected convention,
// and a dirty-tree abort is an operator decision. Callers report and halt
// rather than retry.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, aborted review, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
package errors
