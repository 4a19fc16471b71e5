package errors

import "github.com/cockroachdb/errors"

// Re-exports so callers need a single errors import. cockroachdb/errors
// provides wrapping with stack traces and is errors.Is/As compatible.
var (
	New    = errors.New
	Newf   = errors.Newf
	Wrap   = errors.Wrap
	Wrapf  = errors.Wrapf
	Is     = errors.Is
	As     = errors.As
	Join   = errors.Join
	Unwrap = errors.Unwrap
)
