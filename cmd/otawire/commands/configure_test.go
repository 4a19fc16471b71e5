package commands

import (
	"testing"

	"github.com/otawire/otawire/internal/errors"
	"github.com/otawire/otawire/internal/project"
)

func TestAsExitError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"commit aborted", errors.ErrCommitAborted, errors.ExitUser},
		{"build phase missing", errors.ErrBuildPhaseNotFound, errors.ExitUser},
		{"project not found", errors.ErrProjectNotFound, errors.ExitUser},
		{"parse failure", errors.Wrap(errors.ErrParse, "AndroidManifest.xml"), errors.ExitUser},
		{"no slug", project.ErrNoSlug, errors.ExitUser},
		{"io failure", errors.New("permission denied"), errors.ExitSystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := asExitError(tt.err)

			var exitErr *errors.ExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("asExitError() = %v, want *ExitError", err)
			}
			if exitErr.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", exitErr.Code, tt.wantCode)
			}
			if !errors.Is(err, tt.err) {
				t.Error("original error lost from the chain")
			}
		})
	}
}

func TestAsExitErrorPassesThrough(t *testing.T) {
	orig := errors.NewUserError(errors.New("bad flag"), "fix the flag")
	if got := asExitError(orig); got != orig {
		t.Errorf("existing ExitError was rewrapped: %v", got)
	}
}
