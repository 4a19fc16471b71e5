// Package status renders step-by-step progress lines for long-running
// command flows: a spinner while a step runs, then a colored success or
// failure mark. On non-TTY output and in quiet mode it stays silent so
// logs and scripts see only structured output.
package status

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/otawire/otawire/internal/logging"
)

// Reporter drives a single-line progress indicator.
type Reporter struct {
	spinner *spinner.Spinner
	writer  io.Writer
	enabled bool
}

// New creates a Reporter writing to stderr. The indicator is enabled only
// when stderr is a terminal that supports color and quiet is false.
func New(quiet bool) *Reporter {
	return NewWithWriter(os.Stderr, !quiet && logging.SupportsColor(os.Stderr))
}

// NewWithWriter creates a Reporter with an explicit writer and enable flag,
// for testing.
func NewWithWriter(w io.Writer, enabled bool) *Reporter {
	r := &Reporter{writer: w, enabled: enabled}
	if enabled {
		r.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond,
			spinner.WithWriter(w), spinner.WithColor("cyan"))
	}
	return r
}

// Start begins a step with the given message.
func (r *Reporter) Start(message string) {
	if !r.enabled {
		return
	}
	r.spinner.Suffix = " " + message
	r.spinner.Start()
}

// Succeed ends the current step with a success mark.
func (r *Reporter) Succeed(message string) {
	if !r.enabled {
		return
	}
	r.spinner.Stop()
	fmt.Fprintf(r.writer, "%s %s\n", color.GreenString("✓"), message)
}

// Fail ends the current step with a failure mark.
func (r *Reporter) Fail(message string) {
	if !r.enabled {
		return
	}
	r.spinner.Stop()
	fmt.Fprintf(r.writer, "%s %s\n", color.RedString("✗"), message)
}

// Info prints a neutral status line without a mark.
func (r *Reporter) Info(message string) {
	if !r.enabled {
		return
	}
	r.spinner.Stop()
	fmt.Fprintf(r.writer, "  %s\n", message)
}
