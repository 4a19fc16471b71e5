package git

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/otawire/otawire/internal/errors"
)

// Reviewer shows the diff of edited files and asks for confirmation before
// committing them.
type Reviewer struct {
	client *Client
	reader io.Reader
	writer io.Writer
}

// NewReviewer creates a Reviewer using stdin and stdout.
func NewReviewer(client *Client) *Reviewer {
	return &Reviewer{
		client: client,
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewReviewerWithIO creates a Reviewer with custom reader and writer for testing.
func NewReviewerWithIO(client *Client, r io.Reader, w io.Writer) *Reviewer {
	return &Reviewer{
		client: client,
		reader: r,
		writer: w,
	}
}

// ReviewAndCommit registers intent-to-add for paths, shows their diff and
// prompts y/N before committing. With nonInteractive set the prompt is
// skipped and the commit happens immediately. Declining (or EOF) returns
// ErrCommitAborted; the edits stay in the work tree for the user to handle.
func (r *Reviewer) ReviewAndCommit(message string, paths []string, nonInteractive bool) error {
	if len(paths) == 0 {
		return nil
	}

	if err := r.client.IntentToAdd(paths); err != nil {
		return err
	}

	if !nonInteractive {
		if err := r.client.DiffFiles(r.writer, paths); err != nil {
			return err
		}

		fmt.Fprintf(r.writer, "Commit %d file(s)? [y/N]: ", len(paths))
		input, err := bufio.NewReader(r.reader).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return errors.Wrap(err, "reading confirmation")
		}
		if answer := strings.ToLower(strings.TrimSpace(input)); answer != "y" && answer != "yes" {
			return errors.ErrCommitAborted
		}
	}

	return r.client.Commit(message, paths)
}
