// Package git wraps the git operations the configuration flow needs:
// repository detection, dirty-tree checks, intent-to-add registration for
// newly created files, and a review-then-commit step for edited files.
package git

import (
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/otawire/otawire/internal/errors"
)

// IsRepo reports whether dir is inside a git work tree.
func IsRepo(dir string) bool {
	cmd := exec.Command("git", "-C", dir, "rev-parse", "--is-inside-work-tree")
	out, err := cmd.Output()
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

// Client runs git against a single repository.
type Client struct {
	dir string
}

// NewClient creates a client for the repository containing dir.
func NewClient(dir string) *Client {
	return &Client{dir: dir}
}

// Status returns the porcelain status lines for the repository, one entry
// per modified or untracked path.
func (c *Client) Status() ([]string, error) {
	out, err := c.run("status", "--porcelain")
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// EnsureClean returns ErrDirtyTree naming the dirty paths when the work
// tree has uncommitted changes.
func (c *Client) EnsureClean() error {
	lines, err := c.Status()
	if err != nil {
		return err
	}
	if len(lines) > 0 {
		return errors.Wrapf(errors.ErrDirtyTree, "%s", strings.Join(lines, ", "))
	}
	return nil
}

// IntentToAdd registers paths with the index (git add --intent-to-add) so
// newly created files appear in diffs before they are ever committed.
// Already-tracked paths are accepted and unaffected.
func (c *Client) IntentToAdd(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	_, err := c.run(append([]string{"add", "--intent-to-add", "--"}, paths...)...)
	return err
}

// DiffFiles streams the work-tree diff for paths to w.
func (c *Client) DiffFiles(w io.Writer, paths []string) error {
	args := append([]string{"-C", c.dir, "diff", "--"}, paths...)
	cmd := exec.Command("git", args...)
	cmd.Stdout = w
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "git diff failed")
	}
	return nil
}

// Commit stages paths and commits them with the given message.
func (c *Client) Commit(message string, paths []string) error {
	if _, err := c.run(append([]string{"add", "--"}, paths...)...); err != nil {
		return err
	}
	_, err := c.run("commit", "-m", message)
	return err
}

func (c *Client) run(args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", c.dir}, args...)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", errors.Newf("git %s: %s", args[0], strings.TrimSpace(string(out)))
	}
	return string(out), nil
}
