package git

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/otawire/otawire/internal/errors"
)

func dirtyRepo(t *testing.T) (*Client, string) {
	t.Helper()
	dir := createLocalGitRepo(t)
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Changed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return NewClient(dir), dir
}

func TestReviewAndCommitAccept(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	c, _ := dirtyRepo(t)
	var out bytes.Buffer
	r := NewReviewerWithIO(c, strings.NewReader("y\n"), &out)

	if err := r.ReviewAndCommit("wire updates", []string{"README.md"}, false); err != nil {
		t.Fatalf("ReviewAndCommit() error = %v", err)
	}
	if err := c.EnsureClean(); err != nil {
		t.Errorf("tree dirty after accepted commit: %v", err)
	}
	if !strings.Contains(out.String(), "Commit 1 file(s)?") {
		t.Errorf("prompt missing from output:\n%s", out.String())
	}
}

func TestReviewAndCommitDecline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	c, _ := dirtyRepo(t)
	var out bytes.Buffer
	r := NewReviewerWithIO(c, strings.NewReader("n\n"), &out)

	err := r.ReviewAndCommit("wire updates", []string{"README.md"}, false)
	if !errors.Is(err, errors.ErrCommitAborted) {
		t.Fatalf("error = %v, want ErrCommitAborted", err)
	}
	// Declining leaves the edits in the work tree.
	if err := c.EnsureClean(); !errors.Is(err, errors.ErrDirtyTree) {
		t.Errorf("expected edits to remain uncommitted, got %v", err)
	}
}

func TestReviewAndCommitEOF(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	c, _ := dirtyRepo(t)
	var out bytes.Buffer
	r := NewReviewerWithIO(c, strings.NewReader(""), &out)

	err := r.ReviewAndCommit("wire updates", []string{"README.md"}, false)
	if !errors.Is(err, errors.ErrCommitAborted) {
		t.Fatalf("error = %v, want ErrCommitAborted", err)
	}
}

func TestReviewAndCommitNonInteractive(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	c, _ := dirtyRepo(t)
	var out bytes.Buffer
	r := NewReviewerWithIO(c, strings.NewReader(""), &out)

	if err := r.ReviewAndCommit("wire updates", []string{"README.md"}, true); err != nil {
		t.Fatalf("ReviewAndCommit() error = %v", err)
	}
	if strings.Contains(out.String(), "[y/N]") {
		t.Error("non-interactive mode still prompted")
	}
	if err := c.EnsureClean(); err != nil {
		t.Errorf("tree dirty after non-interactive commit: %v", err)
	}
}

func TestReviewAndCommitNoPaths(t *testing.T) {
	c := NewClient(t.TempDir())
	r := NewReviewerWithIO(c, strings.NewReader(""), &bytes.Buffer{})

	if err := r.ReviewAndCommit("noop", nil, false); err != nil {
		t.Errorf("ReviewAndCommit(no paths) error = %v", err)
	}
}
