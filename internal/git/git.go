package git

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Error is returned when a git invocation exits non-zero.
type Error struct {
	Dir    string
	Args   []string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	msg := "git " + strings.Join(e.Args, " ")
	if e.Dir != "" && e.Dir != "." {
		msg += " (in " + e.Dir + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// ErrDestinationExists is wrapped by Clone when the target path is taken.
var ErrDestinationExists = errors.New("destination already exists")

// Client runs git commands.
type Client struct {
	// Bin is the git executable. Defaults to "git".
	Bin    string
	Logger *zap.Logger
}

// New returns a Client for the given executable.
func New(bin string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{Bin: bin, Logger: logger}
}

// Clone clones url into dest. It fails if dest already exists.
func (c *Client) Clone(url, dest string) error {
	args := []string{"clone", url, dest}
	if _, err := os.Lstat(dest); err == nil {
		return &Error{Dir: ".", Args: args, Err: ErrDestinationExists}
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
	}
	_, err := c.output(".", args...)
	return err
}

// Checkout checks out branch. An empty branch is a no-op.
func (c *Client) Checkout(repoDir, branch string) error {
	if branch == "" {
		return nil
	}
	_, err := c.output(repoDir, "checkout", branch)
	return err
}

// Push pushes the current branch to its configured upstream.
func (c *Client) Push(repoDir string) error {
	_, err := c.output(repoDir, "push")
	return err
}

// Status returns the short-form status, including the branch line.
func (c *Client) Status(repoDir string) (string, error) {
	if !IsCloned(repoDir) {
		return "", &Error{Dir: repoDir, Args: []string{"status"}, Stderr: "not a git repository"}
	}
	out, err := c.output(repoDir, "status", "--short", "--branch")
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// CurrentBranch returns the current branch name, or empty string if detached.
func (c *Client) CurrentBranch(repoDir string) (string, error) {
	out, err := c.output(repoDir, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		// Detached HEAD: symbolic-ref fails.
		return "", nil
	}
	return strings.TrimSpace(out), nil
}

// HeadCommit returns the short SHA of HEAD.
func (c *Client) HeadCommit(repoDir string) (string, error) {
	out, err := c.output(repoDir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// IsDirty returns true if the working tree has uncommitted changes.
func (c *Client) IsDirty(repoDir string) (bool, error) {
	out, err := c.output(repoDir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// IsInstalled returns true if the git executable is on PATH.
func (c *Client) IsInstalled() bool {
	_, err := exec.LookPath(c.bin())
	return err == nil
}

// IsCloned returns true if the directory is a git repository.
func IsCloned(repoDir string) bool {
	info, err := os.Stat(filepath.Join(repoDir, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir()
}

func (c *Client) bin() string {
	if c.Bin == "" {
		return "git"
	}
	return c.Bin
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// output executes a git command and returns its stdout.
// Stderr is captured into the returned *Error on failure.
func (c *Client) output(dir string, args ...string) (string, error) {
	cmd := exec.Command(c.bin(), args...) //nolint:gosec // args are built by this package
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger().Debug("git", zap.String("dir", dir), zap.Strings("args", args))
	if err := cmd.Run(); err != nil {
		c.logger().Debug("git failed",
			zap.String("dir", dir),
			zap.Strings("args", args),
			zap.Error(err),
			zap.String("stderr", stderr.String()),
		)
		return "", &Error{Dir: dir, Args: args, Stderr: stderr.String(), Err: err}
	}
	return stdout.String(), nil
}
