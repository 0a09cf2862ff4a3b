// Package pkgmgr runs the JavaScript package manager (npm or a compatible
// CLI) for the two things devlink needs from it: installing a repository's
// own dependencies and looking up a package's source repository.
package pkgmgr

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Error is returned when a package manager invocation exits non-zero.
type Error struct {
	Bin    string
	Args   []string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Bin, strings.Join(e.Args, " "), e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Client runs package manager commands.
type Client struct {
	// Bin is the package manager executable. Defaults to "npm".
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

// Install installs the dependencies of the package in dir.
func (c *Client) Install(dir string) error {
	_, err := c.output(dir, "install")
	return err
}

// RepositoryURL asks the registry for the repository URL of package name.
// It returns an empty string when the package declares no repository.
func (c *Client) RepositoryURL(name string) (string, error) {
	out, err := c.output(".", "view", name, "repository.url")
	if err != nil {
		return "", err
	}
	return NormalizeRepositoryURL(out), nil
}

// IsInstalled returns true if the package manager executable is on PATH.
func (c *Client) IsInstalled() bool {
	_, err := exec.LookPath(c.bin())
	return err == nil
}

// NormalizeRepositoryURL strips the "git+" scheme prefix the registry puts
// in front of repository URLs, so "git+https://github.com/o/r.git" becomes
// "https://github.com/o/r.git".
func NormalizeRepositoryURL(raw string) string {
	url := strings.TrimSpace(raw)
	// npm prints the last line when a field has several versions.
	if i := strings.LastIndex(url, "\n"); i != -1 {
		url = strings.TrimSpace(url[i+1:])
	}
	url = strings.Trim(url, `'"`)
	return strings.TrimPrefix(url, "git+")
}

func (c *Client) bin() string {
	if c.Bin == "" {
		return "npm"
	}
	return c.Bin
}

func (c *Client) output(dir string, args ...string) (string, error) {
	cmd := exec.Command(c.bin(), args...) //nolint:gosec // args are built by this package
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("package manager", zap.String("bin", c.bin()), zap.String("dir", dir), zap.Strings("args", args))
	if err := cmd.Run(); err != nil {
		logger.Debug("package manager failed", zap.Strings("args", args), zap.Error(err))
		return "", &Error{Bin: c.bin(), Args: args, Stderr: stderr.String(), Err: err}
	}
	return stdout.String(), nil
}
