package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install [url|package|path]",
		Short: "Check out a dependency in the workspace and link it into the project",
		Long: `Install makes a dependency dev-linked. The argument is tried, in order, as:

  1. a local directory containing a package.json,
  2. a GitHub URL or owner/repo shorthand, optionally with #branch,
  3. a package name whose repository is looked up in the registry.

The repository is cloned into the workspace root unless already present,
its packages are installed, it is linked into the modules directory and the
project's package.json dependency is updated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInstall,
	}
}

func runInstall(cmd *cobra.Command, args []string) error {
	var spec string
	if len(args) == 1 {
		spec = args[0]
	} else {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("no specifier provided and stdin is not a TTY; provide a URL, package name or path")
		}
		s, err := promptSpecifier()
		if err != nil {
			return fmt.Errorf("interactive install: %w", err)
		}
		spec = strings.TrimSpace(s)
	}

	env, err := loadEnv(cmd, true)
	if err != nil {
		return err
	}
	defer env.close()

	return env.runner.Install(spec)
}
