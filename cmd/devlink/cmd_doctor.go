package main

import (
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/fbkclanna/devlink/internal/config"
	"github.com/fbkclanna/devlink/internal/fsutil"
	"github.com/fbkclanna/devlink/internal/workspace"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment and links for common issues",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	ok := true

	env, err := loadEnv(cmd, false)
	if err != nil {
		return err
	}
	defer env.close()
	cfg := env.ctx.Config

	// Check git.
	_, _ = fmt.Fprint(out, "Checking git... ")
	if env.git.IsInstalled() {
		_, _ = fmt.Fprintln(out, toolVersion(cfg.Git, "version"))
	} else {
		_, _ = fmt.Fprintf(out, "NOT FOUND (%s)\n", cfg.Git)
		_, _ = fmt.Fprintln(out, "  git is required. Install it from https://git-scm.com/")
		ok = false
	}

	// Check package manager.
	_, _ = fmt.Fprintf(out, "Checking %s... ", cfg.PackageManager)
	if env.pkgs.IsInstalled() {
		_, _ = fmt.Fprintln(out, toolVersion(cfg.PackageManager, "--version"))
	} else {
		_, _ = fmt.Fprintln(out, "NOT FOUND")
		ok = false
	}

	// Check workspace root.
	_, _ = fmt.Fprintf(out, "Checking workspace root %s... ", env.ctx.WorkspaceRoot)
	if fsutil.IsDirectory(env.ctx.WorkspaceRoot) {
		_, _ = fmt.Fprintln(out, "OK")
	} else {
		_, _ = fmt.Fprintf(out, "MISSING (set workspace_root in %s or pass --workspace)\n", config.FileName)
		ok = false
	}

	// Check manifest and links.
	_, _ = fmt.Fprintf(out, "Checking manifest %s... ", env.ctx.ManifestPath)
	loaded, loadErr := workspace.Load(env.ctx.Root, cfg)
	if loadErr != nil {
		_, _ = fmt.Fprintln(out, "FAILED")
		_, _ = fmt.Fprintf(out, "  %v\n", loadErr)
		ok = false
	} else {
		name := loaded.Manifest.Name()
		if name == "" {
			name = "unnamed package"
		}
		_, _ = fmt.Fprintf(out, "OK (%s, %d dependencies)\n", name, loaded.Manifest.Dependencies.Len())
		if !checkLinks(out, loaded) {
			ok = false
		}
	}

	if ok {
		_, _ = fmt.Fprintln(out, okStyle.Render("\nAll checks passed."))
		return nil
	}
	_, _ = fmt.Fprintln(out, errStyle.Render("\nSome checks failed. See above for details."))
	return fmt.Errorf("doctor checks failed")
}

// checkLinks verifies that every dev-linked dependency is linked to its
// workspace checkout. Returns false if any link is missing or stale.
func checkLinks(out io.Writer, ctx *workspace.Context) bool {
	names, err := ctx.DevLinked()
	if err != nil {
		_, _ = fmt.Fprintf(out, "  %v\n", err)
		return false
	}
	ok := true
	for _, name := range names {
		_, _ = fmt.Fprintf(out, "  Checking link %s... ", name)
		target, linked := fsutil.LinkTarget(ctx.LinkPath(name))
		switch {
		case !linked:
			_, _ = fmt.Fprintln(out, "NOT LINKED (run devlink relink)")
			ok = false
		case target != ctx.RepoDir(name):
			_, _ = fmt.Fprintf(out, "STALE (points to %s; run devlink relink)\n", target)
			ok = false
		default:
			_, _ = fmt.Fprintln(out, "OK")
		}
	}
	return ok
}

func toolVersion(bin, flag string) string {
	out, err := exec.Command(bin, flag).Output() //nolint:gosec // bin comes from the project's own config
	if err != nil {
		return "found"
	}
	return strings.TrimSpace(string(out))
}
