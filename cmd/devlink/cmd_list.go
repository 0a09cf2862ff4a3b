package main

import (
	"encoding/json"

	"github.com/fbkclanna/devlink/internal/fsutil"
	"github.com/fbkclanna/devlink/internal/git"
	"github.com/fbkclanna/devlink/internal/ui"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dev-linked dependencies",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type linkedRepo struct {
	Name      string `json:"name"`
	Specifier string `json:"specifier"`
	Path      string `json:"path"`
	Linked    bool   `json:"linked"`
	Branch    string `json:"branch,omitempty"`
	Head      string `json:"head,omitempty"`
	Dirty     bool   `json:"dirty"`
}

func runList(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	env, err := loadEnv(cmd, true)
	if err != nil {
		return err
	}
	defer env.close()

	names, err := env.ctx.DevLinked()
	if err != nil {
		return err
	}

	repos := make([]linkedRepo, 0, len(names))
	for _, name := range names {
		repos = append(repos, collectLinked(env, name))
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(repos)
	}

	tbl := ui.NewTable(out, "NAME", "SPECIFIER", "LINKED", "BRANCH", "HEAD", "DIRTY")
	for _, r := range repos {
		tbl.Row(r.Name, r.Specifier, r.Linked, r.Branch, r.Head, r.Dirty)
	}
	return tbl.Flush()
}

func collectLinked(env *env, name string) linkedRepo {
	dir := env.ctx.RepoDir(name)
	spec, _ := env.ctx.Manifest.Dependencies.Get(name)
	r := linkedRepo{Name: name, Specifier: spec, Path: dir}

	if target, ok := fsutil.LinkTarget(env.ctx.LinkPath(name)); ok && target == dir {
		r.Linked = true
	}

	if !git.IsCloned(dir) {
		return r
	}
	if branch, err := env.git.CurrentBranch(dir); err == nil {
		if branch == "" {
			r.Branch = "(detached)"
		} else {
			r.Branch = branch
		}
	}
	if head, err := env.git.HeadCommit(dir); err == nil {
		r.Head = head
	}
	if dirty, err := env.git.IsDirty(dir); err == nil {
		r.Dirty = dirty
	}
	return r
}
