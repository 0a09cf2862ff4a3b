package devlink

import (
	"fmt"
	"strings"

	"github.com/fbkclanna/devlink/internal/manifest"
	"github.com/fbkclanna/devlink/internal/workspace"
)

// Batch summarises a command run over the dev-linked set.
type Batch struct {
	Done   []string
	Failed []string
}

// Total returns the number of repositories processed.
func (b Batch) Total() int { return len(b.Done) + len(b.Failed) }

// Relink links every dev-linked dependency of m into the modules dir.
// A failure for one repository is reported and the rest continue.
func (r *Runner) Relink(m *manifest.File) (Batch, error) {
	return r.each(m, func(name string) error {
		return r.link(name, r.Paths.RepoDir(name))
	})
}

// Status prints the git status of every dev-linked dependency of m.
func (r *Runner) Status(m *manifest.File) (Batch, error) {
	return r.each(m, func(name string) error {
		out, err := r.Git.Status(r.Paths.RepoDir(name))
		if err != nil {
			return err
		}
		r.Log.out("%s\n%s", r.heading(name), strings.TrimSpace(out))
		return nil
	})
}

// Push pushes the current branch of every dev-linked dependency of m.
func (r *Runner) Push(m *manifest.File) (Batch, error) {
	return r.each(m, func(name string) error {
		r.Log.out("Pushing %s...", name)
		return r.Git.Push(r.Paths.RepoDir(name))
	})
}

// each runs fn for every dev-linked name in order. Only a failure to scan
// the workspace is returned; per-repository errors go to the error sink.
func (r *Runner) each(m *manifest.File, fn func(name string) error) (Batch, error) {
	dirs, err := workspace.GetDirectories(r.Paths.WorkspaceRoot)
	if err != nil {
		return Batch{}, err
	}

	var b Batch
	for _, name := range workspace.DevLinked(m.Dependencies.Keys(), dirs) {
		if err := fn(name); err != nil {
			r.Log.err(fmt.Errorf("%s: %w", name, err))
			b.Failed = append(b.Failed, name)
			continue
		}
		b.Done = append(b.Done, name)
	}
	return b, nil
}
