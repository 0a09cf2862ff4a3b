package devlink

import (
	"fmt"

	"github.com/fbkclanna/devlink/internal/fsutil"
	"github.com/fbkclanna/devlink/internal/workspace"
)

// Git is the subset of git operations the commands need.
type Git interface {
	Clone(url, dest string) error
	Checkout(repoDir, branch string) error
	Push(repoDir string) error
	Status(repoDir string) (string, error)
}

// PackageManager installs packages and resolves registry names.
type PackageManager interface {
	Install(dir string) error
	RepositoryURL(name string) (string, error)
}

// Linker exposes a repository directory at a path in the modules dir.
type Linker interface {
	Link(src, dst string) error
}

// LinkFunc adapts a function to Linker.
type LinkFunc func(src, dst string) error

// Link calls f(src, dst).
func (f LinkFunc) Link(src, dst string) error { return f(src, dst) }

// SymlinkLinker links with filesystem symlinks.
var SymlinkLinker Linker = LinkFunc(fsutil.Link)

// Runner executes devlink commands against one project.
type Runner struct {
	Paths    *workspace.Context
	Git      Git
	Packages PackageManager
	Linker   Linker
	Log      Logger

	// WorkDir resolves relative local paths given to Install.
	// Empty means the process working directory.
	WorkDir string

	// Heading decorates repository names in Status output.
	Heading func(string) string
}

func (r *Runner) heading(name string) string {
	if r.Heading == nil {
		return name
	}
	return r.Heading(name)
}

// link exposes dir as name inside the modules dir. Paths resolving
// outside the modules dir are refused.
func (r *Runner) link(name, dir string) error {
	dst := r.Paths.LinkPath(name)
	if !fsutil.Within(r.Paths.ModulesDir, dst) {
		return fmt.Errorf("link path %s is outside %s", dst, r.Paths.ModulesDir)
	}
	r.Log.out("Linking %s to %s...", dst, dir)
	return r.linker().Link(dir, dst)
}

func (r *Runner) linker() Linker {
	if r.Linker == nil {
		return SymlinkLinker
	}
	return r.Linker
}
