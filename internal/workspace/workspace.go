package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fbkclanna/devlink/internal/config"
	"github.com/fbkclanna/devlink/internal/manifest"
)

// Context holds the resolved paths and loaded manifest for a project.
type Context struct {
	Root          string
	WorkspaceRoot string
	ModulesDir    string
	ManifestPath  string
	Manifest      *manifest.File
	Config        *config.Config
}

// Resolve computes absolute paths for the project at root without touching
// the manifest.
func Resolve(root string, cfg *config.Config) (*Context, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}
	if cfg == nil {
		cfg = config.Default()
	}

	wsRoot := cfg.WorkspaceRoot
	if !filepath.IsAbs(wsRoot) {
		wsRoot = filepath.Join(root, wsRoot)
	}

	return &Context{
		Root:          root,
		WorkspaceRoot: filepath.Clean(wsRoot),
		ModulesDir:    filepath.Join(root, cfg.ModulesDir),
		ManifestPath:  filepath.Join(root, cfg.Manifest),
		Config:        cfg,
	}, nil
}

// Load resolves paths and reads the manifest fresh from disk.
func Load(root string, cfg *config.Config) (*Context, error) {
	ctx, err := Resolve(root, cfg)
	if err != nil {
		return nil, err
	}
	m, err := manifest.Load(ctx.ManifestPath)
	if err != nil {
		return nil, err
	}
	ctx.Manifest = m
	return ctx, nil
}

// RepoDir returns the workspace directory for a dependency.
func (c *Context) RepoDir(name string) string {
	return filepath.Join(c.WorkspaceRoot, name)
}

// LinkPath returns where a dependency is linked inside the project.
func (c *Context) LinkPath(name string) string {
	return filepath.Join(c.ModulesDir, name)
}

// DevLinked scans the workspace root and returns the dev-linked set of the
// loaded manifest.
func (c *Context) DevLinked() ([]string, error) {
	dirs, err := GetDirectories(c.WorkspaceRoot)
	if err != nil {
		return nil, err
	}
	return DevLinked(c.Manifest.Dependencies.Keys(), dirs), nil
}

// GetDirectories lists the immediate subdirectories of root, sorted.
// Symlinks to directories are included. A missing root yields no entries.
func GetDirectories(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading workspace %s: %w", root, err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
			continue
		}
		if e.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(root, e.Name())); err == nil && info.IsDir() {
				dirs = append(dirs, e.Name())
			}
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// DevLinked returns the names present in both deps and dirs, sorted and
// without duplicates.
func DevLinked(deps, dirs []string) []string {
	present := toSet(dirs)
	seen := make(map[string]bool, len(deps))

	var result []string
	for _, d := range deps {
		if present[d] && !seen[d] {
			seen[d] = true
			result = append(result, d)
		}
	}
	sort.Strings(result)
	return result
}

func toSet(ss []string) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}
