package devlink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fbkclanna/devlink/internal/config"
	"github.com/fbkclanna/devlink/internal/git"
	"github.com/fbkclanna/devlink/internal/pkgmgr"
	"github.com/fbkclanna/devlink/internal/workspace"
	"github.com/stretchr/testify/require"
)

type call struct {
	op   string
	args []string
}

type fakeGit struct {
	calls     []call
	cloneErr  error
	statusErr map[string]error
	pushErr   map[string]error
}

func (g *fakeGit) Clone(url, dest string) error {
	g.calls = append(g.calls, call{"clone", []string{url, dest}})
	if g.cloneErr != nil {
		return g.cloneErr
	}
	return os.MkdirAll(dest, 0755)
}

func (g *fakeGit) Checkout(repoDir, branch string) error {
	g.calls = append(g.calls, call{"checkout", []string{repoDir, branch}})
	return nil
}

func (g *fakeGit) Push(repoDir string) error {
	g.calls = append(g.calls, call{"push", []string{repoDir}})
	return g.pushErr[filepath.Base(repoDir)]
}

func (g *fakeGit) Status(repoDir string) (string, error) {
	g.calls = append(g.calls, call{"status", []string{repoDir}})
	if err := g.statusErr[filepath.Base(repoDir)]; err != nil {
		return "", err
	}
	return "## main...origin/main\n", nil
}

func (g *fakeGit) count(op string) int {
	n := 0
	for _, c := range g.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

type fakePackages struct {
	installed []string
	urls      map[string]string
	lookupErr error
	lookups   []string
}

func (p *fakePackages) Install(dir string) error {
	p.installed = append(p.installed, dir)
	return nil
}

func (p *fakePackages) RepositoryURL(name string) (string, error) {
	p.lookups = append(p.lookups, name)
	if p.lookupErr != nil {
		return "", p.lookupErr
	}
	return p.urls[name], nil
}

type fakeLinker struct {
	links [][2]string
	err   map[string]error
}

func (l *fakeLinker) Link(src, dst string) error {
	l.links = append(l.links, [2]string{src, dst})
	return l.err[filepath.Base(dst)]
}

type sink struct {
	out  []string
	errs []error
}

func (s *sink) logger() Logger {
	return Logger{
		Out: func(line string) { s.out = append(s.out, line) },
		Err: func(err error) { s.errs = append(s.errs, err) },
	}
}

type fixture struct {
	project string
	ws      string
	git     *fakeGit
	pkgs    *fakePackages
	linker  *fakeLinker
	sink    *sink
	runner  *Runner
}

// newFixture lays out <tmp>/project/package.json and an empty
// <tmp>/workspace, and wires a Runner to fakes.
func newFixture(t *testing.T, manifestBody string) *fixture {
	t.Helper()
	base := t.TempDir()
	f := &fixture{
		project: filepath.Join(base, "project"),
		ws:      filepath.Join(base, "workspace"),
		git:     &fakeGit{},
		pkgs:    &fakePackages{urls: map[string]string{}},
		linker:  &fakeLinker{},
		sink:    &sink{},
	}
	require.NoError(t, os.MkdirAll(f.project, 0755))
	require.NoError(t, os.MkdirAll(f.ws, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(f.project, "package.json"), []byte(manifestBody), 0644))

	cfg := config.Default()
	cfg.WorkspaceRoot = "../workspace"
	paths, err := workspace.Resolve(f.project, cfg)
	require.NoError(t, err)

	f.runner = &Runner{
		Paths:    paths,
		Git:      f.git,
		Packages: f.pkgs,
		Linker:   f.linker,
		Log:      f.sink.logger(),
		WorkDir:  f.project,
	}
	return f
}

func (f *fixture) mkWorkspaceDirs(t *testing.T, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.MkdirAll(filepath.Join(f.ws, n), 0755))
	}
}

var (
	_ Git            = (*git.Client)(nil)
	_ PackageManager = (*pkgmgr.Client)(nil)
)
