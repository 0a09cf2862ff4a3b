package devlink

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fbkclanna/devlink/internal/git"
	"github.com/fbkclanna/devlink/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const devManifest = `{
  "dependencies": {
    "ckeditor5-core": "ckeditor/ckeditor5-core",
    "ckeditor5-devtest": "ckeditor/ckeditor5-devtest#new-branch",
    "other-plugin": "1.2.3"
  }
}`

func parseManifest(t *testing.T, body string) *manifest.File {
	t.Helper()
	m, err := manifest.Parse([]byte(body))
	require.NoError(t, err)
	return m
}

func TestRelink_linksDevRepositories(t *testing.T) {
	f := newFixture(t, devManifest)
	f.mkWorkspaceDirs(t, "ckeditor5-core", "ckeditor5-devtest")

	b, err := f.runner.Relink(parseManifest(t, devManifest))
	require.NoError(t, err)

	modules := filepath.Join(f.project, "node_modules")
	assert.Equal(t, [][2]string{
		{filepath.Join(f.ws, "ckeditor5-core"), filepath.Join(modules, "ckeditor5-core")},
		{filepath.Join(f.ws, "ckeditor5-devtest"), filepath.Join(modules, "ckeditor5-devtest")},
	}, f.linker.links)
	assert.Equal(t, []string{"ckeditor5-core", "ckeditor5-devtest"}, b.Done)
	assert.Empty(t, f.sink.errs)
}

func TestRelink_onlyDevLinkedIntersection(t *testing.T) {
	body := `{"dependencies": {"pkg-core": "org/pkg-core", "other": "1.2.3"}}`
	f := newFixture(t, body)
	f.mkWorkspaceDirs(t, "pkg-core")

	_, err := f.runner.Relink(parseManifest(t, body))
	require.NoError(t, err)

	require.Len(t, f.linker.links, 1)
	assert.Equal(t, filepath.Join(f.ws, "pkg-core"), f.linker.links[0][0])
}

func TestRelink_noDependencies(t *testing.T) {
	body := `{"dependencies": {"other-plugin": "1.2.3"}}`
	f := newFixture(t, body)
	f.mkWorkspaceDirs(t, "unrelated")

	b, err := f.runner.Relink(parseManifest(t, body))
	require.NoError(t, err)
	assert.Empty(t, f.linker.links)
	assert.Equal(t, 0, b.Total())
}

func TestRelink_noPluginsInDevMode(t *testing.T) {
	f := newFixture(t, devManifest)

	_, err := f.runner.Relink(parseManifest(t, devManifest))
	require.NoError(t, err)
	assert.Empty(t, f.linker.links)
}

func TestRelink_missingWorkspaceRoot(t *testing.T) {
	f := newFixture(t, devManifest)
	require.NoError(t, os.RemoveAll(f.ws))

	b, err := f.runner.Relink(parseManifest(t, devManifest))
	require.NoError(t, err)
	assert.Equal(t, 0, b.Total())
}

func TestRelink_errorIsReportedAndProcessingContinues(t *testing.T) {
	f := newFixture(t, devManifest)
	f.mkWorkspaceDirs(t, "ckeditor5-core", "ckeditor5-devtest")
	linkErr := errors.New("link failed")
	f.linker.err = map[string]error{"ckeditor5-core": linkErr}

	b, err := f.runner.Relink(parseManifest(t, devManifest))
	require.NoError(t, err)

	assert.Len(t, f.linker.links, 2)
	require.Len(t, f.sink.errs, 1)
	assert.ErrorIs(t, f.sink.errs[0], linkErr)
	assert.Equal(t, []string{"ckeditor5-devtest"}, b.Done)
	assert.Equal(t, []string{"ckeditor5-core"}, b.Failed)
}

func TestStatus_showsDevRepositories(t *testing.T) {
	f := newFixture(t, devManifest)
	f.mkWorkspaceDirs(t, "ckeditor5-core", "ckeditor5-devtest")
	f.runner.Heading = func(s string) string { return "[" + s + "]" }

	_, err := f.runner.Status(parseManifest(t, devManifest))
	require.NoError(t, err)

	require.Equal(t, 2, f.git.count("status"))
	assert.Equal(t, []string{filepath.Join(f.ws, "ckeditor5-core")}, f.git.calls[0].args)
	assert.Equal(t, []string{filepath.Join(f.ws, "ckeditor5-devtest")}, f.git.calls[1].args)
	assert.Equal(t, []string{
		"[ckeditor5-core]\n## main...origin/main",
		"[ckeditor5-devtest]\n## main...origin/main",
	}, f.sink.out)
}

func TestStatus_noDependencies(t *testing.T) {
	body := `{"dependencies": {"other-plugin": "1.2.3"}}`
	f := newFixture(t, body)

	_, err := f.runner.Status(parseManifest(t, body))
	require.NoError(t, err)
	assert.Equal(t, 0, f.git.count("status"))
}

func TestStatus_oneFailureDoesNotBlockOthers(t *testing.T) {
	f := newFixture(t, devManifest)
	f.mkWorkspaceDirs(t, "ckeditor5-core", "ckeditor5-devtest")
	statusErr := &git.Error{Args: []string{"status"}, Stderr: "not a git repository"}
	f.git.statusErr = map[string]error{"ckeditor5-core": statusErr}

	b, err := f.runner.Status(parseManifest(t, devManifest))
	require.NoError(t, err)

	require.Len(t, f.sink.errs, 1)
	var ge *git.Error
	assert.True(t, errors.As(f.sink.errs[0], &ge))
	require.Len(t, f.sink.out, 1)
	assert.True(t, strings.HasPrefix(f.sink.out[0], "ckeditor5-devtest\n"))
	assert.Equal(t, []string{"ckeditor5-core"}, b.Failed)
}

func TestPush_pushesEachDevRepository(t *testing.T) {
	f := newFixture(t, devManifest)
	f.mkWorkspaceDirs(t, "ckeditor5-core", "ckeditor5-devtest")
	f.git.pushErr = map[string]error{"ckeditor5-devtest": errors.New("rejected")}

	b, err := f.runner.Push(parseManifest(t, devManifest))
	require.NoError(t, err)

	assert.Equal(t, 2, f.git.count("push"))
	assert.Equal(t, []string{"ckeditor5-core"}, b.Done)
	assert.Equal(t, []string{"ckeditor5-devtest"}, b.Failed)
	assert.Len(t, f.sink.errs, 1)
}

func TestLogger_nilSinksAreIgnored(t *testing.T) {
	var l Logger
	l.out("ignored %d", 1)
	l.err(errors.New("ignored"))
}

func TestNewLogger(t *testing.T) {
	var out, errw strings.Builder
	l := NewLogger(&out, &errw, nil)

	l.Out("output")
	l.Err(errors.New("link failed"))

	assert.Equal(t, "output\n", out.String())
	assert.Equal(t, "error: link failed\n", errw.String())
}

func TestNewLogger_styledErrors(t *testing.T) {
	var out, errw strings.Builder
	l := NewLogger(&out, &errw, func(s string) string { return "[" + s + "]" })

	l.Err(errors.New("push rejected"))

	assert.Equal(t, "[error: push rejected]\n", errw.String())
}
