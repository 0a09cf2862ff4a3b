package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// setupProject creates <tmp>/project/package.json with the given body and an
// empty sibling <tmp>/workspace. Returns both paths.
func setupProject(t *testing.T, body string) (project, ws string) {
	t.Helper()
	base := t.TempDir()
	project = filepath.Join(base, "project")
	ws = filepath.Join(base, "workspace")
	for _, d := range []string{project, ws} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(project, "package.json"), []byte(body), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	return project, ws
}

// execute runs the root command and returns its stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// fakePackageManager installs a script that records install invocations in
// <dir>/.installed and points DEVLINK_PACKAGE_MANAGER at it.
func fakePackageManager(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	bin := filepath.Join(t.TempDir(), "fake-npm")
	script := "#!/bin/sh\nif [ \"$1\" = install ]; then touch .installed; fi\n"
	if err := os.WriteFile(bin, []byte(script), 0755); err != nil { //nolint:gosec // test executable
		t.Fatal(err)
	}
	t.Setenv("DEVLINK_PACKAGE_MANAGER", bin)
}
