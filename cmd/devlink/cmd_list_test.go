package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fbkclanna/devlink/internal/testutil"
)

func TestRunList_json(t *testing.T) {
	project, ws := setupProject(t, `{"dependencies": {"pkg-core": "org/pkg-core", "other": "1.2.3"}}`)
	bare := testutil.CreatePackageRepo(t, "pkg-core")
	testutil.CloneWorking(t, bare, filepath.Join(ws, "pkg-core"))

	if _, _, err := execute(t, "--root", project, "--workspace", ws, "relink"); err != nil {
		t.Fatalf("relink failed: %v", err)
	}

	stdout, _, err := execute(t, "--root", project, "--workspace", ws, "list", "--json")
	if err != nil {
		t.Fatalf("list --json failed: %v", err)
	}

	var repos []linkedRepo
	if err := json.Unmarshal([]byte(stdout), &repos); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(repos) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repos))
	}
	r := repos[0]
	if r.Name != "pkg-core" || r.Specifier != "org/pkg-core" {
		t.Errorf("unexpected entry: %+v", r)
	}
	if !r.Linked {
		t.Error("pkg-core should be linked")
	}
	if r.Branch != "main" {
		t.Errorf("branch = %q, want main", r.Branch)
	}
	if r.Dirty {
		t.Error("fresh clone should be clean")
	}
}

func TestRunList_table(t *testing.T) {
	project, ws := setupProject(t, `{"dependencies": {"pkg-core": "org/pkg-core"}}`)
	if err := os.MkdirAll(filepath.Join(ws, "pkg-core"), 0755); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execute(t, "--root", project, "--workspace", ws, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %q", stdout)
	}
	if !strings.HasPrefix(lines[1], "pkg-core") || !strings.Contains(lines[1], "no") {
		t.Errorf("unexpected row: %q", lines[1])
	}
}
