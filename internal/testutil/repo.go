package testutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// CreatePackageRepo creates a bare git repository containing a package.json
// that declares the given package name. Returns the path to the bare repo.
func CreatePackageRepo(t *testing.T, name string) string {
	t.Helper()
	return createPackageRepo(t, name, "")
}

// CreatePackageRepoWithBranch is like CreatePackageRepo but also pushes
// branch, which carries one extra commit on top of main.
func CreatePackageRepoWithBranch(t *testing.T, name, branch string) string {
	t.Helper()
	return createPackageRepo(t, name, branch)
}

// WritePackage writes dir/package.json declaring name, creating dir.
func WritePackage(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := fmt.Sprintf("{\n  \"name\": %q,\n  \"version\": \"0.0.1\"\n}\n", name)
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(content), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
}

func createPackageRepo(t *testing.T, name, branch string) string {
	dir := t.TempDir()
	bare := filepath.Join(dir, name+".git")

	// Create a working repo first, then clone it bare.
	work := filepath.Join(dir, "work")
	run(t, dir, "git", "init", "-b", "main", work)
	configure(t, work)

	WritePackage(t, work, name)
	run(t, work, "git", "add", ".")
	run(t, work, "git", "commit", "-m", "initial commit")

	if branch != "" {
		run(t, work, "git", "checkout", "-b", branch)
		f := filepath.Join(work, "feature.txt")
		if err := os.WriteFile(f, []byte("feature\n"), 0644); err != nil { //nolint:gosec // test file
			t.Fatal(err)
		}
		run(t, work, "git", "add", ".")
		run(t, work, "git", "commit", "-m", "feature commit")

		// Switch back to main so the bare repo's HEAD points to main.
		run(t, work, "git", "checkout", "main")
	}

	run(t, dir, "git", "clone", "--bare", work, bare)
	return bare
}

// CloneWorking clones bare into dest and sets a commit identity, so tests can
// commit and push from it.
func CloneWorking(t *testing.T, bare, dest string) {
	t.Helper()
	run(t, filepath.Dir(dest), "git", "clone", bare, dest)
	configure(t, dest)
}

func configure(t *testing.T, dir string) {
	t.Helper()
	run(t, dir, "git", "config", "user.email", "test@example.com")
	run(t, dir, "git", "config", "user.name", "Test")
}

func run(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("command %s %v failed: %v", name, args, err)
	}
}
