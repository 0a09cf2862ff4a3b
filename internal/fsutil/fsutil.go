// Package fsutil holds the small filesystem queries used to tell local
// package directories apart from remote specifiers, and the symlink helper
// that exposes a repository in the module-resolution directory.
package fsutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PackageFile is the package manifest file name inside a repository.
const PackageFile = "package.json"

// IsDirectory reports whether path exists and is a directory.
// Symlinks are followed.
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ReadPackageName returns the "name" declared in dir/package.json.
// It reports false if the file is missing, malformed, or has no name.
func ReadPackageName(dir string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(dir, PackageFile)) //nolint:gosec // dir comes from the user's own command line
	if err != nil {
		return "", false
	}
	var pkg struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil || pkg.Name == "" {
		return "", false
	}
	return pkg.Name, true
}

// Link makes dst a symlink to src, replacing whatever dst was before.
func Link(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
	}
	if _, err := os.Lstat(dst); err == nil {
		if err := os.RemoveAll(dst); err != nil {
			return fmt.Errorf("removing %s: %w", dst, err)
		}
	}
	if err := os.Symlink(src, dst); err != nil {
		return fmt.Errorf("linking %s to %s: %w", dst, src, err)
	}
	return nil
}

// Within reports whether path lies strictly inside root.
func Within(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil || rel == "." || filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// LinkTarget returns the absolute target of the symlink at path.
// It reports false when path is not a symlink.
func LinkTarget(path string) (string, bool) {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return "", false
	}
	target, err := os.Readlink(path)
	if err != nil {
		return "", false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return filepath.Clean(target), true
}
