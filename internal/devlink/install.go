package devlink

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fbkclanna/devlink/internal/fsutil"
	"github.com/fbkclanna/devlink/internal/manifest"
	"github.com/fbkclanna/devlink/internal/repourl"
)

// source is a resolved install target.
type source struct {
	name     string // package name, workspace dir name and manifest key
	dir      string // repository directory
	cloneURL string // empty for local directories
	branch   string
	spec     string // value written to the manifest
}

// A resolver returns (nil, nil) when spec is not its kind of specifier.
type resolver func(r *Runner, spec string) (*source, error)

// Tried in order; the first match wins.
var resolvers = []resolver{
	resolveLocalPath,
	resolveURL,
	resolveRegistry,
}

// Install makes spec a dev-linked dependency: it locates or clones the
// repository, checks out the requested branch, installs its packages,
// links it into the modules dir and records it in the manifest.
// spec may be a local directory, a repository URL or a package name.
func (r *Runner) Install(spec string) error {
	src, err := r.resolve(spec)
	if err != nil {
		return err
	}
	if !validPackageName(src.name) {
		return &ConfigurationError{Spec: spec, Reason: fmt.Sprintf("invalid package name %q", src.name)}
	}

	if src.cloneURL != "" {
		if fsutil.IsDirectory(src.dir) {
			r.Log.out("Directory %s already exists.", src.dir)
		} else {
			r.Log.out("Cloning %s into %s...", src.name, src.dir)
			if err := r.Git.Clone(src.cloneURL, src.dir); err != nil {
				return fmt.Errorf("cloning %s: %w", src.name, err)
			}
		}

		if src.branch != "" {
			r.Log.out("Checking out %s to %s...", src.name, src.branch)
			if err := r.Git.Checkout(src.dir, src.branch); err != nil {
				return fmt.Errorf("checking out %s: %w", src.name, err)
			}
		}
	}

	r.Log.out("Installing packages in %s...", src.name)
	if err := r.Packages.Install(src.dir); err != nil {
		return fmt.Errorf("installing packages in %s: %w", src.name, err)
	}

	if err := r.link(src.name, src.dir); err != nil {
		return fmt.Errorf("linking %s: %w", src.name, err)
	}

	r.Log.out("Adding %s dependency to %s...", src.name, filepath.Base(r.Paths.ManifestPath))
	return manifest.Update(r.Paths.ManifestPath, func(f *manifest.File) error {
		if prev, ok := f.Dependencies.Get(src.name); ok && prev != src.spec {
			r.Log.out("Replacing %s dependency %q with %q.", src.name, prev, src.spec)
		}
		f.Dependencies.Set(src.name, src.spec)
		return nil
	})
}

// packageName matches "name" and "@scope/name". A leading dot is
// rejected, which rules out "." and "..".
var packageName = regexp.MustCompile(`^(?:@[A-Za-z0-9~-][\w.~-]*/)?[A-Za-z0-9~-][\w.~-]*$`)

func validPackageName(name string) bool {
	return packageName.MatchString(name)
}

func (r *Runner) resolve(spec string) (*source, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, &ConfigurationError{Spec: spec, Reason: "provide a valid repository URL, package name, or path"}
	}
	for _, res := range resolvers {
		src, err := res(r, spec)
		if err != nil {
			return nil, err
		}
		if src != nil {
			return src, nil
		}
	}
	return nil, &ConfigurationError{Spec: spec, Reason: "provide a valid repository URL, package name, or path"}
}

func resolveLocalPath(r *Runner, spec string) (*source, error) {
	dir := spec
	if !filepath.IsAbs(dir) {
		base := r.WorkDir
		if base == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("resolving working directory: %w", err)
			}
			base = wd
		}
		dir = filepath.Join(base, dir)
	}
	if !fsutil.IsDirectory(dir) {
		return nil, nil
	}

	name, ok := fsutil.ReadPackageName(dir)
	if !ok {
		return nil, &ConfigurationError{Spec: spec, Reason: fmt.Sprintf("no package name found in %s", filepath.Join(dir, fsutil.PackageFile))}
	}
	r.Log.out("Package %s located at %s.", name, dir)
	return &source{name: name, dir: dir, spec: spec}, nil
}

func resolveURL(r *Runner, spec string) (*source, error) {
	ref, ok := repourl.Parse(spec)
	if !ok {
		return nil, nil
	}
	return remoteSource(r, ref, spec), nil
}

func resolveRegistry(r *Runner, spec string) (*source, error) {
	r.Log.out("Not a repository URL. Looking up %s in the package registry...", spec)
	url, err := r.Packages.RepositoryURL(spec)
	if err != nil {
		return nil, &ConfigurationError{Spec: spec, Reason: "package lookup failed", Err: err}
	}
	if url == "" {
		return nil, &ConfigurationError{Spec: spec, Reason: "package declares no repository"}
	}
	ref, ok := repourl.Parse(url)
	if !ok {
		return nil, &ConfigurationError{Spec: spec, Reason: fmt.Sprintf("unrecognized repository URL %q", url)}
	}
	// The bare package name would be read back as a registry version, so
	// the manifest records the repository URL instead.
	return remoteSource(r, ref, url), nil
}

func remoteSource(r *Runner, ref *repourl.Ref, spec string) *source {
	return &source{
		name:     ref.Name,
		dir:      r.Paths.RepoDir(ref.Name),
		cloneURL: ref.CloneURL(),
		branch:   ref.Branch,
		spec:     spec,
	}
}
