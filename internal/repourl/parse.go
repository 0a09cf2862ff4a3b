package repourl

import (
	"regexp"
	"strings"
)

const defaultServer = "https://github.com/"

// Owners are word characters and dashes; repository names may also contain
// dots but must not start with one, so "./x" and "../x" never match.
var specPattern = regexp.MustCompile(
	`^((?:git@|(?:https?|git|ssh)://(?:git@)?)github\.com[/:])?` +
		`(([\w-]+)/([\w-][\w.-]*))` +
		`(?:#([\w./-]+))?$`,
)

// Ref identifies a development repository.
type Ref struct {
	Server     string // e.g. "git@github.com:" or "https://github.com/"
	Owner      string
	Name       string // repository name without ".git"
	Repository string // "owner/repo" as written, including any ".git"
	Branch     string // empty when no #branch was given
}

// CloneURL returns the URL passed to git clone.
func (r *Ref) CloneURL() string {
	return r.Server + r.Repository
}

// Parse recognizes spec as a repository specifier. It reports false for
// anything else, including semver ranges, bare package names and paths.
func Parse(spec string) (*Ref, bool) {
	spec = strings.TrimSpace(spec)
	m := specPattern.FindStringSubmatch(spec)
	if m == nil {
		return nil, false
	}

	name := strings.TrimSuffix(m[4], ".git")
	if name == "" {
		return nil, false
	}

	server := m[1]
	if server == "" {
		server = defaultServer
	}

	return &Ref{
		Server:     server,
		Owner:      m[3],
		Name:       name,
		Repository: m[2],
		Branch:     m[5],
	}, true
}
