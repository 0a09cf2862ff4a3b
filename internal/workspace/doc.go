// Package workspace resolves the project and sibling workspace paths and
// computes the dev-linked set: the manifest dependencies that are checked
// out as directories in the workspace root. The workspace is rescanned on
// every call; nothing is cached.
package workspace
