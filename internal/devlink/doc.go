// Package devlink implements the commands that keep development checkouts
// of a project's dependencies in sync with the project: Install adds one
// repository, and Relink, Status and Push act on every dev-linked
// dependency. External tools are reached through the Git, PackageManager
// and Linker interfaces so the commands can run against fakes.
package devlink
