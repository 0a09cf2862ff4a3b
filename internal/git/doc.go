// Package git wraps the git command line for the operations devlink runs
// against development repositories: clone, checkout, push and status, plus
// the HEAD and dirty-state queries used by list and doctor. Every failed
// invocation is reported as an *Error carrying git's stderr.
package git
