// Package ui renders tabular command output.
package ui
