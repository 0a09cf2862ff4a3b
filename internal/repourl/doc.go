// Package repourl recognizes repository specifiers (GitHub shorthand and
// GitHub URLs with an optional #branch suffix) and turns them into a Ref.
// A specifier that is not recognized is a normal outcome, not an error.
package repourl
