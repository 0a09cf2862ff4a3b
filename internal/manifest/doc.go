// Package manifest reads and rewrites the project's package.json.
// Top-level keys keep their order and their values are preserved verbatim;
// only the dependencies mapping is interpreted. Rewrites go through Update,
// which sorts dependency keys and replaces the file atomically.
package manifest
