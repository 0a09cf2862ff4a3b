// Package config loads devlink settings. Values come from built-in
// defaults, then an optional devlink.yaml in the project root, then
// DEVLINK_* environment variables (a .env file in the project root is
// loaded first when present). Command-line flags are applied by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the optional configuration file inside the project root.
const FileName = "devlink.yaml"

// Config holds the resolved settings.
type Config struct {
	// WorkspaceRoot is the sibling workspace directory, relative to the
	// project root unless absolute.
	WorkspaceRoot  string `yaml:"workspace_root,omitempty"`
	ModulesDir     string `yaml:"modules_dir,omitempty"`
	Manifest       string `yaml:"manifest,omitempty"`
	PackageManager string `yaml:"package_manager,omitempty"`
	Git            string `yaml:"git,omitempty"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		WorkspaceRoot:  "..",
		ModulesDir:     "node_modules",
		Manifest:       "package.json",
		PackageManager: "npm",
		Git:            "git",
	}
}

// Load resolves the configuration for the project at root.
func Load(root string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path) //nolint:gosec // path is inside the project root
	switch {
	case err == nil:
		if err := cfg.merge(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// A missing .env is fine; existing process variables take precedence.
	_ = godotenv.Load(filepath.Join(root, ".env"))
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(data []byte) error {
	var file Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config YAML: %w", err)
	}
	c.override(file)
	return nil
}

func (c *Config) override(o Config) {
	if o.WorkspaceRoot != "" {
		c.WorkspaceRoot = o.WorkspaceRoot
	}
	if o.ModulesDir != "" {
		c.ModulesDir = o.ModulesDir
	}
	if o.Manifest != "" {
		c.Manifest = o.Manifest
	}
	if o.PackageManager != "" {
		c.PackageManager = o.PackageManager
	}
	if o.Git != "" {
		c.Git = o.Git
	}
}

func (c *Config) applyEnvOverrides() {
	c.override(Config{
		WorkspaceRoot:  os.Getenv("DEVLINK_WORKSPACE_ROOT"),
		ModulesDir:     os.Getenv("DEVLINK_MODULES_DIR"),
		Manifest:       os.Getenv("DEVLINK_MANIFEST"),
		PackageManager: os.Getenv("DEVLINK_PACKAGE_MANAGER"),
		Git:            os.Getenv("DEVLINK_GIT"),
	})
}

// Validate checks that project-relative paths stay inside the project.
func (c *Config) Validate() error {
	if err := validateProjectPath(c.ModulesDir, "modules_dir"); err != nil {
		return err
	}
	if err := validateProjectPath(c.Manifest, "manifest"); err != nil {
		return err
	}
	if strings.TrimSpace(c.WorkspaceRoot) == "" {
		return fmt.Errorf("config: workspace_root must not be empty")
	}
	return nil
}

// validateProjectPath ensures a path is relative and does not escape the project.
func validateProjectPath(p, label string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("config: %s must not be empty", label)
	}
	if filepath.IsAbs(p) {
		return fmt.Errorf("config: %s: absolute path is not allowed: %s", label, p)
	}
	cleaned := filepath.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("config: %s: path must not escape the project (contains ..): %s", label, p)
	}
	return nil
}
