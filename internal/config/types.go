// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ProbeImport selects the marker-package import heuristic (historical behavior).
	ProbeImport ProbeStrategy = "import"
	// ProbeManifest selects the requirements-hash receipt check.
	ProbeManifest ProbeStrategy = "manifest"
)

// ErrInvalidProbeStrategy is returned when a ProbeStrategy value is not recognized.
var ErrInvalidProbeStrategy = errors.New("invalid probe strategy")

type (
	// ProbeStrategy selects how the installer decides dependencies are present.
	ProbeStrategy string

	// Config holds the pyboot configuration.
	Config struct {
		// InterpreterCandidates are the interpreter binary names probed in order.
		// Empty means the platform default list.
		InterpreterCandidates []string `json:"interpreter_candidates" mapstructure:"interpreter_candidates"`
		// EnvFile is the secrets file checked for presence, relative to the project dir.
		EnvFile string `json:"env_file" mapstructure:"env_file"`
		// VenvDir is the virtual environment root, relative to the project dir.
		VenvDir string `json:"venv_dir" mapstructure:"venv_dir"`
		// Requirements is the dependency manifest handed to pip.
		Requirements string `json:"requirements" mapstructure:"requirements"`
		// MarkerPackage is the import-probe package name.
		MarkerPackage string `json:"marker_package" mapstructure:"marker_package"`
		// Entrypoint is the application script launched in the foreground.
		Entrypoint string `json:"entrypoint" mapstructure:"entrypoint"`
		// AppURL is shown to the operator right before launch.
		AppURL string `json:"app_url" mapstructure:"app_url"`
		// Probe selects the installed-dependencies check.
		Probe ProbeStrategy `json:"probe" mapstructure:"probe"`
		// Hooks configures optional lifecycle scripts.
		Hooks HooksConfig `json:"hooks" mapstructure:"hooks"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// HooksConfig holds optional shell snippets run by the embedded interpreter.
	HooksConfig struct {
		// PreLaunch runs after dependencies are ensured and before launch.
		// Empty means no hook.
		PreLaunch string `json:"pre_launch" mapstructure:"pre_launch"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables verbose output.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// IsValid returns whether the ProbeStrategy is a recognized value.
func (p ProbeStrategy) IsValid() bool {
	return p == ProbeImport || p == ProbeManifest
}

// DefaultConfig returns the built-in defaults: the conventional project
// layout the pipeline expects when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		EnvFile:       ".env",
		VenvDir:       ".venv",
		Requirements:  "requirements.txt",
		MarkerPackage: "flask",
		Entrypoint:    "web_app.py",
		AppURL:        "http://127.0.0.1:5000",
		Probe:         ProbeImport,
	}
}

// Validate checks constraints the CUE schema cannot express against loaded
// values that may bypass the schema (defaults, programmatic construction).
func (c *Config) Validate() error {
	if !c.Probe.IsValid() {
		return fmt.Errorf("%w: %q (must be %q or %q)", ErrInvalidProbeStrategy, c.Probe, ProbeImport, ProbeManifest)
	}
	for _, field := range []struct{ name, value string }{
		{"env_file", c.EnvFile},
		{"venv_dir", c.VenvDir},
		{"requirements", c.Requirements},
		{"marker_package", c.MarkerPackage},
		{"entrypoint", c.Entrypoint},
	} {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("config field %s must not be empty", field.name)
		}
	}
	return nil
}
