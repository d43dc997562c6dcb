// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"pyboot-cli/internal/issue"
)

// ActiveEnv is an activated virtual environment expressed as data: the venv
// layout plus the environment-variable overlay that makes child processes
// resolve the interpreter and packages from inside the venv. The parent
// process environment is never mutated.
type ActiveEnv struct {
	// Root is the venv directory.
	Root string
	// BinDir is the venv's executable directory (bin, or Scripts on Windows).
	BinDir string
	// Python is the venv's own interpreter.
	Python string
	// Env is the full child-process environment in KEY=VALUE form.
	Env []string
}

// binDirName returns the venv executable directory name for the host OS.
func binDirName() string {
	if runtime.GOOS == "windows" {
		return "Scripts"
	}
	return "bin"
}

// pythonBinaryName returns the interpreter binary name inside a venv.
func pythonBinaryName() string {
	if runtime.GOOS == "windows" {
		return "python.exe"
	}
	return "python"
}

// Activate binds root into an environment overlay derived from base
// (KEY=VALUE pairs, typically os.Environ()): VIRTUAL_ENV is set, the venv
// bin directory is prepended to PATH, and PYTHONHOME is dropped — the same
// rebinding a venv activate script performs, minus the shell. The venv must
// already exist and contain its interpreter; a hollow venv is an activation
// failure, and the remedy (deleting it) is left to the operator.
func Activate(root string, base []string) (*ActiveEnv, error) {
	binDir := filepath.Join(root, binDirName())
	python := filepath.Join(binDir, pythonBinaryName())

	if _, err := os.Stat(python); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("activate virtual environment").
			WithResource(root).
			WithSuggestion("Delete the " + root + " directory and rerun to recreate it").
			Wrap(fmt.Errorf("venv interpreter missing at %s: %w", python, err)).
			BuildError()
	}

	env := make([]string, 0, len(base)+2)
	pathSet := false
	for _, kv := range base {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		switch {
		case strings.EqualFold(key, "PATH") && runtime.GOOS == "windows",
			key == "PATH" && runtime.GOOS != "windows":
			env = append(env, key+"="+binDir+string(os.PathListSeparator)+value)
			pathSet = true
		case key == "PYTHONHOME" || key == "VIRTUAL_ENV":
			// dropped: PYTHONHOME breaks venv resolution, VIRTUAL_ENV is re-set below
		default:
			env = append(env, kv)
		}
	}
	if !pathSet {
		env = append(env, "PATH="+binDir)
	}
	env = append(env, "VIRTUAL_ENV="+root)

	return &ActiveEnv{
		Root:   root,
		BinDir: binDir,
		Python: python,
		Env:    env,
	}, nil
}
