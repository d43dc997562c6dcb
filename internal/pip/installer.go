// SPDX-License-Identifier: MPL-2.0

package pip

import (
	"context"
	"fmt"
	"io"

	"pyboot-cli/internal/execrun"
	"pyboot-cli/internal/issue"
	"pyboot-cli/internal/pyenv"
)

// Installer ensures the manifest's dependency set is installed in the
// active virtual environment. The fast path never touches pip: when the
// probe reports the environment as satisfied, installation is skipped
// entirely.
type Installer struct {
	// Runner executes pip inside the venv.
	Runner execrun.Runner
	// Probe decides whether installation can be skipped.
	Probe Probe
	// ManifestPath is the requirements file handed to pip. Its contents are
	// opaque here; resolution is pip's job.
	ManifestPath string
	// Stdout and Stderr receive pip's console output so the operator sees
	// download progress for this network-bound step.
	Stdout io.Writer
	Stderr io.Writer
}

// EnsureInstalled makes the environment satisfy the manifest. It reports
// whether installation actually ran. On a probe hit nothing is executed.
// On a miss, pip itself is upgraded first, then the manifest is installed;
// a non-zero exit from either step aborts the run. The installed set is
// trusted afterwards, not re-verified package by package.
func (i *Installer) EnsureInstalled(ctx context.Context, env *pyenv.ActiveEnv) (installed bool, err error) {
	satisfied, probeErr := i.Probe.Satisfied(ctx, env)
	if probeErr == nil && satisfied {
		return false, nil
	}
	// A probe error is deliberately not fatal: reinstalling is safe,
	// skipping on bad information is not.

	if err := i.runPip(ctx, env, "install", "--upgrade", "pip"); err != nil {
		return false, issue.NewErrorContext().
			WithOperation("upgrade pip").
			WithResource(env.Root).
			WithSuggestion("Check your network connection").
			Wrap(err).
			BuildError()
	}

	if err := i.runPip(ctx, env, "install", "-r", i.ManifestPath); err != nil {
		return false, issue.NewErrorContext().
			WithOperation("install dependencies").
			WithResource(i.ManifestPath).
			WithSuggestion("Check your network connection (pip downloads from PyPI)").
			WithSuggestion("Read pip's output above for the failing package").
			Wrap(err).
			BuildError()
	}

	if err := i.Probe.Commit(env); err != nil {
		return true, issue.WrapWithOperation(err, "record installed dependency set")
	}
	return true, nil
}

func (i *Installer) runPip(ctx context.Context, env *pyenv.ActiveEnv, args ...string) error {
	spec := execrun.Spec{
		Path:   env.Python,
		Args:   append([]string{"-m", "pip"}, args...),
		Env:    env.Env,
		Stdout: i.Stdout,
		Stderr: i.Stderr,
	}
	result := i.Runner.Run(ctx, spec)
	if result.Error != nil {
		return result.Error
	}
	if !result.ExitCode.IsSuccess() {
		return fmt.Errorf("pip exited with status %s", result.ExitCode)
	}
	return nil
}
