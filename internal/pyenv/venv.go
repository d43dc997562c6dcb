// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"context"
	"fmt"
	"io"
	"os"

	"pyboot-cli/internal/execrun"
	"pyboot-cli/internal/issue"
)

// Provisioner creates the project's virtual environment when it does not
// exist yet. Creation is idempotent: an existing root is left untouched,
// never recreated or overwritten.
type Provisioner struct {
	// Runner executes the venv creation command.
	Runner execrun.Runner
	// Stdout and Stderr receive the creation command's output so the
	// operator sees progress for this filesystem-bound step.
	Stdout io.Writer
	Stderr io.Writer
}

// Ensure guarantees a virtual environment exists at root. It reports whether
// this call created it. The interpreter must already be located (it runs
// `<python> -m venv <root>`).
func (p *Provisioner) Ensure(ctx context.Context, interp Interpreter, root string) (created bool, err error) {
	info, statErr := os.Stat(root)
	switch {
	case statErr == nil:
		if !info.IsDir() {
			return false, issue.NewErrorContext().
				WithOperation("create virtual environment").
				WithResource(root).
				WithSuggestion("A regular file is in the way; move or delete it and rerun").
				Wrap(fmt.Errorf("%s exists but is not a directory", root)).
				BuildError()
		}
		return false, nil
	case !os.IsNotExist(statErr):
		return false, issue.WrapWithOperation(statErr, "inspect virtual environment root")
	}

	result := p.Runner.Run(ctx, execrun.Spec{
		Path:   interp.Path,
		Args:   []string{"-m", "venv", root},
		Stdout: p.Stdout,
		Stderr: p.Stderr,
	})
	if !result.Ok() {
		cause := result.Error
		if cause == nil {
			cause = fmt.Errorf("venv creation exited with status %s", result.ExitCode)
		}
		return false, issue.NewErrorContext().
			WithOperation("create virtual environment").
			WithResource(root).
			WithSuggestion("Check free disk space and directory permissions").
			WithSuggestion("Delete any half-created " + root + " directory and rerun").
			Wrap(cause).
			BuildError()
	}
	return true, nil
}
