// SPDX-License-Identifier: MPL-2.0

// Package hook executes the optional pre-launch shell snippet from the tool
// configuration using the embedded POSIX shell interpreter, so hooks behave
// identically on every platform without depending on a system shell.
package hook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"pyboot-cli/internal/execrun"
)

// Runner executes hook scripts inside the activated environment.
type Runner struct {
	// Dir is the working directory for the hook.
	Dir string
	// Stdin, Stdout, Stderr wire the hook to the operator's console.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run parses and executes script with env as the full hook environment in
// KEY=VALUE form (the activated overlay, so `python` and `pip` resolve into
// the venv). The returned Result mirrors execrun semantics: non-zero shell
// exit lands in ExitCode with a nil Error, parse and interpreter failures
// land in Error.
func (r *Runner) Run(ctx context.Context, script string, env []string) *execrun.Result {
	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "pre_launch")
	if err != nil {
		return execrun.NewErrorResult(1, fmt.Errorf("hook syntax error: %w", err))
	}

	opts := []interp.RunnerOption{
		interp.Dir(r.Dir),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(r.Stdin, r.Stdout, r.Stderr),
	}
	runner, err := interp.New(opts...)
	if err != nil {
		return execrun.NewErrorResult(1, fmt.Errorf("failed to create hook interpreter: %w", err))
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return execrun.NewExitCodeResult(execrun.ExitCode(exitStatus))
		}
		return execrun.NewErrorResult(1, fmt.Errorf("hook execution failed: %w", err))
	}
	return execrun.NewSuccessResult()
}
