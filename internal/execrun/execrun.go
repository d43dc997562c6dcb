// SPDX-License-Identifier: MPL-2.0

// Package execrun provides the synchronous child-process primitive used by
// every pipeline stage: run a command, stream or capture its output, and
// report its exit status as a typed Result.
package execrun

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
)

type (
	// Spec describes a single child-process invocation. It is an immutable
	// value: callers build a fresh Spec per invocation rather than mutating
	// a shared one.
	Spec struct {
		// Path is the program to execute (absolute path or PATH-resolvable name).
		Path string
		// Args are the program arguments, not including the program name.
		Args []string
		// Dir is the working directory. Empty means the caller's.
		Dir string
		// Env is the full child environment in KEY=VALUE form.
		// Nil means the child inherits the parent environment.
		Env []string
		// Stdin is the child's standard input. May be nil.
		Stdin io.Reader
		// Stdout is the child's standard output. May be nil.
		Stdout io.Writer
		// Stderr is the child's standard error. May be nil.
		Stderr io.Writer
	}

	// Runner executes child processes. The two methods differ only in where
	// output goes: Run streams to the Spec's writers (inherited console),
	// RunCapture collects combined stdout+stderr and returns it.
	Runner interface {
		Run(ctx context.Context, spec Spec) *Result
		RunCapture(ctx context.Context, spec Spec) (*Result, string)
	}

	// ExecRunner is the production Runner backed by os/exec.
	ExecRunner struct{}
)

// NewExecRunner creates the production runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the spec, wiring the child directly to the Spec's streams.
// A non-zero child exit is reported through Result.ExitCode with a nil
// Error; Error is reserved for failures to start or observe the process.
func (r *ExecRunner) Run(ctx context.Context, spec Spec) *Result {
	cmd := r.build(ctx, spec)
	cmd.Stdin = spec.Stdin
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return NewExitCodeResult(ExitCode(exitErr.ExitCode()))
		}
		return NewErrorResult(1, fmt.Errorf("failed to execute %s: %w", spec.Path, err))
	}
	return NewSuccessResult()
}

// RunCapture executes the spec and returns combined stdout+stderr alongside
// the Result. Used for short diagnostic invocations (version strings, import
// probes) where the output must not reach the operator's terminal.
func (r *ExecRunner) RunCapture(ctx context.Context, spec Spec) (*Result, string) {
	var buf bytes.Buffer

	cmd := r.build(ctx, spec)
	cmd.Stdin = spec.Stdin
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return NewExitCodeResult(ExitCode(exitErr.ExitCode())), buf.String()
		}
		return NewErrorResult(1, fmt.Errorf("failed to execute %s: %w", spec.Path, err)), buf.String()
	}
	return NewSuccessResult(), buf.String()
}

func (r *ExecRunner) build(ctx context.Context, spec Spec) *exec.Cmd {
	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}
	if spec.Env != nil {
		cmd.Env = spec.Env
	}
	return cmd
}
