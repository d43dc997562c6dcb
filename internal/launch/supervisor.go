// SPDX-License-Identifier: MPL-2.0

// Package launch runs the target application as the pipeline's final,
// foreground step and relays its exit status unchanged.
package launch

import (
	"context"
	"fmt"
	"io"

	"pyboot-cli/internal/execrun"
	"pyboot-cli/internal/pyenv"
)

// Category is a coarse failure classification for operator-facing hints.
// The supervisor does not diagnose which cause actually occurred — a
// non-zero exit is always CategoryUnknown and the operator gets the full
// undifferentiated hint list.
type Category int

const (
	CategoryOK Category = iota
	CategoryConfigOrNetwork
	CategoryPortConflict
	CategoryUnknown
)

// String returns a short label for logs.
func (c Category) String() string {
	switch c {
	case CategoryOK:
		return "ok"
	case CategoryConfigOrNetwork:
		return "config-or-network"
	case CategoryPortConflict:
		return "port-conflict"
	default:
		return "unknown"
	}
}

// Result is the launch outcome: the application's own exit status,
// passed through, plus its classification.
type Result struct {
	ExitCode execrun.ExitCode
	Category Category
}

// Classify maps an exit code to a Category. Output-based diagnosis (e.g.
// spotting "address already in use") is deliberately not attempted; the
// observed behavior to preserve is the static hint list.
func Classify(code execrun.ExitCode) Category {
	if code.IsSuccess() {
		return CategoryOK
	}
	return CategoryUnknown
}

// Supervisor launches the application entry point inside the activated
// environment, with the operator's console inherited end to end.
type Supervisor struct {
	// Runner executes the entry point.
	Runner execrun.Runner
	// Entrypoint is the application script, relative to WorkDir.
	Entrypoint string
	// WorkDir is the project directory the application runs from.
	WorkDir string
	// AppURL, when set, is announced to the operator right before launch.
	// The supervisor never verifies the bind actually succeeded; that is
	// inferred from the exit status alone.
	AppURL string
	// Stdin, Stdout, Stderr are the operator's console streams. The
	// application owns them until it exits; nothing is buffered or captured.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Launch runs the entry point synchronously and returns its exit status
// unreinterpreted. Interrupt signals are not intercepted here; the operator
// talks to the application directly and this process just observes the
// resulting status.
func (s *Supervisor) Launch(ctx context.Context, env *pyenv.ActiveEnv) Result {
	if s.AppURL != "" && s.Stdout != nil {
		fmt.Fprintf(s.Stdout, "Starting %s, app URL: %s\n", s.Entrypoint, s.AppURL)
	}
	result := s.Runner.Run(ctx, execrun.Spec{
		Path:   env.Python,
		Args:   []string{s.Entrypoint},
		Dir:    s.WorkDir,
		Env:    env.Env,
		Stdin:  s.Stdin,
		Stdout: s.Stdout,
		Stderr: s.Stderr,
	})
	return Result{
		ExitCode: result.ExitCode,
		Category: Classify(result.ExitCode),
	}
}
