// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"pyboot-cli/internal/execrun"
	"pyboot-cli/internal/issue"
)

// Interpreter is a located Python runtime: where it lives and what it
// reports about itself. Version is display-only; the pipeline never
// branches on it.
type Interpreter struct {
	Path    string
	Version string
}

// DefaultCandidates returns the interpreter binary names probed in order.
// The first PATH hit wins.
func DefaultCandidates() []string {
	if runtime.GOOS == "windows" {
		return []string{"python", "py", "python3"}
	}
	return []string{"python3", "python"}
}

// Locator finds a Python interpreter on the execution PATH.
type Locator struct {
	// Candidates are the binary names to probe, in order.
	Candidates []string
	// Runner executes the version query.
	Runner execrun.Runner

	// lookPath is swapped out in tests.
	lookPath func(file string) (string, error)
}

// NewLocator creates a Locator with the platform default candidate list.
func NewLocator(runner execrun.Runner) *Locator {
	return &Locator{
		Candidates: DefaultCandidates(),
		Runner:     runner,
		lookPath:   exec.LookPath,
	}
}

// Locate probes the PATH for the first available candidate and captures its
// version string for display. A miss on every candidate is fatal for the
// whole run; the returned error carries the install guidance.
func (l *Locator) Locate(ctx context.Context) (Interpreter, error) {
	lookPath := l.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	for _, candidate := range l.Candidates {
		path, err := lookPath(candidate)
		if err != nil {
			continue
		}
		return Interpreter{Path: path, Version: l.queryVersion(ctx, path)}, nil
	}

	return Interpreter{}, issue.NewErrorContext().
		WithOperation("locate Python interpreter").
		WithResource(strings.Join(l.Candidates, ", ")).
		WithSuggestion("Install Python 3.10+ from https://www.python.org/downloads/").
		WithSuggestion("Make sure the python binary's directory is on your PATH").
		Wrap(fmt.Errorf("no interpreter found on PATH")).
		BuildError()
}

// queryVersion asks the interpreter for its version banner. Failures are
// tolerated: a located interpreter with an unknown version is still usable.
func (l *Locator) queryVersion(ctx context.Context, path string) string {
	if l.Runner == nil {
		return ""
	}
	result, output := l.Runner.RunCapture(ctx, execrun.Spec{
		Path: path,
		Args: []string{"--version"},
	})
	if !result.Ok() {
		return ""
	}
	return strings.TrimSpace(output)
}
