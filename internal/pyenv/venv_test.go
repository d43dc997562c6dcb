// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pyboot-cli/internal/execrun"
	"pyboot-cli/internal/issue"
	"pyboot-cli/internal/testutil"
)

func TestEnsureSkipsExistingVenv(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	runner := &testutil.FakeRunner{}
	p := &Provisioner{Runner: runner}

	created, err := p.Ensure(context.Background(), Interpreter{Path: "/usr/bin/python3"}, root)
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if created {
		t.Error("Ensure() created = true for an existing root")
	}
	if len(runner.Calls) != 0 {
		t.Errorf("Ensure() invoked the creation primitive %d times for an existing root", len(runner.Calls))
	}
}

func TestEnsureCreatesMissingVenv(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), ".venv")
	runner := &testutil.FakeRunner{}
	p := &Provisioner{Runner: runner}

	created, err := p.Ensure(context.Background(), Interpreter{Path: "/usr/bin/python3"}, root)
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if !created {
		t.Error("Ensure() created = false for a missing root")
	}
	if len(runner.Calls) != 1 {
		t.Fatalf("Ensure() invoked the creation primitive %d times, want 1", len(runner.Calls))
	}

	call := runner.Calls[0]
	if call.Path != "/usr/bin/python3" || !testutil.HasArg(call, "venv") || !testutil.HasArg(call, root) {
		t.Errorf("Ensure() invoked %s %v, want <python> -m venv %s", call.Path, call.Args, root)
	}
}

func TestEnsureSurfacesCreationFailure(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), ".venv")
	runner := &testutil.FakeRunner{
		Stub: func(execrun.Spec) (*execrun.Result, string) {
			return execrun.NewExitCodeResult(1), ""
		},
	}
	p := &Provisioner{Runner: runner}

	_, err := p.Ensure(context.Background(), Interpreter{Path: "/usr/bin/python3"}, root)
	if err == nil {
		t.Fatal("Ensure() = nil error for a failed creation")
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("Ensure() error type = %T, want *issue.ActionableError", err)
	}
}

func TestEnsureRejectsFileInTheWay(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), ".venv")
	if err := os.WriteFile(root, []byte("not a dir"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := &Provisioner{Runner: &testutil.FakeRunner{}}

	if _, err := p.Ensure(context.Background(), Interpreter{Path: "python3"}, root); err == nil {
		t.Error("Ensure() = nil error when a regular file occupies the venv root")
	}
}
