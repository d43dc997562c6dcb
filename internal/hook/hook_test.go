// SPDX-License-Identifier: MPL-2.0

package hook

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRunExecutesScript(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	r := &Runner{
		Dir:    t.TempDir(),
		Stdout: &stdout,
	}

	result := r.Run(context.Background(), `echo "$GREETING from hook"`, []string{"GREETING=hello"})
	if !result.Ok() {
		t.Fatalf("Run() = %+v, want success", result)
	}
	if got := strings.TrimSpace(stdout.String()); got != "hello from hook" {
		t.Errorf("hook output = %q, want environment expansion from the overlay", got)
	}
}

func TestRunReportsExitStatus(t *testing.T) {
	t.Parallel()

	r := &Runner{Dir: t.TempDir()}
	result := r.Run(context.Background(), "exit 7", nil)

	if result.Error != nil {
		t.Fatalf("Run() error = %v, want nil for a plain non-zero exit", result.Error)
	}
	if result.ExitCode != 7 {
		t.Errorf("Run() exit code = %d, want 7", result.ExitCode)
	}
}

func TestRunRejectsBadSyntax(t *testing.T) {
	t.Parallel()

	r := &Runner{Dir: t.TempDir()}
	result := r.Run(context.Background(), "if then fi (", nil)

	if result.Error == nil {
		t.Error("Run() = nil error for an unparseable script")
	}
}
