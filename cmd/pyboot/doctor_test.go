// SPDX-License-Identifier: MPL-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	present := filepath.Join(dir, "requirements.txt")
	if err := os.WriteFile(present, []byte("flask\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		ok   bool
	}{
		{name: "present regular file", path: present, ok: true},
		{name: "missing file", path: filepath.Join(dir, "nope.txt"), ok: false},
		{name: "directory is not a file", path: dir, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileCheck("x", tt.path); got.ok != tt.ok {
				t.Errorf("fileCheck(%q).ok = %v, want %v", tt.path, got.ok, tt.ok)
			}
		})
	}
}

func TestRenderChecks_AllPassing(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ready := renderChecks(&buf, []checkResult{
		{name: "python interpreter", ok: true, detail: "/usr/bin/python3"},
		{name: "secrets file", ok: true, detail: ".env"},
	})

	if !ready {
		t.Error("renderChecks() = false, want true")
	}
	if !strings.Contains(buf.String(), "All checks passed") {
		t.Errorf("missing success summary: %q", buf.String())
	}
}

func TestRenderChecks_OneFailing(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ready := renderChecks(&buf, []checkResult{
		{name: "python interpreter", ok: true, detail: "/usr/bin/python3"},
		{name: "secrets file", ok: false, detail: ".env"},
	})

	if ready {
		t.Error("renderChecks() = true, want false")
	}
	out := buf.String()
	if !strings.Contains(out, "Some checks failed") {
		t.Errorf("missing failure summary: %q", out)
	}
	if !strings.Contains(out, "secrets file") {
		t.Errorf("missing failed check name: %q", out)
	}
}
