// SPDX-License-Identifier: MPL-2.0

package envfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		prepare func(t *testing.T, dir string)
		want    bool
	}{
		{
			name:    "missing file",
			prepare: func(t *testing.T, dir string) {},
			want:    false,
		},
		{
			name: "present file",
			prepare: func(t *testing.T, dir string) {
				if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("KEY=value\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
			want: true,
		},
		{
			name: "directory does not count",
			prepare: func(t *testing.T, dir string) {
				if err := os.Mkdir(filepath.Join(dir, ".env"), 0o755); err != nil {
					t.Fatal(err)
				}
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			tt.prepare(t, dir)

			artifact := Check(dir, ".env")
			if artifact.Exists != tt.want {
				t.Errorf("Check() exists = %v, want %v", artifact.Exists, tt.want)
			}
			if artifact.Path != filepath.Join(dir, ".env") {
				t.Errorf("Check() path = %q, want it under the project dir", artifact.Path)
			}
		})
	}
}

func TestCheckNeverCreatesTheArtifact(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_ = Check(dir, ".env")

	if _, err := os.Stat(filepath.Join(dir, ".env")); !os.IsNotExist(err) {
		t.Error("Check() left a .env behind; the check must be side-effect free")
	}
}
