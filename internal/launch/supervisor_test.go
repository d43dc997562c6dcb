// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"pyboot-cli/internal/execrun"
	"pyboot-cli/internal/pyenv"
	"pyboot-cli/internal/testutil"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code execrun.ExitCode
		want Category
	}{
		{0, CategoryOK},
		{1, CategoryUnknown},
		{137, CategoryUnknown},
	}

	for _, tt := range tests {
		if got := Classify(tt.code); got != tt.want {
			t.Errorf("Classify(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestLaunchPassesExitCodeThrough(t *testing.T) {
	t.Parallel()

	runner := &testutil.FakeRunner{
		Stub: func(execrun.Spec) (*execrun.Result, string) {
			return execrun.NewExitCodeResult(1), ""
		},
	}
	s := &Supervisor{Runner: runner, Entrypoint: "web_app.py", WorkDir: "/proj"}
	env := &pyenv.ActiveEnv{Python: "/proj/.venv/bin/python", Env: []string{"VIRTUAL_ENV=/proj/.venv"}}

	result := s.Launch(context.Background(), env)

	if result.ExitCode != 1 {
		t.Errorf("Launch() exit code = %d, want the app's own status 1", result.ExitCode)
	}
	if result.Category != CategoryUnknown {
		t.Errorf("Launch() category = %v, want CategoryUnknown", result.Category)
	}

	call := runner.Calls[0]
	if call.Path != env.Python {
		t.Errorf("Launch() ran %s, want the venv interpreter", call.Path)
	}
	if len(call.Args) != 1 || call.Args[0] != "web_app.py" {
		t.Errorf("Launch() args = %v, want the bare entry point", call.Args)
	}
	if call.Dir != "/proj" {
		t.Errorf("Launch() dir = %q, want the project directory", call.Dir)
	}
}

func TestLaunchAnnouncesAppURL(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := &Supervisor{
		Runner:     &testutil.FakeRunner{},
		Entrypoint: "web_app.py",
		AppURL:     "http://127.0.0.1:5000",
		Stdout:     &out,
	}

	s.Launch(context.Background(), &pyenv.ActiveEnv{Python: "python"})

	banner := out.String()
	if !strings.Contains(banner, "web_app.py") || !strings.Contains(banner, "http://127.0.0.1:5000") {
		t.Errorf("banner = %q, want the entry point and URL announced", banner)
	}
}

func TestLaunchNoBannerWithoutURL(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := &Supervisor{Runner: &testutil.FakeRunner{}, Entrypoint: "web_app.py", Stdout: &out}

	s.Launch(context.Background(), &pyenv.ActiveEnv{Python: "python"})

	if out.Len() != 0 {
		t.Errorf("expected no banner without a configured URL, got %q", out.String())
	}
}

func TestLaunchSuccess(t *testing.T) {
	t.Parallel()

	s := &Supervisor{Runner: &testutil.FakeRunner{}, Entrypoint: "web_app.py"}
	result := s.Launch(context.Background(), &pyenv.ActiveEnv{Python: "python"})

	if result.ExitCode != 0 || result.Category != CategoryOK {
		t.Errorf("Launch() = %+v, want a clean pass-through of exit 0", result)
	}
}
