// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"pyboot-cli/internal/execrun"
	"pyboot-cli/internal/launch"
	"pyboot-cli/internal/pyenv"
)

type fakeLocator struct {
	interp pyenv.Interpreter
	err    error
	calls  int
}

func (f *fakeLocator) Locate(context.Context) (pyenv.Interpreter, error) {
	f.calls++
	return f.interp, f.err
}

type fakeProvisioner struct {
	created bool
	err     error
	calls   int
	roots   []string
}

func (f *fakeProvisioner) Ensure(_ context.Context, _ pyenv.Interpreter, root string) (bool, error) {
	f.calls++
	f.roots = append(f.roots, root)
	return f.created, f.err
}

type fakeInstaller struct {
	installed bool
	err       error
	calls     int
}

func (f *fakeInstaller) EnsureInstalled(context.Context, *pyenv.ActiveEnv) (bool, error) {
	f.calls++
	return f.installed, f.err
}

type fakeHook struct {
	result  *execrun.Result
	scripts []string
}

func (f *fakeHook) Run(_ context.Context, script string, _ []string) *execrun.Result {
	f.scripts = append(f.scripts, script)
	if f.result != nil {
		return f.result
	}
	return execrun.NewSuccessResult()
}

type fakeLauncher struct {
	code  execrun.ExitCode
	calls int
}

func (f *fakeLauncher) Launch(context.Context, *pyenv.ActiveEnv) launch.Result {
	f.calls++
	return launch.Result{ExitCode: f.code, Category: launch.Classify(f.code)}
}

func activateOK(root string, base []string) (*pyenv.ActiveEnv, error) {
	return &pyenv.ActiveEnv{Root: root, Python: filepath.Join(root, "bin", "python"), Env: base}, nil
}

// fixture builds a pipeline over a temp project dir with all-green fakes.
// Individual tests break the stage they are exercising.
func fixture(t *testing.T, withEnvFile bool) (*Pipeline, *fakeLocator, *fakeProvisioner, *fakeInstaller, *fakeLauncher) {
	t.Helper()

	dir := t.TempDir()
	if withEnvFile {
		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("API_KEY=x\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	locator := &fakeLocator{interp: pyenv.Interpreter{Path: "/usr/bin/python3", Version: "Python 3.12.1"}}
	provisioner := &fakeProvisioner{created: true}
	installer := &fakeInstaller{installed: true}
	launcher := &fakeLauncher{}

	p := &Pipeline{
		Locator:     locator,
		Provisioner: provisioner,
		Activate:    activateOK,
		Installer:   installer,
		Launcher:    launcher,
		WorkDir:     dir,
		EnvFileName: ".env",
		EnvDirName:  ".venv",
		BaseEnv:     []string{"PATH=/usr/bin"},
		Log:         log.New(io.Discard),
	}
	return p, locator, provisioner, installer, launcher
}

func TestRunAbortsWhenInterpreterMissing(t *testing.T) {
	t.Parallel()

	p, locator, provisioner, installer, launcher := fixture(t, true)
	locator.err = errors.New("no interpreter found on PATH")

	outcome, stageErr := p.Run(context.Background())

	if stageErr == nil || stageErr.Kind != RuntimeMissing || stageErr.Stage != StageLocateInterpreter {
		t.Fatalf("Run() error = %+v, want RuntimeMissing at locate-interpreter", stageErr)
	}
	if outcome.ExitCode != 1 {
		t.Errorf("Run() exit code = %d, want 1 for a pipeline-stage abort", outcome.ExitCode)
	}
	// Abort must come before any filesystem mutation.
	if provisioner.calls != 0 {
		t.Error("provisioner invoked after an interpreter-missing abort")
	}
	if installer.calls != 0 || launcher.calls != 0 {
		t.Error("later stages ran after an interpreter-missing abort")
	}
}

func TestRunAbortsWhenConfigArtifactMissing(t *testing.T) {
	t.Parallel()

	p, _, provisioner, _, _ := fixture(t, false)

	outcome, stageErr := p.Run(context.Background())

	if stageErr == nil || stageErr.Kind != ConfigMissing || stageErr.Stage != StageCheckConfig {
		t.Fatalf("Run() error = %+v, want ConfigMissing at check-config", stageErr)
	}
	if outcome.ExitCode != 1 {
		t.Errorf("Run() exit code = %d, want 1", outcome.ExitCode)
	}
	if provisioner.calls != 0 {
		t.Error("no environment may be created when the config artifact is missing")
	}
	// The artifact itself must remain absent: the check is side-effect free.
	if _, err := os.Stat(filepath.Join(p.WorkDir, ".env")); !os.IsNotExist(err) {
		t.Error("config artifact appeared during the run")
	}
}

func TestRunFirstTimeProvisionsInstallsAndLaunches(t *testing.T) {
	t.Parallel()

	p, locator, provisioner, installer, launcher := fixture(t, true)

	outcome, stageErr := p.Run(context.Background())

	if stageErr != nil {
		t.Fatalf("Run() error = %v, want clean first run", stageErr)
	}
	if outcome.ExitCode != 0 {
		t.Errorf("Run() exit code = %d, want 0", outcome.ExitCode)
	}
	if locator.calls != 1 || provisioner.calls != 1 || installer.calls != 1 || launcher.calls != 1 {
		t.Errorf("stage invocations = %d/%d/%d/%d, want each stage exactly once",
			locator.calls, provisioner.calls, installer.calls, launcher.calls)
	}
	if !outcome.Run.EnvCreated || !outcome.Run.DepsInstalled {
		t.Errorf("first run state = %+v, want environment created and dependencies installed", outcome.Run)
	}
	if want := filepath.Join(p.WorkDir, ".venv"); provisioner.roots[0] != want {
		t.Errorf("venv root = %q, want %q", provisioner.roots[0], want)
	}
}

func TestRunSecondTimeSkipsCreationAndInstallation(t *testing.T) {
	t.Parallel()

	p, _, provisioner, installer, launcher := fixture(t, true)
	provisioner.created = false
	installer.installed = false

	outcome, stageErr := p.Run(context.Background())

	if stageErr != nil {
		t.Fatalf("Run() error = %v, want clean repeat run", stageErr)
	}
	if outcome.Run.EnvCreated || outcome.Run.DepsInstalled {
		t.Errorf("repeat run state = %+v, want both creation and installation skipped", outcome.Run)
	}
	if launcher.calls != 1 {
		t.Errorf("launcher invoked %d times, want 1", launcher.calls)
	}
}

func TestRunPassesApplicationExitStatusThrough(t *testing.T) {
	t.Parallel()

	p, _, _, _, launcher := fixture(t, true)
	launcher.code = 1

	outcome, stageErr := p.Run(context.Background())

	if stageErr == nil || stageErr.Kind != LaunchFailed || stageErr.Stage != StageLaunch {
		t.Fatalf("Run() error = %+v, want LaunchFailed at launch", stageErr)
	}
	if outcome.ExitCode != 1 {
		t.Errorf("Run() exit code = %d, want the application's own status", outcome.ExitCode)
	}
	if outcome.Launch.Category != launch.CategoryUnknown {
		t.Errorf("launch category = %v, want undifferentiated CategoryUnknown", outcome.Launch.Category)
	}
}

func TestRunNonOneExitStatusIsPreserved(t *testing.T) {
	t.Parallel()

	p, _, _, _, launcher := fixture(t, true)
	launcher.code = 137

	outcome, _ := p.Run(context.Background())
	if outcome.ExitCode != 137 {
		t.Errorf("Run() exit code = %d, want 137 passed through unchanged", outcome.ExitCode)
	}
}

func TestRunAbortsOnActivationFailure(t *testing.T) {
	t.Parallel()

	p, _, _, installer, launcher := fixture(t, true)
	p.Activate = func(string, []string) (*pyenv.ActiveEnv, error) {
		return nil, errors.New("venv interpreter missing")
	}

	outcome, stageErr := p.Run(context.Background())

	if stageErr == nil || stageErr.Kind != ActivationFailed {
		t.Fatalf("Run() error = %+v, want ActivationFailed", stageErr)
	}
	if outcome.ExitCode != 1 {
		t.Errorf("Run() exit code = %d, want 1", outcome.ExitCode)
	}
	if installer.calls != 0 || launcher.calls != 0 {
		t.Error("later stages ran after an activation abort")
	}
}

func TestRunAbortsOnInstallationFailure(t *testing.T) {
	t.Parallel()

	p, _, _, installer, launcher := fixture(t, true)
	installer.err = errors.New("pip exited with status 1")

	_, stageErr := p.Run(context.Background())

	if stageErr == nil || stageErr.Kind != InstallationFailed {
		t.Fatalf("Run() error = %+v, want InstallationFailed", stageErr)
	}
	if launcher.calls != 0 {
		t.Error("application launched after an installation abort")
	}
}

func TestRunExecutesPreLaunchHook(t *testing.T) {
	t.Parallel()

	p, _, _, _, launcher := fixture(t, true)
	hook := &fakeHook{}
	p.Hook = hook
	p.PreLaunchScript = "echo warming up"

	_, stageErr := p.Run(context.Background())

	if stageErr != nil {
		t.Fatalf("Run() error = %v", stageErr)
	}
	if len(hook.scripts) != 1 || hook.scripts[0] != "echo warming up" {
		t.Errorf("hook scripts = %v, want the configured snippet exactly once", hook.scripts)
	}
	if launcher.calls != 1 {
		t.Error("application was not launched after a successful hook")
	}
}

func TestRunAbortsOnHookFailure(t *testing.T) {
	t.Parallel()

	p, _, _, _, launcher := fixture(t, true)
	p.Hook = &fakeHook{result: execrun.NewExitCodeResult(2)}
	p.PreLaunchScript = "exit 2"

	outcome, stageErr := p.Run(context.Background())

	if stageErr == nil || stageErr.Kind != HookFailed || stageErr.Stage != StagePreLaunchHook {
		t.Fatalf("Run() error = %+v, want HookFailed at pre-launch-hook", stageErr)
	}
	if outcome.ExitCode != 1 {
		t.Errorf("Run() exit code = %d, want 1", outcome.ExitCode)
	}
	if launcher.calls != 0 {
		t.Error("application launched despite a failed hook")
	}
}

func TestRunSkipsHookWhenUnconfigured(t *testing.T) {
	t.Parallel()

	p, _, _, _, _ := fixture(t, true)
	hook := &fakeHook{}
	p.Hook = hook // configured runner, empty script

	if _, stageErr := p.Run(context.Background()); stageErr != nil {
		t.Fatalf("Run() error = %v", stageErr)
	}
	if len(hook.scripts) != 0 {
		t.Errorf("hook ran %d times with no script configured, want 0", len(hook.scripts))
	}
}
