// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"pyboot-cli/internal/envfile"
	"pyboot-cli/internal/execrun"
	"pyboot-cli/internal/launch"
	"pyboot-cli/internal/pyenv"
)

type (
	// Locator finds the system Python interpreter.
	Locator interface {
		Locate(ctx context.Context) (pyenv.Interpreter, error)
	}

	// Provisioner ensures the venv exists, reporting whether it created it.
	Provisioner interface {
		Ensure(ctx context.Context, interp pyenv.Interpreter, root string) (created bool, err error)
	}

	// ActivateFunc binds a venv root into an environment overlay.
	ActivateFunc func(root string, base []string) (*pyenv.ActiveEnv, error)

	// Installer guarantees the dependency set, reporting whether it ran.
	Installer interface {
		EnsureInstalled(ctx context.Context, env *pyenv.ActiveEnv) (installed bool, err error)
	}

	// HookRunner executes the optional pre-launch script inside the
	// activated environment.
	HookRunner interface {
		Run(ctx context.Context, script string, env []string) *execrun.Result
	}

	// Launcher runs the target application in the foreground.
	Launcher interface {
		Launch(ctx context.Context, env *pyenv.ActiveEnv) launch.Result
	}

	// Pipeline wires the six stages. Every collaborator is an interface so
	// tests substitute fakes and drive all five failure scenarios without
	// touching a real interpreter or network.
	Pipeline struct {
		Locator     Locator
		Provisioner Provisioner
		Activate    ActivateFunc
		Installer   Installer
		Hook        HookRunner
		Launcher    Launcher

		// WorkDir is the project directory.
		WorkDir string
		// EnvFileName is the secrets file checked for presence in WorkDir.
		EnvFileName string
		// EnvDirName is the venv directory name under WorkDir.
		EnvDirName string
		// PreLaunchScript is run through Hook when non-empty.
		PreLaunchScript string
		// BaseEnv is the inherited process environment handed to activation.
		BaseEnv []string
		// Log receives stage-by-stage diagnostics.
		Log *log.Logger
	}

	// Outcome is the terminal state of a run. ExitCode follows the process
	// contract: the application's own status when StageLaunch was reached,
	// 1 for any earlier abort.
	Outcome struct {
		ExitCode execrun.ExitCode
		Launch   launch.Result
		Run      Context
	}
)

// Run drives the state machine from START to a terminal state. A nil
// StageError means the application was launched and exited 0. A non-nil
// StageError identifies the aborting stage; the Outcome is still returned
// so callers can inspect how far the run got and with what exit code.
func (p *Pipeline) Run(ctx context.Context) (*Outcome, *StageError) {
	logger := p.Log
	if logger == nil {
		logger = log.Default()
	}

	rc := Context{WorkDir: p.WorkDir, BaseEnv: p.BaseEnv}
	abort := func(stage Stage, kind ErrorKind, err error) (*Outcome, *StageError) {
		logger.Error("pipeline aborted", "stage", stage, "kind", kind)
		return &Outcome{ExitCode: 1, Run: rc}, newStageError(stage, kind, err)
	}

	// Stage 1: locate interpreter.
	interp, err := p.Locator.Locate(ctx)
	if err != nil {
		return abort(StageLocateInterpreter, RuntimeMissing, err)
	}
	rc.Interpreter = interp
	logger.Info("interpreter located", "path", interp.Path, "version", interp.Version)

	// Stage 2: secrets file presence. Observed only, never touched.
	rc.ConfigArtifact = envfile.Check(p.WorkDir, p.EnvFileName)
	if !rc.ConfigArtifact.Exists {
		return abort(StageCheckConfig, ConfigMissing,
			fmt.Errorf("%s not found", rc.ConfigArtifact.Path))
	}
	logger.Debug("config artifact present", "path", rc.ConfigArtifact.Path)

	// Stage 3: provision venv (idempotent).
	rc.EnvRoot = filepath.Join(p.WorkDir, p.EnvDirName)
	created, err := p.Provisioner.Ensure(ctx, interp, rc.EnvRoot)
	if err != nil {
		return abort(StageProvisionEnv, ProvisioningFailed, err)
	}
	rc.EnvCreated = created
	if created {
		logger.Info("virtual environment created", "root", rc.EnvRoot)
	} else {
		logger.Debug("virtual environment reused", "root", rc.EnvRoot)
	}

	// Stage 4: activate.
	active, err := p.Activate(rc.EnvRoot, p.BaseEnv)
	if err != nil {
		return abort(StageActivateEnv, ActivationFailed, err)
	}
	rc.Active = active
	logger.Debug("environment activated", "python", active.Python)

	// Stage 5: ensure dependencies (fast path skips installation).
	installed, err := p.Installer.EnsureInstalled(ctx, active)
	if err != nil {
		return abort(StageEnsureDependencies, InstallationFailed, err)
	}
	rc.DepsInstalled = installed
	if installed {
		logger.Info("dependencies installed")
	} else {
		logger.Debug("dependencies already satisfied")
	}

	// Optional pre-launch hook.
	if p.PreLaunchScript != "" && p.Hook != nil {
		if result := p.Hook.Run(ctx, p.PreLaunchScript, active.Env); !result.Ok() {
			err := result.Error
			if err == nil {
				err = fmt.Errorf("pre-launch hook exited with status %s", result.ExitCode)
			}
			return abort(StagePreLaunchHook, HookFailed, err)
		}
		logger.Debug("pre-launch hook completed")
	}

	// Stage 6: launch. The exit status passes through unreinterpreted.
	result := p.Launcher.Launch(ctx, active)
	outcome := &Outcome{ExitCode: result.ExitCode, Launch: result, Run: rc}
	if !result.ExitCode.IsSuccess() {
		logger.Error("application exited with error", "code", result.ExitCode)
		return outcome, newStageError(StageLaunch, LaunchFailed,
			fmt.Errorf("application exited with status %s", result.ExitCode))
	}
	logger.Info("application exited cleanly")
	return outcome, nil
}
