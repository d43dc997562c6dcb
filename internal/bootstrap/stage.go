// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"fmt"

	"pyboot-cli/internal/issue"
)

type (
	// Stage identifies a step of the linear pipeline.
	Stage int

	// ErrorKind is the failure taxonomy: exactly one kind per stage that can
	// fail, each mapping to a fatal, non-retried abort of the run.
	ErrorKind int

	// StageError is a pipeline failure: which stage aborted the run, its
	// taxonomy kind, and the underlying cause. It is the only error type
	// Pipeline.Run returns.
	StageError struct {
		Stage Stage
		Kind  ErrorKind
		Err   error
	}
)

const (
	StageLocateInterpreter Stage = iota
	StageCheckConfig
	StageProvisionEnv
	StageActivateEnv
	StageEnsureDependencies
	StagePreLaunchHook
	StageLaunch
)

const (
	RuntimeMissing ErrorKind = iota
	ConfigMissing
	ProvisioningFailed
	ActivationFailed
	InstallationFailed
	HookFailed
	LaunchFailed
)

// String returns the stage name used in logs.
func (s Stage) String() string {
	switch s {
	case StageLocateInterpreter:
		return "locate-interpreter"
	case StageCheckConfig:
		return "check-config"
	case StageProvisionEnv:
		return "provision-env"
	case StageActivateEnv:
		return "activate-env"
	case StageEnsureDependencies:
		return "ensure-dependencies"
	case StagePreLaunchHook:
		return "pre-launch-hook"
	case StageLaunch:
		return "launch"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// String returns the taxonomy label.
func (k ErrorKind) String() string {
	switch k {
	case RuntimeMissing:
		return "RuntimeMissing"
	case ConfigMissing:
		return "ConfigMissing"
	case ProvisioningFailed:
		return "ProvisioningFailed"
	case ActivationFailed:
		return "ActivationFailed"
	case InstallationFailed:
		return "InstallationFailed"
	case HookFailed:
		return "HookFailed"
	case LaunchFailed:
		return "LaunchFailed"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// IssueId maps the failure kind to its guidance catalog entry.
func (k ErrorKind) IssueId() issue.Id {
	switch k {
	case RuntimeMissing:
		return issue.RuntimeMissingId
	case ConfigMissing:
		return issue.ConfigMissingId
	case ProvisioningFailed:
		return issue.ProvisioningFailedId
	case ActivationFailed:
		return issue.ActivationFailedId
	case InstallationFailed:
		return issue.InstallationFailedId
	case HookFailed:
		return issue.HookFailedId
	case LaunchFailed:
		return issue.LaunchFailedId
	default:
		return 0
	}
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed (%s): %v", e.Stage, e.Kind, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *StageError) Unwrap() error { return e.Err }

func newStageError(stage Stage, kind ErrorKind, err error) *StageError {
	return &StageError{Stage: stage, Kind: kind, Err: err}
}
