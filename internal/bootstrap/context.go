// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"pyboot-cli/internal/envfile"
	"pyboot-cli/internal/pyenv"
)

// Context is the explicit run state threaded through the stages, replacing
// the ambient shell state (current directory, activated resolution path) a
// bootstrap script would mutate in place. Each stage reads what earlier
// stages wrote and records its own observation here; the parent process
// environment is never touched.
type Context struct {
	// WorkDir is the project directory everything is resolved against.
	WorkDir string
	// BaseEnv is the inherited process environment (KEY=VALUE), the input
	// to activation.
	BaseEnv []string

	// Interpreter is the located system Python (StageLocateInterpreter).
	Interpreter pyenv.Interpreter
	// ConfigArtifact is the observed secrets-file state (StageCheckConfig).
	ConfigArtifact envfile.Artifact
	// EnvRoot is the absolute venv directory (StageProvisionEnv).
	EnvRoot string
	// EnvCreated reports whether this run created the venv.
	EnvCreated bool
	// Active is the activated environment overlay (StageActivateEnv).
	Active *pyenv.ActiveEnv
	// DepsInstalled reports whether this run actually ran the installer.
	DepsInstalled bool
}
