// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"pyboot-cli/internal/bootstrap"
	"pyboot-cli/internal/config"
	"pyboot-cli/internal/execrun"
	"pyboot-cli/internal/hook"
	"pyboot-cli/internal/issue"
	"pyboot-cli/internal/launch"
	"pyboot-cli/internal/pip"
	"pyboot-cli/internal/pyenv"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables stage-by-stage debug output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd is the whole tool: running pyboot with no arguments prepares
	// the environment and launches the application.
	rootCmd = &cobra.Command{
		Use:   "pyboot",
		Short: "Bootstrap and launch the local Python web application",
		Long: TitleStyle.Render("pyboot") + SubtitleStyle.Render(" - bootstrap and launch the local Python web application") + `

pyboot walks the project through a fixed sequence of readiness checks,
provisions whatever is missing, and hands the terminal to the application:

  1. Locate a Python interpreter on the PATH
  2. Verify the .env secrets file exists (it is never created for you)
  3. Create the .venv virtual environment if absent
  4. Activate the environment for every subsequent step
  5. Install requirements.txt dependencies when not yet satisfied
  6. Launch the application in the foreground

Each stage that fails prints specific guidance and stops; nothing later
runs on a broken precondition. Settings live in config.cue under the
user config directory, overridable per run with --config.

` + SubtitleStyle.Render("Examples:") + `
  pyboot                    Prepare the environment and start the app
  pyboot --verbose          Same, with per-stage diagnostics
  pyboot doctor             Report readiness without changing anything`,
		RunE: runBootstrap,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/pyboot/config.cue)")

	rootCmd.AddCommand(doctorCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// loadToolConfig resolves the effective configuration. A broken explicit
// --config file is fatal; a broken implicit one degrades to the built-in
// defaults with a warning, so a stale config never blocks a launch.
func loadToolConfig(ctx context.Context, stderr *os.File) (*config.Config, error) {
	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err == nil {
		return cfg, nil
	}
	if cfgFile != "" {
		renderIssue(stderr, issue.ConfigLoadFailedId)
		fmt.Fprintf(stderr, "\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
		return nil, err
	}
	fmt.Fprintln(stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	fmt.Fprintln(stderr, SubtitleStyle.Render("Continuing with built-in defaults."))
	return config.DefaultConfig(), nil
}

// runBootstrap is the root command: drive the pipeline end to end and exit
// with the application's own status.
func runBootstrap(cmd *cobra.Command, _ []string) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	ctx := cmd.Context()

	cfg, err := loadToolConfig(ctx, os.Stderr)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	if cfg.UI.Verbose {
		verbose = true
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

	pipeline := buildPipeline(cfg, workDir)
	outcome, stageErr := pipeline.Run(ctx)
	if stageErr != nil {
		renderStageFailure(os.Stderr, stageErr, verbose)
		waitForAck(os.Stdin, os.Stderr)
		return &ExitError{Code: outcome.ExitCode}
	}
	return nil
}

// buildPipeline assembles the collaborators around the operator's console.
func buildPipeline(cfg *config.Config, workDir string) *bootstrap.Pipeline {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "pyboot",
		Level:  level,
	})

	runner := execrun.NewExecRunner()

	locator := pyenv.NewLocator(runner)
	if len(cfg.InterpreterCandidates) > 0 {
		locator.Candidates = cfg.InterpreterCandidates
	}

	var probe pip.Probe
	switch cfg.Probe {
	case config.ProbeManifest:
		probe = &pip.ManifestProbe{ManifestPath: filepath.Join(workDir, cfg.Requirements)}
	default:
		probe = &pip.ImportProbe{Runner: runner, Package: cfg.MarkerPackage}
	}

	return &bootstrap.Pipeline{
		Locator: locator,
		Provisioner: &pyenv.Provisioner{
			Runner: runner,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
		},
		Activate: pyenv.Activate,
		Installer: &pip.Installer{
			Runner:       runner,
			Probe:        probe,
			ManifestPath: filepath.Join(workDir, cfg.Requirements),
			Stdout:       os.Stdout,
			Stderr:       os.Stderr,
		},
		Hook: &hook.Runner{
			Dir:    workDir,
			Stdin:  os.Stdin,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
		},
		Launcher: &launch.Supervisor{
			Runner:     runner,
			Entrypoint: cfg.Entrypoint,
			WorkDir:    workDir,
			AppURL:     cfg.AppURL,
			Stdin:      os.Stdin,
			Stdout:     os.Stdout,
			Stderr:     os.Stderr,
		},
		WorkDir:         workDir,
		EnvFileName:     cfg.EnvFile,
		EnvDirName:      cfg.VenvDir,
		PreLaunchScript: cfg.Hooks.PreLaunch,
		BaseEnv:         os.Environ(),
		Log:             logger,
	}
}
