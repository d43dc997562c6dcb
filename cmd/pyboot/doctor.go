// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pyboot-cli/internal/config"
	"pyboot-cli/internal/envfile"
	"pyboot-cli/internal/execrun"
	"pyboot-cli/internal/pip"
	"pyboot-cli/internal/pyenv"
)

// doctorCmd reports project readiness without provisioning anything. It is
// the dry counterpart of the default run: the same checks, observed only.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Report readiness without changing anything",
	Long: `Check every launch precondition and report its state. Doctor never
creates the virtual environment, never installs dependencies, and never
starts the application; it only tells you what a real run would find.`,
	RunE: runDoctor,
}

// checkResult is one doctor line: what was checked and what was found.
type checkResult struct {
	name   string
	ok     bool
	detail string
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	ctx := cmd.Context()

	cfg, err := loadToolConfig(ctx, os.Stderr)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

	results := collectChecks(ctx, cfg, workDir)
	ready := renderChecks(os.Stdout, results)
	if !ready {
		return &ExitError{Code: 1}
	}
	return nil
}

// collectChecks runs every readiness probe in pipeline order.
func collectChecks(ctx context.Context, cfg *config.Config, workDir string) []checkResult {
	runner := execrun.NewExecRunner()
	results := make([]checkResult, 0, 6)

	locator := pyenv.NewLocator(runner)
	if len(cfg.InterpreterCandidates) > 0 {
		locator.Candidates = cfg.InterpreterCandidates
	}
	interp, err := locator.Locate(ctx)
	if err != nil {
		results = append(results, checkResult{name: "python interpreter", detail: "not found on PATH"})
	} else {
		detail := interp.Path
		if interp.Version != "" {
			detail = fmt.Sprintf("%s (%s)", interp.Path, interp.Version)
		}
		results = append(results, checkResult{name: "python interpreter", ok: true, detail: detail})
	}

	artifact := envfile.Check(workDir, cfg.EnvFile)
	results = append(results, checkResult{
		name:   "secrets file",
		ok:     artifact.Exists,
		detail: artifact.Path,
	})

	results = append(results, fileCheck("requirements manifest", filepath.Join(workDir, cfg.Requirements)))
	results = append(results, fileCheck("entry point", filepath.Join(workDir, cfg.Entrypoint)))

	envRoot := filepath.Join(workDir, cfg.VenvDir)
	active, actErr := pyenv.Activate(envRoot, os.Environ())
	if actErr != nil {
		results = append(results, checkResult{name: "virtual environment", detail: envRoot + " (would be created on run)"})
		return results
	}
	results = append(results, checkResult{name: "virtual environment", ok: true, detail: envRoot})

	var probe pip.Probe
	switch cfg.Probe {
	case config.ProbeManifest:
		probe = &pip.ManifestProbe{ManifestPath: filepath.Join(workDir, cfg.Requirements)}
	default:
		probe = &pip.ImportProbe{Runner: runner, Package: cfg.MarkerPackage}
	}
	satisfied, probeErr := probe.Satisfied(ctx, active)
	switch {
	case probeErr != nil:
		results = append(results, checkResult{name: "dependencies", detail: "probe failed (would be installed on run)"})
	case satisfied:
		results = append(results, checkResult{name: "dependencies", ok: true, detail: "satisfied"})
	default:
		results = append(results, checkResult{name: "dependencies", detail: "not satisfied (would be installed on run)"})
	}
	return results
}

// fileCheck reports the presence of one regular file.
func fileCheck(name, path string) checkResult {
	info, err := os.Stat(path)
	ok := err == nil && info.Mode().IsRegular()
	return checkResult{name: name, ok: ok, detail: path}
}

// renderChecks prints the report and returns whether every check passed.
func renderChecks(out io.Writer, results []checkResult) bool {
	fmt.Fprintln(out, TitleStyle.Render("pyboot doctor"))
	ready := true
	for _, r := range results {
		mark := SuccessStyle.Render("✓")
		if !r.ok {
			mark = ErrorStyle.Render("✗")
			ready = false
		}
		fmt.Fprintf(out, "  %s %-24s %s\n", mark, r.name, SubtitleStyle.Render(r.detail))
	}
	if ready {
		fmt.Fprintln(out, SuccessStyle.Render("\nAll checks passed; a run would go straight to launch."))
	} else {
		fmt.Fprintln(out, WarningStyle.Render("\nSome checks failed; a run would provision or stop as noted above."))
	}
	return ready
}
