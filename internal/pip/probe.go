// SPDX-License-Identifier: MPL-2.0

package pip

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"pyboot-cli/internal/execrun"
	"pyboot-cli/internal/pyenv"
)

type (
	// Probe decides whether the environment already satisfies the manifest.
	// Satisfied errors are treated as "not satisfied" by the Installer so a
	// broken probe degrades to a redundant install, never a missed one.
	Probe interface {
		// Satisfied reports whether installation can be skipped.
		Satisfied(ctx context.Context, env *pyenv.ActiveEnv) (bool, error)
		// Commit records a successful installation so later Satisfied calls
		// can observe it. Probes with nothing to record return nil.
		Commit(env *pyenv.ActiveEnv) error
	}

	// ImportProbe is the historical heuristic: try to import one marker
	// package inside the venv and infer the whole dependency set from it.
	// Known gap: a manifest edit after the marker is installed goes
	// unnoticed until the application fails with an import error.
	ImportProbe struct {
		Runner  execrun.Runner
		Package string
	}

	// ManifestProbe hashes the requirements file and compares it against a
	// receipt written inside the venv after the last successful install.
	// Any manifest edit invalidates the receipt and forces a reinstall.
	ManifestProbe struct {
		// ManifestPath is the requirements file to hash.
		ManifestPath string
	}

	// receipt is the TOML document stored at <venv>/pyboot-receipt.toml.
	receipt struct {
		ManifestSHA256 string    `toml:"manifest_sha256"`
		InstalledAt    time.Time `toml:"installed_at"`
	}
)

// receiptFileName is the receipt's file name inside the venv root.
const receiptFileName = "pyboot-receipt.toml"

// Satisfied runs `<venv python> -c "import <pkg>"` and reports success.
func (p *ImportProbe) Satisfied(ctx context.Context, env *pyenv.ActiveEnv) (bool, error) {
	result, _ := p.Runner.RunCapture(ctx, execrun.Spec{
		Path: env.Python,
		Args: []string{"-c", "import " + p.Package},
		Env:  env.Env,
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.ExitCode.IsSuccess(), nil
}

// Commit is a no-op: the imported package itself is the record.
func (p *ImportProbe) Commit(*pyenv.ActiveEnv) error { return nil }

// Satisfied compares the manifest hash with the stored receipt.
// A missing or unreadable receipt means not satisfied.
func (p *ManifestProbe) Satisfied(_ context.Context, env *pyenv.ActiveEnv) (bool, error) {
	sum, err := p.manifestSum()
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(filepath.Join(env.Root, receiptFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	var r receipt
	if err := toml.Unmarshal(data, &r); err != nil {
		return false, nil // corrupt receipt, reinstall
	}
	return r.ManifestSHA256 == sum, nil
}

// Commit writes a fresh receipt for the current manifest contents.
func (p *ManifestProbe) Commit(env *pyenv.ActiveEnv) error {
	sum, err := p.manifestSum()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(receipt{
		ManifestSHA256: sum,
		InstalledAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode install receipt: %w", err)
	}
	return os.WriteFile(filepath.Join(env.Root, receiptFileName), data, 0o644)
}

func (p *ManifestProbe) manifestSum() (string, error) {
	data, err := os.ReadFile(p.ManifestPath)
	if err != nil {
		return "", fmt.Errorf("failed to read manifest %s: %w", p.ManifestPath, err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
