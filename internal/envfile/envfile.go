// SPDX-License-Identifier: MPL-2.0

// Package envfile checks for the presence of the application's secrets file.
// Presence is the whole contract: the file is never read, parsed, created,
// or modified here — credential handling stays outside this tool's trust
// boundary.
package envfile

import (
	"os"
	"path/filepath"
)

// Artifact is the observed state of the configuration file.
type Artifact struct {
	// Path is where the artifact was looked for.
	Path string
	// Exists reports whether a regular file is present there.
	Exists bool
}

// Check looks for name inside dir. Directories and other non-regular entries
// do not count as present; the application needs an actual file.
func Check(dir, name string) Artifact {
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	return Artifact{
		Path:   path,
		Exists: err == nil && info.Mode().IsRegular(),
	}
}
