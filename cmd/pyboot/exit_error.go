// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"pyboot-cli/internal/execrun"
)

// ExitError carries a process exit code through the cobra/fang error path so
// the application's own status (or a stage abort's 1) survives to os.Exit.
type ExitError struct {
	Code execrun.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}
