// SPDX-License-Identifier: MPL-2.0

package execrun

// Result contains the outcome of a child-process invocation.
type Result struct {
	// ExitCode is the process exit status. Zero means success.
	ExitCode ExitCode
	// Error is set only when the process could not be started or observed;
	// a normally-terminated non-zero exit leaves Error nil.
	Error error
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Ok reports whether the invocation both ran and exited successfully.
func (r *Result) Ok() bool {
	return r.Error == nil && r.ExitCode.IsSuccess()
}
