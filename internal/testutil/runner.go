// SPDX-License-Identifier: MPL-2.0

// Package testutil provides shared test doubles for pipeline stages.
package testutil

import (
	"context"

	"pyboot-cli/internal/execrun"
)

// FakeRunner is a scripted execrun.Runner. Every invocation is recorded in
// Calls; Stub decides the outcome (nil Stub means every call succeeds with
// empty output).
type FakeRunner struct {
	Calls []execrun.Spec
	Stub  func(spec execrun.Spec) (*execrun.Result, string)
}

var _ execrun.Runner = (*FakeRunner)(nil)

func (f *FakeRunner) Run(_ context.Context, spec execrun.Spec) *execrun.Result {
	result, _ := f.dispatch(spec)
	return result
}

func (f *FakeRunner) RunCapture(_ context.Context, spec execrun.Spec) (*execrun.Result, string) {
	return f.dispatch(spec)
}

func (f *FakeRunner) dispatch(spec execrun.Spec) (*execrun.Result, string) {
	f.Calls = append(f.Calls, spec)
	if f.Stub != nil {
		return f.Stub(spec)
	}
	return execrun.NewSuccessResult(), ""
}

// CallsMatching returns the recorded specs whose argument list satisfies match.
func (f *FakeRunner) CallsMatching(match func(spec execrun.Spec) bool) []execrun.Spec {
	var out []execrun.Spec
	for _, call := range f.Calls {
		if match(call) {
			out = append(out, call)
		}
	}
	return out
}

// HasArg reports whether the spec's argument list contains arg.
func HasArg(spec execrun.Spec, arg string) bool {
	for _, a := range spec.Args {
		if a == arg {
			return true
		}
	}
	return false
}
