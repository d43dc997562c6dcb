// SPDX-License-Identifier: MPL-2.0

// Package bootstrap is the readiness-check / provisioning / launch state
// machine. The pipeline is strictly linear — interpreter, secrets file,
// virtual environment, activation, dependencies, launch — with each stage
// gating the next. Failure at any stage produces a typed StageError and a
// terminal abort; there is no resumption from partial state, and rerunning
// from the start is always safe because every stage is idempotent.
package bootstrap
