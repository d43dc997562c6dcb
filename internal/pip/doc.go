// SPDX-License-Identifier: MPL-2.0

// Package pip guarantees the application's dependency set is present in the
// active virtual environment without redundant work on repeat runs. The
// "already installed" decision sits behind the Probe interface: the default
// import probe reproduces the cheap marker-package heuristic, and the
// manifest probe offers a stronger requirements-hash check for callers that
// opt in.
package pip
