// SPDX-License-Identifier: MPL-2.0

// Package pyenv locates the system Python interpreter and manages the
// project's isolated virtual environment: creation (idempotent) and
// activation. Activation never sources a shell script — it produces an
// explicit environment overlay that later stages thread through child
// processes, so the parent process state is never mutated.
package pyenv
