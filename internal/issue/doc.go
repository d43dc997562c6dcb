// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// This package defines error types that include remediation steps and a
// Markdown-formatted guidance catalog, one entry per bootstrap failure kind,
// so every aborted run leaves the operator with concrete next steps.
package issue
