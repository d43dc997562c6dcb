// SPDX-License-Identifier: MPL-2.0

// pyboot prepares a reproducible Python execution environment for the local
// web application and launches it, with actionable diagnostics whenever a
// precondition fails.
package main

func main() {
	Execute()
}
