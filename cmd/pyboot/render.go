// SPDX-License-Identifier: MPL-2.0

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"pyboot-cli/internal/bootstrap"
	"pyboot-cli/internal/issue"
)

// renderIssue prints an issue catalog entry to stderr. When glamour cannot
// render the markdown the raw text still reaches the operator.
func renderIssue(stderr io.Writer, id issue.Id) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render("dark")
	if err != nil {
		fmt.Fprintln(stderr, string(entry.MarkdownMsg()))
		return
	}
	fmt.Fprint(stderr, rendered)
}

// renderStageFailure reports an aborted pipeline run: which stage stopped,
// the catalog guidance for that failure kind, and the underlying error.
func renderStageFailure(stderr io.Writer, stageErr *bootstrap.StageError, verboseMode bool) {
	fmt.Fprintf(stderr, "\n%s stage %s failed\n",
		ErrorStyle.Render("✗"), CmdStyle.Render(stageErr.Stage.String()))

	renderIssue(stderr, stageErr.Kind.IssueId())

	if stageErr.Err != nil {
		fmt.Fprintf(stderr, "\n%s %s\n", ErrorStyle.Render("Error:"),
			formatErrorForDisplay(stageErr.Err, verboseMode))
	}
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// use their own Format (suggestions, and the full chain in verbose mode).
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// waitForAck blocks until the operator presses Enter. Every failed run ends
// here so the guidance stays on screen when the tool was launched from a
// double-click and the terminal would otherwise vanish.
func waitForAck(stdin io.Reader, stderr io.Writer) {
	fmt.Fprint(stderr, SubtitleStyle.Render("\nPress Enter to exit..."))
	reader := bufio.NewReader(stdin)
	_, _ = reader.ReadString('\n')
}
