// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"fmt"
	"strings"
)

const maxSubjectLength = 72

// GenerateMessage creates a commit message from the batch description and
// list of modified files. Falls back to a generic subject when the batch
// carries no description.
func GenerateMessage(description string, modifiedFiles []string) string {
	subject := buildSubject(description, modifiedFiles)
	body := buildBody(modifiedFiles)

	msg := subject
	if body != "" {
		msg += "\n\n" + body
	}
	msg += "\n\n" + trailer

	return msg
}

// buildSubject creates the first line of the commit message (max 72 chars).
func buildSubject(description string, modifiedFiles []string) string {
	summary := strings.TrimSpace(description)
	if summary == "" {
		summary = fmt.Sprintf("apply line edits to %d file(s)", len(modifiedFiles))
	}
	summary = strings.TrimRight(summary, ".")

	subject := "linepatch: " + summary
	if len(subject) > maxSubjectLength {
		subject = subject[:maxSubjectLength-3] + "..."
	}

	return subject
}

// buildBody creates the commit body listing modified files.
func buildBody(modifiedFiles []string) string {
	if len(modifiedFiles) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString("Modified files:\n")
	for _, f := range modifiedFiles {
		buf.WriteString(fmt.Sprintf("- %s\n", f))
	}
	return buf.String()
}
