// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package feedback turns rejected edits into a follow-up prompt for the
// LLM, with enough context that the next turn can issue a corrected edit.
package feedback

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/linepatch/pkg/types"
)

const defaultContextLines = 5

// Rejected pairs a failed edit with the content it was attempted against.
type Rejected struct {
	FilePath  string
	FirstLine int // Translated current-coordinate range the edit targeted
	LastLine  int
	Content   string // The file content the edit ran against (unchanged)
	Err       *types.EditError
}

// FormatConfig configures prompt formatting.
type FormatConfig struct {
	ContextLines int // Lines of context above/below the claimed range (default 5)
}

// FormatRejections produces a follow-up prompt from the batch's failures.
// The message includes each error's classification, its human-readable
// reason, and numbered code context around the targeted range.
func FormatRejections(rejections []Rejected, cfg FormatConfig) string {
	if len(rejections) == 0 {
		return ""
	}

	contextLines := cfg.ContextLines
	if contextLines == 0 {
		contextLines = defaultContextLines
	}

	var buf strings.Builder
	buf.WriteString("Some edits were rejected. Fix them using the same line-range edit format, with corrected line numbers or content.\n\n")

	for _, r := range rejections {
		buf.WriteString(fmt.Sprintf("### %s (lines %d-%d): %s\n\n", r.FilePath, r.FirstLine, r.LastLine, r.Err.Kind))
		buf.WriteString(r.Err.Message)
		buf.WriteString("\n\n")

		context := codeContext(r.Content, r.FirstLine, r.LastLine, contextLines)
		if context != "" {
			buf.WriteString("```\n")
			buf.WriteString(context)
			buf.WriteString("```\n\n")
		}
	}

	return buf.String()
}

// codeContext extracts numbered lines around the targeted range, with the
// range itself marked. Returns "" when the range is entirely outside the
// content.
func codeContext(content string, firstLine, lastLine, contextLines int) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	start := firstLine - contextLines - 1 // Convert to 0-based
	if start < 0 {
		start = 0
	}
	end := lastLine + contextLines
	if end > len(lines) {
		end = len(lines)
	}
	if start >= len(lines) {
		return ""
	}

	var buf strings.Builder
	for i := start; i < end; i++ {
		lineNum := i + 1
		marker := "  "
		if lineNum >= firstLine && lineNum <= lastLine {
			marker = "> "
		}
		buf.WriteString(fmt.Sprintf("%s%4d │ %s\n", marker, lineNum, lines[i]))
	}

	return buf.String()
}
