// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package replace implements the line replace engine: the single point
// where a proposed line-range edit becomes new file content or a
// structured rejection. The engine is stateless; it only returns the
// proposed content and never persists anything.
package replace

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/linepatch/internal/structure"
	"github.com/petar-djukic/linepatch/pkg/types"
)

// Engine executes line-range edits. The zero value is ready to use.
type Engine struct {
	// StrictFingerprint turns a fingerprint mismatch from an advisory
	// warning into a hard failure. Off by default: line numbers are the
	// authoritative source of truth and the fingerprint is a sanity check.
	StrictFingerprint bool
}

// Execute applies one edit to the supplied content. Line numbers are
// 1-based inclusive and must already be in current coordinates. A pure
// insertion before FirstLine is expressed as LastLine == FirstLine-1.
//
// On any failure the returned outcome carries a structured error and no
// content; the caller's stored content is untouched by construction.
func (e *Engine) Execute(edit types.Edit) types.EditOutcome {
	lines, hadTrailingNewline := splitLines(edit.Content)
	total := len(lines)

	if err := checkRange(edit, total); err != nil {
		return types.EditOutcome{Success: false, Err: err}
	}

	outcome := types.EditOutcome{}

	insertion := edit.LastLine == edit.FirstLine-1
	if edit.Search != "" && !insertion {
		actual := strings.Join(lines[edit.FirstLine-1:edit.LastLine], "\n")
		if !fingerprintMatches(actual, edit.Search) {
			warning := types.Warning{
				FilePath:   edit.FilePath,
				FirstLine:  edit.FirstLine,
				LastLine:   edit.LastLine,
				Similarity: similarity(actual, strings.TrimSuffix(edit.Search, "\n")),
				Message: fmt.Sprintf("expected content does not match lines %d-%d",
					edit.FirstLine, edit.LastLine),
			}
			if e.StrictFingerprint {
				return types.EditOutcome{
					Success: false,
					Err: &types.EditError{
						Kind:     types.KindPatternMismatch,
						FilePath: edit.FilePath,
						Message:  fmt.Sprintf("%s (similarity %.2f)", warning.Message, warning.Similarity),
					},
					Warnings: []types.Warning{warning},
				}
			}
			outcome.Warnings = append(outcome.Warnings, warning)
		}
	}

	replacementLines, newLineCount := splitReplacement(edit.Replacement)

	merged := make([]string, 0, total+newLineCount-(edit.LastLine-edit.FirstLine+1))
	merged = append(merged, lines[:edit.FirstLine-1]...)
	merged = append(merged, replacementLines...)
	merged = append(merged, lines[edit.LastLine:]...)

	after := joinLines(merged, hadTrailingNewline)

	if err := structure.Validate(edit.Content, after, edit.FileType); err != nil {
		err.FilePath = edit.FilePath
		return types.EditOutcome{Success: false, Err: err, Warnings: outcome.Warnings}
	}

	outcome.Success = true
	outcome.NewContent = after
	outcome.NewLineCount = newLineCount
	return outcome
}

// checkRange validates the claimed range against the file's bounds.
// Allowed forms: a proper range 1 <= first <= last <= total, or the
// empty-span insertion last == first-1 with 1 <= first <= total+1.
func checkRange(edit types.Edit, total int) *types.EditError {
	fail := func(format string, args ...any) *types.EditError {
		return &types.EditError{
			Kind:     types.KindInvalidLineRange,
			FilePath: edit.FilePath,
			Message:  fmt.Sprintf(format, args...),
		}
	}

	first, last := edit.FirstLine, edit.LastLine

	if first < 1 {
		return fail("first line %d is before the start of the file", first)
	}
	if last < first-1 {
		return fail("last line %d is before first line %d", last, first)
	}

	if last == first-1 {
		// Insertion before first; first may be total+1 to append.
		if first > total+1 {
			return fail("insertion point %d is beyond the file's %d lines", first, total)
		}
		return nil
	}

	if first > total {
		return fail("first line %d is beyond the file's %d lines", first, total)
	}
	if last > total {
		return fail("last line %d is beyond the file's %d lines", last, total)
	}
	return nil
}

// splitLines splits content into lines, tracking whether the file ends
// with a trailing newline so reassembly can preserve the convention.
// Empty content is zero lines.
func splitLines(content string) ([]string, bool) {
	if content == "" {
		return nil, false
	}

	hadTrailingNewline := strings.HasSuffix(content, "\n")
	body := strings.TrimSuffix(content, "\n")
	if body == "" {
		// Content was just "\n": one empty line.
		return []string{""}, hadTrailingNewline
	}
	return strings.Split(body, "\n"), hadTrailingNewline
}

// splitReplacement splits replacement text into lines. Empty text is a
// deletion occupying zero lines.
func splitReplacement(replacement string) ([]string, int) {
	if replacement == "" {
		return nil, 0
	}
	lines := strings.Split(strings.TrimSuffix(replacement, "\n"), "\n")
	return lines, len(lines)
}

// joinLines reassembles lines, restoring the trailing-newline convention.
// Deleting every line yields empty content regardless of the convention.
func joinLines(lines []string, hadTrailingNewline bool) string {
	if len(lines) == 0 {
		return ""
	}
	out := strings.Join(lines, "\n")
	if hadTrailingNewline {
		out += "\n"
	}
	return out
}
