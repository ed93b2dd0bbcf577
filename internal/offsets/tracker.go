// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package offsets tracks how accepted line replacements shift the stale
// line coordinates an LLM keeps reasoning in. The tracker never inspects
// file content; it is pure bookkeeping over recorded replacement ranges.
package offsets

import (
	"fmt"

	"github.com/petar-djukic/linepatch/pkg/types"
)

// Tracker holds per-path replacement history for one edit session. It is
// not safe for concurrent use; callers serialize access per session (the
// patcher session does this with per-path locks).
//
// Construct one tracker per batch or conversation turn and discard it
// afterward. It is not a long-lived cache.
type Tracker struct {
	files map[string][]types.ReplacementRecord
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{files: make(map[string][]types.ReplacementRecord)}
}

// RecordReplacement appends a replacement for the given current-coordinate
// range. Records must be appended in the same order the replacements were
// physically applied; reordering breaks all subsequent translation.
//
// A pure insertion before firstLine is recorded as lastLine == firstLine-1.
// Invalid arguments indicate a bug in the calling layer and panic rather
// than silently corrupting downstream line math.
func (t *Tracker) RecordReplacement(filePath string, firstLine, lastLine, newLineCount int) {
	if firstLine < 1 {
		panic(fmt.Sprintf("offsets: first line %d < 1 for %s", firstLine, filePath))
	}
	if lastLine < firstLine-1 {
		panic(fmt.Sprintf("offsets: last line %d before first line %d for %s", lastLine, firstLine, filePath))
	}
	if newLineCount < 0 {
		panic(fmt.Sprintf("offsets: negative replacement line count %d for %s", newLineCount, filePath))
	}

	t.files[filePath] = append(t.files[filePath], types.ReplacementRecord{
		FirstLine:    firstLine,
		LastLine:     lastLine,
		NewLineCount: newLineCount,
	})
}

// AdjustLineNumber translates a line number from claimed coordinates into
// current coordinates by replaying the recorded replacements in order. A
// replacement shifts the query by its delta only when the replacement ends
// strictly before the already-adjusted query point; queries inside or
// before a replaced range are left where they are by that record.
//
// With no replacements recorded for the path, the input is returned
// unchanged.
func (t *Tracker) AdjustLineNumber(filePath string, lineNumber int) int {
	if lineNumber < 1 {
		panic(fmt.Sprintf("offsets: line number %d < 1 for %s", lineNumber, filePath))
	}

	adjusted := lineNumber
	for _, r := range t.files[filePath] {
		if r.LastLine < adjusted {
			adjusted += r.LineDelta()
		}
	}
	return adjusted
}

// AdjustLineRange translates both endpoints of a claimed range in a single
// ordered pass over the replacement list. Each endpoint keeps its own
// accumulator; a record's delta applies only to endpoints lying fully
// after that record's end line.
func (t *Tracker) AdjustLineRange(filePath string, firstLine, lastLine int) (int, int) {
	if firstLine < 1 || lastLine < 1 {
		panic(fmt.Sprintf("offsets: line range (%d, %d) invalid for %s", firstLine, lastLine, filePath))
	}

	first, last := firstLine, lastLine
	for _, r := range t.files[filePath] {
		delta := r.LineDelta()
		if r.LastLine < first {
			first += delta
		}
		if r.LastLine < last {
			last += delta
		}
	}
	return first, last
}

// CumulativeOffset returns the net shift for a claimed line number: the
// adjusted value minus the input. Zero means the line is unshifted.
func (t *Tracker) CumulativeOffset(filePath string, lineNumber int) int {
	return t.AdjustLineNumber(filePath, lineNumber) - lineNumber
}

// Tracking reports whether at least one replacement has been recorded for
// the path.
func (t *Tracker) Tracking(filePath string) bool {
	return len(t.files[filePath]) > 0
}

// ClearFile discards all tracking state for a path. Subsequent adjustments
// for that path return their inputs unchanged until new replacements are
// recorded.
func (t *Tracker) ClearFile(filePath string) {
	delete(t.files, filePath)
}

// FileSummary returns a diagnostic snapshot of one file's tracking state.
// The returned record slice is a copy.
func (t *Tracker) FileSummary(filePath string) types.FileSummary {
	recs := t.files[filePath]

	total := 0
	for _, r := range recs {
		total += r.LineDelta()
	}

	out := make([]types.ReplacementRecord, len(recs))
	copy(out, recs)

	return types.FileSummary{
		FilePath:         filePath,
		ReplacementCount: len(recs),
		TotalLineChange:  total,
		Replacements:     out,
	}
}
