// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// ReplacementRecord describes one accepted replacement in the coordinates
// that were current when it was applied. Immutable once recorded.
// A pure insertion has LastLine == FirstLine-1 (zero-line span).
type ReplacementRecord struct {
	FirstLine    int // First replaced line (1-based, inclusive)
	LastLine     int // Last replaced line (1-based, inclusive)
	NewLineCount int // Lines the replacement text occupies (0 for deletion)
}

// LineDelta returns the signed line-count change this replacement caused:
// positive for growth, negative for shrinkage.
func (r ReplacementRecord) LineDelta() int {
	return r.NewLineCount - (r.LastLine - r.FirstLine + 1)
}

// FileSummary is a diagnostic snapshot of one file's tracking state.
type FileSummary struct {
	FilePath         string
	ReplacementCount int
	TotalLineChange  int // Sum of all recorded deltas
	Replacements     []ReplacementRecord
}
