// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines the value types shared between the offset tracker,
// the line replace engine, and the structural validator.
package types

import "fmt"

// Edit represents a single line-range edit in current coordinates, ready for
// the replace engine. Line numbers are 1-based and inclusive. A pure
// insertion before FirstLine is expressed as LastLine == FirstLine-1.
type Edit struct {
	FilePath    string   // Target file path, used for diagnostics and type detection
	Content     string   // Full current file content (caller-supplied; the engine reads no files)
	FirstLine   int      // First replaced line (1-based, inclusive)
	LastLine    int      // Last replaced line (1-based, inclusive)
	Search      string   // Optional expected content at the range; may contain an "..." elision line
	Replacement string   // Replacement text (empty for deletion)
	FileType    FileType // Validator dispatch hint
}

// ErrorKind classifies a recoverable edit failure.
type ErrorKind int

const (
	KindInvalidLineRange        ErrorKind = iota // Range outside the file's bounds
	KindUnbalancedBraces                         // Edit would leave unmatched {}, (), or []
	KindDeclarationOutsideBlock                  // Top-level key stranded after the closing brace
	KindPatternMismatch                          // Fingerprint mismatch (error only in strict mode)
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidLineRange:
		return "INVALID_LINE_RANGE"
	case KindUnbalancedBraces:
		return "UNBALANCED_BRACES"
	case KindDeclarationOutsideBlock:
		return "DECLARATION_OUTSIDE_BLOCK"
	case KindPatternMismatch:
		return "PATTERN_MISMATCH"
	default:
		return "UNKNOWN"
	}
}

// EditError is a structured, recoverable edit failure. It carries enough
// detail for the caller to surface corrective feedback to the LLM.
type EditError struct {
	Kind     ErrorKind
	FilePath string
	Message  string
}

func (e *EditError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.FilePath, e.Message)
}

// Warning is an advisory diagnostic attached to a successful outcome.
// A fingerprint mismatch produces one; it never blocks the edit by default.
type Warning struct {
	FilePath   string
	FirstLine  int
	LastLine   int
	Similarity float64 // How close the expected text was to the actual range (0.0-1.0)
	Message    string
}

// EditOutcome is the result of one replace engine execution. On success,
// NewContent holds the full post-edit content and NewLineCount the number of
// lines the replacement text occupies, for feeding back into the tracker.
// On failure, Err is set and NewContent is empty; nothing was mutated.
type EditOutcome struct {
	Success      bool
	NewContent   string
	NewLineCount int
	Err          *EditError
	Warnings     []Warning
}
