// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package patcher is the public entry point of linepatch. A Session
// applies LLM-proposed line-range edits, expressed in the LLM's possibly
// stale coordinates, to caller-supplied file content: it translates the
// claimed range through the offset tracker, runs the replace engine, and
// on success records the replacement so later edits in the same session
// see up-to-date coordinates.
//
// Construct one Session per edit batch or conversation turn. Sessions are
// self-contained; concurrent sessions never share state.
package patcher

import (
	"log/slog"

	"github.com/petar-djukic/linepatch/pkg/types"
)

// Config configures a Session.
type Config struct {
	// StrictFingerprint makes a fingerprint mismatch reject the edit
	// instead of proceeding with a logged warning. Off by default for
	// compatibility: line numbers are the authoritative source of truth.
	StrictFingerprint bool

	// Logger receives pattern-mismatch warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

// Request is one proposed edit in claimed coordinates, together with the
// file's current full content. The session does no file I/O.
type Request struct {
	FilePath    string
	Content     string // Full current file content
	FirstLine   int    // Claimed first line (1-based, inclusive)
	LastLine    int    // Claimed last line; FirstLine-1 for a pure insertion
	Search      string // Optional fingerprint; may contain an "..." elision line
	Replacement string // Replacement text (empty for deletion)
	FileType    string // Optional validator hint ("json", "ts", ...); empty = detect from path
}

// Result is the outcome of one Apply call. FirstLine and LastLine are the
// translated current coordinates the edit was actually executed at.
type Result struct {
	Outcome   types.EditOutcome
	FirstLine int
	LastLine  int
	Offset    int // Net shift applied to the claimed first line
}
