// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package batchfile decodes the JSON edit-batch manifest the surrounding
// tool-call layer emits: an ordered list of line-range edits keyed by
// file path. Order is significant; edits to the same file depend on the
// output of the previous one.
package batchfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// EditSpec is one proposed edit as it appears in the manifest, in the
// LLM's claimed coordinates.
type EditSpec struct {
	File        string `json:"file"`
	FirstLine   int    `json:"first_line"`
	LastLine    int    `json:"last_line"`
	Search      string `json:"search,omitempty"`
	Replacement string `json:"replacement"`
	FileType    string `json:"file_type,omitempty"`
}

// Manifest is a decoded edit batch.
type Manifest struct {
	Description string     `json:"description,omitempty"`
	Edits       []EditSpec `json:"edits"`
}

// SpecError describes one invalid edit entry. Invalid entries do not
// invalidate the rest of the batch; the caller decides how to report them.
type SpecError struct {
	Index   int    // Position in the manifest's edit list (0-based)
	Message string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("edit %d: %s", e.Index, e.Message)
}

// ParseResult separates the usable edits from the malformed entries.
type ParseResult struct {
	Manifest Manifest
	Edits    []EditSpec   // Entries that passed validation, in manifest order
	Errors   []*SpecError // One per rejected entry
}

// Load reads and parses a manifest file.
func Load(path string) (*ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening batch file %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a manifest from a reader and validates each entry.
func Parse(r io.Reader) (*ParseResult, error) {
	var m Manifest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding batch manifest: %w", err)
	}

	if len(m.Edits) == 0 {
		return nil, fmt.Errorf("batch manifest contains no edits")
	}

	result := &ParseResult{Manifest: m}
	for i, e := range m.Edits {
		if err := validateSpec(i, e); err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Edits = append(result.Edits, e)
	}

	return result, nil
}

// validateSpec checks the fields a single entry must carry. Range
// plausibility against actual file content is the engine's job; this only
// rejects entries that could never be applied.
func validateSpec(index int, e EditSpec) *SpecError {
	fail := func(format string, args ...any) *SpecError {
		return &SpecError{Index: index, Message: fmt.Sprintf(format, args...)}
	}

	if strings.TrimSpace(e.File) == "" {
		return fail("missing file path")
	}
	if e.FirstLine < 1 {
		return fail("first_line %d must be at least 1", e.FirstLine)
	}
	if e.LastLine < e.FirstLine-1 {
		return fail("last_line %d is before first_line %d", e.LastLine, e.FirstLine)
	}
	return nil
}
