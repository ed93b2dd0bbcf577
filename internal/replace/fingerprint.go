// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package replace

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ellipsisMarker is the elision convention: a fingerprint line containing
// only "..." stands for an unchanged middle section of a long range.
const ellipsisMarker = "..."

// fingerprintMatches compares the actual text at the claimed range against
// the expected fingerprint. Without an ellipsis line the comparison is
// exact full-span equality. With one, the lines before the first marker
// must match the start of the range and the lines after the last marker
// must match its end; everything between is skipped.
func fingerprintMatches(actual, expected string) bool {
	actualLines := fingerprintLines(actual)
	expectedLines := fingerprintLines(expected)

	firstMarker, lastMarker := -1, -1
	for i, line := range expectedLines {
		if strings.TrimSpace(line) == ellipsisMarker {
			if firstMarker < 0 {
				firstMarker = i
			}
			lastMarker = i
		}
	}

	if firstMarker < 0 {
		if len(actualLines) != len(expectedLines) {
			return false
		}
		for i := range expectedLines {
			if actualLines[i] != expectedLines[i] {
				return false
			}
		}
		return true
	}

	leading := expectedLines[:firstMarker]
	trailing := expectedLines[lastMarker+1:]

	if len(actualLines) < len(leading)+len(trailing) {
		return false
	}
	for i, line := range leading {
		if actualLines[i] != line {
			return false
		}
	}
	for i, line := range trailing {
		if actualLines[len(actualLines)-len(trailing)+i] != line {
			return false
		}
	}
	return true
}

// fingerprintLines splits text for comparison, dropping the empty line a
// terminal newline produces.
func fingerprintLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// similarity computes the Levenshtein-based similarity ratio between two
// strings. Returns a value between 0.0 and 1.0; used only for mismatch
// diagnostics, never for matching.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	distance := dmp.DiffLevenshtein(diffs)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return 1.0 - float64(distance)/float64(maxLen)
}
