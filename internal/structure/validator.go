// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package structure

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/linepatch/pkg/types"
)

// PairCount holds open/close tallies for one nesting pair.
type PairCount struct {
	Open  int
	Close int
}

func (p PairCount) balanced() bool { return p.Open == p.Close }

// BalanceReport is the outcome of a balance check.
type BalanceReport struct {
	Balanced    bool
	Braces      PairCount // {}
	Parens      PairCount // ()
	Brackets    PairCount // []
	Diagnostics []string  // First-imbalance descriptions, best effort
}

// ContainmentReport is the outcome of a declaration containment check.
type ContainmentReport struct {
	OK          bool
	Diagnostics []string
}

// CheckBalance counts matching nesting pairs outside of strings and
// comments. It reports per-pair counts and a diagnostic for the first
// point of imbalance it can identify.
func CheckBalance(content string, fileType types.FileType) BalanceReport {
	masked := maskNonCode(content, optionsFor(fileType))
	report := BalanceReport{}

	type pairState struct {
		count     *PairCount
		depth     int
		openLine  int // Line of the first currently-unclosed opener
		open      byte
		close     byte
	}

	pairs := []*pairState{
		{count: &report.Braces, open: '{', close: '}'},
		{count: &report.Parens, open: '(', close: ')'},
		{count: &report.Brackets, open: '[', close: ']'},
	}

	line := 1
	for i := 0; i < len(masked); i++ {
		c := masked[i]
		if c == '\n' {
			line++
			continue
		}

		for _, p := range pairs {
			switch c {
			case p.open:
				p.count.Open++
				if p.depth == 0 {
					p.openLine = line
				}
				p.depth++
			case p.close:
				p.count.Close++
				p.depth--
				if p.depth < 0 && len(report.Diagnostics) == 0 {
					report.Diagnostics = append(report.Diagnostics,
						fmt.Sprintf("unexpected '%c' at line %d with no matching '%c'", p.close, line, p.open))
				}
			}
		}
	}

	for _, p := range pairs {
		if p.depth > 0 {
			report.Diagnostics = append(report.Diagnostics,
				fmt.Sprintf("%d unclosed '%c' (first opened at line %d)", p.depth, p.open, p.openLine))
		}
	}

	report.Balanced = report.Braces.balanced() && report.Parens.balanced() && report.Brackets.balanced()
	return report
}

// CheckDeclarationContainment detects the defect class where a top-level
// key (for example a "plugins:" entry) is stranded after the closing brace
// of what should be the single exported object. It scans the content after
// the brace that closes the first top-level object for a bare
// "identifier:" line.
func CheckDeclarationContainment(content string, fileType types.FileType) ContainmentReport {
	masked := maskNonCode(content, optionsFor(fileType))

	closeOffset, closeLine, found := topLevelCloseBrace(masked)
	if !found {
		return ContainmentReport{OK: true}
	}

	line := closeLine
	for _, rest := range strings.Split(masked[closeOffset+1:], "\n") {
		if name, ok := danglingDeclaration(rest); ok {
			return ContainmentReport{
				OK: false,
				Diagnostics: []string{
					fmt.Sprintf("'%s' appears outside the enclosing block closed at line %d", name, closeLine),
					fmt.Sprintf("dangling declaration at line %d", line),
				},
			}
		}
		line++
	}

	return ContainmentReport{OK: true}
}

// Validate runs the balance check on the proposed content and, for
// object-literal-style files whose prior content was a single balanced
// top-level object, the declaration containment check. A nil return means
// the edit passes. Malformed input never panics; the worst case is a
// best-effort rejection.
func Validate(beforeContent, afterContent string, fileType types.FileType) *types.EditError {
	if fileType == types.FileTypeGeneric {
		return nil
	}

	balance := CheckBalance(afterContent, fileType)
	if !balance.Balanced {
		return &types.EditError{
			Kind:    types.KindUnbalancedBraces,
			Message: unbalancedMessage(balance),
		}
	}

	if fileType == types.FileTypeJSLike || fileType == types.FileTypeJSON {
		if isSingleTopLevelObject(beforeContent, fileType) {
			containment := CheckDeclarationContainment(afterContent, fileType)
			if !containment.OK {
				return &types.EditError{
					Kind:    types.KindDeclarationOutsideBlock,
					Message: "structural issue: " + strings.Join(containment.Diagnostics, "; "),
				}
			}
		}
	}

	return nil
}

// unbalancedMessage builds the error message for an unbalanced report,
// including the counts for every mismatched pair.
func unbalancedMessage(report BalanceReport) string {
	var parts []string
	if !report.Braces.balanced() {
		parts = append(parts, fmt.Sprintf("%d '{' vs %d '}'", report.Braces.Open, report.Braces.Close))
	}
	if !report.Parens.balanced() {
		parts = append(parts, fmt.Sprintf("%d '(' vs %d ')'", report.Parens.Open, report.Parens.Close))
	}
	if !report.Brackets.balanced() {
		parts = append(parts, fmt.Sprintf("%d '[' vs %d ']'", report.Brackets.Open, report.Brackets.Close))
	}

	msg := "unmatched braces/brackets: " + strings.Join(parts, ", ")
	if len(report.Diagnostics) > 0 {
		msg += " (" + report.Diagnostics[0] + ")"
	}
	return msg
}

// topLevelCloseBrace locates the brace that closes the first top-level
// object in masked content. Returns its byte offset and line number.
func topLevelCloseBrace(masked string) (offset, line int, found bool) {
	depth := 0
	entered := false
	currentLine := 1

	for i := 0; i < len(masked); i++ {
		switch masked[i] {
		case '\n':
			currentLine++
		case '{':
			depth++
			entered = true
		case '}':
			depth--
			if entered && depth == 0 {
				return i, currentLine, true
			}
		}
	}

	return 0, 0, false
}

// isSingleTopLevelObject reports whether content is balanced and consists
// of one top-level object with nothing but closing punctuation after it.
// Files with multiple top-level statements are excluded so the containment
// heuristic cannot produce false positives on them.
func isSingleTopLevelObject(content string, fileType types.FileType) bool {
	masked := maskNonCode(content, optionsFor(fileType))

	balance := CheckBalance(content, fileType)
	if !balance.Balanced {
		return false
	}

	closeOffset, _, found := topLevelCloseBrace(masked)
	if !found {
		return false
	}

	for _, c := range masked[closeOffset+1:] {
		switch c {
		case ' ', '\t', '\n', '\r', ')', ';', ',':
		default:
			return false
		}
	}
	return true
}

// danglingDeclaration reports whether a masked line looks like a bare
// object property ("identifier:" at the start of the line), which should
// not exist outside an enclosing block.
func danglingDeclaration(line string) (string, bool) {
	s := strings.TrimSpace(line)
	if s == "" {
		return "", false
	}

	end := 0
	for end < len(s) && isIdentifierByte(s[end]) {
		end++
	}
	if end == 0 {
		return "", false
	}

	rest := strings.TrimLeft(s[end:], " \t")
	if strings.HasPrefix(rest, ":") {
		return s[:end], true
	}
	return "", false
}

func isIdentifierByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
