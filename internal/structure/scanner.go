// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package structure performs lightweight syntax-sanity checks on edited
// file content: matched nesting pairs and top-level declaration
// containment. It is a heuristic tokenizer, deliberately not a parser;
// false positives are preferred over accepting a structurally broken file.
package structure

import "github.com/petar-djukic/linepatch/pkg/types"

// scanState enumerates the tokenizer states. Nesting counters change only
// in stateNormal.
type scanState int

const (
	stateNormal scanState = iota
	stateLineComment
	stateBlockComment
	stateSingleQuote
	stateDoubleQuote
	stateTemplate
)

// scanOptions selects which literal forms the tokenizer recognizes for a
// file type. JSON has no comments and only double-quoted strings; CSS has
// block comments but no line comments or template literals.
type scanOptions struct {
	lineComments    bool
	blockComments   bool
	singleQuotes    bool
	doubleQuotes    bool
	templateStrings bool
}

// optionsFor returns the tokenizer configuration for a file type.
func optionsFor(ft types.FileType) scanOptions {
	switch ft {
	case types.FileTypeJSON:
		return scanOptions{doubleQuotes: true}
	case types.FileTypeCSSLike:
		return scanOptions{blockComments: true, singleQuotes: true, doubleQuotes: true}
	default:
		return scanOptions{
			lineComments:    true,
			blockComments:   true,
			singleQuotes:    true,
			doubleQuotes:    true,
			templateStrings: true,
		}
	}
}

// maskNonCode returns content with the interiors of strings and comments
// replaced by spaces, preserving newlines and byte offsets. Balance
// counting and the declaration heuristic both run on the masked text so
// that braces inside literals never count.
func maskNonCode(content string, opts scanOptions) string {
	out := []byte(content)
	state := stateNormal

	for i := 0; i < len(content); i++ {
		c := content[i]

		switch state {
		case stateNormal:
			switch {
			case opts.lineComments && c == '/' && i+1 < len(content) && content[i+1] == '/':
				state = stateLineComment
				out[i] = ' '
			case opts.blockComments && c == '/' && i+1 < len(content) && content[i+1] == '*':
				state = stateBlockComment
				out[i] = ' '
			case opts.singleQuotes && c == '\'':
				state = stateSingleQuote
				out[i] = ' '
			case opts.doubleQuotes && c == '"':
				state = stateDoubleQuote
				out[i] = ' '
			case opts.templateStrings && c == '`':
				state = stateTemplate
				out[i] = ' '
			}

		case stateLineComment:
			if c == '\n' {
				state = stateNormal
			} else {
				out[i] = ' '
			}

		case stateBlockComment:
			if c == '*' && i+1 < len(content) && content[i+1] == '/' {
				out[i] = ' '
				out[i+1] = ' '
				i++
				state = stateNormal
			} else if c != '\n' {
				out[i] = ' '
			}

		case stateSingleQuote, stateDoubleQuote, stateTemplate:
			quote := byte('\'')
			if state == stateDoubleQuote {
				quote = '"'
			} else if state == stateTemplate {
				quote = '`'
			}

			switch {
			case c == '\\' && i+1 < len(content):
				out[i] = ' '
				if content[i+1] != '\n' {
					out[i+1] = ' '
				}
				i++
			case c == quote:
				out[i] = ' '
				state = stateNormal
			case c == '\n' && state != stateTemplate:
				// Unterminated single-line string; recover at the newline.
				state = stateNormal
			default:
				if c != '\n' {
					out[i] = ' '
				}
			}
		}
	}

	return string(out)
}
