// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package feedback

import (
	"strings"
	"testing"

	"github.com/petar-djukic/linepatch/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRejections(t *testing.T) {
	content := "l1\nl2\nl3\nl4\nl5\nl6\nl7\nl8\nl9\nl10\n"

	rejections := []Rejected{
		{
			FilePath:  "src/f.ts",
			FirstLine: 5,
			LastLine:  6,
			Content:   content,
			Err: &types.EditError{
				Kind:     types.KindUnbalancedBraces,
				FilePath: "src/f.ts",
				Message:  "unmatched braces/brackets: 2 '{' vs 1 '}'",
			},
		},
	}

	out := FormatRejections(rejections, FormatConfig{ContextLines: 2})

	assert.Contains(t, out, "src/f.ts (lines 5-6): UNBALANCED_BRACES")
	assert.Contains(t, out, "2 '{' vs 1 '}'")

	// Context window: lines 3-8, with the target range marked.
	assert.Contains(t, out, "   3 │ l3")
	assert.Contains(t, out, ">    5 │ l5")
	assert.Contains(t, out, ">    6 │ l6")
	assert.Contains(t, out, "   8 │ l8")
	assert.NotContains(t, out, "l2\n")
	assert.NotContains(t, out, "│ l9")
}

func TestFormatRejections_MultipleErrors(t *testing.T) {
	rejections := []Rejected{
		{
			FilePath: "a.ts", FirstLine: 1, LastLine: 1, Content: "x\n",
			Err: &types.EditError{Kind: types.KindInvalidLineRange, Message: "first line 9 is beyond the file's 1 lines"},
		},
		{
			FilePath: "b.json", FirstLine: 2, LastLine: 2, Content: "{\n}\n",
			Err: &types.EditError{Kind: types.KindDeclarationOutsideBlock, Message: "structural issue"},
		},
	}

	out := FormatRejections(rejections, FormatConfig{})

	require.Equal(t, 2, strings.Count(out, "### "))
	assert.Contains(t, out, "INVALID_LINE_RANGE")
	assert.Contains(t, out, "DECLARATION_OUTSIDE_BLOCK")
}

func TestFormatRejections_EmptyInputProducesNothing(t *testing.T) {
	assert.Equal(t, "", FormatRejections(nil, FormatConfig{}))
}

func TestCodeContext_RangeOutsideContent(t *testing.T) {
	assert.Equal(t, "", codeContext("a\nb\n", 50, 52, 3))
	assert.Equal(t, "", codeContext("", 1, 1, 3))
}
