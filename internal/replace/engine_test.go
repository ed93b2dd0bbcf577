// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package replace

import (
	"strings"
	"testing"

	"github.com/petar-djukic/linepatch/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Execute(t *testing.T) {
	content := "line one\nline two\nline three\nline four\n"

	tests := []struct {
		name         string
		edit         types.Edit
		wantContent  string
		wantCount    int
		wantErrKind  types.ErrorKind
		wantErr      bool
		wantWarnings int
	}{
		{
			name: "single line replace",
			edit: types.Edit{
				Content: content, FirstLine: 2, LastLine: 2,
				Replacement: "LINE TWO\n",
			},
			wantContent: "line one\nLINE TWO\nline three\nline four\n",
			wantCount:   1,
		},
		{
			name: "multi line replace with growth",
			edit: types.Edit{
				Content: content, FirstLine: 2, LastLine: 3,
				Replacement: "a\nb\nc\n",
			},
			wantContent: "line one\na\nb\nc\nline four\n",
			wantCount:   3,
		},
		{
			name: "no-op replace round-trips",
			edit: types.Edit{
				Content: content, FirstLine: 2, LastLine: 3,
				Replacement: "line two\nline three\n",
			},
			wantContent: content,
			wantCount:   2,
		},
		{
			name: "deletion removes lines without spurious blank",
			edit: types.Edit{
				Content: content, FirstLine: 2, LastLine: 3,
				Replacement: "",
			},
			wantContent: "line one\nline four\n",
			wantCount:   0,
		},
		{
			name: "deletion spanning to last line",
			edit: types.Edit{
				Content: content, FirstLine: 3, LastLine: 4,
				Replacement: "",
			},
			wantContent: "line one\nline two\n",
			wantCount:   0,
		},
		{
			name: "whole file replacement",
			edit: types.Edit{
				Content: content, FirstLine: 1, LastLine: 4,
				Replacement: "fresh\n",
			},
			wantContent: "fresh\n",
			wantCount:   1,
		},
		{
			name: "whole file deletion yields empty content",
			edit: types.Edit{
				Content: content, FirstLine: 1, LastLine: 4,
				Replacement: "",
			},
			wantContent: "",
			wantCount:   0,
		},
		{
			name: "insertion before a line",
			edit: types.Edit{
				Content: content, FirstLine: 3, LastLine: 2,
				Replacement: "inserted\n",
			},
			wantContent: "line one\nline two\ninserted\nline three\nline four\n",
			wantCount:   1,
		},
		{
			name: "insertion at end of file",
			edit: types.Edit{
				Content: content, FirstLine: 5, LastLine: 4,
				Replacement: "appended\n",
			},
			wantContent: content + "appended\n",
			wantCount:   1,
		},
		{
			name: "no trailing newline preserved",
			edit: types.Edit{
				Content: "alpha\nbeta", FirstLine: 2, LastLine: 2,
				Replacement: "BETA",
			},
			wantContent: "alpha\nBETA",
			wantCount:   1,
		},
		{
			name: "first line beyond file",
			edit: types.Edit{
				Content: content, FirstLine: 10, LastLine: 12,
				Replacement: "x\n",
			},
			wantErr:     true,
			wantErrKind: types.KindInvalidLineRange,
		},
		{
			name: "last line beyond file",
			edit: types.Edit{
				Content: content, FirstLine: 3, LastLine: 9,
				Replacement: "x\n",
			},
			wantErr:     true,
			wantErrKind: types.KindInvalidLineRange,
		},
		{
			name: "zero first line",
			edit: types.Edit{
				Content: content, FirstLine: 0, LastLine: 2,
				Replacement: "x\n",
			},
			wantErr:     true,
			wantErrKind: types.KindInvalidLineRange,
		},
		{
			name: "reversed range beyond insertion convention",
			edit: types.Edit{
				Content: content, FirstLine: 4, LastLine: 1,
				Replacement: "x\n",
			},
			wantErr:     true,
			wantErrKind: types.KindInvalidLineRange,
		},
		{
			name: "matching fingerprint produces no warning",
			edit: types.Edit{
				Content: content, FirstLine: 2, LastLine: 3,
				Search:      "line two\nline three\n",
				Replacement: "swapped\n",
			},
			wantContent: "line one\nswapped\nline four\n",
			wantCount:   1,
		},
		{
			name: "mismatched fingerprint proceeds with warning",
			edit: types.Edit{
				Content: content, FirstLine: 2, LastLine: 3,
				Search:      "something else entirely\n",
				Replacement: "swapped\n",
			},
			wantContent:  "line one\nswapped\nline four\n",
			wantCount:    1,
			wantWarnings: 1,
		},
	}

	engine := &Engine{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.edit.FilePath = "src/app.ts"
			if tt.edit.FileType == 0 {
				tt.edit.FileType = types.FileTypeGeneric
			}

			outcome := engine.Execute(tt.edit)

			if tt.wantErr {
				require.False(t, outcome.Success)
				require.NotNil(t, outcome.Err)
				assert.Equal(t, tt.wantErrKind, outcome.Err.Kind)
				assert.Empty(t, outcome.NewContent)
				return
			}

			require.True(t, outcome.Success, "unexpected error: %v", outcome.Err)
			assert.Equal(t, tt.wantContent, outcome.NewContent)
			assert.Equal(t, tt.wantCount, outcome.NewLineCount)
			assert.Len(t, outcome.Warnings, tt.wantWarnings)
		})
	}
}

func TestEngine_Execute_StructuralRejection(t *testing.T) {
	content := "function f() {\n  return 1;\n}\n"

	engine := &Engine{}
	outcome := engine.Execute(types.Edit{
		FilePath:    "src/f.ts",
		Content:     content,
		FirstLine:   2,
		LastLine:    2,
		Replacement: "  if (true) {\n    return 1;\n",
		FileType:    types.FileTypeJSLike,
	})

	require.False(t, outcome.Success)
	require.NotNil(t, outcome.Err)
	assert.Equal(t, types.KindUnbalancedBraces, outcome.Err.Kind)
	assert.Contains(t, outcome.Err.Message, "'{'")
	assert.Empty(t, outcome.NewContent)
}

func TestEngine_Execute_DanglingDeclarationRejection(t *testing.T) {
	before := "export default {\n  theme: {},\n  plugins: [],\n}\n"

	engine := &Engine{}
	// Close the object early, stranding plugins outside it. The result is
	// still balanced, so only the containment check can catch it.
	outcome := engine.Execute(types.Edit{
		FilePath:    "tailwind.config.js",
		Content:     before,
		FirstLine:   2,
		LastLine:    4,
		Replacement: "  theme: {},\n}\n  plugins: [],\n",
		FileType:    types.FileTypeJSLike,
	})

	require.False(t, outcome.Success)
	require.NotNil(t, outcome.Err)
	assert.Equal(t, types.KindDeclarationOutsideBlock, outcome.Err.Kind)
	assert.Contains(t, outcome.Err.Message, "'plugins'")
}

func TestEngine_Execute_StrictFingerprint(t *testing.T) {
	content := "a\nb\nc\n"

	engine := &Engine{StrictFingerprint: true}
	outcome := engine.Execute(types.Edit{
		FilePath:    "x.txt",
		Content:     content,
		FirstLine:   2,
		LastLine:    2,
		Search:      "not b\n",
		Replacement: "B\n",
		FileType:    types.FileTypeGeneric,
	})

	require.False(t, outcome.Success)
	require.NotNil(t, outcome.Err)
	assert.Equal(t, types.KindPatternMismatch, outcome.Err.Kind)
}

func TestEngine_Execute_EmptyFile(t *testing.T) {
	engine := &Engine{}

	t.Run("insertion into empty file", func(t *testing.T) {
		outcome := engine.Execute(types.Edit{
			FilePath: "new.txt", Content: "", FirstLine: 1, LastLine: 0,
			Replacement: "hello\n", FileType: types.FileTypeGeneric,
		})
		require.True(t, outcome.Success, "unexpected error: %v", outcome.Err)
		assert.Equal(t, "hello", outcome.NewContent)
		assert.Equal(t, 1, outcome.NewLineCount)
	})

	t.Run("replace in empty file is out of range", func(t *testing.T) {
		outcome := engine.Execute(types.Edit{
			FilePath: "new.txt", Content: "", FirstLine: 1, LastLine: 1,
			Replacement: "hello\n", FileType: types.FileTypeGeneric,
		})
		require.False(t, outcome.Success)
		assert.Equal(t, types.KindInvalidLineRange, outcome.Err.Kind)
	})
}

func TestFingerprintMatches(t *testing.T) {
	tests := []struct {
		name     string
		actual   string
		expected string
		want     bool
	}{
		{"exact match", "a\nb\nc", "a\nb\nc", true},
		{"exact match with trailing newline", "a\nb", "a\nb\n", true},
		{"length mismatch", "a\nb\nc", "a\nb", false},
		{"content mismatch", "a\nb\nc", "a\nX\nc", false},
		{"ellipsis elides middle", "a\nb\nc\nd\ne", "a\n...\ne", true},
		{"ellipsis with multi-line edges", "a\nb\nc\nd\ne", "a\nb\n...\nd\ne", true},
		{"ellipsis edge mismatch", "a\nb\nc\nd\ne", "a\n...\nX", false},
		{"ellipsis needs enough lines", "a\nb", "a\nb\n...\nc\nd", false},
		{"indented ellipsis line counts as marker", "a\nb\nc", "a\n  ...\nc", true},
		{"ellipsis only matches anything", "a\nb", "...", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fingerprintMatches(tt.actual, tt.expected))
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("same", "same"))
	assert.Equal(t, 0.0, similarity("", "x"))
	assert.Equal(t, 0.0, similarity("x", ""))
	assert.Greater(t, similarity("const a = 1;", "const a = 2;"), 0.8)
	assert.Less(t, similarity("const a = 1;", strings.Repeat("z", 40)), 0.3)
}
