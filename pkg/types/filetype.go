// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"path/filepath"
	"strings"
)

// FileType is the closed set of categories the structural validator
// dispatches on. The category decides which tokenizer features apply and
// whether declaration containment is checked at all.
type FileType int

const (
	FileTypeGeneric FileType = iota // Prose, markdown, unknown extensions; not validated
	FileTypeJSON                    // Double-quoted strings only, no comments
	FileTypeJSLike                  // JS/TS family: all comment and string forms
	FileTypeCSSLike                 // Block comments and quoted strings, no line comments
)

func (t FileType) String() string {
	switch t {
	case FileTypeJSON:
		return "json"
	case FileTypeJSLike:
		return "js_like"
	case FileTypeCSSLike:
		return "css_like"
	default:
		return "generic"
	}
}

// extensionTypes maps lowercase file extensions to categories. Anything not
// listed is generic.
var extensionTypes = map[string]FileType{
	".json":  FileTypeJSON,
	".js":    FileTypeJSLike,
	".jsx":   FileTypeJSLike,
	".ts":    FileTypeJSLike,
	".tsx":   FileTypeJSLike,
	".mjs":   FileTypeJSLike,
	".cjs":   FileTypeJSLike,
	".css":   FileTypeCSSLike,
	".scss":  FileTypeCSSLike,
	".less":  FileTypeCSSLike,
}

// FileTypeForPath maps a file path to its validator category by extension.
func FileTypeForPath(path string) FileType {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return FileTypeGeneric
}

// FileTypeForName maps an explicit hint string ("json", "ts", "css", ...) to
// a category, falling back to extension mapping and then to generic.
func FileTypeForName(hint string) FileType {
	switch strings.ToLower(strings.TrimSpace(hint)) {
	case "json":
		return FileTypeJSON
	case "js", "jsx", "ts", "tsx", "mjs", "cjs", "js_like":
		return FileTypeJSLike
	case "css", "scss", "less", "css_like":
		return FileTypeCSSLike
	case "", "generic", "txt", "text":
		return FileTypeGeneric
	}
	if t, ok := extensionTypes["."+strings.ToLower(strings.TrimSpace(hint))]; ok {
		return t
	}
	return FileTypeGeneric
}
