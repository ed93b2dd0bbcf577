// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package patcher

import (
	"log/slog"
	"sync"

	"github.com/petar-djukic/linepatch/internal/offsets"
	"github.com/petar-djukic/linepatch/internal/replace"
	"github.com/petar-djukic/linepatch/pkg/types"
)

// Session owns the offset tracker for one edit batch and serializes edits
// per file path. Edits to the same path are applied one at a time in call
// order; edits to different paths may run concurrently.
type Session struct {
	cfg    Config
	engine *replace.Engine

	trackerMu sync.Mutex
	tracker   *offsets.Tracker

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewSession creates a session with the given configuration.
func NewSession(cfg Config) *Session {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Session{
		cfg:     cfg,
		engine:  &replace.Engine{StrictFingerprint: cfg.StrictFingerprint},
		tracker: offsets.NewTracker(),
		locks:   make(map[string]*sync.Mutex),
	}
}

// Apply runs one edit through the translate -> execute -> record cycle.
// On success the replacement is recorded immediately, so the next Apply
// for the same path translates against up-to-date offsets. On failure
// nothing is recorded and the caller must not persist anything.
//
// The supplied content must be the file's actual current content, i.e.
// the NewContent of the previous successful Apply for that path.
func (s *Session) Apply(req Request) Result {
	lock := s.fileLock(req.FilePath)
	lock.Lock()
	defer lock.Unlock()

	first, last := s.translate(req)

	fileType := types.FileTypeForName(req.FileType)
	if req.FileType == "" {
		fileType = types.FileTypeForPath(req.FilePath)
	}

	outcome := s.engine.Execute(types.Edit{
		FilePath:    req.FilePath,
		Content:     req.Content,
		FirstLine:   first,
		LastLine:    last,
		Search:      req.Search,
		Replacement: req.Replacement,
		FileType:    fileType,
	})

	for _, w := range outcome.Warnings {
		s.cfg.Logger.Warn("fingerprint mismatch, proceeding on line numbers",
			"file", w.FilePath,
			"first_line", w.FirstLine,
			"last_line", w.LastLine,
			"similarity", w.Similarity,
		)
	}

	if outcome.Success {
		s.trackerMu.Lock()
		s.tracker.RecordReplacement(req.FilePath, first, last, outcome.NewLineCount)
		s.trackerMu.Unlock()
	}

	return Result{
		Outcome:   outcome,
		FirstLine: first,
		LastLine:  last,
		Offset:    first - req.FirstLine,
	}
}

// translate converts the claimed range into current coordinates. A pure
// insertion translates its anchor line and keeps the empty-span shape.
func (s *Session) translate(req Request) (int, int) {
	s.trackerMu.Lock()
	defer s.trackerMu.Unlock()

	if req.FirstLine >= 1 && req.LastLine == req.FirstLine-1 {
		first := s.tracker.AdjustLineNumber(req.FilePath, req.FirstLine)
		return first, first - 1
	}
	if req.FirstLine < 1 || req.LastLine < 1 {
		// Out of contract for the tracker; hand the raw range to the
		// engine so the caller gets a structured InvalidLineRange back.
		return req.FirstLine, req.LastLine
	}
	return s.tracker.AdjustLineRange(req.FilePath, req.FirstLine, req.LastLine)
}

// Tracking reports whether any replacement has been recorded for the path.
func (s *Session) Tracking(filePath string) bool {
	s.trackerMu.Lock()
	defer s.trackerMu.Unlock()
	return s.tracker.Tracking(filePath)
}

// ClearFile discards tracking state for a path, for example after the
// caller deletes the file.
func (s *Session) ClearFile(filePath string) {
	s.trackerMu.Lock()
	defer s.trackerMu.Unlock()
	s.tracker.ClearFile(filePath)
}

// Summary returns the diagnostic tracking snapshot for a path.
func (s *Session) Summary(filePath string) types.FileSummary {
	s.trackerMu.Lock()
	defer s.trackerMu.Unlock()
	return s.tracker.FileSummary(filePath)
}

// fileLock returns the per-path mutex, creating it on first use.
func (s *Session) fileLock(filePath string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	if l, ok := s.locks[filePath]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.locks[filePath] = l
	return l
}
