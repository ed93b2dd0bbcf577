// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/linepatch/internal/batchfile"
	"github.com/petar-djukic/linepatch/internal/feedback"
	"github.com/petar-djukic/linepatch/internal/fileio"
	gitpkg "github.com/petar-djukic/linepatch/internal/git"
	"github.com/petar-djukic/linepatch/pkg/patcher"
)

// applyReport is the JSON result printed after a batch run.
type applyReport struct {
	Success       bool             `json:"success"`
	Applied       int              `json:"applied"`
	ModifiedFiles []string         `json:"modified_files,omitempty"`
	Rejected      []rejectedEntry  `json:"rejected,omitempty"`
	Warnings      []warningEntry   `json:"warnings,omitempty"`
	ManifestErrs  []string         `json:"manifest_errors,omitempty"`
	Errors        []string         `json:"errors,omitempty"`
	Feedback      string           `json:"feedback,omitempty"`
}

type rejectedEntry struct {
	File      string `json:"file"`
	FirstLine int    `json:"first_line"`
	LastLine  int    `json:"last_line"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
}

type warningEntry struct {
	File       string  `json:"file"`
	FirstLine  int     `json:"first_line"`
	LastLine   int     `json:"last_line"`
	Similarity float64 `json:"similarity"`
	Message    string  `json:"message"`
}

// newApplyCmd creates the "apply" command.
func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply an edit batch",
		Long:  "Apply loads a JSON edit batch, applies each file's edits sequentially with offset translation, and atomically writes the results. Rejected edits never partially apply.",
		RunE:  runApply,
	}

	cmd.Flags().StringP("batch", "b", "", "Path to the JSON edit batch (required)")
	cmd.MarkFlagRequired("batch")

	return cmd
}

// runApply executes the batch.
func runApply(cmd *cobra.Command, args []string) error {
	batchPath, _ := cmd.Flags().GetString("batch")
	workDir := viper.GetString("workdir")

	parsed, err := batchfile.Load(batchPath)
	if err != nil {
		return fmt.Errorf("loading batch: %w", err)
	}

	var repo *gitpkg.Repo
	if viper.GetBool("commit") {
		repo, err = prepareRepo(workDir, viper.GetBool("dirty-commit"))
		if err != nil {
			return fmt.Errorf("preparing repository: %w", err)
		}
	}

	report := runBatch(workDir, parsed, viper.GetBool("strict-fingerprint"), viper.GetInt("context-lines"))

	if repo != nil && report.Applied > 0 {
		if err := repo.CommitBatch(report.ModifiedFiles, parsed.Manifest.Description); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("commit failed: %v", err))
		}
	}

	printReport(report)

	if !report.Success {
		return fmt.Errorf("%d edit(s) rejected", len(report.Rejected))
	}
	return nil
}

// runBatch applies the manifest's edits in order, one session for the
// whole batch. Edits for the same file run against the previous edit's
// output, never a stale snapshot.
func runBatch(workDir string, parsed *batchfile.ParseResult, strict bool, contextLines int) *applyReport {
	report := &applyReport{}
	for _, e := range parsed.Errors {
		report.ManifestErrs = append(report.ManifestErrs, e.Error())
	}

	session := patcher.NewSession(patcher.Config{StrictFingerprint: strict})

	contents := make(map[string]string)
	modified := make(map[string]bool)
	var rejections []feedback.Rejected

	for _, edit := range parsed.Edits {
		content, ok := contents[edit.File]
		if !ok {
			data, err := os.ReadFile(filepath.Join(workDir, edit.File))
			if err != nil {
				report.Errors = append(report.Errors, fmt.Sprintf("reading %s: %v", edit.File, err))
				continue
			}
			content = string(data)
			contents[edit.File] = content
		}

		result := session.Apply(patcher.Request{
			FilePath:    edit.File,
			Content:     content,
			FirstLine:   edit.FirstLine,
			LastLine:    edit.LastLine,
			Search:      edit.Search,
			Replacement: edit.Replacement,
			FileType:    edit.FileType,
		})

		for _, w := range result.Outcome.Warnings {
			report.Warnings = append(report.Warnings, warningEntry{
				File:       w.FilePath,
				FirstLine:  w.FirstLine,
				LastLine:   w.LastLine,
				Similarity: w.Similarity,
				Message:    w.Message,
			})
		}

		if !result.Outcome.Success {
			report.Rejected = append(report.Rejected, rejectedEntry{
				File:      edit.File,
				FirstLine: result.FirstLine,
				LastLine:  result.LastLine,
				Kind:      result.Outcome.Err.Kind.String(),
				Message:   result.Outcome.Err.Message,
			})
			rejections = append(rejections, feedback.Rejected{
				FilePath:  edit.File,
				FirstLine: result.FirstLine,
				LastLine:  result.LastLine,
				Content:   content,
				Err:       result.Outcome.Err,
			})
			continue
		}

		contents[edit.File] = result.Outcome.NewContent
		modified[edit.File] = true
		report.Applied++
	}

	for _, edit := range parsed.Edits {
		if modified[edit.File] {
			modified[edit.File] = false
			report.ModifiedFiles = append(report.ModifiedFiles, edit.File)
			if err := fileio.WriteAtomic(filepath.Join(workDir, edit.File), []byte(contents[edit.File])); err != nil {
				report.Errors = append(report.Errors, fmt.Sprintf("writing %s: %v", edit.File, err))
			}
		}
	}

	report.Feedback = feedback.FormatRejections(rejections, feedback.FormatConfig{ContextLines: contextLines})
	report.Success = len(report.Rejected) == 0 && len(report.Errors) == 0 && len(report.ManifestErrs) == 0

	return report
}

// prepareRepo opens the work directory's repository and settles any
// pre-existing uncommitted changes, so the batch's own commit stays
// reviewable in isolation.
func prepareRepo(workDir string, dirtyCommit bool) (*gitpkg.Repo, error) {
	repo, err := gitpkg.Open(gitpkg.Config{
		WorkDir:     workDir,
		AutoCommit:  true,
		DirtyCommit: dirtyCommit,
	})
	if err != nil {
		return nil, err
	}
	if err := repo.HandleDirty(); err != nil {
		return nil, err
	}
	return repo, nil
}

// printReport outputs the report as JSON to stdout.
func printReport(report *applyReport) {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling report: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
