// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command linepatch applies a JSON batch of LLM-proposed line-range edits
// to the files in a working directory.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	gitpkg "github.com/petar-djukic/linepatch/internal/git"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "linepatch",
		Short: "Incremental line-based patch engine",
		Long:  "linepatch applies partial-file edits expressed as line ranges, translating stale line numbers through the offsets recorded by earlier edits in the same batch.",
	}

	// Global flags.
	rootCmd.PersistentFlags().String("workdir", ".", "Directory the edit file paths are relative to")
	rootCmd.PersistentFlags().Bool("strict-fingerprint", false, "Reject edits whose expected content does not match")
	rootCmd.PersistentFlags().Bool("commit", false, "Commit applied batches to git")
	rootCmd.PersistentFlags().Bool("dirty-commit", true, "Commit pre-existing changes separately before a batch commit")
	rootCmd.PersistentFlags().Int("context-lines", 5, "Lines of context in rejection feedback")

	// Bind flags to viper.
	viper.BindPFlag("workdir", rootCmd.PersistentFlags().Lookup("workdir"))
	viper.BindPFlag("strict-fingerprint", rootCmd.PersistentFlags().Lookup("strict-fingerprint"))
	viper.BindPFlag("commit", rootCmd.PersistentFlags().Lookup("commit"))
	viper.BindPFlag("dirty-commit", rootCmd.PersistentFlags().Lookup("dirty-commit"))
	viper.BindPFlag("context-lines", rootCmd.PersistentFlags().Lookup("context-lines"))

	// Env vars: LINEPATCH_WORKDIR, LINEPATCH_COMMIT, etc.
	viper.SetEnvPrefix("LINEPATCH")
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".linepatch")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	// Add commands.
	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newUndoCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newUndoCmd creates the "undo" command.
func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the last linepatch commit",
		Long:  "Undo performs a soft reset of the last commit if it was made by linepatch.",
		RunE: func(cmd *cobra.Command, args []string) error {
			workDir := viper.GetString("workdir")

			repo, err := gitpkg.Open(gitpkg.Config{WorkDir: workDir})
			if err != nil {
				return fmt.Errorf("opening repository: %w", err)
			}

			if err := repo.Undo(); err != nil {
				return fmt.Errorf("undo failed: %w", err)
			}

			fmt.Println("Successfully reverted last linepatch commit.")
			return nil
		},
	}
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print linepatch version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("linepatch %s\n", version)
		},
	}
}
