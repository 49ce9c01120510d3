// SPDX-License-Identifier: MPL-2.0

// Command fyaml packs a directory of YAML fragments into one canonical
// document, and unpacks a document back into fragments.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/fyaml/fyaml/internal/applog"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"

	verbose bool

	rootCmd = &cobra.Command{
		Use:   "fyaml",
		Short: "Pack a directory of YAML fragments into one canonical document",
		Long: TitleStyle.Render("fyaml") + SubtitleStyle.Render(" - fragmented YAML packer") + `

fyaml walks a directory tree of small YAML fragments and folds it into a
single canonical YAML or JSON document. Directories become mappings, or
sequences when every entry is numerically keyed; files contribute a key
derived from their filename.

` + SubtitleStyle.Render("Quick Start:") + `
  fyaml pack ./config               Pack a directory to stdout
  fyaml validate ./config            Check for collisions and structural issues
  fyaml explain ./config             Show how each key was derived
  fyaml diff ./a ./b                 Compare two fragment trees semantically
  fyaml scaffold in.yml ./out        Unpack a document back into fragments`,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose operational logging")

	rootCmd.AddCommand(newPackCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newExplainCmd())
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newScaffoldCmd())
}

// Execute adds all child commands to the root command and runs it. Called
// once by main.main.
func Execute() {
	cobra.OnInitialize(func() { applog.SetVerbose(verbose) })

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return Version + " (" + Commit + ")"
}
