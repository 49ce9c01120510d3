// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyaml/fyaml/internal/issue"
	"github.com/fyaml/fyaml/pkg/fyaml"
	"github.com/fyaml/fyaml/pkg/types"
)

func newScaffoldCmd() *cobra.Command {
	var layout string
	var seq string
	var splitThreshold int64

	cmd := &cobra.Command{
		Use:   "scaffold FILE OUTDIR",
		Short: "Unpack a single YAML document back into a directory of fragments",
		Args:  cobra.MatchAll(cobra.ExactArgs(2), func(cmd *cobra.Command, args []string) error { return validPathArgs(args) }),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := fyaml.DefaultScaffoldOptions()

			switch layout {
			case "flat":
				opts.Layout = fyaml.ScaffoldFlat
			case "nested":
				opts.Layout = fyaml.ScaffoldNested
			case "hybrid", "":
				opts.Layout = fyaml.ScaffoldHybrid
			default:
				return issue.NewErrorContext().
					WithOperation("parse --layout").
					WithSuggestion("Use one of: flat, nested, hybrid").
					Wrap(fmt.Errorf("invalid value %q", layout)).
					BuildError()
			}

			switch seq {
			case "dir":
				opts.Seq = fyaml.SequenceDir
			case "files", "":
				opts.Seq = fyaml.SequenceFiles
			default:
				return issue.NewErrorContext().
					WithOperation("parse --seq").
					WithSuggestion("Use one of: files, dir").
					Wrap(fmt.Errorf("invalid value %q", seq)).
					BuildError()
			}

			opts.SplitThresholdBytes = splitThreshold

			sink := fyaml.Scaffold(args[0], args[1], opts)
			renderDiagnostics(cmd.ErrOrStderr(), sink)

			if sink.HasErrors() {
				result := fyaml.Result{Sink: sink, OK: false}
				return &ExitError{Code: types.ExitCode(result.ExitCode()), Err: fmt.Errorf("scaffold failed")}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&layout, "layout", "hybrid", "mapping layout: flat, nested, or hybrid")
	cmd.Flags().StringVar(&seq, "seq", "files", "sequence layout: files or dir")
	cmd.Flags().Int64Var(&splitThreshold, "split-threshold-bytes", 0, "fall back to a split directory for scalar fragments over N bytes (0 disables)")
	return cmd
}
