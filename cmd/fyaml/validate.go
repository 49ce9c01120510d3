// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyaml/fyaml/pkg/fyaml"
	"github.com/fyaml/fyaml/pkg/types"
)

func newValidateCmd() *cobra.Command {
	var flags pipelineFlags
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "validate DIR",
		Short: "Run the scan/parse/assemble pipeline and report diagnostics without emitting output",
		Args:  cobra.MatchAll(cobra.ExactArgs(1), func(cmd *cobra.Command, args []string) error { return validPathArgs(args) }),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.buildConfig(cmd)
			if err != nil {
				return err
			}

			result := fyaml.Run(args[0], cfg)

			if jsonOut {
				if err := writeDiagnosticsJSON(cmd.OutOrStdout(), result.Sink); err != nil {
					return &ExitError{Code: types.ExitCode(1), Err: err}
				}
			} else {
				renderDiagnostics(cmd.OutOrStdout(), result.Sink)
				if result.OK {
					fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("no issues found"))
				}
			}

			if !result.OK {
				return &ExitError{Code: types.ExitCode(result.ExitCode()), Err: fmt.Errorf("validation failed")}
			}
			return nil
		},
	}

	registerPipelineFlags(cmd, &flags)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit diagnostics as a JSON array")
	return cmd
}
