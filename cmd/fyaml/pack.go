// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fyaml/fyaml/internal/issue"
	"github.com/fyaml/fyaml/pkg/fyaml"
	"github.com/fyaml/fyaml/pkg/types"
)

func newPackCmd() *cobra.Command {
	var flags pipelineFlags
	var format string
	var noHeader bool
	var outPath string

	cmd := &cobra.Command{
		Use:   "pack DIR",
		Short: "Pack a directory of YAML fragments into one canonical document",
		Args:  cobra.MatchAll(cobra.ExactArgs(1), func(cmd *cobra.Command, args []string) error { return validPathArgs(args) }),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.buildConfig(cmd)
			if err != nil {
				return err
			}

			result := fyaml.Run(args[0], cfg)
			renderDiagnostics(cmd.ErrOrStderr(), result.Sink)

			if !result.OK {
				return &ExitError{Code: types.ExitCode(result.ExitCode()), Err: fmt.Errorf("pack failed")}
			}

			emitFormat := fyaml.FormatYAML
			if format == "json" {
				emitFormat = fyaml.FormatJSON
			}
			text, err := fyaml.Emit(result.Value, fyaml.EmitOptions{
				Format:   emitFormat,
				Preserve: cfg.Preserve,
				NoHeader: noHeader,
				Version:  Version,
			})
			if err != nil {
				return &ExitError{Code: types.ExitCode(5), Err: issue.NewErrorContext().
					WithOperation("emit packed document").
					Wrap(err).
					BuildError()}
			}

			if outPath == "" {
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}
			if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
				return &ExitError{Code: types.ExitCode(5), Err: issue.NewErrorContext().
					WithOperation("write packed output").
					WithResource(outPath).
					Wrap(err).
					BuildError()}
			}
			return nil
		},
	}

	registerPipelineFlags(cmd, &flags)
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "omit the `# packed by fyaml` header comment")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write output to PATH instead of stdout")
	return cmd
}
