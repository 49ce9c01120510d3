// SPDX-License-Identifier: MPL-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fyaml/fyaml/pkg/fyaml"
	"github.com/fyaml/fyaml/pkg/types"
)

func newExplainCmd() *cobra.Command {
	var flags pipelineFlags
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "explain DIR",
		Short: "Show how each key was derived and which entries were ignored",
		Args:  cobra.MatchAll(cobra.ExactArgs(1), func(cmd *cobra.Command, args []string) error { return validPathArgs(args) }),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.buildConfig(cmd)
			if err != nil {
				return err
			}

			result := fyaml.Run(args[0], cfg)
			report := fyaml.Explain(result.Tree, cfg)

			if jsonOut {
				if err := writeExplainJSON(cmd.OutOrStdout(), result, report); err != nil {
					return &ExitError{Code: types.ExitCode(1), Err: err}
				}
			} else {
				renderExplainHuman(cmd, result, report)
			}

			if !result.OK {
				return &ExitError{Code: types.ExitCode(result.ExitCode()), Err: fmt.Errorf("explain failed")}
			}
			return nil
		},
	}

	registerPipelineFlags(cmd, &flags)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the explain report as JSON")
	return cmd
}

func renderExplainHuman(cmd *cobra.Command, result fyaml.Result, report fyaml.ExplainReport) {
	w := cmd.OutOrStdout()

	if len(result.Sink.All()) > 0 {
		renderDiagnostics(cmd.ErrOrStderr(), result.Sink)
	}

	fmt.Fprintln(w, TitleStyle.Render("Derived keys"))
	for _, k := range report.DerivedKeys {
		fmt.Fprintf(w, "  %s -> %s\n", k.Source, CmdStyle.Render(k.DerivedKeyPath))
	}

	fmt.Fprintln(w, TitleStyle.Render("Directory modes"))
	for _, m := range report.DirectoryModes {
		fmt.Fprintf(w, "  %s: %s\n", m.Directory, CmdStyle.Render(m.Mode))
		for _, c := range m.Contributors {
			fmt.Fprintf(w, "    - %s\n", c)
		}
	}

	if len(report.Ignored) > 0 {
		fmt.Fprintln(w, TitleStyle.Render("Ignored entries"))
		for _, ig := range report.Ignored {
			fmt.Fprintf(w, "  %s (%s, rule=%s)\n", ig.Path, ig.Reason, ig.RuleID)
		}
	}
}

type explainEnvelope struct {
	KeyTree       []fyaml.DerivedKeyRecord    `json:"key_tree"`
	Ignored       []fyaml.IgnoredRecord       `json:"ignored"`
	ModeDecisions []fyaml.DirectoryModeRecord `json:"mode_decisions"`
	Diagnostics   []diagnosticJSON            `json:"diagnostics"`
}

func writeExplainJSON(w io.Writer, result fyaml.Result, report fyaml.ExplainReport) error {
	all := result.Sink.All()
	diags := make([]diagnosticJSON, len(all))
	for i, d := range all {
		diags[i] = toDiagnosticJSON(d)
	}
	envelope := explainEnvelope{
		KeyTree:       report.DerivedKeys,
		Ignored:       report.Ignored,
		ModeDecisions: report.DirectoryModes,
		Diagnostics:   diags,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(envelope)
}
