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

// diffDifferCode is the dedicated exit code for "inputs differ
// semantically": it does not overlap the shared 1/2/3/5 codes.
const diffDifferCode = 6

func newDiffCmd() *cobra.Command {
	var flags pipelineFlags
	var format string

	cmd := &cobra.Command{
		Use:   "diff DIR_A DIR_B",
		Short: "Compare two fragment trees' assembled documents structurally",
		Args:  cobra.MatchAll(cobra.ExactArgs(2), func(cmd *cobra.Command, args []string) error { return validPathArgs(args) }),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.buildConfig(cmd)
			if err != nil {
				return err
			}

			if format == "json" {
				differences, left, right := fyaml.DiffAll(args[0], args[1], cfg)
				if !left.OK || !right.OK {
					return diffAssembleError(cmd, left, right)
				}
				if err := writeDiffJSON(cmd.OutOrStdout(), differences); err != nil {
					return &ExitError{Code: types.ExitCode(1), Err: err}
				}
				if len(differences) > 0 {
					return &ExitError{Code: types.ExitCode(diffDifferCode), Err: fmt.Errorf("inputs differ semantically")}
				}
				return nil
			}

			diffResult, left, right := fyaml.Diff(args[0], args[1], cfg)
			if !left.OK || !right.OK {
				return diffAssembleError(cmd, left, right)
			}
			renderDiffHuman(cmd, diffResult, left, right)

			if !diffResult.Equal {
				return &ExitError{Code: types.ExitCode(diffDifferCode), Err: fmt.Errorf("inputs differ semantically")}
			}
			return nil
		},
	}

	registerPipelineFlags(cmd, &flags)
	cmd.Flags().StringVar(&format, "format", "path", "diff report format: path or json")
	return cmd
}

// diffAssembleError renders both sides' diagnostics and wraps the worse of
// their exit codes, used when either input failed to assemble regardless of
// --format.
func diffAssembleError(cmd *cobra.Command, left, right fyaml.Result) error {
	renderDiagnostics(cmd.ErrOrStderr(), left.Sink)
	renderDiagnostics(cmd.ErrOrStderr(), right.Sink)
	// Exit-code precedence, worst last: 3 > 5 > 2 > 1 > 0.
	rank := map[int]int{0: 0, 1: 1, 2: 2, 5: 3, 3: 4}
	code := left.ExitCode()
	if rc := right.ExitCode(); rank[rc] > rank[code] {
		code = rc
	}
	return &ExitError{Code: types.ExitCode(code), Err: fmt.Errorf("diff inputs failed to assemble")}
}

func renderDiffHuman(cmd *cobra.Command, result fyaml.DiffResult, left, right fyaml.Result) {
	w := cmd.OutOrStdout()
	if result.Equal {
		fmt.Fprintln(w, SuccessStyle.Render("documents are semantically equal"))
		return
	}
	fmt.Fprintln(w, ErrorStyle.Render("documents differ"))
	fmt.Fprintf(w, "  %s %s\n", FieldLabelStyle.Render("Path:"), CmdStyle.Render(result.Path))
	fmt.Fprintf(w, "  %s %s\n", FieldLabelStyle.Render("Reason:"), result.Reason)

	leftVal, leftOK := lookupDiffPath(left.Value, result.Path)
	rightVal, rightOK := lookupDiffPath(right.Value, result.Path)
	if leftOK && rightOK {
		if text, ok := fyaml.RenderScalarDiff("a"+result.Path, "b"+result.Path, leftVal, rightVal); ok {
			fmt.Fprintln(w, text)
		}
	}
}

// lookupDiffPath is a best-effort walk of a JSONPath-ish "$.a.b[0]"
// expression against v, used only to surface a unified diff for
// multi-line scalar differences; failures silently skip that detail.
func lookupDiffPath(v fyaml.Value, path string) (fyaml.Value, bool) {
	// Only "$" and "$.key" single-segment paths are resolved here; deeper
	// paths (sequence indices, nested keys) are reported by Path alone.
	if path == "$" {
		return v, true
	}
	if len(path) > 2 && path[:2] == "$." {
		key := path[2:]
		return v.Get(key)
	}
	return fyaml.Value{}, false
}

type differenceJSON struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

type diffAllResultJSON struct {
	Equal       bool             `json:"equal"`
	Differences []differenceJSON `json:"differences"`
}

// writeDiffJSON emits every difference between the two inputs, per
// --format=json's documented "emit all differences" behavior (the default
// path format instead reports only the first).
func writeDiffJSON(w io.Writer, differences []fyaml.Difference) error {
	out := diffAllResultJSON{
		Equal:       len(differences) == 0,
		Differences: make([]differenceJSON, len(differences)),
	}
	for i, d := range differences {
		out.Differences[i] = differenceJSON{Path: d.Path, Reason: d.Reason}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
