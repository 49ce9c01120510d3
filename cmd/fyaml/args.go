// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/fyaml/fyaml/pkg/types"
)

// validPathArgs runs a FilesystemPath validity check on every argument,
// rejecting empty or whitespace-only paths before they reach the pipeline.
// Subcommands combine it with an arity check via cobra.MatchAll.
func validPathArgs(args []string) error {
	for _, a := range args {
		p := types.FilesystemPath(a)
		if ok, errs := p.IsValid(); !ok {
			return fmt.Errorf("%w", errs[0])
		}
	}
	return nil
}
