// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyaml/fyaml/internal/config"
	"github.com/fyaml/fyaml/internal/issue"
	"github.com/fyaml/fyaml/pkg/fyaml"
)

// pipelineFlags mirrors the flag surface shared by pack/validate/explain/
// diff. Each of those commands registers the full set.
type pipelineFlags struct {
	rootMode          string
	rootFile          string
	mergeUnder        string
	includeHidden     bool
	seqGaps           string
	multiDoc          string
	allowDottedKeys   bool
	allowReservedKeys bool
	preserve          bool
	strict            bool
	maxYAMLBytes      int64
}

func registerPipelineFlags(cmd *cobra.Command, f *pipelineFlags) {
	cmd.Flags().StringVar(&f.rootMode, "root-mode", "map-root", "root construction mode: map-root, seq-root, or file-root")
	cmd.Flags().StringVar(&f.rootFile, "root-file", "", "root document file, required for --root-mode=file-root")
	cmd.Flags().StringVar(&f.mergeUnder, "merge-under", "", "merge the directory mapping under this key of the root file")
	cmd.Flags().BoolVar(&f.includeHidden, "include-hidden", false, "include dotfiles and dot-directories")
	cmd.Flags().StringVar(&f.seqGaps, "seq-gaps", "", "sequence gap policy: error, warn, or allow")
	cmd.Flags().StringVar(&f.multiDoc, "multi-doc", "", "multi-document fragment policy: error, first, or all")
	cmd.Flags().BoolVar(&f.allowDottedKeys, "allow-dotted-keys", false, "permit keys containing a dot without warning")
	cmd.Flags().BoolVar(&f.allowReservedKeys, "allow-reserved-keys", false, "permit YAML reserved words as keys, force-quoted on emit")
	cmd.Flags().BoolVar(&f.preserve, "preserve", false, "preserve fragment insertion order instead of canonical sorting")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "promote warnings to errors")
	cmd.Flags().Int64Var(&f.maxYAMLBytes, "max-yaml-bytes", 0, "reject fragments larger than N bytes (0 = unlimited)")
}

// buildConfig resolves a fyaml.Config from explicitly-passed flags,
// falling back to environment-derived defaults (internal/config) for any
// flag the caller did not explicitly set.
func (f *pipelineFlags) buildConfig(cmd *cobra.Command) (fyaml.Config, error) {
	defaults := config.Load()
	cfg := defaults.ToConfig(fyaml.DefaultConfig())

	changed := cmd.Flags().Changed

	if changed("include-hidden") {
		cfg.IncludeHidden = f.includeHidden
	}
	if changed("allow-dotted-keys") {
		cfg.AllowDottedKeys = f.allowDottedKeys
	}
	if changed("allow-reserved-keys") {
		cfg.AllowReservedKeys = f.allowReservedKeys
	}
	if changed("max-yaml-bytes") {
		cfg.MaxYAMLBytes = f.maxYAMLBytes
	}
	if changed("seq-gaps") {
		mode, err := parseSeqGaps(f.seqGaps)
		if err != nil {
			return cfg, err
		}
		cfg.SeqGaps = mode
	}
	if changed("multi-doc") {
		mode, err := parseMultiDoc(f.multiDoc)
		if err != nil {
			return cfg, err
		}
		cfg.MultiDoc = mode
	}

	cfg.Preserve = f.preserve
	cfg.Strict = f.strict

	rootMode, err := parseRootMode(f.rootMode, f.rootFile, f.mergeUnder)
	if err != nil {
		return cfg, err
	}
	cfg.RootMode = rootMode

	return cfg, nil
}

func parseSeqGaps(s string) (fyaml.SeqGapMode, error) {
	switch s {
	case "error":
		return fyaml.SeqGapError, nil
	case "warn":
		return fyaml.SeqGapWarn, nil
	case "allow":
		return fyaml.SeqGapAllow, nil
	default:
		return 0, issue.NewErrorContext().
			WithOperation("parse --seq-gaps").
			WithSuggestion("Use one of: error, warn, allow").
			Wrap(fmt.Errorf("invalid value %q", s)).
			BuildError()
	}
}

func parseMultiDoc(s string) (fyaml.MultiDocMode, error) {
	switch s {
	case "error":
		return fyaml.MultiDocError, nil
	case "first":
		return fyaml.MultiDocFirst, nil
	case "all":
		return fyaml.MultiDocAll, nil
	default:
		return 0, issue.NewErrorContext().
			WithOperation("parse --multi-doc").
			WithSuggestion("Use one of: error, first, all").
			Wrap(fmt.Errorf("invalid value %q", s)).
			BuildError()
	}
}

func parseRootMode(mode, rootFile, mergeUnder string) (fyaml.RootMode, error) {
	switch mode {
	case "map-root", "":
		return fyaml.RootMode{Kind: fyaml.RootModeMap}, nil
	case "seq-root":
		return fyaml.RootMode{Kind: fyaml.RootModeSeq}, nil
	case "file-root":
		if rootFile == "" {
			return fyaml.RootMode{}, issue.NewErrorContext().
				WithOperation("parse --root-mode").
				WithSuggestion("Pass --root-file PATH when using --root-mode=file-root").
				Wrap(fmt.Errorf("file-root requires --root-file")).
				BuildError()
		}
		return fyaml.RootMode{
			Kind:       fyaml.RootModeFile,
			RootFile:   rootFile,
			MergeUnder: mergeUnder,
			HasMerge:   mergeUnder != "",
		}, nil
	default:
		return fyaml.RootMode{}, issue.NewErrorContext().
			WithOperation("parse --root-mode").
			WithSuggestion("Use one of: map-root, seq-root, file-root").
			Wrap(fmt.Errorf("invalid value %q", mode)).
			BuildError()
	}
}
