// SPDX-License-Identifier: MPL-2.0

package fyaml

import (
	"os"
	"path/filepath"
)

// Result is the outcome of running the scan/parse/assemble pipeline once
// over a directory root.
type Result struct {
	Value Value
	OK    bool
	Sink  *Sink
	Tree  *ScanTree
}

// Run executes the full Scanner -> Parser -> Assembler pipeline against
// root. Every stage shares one Sink so diagnostics from all three stages
// are available together regardless of where the pipeline stops
// contributing a usable Value.
func Run(root string, cfg Config) Result {
	sink := NewSink()

	info, err := os.Stat(root)
	if err != nil {
		sink.Push(Errorf("E000", "input directory does not exist").
			WithPaths(root).
			WithCause("The provided path is missing.").
			WithAction("Pass an existing directory to fyaml commands."))
		return Result{Sink: sink, OK: false}
	}
	if !info.IsDir() {
		sink.Push(Errorf("E000", "input path is not a directory").
			WithPaths(root).
			WithCause("FYAML operations require a directory root.").
			WithAction("Provide a directory path as the command argument."))
		return Result{Sink: sink, OK: false}
	}

	excluded := ""
	if cfg.RootMode.Kind == RootModeFile && cfg.RootMode.RootFile != "" {
		excluded = cfg.RootMode.RootFile
		if !filepath.IsAbs(excluded) {
			excluded = filepath.Join(root, excluded)
		}
	}

	scanner := NewScanner(cfg, sink, excluded)
	tree := scanner.Scan(root)

	parser := NewParser(cfg, sink)
	parser.ParseTree(tree, nil)

	assembler := NewAssembler(cfg, sink)
	value, ok := assembler.Assemble(tree, root)

	if ignored := collectIgnored(tree.Root); len(ignored) > 0 {
		sink.Push(Warnf("W050", "ignored %d file(s)/directory(ies) while scanning", len(ignored)).
			WithCause("Entries did not match FYAML inclusion rules.").
			WithAction("Run `fyaml explain` to see all ignored entries."))
	}

	if cfg.Strict {
		sink.ApplyStrict()
	}

	return Result{Value: value, OK: ok && !sink.HasErrors(), Sink: sink, Tree: tree}
}

// ExitCode derives the process exit code from r's diagnostics, following
// the category precedence Parse > Write > InvalidInput > Internal.
func (r Result) ExitCode() int {
	if !r.OK {
		if cat, hasErr := r.Sink.exitCategory(); hasErr {
			switch cat {
			case categoryParse:
				return 3
			case categoryWrite:
				return 5
			case categoryInternal:
				return 1
			default:
				return 2
			}
		}
		return 1
	}
	return 0
}

// collectIgnored walks the ScanTree collecting every IgnoredEntry, used to
// surface the summary W050 diagnostic after a full scan.
func collectIgnored(n *ScanNode) []IgnoredEntry {
	all := append([]IgnoredEntry(nil), n.Ignored...)
	for _, c := range n.Children {
		if c.Kind == NodeDir {
			all = append(all, collectIgnored(c)...)
		}
	}
	return all
}
