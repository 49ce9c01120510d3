// SPDX-License-Identifier: MPL-2.0

package fyaml

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ScaffoldLayout selects how scaffold lays out nested maps on disk.
type ScaffoldLayout int

const (
	// ScaffoldHybrid writes a directory per nested map/sequence (the
	// default).
	ScaffoldHybrid ScaffoldLayout = iota
	// ScaffoldFlat writes every nested map/sequence as a single YAML
	// file instead of a subdirectory.
	ScaffoldFlat
	// ScaffoldNested is an alias of Hybrid retained for flag-surface
	// parity; both always recurse into directories.
	ScaffoldNested
)

// SequenceLayout selects how scaffold lays out sequence elements on disk.
type SequenceLayout int

const (
	// SequenceFiles writes one numbered YAML file per element.
	SequenceFiles SequenceLayout = iota
	// SequenceDir writes one numbered directory per element, recursing
	// into it for map/sequence elements.
	SequenceDir
)

// ScaffoldOptions configures Scaffold.
type ScaffoldOptions struct {
	Layout              ScaffoldLayout
	Seq                 SequenceLayout
	SplitThresholdBytes int64 // 0 disables splitting
}

// DefaultScaffoldOptions returns scaffold's documented defaults: hybrid
// layout, one file per sequence element, no splitting.
func DefaultScaffoldOptions() ScaffoldOptions {
	return ScaffoldOptions{Layout: ScaffoldHybrid, Seq: SequenceFiles}
}

// Scaffold reads a single YAML document from inputFile and writes it out
// as a directory tree of fragments under outputDir, the inverse direction
// of the pack pipeline. It is intentionally non-invertible: running pack
// against scaffold's own output is not guaranteed to reproduce the
// original document byte-for-byte, only semantically.
func Scaffold(inputFile, outputDir string, opts ScaffoldOptions) *Sink {
	sink := NewSink()

	contents, err := os.ReadFile(inputFile)
	if err != nil {
		sink.Push(Errorf("E200", "unable to read scaffold input file").
			WithPaths(inputFile).
			WithCause(err.Error()).
			WithAction("Pass a readable YAML file to the scaffold command."))
		return sink
	}

	nodes, err := decodeDocuments(contents)
	if err != nil {
		sink.Push(Errorf("E201", "invalid YAML in scaffold input").
			WithPaths(inputFile).
			WithCause(err.Error()).
			WithAction("Fix YAML syntax before scaffolding."))
		return sink
	}
	if len(nodes) > 1 {
		sink.Push(Errorf("E202", "scaffold input must be a single YAML document").
			WithPaths(inputFile).
			WithCause("Multiple documents were found in scaffold input.").
			WithAction("Provide a single YAML document for deterministic scaffold output."))
		return sink
	}

	value := Null
	if len(nodes) == 1 {
		value = nodeToValue(nodes[0])
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		sink.Push(Errorf("E203", "unable to create scaffold output directory").
			WithPaths(outputDir).
			WithCause(err.Error()).
			WithAction("Check write permissions for the output path."))
		return sink
	}

	writeScaffoldValue(sink, "", value, outputDir, opts)

	sink.Push(Infof("I200", "scaffold generated a deterministic FYAML layout (non-invertible helper)").
		WithPaths(outputDir).
		WithCause("Scaffold is intentionally one-way and not a reverse of pack.").
		WithAction("Validate with `fyaml pack <DIR>` and compare semantic output separately."))

	return sink
}

func writeScaffoldValue(sink *Sink, key string, v Value, directory string, opts ScaffoldOptions) {
	switch v.Kind {
	case KindMap:
		writeScaffoldMapping(sink, key, v, directory, opts)
	case KindSeq:
		writeScaffoldSequence(sink, key, v, directory, opts)
	default:
		name := key
		if name == "" {
			name = "root"
		}
		writeScaffoldScalar(sink, name, v, directory, opts)
	}
}

func writeScaffoldMapping(sink *Sink, key string, v Value, directory string, opts ScaffoldOptions) {
	target := directory
	if key != "" {
		norm, ok := normalizeScaffoldKey(sink, key)
		if !ok {
			return
		}
		target = filepath.Join(directory, norm)
		if err := os.MkdirAll(target, 0o755); err != nil {
			sink.Push(Errorf("E204", "unable to create mapping directory").
				WithPaths(target).
				WithCause(err.Error()).
				WithAction("Check write permissions and path validity."))
			return
		}
	}

	for _, k := range v.SortedMapKeys() {
		child, _ := v.Get(k)
		switch child.Kind {
		case KindMap:
			if opts.Layout == ScaffoldFlat {
				writeScaffoldScalar(sink, k, child, target, opts)
			} else {
				writeScaffoldMapping(sink, k, child, target, opts)
			}
		case KindSeq:
			if opts.Layout == ScaffoldFlat {
				writeScaffoldScalar(sink, k, child, target, opts)
			} else {
				writeScaffoldSequence(sink, k, child, target, opts)
			}
		default:
			writeScaffoldScalar(sink, k, child, target, opts)
		}
	}
}

func writeScaffoldSequence(sink *Sink, key string, v Value, directory string, opts ScaffoldOptions) {
	base := directory
	if key != "" {
		norm, ok := normalizeScaffoldKey(sink, key)
		if !ok {
			return
		}
		base = filepath.Join(directory, norm)
		if err := os.MkdirAll(base, 0o755); err != nil {
			sink.Push(Errorf("E206", "unable to create sequence directory").
				WithPaths(base).
				WithCause(err.Error()).
				WithAction("Check write permissions and path validity."))
			return
		}
	}

	for i, item := range v.Seq {
		idx := strconv.Itoa(i)
		if opts.Seq == SequenceFiles {
			writeScaffoldScalar(sink, idx, item, base, opts)
			continue
		}
		itemDir := filepath.Join(base, idx)
		if err := os.MkdirAll(itemDir, 0o755); err != nil {
			sink.Push(Errorf("E207", "unable to create sequence item directory").
				WithPaths(itemDir).
				WithCause(err.Error()).
				WithAction("Check write permissions and path validity."))
			continue
		}
		switch item.Kind {
		case KindMap:
			writeScaffoldMapping(sink, "", item, itemDir, opts)
		case KindSeq:
			writeScaffoldSequence(sink, "", item, itemDir, opts)
		default:
			writeScaffoldScalar(sink, "value", item, itemDir, opts)
		}
	}
}

func writeScaffoldScalar(sink *Sink, key string, v Value, directory string, opts ScaffoldOptions) {
	norm, ok := normalizeScaffoldKey(sink, key)
	if !ok {
		return
	}
	outputPath := filepath.Join(directory, norm+".yml")

	yamlText, err := Emit(v, EmitOptions{Format: FormatYAML, NoHeader: true})
	if err != nil {
		sink.Push(Errorf("E208", "unable to serialize YAML fragment").
			WithPaths(outputPath).
			WithCause(err.Error()).
			WithAction("Report this issue; YAML serialization should succeed for parsed input."))
		return
	}

	if opts.SplitThresholdBytes > 0 && int64(len(yamlText)) > opts.SplitThresholdBytes && v.Kind == KindString {
		nested := filepath.Join(directory, norm)
		if err := os.MkdirAll(nested, 0o755); err != nil {
			sink.Push(Errorf("E209", "unable to create split directory").
				WithPaths(nested).
				WithCause(err.Error()).
				WithAction("Check write permissions and path validity."))
			return
		}
		fallback := filepath.Join(nested, "value.yml")
		if err := os.WriteFile(fallback, []byte(yamlText), 0o644); err != nil {
			sink.Push(Errorf("E210", "unable to write split YAML fragment").
				WithPaths(fallback).
				WithCause(err.Error()).
				WithAction("Check write permissions and available disk space."))
		}
		return
	}

	if err := os.WriteFile(outputPath, []byte(yamlText), 0o644); err != nil {
		sink.Push(Errorf("E211", "unable to write YAML fragment").
			WithPaths(outputPath).
			WithCause(err.Error()).
			WithAction("Check write permissions and available disk space."))
	}
}

func normalizeScaffoldKey(sink *Sink, key string) (string, bool) {
	if strings.ContainsAny(key, "/\\") {
		sink.Push(Errorf("E212", "mapping key contains path separators and cannot be scaffolded").
			WithContextNote(fmt.Sprintf("key: %q", key)).
			WithCause("The scaffold layout maps keys to filesystem paths.").
			WithAction("Rename keys to avoid `/` or `\\`, or scaffold manually."))
		return "", false
	}
	if key == "" {
		sink.Push(Errorf("E213", "empty mapping key cannot be scaffolded").
			WithCause("Filesystem entries require non-empty names.").
			WithAction("Ensure all mapping keys are non-empty strings."))
		return "", false
	}
	return key, true
}
