// SPDX-License-Identifier: MPL-2.0

package fyaml

// SeqGapMode controls how a sequence directory with non-contiguous
// indices is handled.
type SeqGapMode int

const (
	// SeqGapError fails the sequence with E040 on any gap.
	SeqGapError SeqGapMode = iota
	// SeqGapWarn emits W041 but keeps the present elements, in order.
	SeqGapWarn
	// SeqGapAllow silently keeps the present elements, in order.
	SeqGapAllow
)

// String renders the SeqGapMode as its CLI flag spelling.
func (m SeqGapMode) String() string {
	switch m {
	case SeqGapError:
		return "error"
	case SeqGapWarn:
		return "warn"
	case SeqGapAllow:
		return "allow"
	default:
		return "unknown"
	}
}

// MultiDocMode controls how a fragment containing more than one YAML
// document is handled.
type MultiDocMode int

const (
	// MultiDocError fails the fragment with E030 on more than one document.
	MultiDocError MultiDocMode = iota
	// MultiDocFirst keeps only the first document, with a W031 warning.
	MultiDocFirst
	// MultiDocAll folds every document into a Value::Seq.
	MultiDocAll
)

// String renders the MultiDocMode as its CLI flag spelling.
func (m MultiDocMode) String() string {
	switch m {
	case MultiDocError:
		return "error"
	case MultiDocFirst:
		return "first"
	case MultiDocAll:
		return "all"
	default:
		return "unknown"
	}
}

// RootModeKind selects the top-level document construction policy.
type RootModeKind int

const (
	// RootModeMap folds the scan root as a mapping (or an equivalent
	// sequence, if every root contributor happens to be numeric).
	RootModeMap RootModeKind = iota
	// RootModeSeq requires the scan root to fold to a sequence.
	RootModeSeq
	// RootModeFile parses a root file and merges the directory mapping
	// under a configured key.
	RootModeFile
)

// String renders the RootModeKind as its CLI flag spelling.
func (m RootModeKind) String() string {
	switch m {
	case RootModeMap:
		return "map-root"
	case RootModeSeq:
		return "seq-root"
	case RootModeFile:
		return "file-root"
	default:
		return "unknown"
	}
}

// RootMode carries the RootModeKind plus the extra configuration
// FileRoot needs.
type RootMode struct {
	Kind       RootModeKind
	RootFile   string
	MergeUnder string
	HasMerge   bool
}

// DefaultEditorJunkGlobs is the default glob list for editor-junk
// filtering.
var DefaultEditorJunkGlobs = []string{"*~", ".DS_Store", "Thumbs.db"}

// Config bundles every knob the Scanner, Parser, and Assembler read. A
// zero Config is not valid; use DefaultConfig().
type Config struct {
	// Scanner
	IncludeHidden     bool
	EditorJunkGlobs   []string
	MaxYAMLBytes      int64 // 0 means unlimited
	AllowDottedKeys   bool
	AllowReservedKeys bool

	// Parser
	MultiDoc MultiDocMode

	// Assembler
	RootMode RootMode
	SeqGaps  SeqGapMode

	// Cross-cutting
	Strict   bool
	Preserve bool
}

// DefaultConfig returns fyaml's documented defaults: map-root,
// seq-gaps=warn, multi-doc=error, no size cap, hidden/dotted/reserved
// entries excluded unless opted in.
func DefaultConfig() Config {
	return Config{
		EditorJunkGlobs: append([]string(nil), DefaultEditorJunkGlobs...),
		MultiDoc:        MultiDocError,
		RootMode:        RootMode{Kind: RootModeMap},
		SeqGaps:         SeqGapWarn,
	}
}
