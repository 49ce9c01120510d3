// SPDX-License-Identifier: MPL-2.0

package fyaml

import "fmt"

// DerivedKeyRecord records one source file/directory and the key path it
// contributed.
type DerivedKeyRecord struct {
	Source         string
	DerivedKeyPath string
}

// IgnoredRecord records one entry the scanner excluded and why.
type IgnoredRecord struct {
	Path   string
	Reason IgnoredReason
	RuleID string
}

// DirectoryModeRecord records the fold mode a directory resolved to and
// which contributors produced it.
type DirectoryModeRecord struct {
	Directory    string
	Mode         string
	Contributors []string
}

// ExplainReport is the Explain driver's output.
type ExplainReport struct {
	DerivedKeys    []DerivedKeyRecord
	Ignored        []IgnoredRecord
	DirectoryModes []DirectoryModeRecord
}

// Explain walks tree (already scanned, parsed, and folded by Run) and
// produces a human/JSON-renderable report of how the document's shape
// came to be.
func Explain(tree *ScanTree, cfg Config) ExplainReport {
	var report ExplainReport
	explainNode(tree.Root, nil, cfg, &report)
	return report
}

func explainNode(n *ScanNode, keyPath []string, cfg Config, report *ExplainReport) {
	for _, ig := range n.Ignored {
		report.Ignored = append(report.Ignored, IgnoredRecord{Path: ig.Path, Reason: ig.Reason, RuleID: ig.RuleID})
	}

	if n.Kind == NodeFile {
		report.DerivedKeys = append(report.DerivedKeys, DerivedKeyRecord{
			Source:         n.Path,
			DerivedKeyPath: dottedPath(keyPath),
		})
		return
	}

	allNumeric, allNonNumeric, any := true, true, false
	contributors := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		any = true
		if c.IsNumericKey {
			allNonNumeric = false
		} else {
			allNumeric = false
		}
		contributors = append(contributors, fmt.Sprintf("%s (%s)", c.DerivedKey, c.Path))
	}

	mode := "map"
	switch {
	case !any:
		mode = "empty_map"
	case allNumeric:
		mode = "sequence"
	case allNonNumeric:
		mode = "map"
	default:
		mode = "mixed_invalid"
	}

	report.DirectoryModes = append(report.DirectoryModes, DirectoryModeRecord{
		Directory:    n.Path,
		Mode:         mode,
		Contributors: contributors,
	})

	for _, c := range n.Children {
		explainNode(c, joinKeyPath(keyPath, c.DerivedKey), cfg, report)
	}
}

func dottedPath(keyPath []string) string {
	out := ""
	for i, k := range keyPath {
		if i > 0 {
			out += "."
		}
		out += k
	}
	return out
}
