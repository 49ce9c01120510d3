// SPDX-License-Identifier: MPL-2.0

package fyaml

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"

	yaml "go.yaml.in/yaml/v3"
)

// largeFragmentWarnBytes is the threshold above which a fragment earns a
// W070 review-friction warning, independent of --max-yaml-bytes.
const largeFragmentWarnBytes = 1024 * 1024

// Parser reads and decodes the YAML fragment at each file ScanNode.
type Parser struct {
	cfg  Config
	sink *Sink
}

// NewParser constructs a Parser.
func NewParser(cfg Config, sink *Sink) *Parser {
	return &Parser{cfg: cfg, sink: sink}
}

// ParseTree walks tree in place, populating Parsed on every file ScanNode.
// Directory nodes are recursed into but otherwise untouched; the Assembler
// consumes the populated tree afterward.
func (p *Parser) ParseTree(tree *ScanTree, keyPath []string) {
	p.parseNode(tree.Root, keyPath)
}

func (p *Parser) parseNode(n *ScanNode, keyPath []string) {
	if n.Kind == NodeFile {
		childKeyPath := joinKeyPath(keyPath, n.DerivedKey)
		n.Parsed = p.parseFile(n.Path, childKeyPath)
		return
	}
	for _, child := range n.Children {
		p.parseNode(child, joinKeyPath(keyPath, child.DerivedKey))
	}
}

// parseFile reads and decodes one YAML fragment: stat and size checks,
// then a full read and multi-document decode.
func (p *Parser) parseFile(path string, keyPath []string) ParseOutcome {
	info, err := os.Stat(path)
	if err != nil {
		p.sink.Push(Errorf("E100", "unable to read file metadata").
			WithPaths(path).
			WithCause(err.Error()).
			WithAction("Check file permissions and retry.").
			WithDerivedKeyPath(keyPath))
		return ParseOutcome{Err: err, Ran: true}
	}

	if p.cfg.MaxYAMLBytes > 0 && info.Size() > p.cfg.MaxYAMLBytes {
		p.sink.Push(Errorf("E110", "YAML fragment exceeds max size").
			WithPaths(path).
			WithCause(fmt.Sprintf("File size is %d bytes, which exceeds --max-yaml-bytes=%d.", info.Size(), p.cfg.MaxYAMLBytes)).
			WithAction("Split the fragment or raise --max-yaml-bytes.").
			WithDerivedKeyPath(keyPath))
		return ParseOutcome{Err: fmt.Errorf("fragment %s exceeds --max-yaml-bytes", path), Ran: true}
	}

	if info.Size() > largeFragmentWarnBytes {
		p.sink.Push(Warnf("W070", "large YAML fragment detected").
			WithPaths(path).
			WithCause(fmt.Sprintf("Fragment is %d bytes; large fragments can reduce reviewability.", info.Size())).
			WithAction("Consider splitting this YAML into smaller fragments.").
			WithDerivedKeyPath(keyPath))
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		p.sink.Push(Errorf("E100", "unable to read YAML file").
			WithPaths(path).
			WithCause(err.Error()).
			WithAction("Check file permissions and encoding (UTF-8 expected).").
			WithDerivedKeyPath(keyPath))
		return ParseOutcome{Err: err, Ran: true}
	}

	nodes, err := decodeDocuments(contents)
	if err != nil {
		d := Errorf("E020", "invalid YAML fragment").
			WithPaths(path).
			WithCause(err.Error()).
			WithAction("Fix YAML syntax (indentation, colons, and tabs/spaces).").
			WithContextNote("Run `fyaml validate` for full diagnostics.").
			WithDerivedKeyPath(keyPath)
		if line, col, ok := parseErrorLocation(err); ok {
			d = d.WithLocation(Location{File: path, Line: line, Col: col})
		}
		p.sink.Push(d)
		return ParseOutcome{Err: err, Ran: true}
	}

	if len(nodes) == 0 {
		return ParseOutcome{Value: Null, Ran: true}
	}

	if !p.cfg.Preserve && anyHasAnchor(nodes) {
		p.sink.Push(Warnf("W040", "possible YAML anchors/aliases may not be preserved").
			WithPaths(path).
			WithCause("Canonical mode may lose source style and anchor details.").
			WithAction("Use --preserve if retaining anchor structure matters for your workflow.").
			WithDerivedKeyPath(keyPath))
	}

	if len(nodes) == 1 {
		return ParseOutcome{Value: nodeToValue(nodes[0]), Ran: true}
	}

	switch p.cfg.MultiDoc {
	case MultiDocError:
		p.sink.Push(Errorf("E030", "multi-document YAML is not supported in current mode").
			WithPaths(path).
			WithCause("YAML input contained multiple documents separated by `---`.").
			WithAction("Use --multi-doc=first or --multi-doc=all, or split documents into files.").
			WithDerivedKeyPath(keyPath))
		return ParseOutcome{Err: fmt.Errorf("multi-document YAML at %s", path), Ran: true}
	case MultiDocFirst:
		p.sink.Push(Warnf("W031", "multi-document YAML: using first document and ignoring the rest").
			WithPaths(path).
			WithCause("Configured with --multi-doc=first.").
			WithAction("Use --multi-doc=all to retain all documents as a sequence.").
			WithDerivedKeyPath(keyPath))
		return ParseOutcome{Value: nodeToValue(nodes[0]), Ran: true}
	default: // MultiDocAll
		items := make([]Value, len(nodes))
		for i, n := range nodes {
			items[i] = nodeToValue(n)
		}
		return ParseOutcome{Value: NewSeq(items), Ran: true}
	}
}

// decodeDocuments splits contents into its constituent YAML documents.
func decodeDocuments(contents []byte) ([]*yaml.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(contents))
	var nodes []*yaml.Node
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, &doc)
	}
	return nodes, nil
}

// anyHasAnchor reports whether any node in the document forest defines an
// anchor, used to decide whether W040 fires.
func anyHasAnchor(nodes []*yaml.Node) bool {
	for _, n := range nodes {
		if nodeHasAnchor(n) {
			return true
		}
	}
	return false
}

func nodeHasAnchor(n *yaml.Node) bool {
	if n == nil {
		return false
	}
	if n.Anchor != "" {
		return true
	}
	for _, c := range n.Content {
		if nodeHasAnchor(c) {
			return true
		}
	}
	return false
}

var yamlErrorLineRe = regexp.MustCompile(`line (\d+)`)

// parseErrorLocation best-effort extracts a line number from a
// go.yaml.in/yaml/v3 error message; the library does not expose a
// structured position for scanner/parser errors.
func parseErrorLocation(err error) (line, col int, ok bool) {
	m := yamlErrorLineRe.FindStringSubmatch(err.Error())
	if m == nil {
		return 0, 0, false
	}
	n, convErr := strconv.Atoi(m[1])
	if convErr != nil {
		return 0, 0, false
	}
	return n + 1, 1, true // go-yaml reports 0-based line numbers in messages
}

// nodeToValue converts a decoded yaml.Node into the internal Value
// representation and its scalar/seq/map tags. Alias nodes are followed to
// their anchored node, so each alias becomes an independent value copy. A *yaml.Node for a whole document is a
// DocumentNode wrapping exactly one child; nodeToValue unwraps it.
func nodeToValue(n *yaml.Node) Value {
	if n == nil {
		return Null
	}
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return Null
		}
		return nodeToValue(n.Content[0])
	}
	switch n.Kind {
	case yaml.AliasNode:
		return nodeToValue(n.Alias)
	case yaml.ScalarNode:
		return scalarToValue(n)
	case yaml.SequenceNode:
		items := make([]Value, len(n.Content))
		for i, c := range n.Content {
			items[i] = nodeToValue(c)
		}
		return NewSeq(items)
	case yaml.MappingNode:
		entries := make([]MapEntry, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := nodeToValue(n.Content[i])
			entries = append(entries, MapEntry{Key: yamlScalarKeyString(n.Content[i], key), Value: nodeToValue(n.Content[i+1])})
		}
		return NewMap(entries)
	default:
		return Null
	}
}

// yamlScalarKeyString renders a mapping key node as a string. Scalar keys
// use the node's scalar text as written, so numeric-looking keys (`1: x`)
// key as "1" against `Value.Get`. Non-scalar keys (rare, but legal YAML)
// use the decoded string when there is one, and otherwise the node's
// Value field, which is empty for sequence and mapping keys.
func yamlScalarKeyString(n *yaml.Node, decoded Value) string {
	if n.Kind == yaml.ScalarNode {
		return n.Value
	}
	switch decoded.Kind {
	case KindString:
		return decoded.String
	default:
		return n.Value
	}
}

// scalarToValue decodes a YAML scalar node using the library's own tag
// resolution (n.Tag reflects the resolver's verdict, including quoted
// strings that must stay strings) rather than re-implementing YAML's
// scalar grammar.
func scalarToValue(n *yaml.Node) Value {
	switch n.Tag {
	case "!!null":
		return Null
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return NewBool(b)
		}
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return NewInt(i)
		}
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			return NewFloat(f)
		}
		if n.Value == ".nan" || n.Value == ".NaN" || n.Value == ".NAN" {
			return NewFloat(math.NaN())
		}
	}
	var s string
	if err := n.Decode(&s); err == nil {
		return NewString(s)
	}
	return NewString(n.Value)
}
