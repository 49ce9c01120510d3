// SPDX-License-Identifier: MPL-2.0

package fyaml

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	yaml "go.yaml.in/yaml/v3"
)

// EmitFormat selects the Emitter's output format.
type EmitFormat int

const (
	// FormatYAML emits canonical (or preserved-order) block-style YAML.
	FormatYAML EmitFormat = iota
	// FormatJSON emits RFC-8259 JSON with sorted keys.
	FormatJSON
)

// EmitOptions configures the Emitter.
type EmitOptions struct {
	Format   EmitFormat
	Preserve bool
	NoHeader bool
	Version  string
}

// Emit renders v per opts.
func Emit(v Value, opts EmitOptions) (string, error) {
	if opts.Format == FormatJSON {
		var buf bytes.Buffer
		writeJSON(&buf, v, 0)
		buf.WriteByte('\n')
		return buf.String(), nil
	}
	return emitYAML(v, opts)
}

// emitYAML renders v as block-style YAML via the yaml.Node tree, so key
// quoting and indentation follow the library's own encoder rather than a
// hand-rolled serializer.
func emitYAML(v Value, opts EmitOptions) (string, error) {
	node := valueToNode(v, opts.Preserve)

	var buf bytes.Buffer
	if !opts.NoHeader {
		version := opts.Version
		if version == "" {
			version = "dev"
		}
		fmt.Fprintf(&buf, "# packed by fyaml v%s\n", version)
	}

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// valueToNode converts a Value into a yaml.Node tree ready for block-style
// encoding. When preserve is false, Map entries are re-sorted by UTF-8 byte
// order (canonical mode); when true, the Map's own order (set by the
// assembler) is kept as-is.
func valueToNode(v Value, preserve bool) *yaml.Node {
	switch v.Kind {
	case KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.Bool)}
	case KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.Int, 10)}
	case KindFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatFloat(v.Float)}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.String}
	case KindSeq:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Seq {
			n.Content = append(n.Content, valueToNode(item, preserve))
		}
		return n
	case KindMap:
		entries := v.Map
		if !preserve {
			entries = append([]MapEntry(nil), v.Map...)
			sort.SliceStable(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
		}
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range entries {
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key}
			if e.MustQuote {
				keyNode.Style = yaml.DoubleQuotedStyle
			}
			n.Content = append(n.Content, keyNode, valueToNode(e.Value, preserve))
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// formatFloat renders the shortest decimal representation that round-trips
// to the same float64, matching JSON's usual float rendering; YAML uses the
// same rule for consistency between the two emitters.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// writeJSON writes v as indented JSON (2-space, RFC-8259) directly,
// sorting Map keys unconditionally: JSON output is always canonical,
// regardless of --preserve (preserve only applies to YAML's block style
// and intra-fragment order).
func writeJSON(buf *bytes.Buffer, v Value, indent int) {
	switch v.Kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.Int, 10))
	case KindFloat:
		buf.WriteString(formatFloat(v.Float))
	case KindString:
		writeJSONString(buf, v.String)
	case KindSeq:
		if len(v.Seq) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteString("[\n")
		for i, item := range v.Seq {
			writeIndent(buf, indent+1)
			writeJSON(buf, item, indent+1)
			if i < len(v.Seq)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, indent)
		buf.WriteByte(']')
	case KindMap:
		if len(v.Map) == 0 {
			buf.WriteString("{}")
			return
		}
		keys := v.SortedMapKeys()
		buf.WriteString("{\n")
		for i, key := range keys {
			val, _ := v.Get(key)
			writeIndent(buf, indent+1)
			writeJSONString(buf, key)
			buf.WriteString(": ")
			writeJSON(buf, val, indent+1)
			if i < len(keys)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, indent)
		buf.WriteByte('}')
	default:
		buf.WriteString("null")
	}
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}

// writeJSONString writes s as a quoted JSON string literal.
func writeJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\t':
			buf.WriteString(`\t`)
		case '\r':
			buf.WriteString(`\r`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}
