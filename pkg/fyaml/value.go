// SPDX-License-Identifier: MPL-2.0

package fyaml

import (
	"math"
	"sort"
)

// Kind identifies which variant of Value is populated.
type Kind int

const (
	// KindNull is the null/absent value.
	KindNull Kind = iota
	// KindBool is a boolean scalar.
	KindBool
	// KindInt is a 64-bit signed integer scalar.
	KindInt
	// KindFloat is a 64-bit floating point scalar.
	KindFloat
	// KindString is a UTF-8 string scalar.
	KindString
	// KindSeq is an ordered sequence of Values.
	KindSeq
	// KindMap is an ordered mapping of string keys to Values.
	KindMap
)

// String returns a human-readable name for the Kind, used in diagnostics
// and explain/diff output (e.g. "value type differs (map vs sequence)").
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSeq:
		return "sequence"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// MapEntry is a single ordered key/value pair inside a Map-kind Value.
// MustQuote is set by the assembler when the key collided with a YAML
// reserved word and was only admitted because --allow-reserved-keys was
// passed; the emitter forces explicit quoting for such keys.
type MapEntry struct {
	Key       string
	Value     Value
	MustQuote bool
}

// Value is the tagged-variant in-memory representation every fragment is
// parsed into and every directory is folded into. Only one of the scalar
// fields, Seq, or Map is meaningful, selected by Kind.
//
// Map preserves insertion order (populated in the order the assembler
// visited contributors) so that --preserve mode has something to preserve;
// canonical emission ignores that order and re-sorts at emit time.
type Value struct {
	Kind Kind

	Bool   bool
	Int    int64
	Float  float64
	String string

	Seq []Value
	Map []MapEntry
}

// Null is the singular null Value.
var Null = Value{Kind: KindNull}

// NewBool constructs a boolean scalar Value.
func NewBool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// NewInt constructs an integer scalar Value.
func NewInt(i int64) Value { return Value{Kind: KindInt, Int: i} }

// NewFloat constructs a floating point scalar Value.
func NewFloat(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// NewString constructs a string scalar Value.
func NewString(s string) Value { return Value{Kind: KindString, String: s} }

// NewSeq constructs a sequence Value from already-ordered elements.
func NewSeq(items []Value) Value { return Value{Kind: KindSeq, Seq: items} }

// NewMap constructs a mapping Value from already-ordered entries.
func NewMap(entries []MapEntry) Value { return Value{Kind: KindMap, Map: entries} }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Get looks up a key in a Map-kind Value, returning (value, true) if
// present. It returns the zero Value and false for non-Map values or a
// missing key.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindMap {
		return Value{}, false
	}
	for _, entry := range v.Map {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return Value{}, false
}

// SortedMapKeys returns the keys of a Map-kind Value sorted by UTF-8 byte
// order, the canonical ordering the Emitter applies and the Explain/Diff
// drivers walk. Returns nil for non-Map values.
func (v Value) SortedMapKeys() []string {
	if v.Kind != KindMap {
		return nil
	}
	keys := make([]string, len(v.Map))
	for i, entry := range v.Map {
		keys[i] = entry.Key
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether two Values are semantically equal, using a
// total-order float comparison (NaN treated as equal to NaN) and ignoring
// Map insertion order (maps compare by key/value pairs regardless of
// order, matching canonical-output equivalence).
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNull:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindInt:
		return a.Int == b.Int
	case KindFloat:
		return floatTotalOrderEqual(a.Float, b.Float)
	case KindString:
		return a.String == b.String
	case KindSeq:
		if len(a.Seq) != len(b.Seq) {
			return false
		}
		for i := range a.Seq {
			if !Equal(a.Seq[i], b.Seq[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.Map) != len(b.Map) {
			return false
		}
		for _, entry := range a.Map {
			other, ok := b.Get(entry.Key)
			if !ok || !Equal(entry.Value, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// floatTotalOrderEqual implements a total-order float comparison: NaN is
// treated as equal to NaN (unlike IEEE-754 `==`), and all other values
// compare normally.
func floatTotalOrderEqual(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return a == b
}

// Clone returns a deep copy of v, so the copy shares no mutable slices
// with the original.
func Clone(v Value) Value {
	switch v.Kind {
	case KindSeq:
		items := make([]Value, len(v.Seq))
		for i, item := range v.Seq {
			items[i] = Clone(item)
		}
		return Value{Kind: KindSeq, Seq: items}
	case KindMap:
		entries := make([]MapEntry, len(v.Map))
		for i, entry := range v.Map {
			entries[i] = MapEntry{Key: entry.Key, Value: Clone(entry.Value), MustQuote: entry.MustQuote}
		}
		return Value{Kind: KindMap, Map: entries}
	default:
		return v
	}
}
