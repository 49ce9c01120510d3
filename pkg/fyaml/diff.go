// SPDX-License-Identifier: MPL-2.0

package fyaml

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffResult is the outcome of comparing two assembled documents.
type DiffResult struct {
	Equal  bool
	Path   string
	Reason string
}

// Difference is one differing location between two assembled documents, as
// collected by DiffAll.
type Difference struct {
	Path   string
	Reason string
}

// Diff runs the pipeline independently over dirA and dirB and returns the
// first structural difference between their canonicalized documents. Each
// side gets its own Sink; callers should check both results' diagnostics
// before trusting a reported equality.
func Diff(dirA, dirB string, cfg Config) (DiffResult, Result, Result) {
	left, right, leftCanon, rightCanon, ok := runDiffSides(dirA, dirB, cfg)
	if !ok {
		return DiffResult{}, left, right
	}

	path, reason, differs := firstDifference(leftCanon, rightCanon, "$")
	if !differs {
		return DiffResult{Equal: true}, left, right
	}
	return DiffResult{Equal: false, Path: path, Reason: reason}, left, right
}

// DiffAll is like Diff but collects every differing location instead of
// stopping at the first one found, for callers (the --format=json path)
// that need the complete set of differences rather than just the first.
func DiffAll(dirA, dirB string, cfg Config) ([]Difference, Result, Result) {
	left, right, leftCanon, rightCanon, ok := runDiffSides(dirA, dirB, cfg)
	if !ok {
		return nil, left, right
	}
	return allDifferences(leftCanon, rightCanon, "$"), left, right
}

// runDiffSides runs the pipeline over both directories and canonicalizes
// the results, shared by Diff and DiffAll. ok is false when either side
// failed to assemble, in which case the canonicalized values are unset.
func runDiffSides(dirA, dirB string, cfg Config) (left, right Result, leftCanon, rightCanon Value, ok bool) {
	left = Run(dirA, cfg)
	right = Run(dirB, cfg)
	if !left.OK || !right.OK {
		return left, right, Value{}, Value{}, false
	}
	return left, right, canonicalizeForDiff(left.Value), canonicalizeForDiff(right.Value), true
}

// canonicalizeForDiff sorts every Map in v by key, so lockstep comparison
// walks both sides in the same order regardless of assembly order.
func canonicalizeForDiff(v Value) Value {
	switch v.Kind {
	case KindSeq:
		items := make([]Value, len(v.Seq))
		for i, item := range v.Seq {
			items[i] = canonicalizeForDiff(item)
		}
		return NewSeq(items)
	case KindMap:
		keys := v.SortedMapKeys()
		entries := make([]MapEntry, len(keys))
		for i, k := range keys {
			val, _ := v.Get(k)
			entries[i] = MapEntry{Key: k, Value: canonicalizeForDiff(val)}
		}
		return NewMap(entries)
	default:
		return v
	}
}

// firstDifference walks a and b in lockstep (both already canonicalized)
// and returns the first differing location as a JSONPath-ish expression.
func firstDifference(a, b Value, path string) (string, string, bool) {
	if a.Kind != b.Kind {
		if isScalarKind(a.Kind) && isScalarKind(b.Kind) {
			return path, fmt.Sprintf("scalar differs: %s vs %s", renderScalarForDiff(a), renderScalarForDiff(b)), true
		}
		return path, fmt.Sprintf("value type differs (%s vs %s)", a.Kind, b.Kind), true
	}
	switch a.Kind {
	case KindNull:
		return "", "", false
	case KindBool, KindInt, KindFloat, KindString:
		if !Equal(a, b) {
			return path, fmt.Sprintf("scalar differs: %s vs %s", renderScalarForDiff(a), renderScalarForDiff(b)), true
		}
		return "", "", false
	case KindSeq:
		if len(a.Seq) != len(b.Seq) {
			return path, fmt.Sprintf("sequence length differs (%d vs %d)", len(a.Seq), len(b.Seq)), true
		}
		for i := range a.Seq {
			childPath := fmt.Sprintf("%s[%d]", path, i)
			if p, r, differs := firstDifference(a.Seq[i], b.Seq[i], childPath); differs {
				return p, r, true
			}
		}
		return "", "", false
	case KindMap:
		return firstMapDifference(a, b, path)
	default:
		return "", "", false
	}
}

// renderScalarForDiff renders a scalar Value for a diff reason string, so a
// type-preserving difference (int 5 vs string "5") reads differently from a
// same-type value difference.
func renderScalarForDiff(v Value) string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return formatFloat(v.Float)
	case KindString:
		return strconv.Quote(v.String)
	default:
		return v.Kind.String()
	}
}

// isScalarKind reports whether k is a scalar kind (anything but a sequence
// or a map), so two scalars of different types are reported as a scalar
// difference rather than a type difference.
func isScalarKind(k Kind) bool {
	return k != KindSeq && k != KindMap
}

// allDifferences walks a and b in lockstep (both already canonicalized),
// like firstDifference, but collects every differing location instead of
// returning on the first mismatch.
func allDifferences(a, b Value, path string) []Difference {
	if a.Kind != b.Kind {
		if isScalarKind(a.Kind) && isScalarKind(b.Kind) {
			return []Difference{{Path: path, Reason: fmt.Sprintf("scalar differs: %s vs %s", renderScalarForDiff(a), renderScalarForDiff(b))}}
		}
		return []Difference{{Path: path, Reason: fmt.Sprintf("value type differs (%s vs %s)", a.Kind, b.Kind)}}
	}
	switch a.Kind {
	case KindNull:
		return nil
	case KindBool, KindInt, KindFloat, KindString:
		if !Equal(a, b) {
			return []Difference{{Path: path, Reason: fmt.Sprintf("scalar differs: %s vs %s", renderScalarForDiff(a), renderScalarForDiff(b))}}
		}
		return nil
	case KindSeq:
		if len(a.Seq) != len(b.Seq) {
			return []Difference{{Path: path, Reason: fmt.Sprintf("sequence length differs (%d vs %d)", len(a.Seq), len(b.Seq))}}
		}
		var diffs []Difference
		for i := range a.Seq {
			childPath := fmt.Sprintf("%s[%d]", path, i)
			diffs = append(diffs, allDifferences(a.Seq[i], b.Seq[i], childPath)...)
		}
		return diffs
	case KindMap:
		return allMapDifferences(a, b, path)
	default:
		return nil
	}
}

// allMapDifferences is allDifferences' KindMap case, mirroring
// firstMapDifference but collecting every missing/differing key instead of
// returning on the first one.
func allMapDifferences(a, b Value, path string) []Difference {
	aKeys := a.SortedMapKeys()
	bKeys := b.SortedMapKeys()

	bSet := make(map[string]bool, len(bKeys))
	for _, k := range bKeys {
		bSet[k] = true
	}
	aSet := make(map[string]bool, len(aKeys))
	for _, k := range aKeys {
		aSet[k] = true
	}

	var diffs []Difference
	for _, k := range aKeys {
		if !bSet[k] {
			diffs = append(diffs, Difference{Path: path, Reason: fmt.Sprintf("key missing on right side: %s", k)})
		}
	}
	for _, k := range bKeys {
		if !aSet[k] {
			diffs = append(diffs, Difference{Path: path, Reason: fmt.Sprintf("key missing on left side: %s", k)})
		}
	}
	for _, k := range aKeys {
		if !bSet[k] {
			continue
		}
		av, _ := a.Get(k)
		bv, _ := b.Get(k)
		childPath := path + "." + k
		if path == "$" {
			childPath = "$." + k
		}
		diffs = append(diffs, allDifferences(av, bv, childPath)...)
	}
	return diffs
}

// RenderScalarDiff renders a unified diff between two multi-line string
// scalars, for the rare case where a diff's reported reason is "scalar
// differs" and both sides are strings worth inspecting line by line
// rather than as a single opaque value.
func RenderScalarDiff(leftLabel, rightLabel string, left, right Value) (string, bool) {
	if left.Kind != KindString || right.Kind != KindString {
		return "", false
	}
	if !strings.Contains(left.String, "\n") && !strings.Contains(right.String, "\n") {
		return "", false
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(left.String),
		B:        difflib.SplitLines(right.String),
		FromFile: leftLabel,
		ToFile:   rightLabel,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", false
	}
	return text, true
}

func firstMapDifference(a, b Value, path string) (string, string, bool) {
	aKeys := a.SortedMapKeys()
	bKeys := b.SortedMapKeys()

	bSet := make(map[string]bool, len(bKeys))
	for _, k := range bKeys {
		bSet[k] = true
	}
	for _, k := range aKeys {
		if !bSet[k] {
			return path, fmt.Sprintf("key missing on right side: %s", k), true
		}
	}
	aSet := make(map[string]bool, len(aKeys))
	for _, k := range aKeys {
		aSet[k] = true
	}
	for _, k := range bKeys {
		if !aSet[k] {
			return path, fmt.Sprintf("key missing on left side: %s", k), true
		}
	}

	for _, k := range aKeys {
		av, _ := a.Get(k)
		bv, _ := b.Get(k)
		childPath := path + "." + k
		if path == "$" {
			childPath = "$." + k
		}
		if p, r, differs := firstDifference(av, bv, childPath); differs {
			return p, r, true
		}
	}
	return "", "", false
}
