// SPDX-License-Identifier: MPL-2.0

package fyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff_EqualTrees(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	writeTree(t, a, map[string]string{"x.yml": "a: 1"})
	writeTree(t, b, map[string]string{"x.yml": "a: 1"})

	result, left, right := Diff(a, b, DefaultConfig())
	require.True(t, left.OK)
	require.True(t, right.OK)
	assert.True(t, result.Equal)
}

func TestDiff_ScalarDifference(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	writeTree(t, a, map[string]string{"x.yml": "a: 1"})
	writeTree(t, b, map[string]string{"x.yml": "a: 2"})

	result, _, _ := Diff(a, b, DefaultConfig())
	assert.False(t, result.Equal)
	assert.Equal(t, "$.x.a", result.Path)
	assert.Equal(t, "scalar differs: 1 vs 2", result.Reason)
}

func TestDiff_ScalarDifference_TypePreserving(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	writeTree(t, a, map[string]string{"x.yml": "a: 5"})
	writeTree(t, b, map[string]string{"x.yml": `a: "5"`})

	result, _, _ := Diff(a, b, DefaultConfig())
	assert.False(t, result.Equal)
	assert.Equal(t, `scalar differs: 5 vs "5"`, result.Reason)
}

func TestDiffAll_CollectsEveryDifference(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	writeTree(t, a, map[string]string{"x.yml": "a: 1", "y.yml": "b: 2"})
	writeTree(t, b, map[string]string{"x.yml": "a: 9", "y.yml": "b: 8"})

	differences, left, right := DiffAll(a, b, DefaultConfig())
	require.True(t, left.OK)
	require.True(t, right.OK)
	require.Len(t, differences, 2)
	assert.Equal(t, "$.x.a", differences[0].Path)
	assert.Equal(t, "$.y.b", differences[1].Path)
}

func TestDiffAll_EqualTreesReturnsNoDifferences(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	writeTree(t, a, map[string]string{"x.yml": "a: 1"})
	writeTree(t, b, map[string]string{"x.yml": "a: 1"})

	differences, _, _ := DiffAll(a, b, DefaultConfig())
	assert.Empty(t, differences)
}

func TestDiff_KeyMissingOnRight(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	writeTree(t, a, map[string]string{"x.yml": "a: 1", "y.yml": "b: 2"})
	writeTree(t, b, map[string]string{"x.yml": "a: 1"})

	result, _, _ := Diff(a, b, DefaultConfig())
	assert.False(t, result.Equal)
	assert.Contains(t, result.Reason, "missing on right side")
}

func TestDiff_IndependentOrderIsIgnored(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	writeTree(t, a, map[string]string{"x.yml": "a: 1", "y.yml": "b: 2"})
	writeTree(t, b, map[string]string{"y.yml": "b: 2", "x.yml": "a: 1"})

	result, _, _ := Diff(a, b, DefaultConfig())
	assert.True(t, result.Equal)
}

func TestRenderScalarDiff_OnlyForMultilineStrings(t *testing.T) {
	_, ok := RenderScalarDiff("a", "b", NewString("one"), NewString("two"))
	assert.False(t, ok)

	text, ok := RenderScalarDiff("a", "b", NewString("line1\nline2"), NewString("line1\nchanged"))
	assert.True(t, ok)
	assert.Contains(t, text, "line2")
}
