// SPDX-License-Identifier: MPL-2.0

package fyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmit_CanonicalKeySort(t *testing.T) {
	v := NewMap([]MapEntry{
		{Key: "zebra", Value: NewInt(1)},
		{Key: "alpha", Value: NewInt(2)},
	})

	text, err := Emit(v, EmitOptions{Format: FormatYAML, NoHeader: true})
	require.NoError(t, err)
	assert.Equal(t, "alpha: 2\nzebra: 1\n", text)
}

func TestEmit_PreserveKeepsInsertionOrder(t *testing.T) {
	v := NewMap([]MapEntry{
		{Key: "zebra", Value: NewInt(1)},
		{Key: "alpha", Value: NewInt(2)},
	})

	text, err := Emit(v, EmitOptions{Format: FormatYAML, NoHeader: true, Preserve: true})
	require.NoError(t, err)
	assert.Equal(t, "zebra: 1\nalpha: 2\n", text)
}

func TestEmit_MustQuoteReservedKey(t *testing.T) {
	v := NewMap([]MapEntry{{Key: "true", Value: NewInt(1), MustQuote: true}})

	text, err := Emit(v, EmitOptions{Format: FormatYAML, NoHeader: true})
	require.NoError(t, err)
	assert.Equal(t, "\"true\": 1\n", text)
}

func TestEmit_JSONSortsKeysRegardlessOfPreserve(t *testing.T) {
	v := NewMap([]MapEntry{
		{Key: "zebra", Value: NewInt(1)},
		{Key: "alpha", Value: NewInt(2)},
	})

	text, err := Emit(v, EmitOptions{Format: FormatJSON, Preserve: true})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"alpha\": 2,\n  \"zebra\": 1\n}\n", text)
}

func TestEmit_HeaderIncludesVersion(t *testing.T) {
	v := NewInt(1)
	text, err := Emit(v, EmitOptions{Format: FormatYAML, Version: "1.2.3"})
	require.NoError(t, err)
	assert.Contains(t, text, "# packed by fyaml v1.2.3\n")
}
