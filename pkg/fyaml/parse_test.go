// SPDX-License-Identifier: MPL-2.0

package fyaml

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_ScalarKinds(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "frag.yml")
	writeTree(t, root, map[string]string{"frag.yml": "n: 42\nf: 1.5\nb: true\ns: hello\nnil_val: null"})

	sink := NewSink()
	p := NewParser(DefaultConfig(), sink)
	outcome := p.parseFile(path, nil)

	require.NoError(t, outcome.Err)
	n, ok := outcome.Value.Get("n")
	require.True(t, ok)
	assert.Equal(t, int64(42), n.Int)

	f, ok := outcome.Value.Get("f")
	require.True(t, ok)
	assert.Equal(t, 1.5, f.Float)

	b, ok := outcome.Value.Get("b")
	require.True(t, ok)
	assert.True(t, b.Bool)

	s, ok := outcome.Value.Get("s")
	require.True(t, ok)
	assert.Equal(t, "hello", s.String)

	nv, ok := outcome.Value.Get("nil_val")
	require.True(t, ok)
	assert.True(t, nv.IsNull())
}

func TestParser_InvalidYAMLProducesE020(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "bad.yml")
	writeTree(t, root, map[string]string{"bad.yml": "a: [unterminated"})

	sink := NewSink()
	p := NewParser(DefaultConfig(), sink)
	outcome := p.parseFile(path, nil)

	assert.Error(t, outcome.Err)
	assert.True(t, hasCode(sink, "E020"))
}

func TestParser_MultiDocModes(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "multi.yml")
	writeTree(t, root, map[string]string{"multi.yml": "a: 1\n---\na: 2\n"})

	t.Run("error", func(t *testing.T) {
		sink := NewSink()
		outcome := NewParser(DefaultConfig(), sink).parseFile(path, nil)
		assert.Error(t, outcome.Err)
		assert.True(t, hasCode(sink, "E030"))
	})

	t.Run("first", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MultiDoc = MultiDocFirst
		sink := NewSink()
		outcome := NewParser(cfg, sink).parseFile(path, nil)
		require.NoError(t, outcome.Err)
		a, _ := outcome.Value.Get("a")
		assert.Equal(t, int64(1), a.Int)
		assert.True(t, hasCode(sink, "W031"))
	})

	t.Run("all", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MultiDoc = MultiDocAll
		sink := NewSink()
		outcome := NewParser(cfg, sink).parseFile(path, nil)
		require.NoError(t, outcome.Err)
		require.Equal(t, KindSeq, outcome.Value.Kind)
		require.Len(t, outcome.Value.Seq, 2)
	})
}

func TestParser_MaxYAMLBytes(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "frag.yml")
	writeTree(t, root, map[string]string{"frag.yml": "a: 1"})

	cfg := DefaultConfig()
	cfg.MaxYAMLBytes = 1
	sink := NewSink()
	NewParser(cfg, sink).parseFile(path, nil)

	assert.True(t, hasCode(sink, "E110"))
}
