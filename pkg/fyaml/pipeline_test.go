// SPDX-License-Identifier: MPL-2.0

package fyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEmit(t *testing.T, v Value, opts EmitOptions) string {
	t.Helper()
	opts.NoHeader = true
	text, err := Emit(v, opts)
	require.NoError(t, err)
	return text
}

func TestRun_S1_SimpleMap(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"database.yml": "host: localhost\nport: 5432",
		"server.yml":   "workers: 4",
	})

	result := Run(root, DefaultConfig())
	require.True(t, result.OK, result.Sink.All())

	text := mustEmit(t, result.Value, EmitOptions{Format: FormatYAML})
	assert.Equal(t, "database:\n  host: localhost\n  port: 5432\nserver:\n  workers: 4\n", text)
}

func TestRun_S2_Sequence(t *testing.T) {
	orderedRoot := t.TempDir()
	writeTree(t, orderedRoot, map[string]string{
		"steps/0.yml": "a: 1",
		"steps/2.yml": "a: 3",
		"steps/1.yml": "a: 2",
	})

	t.Run("out-of-directory-order indices still emit in sequence order", func(t *testing.T) {
		result := Run(orderedRoot, DefaultConfig())
		require.True(t, result.OK, result.Sink.All())
		text := mustEmit(t, result.Value, EmitOptions{Format: FormatYAML})
		assert.Equal(t, "steps:\n  - a: 1\n  - a: 2\n  - a: 3\n", text)
	})

	gappedRoot := t.TempDir()
	writeTree(t, gappedRoot, map[string]string{
		"steps/0.yml": "a: 1",
		"steps/2.yml": "a: 3",
	})

	t.Run("allow keeps present elements without a diagnostic", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.SeqGaps = SeqGapAllow
		result := Run(gappedRoot, cfg)
		require.True(t, result.OK, result.Sink.All())
		text := mustEmit(t, result.Value, EmitOptions{Format: FormatYAML})
		assert.Equal(t, "steps:\n  - a: 1\n  - a: 3\n", text)
		assert.False(t, hasCode(result.Sink, "W041"))
	})

	t.Run("warn default keeps present elements and adds one W041", func(t *testing.T) {
		result := Run(gappedRoot, DefaultConfig())
		require.True(t, result.OK, result.Sink.All())
		text := mustEmit(t, result.Value, EmitOptions{Format: FormatYAML})
		assert.Equal(t, "steps:\n  - a: 1\n  - a: 3\n", text)
		assert.True(t, hasCode(result.Sink, "W041"))
	})
}

func TestRun_S3_FileDirCollision(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"auth.yml":           "x: 1",
		"auth/provider.yml": "name: oidc",
	})

	result := Run(root, DefaultConfig())
	assert.False(t, result.OK)
	assert.Equal(t, 2, result.ExitCode())

	var found bool
	for _, d := range result.Sink.All() {
		if d.Code == "E001" {
			found = true
			require.NotNil(t, d.Context)
			assert.Contains(t, []string{d.Context.FirstPath, d.Context.SecondPath}, root+"/auth.yml")
		}
	}
	assert.True(t, found, "expected an E001 diagnostic")
}

func TestRun_S4_ReservedKey(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"true.yml": "x: 1"})

	t.Run("default rejects", func(t *testing.T) {
		result := Run(root, DefaultConfig())
		assert.False(t, result.OK)
		assert.Equal(t, 2, result.ExitCode())
		assert.True(t, hasCode(result.Sink, "E010"))
	})

	t.Run("allow-reserved-keys admits", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.AllowReservedKeys = true
		result := Run(root, cfg)
		require.True(t, result.OK, result.Sink.All())
		text := mustEmit(t, result.Value, EmitOptions{Format: FormatYAML})
		assert.Equal(t, "\"true\":\n  x: 1\n", text)
	})
}

func TestRun_S5_MixedSeqMap(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"0.yml":    "a: 1",
		"name.yml": "b: 2",
	})

	result := Run(root, DefaultConfig())
	assert.False(t, result.OK)
	assert.Equal(t, 2, result.ExitCode())
	assert.True(t, hasCode(result.Sink, "E050"))
}

func TestRun_S6_FileRootMerge(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"base.yml": "overrides:\n  a: 1\n",
		"b.yml":    "2",
	})

	cfg := DefaultConfig()
	cfg.RootMode = RootMode{Kind: RootModeFile, RootFile: "base.yml", MergeUnder: "overrides", HasMerge: true}

	result := Run(root, cfg)
	require.True(t, result.OK, result.Sink.All())

	overrides, ok := result.Value.Get("overrides")
	require.True(t, ok)
	a, ok := overrides.Get("a")
	require.True(t, ok)
	assert.Equal(t, int64(1), a.Int)
	b, ok := overrides.Get("b")
	require.True(t, ok)
	assert.Equal(t, int64(2), b.Int)

	t.Run("conflicting key merges to E052", func(t *testing.T) {
		writeTree(t, root, map[string]string{"a.yml": "9"})
		result := Run(root, cfg)
		assert.False(t, result.OK)
		assert.True(t, hasCode(result.Sink, "E052"))
	})
}

func TestRun_IgnoredEntryCompleteness(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"keep.yml":   "a: 1",
		"notes.txt":  "not yaml",
		".hidden.yml": "b: 2",
	})

	result := Run(root, DefaultConfig())
	require.True(t, result.OK)

	report := Explain(result.Tree, DefaultConfig())
	var sawTxt, sawHidden bool
	for _, ig := range report.Ignored {
		if ig.Reason == ReasonNonYAMLExtension {
			sawTxt = true
		}
		if ig.Reason == ReasonHidden {
			sawHidden = true
		}
	}
	assert.True(t, sawTxt)
	assert.True(t, sawHidden)
}

func TestRun_StrictMonotonicity(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"steps/0.yml": "a: 1",
		"steps/2.yml": "a: 3",
	})

	nonStrict := Run(root, DefaultConfig())
	strictCfg := DefaultConfig()
	strictCfg.Strict = true
	strict := Run(root, strictCfg)

	require.Equal(t, len(nonStrict.Sink.All()), len(strict.Sink.All()))
	for i := range nonStrict.Sink.All() {
		a := nonStrict.Sink.All()[i]
		b := strict.Sink.All()[i]
		assert.Equal(t, a.Code, b.Code)
		if a.Severity == SeverityWarn {
			assert.Equal(t, SeverityError, b.Severity)
		} else {
			assert.Equal(t, a.Severity, b.Severity)
		}
	}
}

func hasCode(sink *Sink, code string) bool {
	for _, d := range sink.All() {
		if d.Code == code {
			return true
		}
	}
	return false
}
