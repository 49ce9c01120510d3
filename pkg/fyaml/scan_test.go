// SPDX-License-Identifier: MPL-2.0

package fyaml

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_IgnoresNonYAMLAndHidden(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"config.yml":  "a: 1",
		"notes.txt":   "hello",
		".secret.yml": "b: 2",
	})

	sink := NewSink()
	scanner := NewScanner(DefaultConfig(), sink, "")
	tree := scanner.Scan(root)

	require.Len(t, tree.Root.Children, 1)
	assert.Equal(t, "config", tree.Root.Children[0].DerivedKey)

	var reasons []IgnoredReason
	for _, ig := range tree.Root.Ignored {
		reasons = append(reasons, ig.Reason)
	}
	assert.Contains(t, reasons, ReasonNonYAMLExtension)
	assert.Contains(t, reasons, ReasonHidden)
}

func TestScanner_IncludeHidden(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{".secret.yml": "b: 2"})

	cfg := DefaultConfig()
	cfg.IncludeHidden = true
	sink := NewSink()
	tree := NewScanner(cfg, sink, "").Scan(root)

	require.Len(t, tree.Root.Children, 1)
	assert.Equal(t, ".secret", tree.Root.Children[0].DerivedKey)
}

func TestScanner_EditorJunkExcluded(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"config.yml": "a: 1",
		"config.yml~": "junk",
	})

	sink := NewSink()
	tree := NewScanner(DefaultConfig(), sink, "").Scan(root)

	require.Len(t, tree.Root.Children, 1)
	assert.Equal(t, "config", tree.Root.Children[0].DerivedKey)
}

func TestScanner_ExtensionDuplicateCollision(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"config.yml":  "a: 1",
		"config.yaml": "a: 2",
	})

	sink := NewSink()
	tree := NewScanner(DefaultConfig(), sink, "").Scan(root)

	assert.Empty(t, tree.Root.Children)
	require.Len(t, sink.All(), 1)
	assert.Equal(t, "E002", sink.All()[0].Code)
}

func TestScanner_CaseFoldCollision(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Config.yml": "a: 1",
		"config.yml": "a: 2",
	})

	sink := NewSink()
	tree := NewScanner(DefaultConfig(), sink, "").Scan(root)

	assert.Empty(t, tree.Root.Children)
	assert.True(t, hasCode(sink, "E003"))
}

func TestScanner_NonContributingSubdirectoryFoldsIntoParentIgnored(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"config.yml":      "a: 1",
		"empty/notes.txt": "hello",
		"empty/.DS_Store": "junk",
	})

	sink := NewSink()
	tree := NewScanner(DefaultConfig(), sink, "").Scan(root)

	require.Len(t, tree.Root.Children, 1)
	assert.Equal(t, "config", tree.Root.Children[0].DerivedKey)

	var reasons []IgnoredReason
	var paths []string
	for _, ig := range tree.Root.Ignored {
		reasons = append(reasons, ig.Reason)
		paths = append(paths, ig.Path)
	}
	assert.Contains(t, reasons, ReasonNonContributingDirectory)
	assert.Contains(t, paths, filepath.Join(root, "empty"))
	assert.Contains(t, reasons, ReasonNonYAMLExtension)
	assert.Contains(t, paths, filepath.Join(root, "empty", "notes.txt"))
	assert.Contains(t, reasons, ReasonHidden)
	assert.Contains(t, paths, filepath.Join(root, "empty", ".DS_Store"))
}

func TestScanner_NestedNonContributingDirectoriesFoldRecursively(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"config.yml":          "a: 1",
		"outer/inner/junk.md": "hello",
	})

	sink := NewSink()
	tree := NewScanner(DefaultConfig(), sink, "").Scan(root)

	require.Len(t, tree.Root.Children, 1)

	var reasons []IgnoredReason
	var paths []string
	for _, ig := range tree.Root.Ignored {
		reasons = append(reasons, ig.Reason)
		paths = append(paths, ig.Path)
	}
	assert.Contains(t, reasons, ReasonNonContributingDirectory)
	assert.Contains(t, paths, filepath.Join(root, "outer"))
	assert.Contains(t, paths, filepath.Join(root, "outer", "inner"))
	assert.Contains(t, paths, filepath.Join(root, "outer", "inner", "junk.md"))
}

func TestScanner_ExcludedRootFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"base.yml": "a: 1",
		"b.yml":    "2",
	})

	sink := NewSink()
	tree := NewScanner(DefaultConfig(), sink, filepath.Join(root, "base.yml")).Scan(root)

	require.Len(t, tree.Root.Children, 1)
	assert.Equal(t, "b", tree.Root.Children[0].DerivedKey)

	var sawExcluded bool
	for _, ig := range tree.Root.Ignored {
		if ig.Reason == ReasonExcludedRootFile {
			sawExcluded = true
		}
	}
	assert.True(t, sawExcluded)
}
