// SPDX-License-Identifier: MPL-2.0

package fyaml

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/fyaml/fyaml/internal/applog"
)

// IgnoredReason classifies why a filesystem entry did not contribute to
// the ScanTree.
type IgnoredReason string

const (
	// ReasonNonYAMLExtension marks a regular file whose extension isn't
	// yml/yaml.
	ReasonNonYAMLExtension IgnoredReason = "non_yaml_extension"
	// ReasonHidden marks a dotfile/dot-directory excluded without
	// --include-hidden.
	ReasonHidden IgnoredReason = "hidden"
	// ReasonEditorJunk marks an entry matching an editor-junk glob.
	ReasonEditorJunk IgnoredReason = "editor_junk"
	// ReasonUnreadableSkipped marks an entry that could not be read or
	// classified (e.g. symlink cycle, unsupported file type).
	ReasonUnreadableSkipped IgnoredReason = "unreadable_skipped"
	// ReasonExcludedRootFile marks the file-root root file, excluded
	// from normal directory scanning.
	ReasonExcludedRootFile IgnoredReason = "excluded_root_file"
	// ReasonNonContributingDirectory marks a directory all of whose
	// descendants were filtered out, so the directory itself contributes
	// nothing to the assembled Value.
	ReasonNonContributingDirectory IgnoredReason = "non_contributing_directory"
)

// IgnoredEntry records a filesystem entry the Scanner chose not to
// contribute.
type IgnoredEntry struct {
	Path   string
	Reason IgnoredReason
	RuleID string
}

// NodeKind selects which ScanNode variant is populated.
type NodeKind int

const (
	// NodeFile is a contributing YAML fragment file.
	NodeFile NodeKind = iota
	// NodeDir is a directory containing at least one contributing
	// descendant.
	NodeDir
)

// ParseOutcome holds the result of parsing a file-leaf's contents,
// attached by the Parser. Exactly one of Value/Err is set once parsing
// has run.
type ParseOutcome struct {
	Value Value
	Err   error
	Ran   bool
}

// ScanNode is one entry in a ScanTree: either a contributing file or a
// directory with contributing children.
type ScanNode struct {
	Kind NodeKind

	// Path is the absolute filesystem path.
	Path string
	// DerivedKey is the key this entry contributes under its parent
	// (empty/unused for the tree root).
	DerivedKey string
	// IsNumericKey is read by the assembler when deciding
	// sequence-vs-mapping mode.
	IsNumericKey bool
	// MustQuoteOnEmit is set when DerivedKey is a reserved YAML word
	// admitted via --allow-reserved-keys.
	MustQuoteOnEmit bool

	// File-only.
	Ext    string
	Parsed ParseOutcome

	// Dir-only.
	Children []*ScanNode
	Ignored  []IgnoredEntry
}

// ScanTree is the Scanner's output: a ScanNode tree mirroring the scan
// root, containing only contributing entries.
type ScanTree struct {
	Root *ScanNode
}

// contributes reports whether n produced output: a file always does (it
// is only ever added to Children when it contributed); a directory does
// if it has at least one contributing child.
func (n *ScanNode) contributes() bool {
	if n.Kind == NodeFile {
		return true
	}
	return len(n.Children) > 0
}

// scanCandidate is a filesystem entry that survived the ignore filters,
// on its way through key validation and collision detection before it
// becomes a ScanNode child.
type scanCandidate struct {
	entry     os.DirEntry
	path      string
	key       string
	isDir     bool
	isNumeric bool
	mustQuote bool
}

// Scanner walks a root directory into a ScanTree.
type Scanner struct {
	cfg      Config
	sink     *Sink
	excluded string // canonical path of the file-root root file, or ""
	visited  map[string]bool
}

// NewScanner constructs a Scanner. excludedFile, if non-empty, is an
// absolute path excluded from scanning (the file-root root file); pass ""
// when there is none.
func NewScanner(cfg Config, sink *Sink, excludedFile string) *Scanner {
	canon := ""
	if excludedFile != "" {
		if resolved, err := filepath.EvalSymlinks(excludedFile); err == nil {
			canon = resolved
		} else {
			canon = excludedFile
		}
	}
	return &Scanner{cfg: cfg, sink: sink, excluded: canon, visited: map[string]bool{}}
}

// Scan walks root and returns the resulting ScanTree. Unreadable
// directories are pruned with an E100 diagnostic rather than aborting the
// whole scan.
func (s *Scanner) Scan(root string) *ScanTree {
	node := &ScanNode{Kind: NodeDir, Path: root}
	s.scanDir(node, nil)
	return &ScanTree{Root: node}
}

// scanDir populates dir.Children and dir.Ignored by reading one directory
// level, then recursing into contributing subdirectories. keyPath is the
// dotted derived-key path to dir, used for diagnostics.
func (s *Scanner) scanDir(dir *ScanNode, keyPath []string) {
	entries, err := os.ReadDir(dir.Path)
	if err != nil {
		s.sink.Push(Errorf("E100", "unable to read directory").
			WithPaths(dir.Path).
			WithCause(err.Error()).
			WithAction("Check directory permissions and path validity.").
			WithDerivedKeyPath(keyPath))
		return
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	sort.Strings(names) // deterministic diagnostic emission order

	byName := make(map[string]os.DirEntry, len(entries))
	for _, e := range entries {
		byName[e.Name()] = e
	}

	var candidates []scanCandidate

	for _, name := range names {
		entry := byName[name]
		path := filepath.Join(dir.Path, name)

		if s.isExcludedRootFile(path) {
			s.addIgnored(dir, path, ReasonExcludedRootFile, "root-file-exclusion")
			continue
		}
		if !s.cfg.IncludeHidden && isHiddenName(name) {
			s.addIgnored(dir, path, ReasonHidden, "hidden")
			continue
		}
		if isEditorJunk(name, s.cfg.EditorJunkGlobs) {
			s.addIgnored(dir, path, ReasonEditorJunk, "editor-junk")
			continue
		}

		info, err := entry.Info()
		if err != nil {
			s.addIgnored(dir, path, ReasonUnreadableSkipped, "stat-failed")
			continue
		}

		isDir := entry.IsDir()
		if info.Mode()&os.ModeSymlink != 0 {
			resolved, ok := s.resolveSymlink(path)
			if !ok {
				applog.Debug("skipping symlink outside scan root", "path", path)
				s.addIgnored(dir, path, ReasonUnreadableSkipped, "symlink-cycle-or-outside-root")
				continue
			}
			resolvedInfo, err := os.Stat(resolved)
			if err != nil || resolvedInfo.IsDir() {
				// Symlinks are followed only to regular files; a directory
				// symlink (or one whose target can no longer be stat'ed) is
				// ignored. Broken symlinks are already skipped above.
				applog.Debug("skipping directory symlink", "path", path, "target", resolved)
				s.addIgnored(dir, path, ReasonUnreadableSkipped, "symlink-not-a-regular-file")
				continue
			}
			isDir = false
		}

		if isDir {
			candidates = append(candidates, scanCandidate{entry: entry, path: path, key: name, isDir: true})
			continue
		}

		stem, ok := yamlExtension(name)
		if !ok {
			s.addIgnored(dir, path, ReasonNonYAMLExtension, "non-yaml-extension")
			continue
		}
		if stem == "" {
			s.sink.Push(Errorf("E011", "empty key derived from filename").
				WithPaths(path).
				WithCause("Filename reduces to an empty key after stripping .yml/.yaml.").
				WithAction("Rename the file to a non-empty key, e.g. config.yml.").
				WithDerivedKeyPath(keyPath))
			continue
		}
		candidates = append(candidates, scanCandidate{entry: entry, path: path, key: stem, isDir: false})
	}

	// Validate keys (reserved words, dotted keys, numeric flag) before
	// collision detection, so collision diagnostics and key-validity
	// diagnostics are both reported in the same pass.
	valid := make([]scanCandidate, 0, len(candidates))
	for _, c := range candidates {
		childKeyPath := joinKeyPath(keyPath, c.key)
		mustQuote := false
		if isReservedKey(c.key) {
			if !s.cfg.AllowReservedKeys {
				s.sink.Push(Errorf("E010", "reserved YAML key used as %s", entryNoun(c.isDir)).
					WithPaths(c.path).
					WithCause("Reserved YAML words are ambiguous without explicit quoting.").
					WithAction("Rename this entry, or pass --allow-reserved-keys to permit it.").
					WithDerivedKeyPath(childKeyPath))
				continue
			}
			mustQuote = true
		}
		if containsDot(c.key) && !s.cfg.AllowDottedKeys {
			s.sink.Push(Warnf("W020", "dotted key derived from %s", entryNoun(c.isDir)).
				WithPaths(c.path).
				WithCause("Keys with dots are often accidental and can be confused with nested paths.").
				WithAction("Rename the entry, or pass --allow-dotted-keys if intentional.").
				WithDerivedKeyPath(childKeyPath))
		}
		c.isNumeric = isNumericKey(c.key)
		c.mustQuote = mustQuote
		valid = append(valid, c)
	}

	// Colliding entries do not contribute children; they aren't recorded
	// as IgnoredEntry since a collision is a diagnostic-worthy condition,
	// not a silent exclusion.
	rejected := s.detectCollisions(dir, keyPath, valid)
	for _, c := range valid {
		if rejected[c.path] {
			continue
		}
		childKeyPath := joinKeyPath(keyPath, c.key)
		if c.isDir {
			child := &ScanNode{
				Kind:            NodeDir,
				Path:            c.path,
				DerivedKey:      c.key,
				IsNumericKey:    c.isNumeric,
				MustQuoteOnEmit: c.mustQuote,
			}
			s.scanDir(child, childKeyPath)
			if child.contributes() {
				dir.Children = append(dir.Children, child)
			} else {
				s.foldNonContributing(dir, child)
			}
			continue
		}
		ext := filepath.Ext(c.entry.Name())
		child := &ScanNode{
			Kind:            NodeFile,
			Path:            c.path,
			DerivedKey:      c.key,
			IsNumericKey:    c.isNumeric,
			MustQuoteOnEmit: c.mustQuote,
			Ext:             ext,
		}
		dir.Children = append(dir.Children, child)
	}
}

// isExcludedRootFile reports whether path is the file-root root file.
func (s *Scanner) isExcludedRootFile(path string) bool {
	if s.excluded == "" {
		return false
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		resolved = path
	}
	return resolved == s.excluded
}

// resolveSymlink follows path and guards against cycles via a canonical
// visited set.
func (s *Scanner) resolveSymlink(path string) (string, bool) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", false
	}
	if s.visited[resolved] {
		return "", false
	}
	s.visited[resolved] = true
	return resolved, true
}

func (s *Scanner) addIgnored(dir *ScanNode, path string, reason IgnoredReason, ruleID string) {
	dir.Ignored = append(dir.Ignored, IgnoredEntry{Path: path, Reason: reason, RuleID: ruleID})
}

// foldNonContributing merges a non-contributing child directory into dir's
// own Ignored list: the child's already-collected Ignored entries (which
// recursively include any non-contributing grandchildren folded in turn)
// plus one entry for the child directory itself, so a subtree filtered down
// to nothing is still fully accounted for rather than silently dropped.
func (s *Scanner) foldNonContributing(dir, child *ScanNode) {
	dir.Ignored = append(dir.Ignored, child.Ignored...)
	s.addIgnored(dir, child.Path, ReasonNonContributingDirectory, "non-contributing-directory")
}

func entryNoun(isDir bool) string {
	if isDir {
		return "directory name"
	}
	return "filename"
}

func containsDot(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return true
		}
	}
	return false
}

func isHiddenName(name string) bool {
	return len(name) > 0 && name[0] == '.'
}

func isEditorJunk(name string, globs []string) bool {
	for _, g := range globs {
		if ok, err := filepath.Match(g, name); err == nil && ok {
			return true
		}
	}
	return false
}
