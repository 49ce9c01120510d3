// SPDX-License-Identifier: MPL-2.0

package fyaml

import (
	"path/filepath"
	"strings"
)

// detectCollisions reports every colliding key among candidates and
// returns the set of paths to exclude from dir's children. Colliding
// entries do not contribute, and every collision is reported, not just
// the first. Two kinds of collision are detected:
//
//   - Exact-key collisions: two or more candidates derive the identical
//     key. A file/file collision where both extensions are yml/yaml
//     (e.g. foo.yml and foo.yaml) is reported as E002; every other exact
//     collision (file vs directory, or otherwise) is reported as E001.
//   - Case-fold collisions: candidates whose keys differ only by case
//     (e.g. Foo and foo), detected via Unicode simple case folding so it
//     also fires on case-sensitive filesystems. Only candidates not
//     already involved in an exact-key collision are considered, so each
//     entry is reported in at most one collision group.
func (s *Scanner) detectCollisions(dir *ScanNode, keyPath []string, candidates []scanCandidate) map[string]bool {
	rejected := map[string]bool{}

	byKey := map[string][]scanCandidate{}
	var keyOrder []string
	for _, c := range candidates {
		if _, seen := byKey[c.key]; !seen {
			keyOrder = append(keyOrder, c.key)
		}
		byKey[c.key] = append(byKey[c.key], c)
	}

	settled := map[string]bool{} // keys already reported via exact collision

	for _, key := range keyOrder {
		group := byKey[key]
		if len(group) < 2 {
			continue
		}
		settled[key] = true
		for _, c := range group {
			rejected[c.path] = true
		}

		if extensionDuplicatePair(group) {
			s.sink.Push(Errorf("E002", "%s and %s both derive the key %q", baseName(group[0]), baseName(group[1]), key).
				WithPaths(pathsOf(group)...).
				WithCause("A directory contains both a .yml and .yaml fragment with the same stem.").
				WithAction("Keep only one of the two files.").
				WithDerivedKeyPath(joinKeyPath(keyPath, key)).
				WithCollision(group[0].path, group[1].path))
			continue
		}

		s.sink.Push(Errorf("E001", "%d entries derive the same key %q", len(group), key).
			WithPaths(pathsOf(group)...).
			WithCause("Two or more entries in the same directory produce identical derived keys.").
			WithAction("Rename the conflicting entries so each derived key is unique.").
			WithDerivedKeyPath(joinKeyPath(keyPath, key)).
			WithCollision(group[0].path, group[1].path))
	}

	byFold := map[string][]scanCandidate{}
	var foldOrder []string
	for _, key := range keyOrder {
		if settled[key] {
			continue
		}
		c := byKey[key][0]
		folded := caseFold(key)
		if _, seen := byFold[folded]; !seen {
			foldOrder = append(foldOrder, folded)
		}
		byFold[folded] = append(byFold[folded], c)
	}

	for _, folded := range foldOrder {
		group := byFold[folded]
		if len(group) < 2 {
			continue
		}
		for _, c := range group {
			rejected[c.path] = true
		}
		s.sink.Push(Errorf("E003", "keys differ only by case: %s", joinedKeys(group)).
			WithPaths(pathsOf(group)...).
			WithCause("Case-fold comparison found colliding keys, independent of filesystem case sensitivity.").
			WithAction("Rename the conflicting entries so their keys differ by more than case.").
			WithDerivedKeyPath(joinKeyPath(keyPath, group[0].key)).
			WithCollision(group[0].path, group[1].path))
	}

	return rejected
}

func extensionDuplicatePair(group []scanCandidate) bool {
	if len(group) != 2 {
		return false
	}
	if group[0].isDir || group[1].isDir {
		return false
	}
	exts := map[string]bool{}
	for _, c := range group {
		exts[strings.ToLower(filepath.Ext(baseName(c)))] = true
	}
	return exts[".yml"] && exts[".yaml"] && len(exts) == 2
}

func baseName(c scanCandidate) string {
	if c.entry != nil {
		return c.entry.Name()
	}
	return c.path
}

func pathsOf(group []scanCandidate) []string {
	paths := make([]string, len(group))
	for i, c := range group {
		paths[i] = c.path
	}
	return paths
}

func joinedKeys(group []scanCandidate) string {
	out := ""
	for i, c := range group {
		if i > 0 {
			out += ", "
		}
		out += c.key
	}
	return out
}
