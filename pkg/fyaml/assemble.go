// SPDX-License-Identifier: MPL-2.0

package fyaml

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Assembler folds a parsed ScanTree into a single Value.
type Assembler struct {
	cfg  Config
	sink *Sink
}

// NewAssembler constructs an Assembler.
func NewAssembler(cfg Config, sink *Sink) *Assembler {
	return &Assembler{cfg: cfg, sink: sink}
}

// Assemble folds tree according to the configured root mode. root is the
// scan root's absolute path, used only to build the file-root's absolute
// root-file path.
func (a *Assembler) Assemble(tree *ScanTree, root string) (Value, bool) {
	switch a.cfg.RootMode.Kind {
	case RootModeSeq:
		v := a.foldDirectory(tree.Root, nil, false)
		if v.Kind == KindSeq || (v.Kind == KindMap && len(v.Map) == 0) {
			if v.Kind == KindMap {
				v = NewSeq(nil)
			}
			return v, true
		}
		a.sink.Push(Errorf("E051", "seq-root requires all root contributors to be numeric").
			WithPaths(root).
			WithCause("At least one root-level contributor key was non-numeric, so the root is not a sequence.").
			WithAction("Rename all root contributors to numeric keys like 0.yml, 1.yml, ..."))
		return Value{}, false
	case RootModeFile:
		return a.assembleFileRoot(tree, root)
	default: // RootModeMap
		return a.foldDirectory(tree.Root, nil, true), true
	}
}

// foldDirectory implements the directory folding rules: a directory whose
// children are all numerically keyed folds to a sequence, all non-numeric
// keyed folds to a mapping, and a mix is an error. The _forceMap parameter
// is unused beyond MapRoot's semantics matching a plain fold: MapRoot
// accepts a numeric-only root as an equivalent sequence, so no
// special-casing is required here beyond calling foldDirectory the same
// way for both.
func (a *Assembler) foldDirectory(dir *ScanNode, keyPath []string, _forceMap bool) Value {
	type child struct {
		key       string
		isNumeric bool
		mustQuote bool
		value     Value
	}

	children := make([]child, 0, len(dir.Children))
	for _, c := range dir.Children {
		childKeyPath := joinKeyPath(keyPath, c.DerivedKey)
		var v Value
		if c.Kind == NodeFile {
			if c.Parsed.Ran && c.Parsed.Err == nil {
				v = c.Parsed.Value
			} else {
				v = Null
			}
		} else {
			v = a.foldDirectory(c, childKeyPath, false)
		}
		children = append(children, child{key: c.DerivedKey, isNumeric: c.IsNumericKey, mustQuote: c.MustQuoteOnEmit, value: v})
	}

	if len(children) == 0 {
		return NewMap(nil)
	}

	allNumeric, allNonNumeric := true, true
	for _, c := range children {
		if c.isNumeric {
			allNonNumeric = false
		} else {
			allNumeric = false
		}
	}

	switch {
	case allNumeric:
		sort.Slice(children, func(i, j int) bool {
			return atoiUnchecked(children[i].key) < atoiUnchecked(children[j].key)
		})
		indices := make([]int, len(children))
		for i, c := range children {
			indices[i] = atoiUnchecked(c.key)
		}
		if hasGap(indices) {
			switch a.cfg.SeqGaps {
			case SeqGapError:
				a.sink.Push(Errorf("E040", "sequence directory has non-contiguous indices").
					WithPaths(dir.Path).
					WithCause(fmt.Sprintf("Indices present: %v; expected 0..%d contiguous.", indices, len(indices)-1)).
					WithAction("Renumber the fragments so indices form 0,1,2,....").
					WithDerivedKeyPath(keyPath))
			case SeqGapWarn:
				a.sink.Push(Warnf("W041", "sequence directory has non-contiguous indices").
					WithPaths(dir.Path).
					WithCause(fmt.Sprintf("Indices present: %v; expected 0..%d contiguous.", indices, len(indices)-1)).
					WithAction("Renumber the fragments so indices form 0,1,2,... to silence this warning.").
					WithDerivedKeyPath(keyPath))
			}
		}
		items := make([]Value, len(children))
		for i, c := range children {
			items[i] = c.value
		}
		return NewSeq(items)

	case allNonNumeric:
		entries := make([]MapEntry, len(children))
		for i, c := range children {
			entries[i] = MapEntry{Key: c.key, Value: c.value, MustQuote: c.mustQuote}
		}
		return NewMap(entries)

	default:
		var numeric, nonNumeric []string
		for _, c := range children {
			if c.isNumeric {
				numeric = append(numeric, c.key)
			} else {
				nonNumeric = append(nonNumeric, c.key)
			}
		}
		a.sink.Push(Errorf("E050", "directory mixes numeric and non-numeric keys").
			WithPaths(dir.Path).
			WithCause(fmt.Sprintf("Numeric: %v; non-numeric: %v.", numeric, nonNumeric)).
			WithAction("Split the directory so it is entirely numeric-keyed (a sequence) or entirely named (a mapping).").
			WithDerivedKeyPath(keyPath))
		return Null
	}
}

// assembleFileRoot implements the FileRoot mode: parse the configured root
// file and, when --merge-under is set, fold the directory mapping into it.
func (a *Assembler) assembleFileRoot(tree *ScanTree, root string) (Value, bool) {
	rm := a.cfg.RootMode
	if rm.RootFile == "" {
		a.sink.Push(Errorf("E054", "file-root mode requires --root-file").
			WithPaths(root).
			WithCause("No root file was provided.").
			WithAction("Pass --root-file <RELATIVE_PATH> when using --root-mode file-root."))
		return Value{}, false
	}

	rootFileAbs := rm.RootFile
	if !filepath.IsAbs(rootFileAbs) {
		rootFileAbs = filepath.Join(root, rm.RootFile)
	}
	if _, err := os.Stat(rootFileAbs); err != nil {
		a.sink.Push(Errorf("E055", "root file does not exist").
			WithPaths(rootFileAbs).
			WithCause("The --root-file path does not resolve to an existing file.").
			WithAction("Use a valid relative path under the scan root."))
		return Value{}, false
	}

	rootParser := NewParser(a.cfg, a.sink)
	rootOutcome := rootParser.parseFile(rootFileAbs, []string{"$root"})
	if rootOutcome.Err != nil {
		return Value{}, false
	}
	rootValue := rootOutcome.Value

	// tree was already scanned with rootFileAbs excluded, and already
	// parsed, by Run before Assemble was called; fold it directly rather
	// than re-scanning the directory a second time.
	dirValue := a.foldDirectory(tree.Root, nil, true)

	if dirValue.Kind != KindMap || len(dirValue.Map) == 0 {
		if !rm.HasMerge && dirValue.Kind == KindMap && len(dirValue.Map) > 0 {
			a.sink.Push(Warnf("W060", "file-root directory content is unused").
				WithPaths(rootFileAbs).
				WithCause("merge_under is absent, so the parsed root file is the entire result.").
				WithAction("Pass --merge-under to fold directory content into the result."))
		}
		return rootValue, true
	}

	if !rm.HasMerge {
		a.sink.Push(Warnf("W060", "file-root directory content is unused").
			WithPaths(rootFileAbs).
			WithCause("merge_under is absent, so the parsed root file is the entire result.").
			WithAction("Pass --merge-under to fold directory content into the result."))
		return rootValue, true
	}

	return a.mergeUnder(rootValue, dirValue, rm.MergeUnder, rootFileAbs)
}

// mergeUnder folds dirValue into rootValue under the target key.
func (a *Assembler) mergeUnder(rootValue, dirValue Value, target, location string) (Value, bool) {
	if rootValue.Kind != KindMap {
		a.sink.Push(Errorf("E053", "merge target is not a mapping").
			WithPaths(location).
			WithDerivedKeyPath([]string{target}).
			WithCause("The root file must parse to a mapping when --merge-under is set.").
			WithAction("Make the root file's top level a mapping."))
		return rootValue, false
	}

	existing, ok := rootValue.Get(target)
	if !ok {
		entries := append(append([]MapEntry(nil), rootValue.Map...), MapEntry{Key: target, Value: dirValue})
		return NewMap(entries), true
	}

	if existing.Kind != KindMap {
		a.sink.Push(Errorf("E053", "merge target exists but is not a mapping").
			WithPaths(location).
			WithDerivedKeyPath([]string{target}).
			WithCause("--merge-under requires an existing mapping when the target key already exists.").
			WithAction("Change the target key to a mapping or choose a different merge key."))
		return rootValue, false
	}

	merged, ok := a.mergeMappings(existing, dirValue, target, location)
	entries := make([]MapEntry, len(rootValue.Map))
	for i, e := range rootValue.Map {
		if e.Key == target {
			entries[i] = MapEntry{Key: target, Value: merged, MustQuote: e.MustQuote}
		} else {
			entries[i] = e
		}
	}
	return NewMap(entries), ok
}

// mergeMappings merges source into target, with directory keys winning
// only when they do not collide with an existing root-file key, reporting
// E052 for every colliding key.
func (a *Assembler) mergeMappings(target, source Value, keyPrefix, location string) (Value, bool) {
	entries := append([]MapEntry(nil), target.Map...)
	ok := true
	for _, e := range source.Map {
		if _, exists := target.Get(e.Key); exists {
			ok = false
			a.sink.Push(Errorf("E052", "key collision while merging file-root directory content").
				WithPaths(location).
				WithDerivedKeyPath([]string{keyPrefix, e.Key}).
				WithCause("Both the root file and the directory tree define the same key.").
				WithAction("Rename one of the two, or remove --merge-under's overlap."))
			continue
		}
		entries = append(entries, e)
	}
	return NewMap(entries), ok
}

func atoiUnchecked(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

func hasGap(indices []int) bool {
	for i, v := range indices {
		if v != i {
			return true
		}
	}
	return false
}
