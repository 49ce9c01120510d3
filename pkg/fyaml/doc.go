// SPDX-License-Identifier: MPL-2.0

// Package fyaml packs a directory tree of small YAML fragments into one
// canonical YAML or JSON document, and unpacks a single document back
// into a fragment tree.
//
// The pipeline runs in three stages, each of which can fail independently
// without aborting the others: Scanner walks the filesystem into a
// ScanTree, rejecting or flagging entries per the naming and collision
// rules; Parser decodes each fragment's YAML bytes into a Value; and
// Assembler folds the parsed tree into one document, choosing sequence or
// mapping mode per directory. Every stage appends to a shared Sink rather
// than failing fast, so a single bad fragment does not hide problems
// elsewhere in the tree. Run wires the three stages together for callers
// that don't need to intervene between stages.
//
// Explain and Diff are read-only drivers over an assembled tree: Explain
// reports how each key was derived and which entries were ignored; Diff
// compares two directory roots structurally and reports the first
// differing location. Scaffold runs the pipeline in reverse, writing a
// single YAML document back out as a fragment tree.
package fyaml
