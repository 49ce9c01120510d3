// SPDX-License-Identifier: MPL-2.0

package fyaml

import (
	"path/filepath"
	"strings"
	"unicode"
)

// reservedYAMLKeys are the case-insensitive YAML boolean/null literals
// that are ambiguous as mapping keys unless explicitly quoted.
var reservedYAMLKeys = map[string]bool{
	"true": true, "false": true, "yes": true, "no": true,
	"null": true, "on": true, "off": true,
}

// isReservedKey reports whether key matches a YAML reserved word,
// case-insensitively.
func isReservedKey(key string) bool {
	return reservedYAMLKeys[strings.ToLower(key)]
}

// isNumericKey reports whether key matches the numeric-key grammar
// ^(0|[1-9][0-9]*)$ — no leading zeros (other than "0" itself), no sign,
// digits only.
func isNumericKey(key string) bool {
	if key == "" {
		return false
	}
	if key == "0" {
		return true
	}
	if key[0] < '1' || key[0] > '9' {
		return false
	}
	for i := 1; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return false
		}
	}
	return true
}

// yamlExtension reports whether name has a yml/yaml extension
// (case-insensitive) and returns the stem (filename with that extension
// stripped).
func yamlExtension(name string) (stem string, ok bool) {
	ext := filepath.Ext(name)
	switch strings.ToLower(ext) {
	case ".yml", ".yaml":
		return name[:len(name)-len(ext)], true
	default:
		return "", false
	}
}

// caseFold applies Unicode simple case folding, used to detect
// case-collisions even on case-sensitive filesystems.
func caseFold(s string) string {
	return strings.Map(func(r rune) rune {
		// Map each rune to the smallest member of its simple-fold orbit.
		min := r
		for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
			if f < min {
				min = f
			}
		}
		return min
	}, s)
}

// joinKeyPath joins a parent dotted key-path with a child key segment,
// used for diagnostic DerivedKeyPath and explain trace output.
func joinKeyPath(parent []string, child string) []string {
	out := make([]string, len(parent), len(parent)+1)
	copy(out, parent)
	return append(out, child)
}
