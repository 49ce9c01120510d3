// SPDX-License-Identifier: MPL-2.0

// Package config loads process-wide defaults for flags that are reasonable
// to set once per environment instead of repeating on every invocation:
// the default sequence-gap and multi-document policies, the editor-junk
// glob list, and the maximum fragment size. It is deliberately smaller
// than a full config-file loader — fyaml has no per-project config file
// of its own, only environment variables and a handful of Viper defaults.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/fyaml/fyaml/pkg/fyaml"
)

// EnvPrefix is the environment variable namespace fyaml binds its
// configuration defaults under, e.g. FYAML_MAX_YAML_BYTES.
const EnvPrefix = "FYAML"

// Defaults holds the environment-resolved fallback values for flags that
// were not explicitly passed on the command line. Values here are already
// merged with fyaml.DefaultConfig's documented defaults, so a caller can
// use a Defaults value directly wherever it would otherwise use
// fyaml.DefaultConfig().
type Defaults struct {
	SeqGaps           fyaml.SeqGapMode
	MultiDoc          fyaml.MultiDocMode
	EditorJunkGlobs   []string
	MaxYAMLBytes      int64
	IncludeHidden     bool
	AllowDottedKeys   bool
	AllowReservedKeys bool
}

// Load resolves Defaults from the environment: Viper defaults seeded from
// fyaml.DefaultConfig, overridable by FYAML_-prefixed environment
// variables. It never reads a config file; fyaml's unit of configuration
// is the fragment tree itself, not a project-level settings file.
func Load() Defaults {
	v := viper.New()

	base := fyaml.DefaultConfig()
	v.SetDefault("seq_gaps", base.SeqGaps.String())
	v.SetDefault("multi_doc", base.MultiDoc.String())
	v.SetDefault("editor_junk_globs", base.EditorJunkGlobs)
	v.SetDefault("max_yaml_bytes", base.MaxYAMLBytes)
	v.SetDefault("include_hidden", base.IncludeHidden)
	v.SetDefault("allow_dotted_keys", base.AllowDottedKeys)
	v.SetDefault("allow_reserved_keys", base.AllowReservedKeys)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{
		"seq_gaps", "multi_doc", "editor_junk_globs", "max_yaml_bytes",
		"include_hidden", "allow_dotted_keys", "allow_reserved_keys",
	} {
		_ = v.BindEnv(key)
	}

	return Defaults{
		SeqGaps:           parseSeqGapMode(v.GetString("seq_gaps")),
		MultiDoc:          parseMultiDocMode(v.GetString("multi_doc")),
		EditorJunkGlobs:   v.GetStringSlice("editor_junk_globs"),
		MaxYAMLBytes:      v.GetInt64("max_yaml_bytes"),
		IncludeHidden:     v.GetBool("include_hidden"),
		AllowDottedKeys:   v.GetBool("allow_dotted_keys"),
		AllowReservedKeys: v.GetBool("allow_reserved_keys"),
	}
}

// ToConfig folds Defaults into a fyaml.Config, preserving whatever the
// caller already set for fields Defaults doesn't cover (RootMode, Strict,
// Preserve — flag-only knobs with no environment equivalent).
func (d Defaults) ToConfig(cfg fyaml.Config) fyaml.Config {
	cfg.SeqGaps = d.SeqGaps
	cfg.MultiDoc = d.MultiDoc
	cfg.EditorJunkGlobs = d.EditorJunkGlobs
	cfg.MaxYAMLBytes = d.MaxYAMLBytes
	cfg.IncludeHidden = d.IncludeHidden
	cfg.AllowDottedKeys = d.AllowDottedKeys
	cfg.AllowReservedKeys = d.AllowReservedKeys
	return cfg
}

func parseSeqGapMode(s string) fyaml.SeqGapMode {
	switch strings.ToLower(s) {
	case "error":
		return fyaml.SeqGapError
	case "allow":
		return fyaml.SeqGapAllow
	default:
		return fyaml.SeqGapWarn
	}
}

func parseMultiDocMode(s string) fyaml.MultiDocMode {
	switch strings.ToLower(s) {
	case "first":
		return fyaml.MultiDocFirst
	case "all":
		return fyaml.MultiDocAll
	default:
		return fyaml.MultiDocError
	}
}
