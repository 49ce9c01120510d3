// SPDX-License-Identifier: MPL-2.0

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyaml/fyaml/pkg/fyaml"
)

func TestLoad_DefaultsMatchFyamlDefaultConfig(t *testing.T) {
	base := fyaml.DefaultConfig()
	d := Load()

	assert.Equal(t, base.SeqGaps, d.SeqGaps)
	assert.Equal(t, base.MultiDoc, d.MultiDoc)
	assert.Equal(t, base.MaxYAMLBytes, d.MaxYAMLBytes)
	assert.Equal(t, base.IncludeHidden, d.IncludeHidden)
}

func TestLoad_EnvOverridesDefault(t *testing.T) {
	t.Setenv("FYAML_SEQ_GAPS", "allow")
	t.Setenv("FYAML_MAX_YAML_BYTES", "2048")
	t.Setenv("FYAML_INCLUDE_HIDDEN", "true")

	d := Load()

	assert.Equal(t, fyaml.SeqGapAllow, d.SeqGaps)
	assert.Equal(t, int64(2048), d.MaxYAMLBytes)
	assert.True(t, d.IncludeHidden)
}

func TestDefaults_ToConfig_PreservesFlagOnlyFields(t *testing.T) {
	d := Load()
	base := fyaml.DefaultConfig()
	base.RootMode = fyaml.RootMode{Kind: fyaml.RootModeSeq}
	base.Strict = true
	base.Preserve = true

	cfg := d.ToConfig(base)

	require.Equal(t, fyaml.RootModeSeq, cfg.RootMode.Kind)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.Preserve)
	assert.Equal(t, d.SeqGaps, cfg.SeqGaps)
}
