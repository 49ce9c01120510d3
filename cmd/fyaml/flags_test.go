// SPDX-License-Identifier: MPL-2.0

package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyaml/fyaml/pkg/fyaml"
)

func newTestPipelineCmd(f *pipelineFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "test", RunE: func(cmd *cobra.Command, args []string) error { return nil }}
	registerPipelineFlags(cmd, f)
	return cmd
}

func TestBuildConfig_UnchangedFlagsFallBackToDefaults(t *testing.T) {
	f := &pipelineFlags{}
	cmd := newTestPipelineCmd(f)
	require.NoError(t, cmd.Flags().Parse(nil))

	cfg, err := f.buildConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, fyaml.SeqGapWarn, cfg.SeqGaps)
	assert.Equal(t, fyaml.MultiDocError, cfg.MultiDoc)
	assert.Equal(t, fyaml.RootModeMap, cfg.RootMode.Kind)
	assert.False(t, cfg.Strict)
	assert.False(t, cfg.Preserve)
}

func TestBuildConfig_ExplicitFlagsWinOverDefaults(t *testing.T) {
	f := &pipelineFlags{}
	cmd := newTestPipelineCmd(f)
	require.NoError(t, cmd.Flags().Parse([]string{
		"--seq-gaps=allow",
		"--multi-doc=all",
		"--strict",
		"--preserve",
		"--include-hidden",
	}))

	cfg, err := f.buildConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, fyaml.SeqGapAllow, cfg.SeqGaps)
	assert.Equal(t, fyaml.MultiDocAll, cfg.MultiDoc)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.Preserve)
	assert.True(t, cfg.IncludeHidden)
}

func TestBuildConfig_FileRootRequiresRootFile(t *testing.T) {
	f := &pipelineFlags{}
	cmd := newTestPipelineCmd(f)
	require.NoError(t, cmd.Flags().Parse([]string{"--root-mode=file-root"}))

	_, err := f.buildConfig(cmd)
	assert.Error(t, err)
}

func TestBuildConfig_FileRootWithMergeUnder(t *testing.T) {
	f := &pipelineFlags{}
	cmd := newTestPipelineCmd(f)
	require.NoError(t, cmd.Flags().Parse([]string{
		"--root-mode=file-root",
		"--root-file=base.yml",
		"--merge-under=overrides",
	}))

	cfg, err := f.buildConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, fyaml.RootModeFile, cfg.RootMode.Kind)
	assert.Equal(t, "base.yml", cfg.RootMode.RootFile)
	assert.Equal(t, "overrides", cfg.RootMode.MergeUnder)
	assert.True(t, cfg.RootMode.HasMerge)
}

func TestParseSeqGaps_InvalidValue(t *testing.T) {
	_, err := parseSeqGaps("bogus")
	assert.Error(t, err)
}

func TestParseRootMode_InvalidValue(t *testing.T) {
	_, err := parseRootMode("bogus", "", "")
	assert.Error(t, err)
}
