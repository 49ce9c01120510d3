// SPDX-License-Identifier: MPL-2.0

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPathArgs_RejectsWhitespaceOnly(t *testing.T) {
	err := validPathArgs([]string{"   "})
	assert.Error(t, err)
}

func TestValidPathArgs_AcceptsRealPaths(t *testing.T) {
	err := validPathArgs([]string{"./config", "/tmp/out.yml"})
	assert.NoError(t, err)
}
