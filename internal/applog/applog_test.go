// SPDX-License-Identifier: MPL-2.0

package applog

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestSetVerbose_TogglesLevel(t *testing.T) {
	SetVerbose(true)
	assert.Equal(t, log.DebugLevel, Logger().GetLevel())

	SetVerbose(false)
	assert.Equal(t, log.WarnLevel, Logger().GetLevel())
}
