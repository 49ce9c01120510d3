// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fyaml/fyaml/pkg/types"
)

func TestExitError_ErrorUsesWrappedMessage(t *testing.T) {
	wrapped := errors.New("boom")
	e := &ExitError{Code: types.ExitCode(2), Err: wrapped}
	assert.Equal(t, "boom", e.Error())
	assert.Equal(t, wrapped, errors.Unwrap(e))
}

func TestExitError_ErrorFallsBackToCodeWhenNoWrappedError(t *testing.T) {
	e := &ExitError{Code: types.ExitCode(3)}
	assert.Equal(t, "exit status 3", e.Error())
}

func TestExitError_ErrorsAsMatches(t *testing.T) {
	var target *ExitError
	err := error(&ExitError{Code: types.ExitCode(5), Err: errors.New("write failed")})
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, types.ExitCode(5), target.Code)
}
