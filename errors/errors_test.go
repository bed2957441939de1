// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldError(t *testing.T) {
	err := NewFieldError("HEARTBEAT", "type", ErrFieldConversion)
	require.Error(t, err)
	require.EqualError(t, err, "field type on message HEARTBEAT: field conversion failed")
	assert.ErrorIs(t, err, ErrFieldConversion)
	assert.Equal(t, "HEARTBEAT", err.Message())
	assert.Equal(t, "type", err.Field())

	var target *FieldError
	wrapped := errors.Join(errors.New("outer"), err)
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, "type", target.Field())
}

func TestFinalizationError(t *testing.T) {
	err := NewFinalizationError(-1, "sequence out of range")
	require.EqualError(t, err, "finalization failed (-1): sequence out of range")
	assert.ErrorIs(t, err, ErrFinalization)
	assert.Equal(t, -1, err.Code())
}
