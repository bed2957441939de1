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

package jsonmsg

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/mavkit/errors"
	"github.com/tochemey/mavkit/internal/testutil"
	"github.com/tochemey/mavkit/mavlink"
	"github.com/tochemey/mavkit/variant"
)

func TestBuilder(t *testing.T) {
	set := loadMessageSet(t)
	builder := NewBuilder(set)

	t.Run("builds a message without fields", func(t *testing.T) {
		result, err := builder.Build(parse(t, `{"id": 0, "fields": {}}`))
		require.NoError(t, err)
		assert.Empty(t, result.Problems)
		assert.Zero(t, result.Seq)
		require.NotEmpty(t, result.Frame())
		assert.Len(t, result.Frame(), 13)
	})

	t.Run("applies header members", func(t *testing.T) {
		result, err := builder.Build(parse(t, `{"id":0,"system_id":7,"component_id":8,"seq":9}`))
		require.NoError(t, err)
		frame := result.Frame()
		assert.EqualValues(t, 9, frame[4])
		assert.EqualValues(t, 7, frame[5])
		assert.EqualValues(t, 8, frame[6])
	})

	t.Run("finalizes with the configured identity", func(t *testing.T) {
		custom := NewBuilder(set, WithIdentity(mavlink.Identity{SystemID: 5, ComponentID: 6}))
		result, err := custom.Build(parse(t, `{"id":0}`))
		require.NoError(t, err)
		assert.EqualValues(t, 5, result.Frame()[5])
		assert.EqualValues(t, 6, result.Frame()[6])
	})

	t.Run("requires an integer id", func(t *testing.T) {
		for _, text := range []string{`{}`, `{"id":"HEARTBEAT"}`, `{"id":1.0}`, `[{"id":0}]`} {
			result, err := builder.Build(parse(t, text))
			require.ErrorIs(t, err, gerrors.ErrMissingMessageID, text)
			assert.Nil(t, result)
		}
	})

	t.Run("rejects unknown ids", func(t *testing.T) {
		for _, text := range []string{`{"id":999999}`, `{"id":-1}`, `{"id":18446744073709551615}`} {
			result, err := builder.Build(parse(t, text))
			require.ErrorIs(t, err, gerrors.ErrUnknownMessageID, text)
			assert.Nil(t, result)
		}
	})

	t.Run("skips members that cannot be applied", func(t *testing.T) {
		result, err := builder.Build(parse(t, `{"id":0,"system_id":300,"seq":"x","fields":{
			"type": 2,
			"nope": 1,
			"autopilot": 256,
			"base_mode": null,
			"system_status": 4
		}}`))
		require.NoError(t, err)
		require.Len(t, result.Problems, 5)
		assert.ErrorIs(t, result.Problems[0], gerrors.ErrFieldConversion)
		assert.ErrorIs(t, result.Problems[1], gerrors.ErrFieldConversion)
		assert.ErrorIs(t, result.Problems[2], gerrors.ErrUnknownField)
		assert.ErrorIs(t, result.Problems[3], gerrors.ErrFieldConversion)
		assert.ErrorIs(t, result.Problems[4], gerrors.ErrUnrepresentableType)

		message := result.Message
		assert.EqualValues(t, 1, message.Header().SystemID())
		value, err := message.Get("type")
		require.NoError(t, err)
		assert.Equal(t, variant.Uint(2), value)
		value, err = message.Get("system_status")
		require.NoError(t, err)
		assert.Equal(t, variant.Uint(4), value)
		value, err = message.Get("autopilot")
		require.NoError(t, err)
		assert.Equal(t, variant.Uint(0), value)
	})

	t.Run("reports a non object fields member", func(t *testing.T) {
		result, err := builder.Build(parse(t, `{"id":0,"fields":[1]}`))
		require.NoError(t, err)
		require.Len(t, result.Problems, 1)
		assert.ErrorIs(t, result.Problems[0], gerrors.ErrUnrepresentableType)
	})

	t.Run("fails finalization", func(t *testing.T) {
		for _, text := range []string{`{"id":0,"seq":256}`, `{"id":0,"seq":-1}`, `{"id":0,"seq":18446744073709551615}`, `{"id":42001}`} {
			result, err := builder.Build(parse(t, text))
			require.ErrorIs(t, err, gerrors.ErrFinalization, text)
			require.NotNil(t, result, text)
			assert.Empty(t, result.Frame(), text)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	set := loadMessageSet(t)

	values := map[string]variant.Value{
		"c":    variant.Int(-3),
		"u8":   variant.Uint(65),
		"i8":   variant.Int(-128),
		"u16":  variant.Uint(65535),
		"i16":  variant.Int(-32768),
		"u32":  variant.Uint(math.MaxUint32),
		"i32":  variant.Int(math.MinInt32),
		"u64":  variant.Uint(math.MaxUint64),
		"i64":  variant.Int(math.MinInt64),
		"f32":  variant.Float(float32(3.14159)),
		"f64":  variant.Float(math.Inf(-1)),
		"s":    variant.String(`q"uo\te`),
		"u16s": variant.UintArray{7, 0, 9},
		"i32s": variant.IntArray{-5, 5},
		"f64s": variant.FloatArray{math.NaN(), 1e300},
		"u64s": variant.UintArray{math.MaxUint64, 1},
		"f32s": variant.FloatArray{0.25, float64(float32(1e-7)), 12},
		"i8s":  variant.IntArray{127, -1},
	}
	original := newMessage(t, set, testutil.TestTypesID, values)
	original.Header().SetSystemID(9)
	original.Header().SetComponentID(10)

	buf := new(bytes.Buffer)
	require.NoError(t, Render(buf, original))

	result, err := NewBuilder(set).Build(parse(t, buf.String()))
	require.NoError(t, err)
	assert.Empty(t, result.Problems)

	rebuilt := result.Message
	assert.Equal(t, original.ID(), rebuilt.ID())
	assert.Equal(t, original.Header().SystemID(), rebuilt.Header().SystemID())
	assert.Equal(t, original.Header().ComponentID(), rebuilt.Header().ComponentID())
	for _, name := range original.Type().FieldNames() {
		expected, err := original.Get(name)
		require.NoError(t, err)
		actual, err := rebuilt.Get(name)
		require.NoError(t, err)
		assert.Equal(t, expected.Kind(), actual.Kind(), name)
		assert.True(t, variant.Equal(expected, actual), "%s: expected %v, got %v", name, expected, actual)
	}
}
