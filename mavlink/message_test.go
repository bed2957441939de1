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

package mavlink

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/mavkit/errors"
	"github.com/tochemey/mavkit/internal/testutil"
	"github.com/tochemey/mavkit/variant"
)

var defaultSender = Identity{SystemID: 1, ComponentID: 1}

func newHeartbeat(t *testing.T, set *MessageSet) *Message {
	t.Helper()
	message, err := set.Create(0)
	require.NoError(t, err)
	require.NoError(t, message.Set("type", variant.Uint(2)))
	require.NoError(t, message.Set("autopilot", variant.Int(12)))
	require.NoError(t, message.Set("system_status", variant.Uint(4)))
	require.NoError(t, message.Set("mavlink_version", variant.Uint(3)))
	return message
}

func TestMessage_Finalize(t *testing.T) {
	set := loadTestSet(t)

	t.Run("builds a v2 frame", func(t *testing.T) {
		message := newHeartbeat(t, set)
		n, err := message.Finalize(0, defaultSender)
		require.NoError(t, err)

		expected := []byte{
			0xfd, 0x09, 0x00, 0x00, 0x00, 0x01, 0x01, 0x00, 0x00, 0x00,
			0x00, 0x00, 0x00, 0x00, 0x02, 0x0c, 0x00, 0x04, 0x03,
			0xb6, 0xbd,
		}
		assert.Equal(t, len(expected), n)
		assert.Equal(t, expected, message.Data())
		assert.EqualValues(t, 1, message.Header().SystemID())
		assert.EqualValues(t, 1, message.Header().ComponentID())
		assert.False(t, message.Header().IsSigned())
	})

	t.Run("keeps explicit header ids", func(t *testing.T) {
		message := newHeartbeat(t, set)
		message.Header().SetSystemID(42)
		message.Header().SetComponentID(7)
		_, err := message.Finalize(9, defaultSender)
		require.NoError(t, err)

		frame := message.Data()
		assert.EqualValues(t, 9, frame[4])
		assert.EqualValues(t, 42, frame[5])
		assert.EqualValues(t, 7, frame[6])
	})

	t.Run("trims trailing zero bytes", func(t *testing.T) {
		message, err := set.Create(0)
		require.NoError(t, err)
		n, err := message.Finalize(1, defaultSender)
		require.NoError(t, err)
		assert.Equal(t, headerLenV2+1+checksumLen, n)
		assert.EqualValues(t, 1, message.Data()[1])
	})

	t.Run("rejects out of range sequence numbers", func(t *testing.T) {
		message := newHeartbeat(t, set)
		for _, seq := range []int{-1, 256} {
			n, err := message.Finalize(seq, defaultSender)
			assert.Equal(t, -1, n)
			require.ErrorIs(t, err, errors.ErrFinalization)
		}
		assert.Nil(t, message.Data())
	})

	t.Run("rejects empty payloads", func(t *testing.T) {
		message, err := set.Create(42001)
		require.NoError(t, err)
		n, err := message.Finalize(0, defaultSender)
		assert.Equal(t, -2, n)
		var finalizationErr *errors.FinalizationError
		require.ErrorAs(t, err, &finalizationErr)
		assert.Equal(t, -2, finalizationErr.Code())
	})

	t.Run("Set discards a previous frame", func(t *testing.T) {
		message := newHeartbeat(t, set)
		_, err := message.Finalize(0, defaultSender)
		require.NoError(t, err)
		require.NotNil(t, message.Data())
		require.NoError(t, message.Set("base_mode", variant.Uint(1)))
		assert.Nil(t, message.Data())
	})
}

func TestMessage_SetGet(t *testing.T) {
	set := loadTestSet(t)

	testCases := []struct {
		name     string
		field    string
		value    variant.Value
		expected variant.Value
	}{
		{name: "char from int", field: "c", value: variant.Int(65), expected: variant.Int(65)},
		{name: "uint8", field: "u8", value: variant.Uint(255), expected: variant.Uint(255)},
		{name: "int8 minimum", field: "i8", value: variant.Int(-128), expected: variant.Int(-128)},
		{name: "uint16 from integral float", field: "u16", value: variant.Float(512), expected: variant.Uint(512)},
		{name: "int16 from uint", field: "i16", value: variant.Uint(32767), expected: variant.Int(32767)},
		{name: "uint32", field: "u32", value: variant.Uint(math.MaxUint32), expected: variant.Uint(math.MaxUint32)},
		{name: "int32", field: "i32", value: variant.Int(math.MinInt32), expected: variant.Int(math.MinInt32)},
		{name: "uint64", field: "u64", value: variant.Uint(math.MaxUint64), expected: variant.Uint(math.MaxUint64)},
		{name: "int64", field: "i64", value: variant.Int(math.MinInt64), expected: variant.Int(math.MinInt64)},
		{name: "float narrows", field: "f32", value: variant.Float(0.1), expected: variant.Float(float32(0.1))},
		{name: "double from int", field: "f64", value: variant.Int(-3), expected: variant.Float(-3)},
		{name: "double keeps NaN", field: "f64", value: variant.Float(math.NaN()), expected: variant.Float(math.NaN())},
		{name: "string", field: "s", value: variant.String("hello"), expected: variant.String("hello")},
		{name: "string filling the field", field: "s", value: variant.String("12345678"), expected: variant.String("12345678")},
		{name: "short uint array is padded", field: "u16s", value: variant.UintArray{1, 2}, expected: variant.UintArray{1, 2, 0}},
		{name: "int array", field: "i32s", value: variant.IntArray{-1}, expected: variant.IntArray{-1, 0}},
		{name: "double array", field: "f64s", value: variant.FloatArray{0.5, -0.5}, expected: variant.FloatArray{0.5, -0.5}},
		{name: "uint64 array from ints", field: "u64s", value: variant.IntArray{1, 2}, expected: variant.UintArray{1, 2}},
		{name: "float array from ints", field: "f32s", value: variant.IntArray{1, 2, 3}, expected: variant.FloatArray{1, 2, 3}},
		{name: "extension array", field: "i8s", value: variant.IntArray{-1, 1}, expected: variant.IntArray{-1, 1}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			message, err := set.Create(testutil.TestTypesID)
			require.NoError(t, err)
			require.NoError(t, message.Set(tc.field, tc.value))
			actual, err := message.Get(tc.field)
			require.NoError(t, err)
			assert.Equal(t, tc.expected.Kind(), actual.Kind())
			assert.True(t, variant.Equal(tc.expected, actual), "expected %v, got %v", tc.expected, actual)
		})
	}
}

func TestMessage_SetRejects(t *testing.T) {
	set := loadTestSet(t)

	testCases := []struct {
		name  string
		field string
		value variant.Value
	}{
		{name: "uint8 overflow", field: "u8", value: variant.Uint(256)},
		{name: "negative into unsigned", field: "u32", value: variant.Int(-1)},
		{name: "int8 underflow", field: "i8", value: variant.Int(-129)},
		{name: "fractional float into integer", field: "i16", value: variant.Float(3.5)},
		{name: "NaN into integer", field: "i64", value: variant.Float(math.NaN())},
		{name: "uint too big for int64", field: "i64", value: variant.Uint(math.MaxUint64)},
		{name: "string into scalar", field: "u8", value: variant.String("a")},
		{name: "array into scalar", field: "f64", value: variant.FloatArray{1}},
		{name: "string too long", field: "s", value: variant.String("123456789")},
		{name: "scalar into char array", field: "s", value: variant.Int(1)},
		{name: "scalar into array", field: "u16s", value: variant.Uint(1)},
		{name: "array too long", field: "i32s", value: variant.IntArray{1, 2, 3}},
		{name: "array element out of range", field: "i8s", value: variant.IntArray{1, 300}},
		{name: "string into numeric array", field: "u16s", value: variant.String("ab")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			message, err := set.Create(testutil.TestTypesID)
			require.NoError(t, err)
			before, err := message.Get(tc.field)
			require.NoError(t, err)

			err = message.Set(tc.field, tc.value)
			require.ErrorIs(t, err, errors.ErrFieldConversion)
			var fieldErr *errors.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tc.field, fieldErr.Field())
			assert.Equal(t, "TEST_TYPES", fieldErr.Message())

			after, err := message.Get(tc.field)
			require.NoError(t, err)
			assert.True(t, variant.Equal(before, after))
		})
	}

	t.Run("unknown field", func(t *testing.T) {
		message, err := set.Create(testutil.TestTypesID)
		require.NoError(t, err)
		require.ErrorIs(t, message.Set("nope", variant.Int(1)), errors.ErrUnknownField)
		_, err = message.Get("nope")
		require.ErrorIs(t, err, errors.ErrUnknownField)
	})
}

func TestMessage_GetStringStopsAtNUL(t *testing.T) {
	set := loadTestSet(t)
	message, err := set.Create(testutil.TestTypesID)
	require.NoError(t, err)

	field, ok := message.Type().Field("s")
	require.True(t, ok)
	copy(message.payload[field.Offset:], []byte{'a', 'b', 0, 'c'})

	value, err := message.Get("s")
	require.NoError(t, err)
	assert.Equal(t, variant.String("ab"), value)
}
