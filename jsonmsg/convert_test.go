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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/mavkit/errors"
	"github.com/tochemey/mavkit/variant"
)

func TestFromNode(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected variant.Value
	}{
		{name: "double", text: `1.5`, expected: variant.Float(1.5)},
		{name: "integral double", text: `2.0`, expected: variant.Float(2)},
		{name: "NaN text", text: `"NaN"`, expected: variant.Float(math.NaN())},
		{name: "Infinity text", text: `"Infinity"`, expected: variant.Float(math.Inf(1))},
		{name: "negative Infinity text", text: `"-Infinity"`, expected: variant.Float(math.Inf(-1))},
		{name: "signed", text: `-7`, expected: variant.Int(-7)},
		{name: "non negative is signed", text: `65`, expected: variant.Int(65)},
		{name: "unsigned beyond int64", text: `18446744073709551615`, expected: variant.Uint(math.MaxUint64)},
		{name: "string", text: `"hello"`, expected: variant.String("hello")},
		{name: "lowercase nan stays a string", text: `"nan"`, expected: variant.String("nan")},
		{name: "empty array", text: `[]`, expected: variant.IntArray{}},
		{name: "int array", text: `[1,-2,3]`, expected: variant.IntArray{1, -2, 3}},
		{name: "uint array", text: `[18446744073709551615,1]`, expected: variant.UintArray{math.MaxUint64, 1}},
		{name: "float array", text: `[0.5,"Infinity",2,"junk"]`, expected: variant.FloatArray{0.5, math.Inf(1), 2, math.NaN()}},
		{name: "float array from NaN text", text: `["NaN",1.5]`, expected: variant.FloatArray{math.NaN(), 1.5}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := FromNode(parse(t, tc.text))
			require.NoError(t, err)
			assert.Equal(t, tc.expected.Kind(), actual.Kind())
			assert.True(t, variant.Equal(tc.expected, actual), "expected %v, got %v", tc.expected, actual)
		})
	}
}

func TestFromNodeRejects(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected error
	}{
		{name: "null", text: `null`, expected: gerrors.ErrUnrepresentableType},
		{name: "bool", text: `true`, expected: gerrors.ErrUnrepresentableType},
		{name: "object", text: `{"a":1}`, expected: gerrors.ErrUnrepresentableType},
		{name: "array of strings", text: `["a","b"]`, expected: gerrors.ErrUnrepresentableType},
		{name: "array of arrays", text: `[[1]]`, expected: gerrors.ErrUnrepresentableType},
		{name: "int array with a double", text: `[1,2.5]`, expected: gerrors.ErrFieldConversion},
		{name: "int array with a huge value", text: `[1,18446744073709551615]`, expected: gerrors.ErrFieldConversion},
		{name: "uint array with a negative value", text: `[18446744073709551615,-1]`, expected: gerrors.ErrFieldConversion},
		{name: "float array with a bool", text: `[1.5,false]`, expected: gerrors.ErrFieldConversion},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromNode(parse(t, tc.text))
			require.ErrorIs(t, err, tc.expected)
		})
	}
}
