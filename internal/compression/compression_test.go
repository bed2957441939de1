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

package compression

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		expected Kind
	}{
		{"", None},
		{"none", None},
		{"GZIP", Gzip},
		{" zstd ", Zstd},
		{"lz4", LZ4},
	}
	for _, tc := range testCases {
		kind, err := Parse(tc.name)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, kind)
	}

	_, err := Parse("brotli")
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestRoundTrip(t *testing.T) {
	input := strings.Repeat("frames keep flowing ", 64)
	for _, kind := range []Kind{Gzip, Zstd, LZ4} {
		t.Run(string(kind), func(t *testing.T) {
			var compressed bytes.Buffer
			writer, err := NewWriter(kind, &compressed)
			require.NoError(t, err)
			_, err = writer.Write([]byte(input))
			require.NoError(t, err)
			require.NoError(t, writer.Close())

			assert.Equal(t, kind, Detect(compressed.Bytes()))

			reader, err := NewReader(kind, &compressed)
			require.NoError(t, err)
			output, err := io.ReadAll(reader)
			require.NoError(t, err)
			require.NoError(t, reader.Close())
			assert.Equal(t, input, string(output))
		})
	}
}

func TestNone(t *testing.T) {
	var out bytes.Buffer
	writer, err := NewWriter(None, &out)
	require.NoError(t, err)
	_, err = writer.Write([]byte("plain"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	assert.Equal(t, "plain", out.String())

	reader, err := NewReader(None, &out)
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "plain", string(data))
}

func TestDetect(t *testing.T) {
	assert.Equal(t, None, Detect(nil))
	assert.Equal(t, None, Detect([]byte{0xfd, 0x09}))
	assert.Equal(t, None, Detect([]byte(`{"id":0}`)))
	assert.Equal(t, None, Detect([]byte{0x28, 0xb5}))
	assert.Equal(t, Gzip, Detect([]byte{0x1f, 0x8b, 0x08}))
}

func TestUnknownKind(t *testing.T) {
	_, err := NewReader("snappy", bytes.NewReader(nil))
	require.ErrorIs(t, err, ErrUnknownKind)
	_, err = NewWriter("snappy", io.Discard)
	require.ErrorIs(t, err, ErrUnknownKind)
}
