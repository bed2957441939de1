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

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/mavkit/jsonmsg"
)

// heartbeatFrame is HEARTBEAT type 2, autopilot 12, status 4, version 3
// from system 1 component 1 with sequence 0.
var heartbeatFrame = []byte{
	0xfd, 0x09, 0x00, 0x00, 0x00, 0x01, 0x01, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x02, 0x0c, 0x00, 0x04, 0x03,
	0xb6, 0xbd,
}

const heartbeatJSON = `{"id":0,"name":"HEARTBEAT","system_id":1,"component_id":1,"seq":0,"fields":` +
	`{"type":2,"autopilot":12,"base_mode":0,"custom_mode":0,"system_status":4,"mavlink_version":3}}`

const heartbeatInput = `{"id":0,"fields":{"type":2,"autopilot":12,"system_status":4,"mavlink_version":3}}`

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type result struct {
	code   int
	stdout []byte
	stderr string
}

func execute(t *testing.T, cmd *cobra.Command, stdin []byte, args ...string) result {
	t.Helper()
	stdout := new(bytes.Buffer)
	stderr := new(syncBuffer)
	cmd.SetIn(bytes.NewReader(stdin))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append([]string{}, args...))
	code := Execute(cmd)
	return result{code: code, stdout: stdout.Bytes(), stderr: stderr.String()}
}

func TestDecodeCommand(t *testing.T) {
	t.Run("decodes standard input", func(t *testing.T) {
		res := execute(t, NewDecodeCommand(), heartbeatFrame)
		require.Zero(t, res.code, res.stderr)
		assert.Equal(t, heartbeatJSON+"\n", string(res.stdout))
		assert.Contains(t, res.stderr, "built-in definitions")
		assert.Contains(t, res.stderr, "reading from stdin, writing to stdout")
	})
	t.Run("decodes a file named on the command line", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "frames.bin")
		require.NoError(t, os.WriteFile(path, append(append([]byte{}, heartbeatFrame...), heartbeatFrame...), 0o600))

		res := execute(t, NewDecodeCommand(), nil, path)
		require.Zero(t, res.code, res.stderr)
		assert.Equal(t, heartbeatJSON+"\n"+heartbeatJSON+"\n", string(res.stdout))
	})
	t.Run("rejects an invalid configuration", func(t *testing.T) {
		res := execute(t, NewDecodeCommand(), heartbeatFrame, "--log-level", "trace")
		assert.Equal(t, 1, res.code)
		assert.Empty(t, res.stdout)
		assert.Contains(t, res.stderr, "invalid configuration")
	})
	t.Run("rejects a missing definition file", func(t *testing.T) {
		res := execute(t, NewDecodeCommand(), heartbeatFrame, "-x", filepath.Join(t.TempDir(), "missing.xml"))
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "missing.xml")
	})
	t.Run("rejects a missing input file", func(t *testing.T) {
		res := execute(t, NewDecodeCommand(), nil, filepath.Join(t.TempDir(), "missing.bin"))
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "failed to open input")
	})
	t.Run("rejects extra arguments", func(t *testing.T) {
		res := execute(t, NewDecodeCommand(), nil, "a.bin", "b.bin")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "Error:")
	})
	t.Run("has no link identity flags", func(t *testing.T) {
		res := execute(t, NewDecodeCommand(), nil, "--system-id", "3")
		assert.Equal(t, 1, res.code)
	})
}

func TestEncodeCommand(t *testing.T) {
	t.Run("encodes standard input", func(t *testing.T) {
		res := execute(t, NewEncodeCommand(), []byte(heartbeatInput+"\n"))
		require.Zero(t, res.code, res.stderr)
		assert.Equal(t, heartbeatFrame, res.stdout)
	})
	t.Run("stamps the link identity", func(t *testing.T) {
		res := execute(t, NewEncodeCommand(), []byte(heartbeatInput), "--system-id", "7", "--component-id", "9")
		require.Zero(t, res.code, res.stderr)
		require.Len(t, res.stdout, len(heartbeatFrame))
		assert.EqualValues(t, 7, res.stdout[5])
		assert.EqualValues(t, 9, res.stdout[6])
	})
	t.Run("exits with the parse error code", func(t *testing.T) {
		res := execute(t, NewEncodeCommand(), []byte(`{"id":0} {"id":0,"fields":[1,2`))
		assert.Equal(t, int(jsonmsg.ParseErrorArrayMissCommaOrSquareBracket), res.code)
		assert.Len(t, res.stdout, 13)
		assert.Contains(t, res.stderr, "failed to parse JSON")
	})
	t.Run("exits with the code of a misplaced separator", func(t *testing.T) {
		testCases := []struct {
			input string
			code  jsonmsg.ParseErrorCode
		}{
			{`{"id" 0}`, jsonmsg.ParseErrorObjectMissColon},
			{`[1 2]`, jsonmsg.ParseErrorArrayMissCommaOrSquareBracket},
			{`{,}`, jsonmsg.ParseErrorObjectMissName},
			{`{"id":01}`, jsonmsg.ParseErrorObjectMissCommaOrCurlyBracket},
		}
		for _, tc := range testCases {
			res := execute(t, NewEncodeCommand(), []byte(tc.input))
			assert.Equal(t, int(tc.code), res.code, tc.input)
			assert.Empty(t, res.stdout, tc.input)
		}
	})
	t.Run("skips objects without an id", func(t *testing.T) {
		res := execute(t, NewEncodeCommand(), []byte(`{"name":"HEARTBEAT"} `+heartbeatInput))
		require.Zero(t, res.code, res.stderr)
		assert.Equal(t, heartbeatFrame, res.stdout)
		assert.Contains(t, res.stderr, "skipping object")
	})
}

func TestCompressedFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "messages.json")
	frames := filepath.Join(dir, "frames.bin.gz")
	require.NoError(t, os.WriteFile(input, []byte(strings.Repeat(heartbeatInput+"\n", 3)), 0o600))

	res := execute(t, NewEncodeCommand(), nil, input, "-o", frames, "--compress", "gzip")
	require.Zero(t, res.code, res.stderr)
	assert.Empty(t, res.stdout)

	res = execute(t, NewDecodeCommand(), nil, frames, "--log-level", "debug")
	require.Zero(t, res.code, res.stderr)
	assert.Equal(t, strings.Repeat(heartbeatJSON+"\n", 3), string(res.stdout))
	assert.Contains(t, res.stderr, "input compression: gzip")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mavkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("system_id: 42\ncomponent_id: 24\nlog_level: error\n"), 0o600))

	res := execute(t, NewEncodeCommand(), []byte(heartbeatInput), "--config", path)
	require.Zero(t, res.code, res.stderr)
	require.Len(t, res.stdout, len(heartbeatFrame))
	assert.EqualValues(t, 42, res.stdout[5])
	assert.EqualValues(t, 24, res.stdout[6])
	// info diagnostics are filtered at error level
	assert.NotContains(t, res.stderr, "loaded")
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mavdecode.log")
	res := execute(t, NewDecodeCommand(), heartbeatFrame, "--log-file", path)
	require.Zero(t, res.code, res.stderr)
	assert.Equal(t, heartbeatJSON+"\n", string(res.stdout))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "reading from stdin, writing to stdout")
	assert.Contains(t, res.stderr, "reading from stdin, writing to stdout")

	res = execute(t, NewDecodeCommand(), heartbeatFrame, "--log-file", filepath.Join(path, "nested.log"))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "failed to open log file")
}

func TestExitStatus(t *testing.T) {
	require.NoError(t, exitStatus(0, nil))

	err := exitStatus(2, nil)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Equal(t, "exit status 2", err.Error())

	err = exitStatus(0, os.ErrClosed)
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.ErrorIs(t, err, os.ErrClosed)
}
