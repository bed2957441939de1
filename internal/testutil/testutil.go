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

package testutil

import (
	"io"
	"sync"

	"github.com/tochemey/mavkit/errors"
)

// Definition declares one message per field shape, on top of the built-in set.
var Definition = []byte(`<?xml version="1.0"?>
<mavlink>
  <include>minimal.xml</include>
  <messages>
    <message id="42000" name="TEST_TYPES">
      <field type="char" name="c">single char</field>
      <field type="uint8_t" name="u8">byte</field>
      <field type="int8_t" name="i8">signed byte</field>
      <field type="uint16_t" name="u16"/>
      <field type="int16_t" name="i16"/>
      <field type="uint32_t" name="u32"/>
      <field type="int32_t" name="i32"/>
      <field type="uint64_t" name="u64"/>
      <field type="int64_t" name="i64"/>
      <field type="float" name="f32"/>
      <field type="double" name="f64"/>
      <field type="char[8]" name="s"/>
      <field type="uint16_t[3]" name="u16s"/>
      <field type="int32_t[2]" name="i32s"/>
      <field type="double[2]" name="f64s"/>
      <field type="uint64_t[2]" name="u64s"/>
      <field type="float[3]" name="f32s"/>
      <extensions/>
      <field type="int8_t[2]" name="i8s"/>
    </message>
    <message id="42001" name="TEST_EMPTY">
    </message>
  </messages>
</mavlink>
`)

// TestTypesID is the id of the TEST_TYPES message of Definition
const TestTypesID = 42000

// ByteLink is an in-memory link that serves Receive from a fixed byte slice.
// Once the bytes are exhausted Receive returns io.EOF, or errors.ErrInterrupted
// after Close.
type ByteLink struct {
	mu     sync.Mutex
	data   []byte
	sent   []byte
	closed bool
}

// NewByteLink creates an instance of ByteLink
func NewByteLink(data []byte) *ByteLink {
	return &ByteLink{data: data}
}

// Send records outbound bytes
func (l *ByteLink) Send(data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sent = append(l.sent, data...)
	return nil
}

// Receive returns the next n bytes
func (l *ByteLink) Receive(n int) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil, errors.ErrInterrupted
	}
	if len(l.data) < n {
		return nil, io.EOF
	}
	out := l.data[:n:n]
	l.data = l.data[n:]
	return out, nil
}

// Close makes every further Receive fail with errors.ErrInterrupted
func (l *ByteLink) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}

// Remaining returns the number of bytes not yet received
func (l *ByteLink) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.data)
}
