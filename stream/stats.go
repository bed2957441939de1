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

package stream

import (
	"io"

	"go.uber.org/atomic"
)

// Stats counts what the last run went through. The counters are reset when
// a run starts. It is safe for concurrent use.
type Stats struct {
	bytesIn  *atomic.Uint64
	bytesOut *atomic.Uint64
	messages *atomic.Uint64
	problems *atomic.Uint64
}

func newStats() *Stats {
	return &Stats{
		bytesIn:  atomic.NewUint64(0),
		bytesOut: atomic.NewUint64(0),
		messages: atomic.NewUint64(0),
		problems: atomic.NewUint64(0),
	}
}

// reset zeroes every counter
func (s *Stats) reset() {
	s.bytesIn.Store(0)
	s.bytesOut.Store(0)
	s.messages.Store(0)
	s.problems.Store(0)
}

// BytesIn returns the number of input bytes read
func (s *Stats) BytesIn() uint64 {
	return s.bytesIn.Load()
}

// BytesOut returns the number of output bytes written
func (s *Stats) BytesOut() uint64 {
	return s.bytesOut.Load()
}

// Messages returns the number of messages converted
func (s *Stats) Messages() uint64 {
	return s.messages.Load()
}

// Problems returns the number of reported and skipped problems
func (s *Stats) Problems() uint64 {
	return s.problems.Load()
}

// countingWriter adds the number of bytes written to a counter
type countingWriter struct {
	w       io.Writer
	counter *atomic.Uint64
}

func (c countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.counter.Add(uint64(n))
	return n, err
}

// countingReader adds the number of bytes read to a counter
type countingReader struct {
	r       io.Reader
	counter *atomic.Uint64
}

func (c countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.counter.Add(uint64(n))
	return n, err
}
