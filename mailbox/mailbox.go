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

// Package mailbox provides a bounded, blocking byte channel connecting an
// input feeder to a message decoder.
package mailbox

import (
	"sync"

	"go.uber.org/atomic"

	"github.com/tochemey/mavkit/errors"
)

const (
	// DefaultHighWatermark is the buffered size above which Send blocks.
	DefaultHighWatermark = 64 * 1024
	// minBufferLen is the smallest capacity of the ring.
	// Must be power of 2 for bitwise modulus: x % n == x & (n - 1).
	minBufferLen = 256
)

// Mailbox is a watermarked byte queue with blocking Send and Receive.
//
// Characteristics
//   - Backpressure: Send blocks while more than the high watermark is buffered
//     and resumes once a Receive drops the size below half of it, or once the
//     receiver is parked waiting for more than is buffered.
//   - Exact reads: Receive(n) returns exactly n bytes, never fewer.
//   - Interruption: Interrupt releases every waiter; Receive then fails with
//     errors.ErrInterrupted without consuming anything, while Send proceeds
//     without waiting so that a shutting down producer never deadlocks.
//
// Concurrency: safe for multiple producers and a single logical consumer.
// Bytes are observed in the order Send calls acquire the lock.
type Mailbox struct {
	mu       sync.Mutex
	readable *sync.Cond
	writable *sync.Cond
	idle     *sync.Cond

	buf   []byte
	head  int
	count int

	highWatermark int
	// waiting is the byte count a parked receiver needs, zero when none is parked
	waiting     int
	consumed    uint64
	interrupted *atomic.Bool
}

// Option configures a Mailbox
type Option func(*Mailbox)

// WithHighWatermark sets the buffered size above which Send blocks.
// Non-positive values are ignored.
func WithHighWatermark(size int) Option {
	return func(m *Mailbox) {
		if size > 0 {
			m.highWatermark = size
		}
	}
}

// New creates an instance of Mailbox
func New(opts ...Option) *Mailbox {
	m := &Mailbox{
		buf:           make([]byte, minBufferLen),
		highWatermark: DefaultHighWatermark,
		interrupted:   atomic.NewBool(false),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.readable = sync.NewCond(&m.mu)
	m.writable = sync.NewCond(&m.mu)
	m.idle = sync.NewCond(&m.mu)
	return m
}

// Send appends data to the tail of the mailbox.
// It blocks while the buffered size exceeds the high watermark unless the
// mailbox has been interrupted.
func (m *Mailbox) Send(data []byte) {
	if len(data) == 0 {
		return
	}

	m.mu.Lock()
	for m.count > m.highWatermark && !m.interrupted.Load() && !m.starved() {
		m.writable.Wait()
	}

	m.write(data)
	m.mu.Unlock()
	m.readable.Broadcast()
}

// Receive removes exactly n bytes from the head of the mailbox.
// It blocks until n bytes are available. Once the mailbox is interrupted it
// returns errors.ErrInterrupted and leaves the content untouched.
func (m *Mailbox) Receive(n int) ([]byte, error) {
	if n <= 0 {
		if m.interrupted.Load() {
			return nil, errors.ErrInterrupted
		}
		return []byte{}, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for m.count < n && !m.interrupted.Load() {
		m.waiting = n
		// the feeder may be waiting for the consumer to run dry, and a
		// blocked sender must get through for this receive to complete
		m.idle.Broadcast()
		m.writable.Broadcast()
		m.readable.Wait()
	}
	m.waiting = 0

	if m.interrupted.Load() {
		return nil, errors.ErrInterrupted
	}

	out := make([]byte, n)
	m.read(out)
	m.consumed += uint64(n)

	if m.count < m.highWatermark/2 {
		m.writable.Broadcast()
	}
	if m.count == 0 {
		m.idle.Broadcast()
	}
	return out, nil
}

// Interrupt sets the interrupt flag and wakes every waiter.
// It is idempotent and cannot be undone.
func (m *Mailbox) Interrupt() {
	m.mu.Lock()
	m.interrupted.Store(true)
	m.mu.Unlock()
	m.readable.Broadcast()
	m.writable.Broadcast()
	m.idle.Broadcast()
}

// Interrupted reports whether Interrupt has been called
func (m *Mailbox) Interrupted() bool {
	return m.interrupted.Load()
}

// DrainWait blocks until the consumer has taken everything it can.
//
// It returns nil when the mailbox is empty, or when the consumer is parked on a
// Receive asking for more bytes than are buffered: the remaining bytes are a
// truncated tail that no further Send is expected to complete. It returns
// errors.ErrInterrupted when the mailbox is interrupted first.
func (m *Mailbox) DrainWait() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		switch {
		case m.interrupted.Load():
			return errors.ErrInterrupted
		case m.count == 0, m.starved():
			return nil
		}
		m.idle.Wait()
	}
}

// starved reports whether a parked receiver needs more than is buffered.
// Callers hold mu.
func (m *Mailbox) starved() bool {
	return m.waiting > m.count
}

// Len returns the number of buffered bytes.
// The value is a snapshot and may change immediately after the call.
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// Consumed returns the total number of bytes handed out by Receive
func (m *Mailbox) Consumed() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.consumed
}

// HighWatermark returns the configured high watermark
func (m *Mailbox) HighWatermark() int {
	return m.highWatermark
}

// write copies data at the tail, growing the ring when needed. Callers hold mu.
func (m *Mailbox) write(data []byte) {
	if need := m.count + len(data); need > len(m.buf) {
		m.resize(need)
	}

	tail := (m.head + m.count) & (len(m.buf) - 1)
	n := copy(m.buf[tail:], data)
	copy(m.buf, data[n:])
	m.count += len(data)
}

// read fills out from the head. Callers hold mu and ensure count >= len(out).
func (m *Mailbox) read(out []byte) {
	n := copy(out, m.buf[m.head:min(m.head+len(out), len(m.buf))])
	copy(out[n:], m.buf[:len(out)-n])
	m.head = (m.head + len(out)) & (len(m.buf) - 1)
	m.count -= len(out)

	// Resize down if buffer 1/4 full.
	if len(m.buf) > minBufferLen && m.count<<2 <= len(m.buf) {
		m.resize(m.count)
	}
}

// resize moves the content into a ring large enough for size bytes
func (m *Mailbox) resize(size int) {
	capacity := minBufferLen
	for capacity < size {
		capacity <<= 1
	}
	if capacity == len(m.buf) {
		return
	}

	buf := make([]byte, capacity)
	if m.count > 0 {
		end := m.head + m.count
		if end <= len(m.buf) {
			copy(buf, m.buf[m.head:end])
		} else {
			n := copy(buf, m.buf[m.head:])
			copy(buf[n:], m.buf[:m.count-n])
		}
	}
	m.head = 0
	m.buf = buf
}
