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
	"github.com/tochemey/mavkit/mailbox"
	"github.com/tochemey/mavkit/mavlink"
)

// mailboxLink exposes a mailbox as the link a stream parser reads from
type mailboxLink struct {
	box *mailbox.Mailbox
}

// enforce compilation error
var _ mavlink.NetworkInterface = (*mailboxLink)(nil)

// Send discards outbound bytes, the decoder never transmits
func (l *mailboxLink) Send([]byte) error {
	return nil
}

// Receive takes exactly n bytes from the mailbox
func (l *mailboxLink) Receive(n int) ([]byte, error) {
	return l.box.Receive(n)
}

// Close interrupts the mailbox
func (l *mailboxLink) Close() error {
	l.box.Interrupt()
	return nil
}
