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

import "github.com/sigurn/crc16"

// x25Table drives the CRC-16/MCRF4XX checksum of frames and CRC extra bytes
var x25Table = crc16.MakeTable(crc16.CRC16_MCRF4XX)

// checksum accumulates a CRC-16/MCRF4XX over successive writes
type checksum struct {
	crc uint16
}

func newChecksum() *checksum {
	return &checksum{crc: crc16.Init(x25Table)}
}

func (c *checksum) write(data []byte) *checksum {
	c.crc = crc16.Update(c.crc, data, x25Table)
	return c
}

func (c *checksum) writeByte(b byte) *checksum {
	return c.write([]byte{b})
}

func (c *checksum) writeString(s string) *checksum {
	return c.write([]byte(s))
}

// sum returns the checksum of everything written so far
func (c *checksum) sum() uint16 {
	return crc16.Complete(c.crc, x25Table)
}
