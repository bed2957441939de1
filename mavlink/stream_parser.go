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
	"encoding/binary"
	"fmt"

	"github.com/tochemey/mavkit/errors"
)

// NetworkInterface is the byte transport a StreamParser reads from.
//
// Receive must return exactly n bytes or an error; errors.ErrInterrupted
// signals a cooperative shutdown.
type NetworkInterface interface {
	// Send writes outbound bytes
	Send(data []byte) error
	// Receive blocks until n bytes are available
	Receive(n int) ([]byte, error)
	// Close releases any blocked Receive
	Close() error
}

// StreamParser pulls complete messages out of a NetworkInterface.
// It is not safe for concurrent use.
type StreamParser struct {
	messageSet *MessageSet
	iface      NetworkInterface
}

// NewStreamParser creates an instance of StreamParser
func NewStreamParser(messageSet *MessageSet, iface NetworkInterface) *StreamParser {
	return &StreamParser{
		messageSet: messageSet,
		iface:      iface,
	}
}

// Next blocks until one full frame has been read and returns its message.
//
// Bytes preceding a start marker are skipped. A frame with an unknown id, an
// oversized payload or a bad checksum is consumed and reported with an error
// wrapping errors.ErrTransientDecode; the next call resumes with the following
// bytes. Transport errors, errors.ErrInterrupted included, are returned as is.
func (p *StreamParser) Next() (*Message, error) {
	for {
		marker, err := p.iface.Receive(1)
		if err != nil {
			return nil, err
		}

		switch marker[0] {
		case magicV2:
			return p.readV2()
		case magicV1:
			return p.readV1()
		}
	}
}

func (p *StreamParser) readV2() (*Message, error) {
	head, err := p.iface.Receive(headerLenV2 - 1)
	if err != nil {
		return nil, err
	}

	length := int(head[0])
	header := Header{
		incompatFlags: head[1],
		compatFlags:   head[2],
		seq:           head[3],
		systemID:      head[4],
		componentID:   head[5],
	}
	id := uint32(head[6]) | uint32(head[7])<<8 | uint32(head[8])<<16

	trailer := checksumLen
	if header.incompatFlags&incompatFlagSigned != 0 {
		trailer += signatureLen
	}
	body, err := p.iface.Receive(length + trailer)
	if err != nil {
		return nil, err
	}

	covered := make([]byte, 0, len(head)+length)
	covered = append(covered, head...)
	covered = append(covered, body[:length]...)
	return p.assemble(id, header, covered, body[:length], body[length:length+checksumLen])
}

func (p *StreamParser) readV1() (*Message, error) {
	head, err := p.iface.Receive(headerLenV1 - 1)
	if err != nil {
		return nil, err
	}

	length := int(head[0])
	header := Header{
		seq:         head[1],
		systemID:    head[2],
		componentID: head[3],
	}
	id := uint32(head[4])

	body, err := p.iface.Receive(length + checksumLen)
	if err != nil {
		return nil, err
	}

	covered := make([]byte, 0, len(head)+length)
	covered = append(covered, head...)
	covered = append(covered, body[:length]...)
	return p.assemble(id, header, covered, body[:length], body[length:])
}

// assemble validates a frame and copies its payload into a new message
func (p *StreamParser) assemble(id uint32, header Header, covered, payload, checksum []byte) (*Message, error) {
	messageType, ok := p.messageSet.TypeByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %w: %d", errors.ErrTransientDecode, errors.ErrUnknownMessageID, id)
	}

	crc := newChecksum().write(covered).writeByte(messageType.crcExtra).sum()
	if expected := binary.LittleEndian.Uint16(checksum); crc != expected {
		return nil, fmt.Errorf("%w: checksum mismatch on message %s (got %#04x, want %#04x)",
			errors.ErrTransientDecode, messageType.name, expected, crc)
	}

	if len(payload) > messageType.size {
		return nil, fmt.Errorf("%w: payload of %d bytes exceeds %d for message %s",
			errors.ErrTransientDecode, len(payload), messageType.size, messageType.name)
	}

	message := newMessage(messageType)
	message.header = header
	copy(message.payload, payload)
	return message, nil
}
