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
	"math"

	"github.com/tochemey/mavkit/errors"
	"github.com/tochemey/mavkit/variant"
)

const (
	magicV1 byte = 0xfe
	magicV2 byte = 0xfd

	headerLenV1  = 6
	headerLenV2  = 10
	checksumLen  = 2
	signatureLen = 13

	incompatFlagSigned byte = 0x01
)

// Identity names a system and component on the link
type Identity struct {
	SystemID    uint8
	ComponentID uint8
}

// Header carries the frame header fields of a message
type Header struct {
	seq           uint8
	systemID      uint8
	componentID   uint8
	incompatFlags uint8
	compatFlags   uint8
}

// Seq returns the frame sequence number
func (h *Header) Seq() uint8 {
	return h.seq
}

// SystemID returns the sender system id
func (h *Header) SystemID() uint8 {
	return h.systemID
}

// SetSystemID sets the sender system id
func (h *Header) SetSystemID(id uint8) {
	h.systemID = id
}

// ComponentID returns the sender component id
func (h *Header) ComponentID() uint8 {
	return h.componentID
}

// SetComponentID sets the sender component id
func (h *Header) SetComponentID(id uint8) {
	h.componentID = id
}

// IsSigned reports whether the frame carried a signature
func (h *Header) IsSigned() bool {
	return h.incompatFlags&incompatFlagSigned != 0
}

// Message is one decoded or to-be-encoded message.
type Message struct {
	messageType *MessageType
	header      Header
	payload     []byte
	frame       []byte
}

func newMessage(messageType *MessageType) *Message {
	return &Message{
		messageType: messageType,
		payload:     make([]byte, messageType.size),
	}
}

// ID returns the message id
func (m *Message) ID() uint32 {
	return m.messageType.id
}

// Name returns the message name
func (m *Message) Name() string {
	return m.messageType.name
}

// Type returns the message type
func (m *Message) Type() *MessageType {
	return m.messageType
}

// Header returns the frame header
func (m *Message) Header() *Header {
	return &m.header
}

// Data returns the bytes produced by the last successful Finalize
func (m *Message) Data() []byte {
	return m.frame
}

// Get reads a field.
//
// Integer fields yield variant.Int or variant.Uint, float fields variant.Float,
// char arrays variant.String cut at the first NUL, and other arrays the matching
// array variant.
func (m *Message) Get(name string) (variant.Value, error) {
	field, ok := m.messageType.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s on message %s", errors.ErrUnknownField, name, m.messageType.name)
	}

	data := m.payload[field.Offset : field.Offset+field.Size()]
	if !field.IsArray() {
		return readScalar(field.Type, data), nil
	}

	width := field.Type.Size()
	switch {
	case field.Type == Char:
		end := 0
		for end < len(data) && data[end] != 0 {
			end++
		}
		return variant.String(data[:end]), nil
	case field.Type.IsFloat():
		out := make(variant.FloatArray, field.ArrayLength)
		for i := range out {
			out[i] = float64(readScalar(field.Type, data[i*width:]).(variant.Float))
		}
		return out, nil
	case field.Type.IsSigned():
		out := make(variant.IntArray, field.ArrayLength)
		for i := range out {
			out[i] = int64(readScalar(field.Type, data[i*width:]).(variant.Int))
		}
		return out, nil
	default:
		out := make(variant.UintArray, field.ArrayLength)
		for i := range out {
			out[i] = uint64(readScalar(field.Type, data[i*width:]).(variant.Uint))
		}
		return out, nil
	}
}

// Set writes a field, converting the value to the field's wire type.
// Values that do not fit the field fail with errors.ErrFieldConversion and leave
// the field untouched. Arrays shorter than the field are zero padded.
func (m *Message) Set(name string, value variant.Value) error {
	field, ok := m.messageType.Field(name)
	if !ok {
		return fmt.Errorf("%w: %s on message %s", errors.ErrUnknownField, name, m.messageType.name)
	}

	encoded, err := encodeField(field, value)
	if err != nil {
		return errors.NewFieldError(m.messageType.name, name, err)
	}
	copy(m.payload[field.Offset:field.Offset+field.Size()], encoded)
	m.frame = nil
	return nil
}

// Finalize serializes the message into a v2 frame with the given sequence
// number. Header ids left at zero are taken from sender. It returns the frame
// length, or a negative code and an error when the frame cannot be built.
func (m *Message) Finalize(seq int, sender Identity) (int, error) {
	if seq < 0 || seq > math.MaxUint8 {
		return -1, errors.NewFinalizationError(-1, fmt.Sprintf("sequence number %d out of range", seq))
	}

	if m.header.systemID == 0 {
		m.header.systemID = sender.SystemID
	}
	if m.header.componentID == 0 {
		m.header.componentID = sender.ComponentID
	}
	m.header.seq = uint8(seq)
	m.header.incompatFlags = 0
	m.header.compatFlags = 0

	if len(m.payload) == 0 {
		return -2, errors.NewFinalizationError(-2, fmt.Sprintf("message %s has an empty payload", m.messageType.name))
	}

	// trailing zero bytes are not transmitted, but at least one byte is
	length := len(m.payload)
	for length > 1 && m.payload[length-1] == 0 {
		length--
	}

	id := m.messageType.id
	frame := make([]byte, 0, headerLenV2+length+checksumLen)
	frame = append(frame,
		magicV2,
		byte(length),
		m.header.incompatFlags,
		m.header.compatFlags,
		m.header.seq,
		m.header.systemID,
		m.header.componentID,
		byte(id), byte(id>>8), byte(id>>16))
	frame = append(frame, m.payload[:length]...)

	crc := newChecksum().write(frame[1:]).writeByte(m.messageType.crcExtra).sum()
	frame = binary.LittleEndian.AppendUint16(frame, crc)

	m.frame = frame
	return len(frame), nil
}

// readScalar decodes one element; data must hold at least t.Size() bytes
func readScalar(t BaseType, data []byte) variant.Value {
	switch t {
	case Char, Int8:
		return variant.Int(int8(data[0]))
	case Uint8:
		return variant.Uint(data[0])
	case Uint16:
		return variant.Uint(binary.LittleEndian.Uint16(data))
	case Int16:
		return variant.Int(int16(binary.LittleEndian.Uint16(data)))
	case Uint32:
		return variant.Uint(binary.LittleEndian.Uint32(data))
	case Int32:
		return variant.Int(int32(binary.LittleEndian.Uint32(data)))
	case Uint64:
		return variant.Uint(binary.LittleEndian.Uint64(data))
	case Int64:
		return variant.Int(int64(binary.LittleEndian.Uint64(data)))
	case Float:
		return variant.Float(math.Float32frombits(binary.LittleEndian.Uint32(data)))
	case Double:
		return variant.Float(math.Float64frombits(binary.LittleEndian.Uint64(data)))
	default:
		panic(fmt.Sprintf("mavlink: unexpected base type %d", t))
	}
}
