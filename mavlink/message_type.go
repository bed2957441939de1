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
	"sort"
)

// Field describes one field of a message type
type Field struct {
	// Name is the field name as declared
	Name string
	// Type is the element type
	Type BaseType
	// ArrayLength is the number of elements, zero for scalars
	ArrayLength int
	// Offset is the position of the field in the payload
	Offset int
	// Extension marks fields declared after the <extensions/> marker
	Extension bool
}

// IsArray reports whether the field holds more than one element
func (f Field) IsArray() bool {
	return f.ArrayLength > 0
}

// Size returns the number of payload bytes occupied by the field
func (f Field) Size() int {
	if f.ArrayLength > 0 {
		return f.Type.Size() * f.ArrayLength
	}
	return f.Type.Size()
}

// MessageType is the layout of one message, built from its definition.
type MessageType struct {
	id       uint32
	name     string
	fields   []Field
	index    map[string]int
	size     int
	crcExtra byte
}

// newMessageType lays out the fields in wire order and derives the CRC extra byte.
// Base fields are ordered by element size, largest first, keeping declaration
// order among equal sizes; extension fields follow in declaration order.
func newMessageType(id uint32, name string, declared []Field) *MessageType {
	wire := make([]int, 0, len(declared))
	var extensions []int
	for i, field := range declared {
		if field.Extension {
			extensions = append(extensions, i)
			continue
		}
		wire = append(wire, i)
	}
	sort.SliceStable(wire, func(a, b int) bool {
		return declared[wire[a]].Type.Size() > declared[wire[b]].Type.Size()
	})

	fields := make([]Field, len(declared))
	copy(fields, declared)

	crc := newChecksum().writeString(name + " ")
	offset := 0
	for _, i := range wire {
		fields[i].Offset = offset
		offset += fields[i].Size()

		crc.writeString(fields[i].Type.String() + " ")
		crc.writeString(fields[i].Name + " ")
		if fields[i].IsArray() {
			crc.writeByte(byte(fields[i].ArrayLength))
		}
	}
	for _, i := range extensions {
		fields[i].Offset = offset
		offset += fields[i].Size()
	}

	index := make(map[string]int, len(fields))
	for i, field := range fields {
		index[field.Name] = i
	}
	sum := crc.sum()

	return &MessageType{
		id:       id,
		name:     name,
		fields:   fields,
		index:    index,
		size:     offset,
		crcExtra: byte(sum&0xff) ^ byte(sum>>8),
	}
}

// ID returns the numeric message id
func (t *MessageType) ID() uint32 {
	return t.id
}

// Name returns the message name
func (t *MessageType) Name() string {
	return t.name
}

// FieldNames returns the field names in declaration order
func (t *MessageType) FieldNames() []string {
	out := make([]string, len(t.fields))
	for i, field := range t.fields {
		out[i] = field.Name
	}
	return out
}

// Fields returns the fields in declaration order
func (t *MessageType) Fields() []Field {
	out := make([]Field, len(t.fields))
	copy(out, t.fields)
	return out
}

// ContainsField reports whether the message declares a field with that name
func (t *MessageType) ContainsField(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Field returns the field with the given name
func (t *MessageType) Field(name string) (Field, bool) {
	i, ok := t.index[name]
	if !ok {
		return Field{}, false
	}
	return t.fields[i], true
}

// MaxPayloadSize returns the payload size including extension fields
func (t *MessageType) MaxPayloadSize() int {
	return t.size
}

// CRCExtra returns the seed byte folded into every frame checksum
func (t *MessageType) CRCExtra() byte {
	return t.crcExtra
}
