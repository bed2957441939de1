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

package jsonmsg

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/tochemey/mavkit/internal/bufferpool"
	"github.com/tochemey/mavkit/mavlink"
	"github.com/tochemey/mavkit/variant"
)

// Render appends the JSON object form of a message to buf:
//
//	{"id":0,"name":"HEARTBEAT","system_id":1,"component_id":1,"seq":0,"fields":{...}}
//
// The "seq" member carries the frame signed flag as 0 or 1. Fields follow the
// declaration order of the message type.
func Render(buf *bytes.Buffer, message *mavlink.Message) error {
	header := message.Header()
	signed := 0
	if header.IsSigned() {
		signed = 1
	}

	buf.WriteString(`{"id":`)
	buf.WriteString(strconv.FormatUint(uint64(message.ID()), 10))
	buf.WriteString(`,"name":`)
	if err := writeString(buf, message.Name()); err != nil {
		return err
	}
	buf.WriteString(`,"system_id":`)
	buf.WriteString(strconv.Itoa(int(header.SystemID())))
	buf.WriteString(`,"component_id":`)
	buf.WriteString(strconv.Itoa(int(header.ComponentID())))
	buf.WriteString(`,"seq":`)
	buf.WriteString(strconv.Itoa(signed))
	buf.WriteString(`,"fields":{`)

	for i, field := range message.Type().Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(buf, field.Name); err != nil {
			return err
		}
		buf.WriteByte(':')

		value, err := message.Get(field.Name)
		if err != nil {
			return err
		}
		if err := writeValue(buf, value, floatBits(field.Type)); err != nil {
			return fmt.Errorf("field %s on message %s: %w", field.Name, message.Name(), err)
		}
	}
	buf.WriteString("}}")
	return nil
}

// Renderer writes one rendered message per line
type Renderer struct {
	w io.Writer
}

// NewRenderer creates an instance of Renderer
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Write renders the message and writes it as a single newline terminated line.
// Nothing is written when rendering fails.
func (r *Renderer) Write(message *mavlink.Message) error {
	buf := bufferpool.Pool.Get()
	defer bufferpool.Pool.Put(buf)

	if err := Render(buf, message); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := r.w.Write(buf.Bytes())
	return err
}

func floatBits(t mavlink.BaseType) int {
	if t == mavlink.Float {
		return 32
	}
	return 64
}

func writeValue(buf *bytes.Buffer, value variant.Value, bits int) error {
	switch v := value.(type) {
	case variant.Int:
		buf.WriteString(strconv.FormatInt(int64(v), 10))
	case variant.Uint:
		buf.WriteString(strconv.FormatUint(uint64(v), 10))
	case variant.Float:
		writeFloat(buf, float64(v), bits)
	case variant.String:
		return writeString(buf, string(v))
	case variant.IntArray:
		buf.WriteByte('[')
		for i, element := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.FormatInt(element, 10))
		}
		buf.WriteByte(']')
	case variant.UintArray:
		buf.WriteByte('[')
		for i, element := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.FormatUint(element, 10))
		}
		buf.WriteByte(']')
	case variant.FloatArray:
		buf.WriteByte('[')
		for i, element := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeFloat(buf, element, bits)
		}
		buf.WriteByte(']')
	default:
		panic(fmt.Sprintf("jsonmsg: unexpected value %T", value))
	}
	return nil
}

// writeFloat writes the shortest text that reads back to the same value at the
// given width. Integral values keep a ".0" so that they parse as doubles, and
// non-finite values are written as quoted text.
func writeFloat(buf *bytes.Buffer, f float64, bits int) {
	switch {
	case math.IsNaN(f):
		buf.WriteString(`"` + textNaN + `"`)
		return
	case math.IsInf(f, 1):
		buf.WriteString(`"` + textInfinity + `"`)
		return
	case math.IsInf(f, -1):
		buf.WriteString(`"` + textNegativeInfinity + `"`)
		return
	}

	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}

	start := buf.Len()
	buf.Write(strconv.AppendFloat(buf.AvailableBuffer(), f, format, -1, bits))
	if format == 'e' {
		// shorten e-09 to e-9
		text := buf.Bytes()[start:]
		if n := len(text); n >= 4 && text[n-4] == 'e' && text[n-3] == '-' && text[n-2] == '0' {
			text[n-2] = text[n-1]
			buf.Truncate(buf.Len() - 1)
		}
		return
	}
	if !bytes.ContainsRune(buf.Bytes()[start:], '.') {
		buf.WriteString(".0")
	}
}

func writeString(buf *bytes.Buffer, s string) error {
	quoted, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(quoted)
	return nil
}
