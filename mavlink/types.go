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
	"fmt"
	"strconv"
	"strings"
)

// BaseType is the wire type of a field element
type BaseType int

const (
	Char BaseType = iota
	Uint8
	Int8
	Uint16
	Int16
	Uint32
	Int32
	Uint64
	Int64
	Float
	Double
)

var baseTypes = [...]struct {
	name string
	size int
}{
	Char:   {"char", 1},
	Uint8:  {"uint8_t", 1},
	Int8:   {"int8_t", 1},
	Uint16: {"uint16_t", 2},
	Int16:  {"int16_t", 2},
	Uint32: {"uint32_t", 4},
	Int32:  {"int32_t", 4},
	Uint64: {"uint64_t", 8},
	Int64:  {"int64_t", 8},
	Float:  {"float", 4},
	Double: {"double", 8},
}

// String returns the C type name used in message definitions
func (t BaseType) String() string {
	if t < 0 || int(t) >= len(baseTypes) {
		return "BaseType(" + strconv.Itoa(int(t)) + ")"
	}
	return baseTypes[t].name
}

// Size returns the width of one element in bytes
func (t BaseType) Size() int {
	return baseTypes[t].size
}

// IsFloat reports whether the type is float or double
func (t BaseType) IsFloat() bool {
	return t == Float || t == Double
}

// IsSigned reports whether the type is a signed integer. Char counts as signed.
func (t BaseType) IsSigned() bool {
	switch t {
	case Char, Int8, Int16, Int32, Int64:
		return true
	default:
		return false
	}
}

// parseFieldType splits a definition type such as "uint8_t[8]" into its
// element type and array length. The array length is zero for scalars.
func parseFieldType(definition string) (BaseType, int, error) {
	name := strings.TrimSpace(definition)
	length := 0
	if open := strings.IndexByte(name, '['); open >= 0 {
		if !strings.HasSuffix(name, "]") {
			return 0, 0, fmt.Errorf("malformed array type %q", definition)
		}
		n, err := strconv.Atoi(name[open+1 : len(name)-1])
		if err != nil || n <= 0 || n > 255 {
			return 0, 0, fmt.Errorf("invalid array length in %q", definition)
		}
		length = n
		name = name[:open]
	}

	// the version field is a plain uint8_t on the wire
	if name == "uint8_t_mavlink_version" {
		return Uint8, length, nil
	}
	for i, t := range baseTypes {
		if t.name == name {
			return BaseType(i), length, nil
		}
	}
	return 0, 0, fmt.Errorf("unknown field type %q", definition)
}
