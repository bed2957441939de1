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

// encodeField converts a value into the payload bytes of a field
func encodeField(field Field, value variant.Value) ([]byte, error) {
	out := make([]byte, field.Size())
	width := field.Type.Size()

	if !field.IsArray() {
		if value.Kind().IsArray() || value.Kind() == variant.KindString {
			return nil, fmt.Errorf("%w: cannot store %s into %s", errors.ErrFieldConversion, value.Kind(), field.Type)
		}
		if err := putScalar(field.Type, out, value); err != nil {
			return nil, err
		}
		return out, nil
	}

	if field.Type == Char {
		s, ok := value.(variant.String)
		if !ok {
			return nil, fmt.Errorf("%w: cannot store %s into %s[%d]", errors.ErrFieldConversion, value.Kind(), field.Type, field.ArrayLength)
		}
		if len(s) > field.ArrayLength {
			return nil, fmt.Errorf("%w: string of %d bytes exceeds %s[%d]", errors.ErrFieldConversion, len(s), field.Type, field.ArrayLength)
		}
		copy(out, s)
		return out, nil
	}

	if !value.Kind().IsArray() {
		return nil, fmt.Errorf("%w: cannot store %s into %s[%d]", errors.ErrFieldConversion, value.Kind(), field.Type, field.ArrayLength)
	}
	if n := variant.Len(value); n > field.ArrayLength {
		return nil, fmt.Errorf("%w: %d elements exceed %s[%d]", errors.ErrFieldConversion, n, field.Type, field.ArrayLength)
	}

	var err error
	switch elements := value.(type) {
	case variant.IntArray:
		for i, element := range elements {
			if err = putScalar(field.Type, out[i*width:], variant.Int(element)); err != nil {
				break
			}
		}
	case variant.UintArray:
		for i, element := range elements {
			if err = putScalar(field.Type, out[i*width:], variant.Uint(element)); err != nil {
				break
			}
		}
	case variant.FloatArray:
		for i, element := range elements {
			if err = putScalar(field.Type, out[i*width:], variant.Float(element)); err != nil {
				break
			}
		}
	default:
		panic(fmt.Sprintf("mavlink: unexpected array value %T", value))
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// putScalar writes one numeric element of type t into dst
func putScalar(t BaseType, dst []byte, value variant.Value) error {
	if t.IsFloat() {
		f, err := toFloat(value)
		if err != nil {
			return err
		}
		if t == Float {
			binary.LittleEndian.PutUint32(dst, math.Float32bits(float32(f)))
		} else {
			binary.LittleEndian.PutUint64(dst, math.Float64bits(f))
		}
		return nil
	}

	if t.IsSigned() {
		bits := t.Size() * 8
		i, err := toInt(value, -1<<(bits-1), 1<<(bits-1)-1)
		if err != nil {
			return fmt.Errorf("%w for %s", err, t)
		}
		putUint(t, dst, uint64(i))
		return nil
	}

	limit := uint64(math.MaxUint64)
	if t.Size() < 8 {
		limit = 1<<(t.Size()*8) - 1
	}
	u, err := toUint(value, limit)
	if err != nil {
		return fmt.Errorf("%w for %s", err, t)
	}
	putUint(t, dst, u)
	return nil
}

func putUint(t BaseType, dst []byte, u uint64) {
	switch t.Size() {
	case 1:
		dst[0] = byte(u)
	case 2:
		binary.LittleEndian.PutUint16(dst, uint16(u))
	case 4:
		binary.LittleEndian.PutUint32(dst, uint32(u))
	default:
		binary.LittleEndian.PutUint64(dst, u)
	}
}

func toFloat(value variant.Value) (float64, error) {
	switch v := value.(type) {
	case variant.Float:
		return float64(v), nil
	case variant.Int:
		return float64(v), nil
	case variant.Uint:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: cannot store %s as floating point", errors.ErrFieldConversion, value.Kind())
	}
}

func toInt(value variant.Value, lo, hi int64) (int64, error) {
	var i int64
	switch v := value.(type) {
	case variant.Int:
		i = int64(v)
	case variant.Uint:
		if uint64(v) > uint64(hi) {
			return 0, fmt.Errorf("%w: %d out of range", errors.ErrFieldConversion, uint64(v))
		}
		i = int64(v)
	case variant.Float:
		f := float64(v)
		if f != math.Trunc(f) || f < float64(lo) || f >= -float64(lo) {
			return 0, fmt.Errorf("%w: %v is not an integer in range", errors.ErrFieldConversion, f)
		}
		i = int64(f)
	default:
		return 0, fmt.Errorf("%w: cannot store %s as integer", errors.ErrFieldConversion, value.Kind())
	}
	if i < lo || i > hi {
		return 0, fmt.Errorf("%w: %d out of range", errors.ErrFieldConversion, i)
	}
	return i, nil
}

func toUint(value variant.Value, hi uint64) (uint64, error) {
	var u uint64
	switch v := value.(type) {
	case variant.Uint:
		u = uint64(v)
	case variant.Int:
		if v < 0 {
			return 0, fmt.Errorf("%w: %d out of range", errors.ErrFieldConversion, int64(v))
		}
		u = uint64(v)
	case variant.Float:
		f := float64(v)
		// 2^64 is the first float64 above MaxUint64
		if f != math.Trunc(f) || f < 0 || f >= 18446744073709551616.0 {
			return 0, fmt.Errorf("%w: %v is not an integer in range", errors.ErrFieldConversion, f)
		}
		u = uint64(f)
	default:
		return 0, fmt.Errorf("%w: cannot store %s as integer", errors.ErrFieldConversion, value.Kind())
	}
	if u > hi {
		return 0, fmt.Errorf("%w: %d out of range", errors.ErrFieldConversion, u)
	}
	return u, nil
}
