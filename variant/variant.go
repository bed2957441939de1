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

// Package variant defines the closed set of values a message field can hold
// while travelling between the wire and its textual form.
//
// A Value is one of Int, Uint, Float, String, IntArray, UintArray or FloatArray.
// The set is sealed: only this package can add kinds, and every consumer
// switches over the concrete types with a default branch that panics.
package variant

import (
	"fmt"
	"math"
)

// Kind identifies the concrete type held by a Value
type Kind int

const (
	KindInt Kind = iota
	KindUint
	KindFloat
	KindString
	KindIntArray
	KindUintArray
	KindFloatArray
)

var kindNames = [...]string{
	KindInt:        "int",
	KindUint:       "uint",
	KindFloat:      "float",
	KindString:     "string",
	KindIntArray:   "int[]",
	KindUintArray:  "uint[]",
	KindFloatArray: "float[]",
}

// String returns the kind name
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsArray reports whether the kind is one of the array kinds
func (k Kind) IsArray() bool {
	return k == KindIntArray || k == KindUintArray || k == KindFloatArray
}

// Value is a field value.
type Value interface {
	// Kind returns the concrete kind of the value
	Kind() Kind
	sealed()
}

type (
	// Int is a signed 64-bit integer scalar
	Int int64
	// Uint is an unsigned 64-bit integer scalar
	Uint uint64
	// Float is a double precision scalar
	Float float64
	// String is a UTF-8 string
	String string
	// IntArray is an ordered sequence of signed integers
	IntArray []int64
	// UintArray is an ordered sequence of unsigned integers
	UintArray []uint64
	// FloatArray is an ordered sequence of doubles
	FloatArray []float64
)

func (Int) Kind() Kind        { return KindInt }
func (Uint) Kind() Kind       { return KindUint }
func (Float) Kind() Kind      { return KindFloat }
func (String) Kind() Kind     { return KindString }
func (IntArray) Kind() Kind   { return KindIntArray }
func (UintArray) Kind() Kind  { return KindUintArray }
func (FloatArray) Kind() Kind { return KindFloatArray }

func (Int) sealed()        {}
func (Uint) sealed()       {}
func (Float) sealed()      {}
func (String) sealed()     {}
func (IntArray) sealed()   {}
func (UintArray) sealed()  {}
func (FloatArray) sealed() {}

// enforce compilation error
var (
	_ Value = Int(0)
	_ Value = Uint(0)
	_ Value = Float(0)
	_ Value = String("")
	_ Value = IntArray(nil)
	_ Value = UintArray(nil)
	_ Value = FloatArray(nil)
)

// Len returns the number of elements of an array value, the byte length of a
// string and 1 for any scalar.
func Len(v Value) int {
	switch x := v.(type) {
	case Int, Uint, Float:
		return 1
	case String:
		return len(x)
	case IntArray:
		return len(x)
	case UintArray:
		return len(x)
	case FloatArray:
		return len(x)
	default:
		panic(fmt.Sprintf("variant: unexpected value %T", v))
	}
}

// Equal reports whether a and b hold the same kind and the same contents.
// NaN floats compare equal to each other so that round trips through the
// textual form can be asserted.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Int:
		return x == b.(Int)
	case Uint:
		return x == b.(Uint)
	case Float:
		return sameFloat(float64(x), float64(b.(Float)))
	case String:
		return x == b.(String)
	case IntArray:
		y := b.(IntArray)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	case UintArray:
		y := b.(UintArray)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	case FloatArray:
		y := b.(FloatArray)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !sameFloat(x[i], y[i]) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("variant: unexpected value %T", a))
	}
}

func sameFloat(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return a == b
}
