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
	"fmt"
	"math"

	gerrors "github.com/tochemey/mavkit/errors"
	"github.com/tochemey/mavkit/variant"
)

// Text forms of the non-finite floating point values
const (
	textNaN              = "NaN"
	textInfinity         = "Infinity"
	textNegativeInfinity = "-Infinity"
)

// FromNode infers the value a JSON node stands for.
//
// Doubles and the strings "NaN", "Infinity" and "-Infinity" are floating
// point. Other numbers are signed when they fit int64 and unsigned otherwise.
// Remaining strings stay strings. An array takes the kind of its first
// element and every element is converted to that kind; an empty array is an
// empty variant.IntArray. Null, bool and object nodes fail with
// ErrUnrepresentableType.
func FromNode(node *Node) (variant.Value, error) {
	if isFloatingPoint(node) {
		return variant.Float(floatingPoint(node)), nil
	}

	switch node.Kind() {
	case IntNode:
		return variant.Int(node.Int()), nil
	case UintNode:
		return variant.Uint(node.Uint()), nil
	case StringNode:
		return variant.String(node.Text()), nil
	case ArrayNode:
		return fromArray(node.Items())
	default:
		return nil, fmt.Errorf("%w: %s", gerrors.ErrUnrepresentableType, node.Kind())
	}
}

func fromArray(items []*Node) (variant.Value, error) {
	if len(items) == 0 {
		return variant.IntArray{}, nil
	}

	first := items[0]
	switch {
	case isFloatingPoint(first):
		out := make(variant.FloatArray, len(items))
		for i, item := range items {
			switch item.Kind() {
			case DoubleNode, StringNode:
				out[i] = floatingPoint(item)
			case IntNode:
				out[i] = float64(item.Int())
			case UintNode:
				out[i] = float64(item.Uint())
			default:
				return nil, elementError(i, item, variant.KindFloatArray)
			}
		}
		return out, nil
	case first.Kind() == IntNode:
		out := make(variant.IntArray, len(items))
		for i, item := range items {
			if item.Kind() != IntNode {
				return nil, elementError(i, item, variant.KindIntArray)
			}
			out[i] = item.Int()
		}
		return out, nil
	case first.Kind() == UintNode:
		out := make(variant.UintArray, len(items))
		for i, item := range items {
			switch {
			case item.Kind() == UintNode:
				out[i] = item.Uint()
			case item.Kind() == IntNode && item.Int() >= 0:
				out[i] = uint64(item.Int())
			default:
				return nil, elementError(i, item, variant.KindUintArray)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: array of %s", gerrors.ErrUnrepresentableType, first.Kind())
	}
}

func elementError(index int, item *Node, kind variant.Kind) error {
	return fmt.Errorf("%w: element %d is %s in %s", gerrors.ErrFieldConversion, index, describe(item), kind)
}

func describe(node *Node) string {
	switch node.Kind() {
	case IntNode:
		return fmt.Sprintf("%d", node.Int())
	case UintNode:
		return fmt.Sprintf("%d", node.Uint())
	case DoubleNode:
		return fmt.Sprintf("%g", node.Double())
	case StringNode:
		return fmt.Sprintf("%q", node.Text())
	default:
		return node.Kind().String()
	}
}

func isFloatingPoint(node *Node) bool {
	switch node.Kind() {
	case DoubleNode:
		return true
	case StringNode:
		switch node.Text() {
		case textNaN, textInfinity, textNegativeInfinity:
			return true
		}
	}
	return false
}

// floatingPoint reads a double or a non-finite text. Any other string is NaN.
func floatingPoint(node *Node) float64 {
	if node.Kind() == DoubleNode {
		return node.Double()
	}
	switch node.Text() {
	case textInfinity:
		return math.Inf(1)
	case textNegativeInfinity:
		return math.Inf(-1)
	default:
		return math.NaN()
	}
}
