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
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// NodeKind tags the shape of a Node
type NodeKind int

const (
	NullNode NodeKind = iota
	BoolNode
	IntNode
	UintNode
	DoubleNode
	StringNode
	ArrayNode
	ObjectNode
)

var nodeKindNames = [...]string{
	NullNode:   "null",
	BoolNode:   "bool",
	IntNode:    "int",
	UintNode:   "uint",
	DoubleNode: "double",
	StringNode: "string",
	ArrayNode:  "array",
	ObjectNode: "object",
}

// String returns the name of the kind
func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "NodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeKindNames[k]
}

// Member is one name/value pair of an object node
type Member struct {
	Name  string
	Value *Node
}

// Node is a parsed JSON value. Integers are kept apart from doubles: a number
// literal without fraction or exponent is an IntNode when it fits int64, a
// UintNode when it only fits uint64, and a DoubleNode otherwise.
// Object members keep their input order.
type Node struct {
	kind    NodeKind
	b       bool
	i       int64
	u       uint64
	f       float64
	s       string
	items   []*Node
	members []Member
}

// NewNull returns a null node
func NewNull() *Node { return &Node{kind: NullNode} }

// NewBool returns a bool node
func NewBool(b bool) *Node { return &Node{kind: BoolNode, b: b} }

// NewInt returns a signed integer node
func NewInt(i int64) *Node { return &Node{kind: IntNode, i: i} }

// NewUint returns an unsigned integer node. Values that fit int64 become IntNode.
func NewUint(u uint64) *Node {
	if u <= math.MaxInt64 {
		return NewInt(int64(u))
	}
	return &Node{kind: UintNode, u: u}
}

// NewDouble returns a floating point node
func NewDouble(f float64) *Node { return &Node{kind: DoubleNode, f: f} }

// NewString returns a string node
func NewString(s string) *Node { return &Node{kind: StringNode, s: s} }

// NewArray returns an array node
func NewArray(items ...*Node) *Node { return &Node{kind: ArrayNode, items: items} }

// NewObject returns an object node
func NewObject(members ...Member) *Node { return &Node{kind: ObjectNode, members: members} }

// Kind returns the node kind
func (n *Node) Kind() NodeKind { return n.kind }

// Bool returns the value of a BoolNode
func (n *Node) Bool() bool { return n.b }

// Int returns the value of an IntNode
func (n *Node) Int() int64 { return n.i }

// Uint returns the value of a UintNode
func (n *Node) Uint() uint64 { return n.u }

// Double returns the value of a DoubleNode
func (n *Node) Double() float64 { return n.f }

// Text returns the value of a StringNode
func (n *Node) Text() string { return n.s }

// Items returns the elements of an ArrayNode
func (n *Node) Items() []*Node { return n.items }

// Members returns the members of an ObjectNode in input order
func (n *Node) Members() []Member { return n.members }

// Get returns the first member with the given name
func (n *Node) Get(name string) (*Node, bool) {
	for _, member := range n.members {
		if member.Name == name {
			return member.Value, true
		}
	}
	return nil, false
}

// IsInteger reports whether the node is an IntNode or a UintNode
func (n *Node) IsInteger() bool {
	return n.kind == IntNode || n.kind == UintNode
}

// numberNode classifies a number literal
func numberNode(number json.Number) (*Node, error) {
	literal := string(number)
	if !strings.ContainsAny(literal, ".eE") {
		if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
			return NewInt(i), nil
		}
		if u, err := strconv.ParseUint(literal, 10, 64); err == nil {
			return NewUint(u), nil
		}
	}

	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return nil, err
	}
	return NewDouble(f), nil
}
