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
	"github.com/tochemey/mavkit/internal/errorschain"
	"github.com/tochemey/mavkit/mavlink"
)

// DefaultIdentity is the link identity messages are finalized with
var DefaultIdentity = mavlink.Identity{SystemID: 1, ComponentID: 1}

// Result is the outcome of building one message
type Result struct {
	// Message is the message created from the object
	Message *mavlink.Message
	// Seq is the sequence number the message was finalized with
	Seq int
	// Problems lists the members that were skipped
	Problems []error
}

// Frame returns the finalized bytes
func (r *Result) Frame() []byte {
	if r.Message == nil {
		return nil
	}
	return r.Message.Data()
}

// BuilderOption configures a Builder
type BuilderOption func(*Builder)

// WithIdentity sets the link identity used at finalization
func WithIdentity(identity mavlink.Identity) BuilderOption {
	return func(b *Builder) {
		b.identity = identity
	}
}

// Builder turns JSON objects into finalized messages
type Builder struct {
	messageSet *mavlink.MessageSet
	identity   mavlink.Identity
}

// NewBuilder creates an instance of Builder
func NewBuilder(messageSet *mavlink.MessageSet, opts ...BuilderOption) *Builder {
	builder := &Builder{
		messageSet: messageSet,
		identity:   DefaultIdentity,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder
}

// Build creates the message named by the "id" member, applies the optional
// "system_id", "component_id" and "seq" members, sets every entry of "fields"
// and finalizes the frame.
//
// Members that cannot be applied are skipped and listed in Result.Problems.
// Build fails when the object has no integer id, when the id is unknown, or
// when the frame cannot be finalized. The Result is returned alongside a
// finalization error so that its problems can still be reported.
func (b *Builder) Build(object *Node) (*Result, error) {
	if object.Kind() != ObjectNode {
		return nil, fmt.Errorf("%w: top-level value is %s", gerrors.ErrMissingMessageID, object.Kind())
	}

	idNode, ok := object.Get("id")
	if !ok {
		return nil, fmt.Errorf("%w: no id member in object", gerrors.ErrMissingMessageID)
	}
	if !idNode.IsInteger() {
		return nil, fmt.Errorf("%w: id is %s", gerrors.ErrMissingMessageID, describe(idNode))
	}
	if idNode.Kind() == UintNode || idNode.Int() < 0 || idNode.Int() > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %s", gerrors.ErrUnknownMessageID, describe(idNode))
	}

	message, err := b.messageSet.Create(uint32(idNode.Int()))
	if err != nil {
		return nil, err
	}

	chain := errorschain.New(errorschain.ReturnAll())
	result := &Result{Message: message}

	if node, ok := object.Get("system_id"); ok {
		if id, err := headerID(node); err != nil {
			chain.AddErrorf("system_id: %w", err)
		} else {
			message.Header().SetSystemID(id)
		}
	}
	if node, ok := object.Get("component_id"); ok {
		if id, err := headerID(node); err != nil {
			chain.AddErrorf("component_id: %w", err)
		} else {
			message.Header().SetComponentID(id)
		}
	}
	if node, ok := object.Get("seq"); ok {
		switch node.Kind() {
		case IntNode:
			result.Seq = int(node.Int())
		case UintNode:
			// out of range, Finalize rejects it
			result.Seq = math.MaxInt
		default:
			chain.AddErrorf("seq: %w: %s", gerrors.ErrFieldConversion, describe(node))
		}
	}

	if fields, ok := object.Get("fields"); ok {
		if fields.Kind() != ObjectNode {
			chain.AddErrorf("fields: %w: %s", gerrors.ErrUnrepresentableType, fields.Kind())
		} else {
			b.applyFields(message, fields, chain)
		}
	}
	result.Problems = chain.Errors()

	if _, err := message.Finalize(result.Seq, b.identity); err != nil {
		return result, err
	}
	return result, nil
}

func (b *Builder) applyFields(message *mavlink.Message, fields *Node, chain *errorschain.Chain) {
	for _, member := range fields.Members() {
		if !message.Type().ContainsField(member.Name) {
			chain.AddErrorf("%w: %s on message %s", gerrors.ErrUnknownField, member.Name, message.Name())
			continue
		}

		value, err := FromNode(member.Value)
		if err != nil {
			chain.AddError(gerrors.NewFieldError(message.Name(), member.Name, err))
			continue
		}
		chain.AddError(message.Set(member.Name, value))
	}
}

// headerID reads a system or component id
func headerID(node *Node) (uint8, error) {
	if node.Kind() != IntNode || node.Int() < 0 || node.Int() > math.MaxUint8 {
		return 0, fmt.Errorf("%w: %s is not an id", gerrors.ErrFieldConversion, describe(node))
	}
	return uint8(node.Int()), nil
}
