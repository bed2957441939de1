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

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInterrupted is returned by blocking operations once a cooperative
	// shutdown has been requested. It is never logged as a failure.
	ErrInterrupted = errors.New("interrupted")

	// ErrTransientDecode indicates malformed or unsynchronized bytes on the wire.
	// The decode loop reports it and keeps going.
	ErrTransientDecode = errors.New("transient decode error")

	// ErrUnknownMessageID is returned when no message type matches a numeric id.
	ErrUnknownMessageID = errors.New("unknown message id")

	// ErrMissingMessageID is returned for JSON objects without a usable "id" member.
	ErrMissingMessageID = errors.New("missing message id")

	// ErrUnknownField is returned when a message type does not declare a field.
	ErrUnknownField = errors.New("unknown field")

	// ErrFieldConversion is returned when a value cannot be stored into a field.
	ErrFieldConversion = errors.New("field conversion failed")

	// ErrUnrepresentableType is returned for JSON nodes that do not map to any value variant
	// (null, bool, object).
	ErrUnrepresentableType = errors.New("unrepresentable type")

	// ErrFinalization is returned when a message frame cannot be finalized.
	ErrFinalization = errors.New("finalization failed")

	// ErrMalformedInput is returned when the JSON input cannot be parsed.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidDefinition is returned when a message definition document is invalid.
	ErrInvalidDefinition = errors.New("invalid message definition")
)

// FieldError reports a problem with a single field of a message.
// The owning message is still processed.
type FieldError struct {
	message string
	field   string
	err     error
}

// enforce compilation error
var _ error = (*FieldError)(nil)

// NewFieldError returns an instance of FieldError
func NewFieldError(message, field string, err error) *FieldError {
	return &FieldError{
		message: message,
		field:   field,
		err:     err,
	}
}

// Message returns the name of the message owning the field
func (f *FieldError) Message() string {
	return f.message
}

// Field returns the field name
func (f *FieldError) Field() string {
	return f.field
}

// Error implements the standard error interface
func (f *FieldError) Error() string {
	return fmt.Sprintf("field %s on message %s: %v", f.field, f.message, f.err)
}

func (f *FieldError) Unwrap() error {
	return f.err
}

// FinalizationError carries the negative length returned when a frame cannot be finalized.
type FinalizationError struct {
	code int
	err  error
}

var _ error = (*FinalizationError)(nil)

// NewFinalizationError returns an instance of FinalizationError
func NewFinalizationError(code int, reason string) *FinalizationError {
	return &FinalizationError{
		code: code,
		err:  fmt.Errorf("%w (%d): %s", ErrFinalization, code, reason),
	}
}

// Code returns the negative length reported by the finalization step
func (f *FinalizationError) Code() int {
	return f.code
}

// Error implements the standard error interface
func (f *FinalizationError) Error() string {
	return f.err.Error()
}

func (f *FinalizationError) Unwrap() error {
	return f.err
}
