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
	"errors"
	"fmt"
	"io"
	"strconv"

	json "github.com/goccy/go-json"

	gerrors "github.com/tochemey/mavkit/errors"
)

// ParseErrorCode classifies malformed input. The numbering is the one used
// as process exit status by the encode command.
type ParseErrorCode int

const (
	ParseErrorNone                          ParseErrorCode = 0
	ParseErrorValueInvalid                  ParseErrorCode = 3
	ParseErrorObjectMissName                ParseErrorCode = 4
	ParseErrorObjectMissColon               ParseErrorCode = 5
	ParseErrorObjectMissCommaOrCurlyBracket ParseErrorCode = 6
	ParseErrorArrayMissCommaOrSquareBracket ParseErrorCode = 7
	ParseErrorStringUnicodeEscapeInvalidHex ParseErrorCode = 8
	ParseErrorStringUnicodeSurrogateInvalid ParseErrorCode = 9
	ParseErrorStringEscapeInvalid           ParseErrorCode = 10
	ParseErrorStringMissQuotationMark       ParseErrorCode = 11
	ParseErrorStringInvalidEncoding         ParseErrorCode = 12
	ParseErrorNumberTooBig                  ParseErrorCode = 13
	ParseErrorNumberMissFraction            ParseErrorCode = 14
	ParseErrorNumberMissExponent            ParseErrorCode = 15
	ParseErrorUnspecificSyntaxError         ParseErrorCode = 17
)

// maxDepth bounds the nesting of arrays and objects
const maxDepth = 512

// ParseError reports malformed JSON input
type ParseError struct {
	// Code classifies the failure
	Code ParseErrorCode
	// Document is the 1-based index of the top-level value being parsed
	Document int
	err      error
}

var _ error = (*ParseError)(nil)

// Error implements the standard error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: document %d: code %d: %v", gerrors.ErrMalformedInput, e.Document, e.Code, e.err)
}

// Unwrap exposes both ErrMalformedInput and the underlying cause
func (e *ParseError) Unwrap() []error {
	return []error{gerrors.ErrMalformedInput, e.err}
}

// NodeReader reads a stream of concatenated JSON values, one Node at a time.
// Each value is checked against the JSON grammar as a whole before any Node is
// built from it.
type NodeReader struct {
	scanner  *scanner
	decoder  *json.Decoder
	document int
}

// NewNodeReader creates an instance of NodeReader
func NewNodeReader(r io.Reader) *NodeReader {
	return &NodeReader{scanner: newScanner(r)}
}

// Next returns the next top-level value. It returns io.EOF when the input
// ends before a value starts, a *ParseError for anything malformed and the
// read error when the input fails.
func (r *NodeReader) Next() (*Node, error) {
	raw, err := r.scanner.next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		r.document++
		var syntaxErr *syntaxError
		if errors.As(err, &syntaxErr) {
			return nil, r.fail(syntaxErr.code, syntaxErr)
		}
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	r.document++
	r.decoder = json.NewDecoder(bytes.NewReader(raw))
	r.decoder.UseNumber()
	token, err := r.decoder.Token()
	if err != nil {
		return nil, r.fail(ParseErrorUnspecificSyntaxError, err)
	}
	return r.value(token)
}

func (r *NodeReader) value(token json.Token) (*Node, error) {
	switch v := token.(type) {
	case json.Delim:
		switch v {
		case '{':
			return r.object()
		case '[':
			return r.array()
		default:
			return nil, r.fail(ParseErrorUnspecificSyntaxError, fmt.Errorf("unexpected %q", rune(v)))
		}
	case json.Number:
		node, err := numberNode(v)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return nil, r.fail(ParseErrorNumberTooBig, err)
			}
			return nil, r.fail(ParseErrorValueInvalid, err)
		}
		return node, nil
	case float64:
		return NewDouble(v), nil
	case string:
		return NewString(v), nil
	case bool:
		return NewBool(v), nil
	case nil:
		return NewNull(), nil
	default:
		return nil, r.fail(ParseErrorUnspecificSyntaxError, fmt.Errorf("unexpected token %v", token))
	}
}

func (r *NodeReader) object() (*Node, error) {
	var members []Member
	for {
		token, err := r.decoder.Token()
		if err != nil {
			return nil, r.fail(ParseErrorUnspecificSyntaxError, err)
		}
		if token == json.Delim('}') {
			return NewObject(members...), nil
		}
		name, ok := token.(string)
		if !ok {
			return nil, r.fail(ParseErrorUnspecificSyntaxError, fmt.Errorf("object member name is %v", token))
		}

		if token, err = r.decoder.Token(); err != nil {
			return nil, r.fail(ParseErrorUnspecificSyntaxError, err)
		}
		value, err := r.value(token)
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Name: name, Value: value})
	}
}

func (r *NodeReader) array() (*Node, error) {
	items := make([]*Node, 0)
	for {
		token, err := r.decoder.Token()
		if err != nil {
			return nil, r.fail(ParseErrorUnspecificSyntaxError, err)
		}
		if token == json.Delim(']') {
			return NewArray(items...), nil
		}
		item, err := r.value(token)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func (r *NodeReader) fail(code ParseErrorCode, err error) *ParseError {
	return &ParseError{Code: code, Document: r.document, err: err}
}
