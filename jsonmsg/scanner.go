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
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

var errMismatch = errors.New("unexpected byte")

// syntaxError is a grammar violation found by the scanner
type syntaxError struct {
	code   ParseErrorCode
	offset int64
	reason string
}

func (e *syntaxError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.offset, e.reason)
}

// scanner cuts a byte stream into top-level JSON values and checks each one
// against the grammar before it is decoded. The decoder token API skips
// separators without checking them, so every comma and colon is verified here.
type scanner struct {
	reader *bufio.Reader
	raw    bytes.Buffer
	offset int64
}

func newScanner(r io.Reader) *scanner {
	return &scanner{reader: bufio.NewReader(r)}
}

// next returns the bytes of the next value. It returns io.EOF when only
// whitespace is left.
func (s *scanner) next() ([]byte, error) {
	s.raw.Reset()
	c, err := s.skipSpace()
	if err != nil {
		return nil, err
	}
	if err := s.value(c, 0); err != nil {
		return nil, err
	}
	return s.raw.Bytes(), nil
}

func (s *scanner) read() (byte, error) {
	c, err := s.reader.ReadByte()
	if err != nil {
		return 0, err
	}
	s.offset++
	s.raw.WriteByte(c)
	return c, nil
}

func (s *scanner) unread() {
	_ = s.reader.UnreadByte()
	s.offset--
	s.raw.Truncate(s.raw.Len() - 1)
}

// skipSpace returns the first byte that is not whitespace. Whitespace is not
// kept in the value bytes.
func (s *scanner) skipSpace() (byte, error) {
	for {
		c, err := s.reader.ReadByte()
		if err != nil {
			return 0, err
		}
		s.offset++
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		}
		s.raw.WriteByte(c)
		return c, nil
	}
}

func (s *scanner) fail(code ParseErrorCode, err error, format string, args ...any) error {
	if errors.Is(err, errMismatch) {
		err = nil
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	reason := fmt.Sprintf(format, args...)
	if errors.Is(err, io.EOF) {
		reason += ": " + io.ErrUnexpectedEOF.Error()
	}
	return &syntaxError{code: code, offset: s.offset, reason: reason}
}

func (s *scanner) value(c byte, depth int) error {
	switch {
	case c == '{':
		return s.object(depth + 1)
	case c == '[':
		return s.array(depth + 1)
	case c == '"':
		return s.str()
	case c == '-' || isDigit(c):
		return s.number(c)
	case c == 't':
		return s.literal("rue")
	case c == 'f':
		return s.literal("alse")
	case c == 'n':
		return s.literal("ull")
	default:
		return s.fail(ParseErrorValueInvalid, nil, "invalid value starting with %q", c)
	}
}

// nextValue reads the first byte of a nested value
func (s *scanner) nextValue(depth int) error {
	c, err := s.skipSpace()
	if err != nil {
		return s.fail(ParseErrorValueInvalid, err, "missing value")
	}
	return s.value(c, depth)
}

func (s *scanner) object(depth int) error {
	if depth > maxDepth {
		return s.fail(ParseErrorUnspecificSyntaxError, nil, "nesting deeper than %d", maxDepth)
	}
	c, err := s.skipSpace()
	if err != nil {
		return s.fail(ParseErrorObjectMissName, err, "missing object member name")
	}
	if c == '}' {
		return nil
	}
	for {
		if c != '"' {
			return s.fail(ParseErrorObjectMissName, nil, "missing object member name")
		}
		if err := s.str(); err != nil {
			return err
		}
		if c, err = s.skipSpace(); err != nil || c != ':' {
			return s.fail(ParseErrorObjectMissColon, err, "missing colon after object member name")
		}
		if err := s.nextValue(depth); err != nil {
			return err
		}
		if c, err = s.skipSpace(); err != nil {
			return s.fail(ParseErrorObjectMissCommaOrCurlyBracket, err, "missing comma or '}' after object member")
		}
		switch c {
		case '}':
			return nil
		case ',':
			if c, err = s.skipSpace(); err != nil {
				return s.fail(ParseErrorObjectMissName, err, "missing object member name")
			}
		default:
			return s.fail(ParseErrorObjectMissCommaOrCurlyBracket, nil, "missing comma or '}' after object member")
		}
	}
}

func (s *scanner) array(depth int) error {
	if depth > maxDepth {
		return s.fail(ParseErrorUnspecificSyntaxError, nil, "nesting deeper than %d", maxDepth)
	}
	c, err := s.skipSpace()
	if err != nil {
		return s.fail(ParseErrorValueInvalid, err, "missing array element")
	}
	if c == ']' {
		return nil
	}
	for {
		if err := s.value(c, depth); err != nil {
			return err
		}
		if c, err = s.skipSpace(); err != nil {
			return s.fail(ParseErrorArrayMissCommaOrSquareBracket, err, "missing comma or ']' after array element")
		}
		switch c {
		case ']':
			return nil
		case ',':
			if c, err = s.skipSpace(); err != nil {
				return s.fail(ParseErrorValueInvalid, err, "missing array element")
			}
		default:
			return s.fail(ParseErrorArrayMissCommaOrSquareBracket, nil, "missing comma or ']' after array element")
		}
	}
}

func (s *scanner) literal(rest string) error {
	for i := 0; i < len(rest); i++ {
		c, err := s.read()
		if err != nil || c != rest[i] {
			return s.fail(ParseErrorValueInvalid, err, "invalid literal")
		}
	}
	return nil
}

// number checks -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)? and leaves the
// byte after it unread.
func (s *scanner) number(c byte) error {
	var err error
	if c == '-' {
		if c, err = s.read(); err != nil || !isDigit(c) {
			return s.fail(ParseErrorValueInvalid, err, "missing digit after '-'")
		}
	}
	if c != '0' {
		if c, err = s.digits(); err != nil {
			return s.end(err)
		}
	} else if c, err = s.read(); err != nil {
		return s.end(err)
	}

	if c == '.' {
		if c, err = s.read(); err != nil || !isDigit(c) {
			return s.fail(ParseErrorNumberMissFraction, err, "missing fraction digits")
		}
		if c, err = s.digits(); err != nil {
			return s.end(err)
		}
	}
	if c == 'e' || c == 'E' {
		if c, err = s.read(); err == nil && (c == '+' || c == '-') {
			c, err = s.read()
		}
		if err != nil || !isDigit(c) {
			return s.fail(ParseErrorNumberMissExponent, err, "missing exponent digits")
		}
		if _, err = s.digits(); err != nil {
			return s.end(err)
		}
	}
	s.unread()
	return nil
}

// digits consumes a run of digits and returns the first byte after it
func (s *scanner) digits() (byte, error) {
	for {
		c, err := s.read()
		if err != nil || !isDigit(c) {
			return c, err
		}
	}
}

// end accepts the end of input right after a number
func (s *scanner) end(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *scanner) str() error {
	for {
		c, err := s.read()
		if err != nil {
			return s.fail(ParseErrorStringMissQuotationMark, err, "missing closing quotation mark")
		}
		switch {
		case c == '"':
			return nil
		case c == '\\':
			if err := s.escape(); err != nil {
				return err
			}
		case c < 0x20:
			return s.fail(ParseErrorStringInvalidEncoding, nil, "control character %#02x in string", c)
		}
	}
}

func (s *scanner) escape() error {
	c, err := s.read()
	if err != nil {
		return s.fail(ParseErrorStringEscapeInvalid, err, "incomplete escape")
	}
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return nil
	case 'u':
	default:
		return s.fail(ParseErrorStringEscapeInvalid, nil, "invalid escape %q", c)
	}

	unit, err := s.hex4()
	if err != nil {
		return err
	}
	switch {
	case unit >= 0xdc00 && unit <= 0xdfff:
		return s.fail(ParseErrorStringUnicodeSurrogateInvalid, nil, "lone low surrogate %#04x", unit)
	case unit >= 0xd800 && unit <= 0xdbff:
		if err := s.expect('\\', 'u'); err != nil {
			return s.fail(ParseErrorStringUnicodeSurrogateInvalid, err, "high surrogate %#04x without low surrogate", unit)
		}
		low, err := s.hex4()
		if err != nil {
			return err
		}
		if low < 0xdc00 || low > 0xdfff {
			return s.fail(ParseErrorStringUnicodeSurrogateInvalid, nil, "invalid low surrogate %#04x", low)
		}
	}
	return nil
}

// expect reads the given bytes. A mismatch is reported as a nil-cause error
// so that the caller can classify it.
func (s *scanner) expect(want ...byte) error {
	for _, w := range want {
		c, err := s.read()
		if err != nil {
			return err
		}
		if c != w {
			return errMismatch
		}
	}
	return nil
}

func (s *scanner) hex4() (rune, error) {
	var unit rune
	for range make([]struct{}, 4) {
		c, err := s.read()
		if err != nil {
			return 0, s.fail(ParseErrorStringUnicodeEscapeInvalidHex, err, "incomplete unicode escape")
		}
		var digit byte
		switch {
		case isDigit(c):
			digit = c - '0'
		case c >= 'a' && c <= 'f':
			digit = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			digit = c - 'A' + 10
		default:
			return 0, s.fail(ParseErrorStringUnicodeEscapeInvalidHex, nil, "invalid hex digit %q", c)
		}
		unit = unit<<4 | rune(digit)
	}
	return unit, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
