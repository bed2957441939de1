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

// Package iox opens the input and output streams of the command line tools.
package iox

import (
	"bufio"
	"errors"
	"io"
	"os"
	"sync"

	"go.uber.org/multierr"

	"github.com/tochemey/mavkit/internal/compression"
)

// Stdio is the name selecting standard input or output
const Stdio = "-"

// Source is an input stream with transparent decompression. The codec is
// chosen on the first Read so opening never blocks on the input.
type Source struct {
	buffered    *bufio.Reader
	reader      io.Reader
	codec       io.Closer
	file        io.Closer
	name        string
	compression compression.Kind
	closeOnce   sync.Once
	closeErr    error
}

// Open opens the named file, or standard input when name is empty or "-".
// Compressed input is detected by its magic number.
func Open(name string) (*Source, error) {
	if name == "" || name == Stdio {
		return FromFile("stdin", os.Stdin), nil
	}
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return NewSource(name, file, file), nil
}

// FromFile wraps an already open file such as standard input. A pipe or a
// socket is read through a non-blocking duplicate so that Close interrupts a
// pending Read.
func FromFile(name string, file *os.File) *Source {
	file = pollable(file)
	return NewSource(name, file, file)
}

// NewSource wraps r. closer, when not nil, is closed by Close.
func NewSource(name string, r io.Reader, closer io.Closer) *Source {
	return &Source{
		buffered:    bufio.NewReader(r),
		file:        closer,
		name:        name,
		compression: compression.None,
	}
}

// Read implements io.Reader. It is not safe for concurrent use.
func (s *Source) Read(p []byte) (int, error) {
	if s.reader == nil {
		if err := s.detect(); err != nil {
			return 0, err
		}
	}
	return s.reader.Read(p)
}

func (s *Source) detect() error {
	header, err := s.buffered.Peek(compression.MagicLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return err
	}

	kind := compression.Detect(header)
	codec, err := compression.NewReader(kind, s.buffered)
	if err != nil {
		return err
	}
	s.reader = codec
	s.codec = codec
	s.compression = kind
	return nil
}

// Name returns the input name used in diagnostics
func (s *Source) Name() string {
	return s.name
}

// Compression returns the codec detected on the input. It reports None
// until the first Read.
func (s *Source) Compression() compression.Kind {
	return s.compression
}

// Close closes the underlying file, unblocking a pending Read. It may be
// called concurrently with Read and more than once.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		if s.file != nil {
			s.closeErr = s.file.Close()
		}
	})
	return s.closeErr
}

// Release closes the file and frees the codec. Call it once reading stopped.
func (s *Source) Release() error {
	err := s.Close()
	if s.codec != nil {
		err = multierr.Append(err, s.codec.Close())
	}
	return err
}

// Sink is an output stream with optional compression
type Sink struct {
	writer io.Writer
	codec  io.Closer
	file   io.Closer
	name   string
}

// Create creates the named file, or uses standard output when name is empty
// or "-".
func Create(name string, kind compression.Kind) (*Sink, error) {
	if name == "" || name == Stdio {
		return NewSink("stdout", os.Stdout, nil, kind)
	}
	file, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	sink, err := NewSink(name, file, file, kind)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return sink, nil
}

// NewSink wraps w. closer, when not nil, is closed by Close after the codec
// is flushed.
func NewSink(name string, w io.Writer, closer io.Closer, kind compression.Kind) (*Sink, error) {
	codec, err := compression.NewWriter(kind, w)
	if err != nil {
		return nil, err
	}
	return &Sink{writer: codec, codec: codec, file: closer, name: name}, nil
}

// Write implements io.Writer
func (s *Sink) Write(p []byte) (int, error) {
	return s.writer.Write(p)
}

// Name returns the output name used in diagnostics
func (s *Sink) Name() string {
	return s.name
}

// Close flushes the codec then closes the file
func (s *Sink) Close() error {
	err := s.codec.Close()
	if s.file != nil {
		err = multierr.Append(err, s.file.Close())
	}
	return err
}
