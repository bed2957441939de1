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

package stream

import (
	"context"
	"errors"
	"fmt"
	"io"

	gerrors "github.com/tochemey/mavkit/errors"
	"github.com/tochemey/mavkit/jsonmsg"
	"github.com/tochemey/mavkit/log"
	"github.com/tochemey/mavkit/mavlink"
)

// Encoder turns a stream of JSON objects into binary frames
type Encoder struct {
	builder *jsonmsg.Builder
	logger  log.Logger
	stats   *Stats
}

// NewEncoder creates an instance of Encoder
func NewEncoder(messageSet *mavlink.MessageSet, opts ...Option) *Encoder {
	config := defaultSettings()
	for _, opt := range opts {
		opt.Apply(config)
	}

	return &Encoder{
		builder: jsonmsg.NewBuilder(messageSet, jsonmsg.WithIdentity(config.identity)),
		logger:  config.logger,
		stats:   newStats(),
	}
}

// Stats returns the counters of the encoder
func (e *Encoder) Stats() *Stats {
	return e.stats
}

// next is the outcome of one NodeReader.Next call
type next struct {
	node *jsonmsg.Node
	err  error
}

// Run reads JSON values from r until the input ends and writes one frame per
// object to w. Objects that cannot be encoded are logged and skipped.
//
// Run returns nil when the input ends cleanly and a *jsonmsg.ParseError when it
// is malformed. Cancelling ctx closes r when it is an io.Closer and Run returns
// errors.ErrInterrupted without waiting for a pending read.
func (e *Encoder) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	e.stats.reset()
	if ctx.Err() != nil {
		e.logger.Info("interrupted")
		return gerrors.ErrInterrupted
	}

	stop := context.AfterFunc(ctx, func() {
		if closer, ok := r.(io.Closer); ok {
			_ = closer.Close()
		}
	})
	defer stop()

	done := make(chan struct{})
	defer close(done)
	values := e.read(jsonmsg.NewNodeReader(countingReader{r: r, counter: e.stats.bytesIn}), done)

	out := countingWriter{w: w, counter: e.stats.bytesOut}
	for document := 1; ; document++ {
		var value next
		select {
		case <-ctx.Done():
			e.logger.Info("interrupted")
			return gerrors.ErrInterrupted
		case value = <-values:
		}

		if value.err != nil {
			if ctx.Err() != nil {
				e.logger.Info("interrupted")
				return gerrors.ErrInterrupted
			}
			if errors.Is(value.err, io.EOF) {
				if e.logger.Enabled(log.DebugLevel) {
					e.logger.Debugf("encoded %d messages, %d problems", e.stats.Messages(), e.stats.Problems())
				}
				return nil
			}
			var parseErr *jsonmsg.ParseError
			if errors.As(value.err, &parseErr) {
				e.logger.Errorf("failed to parse JSON: %v", value.err)
			} else {
				e.logger.Errorf("failed to read input: %v", value.err)
			}
			return value.err
		}

		frame, ok := e.encode(e.logger.With("document", document), value.node)
		if !ok {
			continue
		}
		if _, err := out.Write(frame); err != nil {
			e.logger.Errorf("failed to write frame: %v", err)
			return fmt.Errorf("failed to write frame: %w", err)
		}
		e.stats.messages.Inc()
	}
}

// read pulls values off reader in its own goroutine until the first error or
// until done is closed.
func (e *Encoder) read(reader *jsonmsg.NodeReader, done <-chan struct{}) <-chan next {
	values := make(chan next)
	go func() {
		for {
			node, err := reader.Next()
			select {
			case values <- next{node: node, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return values
}

// encode builds one frame and logs every problem met on the way
func (e *Encoder) encode(logger log.Logger, node *jsonmsg.Node) ([]byte, bool) {
	result, err := e.builder.Build(node)
	if result != nil {
		for _, problem := range result.Problems {
			e.stats.problems.Inc()
			logger.Warnf("skipping member: %v", problem)
		}
	}

	if err != nil {
		e.stats.problems.Inc()
		switch {
		case errors.Is(err, gerrors.ErrMissingMessageID), errors.Is(err, gerrors.ErrUnknownMessageID):
			logger.Warnf("skipping object: %v", err)
		default:
			logger.Warnf("failed to finalize message: %v", err)
		}
		return nil, false
	}
	return result.Frame(), true
}
