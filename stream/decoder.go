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

// Package stream pumps MAVLink frames to JSON lines and JSON objects to frames.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	gerrors "github.com/tochemey/mavkit/errors"
	"github.com/tochemey/mavkit/jsonmsg"
	"github.com/tochemey/mavkit/log"
	"github.com/tochemey/mavkit/mailbox"
	"github.com/tochemey/mavkit/mavlink"
)

// Decoder turns a stream of binary frames into JSON lines.
//
// A run uses two goroutines: a feeder copying input chunks into a mailbox and
// a decoder pulling whole frames out of it. Once the input ends the feeder
// waits for the decoder to catch up before shutting the mailbox. A Decoder
// runs one stream at a time.
type Decoder struct {
	messageSet    *mavlink.MessageSet
	logger        log.Logger
	chunkSize     int
	highWatermark int
	stats         *Stats
}

// NewDecoder creates an instance of Decoder
func NewDecoder(messageSet *mavlink.MessageSet, opts ...Option) *Decoder {
	config := defaultSettings()
	for _, opt := range opts {
		opt.Apply(config)
	}

	return &Decoder{
		messageSet:    messageSet,
		logger:        config.logger,
		chunkSize:     config.chunkSize,
		highWatermark: config.highWatermark,
		stats:         newStats(),
	}
}

// Stats returns the counters of the decoder
func (d *Decoder) Stats() *Stats {
	return d.stats
}

// Run decodes r until it ends or ctx is cancelled, writing one JSON line per
// message to w. Frames that fail to decode are logged and skipped.
//
// Cancelling ctx interrupts the mailbox and closes r when it is an io.Closer,
// so that a pending read returns. Run then returns errors.ErrInterrupted
// without writing a partial line.
func (d *Decoder) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	d.stats.reset()
	box := mailbox.New(mailbox.WithHighWatermark(d.highWatermark))
	link := &mailboxLink{box: box}
	parser := mavlink.NewStreamParser(d.messageSet, link)
	renderer := jsonmsg.NewRenderer(countingWriter{w: w, counter: d.stats.bytesOut})

	stop := context.AfterFunc(ctx, func() {
		_ = link.Close()
		if closer, ok := r.(io.Closer); ok {
			_ = closer.Close()
		}
	})
	defer stop()

	// the feeder is not joined once the run is cancelled: a read on an input
	// that cannot be interrupted by Close would otherwise hold Run until the
	// writer side produces data or goes away.
	fed := make(chan error, 1)
	go func() {
		fed <- d.feed(r, box)
	}()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return d.decode(parser, renderer, box)
	})
	eg.Go(func() error {
		select {
		case err := <-fed:
			return err
		case <-egCtx.Done():
			return nil
		}
	})

	err := eg.Wait()
	if d.logger.Enabled(log.DebugLevel) {
		d.logger.Debugf("decoded %d messages from %d bytes, %d problems",
			d.stats.Messages(), d.stats.BytesIn(), d.stats.Problems())
	}

	if ctx.Err() != nil {
		return gerrors.ErrInterrupted
	}
	return err
}

// decode renders messages until the mailbox is interrupted
func (d *Decoder) decode(parser *mavlink.StreamParser, renderer *jsonmsg.Renderer, box *mailbox.Mailbox) error {
	for {
		message, err := parser.Next()
		if err != nil {
			if errors.Is(err, gerrors.ErrInterrupted) {
				return nil
			}
			if errors.Is(err, gerrors.ErrTransientDecode) {
				d.stats.problems.Inc()
				d.logger.With("offset", box.Consumed()).Warnf("failed to decode frame: %v", err)
				continue
			}
			box.Interrupt()
			return fmt.Errorf("failed to read frame: %w", err)
		}

		if err := renderer.Write(message); err != nil {
			box.Interrupt()
			d.logger.With("message", message.Name()).Errorf("failed to write message: %v", err)
			return fmt.Errorf("failed to write message %s: %w", message.Name(), err)
		}
		d.stats.messages.Inc()
	}
}

// feed copies r into the mailbox in fixed size chunks. At the end of the input
// it waits for the decoder to drain the mailbox, then interrupts it.
func (d *Decoder) feed(r io.Reader, box *mailbox.Mailbox) error {
	chunk := make([]byte, d.chunkSize)
	for !box.Interrupted() {
		n, err := r.Read(chunk)
		if n > 0 {
			d.stats.bytesIn.Add(uint64(n))
			box.Send(chunk[:n])
		}

		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			if err := box.DrainWait(); err == nil && box.Len() > 0 {
				d.logger.Warnf("dropping %d bytes of truncated frame at end of input", box.Len())
			}
			box.Interrupt()
			return nil
		}
		if box.Interrupted() {
			// the input was closed on cancellation
			return nil
		}

		box.Interrupt()
		d.logger.Errorf("failed to read input: %v", err)
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}
