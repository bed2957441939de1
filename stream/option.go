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
	"github.com/tochemey/mavkit/log"
	"github.com/tochemey/mavkit/mailbox"
	"github.com/tochemey/mavkit/mavlink"
)

// DefaultChunkSize is the number of bytes the feeder reads at a time
const DefaultChunkSize = 64

// settings holds the configuration shared by Decoder and Encoder
type settings struct {
	logger        log.Logger
	chunkSize     int
	highWatermark int
	identity      mavlink.Identity
}

func defaultSettings() *settings {
	return &settings{
		logger:        log.DefaultLogger,
		chunkSize:     DefaultChunkSize,
		highWatermark: mailbox.DefaultHighWatermark,
		identity:      mavlink.Identity{SystemID: 1, ComponentID: 1},
	}
}

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(*settings)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*settings)

// Apply applies the option
func (f OptionFunc) Apply(s *settings) {
	f(s)
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(s *settings) {
		s.logger = logger
	})
}

// WithChunkSize sets how many input bytes the decode feeder reads at a time.
// Non-positive values are ignored.
func WithChunkSize(size int) Option {
	return OptionFunc(func(s *settings) {
		if size > 0 {
			s.chunkSize = size
		}
	})
}

// WithHighWatermark sets the mailbox high watermark of the decode side.
// Non-positive values are ignored.
func WithHighWatermark(size int) Option {
	return OptionFunc(func(s *settings) {
		if size > 0 {
			s.highWatermark = size
		}
	})
}

// WithIdentity sets the link identity encoded frames are finalized with
func WithIdentity(identity mavlink.Identity) Option {
	return OptionFunc(func(s *settings) {
		s.identity = identity
	})
}
