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

package config

import "github.com/tochemey/mavkit/mavlink"

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(config *Config)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(config *Config)

// Apply applies the Config's option
func (f OptionFunc) Apply(c *Config) {
	f(c)
}

// WithDefinitions sets the definition files to load. An empty list keeps
// the configured ones.
func WithDefinitions(paths ...string) Option {
	return OptionFunc(func(config *Config) {
		if len(paths) > 0 {
			config.Definitions = append([]string(nil), paths...)
		}
	})
}

// WithChunkSize sets the decode read size
func WithChunkSize(size int) Option {
	return OptionFunc(func(config *Config) {
		config.ChunkSize = size
	})
}

// WithHighWatermark sets the decode buffer high watermark
func WithHighWatermark(size int) Option {
	return OptionFunc(func(config *Config) {
		config.HighWatermark = size
	})
}

// WithIdentity sets the link identity
func WithIdentity(identity mavlink.Identity) Option {
	return OptionFunc(func(config *Config) {
		config.SystemID = int(identity.SystemID)
		config.ComponentID = int(identity.ComponentID)
	})
}

// WithLogLevel sets the log level
func WithLogLevel(level string) Option {
	return OptionFunc(func(config *Config) {
		config.LogLevel = level
	})
}

// WithCompression sets the output compression
func WithCompression(name string) Option {
	return OptionFunc(func(config *Config) {
		config.Compression = name
	})
}

// WithLogFile sets the file that receives a copy of the logs
func WithLogFile(path string) Option {
	return OptionFunc(func(config *Config) {
		config.LogFile = path
	})
}
