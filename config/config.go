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

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/tochemey/mavkit/internal/compression"
	"github.com/tochemey/mavkit/internal/validation"
	"github.com/tochemey/mavkit/jsonmsg"
	"github.com/tochemey/mavkit/log"
	"github.com/tochemey/mavkit/mailbox"
	"github.com/tochemey/mavkit/mavlink"
	"github.com/tochemey/mavkit/stream"
)

// Config represents the settings shared by the decode and encode tools
type Config struct {
	// Definitions lists the MAVLink XML definition files to load.
	// When empty the built-in message set is used.
	Definitions []string `yaml:"definitions"`
	// ChunkSize is the number of bytes read from the input at a time
	// when decoding. The default value is 64
	ChunkSize int `yaml:"chunk_size"`
	// HighWatermark is the number of buffered bytes above which the
	// decode reader blocks. The default value is 64KiB
	HighWatermark int `yaml:"high_watermark"`
	// SystemID and ComponentID identify the link encoded frames are
	// finalized with. Both default to 1
	SystemID    int `yaml:"system_id"`
	ComponentID int `yaml:"component_id"`
	// LogLevel is one of debug, info, warn or error
	LogLevel string `yaml:"log_level"`
	// Compression applies to the output stream: none, gzip, zstd or lz4
	Compression string `yaml:"compression"`
	// LogFile, when set, receives a copy of the log lines written to the
	// standard error. Lines below error level are buffered.
	LogFile string `yaml:"log_file"`
}

// Default returns a Config carrying the default values
func Default() *Config {
	return &Config{
		ChunkSize:     stream.DefaultChunkSize,
		HighWatermark: mailbox.DefaultHighWatermark,
		SystemID:      int(jsonmsg.DefaultIdentity.SystemID),
		ComponentID:   int(jsonmsg.DefaultIdentity.ComponentID),
		LogLevel:      log.InfoLevel.String(),
		Compression:   string(compression.None),
	}
}

// New creates a validated Config from the defaults and the given options
func New(options ...Option) (*Config, error) {
	config := Default()
	for _, opt := range options {
		opt.Apply(config)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Load reads a YAML configuration file on top of the defaults, then applies
// the options. Unknown keys are rejected. Relative definition paths are
// resolved against the directory of the file.
func Load(path string, options ...Option) (*Config, error) {
	config := Default()
	if err := config.loadFile(path); err != nil {
		return nil, err
	}
	for _, opt := range options {
		opt.Apply(config)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// loadFile decodes a single file into the config
func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i, definition := range c.Definitions {
		c.Definitions[i] = resolve(dir, definition)
	}
	if c.LogFile != "" {
		c.LogFile = resolve(dir, c.LogFile)
	}
	return nil
}

// resolve expands environment variables in name and makes it relative to dir
func resolve(dir, name string) string {
	name = os.ExpandEnv(name)
	if !filepath.IsAbs(name) {
		name = filepath.Join(dir, name)
	}
	return name
}

// Validate checks every setting and reports all the violations at once
func (c *Config) Validate() error {
	chain := validation.New(validation.AllErrors()).
		AddValidator(validation.NewRangeValidator("chunk_size", c.ChunkSize, 1, 1<<20)).
		AddValidator(validation.NewRangeValidator("high_watermark", c.HighWatermark, 1, 1<<30)).
		AddValidator(validation.NewRangeValidator("system_id", c.SystemID, 0, 255)).
		AddValidator(validation.NewRangeValidator("component_id", c.ComponentID, 0, 255)).
		AddValidator(validation.NewOneOfValidator("log_level", c.LogLevel, "debug", "info", "warn", "warning", "error")).
		AddValidator(validation.NewOneOfValidator("compression", c.Compression, compression.Names()...))
	for _, definition := range c.Definitions {
		chain.AddValidator(validation.NewFileValidator(definition))
	}
	return chain.Validate()
}

// Identity returns the configured link identity
func (c *Config) Identity() mavlink.Identity {
	return mavlink.Identity{SystemID: uint8(c.SystemID), ComponentID: uint8(c.ComponentID)}
}

// Level returns the configured log level, falling back to info
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Logger creates the logger of a run. It writes to stderr and, when LogFile
// is set, appends to that file too. The returned function flushes the logger
// and closes the file.
func (c *Config) Logger(stderr io.Writer) (log.Logger, func() error, error) {
	if c.LogFile == "" {
		logger := log.NewZap(c.Level(), stderr)
		return logger, logger.Flush, nil
	}

	file, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := log.NewZap(c.Level(), stderr, file)
	return logger, func() error {
		return multierr.Combine(logger.Flush(), file.Close())
	}, nil
}

// OutputCompression returns the configured output compression
func (c *Config) OutputCompression() compression.Kind {
	kind, err := compression.Parse(c.Compression)
	if err != nil {
		return compression.None
	}
	return kind
}

// MessageSet loads the configured definitions, or the built-in set when
// none are given.
func (c *Config) MessageSet() (*mavlink.MessageSet, error) {
	messageSet := mavlink.NewMessageSet()
	if len(c.Definitions) == 0 {
		if err := messageSet.LoadBuiltin(); err != nil {
			return nil, err
		}
		return messageSet, nil
	}
	for _, definition := range c.Definitions {
		if err := messageSet.AddFromXML(definition); err != nil {
			return nil, err
		}
	}
	return messageSet, nil
}

// StreamOptions returns the stream settings derived from the config
func (c *Config) StreamOptions(logger log.Logger) []stream.Option {
	return []stream.Option{
		stream.WithLogger(logger),
		stream.WithChunkSize(c.ChunkSize),
		stream.WithHighWatermark(c.HighWatermark),
		stream.WithIdentity(c.Identity()),
	}
}
