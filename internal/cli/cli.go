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

// Package cli builds the mavdecode and mavencode commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tochemey/mavkit/config"
	"github.com/tochemey/mavkit/internal/compression"
	"github.com/tochemey/mavkit/internal/iox"
	"github.com/tochemey/mavkit/internal/osutil"
	"github.com/tochemey/mavkit/jsonmsg"
	"github.com/tochemey/mavkit/log"
	"github.com/tochemey/mavkit/mavlink"
)

// ExitError carries the process exit code of a failed run
type ExitError struct {
	Code int
	err  error
}

var _ error = (*ExitError)(nil)

// Error implements the standard error interface
func (e *ExitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.err.Error()
}

// Unwrap returns the cause
func (e *ExitError) Unwrap() error {
	return e.err
}

// Execute runs the command and returns the process exit code
func Execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	// flag and argument errors never reach the logger
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	return 1
}

// streamRunner is satisfied by stream.Decoder and stream.Encoder
type streamRunner interface {
	Run(ctx context.Context, r io.Reader, w io.Writer) error
}

// flags holds the command line settings shared by both commands
type flags struct {
	configFile    string
	definitions   []string
	output        string
	logLevel      string
	logFile       string
	compression   string
	chunkSize     int
	highWatermark int
	systemID      int
	componentID   int
}

func (f *flags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.configFile, "config", "", "YAML configuration file")
	fs.StringArrayVarP(&f.definitions, "definitions", "x", nil, "MAVLink XML definition file, repeatable (default: built-in set)")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: standard output)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&f.logFile, "log-file", "", "file that receives a copy of the logs")
	fs.StringVar(&f.compression, "compress", "", "output compression: "+strings.Join(compression.Names(), ", "))
	fs.IntVar(&f.chunkSize, "chunk-size", 0, "number of bytes read from the input at a time")
	fs.IntVar(&f.highWatermark, "high-watermark", 0, "buffered bytes above which reading pauses")
}

func (f *flags) registerIdentity(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&f.systemID, "system-id", 0, "system id stamped on frames that carry none")
	fs.IntVar(&f.componentID, "component-id", 0, "component id stamped on frames that carry none")
}

// config merges the configuration file with the flags that were set
func (f *flags) config(cmd *cobra.Command) (*config.Config, error) {
	fs := cmd.Flags()
	options := []config.Option{config.WithDefinitions(f.definitions...)}
	if fs.Changed("log-level") {
		options = append(options, config.WithLogLevel(f.logLevel))
	}
	if fs.Changed("log-file") {
		options = append(options, config.WithLogFile(f.logFile))
	}
	if fs.Changed("compress") {
		options = append(options, config.WithCompression(f.compression))
	}
	if fs.Changed("chunk-size") {
		options = append(options, config.WithChunkSize(f.chunkSize))
	}
	if fs.Changed("high-watermark") {
		options = append(options, config.WithHighWatermark(f.highWatermark))
	}
	if fs.Lookup("system-id") != nil && fs.Changed("system-id") {
		options = append(options, config.OptionFunc(func(c *config.Config) { c.SystemID = f.systemID }))
	}
	if fs.Lookup("component-id") != nil && fs.Changed("component-id") {
		options = append(options, config.OptionFunc(func(c *config.Config) { c.ComponentID = f.componentID }))
	}

	if f.configFile != "" {
		return config.Load(f.configFile, options...)
	}
	return config.New(options...)
}

// run wires the configuration, the message set, the streams and the signal
// handler around a decoder or an encoder.
func run(cmd *cobra.Command, args []string, f *flags, newRunner func(*mavlink.MessageSet, *config.Config, log.Logger) streamRunner) error {
	cfg, err := f.config(cmd)
	if err != nil {
		logger := log.NewZap(log.InfoLevel, cmd.ErrOrStderr())
		logger.Errorf("invalid configuration: %v", err)
		_ = logger.Flush()
		return &ExitError{Code: 1, err: err}
	}

	logger, closeLog, err := cfg.Logger(cmd.ErrOrStderr())
	if err != nil {
		fallback := log.NewZap(log.InfoLevel, cmd.ErrOrStderr())
		fallback.Errorf("invalid configuration: %v", err)
		_ = fallback.Flush()
		return &ExitError{Code: 1, err: err}
	}
	defer func() { _ = closeLog() }()

	messageSet, err := cfg.MessageSet()
	if err != nil {
		logger.Errorf("failed to load message definitions: %v", err)
		return &ExitError{Code: 1, err: err}
	}
	if logger.Enabled(log.InfoLevel) {
		logger.Infof("loaded %d message types from %s (fingerprint %016x)",
			messageSet.Len(), describeDefinitions(cfg.Definitions), messageSet.Fingerprint())
	}

	source, err := openInput(cmd, args)
	if err != nil {
		logger.Errorf("failed to open input: %v", err)
		return &ExitError{Code: 1, err: err}
	}
	defer func() { _ = source.Release() }()

	sink, err := createOutput(cmd, f.output, cfg.OutputCompression())
	if err != nil {
		logger.Errorf("failed to open output: %v", err)
		return &ExitError{Code: 1, err: err}
	}
	logger.Infof("reading from %s, writing to %s", source.Name(), sink.Name())

	ctx, trap := osutil.HandleSignals(cmd.Context(), logger)
	defer trap.Stop()

	runErr := newRunner(messageSet, cfg, logger).Run(ctx, source, sink)
	if err := sink.Close(); err != nil && runErr == nil {
		logger.Errorf("failed to close output: %v", err)
		runErr = err
	}
	logger.Debugf("input compression: %s", source.Compression())
	return exitStatus(trap.Signal(), runErr)
}

// exitStatus maps the outcome of a run to its exit code: the signal number
// when interrupted by a signal, the parse error code for malformed JSON and
// 1 for anything else.
func exitStatus(signal int, err error) error {
	if signal != 0 {
		return &ExitError{Code: signal, err: err}
	}
	if err == nil {
		return nil
	}
	var parseErr *jsonmsg.ParseError
	if errors.As(err, &parseErr) && parseErr.Code != jsonmsg.ParseErrorNone {
		return &ExitError{Code: int(parseErr.Code), err: err}
	}
	return &ExitError{Code: 1, err: err}
}

func openInput(cmd *cobra.Command, args []string) (*iox.Source, error) {
	name := iox.Stdio
	if len(args) > 0 {
		name = args[0]
	}
	if name != iox.Stdio && name != "" {
		return iox.Open(name)
	}
	in := cmd.InOrStdin()
	if file, ok := in.(*os.File); ok {
		return iox.FromFile("stdin", file), nil
	}
	closer, _ := in.(io.Closer)
	return iox.NewSource("stdin", in, closer), nil
}

func createOutput(cmd *cobra.Command, name string, kind compression.Kind) (*iox.Sink, error) {
	if name != iox.Stdio && name != "" {
		return iox.Create(name, kind)
	}
	return iox.NewSink("stdout", cmd.OutOrStdout(), nil, kind)
}

func describeDefinitions(definitions []string) string {
	if len(definitions) == 0 {
		return "built-in definitions"
	}
	return strings.Join(definitions, ", ")
}
