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

package cli

import (
	"github.com/spf13/cobra"

	"github.com/tochemey/mavkit/config"
	"github.com/tochemey/mavkit/log"
	"github.com/tochemey/mavkit/mavlink"
	"github.com/tochemey/mavkit/stream"
)

// NewDecodeCommand returns the mavdecode command: MAVLink frames in, one
// JSON object per line out.
func NewDecodeCommand() *cobra.Command {
	f := new(flags)
	cmd := &cobra.Command{
		Use:   "mavdecode [file|-]",
		Short: "Decode a MAVLink byte stream into JSON lines",
		Long: `mavdecode reads MAVLink v1 and v2 frames from a file or standard input and
writes one JSON object per decoded message. Corrupt frames and unknown message
ids are reported on standard error and skipped.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f, func(messageSet *mavlink.MessageSet, cfg *config.Config, logger log.Logger) streamRunner {
				return stream.NewDecoder(messageSet, cfg.StreamOptions(logger)...)
			})
		},
	}
	f.register(cmd)
	return cmd
}

// NewEncodeCommand returns the mavencode command: a stream of JSON objects
// in, MAVLink v2 frames out.
func NewEncodeCommand() *cobra.Command {
	f := new(flags)
	cmd := &cobra.Command{
		Use:   "mavencode [file|-]",
		Short: "Encode JSON objects into MAVLink v2 frames",
		Long: `mavencode reads a stream of JSON objects from a file or standard input and
writes one MAVLink v2 frame per object. Members that cannot be encoded are
reported on standard error and skipped. Malformed JSON stops the run and the
parse error code becomes the exit status.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f, func(messageSet *mavlink.MessageSet, cfg *config.Config, logger log.Logger) streamRunner {
				return stream.NewEncoder(messageSet, cfg.StreamOptions(logger)...)
			})
		},
	}
	f.register(cmd)
	f.registerIdentity(cmd)
	return cmd
}
