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

package osutil

import (
	"context"
	"runtime"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/mavkit/log"
)

func TestHandleSignals(t *testing.T) {
	t.Run("With signals", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("Skipping on windows")
		}
		signals := []syscall.Signal{
			syscall.SIGINT,
			syscall.SIGTERM,
		}

		for _, sig := range signals {
			ctx, trap := HandleSignals(context.Background(), log.DiscardLogger)
			require.NoError(t, syscall.Kill(syscall.Getpid(), sig))

			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
				t.Fatalf("timeout waiting for %v", sig)
			}
			assert.Equal(t, int(sig), trap.Signal())
			trap.Stop()
		}
	})
	t.Run("With cancellation", func(t *testing.T) {
		parent, cancel := context.WithCancel(context.Background())
		ctx, trap := HandleSignals(parent, log.DiscardLogger)
		cancel()

		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for cancellation")
		}
		trap.Stop()
		assert.Zero(t, trap.Signal())
	})
	t.Run("Stop twice", func(t *testing.T) {
		ctx, trap := HandleSignals(context.Background(), log.DiscardLogger)
		trap.Stop()
		trap.Stop()
		assert.Error(t, ctx.Err())
	})
}
