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
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/atomic"

	"github.com/tochemey/mavkit/log"
)

// Trap records the shutdown signal delivered to the process
type Trap struct {
	notifier chan os.Signal
	cancel   context.CancelFunc
	received *atomic.Int32
	done     chan struct{}
}

// HandleSignals returns a context cancelled when the process receives SIGINT
// or SIGTERM, or when parent is done. Call Stop to release the handler.
func HandleSignals(parent context.Context, logger log.Logger) (context.Context, *Trap) {
	ctx, cancel := context.WithCancel(parent)
	trap := &Trap{
		notifier: make(chan os.Signal, 1),
		cancel:   cancel,
		received: atomic.NewInt32(0),
		done:     make(chan struct{}),
	}
	signal.Notify(trap.notifier, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer close(trap.done)
		select {
		case sig := <-trap.notifier:
			logger.Infof("received signal (%s)", sig.String())
			if number, ok := sig.(syscall.Signal); ok {
				trap.received.Store(int32(number))
			}
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, trap
}

// Signal returns the number of the signal received, or 0
func (t *Trap) Signal() int {
	return int(t.received.Load())
}

// Stop unregisters the handler and cancels the context
func (t *Trap) Stop() {
	signal.Stop(t.notifier)
	t.cancel()
	<-t.done
}
