/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package aggregator serializes concurrent writers onto a single output
// function through a buffered channel drained by one goroutine. It backs
// logger/hookfile's shared log file writer, so two hooks pointed at the same
// path never interleave their writes.
package aggregator

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	libatm "github.com/FeatheredSystems/falcotcp/atomic"
	librun "github.com/FeatheredSystems/falcotcp/runner"
)

var (
	// ErrInvalidWriter is returned by New when Config.FctWriter is nil.
	ErrInvalidWriter = errors.New("invalid writer")
	// ErrStillRunning is returned by Start when the aggregator is already running.
	ErrStillRunning = errors.New("still running")
	// ErrClosedResources is returned by Write once the aggregator has stopped.
	ErrClosedResources = errors.New("closed resources")
)

// Config configures a new Aggregator.
type Config struct {
	// AsyncTimer schedules AsyncFct; zero disables it.
	AsyncTimer time.Duration
	// AsyncMax caps concurrent AsyncFct goroutines in flight; 0 means unlimited.
	AsyncMax int
	// AsyncFct runs off the main loop at every AsyncTimer tick.
	AsyncFct func(ctx context.Context)
	// SyncTimer schedules SyncFct; zero disables it.
	SyncTimer time.Duration
	// SyncFct runs on the main loop at every SyncTimer tick, blocking writes.
	SyncFct func(ctx context.Context)
	// BufWriter sizes the write channel; <= 0 defaults to 1.
	BufWriter int
	// FctWriter receives each queued write. Required.
	FctWriter func(p []byte) (n int, err error)
}

// Aggregator serializes writes onto Config.FctWriter from a single goroutine.
type Aggregator interface {
	context.Context
	io.Writer
	io.Closer

	// SetLoggerError installs the callback used to report write/async errors.
	SetLoggerError(func(msg string, err ...error))
	// Start launches the processing goroutine. Safe to call once per instance.
	Start(ctx context.Context) error
}

type agg struct {
	parent context.Context
	cancel context.CancelFunc

	err libatm.Value[error]
	le  libatm.Value[func(msg string, err ...error)]

	asyncTimer time.Duration
	asyncMax   int
	asyncFct   func(ctx context.Context)

	syncTimer time.Duration
	syncFct   func(ctx context.Context)

	fw func(p []byte) (n int, err error)
	ch chan []byte

	running *atomic.Bool
	done    chan struct{}
	once    sync.Once
}

// New builds an Aggregator bound to ctx (context.Background() when nil).
// It does not start the processing goroutine; call Start for that.
func New(ctx context.Context, cfg Config) (Aggregator, error) {
	if cfg.FctWriter == nil {
		return nil, ErrInvalidWriter
	}
	if ctx == nil {
		ctx = context.Background()
	}

	buf := cfg.BufWriter
	if buf <= 0 {
		buf = 1
	}

	a := &agg{
		err:        libatm.NewValue[error](),
		le:         libatm.NewValue[func(msg string, err ...error)](),
		asyncTimer: cfg.AsyncTimer,
		asyncMax:   cfg.AsyncMax,
		asyncFct:   cfg.AsyncFct,
		syncTimer:  cfg.SyncTimer,
		syncFct:    cfg.SyncFct,
		fw:         cfg.FctWriter,
		ch:         make(chan []byte, buf),
		running:    new(atomic.Bool),
		done:       make(chan struct{}),
	}
	a.parent, a.cancel = context.WithCancel(ctx)
	a.SetLoggerError(nil)

	return a, nil
}

func (o *agg) SetLoggerError(f func(msg string, err ...error)) {
	if f == nil {
		f = func(msg string, err ...error) {}
	}
	o.le.Store(f)
}

func (o *agg) logError(msg string, err error) {
	if err == nil {
		return
	}
	if f := o.le.Load(); f != nil {
		f(msg, err)
	}
}

// Write queues p for the writer goroutine. It blocks when the internal
// buffer is full and returns ErrClosedResources once the aggregator stopped.
func (o *agg) Write(p []byte) (n int, err error) {
	defer func() {
		librun.RecoveryCaller("ioutils/aggregator/write", recover())
	}()

	if len(p) == 0 {
		return 0, nil
	}
	if !o.running.Load() {
		return 0, ErrClosedResources
	}

	cp := make([]byte, len(p))
	copy(cp, p)

	select {
	case o.ch <- cp:
		return len(p), nil
	case <-o.parent.Done():
		return 0, ErrClosedResources
	}
}

// Start launches the single writer goroutine. ErrStillRunning guards against
// a second call on an already-running instance.
func (o *agg) Start(ctx context.Context) error {
	if !o.running.CompareAndSwap(false, true) {
		return ErrStillRunning
	}

	go o.run()

	return nil
}

func (o *agg) run() {
	defer func() {
		librun.RecoveryCaller("ioutils/aggregator/run", recover())
		o.running.Store(false)
		close(o.done)
	}()

	asyncTick := disabledTicker(o.asyncTimer)
	syncTick := disabledTicker(o.syncTimer)
	defer asyncTick.Stop()
	defer syncTick.Stop()

	var asyncInFlight atomic.Int32

	for {
		select {
		case <-o.parent.Done():
			o.err.Store(o.parent.Err())
			o.drain()
			return

		case <-asyncTick.C:
			if o.asyncFct == nil {
				continue
			}
			if o.asyncMax > 0 && int(asyncInFlight.Load()) >= o.asyncMax {
				continue
			}
			asyncInFlight.Add(1)
			go func() {
				defer asyncInFlight.Add(-1)
				defer func() { librun.RecoveryCaller("ioutils/aggregator/async", recover()) }()
				o.asyncFct(o.parent)
			}()

		case <-syncTick.C:
			if o.syncFct != nil {
				func() {
					defer func() { librun.RecoveryCaller("ioutils/aggregator/sync", recover()) }()
					o.syncFct(o.parent)
				}()
			}

		case p := <-o.ch:
			_, e := o.fw(p)
			o.logError("error writing data", e)
		}
	}
}

// drain flushes whatever is still queued after cancellation, best effort.
func (o *agg) drain() {
	for {
		select {
		case p := <-o.ch:
			_, e := o.fw(p)
			o.logError("error writing data", e)
		default:
			return
		}
	}
}

func disabledTicker(d time.Duration) *time.Ticker {
	if d <= 0 {
		d = time.Hour * 24 * 365
	}
	return time.NewTicker(d)
}

// Close cancels the aggregator and waits briefly for the writer goroutine to
// drain and exit. Idempotent.
func (o *agg) Close() error {
	o.once.Do(func() {
		o.cancel()
		select {
		case <-o.done:
		case <-time.After(100 * time.Millisecond):
		}
	})
	return o.Err()
}

func (o *agg) Deadline() (deadline time.Time, ok bool) { return o.parent.Deadline() }
func (o *agg) Done() <-chan struct{}                   { return o.parent.Done() }
func (o *agg) Err() error {
	if e := o.err.Load(); e != nil {
		return e
	}
	return o.parent.Err()
}
func (o *agg) Value(key any) any { return o.parent.Value(key) }
