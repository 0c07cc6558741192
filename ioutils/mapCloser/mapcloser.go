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

// Package mapCloser tracks a set of io.Closer instances and closes all of
// them, once, when its owning context is cancelled or Close is called
// directly. The logger package uses it to guarantee hook file handles and
// aggregators are released when a logger is torn down.
package mapCloser

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"sync/atomic"

	libctx "github.com/FeatheredSystems/falcotcp/context"
)

// Closer manages a set of io.Closer instances and closes them together.
type Closer interface {
	// Add registers clo for later Close. A no-op once already closed.
	Add(clo ...io.Closer)
	// Get returns the currently registered closers, excluding nils.
	Get() []io.Closer
	// Len returns how many closers have been registered (including nils).
	Len() int
	// Clean discards registered closers without closing them.
	Clean()
	// Clone returns an independent Closer sharing this one's context.
	Clone() Closer
	// Close cancels the context and closes every registered closer, once.
	Close() error
}

type closer struct {
	closed *atomic.Bool
	cancel func()
	idx    *atomic.Uint64
	store  libctx.Config[uint64]
}

// New returns a Closer that auto-closes when ctx is done.
func New(ctx context.Context) Closer {
	x, cancel := context.WithCancel(ctx)

	c := &closer{
		cancel: cancel,
		idx:    new(atomic.Uint64),
		closed: new(atomic.Bool),
		store:  libctx.New[uint64](x),
	}

	go func() {
		<-c.store.Done()
		_ = c.Close()
	}()

	return c
}

func (o *closer) nextIdx() uint64 {
	return o.idx.Add(1)
}

func (o *closer) Add(clo ...io.Closer) {
	if o == nil || o.store == nil || o.store.Err() != nil {
		return
	}
	for _, c := range clo {
		o.store.Store(o.nextIdx(), c)
	}
}

func (o *closer) Get() []io.Closer {
	res := make([]io.Closer, 0)
	if o == nil || o.store == nil {
		return res
	}

	o.store.Walk(func(_ uint64, val interface{}) bool {
		if v, ok := val.(io.Closer); ok && v != nil {
			res = append(res, v)
		}
		return true
	})
	return res
}

func (o *closer) Len() int {
	i := o.idx.Load()
	if i > math.MaxInt {
		return math.MaxInt
	}
	return int(i)
}

func (o *closer) Clean() {
	if o == nil || o.store == nil || o.store.Err() != nil {
		return
	}
	o.idx.Store(0)
	o.store.Clean()
}

func (o *closer) Clone() Closer {
	if o == nil || o.store == nil || o.store.Err() != nil {
		return nil
	}

	idx := new(atomic.Uint64)
	idx.Store(o.idx.Load())

	closed := new(atomic.Bool)
	closed.Store(o.closed.Load())

	return &closer{
		closed: closed,
		cancel: o.cancel,
		idx:    idx,
		store:  o.store.Clone(nil),
	}
}

func (o *closer) Close() error {
	if o == nil {
		return fmt.Errorf("mapCloser: not initialized")
	}

	if !o.closed.CompareAndSwap(false, true) {
		return nil
	}
	if o.cancel != nil {
		defer o.cancel()
	}

	var errs []string
	for _, c := range o.Get() {
		if err := c.Close(); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, ", "))
	}
	return nil
}
