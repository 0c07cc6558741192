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

// Package context provides a generic, context.Context-compatible key/value
// store keyed by a comparable type parameter. It backs per-connection and
// per-hook scratch state across the logger and duration packages without
// forcing every caller onto a single concrete key type.
package context

import (
	"context"

	libatm "github.com/FeatheredSystems/falcotcp/atomic"
)

type FuncWalk[T comparable] func(key T, val interface{}) bool

type MapManage[T comparable] interface {
	// Clean removes all key/value pairs, leaving the map empty.
	Clean()
	// Load returns the value stored under key, if any.
	Load(key T) (val interface{}, ok bool)
	// Store saves val under key, overwriting any previous value.
	Store(key T, cfg interface{})
	// Delete removes the value stored under key, if any.
	Delete(key T)
}

type Context interface {
	// GetContext returns the context.Context wrapped by this Config.
	GetContext() context.Context
}

// Config composes context.Context with a concurrent-safe key/value map keyed
// by T. It is used wherever a component needs to carry cancellation alongside
// scoped state, without introducing a dependency on any one key type.
type Config[T comparable] interface {
	context.Context
	MapManage[T]
	Context

	// Clone returns an independent copy sharing no storage with the original.
	// If ctx is nil the clone reuses the original's context.
	Clone(ctx context.Context) Config[T]
	// Merge copies every entry from cfg into the receiver.
	Merge(cfg Config[T]) bool
	// Walk visits every stored entry until fct returns false.
	Walk(fct FuncWalk[T])
	// WalkLimit visits only entries whose key is in validKeys (or every entry
	// when validKeys is empty).
	WalkLimit(fct FuncWalk[T], validKeys ...T)

	// LoadOrStore loads the existing value for key, or stores cfg if absent.
	LoadOrStore(key T, cfg interface{}) (val interface{}, loaded bool)
	// LoadAndDelete loads and removes the value stored under key.
	LoadAndDelete(key T) (val interface{}, loaded bool)
}

// New builds a Config wrapping ctx (context.Background() when nil).
func New[T comparable](ctx context.Context) Config[T] {
	if ctx == nil {
		ctx = context.Background()
	}

	return &ccx[T]{
		m: libatm.NewMapAny[T](),
		x: ctx,
	}
}
