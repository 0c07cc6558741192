/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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
 *
 */

// Package atomic is the generic-type layer under every piece of shared
// mutable state falcotcp touches from more than one goroutine without a
// dedicated lock: the last-error/last-event slots an ioutils aggregator
// hands to its callback (Value[T]), the per-key typed maps the hookfile and
// hooksyslog aggregators keep refcounts in and a reactor's context.Context
// values flow through (MapTyped, Map). It exists because sync/atomic.Value
// and sync.Map only traffic in any - Cast and IsEmpty recover the typed
// zero-value semantics callers actually want on top of them.
package atomic

import (
	"sync"
	"sync/atomic"
)

// Value is a typed, concurrency-safe slot over sync/atomic.Value, with a
// configurable fallback for Load before the first Store and for Store
// calls that pass the zero value of T.
type Value[T any] interface {
	// SetDefaultLoad sets the value Load returns before anything has been
	// stored. Call it before first use.
	SetDefaultLoad(def T)
	// SetDefaultStore sets the value substituted whenever Store, Swap, or
	// CompareAndSwap is given the zero value of T. Call it before first use.
	SetDefaultStore(def T)

	// Load returns the current value, or the default load value if nothing
	// has been stored yet.
	Load() (val T)
	// Store sets the value, substituting the default store value if val is
	// the zero value of T.
	Store(val T)
	// Swap stores new and returns the previous value, substituting the
	// default store value for a zero new and the default load value for a
	// zero previous.
	Swap(new T) (old T)
	// CompareAndSwap swaps old for new iff the current value equals old,
	// substituting the default store value for either side if it is zero.
	CompareAndSwap(old, new T) (swapped bool)
}

// Map is a sync.Map with a comparable key type and untyped values, the
// shape context.Context's value store needs: keys are the type used to
// namespace a package's context keys, values carry whatever that package
// stashed there.
type Map[K comparable] interface {
	// Load returns the value stored for key, and whether it was present.
	Load(key K) (value any, ok bool)
	// Store sets the value for key, overwriting any existing value.
	Store(key K, value any)

	// LoadOrStore returns the existing value for key if present, otherwise
	// stores and returns value. loaded reports which case occurred.
	LoadOrStore(key K, value any) (actual any, loaded bool)
	// LoadAndDelete removes key and returns its prior value, if any.
	LoadAndDelete(key K) (value any, loaded bool)

	// Delete removes key.
	Delete(key K)
	// Swap stores value for key and returns the value it replaced.
	Swap(key K, value any) (previous any, loaded bool)

	// CompareAndSwap stores new for key iff the current value equals old.
	CompareAndSwap(key K, old, new any) bool
	// CompareAndDelete removes key iff its current value equals old.
	CompareAndDelete(key K, old any) (deleted bool)

	// Range calls f for every key, in unspecified order, stopping early if
	// f returns false.
	Range(f func(key K, value any) bool)
}

// MapTyped is Map with typed values instead of any - the shape the
// hookfile and hooksyslog aggregators use to keep one refcounted entry per
// destination path/address, and socket/client/tcp tests use to track
// live connections by ID without a type assertion at every call site.
// Values that fail the type assertion on Range are treated as corrupt and
// evicted rather than surfaced.
type MapTyped[K comparable, V any] interface {
	// Load returns the value stored for key, and whether it was present.
	Load(key K) (value V, ok bool)
	// Store sets the value for key, overwriting any existing value.
	Store(key K, value V)

	// LoadOrStore returns the existing value for key if present, otherwise
	// stores and returns value. loaded reports which case occurred.
	LoadOrStore(key K, value V) (actual V, loaded bool)
	// LoadAndDelete removes key and returns its prior value, if any.
	LoadAndDelete(key K) (value V, loaded bool)

	// Delete removes key.
	Delete(key K)
	// Swap stores value for key and returns the value it replaced.
	Swap(key K, value V) (previous V, loaded bool)

	// CompareAndSwap stores new for key iff the current value equals old.
	CompareAndSwap(key K, old, new V) bool
	// CompareAndDelete removes key iff its current value equals old.
	CompareAndDelete(key K, old V) (deleted bool)

	// Range calls f for every key, in unspecified order, stopping early if
	// f returns false. A value that fails its type assertion against V is
	// evicted instead of passed to f.
	Range(f func(key K, value V) bool)
}

// NewValue returns a Value[T] with both defaults set to the zero value of T -
// what an ioutils aggregator wants for a last-error/last-event slot that
// starts out genuinely empty.
func NewValue[T any]() Value[T] {
	var (
		tmp1 T
		tmp2 T
	)

	return NewValueDefault[T](tmp1, tmp2)
}

// NewValueDefault returns a Value[T] with explicit load and store defaults.
func NewValueDefault[T any](load, store T) Value[T] {
	o := &val[T]{
		av: new(atomic.Value),
		dl: new(atomic.Value),
		ds: new(atomic.Value),
	}

	o.SetDefaultLoad(load)
	o.SetDefaultStore(store)

	return o
}

// NewMapAny returns a Map[K] backed by a sync.Map - what context.Context's
// value store keeps its per-package namespaces in.
func NewMapAny[K comparable]() Map[K] {
	return &ma[K]{
		m: sync.Map{},
	}
}

// NewMapTyped returns a MapTyped[K, V] backed by a sync.Map, for callers
// that would otherwise type-assert every value out of a Map[K] themselves.
func NewMapTyped[K comparable, V any]() MapTyped[K, V] {
	return &mt[K, V]{
		m: NewMapAny[K](),
	}
}
