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

package pool

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	libtls "github.com/FeatheredSystems/falcotcp/certificates"
	"github.com/FeatheredSystems/falcotcp/compress"
	liberr "github.com/FeatheredSystems/falcotcp/errors"
	"github.com/FeatheredSystems/falcotcp/frame"
	"github.com/FeatheredSystems/falcotcp/metrics"
	"github.com/FeatheredSystems/falcotcp/pipeline"
	"github.com/prometheus/client_golang/prometheus"
)

// Config describes the pool's fixed endpoint and per-request behavior.
type Config struct {
	Address     string
	Size        int
	TLS         libtls.TLSConfig // nil disables TLS
	ServerName  string
	DialTimeout time.Duration

	// MaxMitigation bounds how many broken-pipe mitigations a single Do
	// call will absorb before surfacing the underlying error. Defaults
	// to 1: one mitigation per request.
	MaxMitigation int

	Pipeline pipeline.Config
}

func (c *Config) validate() error {
	if c.Address == "" {
		return liberr.ErrInvalidConfiguration.Error()
	}
	if c.Size <= 0 {
		return liberr.ErrInvalidConfiguration.Error()
	}
	if c.MaxMitigation <= 0 {
		c.MaxMitigation = 1
	}
	return nil
}

// Pool holds Size persistent client sockets under shared read / exclusive
// write ownership: selecting an entry only needs the pool's read lock,
// mitigation (removing and replacing an entry) takes the write lock.
type Pool struct {
	cfg  Config
	pipe *pipeline.Pipeline
	start int64 // monotonic anchor for the time-based selection index

	mu      sync.RWMutex
	entries []*entry

	timeout atomic.Int64 // nanoseconds; 0 means no per-request deadline

	metrics *metrics.PoolMetrics // nil unless RegisterMetrics was called
}

// RegisterMetrics registers this pool's counters on reg and starts feeding
// them from every subsequent Do call. Calling it more than once panics via
// prometheus's duplicate-registration guard, matching the SDK's own
// contract for MustRegister.
func (p *Pool) RegisterMetrics(reg prometheus.Registerer) {
	p.metrics = metrics.NewPoolMetrics(reg)
	p.metrics.Size.Set(float64(p.Len()))
}

// New dials Size connections to cfg.Address and returns a ready Pool. If any
// initial dial fails, every connection already opened is closed and the
// error is returned - a pool either starts fully populated or not at all.
func New(ctx context.Context, cfg Config) (*Pool, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	p := &Pool{cfg: cfg, pipe: pipeline.New(cfg.Pipeline), start: time.Now().UnixNano()}

	entries := make([]*entry, 0, cfg.Size)
	for i := 0; i < cfg.Size; i++ {
		e, err := dialEntry(ctx, cfg.Address, cfg.TLS, cfg.ServerName, cfg.DialTimeout)
		if err != nil {
			for _, prior := range entries {
				_ = prior.cli.Close()
			}
			return nil, err
		}
		entries = append(entries, e)
	}

	p.entries = entries
	return p, nil
}

// Len returns the current number of live entries.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

// SetTimeout changes the per-request timeout applied to every live handle
// immediately - there is a single shared value, not a per-entry one.
func (p *Pool) SetTimeout(d time.Duration) {
	p.timeout.Store(int64(d))
}

// index picks a pool slot via a cheap, approximately uniform spread: the
// monotonic elapsed time since the pool was built, modulo the entry count.
// No shared counter is needed, and every entry gets roughly equal traffic
// under steady load.
func (p *Pool) index(n int) int {
	elapsed := time.Now().UnixNano() - p.start
	return int(elapsed % int64(n))
}

// Do sends plaintext through the pipeline and frame codec on a pool entry
// and returns the decoded plaintext response. A broken-pipe failure
// triggers one mitigation (bounded by Config.MaxMitigation) before the
// error is surfaced to the caller.
func (p *Pool) Do(ctx context.Context, plaintext []byte) ([]byte, error) {
	return p.do(ctx, plaintext, p.cfg.MaxMitigation)
}

func (p *Pool) do(ctx context.Context, plaintext []byte, retriesLeft int) ([]byte, error) {
	p.mu.RLock()
	n := len(p.entries)
	if n == 0 {
		p.mu.RUnlock()
		return nil, liberr.ErrPoolExhausted.Error()
	}
	idx := p.index(n)
	e := p.entries[idx]
	p.mu.RUnlock()

	e.mu.Lock()
	resp, err := p.roundTrip(ctx, e, plaintext)
	e.mu.Unlock()

	if err == nil {
		if p.metrics != nil {
			p.metrics.RoundTrips.Inc()
		}
		return resp, nil
	}
	if !isBrokenPipe(err) {
		return nil, err
	}
	if retriesLeft <= 0 {
		if p.metrics != nil {
			p.metrics.Exhausted.Inc()
		}
		return nil, err
	}

	if mitErr := p.mitigate(ctx, idx, e); mitErr != nil {
		return nil, mitErr
	}
	if p.metrics != nil {
		p.metrics.Mitigated.Inc()
	}
	return p.do(ctx, plaintext, retriesLeft-1)
}

// roundTrip runs one full request/response cycle on e, bounded by the
// pool's current timeout if one is set. A timeout aborts by closing the
// connection and returns ErrTimeout. ErrTimeout is not a broken pipe, so the
// timed-out request is not mitigated; the closed entry is replaced when a
// later request fails on it.
func (p *Pool) roundTrip(ctx context.Context, e *entry, plaintext []byte) ([]byte, error) {
	body, tag, err := p.pipe.Send(plaintext)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(p.timeout.Load())
	if timeout <= 0 {
		return p.roundTripFrame(e, body, tag)
	}

	type result struct {
		resp []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := p.roundTripFrame(e, body, tag)
		done <- result{resp, err}
	}()

	select {
	case r := <-done:
		return r.resp, r.err
	case <-time.After(timeout):
		_ = e.cli.Close()
		return nil, liberr.ErrTimeout.Error()
	case <-ctx.Done():
		_ = e.cli.Close()
		return nil, liberr.ErrTimeout.Error(ctx.Err())
	}
}

// roundTripFrame writes one framed request and reads its framed response on
// e's connection, then runs the response through the pipeline in reverse.
// This is C4's request lifecycle: compose header‖body, write it in full,
// read 9 header bytes, read exactly header.Size body bytes.
func (p *Pool) roundTripFrame(e *entry, body []byte, tag compress.Algorithm) ([]byte, error) {
	if err := frame.WriteFrame(e.cli, tag, body); err != nil {
		return nil, err
	}

	h, respBody, err := frame.ReadFrame(e.cli)
	if err != nil {
		return nil, err
	}

	return p.pipe.Receive(respBody, h.Compression)
}

func isBrokenPipe(err error) bool {
	return err == io.EOF || liberr.Has(err, liberr.ErrIoFailed) || liberr.Has(err, liberr.ErrShortRead)
}

// mitigate evicts the entry at idx by swap-with-last (pool order is not
// observable) and dials a fresh replacement, appending it back. The pool
// shrinks permanently only when dialing the replacement itself fails.
func (p *Pool) mitigate(ctx context.Context, idx int, dead *entry) error {
	p.mu.Lock()
	// The entry may have already been evicted by a concurrent mitigation
	// racing on the same slot; only remove it if it is still there.
	pos := -1
	for i, e := range p.entries {
		if e == dead {
			pos = i
			break
		}
	}
	if pos >= 0 {
		last := len(p.entries) - 1
		p.entries[pos] = p.entries[last]
		p.entries = p.entries[:last]
	}
	p.mu.Unlock()

	_ = dead.cli.Close()

	fresh, err := dialEntry(ctx, p.cfg.Address, p.cfg.TLS, p.cfg.ServerName, p.cfg.DialTimeout)
	if err != nil {
		return liberr.ErrPoolExhausted.Error(err)
	}

	p.mu.Lock()
	p.entries = append(p.entries, fresh)
	n := len(p.entries)
	p.mu.Unlock()

	if p.metrics != nil {
		p.metrics.Size.Set(float64(n))
	}

	_ = idx // idx only identified the now-evicted slot; new placement is append order
	return nil
}

// Close releases every live entry.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var firstErr error
	for _, e := range p.entries {
		if err := e.cli.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.entries = nil
	return firstErr
}
