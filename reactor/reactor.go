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

package reactor

import (
	"context"
	"crypto/tls"
	"net"
	"sync"
	"sync/atomic"
	"time"

	libsck "github.com/FeatheredSystems/falcotcp/socket"

	liberr "github.com/FeatheredSystems/falcotcp/errors"
	"github.com/FeatheredSystems/falcotcp/frame"
	libmet "github.com/FeatheredSystems/falcotcp/metrics"
	"github.com/FeatheredSystems/falcotcp/pipeline"
	"github.com/prometheus/client_golang/prometheus"
)

// completion is what a submitted operation's goroutine posts back once it
// finishes. conn is only set by opAccept; n/body are only meaningful for
// opRecvHeader/opRecvBody.
type completion struct {
	tag  uint64
	n    int
	err  error
	conn net.Conn
	body []byte
}

// Reactor is FalcoTCP's completion-based server engine (C6). A single
// completions channel stands in for the kernel completion queue: every
// submitted operation posts exactly one completion, Run drains them, and a
// coarse mutex guards the record table, the author log and slot allocation.
type Reactor struct {
	cfg  Config
	pipe *pipeline.Pipeline

	mu         sync.Mutex
	records    []*record
	generation []uint32

	listener net.Listener
	running  atomic.Bool
	nextID   atomic.Uint64

	completions chan completion

	funcErr  atomic.Pointer[libsck.FuncError]
	funcInfo atomic.Pointer[libsck.FuncInfo]

	mitigated atomic.Uint64 // overflow-accept counter, exposed via Stats
}

// Stats is a point-in-time snapshot of the reactor's occupancy.
type Stats struct {
	MaxClients       int
	OpenClients      int
	OverflowRejected uint64
}

// New validates cfg and builds a Reactor ready for Run. It never dials or
// listens.
func New(cfg Config) (*Reactor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Reactor{
		cfg:         cfg,
		pipe:        pipeline.New(cfg.Pipeline),
		records:     make([]*record, cfg.MaxClients),
		generation:  make([]uint32, cfg.MaxClients),
		completions: make(chan completion, cfg.MaxClients*4+16),
	}
	return r, nil
}

func (r *Reactor) RegisterFuncError(fct libsck.FuncError) { r.funcErr.Store(&fct) }
func (r *Reactor) RegisterFuncInfo(fct libsck.FuncInfo)    { r.funcInfo.Store(&fct) }

// RegisterMetrics registers a Prometheus collector on reg that samples this
// reactor's Stats on every scrape.
func (r *Reactor) RegisterMetrics(reg prometheus.Registerer) error {
	return reg.Register(libmet.NewReactorCollector(func() libmet.ReactorStats {
		s := r.Stats()
		return libmet.ReactorStats(s)
	}))
}

func (r *Reactor) emitError(err error) {
	err = libsck.ErrorFilter(err)
	if err == nil {
		return
	}
	if fn := r.funcErr.Load(); fn != nil && *fn != nil {
		(*fn)(err)
	}
}

func (r *Reactor) emitInfo(local, remote net.Addr, state libsck.ConnState) {
	if fn := r.funcInfo.Load(); fn != nil && *fn != nil {
		(*fn)(local, remote, state)
	}
}

// Stats returns the current occupancy of the record table.
func (r *Reactor) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	open := 0
	for _, rec := range r.records {
		if rec != nil {
			open++
		}
	}
	return Stats{MaxClients: r.cfg.MaxClients, OpenClients: open, OverflowRejected: r.mitigated.Load()}
}

// IsRunning reports whether Run's accept loop is live.
func (r *Reactor) IsRunning() bool { return r.running.Load() }

func (r *Reactor) bind() (net.Listener, error) {
	lst, err := net.Listen(r.cfg.Network.String(), r.cfg.Address)
	if err != nil {
		return nil, liberr.ErrIoFailed.Error(err)
	}
	if r.cfg.TLS != nil {
		std := r.cfg.TLS.TLS("")
		lst = tls.NewListener(lst, std)
	}
	return lst, nil
}

// Run binds the listener and drives the reactor until ctx is cancelled or
// Shutdown is called. One accept is always outstanding; every other
// submission is a goroutine posting a completion onto the shared channel.
// Each pass through the main select is one cycle: drain whatever
// completions are already queued, advance the affected records, sweep idle
// timeouts, and let already-submitted goroutines carry the next batch.
func (r *Reactor) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lst, err := r.bind()
	if err != nil {
		r.emitError(err)
		return err
	}

	r.mu.Lock()
	r.listener = lst
	r.mu.Unlock()
	r.running.Store(true)

	r.submitAccept()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	var loopErr error
loop:
	for {
		select {
		case <-ctx.Done():
			loopErr = ctx.Err()
			break loop
		case c := <-r.completions:
			r.handleCompletion(c)
			r.drainPending()
			r.sweepIdle()
		case <-ticker.C:
			r.sweepIdle()
		}
	}

	r.shutdownListener()
	r.running.Store(false)
	return loopErr
}

// drainPending processes every completion already queued without blocking,
// the "drain the completion queue" half of a cycle.
func (r *Reactor) drainPending() {
	for {
		select {
		case c := <-r.completions:
			r.handleCompletion(c)
		default:
			return
		}
	}
}

func (r *Reactor) shutdownListener() {
	r.mu.Lock()
	lst := r.listener
	r.listener = nil
	r.mu.Unlock()
	if lst != nil {
		_ = lst.Close()
	}
}

// Shutdown stops the listener and kills every open record, waiting for
// their close completions (or ctx) before returning.
func (r *Reactor) Shutdown(ctx context.Context) error {
	r.shutdownListener()

	r.mu.Lock()
	var victims []uint32
	for slot, rec := range r.records {
		if rec != nil {
			victims = append(victims, uint32(slot))
		}
	}
	r.mu.Unlock()

	for _, slot := range victims {
		r.mu.Lock()
		rec := r.records[slot]
		gen := r.generation[slot]
		r.mu.Unlock()
		if rec != nil {
			r.kill(rec, slot, gen)
		}
	}

	done := make(chan struct{})
	go func() {
		for {
			r.mu.Lock()
			remaining := 0
			for _, rec := range r.records {
				if rec != nil {
					remaining++
				}
			}
			r.mu.Unlock()
			if remaining == 0 {
				close(done)
				return
			}
			r.drainPending()
			time.Sleep(time.Millisecond)
		}
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// submitAccept keeps exactly one accept outstanding, per the design's
// "one submitted accept is always outstanding" rule.
func (r *Reactor) submitAccept() {
	r.mu.Lock()
	lst := r.listener
	r.mu.Unlock()
	if lst == nil {
		return
	}
	go func() {
		conn, err := lst.Accept()
		r.completions <- completion{tag: makeTag(0, 0, opAccept), conn: conn, err: err}
	}()
}

func (r *Reactor) handleCompletion(c completion) {
	generation, slot, op := decodeTag(c.tag)
	if op == opAccept {
		r.handleAccept(c)
		if r.running.Load() {
			r.submitAccept()
		}
		return
	}

	r.mu.Lock()
	rec := r.records[slot]
	valid := rec != nil && r.generation[slot] == generation
	r.mu.Unlock()
	if !valid {
		return // stale completion: slot was killed and reused since submit
	}

	switch op {
	case opRecvHeader:
		r.onHeaderRead(rec, slot, generation, c)
	case opRecvBody:
		r.onBodyRead(rec, slot, generation, c)
	case opWrite:
		r.onWriteComplete(rec, slot, generation, c)
	case opClose:
		r.onCloseComplete(slot, generation)
	}
}

func (r *Reactor) handleAccept(c completion) {
	if c.err != nil {
		r.emitError(c.err)
		return
	}
	conn := c.conn

	r.mu.Lock()
	slot := -1
	for i, rec := range r.records {
		if rec == nil {
			slot = i
			break
		}
	}
	if slot < 0 {
		r.mu.Unlock()
		r.mitigated.Add(1)
		_ = conn.Close()
		return
	}

	r.generation[slot]++
	gen := r.generation[slot]
	rec := &record{
		conn:         conn,
		id:           r.nextID.Add(1),
		state:        Idle,
		capacity:     r.cfg.BufferCapacity,
		lastActivity: time.Now(),
	}
	r.records[slot] = rec
	r.mu.Unlock()

	r.emitInfo(conn.LocalAddr(), conn.RemoteAddr(), libsck.ConnectionNew)
	r.submitRecvHeader(rec, uint32(slot), gen)
}

func (r *Reactor) submitRecvHeader(rec *record, slot, gen uint32) {
	r.mu.Lock()
	rec.state = HeadersReading
	r.mu.Unlock()

	go func() {
		h, err := frame.ReadHeader(rec.conn)
		r.completions <- headerCompletion(slot, gen, h, err)
	}()
}

func (r *Reactor) onHeaderRead(rec *record, slot, gen uint32, c completion) {
	r.mu.Lock()
	if rec.state == Kill {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	if c.err != nil {
		r.kill(rec, slot, gen)
		return
	}

	h, ok := decodeHeaderCompletion(c)
	if !ok {
		r.kill(rec, slot, gen)
		return
	}
	if h.Size > uint64(r.cfg.MaxMessageSize) {
		r.kill(rec, slot, gen)
		return
	}

	r.mu.Lock()
	rec.header = h
	rec.state = HeadersReady
	rec.lastActivity = time.Now()
	r.mu.Unlock()

	r.submitRecvBody(rec, slot, gen)
}

func (r *Reactor) submitRecvBody(rec *record, slot, gen uint32) {
	r.mu.Lock()
	rec.state = BodyReading
	h := rec.header
	r.mu.Unlock()

	go func() {
		body, err := frame.ReadBody(rec.conn, h)
		r.completions <- completion{tag: makeTag(gen, slot, opRecvBody), body: body, err: err}
	}()
}

func (r *Reactor) onBodyRead(rec *record, slot, gen uint32, c completion) {
	r.mu.Lock()
	if rec.state == Kill {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	if c.err != nil {
		r.kill(rec, slot, gen)
		return
	}

	r.mu.Lock()
	rec.request = c.body
	rec.state = Available
	rec.lastActivity = time.Now()
	r.mu.Unlock()
}

func (r *Reactor) submitWrite(rec *record, slot, gen uint32) {
	r.mu.Lock()
	rec.state = Writing
	payload := rec.response
	r.mu.Unlock()

	go func() {
		_, err := rec.conn.Write(payload)
		r.completions <- completion{tag: makeTag(gen, slot, opWrite), err: err}
	}()
}

func (r *Reactor) onWriteComplete(rec *record, slot, gen uint32, c completion) {
	r.mu.Lock()
	if rec.state == Kill {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	if c.err != nil {
		r.kill(rec, slot, gen)
		return
	}

	r.mu.Lock()
	rec.response = nil
	rec.state = Idle
	rec.lastActivity = time.Now()
	r.mu.Unlock()

	r.submitRecvHeader(rec, slot, gen)
}

func (r *Reactor) onCloseComplete(slot, gen uint32) {
	r.mu.Lock()
	if r.generation[slot] == gen {
		r.records[slot] = nil
	}
	r.mu.Unlock()
}

// kill transitions rec to Kill (idempotently), closes the socket and
// submits the close operation that will eventually reclaim the slot. Bad
// records never affect any other record: every path here is scoped to one
// slot under the coarse lock.
func (r *Reactor) kill(rec *record, slot, gen uint32) {
	r.mu.Lock()
	if rec.state == Kill {
		r.mu.Unlock()
		return
	}
	rec.state = Kill
	conn := rec.conn
	local, remote := conn.LocalAddr(), conn.RemoteAddr()
	r.mu.Unlock()

	_ = conn.Close()
	r.emitInfo(local, remote, libsck.ConnectionClose)

	go func() {
		r.completions <- completion{tag: makeTag(gen, slot, opClose)}
	}()
}

// sweepIdle kills every record that has had no activity for longer than
// ConIdleTimeout. A record being Processing does not exempt it: the
// design's drop-without-apply contract is exactly what lets ApplyResponse
// fail cleanly on a record the idle sweep already reclaimed.
func (r *Reactor) sweepIdle() {
	now := time.Now()
	r.mu.Lock()
	var victims []uint32
	for slot, rec := range r.records {
		if rec == nil || rec.state == Kill {
			continue
		}
		if now.Sub(rec.lastActivity) > r.cfg.ConIdleTimeout {
			victims = append(victims, uint32(slot))
		}
	}
	r.mu.Unlock()

	for _, slot := range victims {
		r.mu.Lock()
		rec := r.records[slot]
		gen := r.generation[slot]
		r.mu.Unlock()
		if rec != nil {
			r.kill(rec, slot, gen)
		}
	}
}

// GetClient scans for any record in Available, atomically transitions it to
// Processing and returns a Handle that exclusively borrows its request
// bytes. It returns nil if nothing is Available right now.
func (r *Reactor) GetClient() *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	for slot, rec := range r.records {
		if rec != nil && rec.state == Available {
			rec.state = Processing
			return &Handle{reactor: r, slot: uint32(slot), generation: r.generation[slot], rec: rec}
		}
	}
	return nil
}

// headerCompletion packs a decoded frame.Header back into the header-sized
// byte form so it can travel through completion.body, the same field
// opRecvBody uses, without a second channel type per operation.
func headerCompletion(slot, gen uint32, h frame.Header, err error) completion {
	c := completion{tag: makeTag(gen, slot, opRecvHeader), err: err}
	if err == nil {
		c.body = encodeHeaderBox(h)
	}
	return c
}

func encodeHeaderBox(h frame.Header) []byte {
	enc := h.Encode()
	out := make([]byte, len(enc))
	copy(out, enc[:])
	return out
}

func decodeHeaderCompletion(c completion) (frame.Header, bool) {
	if len(c.body) < frame.HeaderSize {
		return frame.Header{}, false
	}
	h, err := frame.DecodeHeader(c.body)
	if err != nil {
		return frame.Header{}, false
	}
	return h, true
}
