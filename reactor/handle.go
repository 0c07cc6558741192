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
	"sync/atomic"

	"github.com/FeatheredSystems/falcotcp/compress"
	liberr "github.com/FeatheredSystems/falcotcp/errors"
	"github.com/FeatheredSystems/falcotcp/frame"
)

// Handle is the application-visible borrow of one completed request (C7).
// It exclusively owns its record's buffers for as long as it lives: the
// reactor does not read from or free them while the record is Processing.
// A Handle must end with exactly one call to ApplyResponse or Drop; it is
// Send so an application may move it into a worker goroutine.
type Handle struct {
	reactor    *Reactor
	slot       uint32
	generation uint32
	rec        *record

	resolved atomic.Bool
}

// Request returns the frame's compression tag and an owned copy of the
// wire-level body exactly as it arrived - still compressed/encrypted per
// that tag. The reactor's per-record buffer is free to be recycled the
// instant this copy is taken.
func (h *Handle) Request() (compress.Algorithm, []byte) {
	body := make([]byte, len(h.rec.request))
	copy(body, h.rec.request)
	return h.rec.header.Compression, body
}

// Decode runs the reactor's configured pipeline in reverse over Request,
// turning the wire body back into plaintext. It is a convenience composing
// C2 and C7 for handlers that want the plaintext directly instead of
// driving the pipeline themselves.
func (h *Handle) Decode() ([]byte, error) {
	tag, body := h.Request()
	return h.reactor.pipe.Receive(body, tag)
}

// ID returns the record's monotonically increasing client identifier.
func (h *Handle) ID() uint64 { return h.rec.id }

// ApplyResponse compresses and (if configured) encrypts plaintext through
// the reactor's pipeline, frames it, and queues it for write - transitioning
// the record Processing -> Ready -> Writing. It fails without sending
// anything if the record's state has already been lost (killed by an idle
// sweep or I/O error while the application was working).
//
// A Handle may call ApplyResponse or Drop exactly once; a second call
// returns ErrInvalidConfiguration rather than silently doing nothing.
func (h *Handle) ApplyResponse(plaintext []byte) error {
	if !h.resolved.CompareAndSwap(false, true) {
		return liberr.ErrInvalidConfiguration.Error()
	}

	body, tag, err := h.reactor.pipe.Send(plaintext)
	if err != nil {
		h.reactor.kill(h.rec, h.slot, h.generation)
		return err
	}

	h.reactor.mu.Lock()
	if h.reactor.generation[h.slot] != h.generation || h.rec.state != Processing {
		h.reactor.mu.Unlock()
		return liberr.ErrIoFailed.Error()
	}
	hdr := frame.Header{Size: uint64(len(body)), Compression: tag}
	enc := hdr.Encode()
	h.rec.response = append(append([]byte(nil), enc[:]...), body...)
	h.rec.state = Ready
	h.reactor.mu.Unlock()

	h.reactor.submitWrite(h.rec, h.slot, h.generation)
	return nil
}

// Drop releases the Handle without sending a response, killing the
// connection. Applications that want to refuse a request without tearing
// the connection down should ApplyResponse with an empty body instead.
func (h *Handle) Drop() {
	if !h.resolved.CompareAndSwap(false, true) {
		return
	}
	h.reactor.kill(h.rec, h.slot, h.generation)
}
