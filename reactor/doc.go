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

// Package reactor is FalcoTCP's completion-based server engine: a fixed
// table of per-client records, each driven through accept -> read-headers
// -> read-body -> hand-off -> write-response -> recycle by completions
// posted from a pool of I/O goroutines rather than by a thread bound to the
// socket.
//
// The shape mirrors a kernel completion ring without depending on one:
// every submitted operation (accept, recvHeader, recvBody, write, close)
// runs on its own goroutine and posts a completion{tag, n, err} onto a
// single buffered channel. The opaque tag packs (generation, slot, op) so a
// completion belonging to a record that was already killed and whose slot
// was reused is discarded instead of mutating the wrong client - the same
// use-after-free guard a real io_uring-backed reactor needs its submission
// generation for. Run drains that channel exactly like the spec's "drain
// the completion queue" step, advances each client's state machine, sweeps
// idle records, and lets already-submitted goroutines carry the next batch
// of I/O.
//
// Applications never touch a record directly: GetClient borrows the next
// Available one as a Handle, which is the only way to read its request or
// supply its response. Dropping a Handle without ApplyResponse kills the
// connection - the deliberate leak-prevention contract from the design
// notes - rather than risk handing a stale buffer back to Idle.
package reactor
