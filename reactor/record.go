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
	"net"
	"time"

	"github.com/FeatheredSystems/falcotcp/frame"
)

// record is the reactor's per-connection bookkeeping object: one socket, two
// heap buffers, the parsed request header, a response length, read/write
// offsets, a monotonic id, a lifecycle state, a last-activity timestamp and
// a capacity. It is owned by the reactor from accept until Kill; during
// Processing a single Handle borrows it exclusively and the reactor does
// not touch request/response until the borrow ends.
type record struct {
	conn net.Conn
	id   uint64

	state State

	header   frame.Header
	request  []byte // request body as read off the wire, before pipeline decoding
	response []byte // full wire frame (header ‖ body) queued for write

	readOffset  int
	writeOffset int
	capacity    int

	lastActivity time.Time
}
