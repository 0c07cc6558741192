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

package socket

import (
	"errors"
	"net"
)

// DefaultBufferSize is the read/write buffer allocated per connection when
// a protocol-specific config does not override it.
const DefaultBufferSize = 32 * 1024

// EOL is the line terminator used by line-oriented protocol helpers.
const EOL = '\n'

// ConnState identifies a step in a connection's life, from dial/accept
// through the handler invocation to teardown. Values are ordered so
// comparisons (e.g. "has this connection reached ConnectionClose yet")
// are meaningful.
type ConnState uint8

const (
	ConnectionDial ConnState = iota
	ConnectionNew
	ConnectionRead
	ConnectionCloseRead
	ConnectionHandler
	ConnectionWrite
	ConnectionCloseWrite
	ConnectionClose
)

// String renders s for logs; an out-of-range value never panics.
func (s ConnState) String() string {
	switch s {
	case ConnectionDial:
		return "Dial Connection"
	case ConnectionNew:
		return "New Connection"
	case ConnectionRead:
		return "Read Incoming Stream"
	case ConnectionCloseRead:
		return "Close Incoming Stream"
	case ConnectionHandler:
		return "Run HandlerFunc"
	case ConnectionWrite:
		return "Write Outgoing Steam"
	case ConnectionCloseWrite:
		return "Close Outgoing Stream"
	case ConnectionClose:
		return "Close Connection"
	default:
		return "unknown connection state"
	}
}

// errClosedMsg is the literal message a plain (non-wrapped) "connection is
// already closed" error carries through this codebase's shutdown paths.
const errClosedMsg = "use of closed network connection"

// ErrorFilter drops errors that are an expected side effect of a graceful
// shutdown (the listener or connection was closed out from under a pending
// read/write) so callers can log everything else without matching on
// shutdown noise. Real net.ErrClosed (and anything wrapping it) is caught
// via errors.Is; a plain error whose message happens to equal the same
// sentinel text is caught too.
func ErrorFilter(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	if err.Error() == errClosedMsg {
		return nil
	}
	return err
}
