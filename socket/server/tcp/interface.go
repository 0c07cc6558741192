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

// Package tcp is a generic TCP/TCP4/TCP6 socket server: an accept loop that borrows one
// socket.Context per connection, runs the registered HandlerFunc, and tracks
// every connection's lifecycle for graceful shutdown.
package tcp

import (
	"errors"

	libtls "github.com/FeatheredSystems/falcotcp/certificates"
	libsck "github.com/FeatheredSystems/falcotcp/socket"
)

// ErrInvalidAddress is returned when a Server config's Address cannot be
// used to bind a listener (empty, or not resolvable for the TCP family).
var ErrInvalidAddress = errors.New("socket/server/tcp: invalid address")

// ServerTcp is this package's public surface: the generic socket.Server
// lifecycle plus the accounting and TLS controls the TCP implementation
// exposes beyond that minimal interface.
type ServerTcp interface {
	libsck.Server

	// Close stops the listener immediately; unlike Shutdown it does not
	// wait for in-flight connections to finish.
	Close() error
	// IsRunning reports whether the accept loop is currently active.
	IsRunning() bool
	// IsGone reports whether the server is stopped and has no connections
	// left to drain.
	IsGone() bool
	// OpenConnections returns the number of connections currently borrowed
	// by the handler.
	OpenConnections() int64
	// SetTLS enables or disables TLS termination. Enabling with a TLSConfig
	// that carries no certificate pair fails without changing state.
	SetTLS(enable bool, cfg libtls.TLSConfig) error
	// RegisterFuncInfoServer installs a callback for server-level lifecycle
	// messages (listening, listener closed) as opposed to RegisterFuncInfo's
	// per-connection state events.
	RegisterFuncInfoServer(fct func(msg string))
}
