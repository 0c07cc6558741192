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

// Package socket defines the transport-neutral shapes shared by every
// protocol-specific implementation under socket/client and socket/server:
// the per-connection Context handed to request handlers, the Client/Server
// lifecycle interfaces, and the ConnState vocabulary used for connection
// tracking and logging.
package socket

import (
	"context"
	"io"
	"net"
)

// FuncError receives batched I/O errors for logging/metrics; implementations
// must filter expected shutdown noise with ErrorFilter before calling it.
type FuncError func(errs ...error)

// FuncInfo is notified on every connection state transition.
type FuncInfo func(local, remote net.Addr, state ConnState)

// UpdateConn customizes a freshly dialed or accepted net.Conn (deadlines,
// keep-alive, buffer sizes) before it is handed to the reactor or client.
type UpdateConn func(conn net.Conn)

// HandlerFunc processes one request borrow on the server side.
type HandlerFunc func(ctx Context)

// Context is the per-request handle a server's HandlerFunc receives. It
// exposes the borrowed connection's I/O and identity, and embeds
// context.Context so a handler can select on cancellation the same way it
// would with any other context-carrying call.
type Context interface {
	context.Context
	io.Reader
	io.Writer

	// IsConnected reports whether the underlying connection is still usable.
	IsConnected() bool
	// LocalHost returns the local endpoint address as a string.
	LocalHost() string
	// RemoteHost returns the remote endpoint address as a string.
	RemoteHost() string
	// Close releases the borrowed connection; a handler calls this itself
	// once it is done instead of waiting for the reactor to do it.
	Close() error
}

// Server is the lifecycle surface every protocol-specific listener
// implements (socket/server/tcp, and any future transport).
type Server interface {
	// RegisterFuncError installs the error-reporting callback.
	RegisterFuncError(fct FuncError)
	// RegisterFuncInfo installs the connection-state-tracking callback.
	RegisterFuncInfo(fct FuncInfo)
	// Listen runs the accept loop until ctx is done or Shutdown is called.
	Listen(ctx context.Context) error
	// Shutdown stops accepting and waits for live connections to finish,
	// or for ctx to end.
	Shutdown(ctx context.Context) error
}

// Client is the lifecycle surface every protocol-specific client socket
// implements (socket/client/tcp, and any future transport).
type Client interface {
	io.Reader
	io.Writer

	// RegisterFuncError installs the error-reporting callback.
	RegisterFuncError(fct FuncError)
	// Connect dials (or re-dials) the configured remote endpoint.
	Connect(ctx context.Context) error
	// Close releases the underlying connection.
	Close() error
}
