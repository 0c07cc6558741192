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

// Package tcp is the client-side half of the reactor: a single dialed TCP
// connection with reconnect, one-shot request/response, and TLS support.
package tcp

import (
	"context"
	"errors"
	"io"

	libtls "github.com/FeatheredSystems/falcotcp/certificates"
	libsck "github.com/FeatheredSystems/falcotcp/socket"
)

var (
	// ErrInstance is returned by calls made on a nil ClientTCP.
	ErrInstance = errors.New("socket/client/tcp: nil client instance")
	// ErrAddress is returned by New when the dial address cannot be resolved.
	ErrAddress = errors.New("socket/client/tcp: invalid address")
	// ErrConnection is returned by Read, Write and Close when called while
	// the client has no live connection.
	ErrConnection = errors.New("socket/client/tcp: not connected")
)

// ClientTCP is a single dialed TCP connection plus the reconnect, one-shot
// and TLS controls that sit above the raw socket.Client lifecycle.
type ClientTCP interface {
	libsck.Client
	io.Closer

	// IsConnected reports whether the last Connect/Once succeeded and the
	// client has not been Closed since. It reflects local state only: a
	// remote-side disconnect does not flip it to false on its own.
	IsConnected() bool
	// Once dials (if not already connected), writes every byte of request,
	// optionally streams the response to onResponse, and always closes the
	// connection before returning.
	Once(ctx context.Context, request io.Reader, onResponse func(response io.Reader)) error
	// RegisterFuncInfo installs the connection-state-tracking callback.
	RegisterFuncInfo(fct libsck.FuncInfo)
	// SetTLS enables or disables TLS for subsequent Connect/Once calls.
	// Enabling with a nil cfg fails without changing state.
	SetTLS(enable bool, cfg libtls.TLSConfig, serverName string) error
}
