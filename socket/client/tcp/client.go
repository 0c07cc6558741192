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

package tcp

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"sync"
	"sync/atomic"

	libtls "github.com/FeatheredSystems/falcotcp/certificates"
	libptc "github.com/FeatheredSystems/falcotcp/network/protocol"
	libsck "github.com/FeatheredSystems/falcotcp/socket"
)

type clientTcp struct {
	address string

	mu         sync.Mutex
	conn       net.Conn
	connected  bool
	tlsOn      bool
	tlsConfig  libtls.TLSConfig
	serverName string

	funcErr  atomic.Pointer[libsck.FuncError]
	funcInfo atomic.Pointer[libsck.FuncInfo]
}

// New validates address against the TCP address family and returns a client
// ready to Connect or Once. It never dials.
func New(address string) (ClientTCP, error) {
	if address == "" {
		return nil, ErrAddress
	}
	if _, err := net.ResolveTCPAddr(libptc.NetworkTCP.Code(), address); err != nil {
		return nil, err
	}

	return &clientTcp{address: address}, nil
}

func (c *clientTcp) emitError(err error) {
	err = libsck.ErrorFilter(err)
	if err == nil {
		return
	}
	if fn := c.funcErr.Load(); fn != nil && *fn != nil {
		(*fn)(err)
	}
}

func (c *clientTcp) emitInfo(local, remote net.Addr, state libsck.ConnState) {
	if fn := c.funcInfo.Load(); fn != nil && *fn != nil {
		(*fn)(local, remote, state)
	}
}

func (c *clientTcp) RegisterFuncError(fct libsck.FuncError) {
	c.funcErr.Store(&fct)
}

func (c *clientTcp) RegisterFuncInfo(fct libsck.FuncInfo) {
	c.funcInfo.Store(&fct)
}

// SetTLS enables or disables TLS for subsequent Connect/Once calls.
// Enabling with a nil cfg fails without changing state.
func (c *clientTcp) SetTLS(enable bool, cfg libtls.TLSConfig, serverName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !enable {
		c.tlsOn = false
		c.tlsConfig = nil
		c.serverName = ""
		return nil
	}

	if cfg == nil {
		return ErrConnection
	}

	c.tlsOn = true
	c.tlsConfig = cfg
	c.serverName = serverName
	return nil
}

// Connect dials the configured address, replacing any live connection.
// Dialing honors ctx cancellation/deadline.
func (c *clientTcp) Connect(ctx context.Context) error {
	if c == nil {
		return ErrInstance
	}

	c.emitInfo(nil, nil, libsck.ConnectionDial)

	d := net.Dialer{}
	conn, err := d.DialContext(ctx, libptc.NetworkTCP.Code(), c.address)
	if err != nil {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
		c.emitError(err)
		return err
	}

	c.mu.Lock()
	tlsOn, tlsCfg, serverName := c.tlsOn, c.tlsConfig, c.serverName
	c.mu.Unlock()

	if tlsOn {
		tconn := tls.Client(conn, tlsCfg.TLS(serverName))
		if err := tconn.HandshakeContext(ctx); err != nil {
			_ = conn.Close()
			c.mu.Lock()
			c.connected = false
			c.mu.Unlock()
			c.emitError(err)
			return err
		}
		conn = tconn
	}

	c.mu.Lock()
	old := c.conn
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}

	c.emitInfo(conn.LocalAddr(), conn.RemoteAddr(), libsck.ConnectionNew)
	return nil
}

func (c *clientTcp) IsConnected() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *clientTcp) Read(p []byte) (int, error) {
	if c == nil {
		return 0, ErrInstance
	}

	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		err := ErrConnection
		c.emitError(err)
		return 0, err
	}

	n, err := conn.Read(p)
	if err != nil {
		c.emitError(err)
		return n, libsck.ErrorFilter(err)
	}

	c.emitInfo(conn.LocalAddr(), conn.RemoteAddr(), libsck.ConnectionRead)
	return n, nil
}

func (c *clientTcp) Write(p []byte) (int, error) {
	if c == nil {
		return 0, ErrInstance
	}

	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		err := ErrConnection
		c.emitError(err)
		return 0, err
	}

	n, err := conn.Write(p)
	if err != nil {
		c.emitError(err)
		return n, libsck.ErrorFilter(err)
	}

	c.emitInfo(conn.LocalAddr(), conn.RemoteAddr(), libsck.ConnectionWrite)
	return n, nil
}

// Close releases the live connection. Unlike the reactor's tolerant Close,
// calling this on a never-connected or already-closed client is an error.
func (c *clientTcp) Close() error {
	if c == nil {
		return ErrInstance
	}

	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.connected = false
	c.mu.Unlock()

	if conn == nil {
		err := ErrConnection
		c.emitError(err)
		return err
	}

	local, remote := conn.LocalAddr(), conn.RemoteAddr()
	err := conn.Close()
	c.emitInfo(local, remote, libsck.ConnectionClose)
	if err != nil {
		err = libsck.ErrorFilter(err)
		c.emitError(err)
	}
	return err
}

// Once dials (if not already connected), writes every byte of request, and
// always closes the connection before returning regardless of outcome.
// When onResponse is non-nil, the write side is half-closed so the peer
// observes EOF, and onResponse streams whatever the peer sends back.
func (c *clientTcp) Once(ctx context.Context, request io.Reader, onResponse func(response io.Reader)) error {
	if c == nil {
		return ErrInstance
	}

	if !c.IsConnected() {
		if err := c.Connect(ctx); err != nil {
			return err
		}
	}
	defer func() {
		_ = c.Close()
	}()

	if _, err := io.Copy(c, request); err != nil {
		c.emitError(err)
		return err
	}

	if onResponse == nil {
		return nil
	}

	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if cw, ok := conn.(interface{ CloseWrite() error }); ok {
		_ = cw.CloseWrite()
	}

	onResponse(c)
	return nil
}
