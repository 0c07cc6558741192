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
	"net"
	"sync"
	"time"

	libsck "github.com/FeatheredSystems/falcotcp/socket"
)

// sCtx is the socket.Context handed to a connection's HandlerFunc. Its
// cancellation is derived from the context.Context passed to Listen, so a
// handler selecting on ctx.Done() observes both its own connection closing
// and the server shutting down. When idle is non-zero, the context also
// cancels itself after idle elapses with no Read or Write.
type sCtx struct {
	context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	conn  net.Conn
	gone  bool
	idle  time.Duration
	timer *time.Timer
}

func newContext(parent context.Context, conn net.Conn, idle time.Duration) (*sCtx, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	c := &sCtx{Context: ctx, cancel: cancel, conn: conn, idle: idle}
	if idle > 0 {
		c.timer = time.AfterFunc(idle, cancel)
	}
	return c, cancel
}

func (c *sCtx) touch() {
	if c.timer != nil {
		c.timer.Reset(c.idle)
	}
}

func (c *sCtx) Read(p []byte) (int, error) {
	n, err := c.conn.Read(p)
	c.touch()
	return n, libsck.ErrorFilter(err)
}

func (c *sCtx) Write(p []byte) (int, error) {
	n, err := c.conn.Write(p)
	c.touch()
	return n, libsck.ErrorFilter(err)
}

func (c *sCtx) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.gone
}

func (c *sCtx) LocalHost() string {
	if c.conn == nil {
		return ""
	}
	return c.conn.LocalAddr().String()
}

func (c *sCtx) RemoteHost() string {
	if c.conn == nil {
		return ""
	}
	return c.conn.RemoteAddr().String()
}

func (c *sCtx) Close() error {
	c.mu.Lock()
	if c.gone {
		c.mu.Unlock()
		return nil
	}
	c.gone = true
	c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.cancel()
	return libsck.ErrorFilter(c.conn.Close())
}
