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
	"time"

	libtls "github.com/FeatheredSystems/falcotcp/certificates"
	liberr "github.com/FeatheredSystems/falcotcp/errors"
	libptc "github.com/FeatheredSystems/falcotcp/network/protocol"
	"github.com/FeatheredSystems/falcotcp/pipeline"
)

// Default configuration bounds, used whenever Config leaves the
// corresponding field at its zero value.
const (
	DefaultMaxClients     = 1024
	DefaultBufferCapacity = 64 * 1024
	DefaultMaxMessageSize = 64 * 1024 * 1024
	DefaultIdleTimeout    = 5 * time.Minute
	sweepInterval         = 250 * time.Millisecond
)

// Config is the reactor's configuration surface (C8): the listen address,
// resource bounds every accepted record must respect, the idle window that
// reclaims a connection nobody is using, optional TLS termination, and the
// pipeline every record's body is pushed through on receive/send.
type Config struct {
	Network libptc.NetworkProtocol
	Address string

	// MaxClients bounds the number of simultaneously allocated records;
	// an accept past this bound is closed immediately.
	MaxClients int
	// BufferCapacity is the initial allocation size for a record's
	// request/response buffers.
	BufferCapacity int
	// MaxMessageSize bounds a single frame's body length; a header
	// promising more kills that connection's record instead of
	// allocating an unbounded buffer.
	MaxMessageSize int64
	// ConIdleTimeout is how long a record may sit without activity
	// before the reactor kills it.
	ConIdleTimeout time.Duration

	TLS      libtls.TLSConfig // nil disables TLS termination
	Pipeline pipeline.Config
}

// Validate fills in defaults and rejects configurations the reactor cannot
// safely run with.
func (c *Config) Validate() error {
	if c.Address == "" {
		return liberr.ErrInvalidConfiguration.Error()
	}
	if !c.Network.IsTCP() {
		if c.Network == 0 {
			c.Network = libptc.NetworkTCP
		} else {
			return liberr.ErrInvalidConfiguration.Error()
		}
	}
	if c.MaxClients <= 0 {
		c.MaxClients = DefaultMaxClients
	}
	if c.BufferCapacity <= 0 {
		c.BufferCapacity = DefaultBufferCapacity
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = DefaultMaxMessageSize
	}
	if c.ConIdleTimeout <= 0 {
		c.ConIdleTimeout = DefaultIdleTimeout
	}
	return nil
}
