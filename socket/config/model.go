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

// Package config holds the endpoint configuration every socket/client and
// socket/server implementation validates before it dials or listens: the
// network family and address, and an optional TLS wrapping.
package config

import (
	"errors"
	"time"

	libtls "github.com/FeatheredSystems/falcotcp/certificates"
	libprm "github.com/FeatheredSystems/falcotcp/file/perm"
	libptc "github.com/FeatheredSystems/falcotcp/network/protocol"
)

// MaxGID is the largest group ID accepted for GroupPerm; it matches the
// traditional 16-bit gid_t ceiling used by most Unix systems.
const MaxGID = 32767

var (
	ErrInvalidProtocol  = errors.New("socket config: invalid protocol")
	ErrInvalidTLSConfig = errors.New("socket config: invalid TLS config")
	ErrInvalidGroup     = errors.New("socket config: invalid unix group")
)

// ClientTLS wraps the optional TLS settings for a socket/client endpoint.
type ClientTLS struct {
	Enabled    bool
	Config     libtls.Config
	ServerName string

	dflt libtls.TLSConfig
}

// ServerTLS wraps the optional TLS settings for a socket/server endpoint.
type ServerTLS struct {
	Enable bool
	Config libtls.Config

	dflt libtls.TLSConfig
}

// Client describes a dial target: which network family to use, the address
// to dial, and an optional client-side TLS wrapping.
type Client struct {
	Network libptc.NetworkProtocol
	Address string
	TLS     ClientTLS
}

// Server describes a listen target: which network family to bind, the
// address to listen on, Unix socket file ownership/permission (ignored for
// non-Unix families), the idle-connection timeout, and an optional
// server-side TLS wrapping.
type Server struct {
	Network        libptc.NetworkProtocol
	Address        string
	PermFile       libprm.Perm
	GroupPerm      int32
	ConIdleTimeout time.Duration
	TLS            ServerTLS
}
