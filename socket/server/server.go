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

// Package server dispatches a socket/config.Server endpoint to the
// protocol-specific listener socket/server/tcp implements. Only the TCP
// family is wired; binding any other network family fails at New.
package server

import (
	libsck "github.com/FeatheredSystems/falcotcp/socket"
	sckcfg "github.com/FeatheredSystems/falcotcp/socket/config"
	tcp "github.com/FeatheredSystems/falcotcp/socket/server/tcp"
)

// New builds the listener for cfg.Network. Non-TCP families fail with
// sckcfg.ErrInvalidProtocol, the same error socket/server/tcp.New returns
// for a non-TCP cfg.
func New(update libsck.UpdateConn, handler libsck.HandlerFunc, cfg sckcfg.Server) (libsck.Server, error) {
	if !cfg.Network.IsTCP() {
		return nil, sckcfg.ErrInvalidProtocol
	}
	return tcp.New(update, handler, cfg)
}
