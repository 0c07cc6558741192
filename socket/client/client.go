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

// Package client dispatches a socket/config.Client endpoint to the
// protocol-specific client socket/client/tcp implements. Only the TCP
// family is wired; dialing any other network family fails at New.
package client

import (
	"errors"

	libsck "github.com/FeatheredSystems/falcotcp/socket"
	sckcfg "github.com/FeatheredSystems/falcotcp/socket/config"
	tcp "github.com/FeatheredSystems/falcotcp/socket/client/tcp"
)

// ErrUnsupportedProtocol is returned by New for any Network other than TCP.
var ErrUnsupportedProtocol = errors.New("socket/client: unsupported network protocol")

// New builds the client socket for cfg.Network. update is accepted but
// never called: the TCP client built here has no hook point for it.
func New(cfg sckcfg.Client, update libsck.UpdateConn) (libsck.Client, error) {
	if !cfg.Network.IsTCP() {
		return nil, ErrUnsupportedProtocol
	}

	cli, err := tcp.New(cfg.Address)
	if err != nil {
		return nil, err
	}

	if enabled, tlsCfg, serverName := cfg.GetTLS(); enabled {
		if err := cli.SetTLS(true, tlsCfg, serverName); err != nil {
			return nil, err
		}
	}

	_ = update

	return cli, nil
}
