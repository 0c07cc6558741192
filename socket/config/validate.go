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

package config

import (
	"net"
	"runtime"

	libptc "github.com/FeatheredSystems/falcotcp/network/protocol"
)

// resolveAddress checks addr against the net.Resolve*Addr family matching
// network, or treats it as a filesystem path for the Unix families. It does
// not reject an empty address: ResolveTCPAddr/ResolveUDPAddr accept one
// (meaning "any port"/"any address" depending on context) and a Unix path
// is caller-validated at Dial/Listen time instead of here.
func resolveAddress(network libptc.NetworkProtocol, addr string) error {
	switch network {
	case libptc.NetworkTCP, libptc.NetworkTCP4, libptc.NetworkTCP6:
		_, err := net.ResolveTCPAddr(network.String(), addr)
		return err
	case libptc.NetworkUDP, libptc.NetworkUDP4, libptc.NetworkUDP6:
		_, err := net.ResolveUDPAddr(network.String(), addr)
		return err
	case libptc.NetworkUnix, libptc.NetworkUnixGram:
		if runtime.GOOS == "windows" {
			return ErrInvalidProtocol
		}
		return nil
	default:
		return ErrInvalidProtocol
	}
}

// Validate checks the network family, the address, and (when TLS is
// enabled) that a server name is set and the family supports TLS.
func (c *Client) Validate() error {
	if c.Network == libptc.NetworkEmpty {
		return ErrInvalidProtocol
	}

	if err := resolveAddress(c.Network, c.Address); err != nil {
		return err
	}

	if c.TLS.Enabled {
		if !c.Network.IsTCP() {
			return ErrInvalidTLSConfig
		}
		if c.TLS.ServerName == "" {
			return ErrInvalidTLSConfig
		}
	}

	return nil
}

// Validate checks the network family, the address, the Unix group ID (when
// set), and (when TLS is enabled) that at least one certificate is
// configured and the family supports TLS.
func (s *Server) Validate() error {
	if s.Network == libptc.NetworkEmpty {
		return ErrInvalidProtocol
	}

	if err := resolveAddress(s.Network, s.Address); err != nil {
		return err
	}

	if s.GroupPerm > MaxGID {
		return ErrInvalidGroup
	}

	if s.TLS.Enable {
		if !s.Network.IsTCP() {
			return ErrInvalidTLSConfig
		}
		if len(s.TLS.Config.Certs) == 0 {
			return ErrInvalidTLSConfig
		}
	}

	return nil
}
