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
	libtls "github.com/FeatheredSystems/falcotcp/certificates"
)

// DefaultTLS sets the fallback TLS config GetTLS merges onto when the
// caller's own TLS.Config was left at its zero value. A nil cfg clears the
// fallback instead of panicking.
func (c *Client) DefaultTLS(cfg libtls.TLSConfig) {
	c.TLS.dflt = cfg
}

// GetTLS reports whether client TLS is enabled and, if so, the resolved
// TLSConfig to dial with plus the server name to verify against.
func (c *Client) GetTLS() (bool, libtls.TLSConfig, string) {
	if !c.TLS.Enabled {
		return false, nil, ""
	}

	var cfg libtls.TLSConfig
	if c.TLS.dflt != nil {
		cfg = c.TLS.Config.NewFrom(c.TLS.dflt)
	} else {
		cfg = c.TLS.Config.New()
	}

	return true, cfg, c.TLS.ServerName
}

// DefaultTLS sets the fallback TLS config GetTLS merges onto when the
// caller's own TLS.Config was left at its zero value. A nil cfg clears the
// fallback instead of panicking.
func (s *Server) DefaultTLS(cfg libtls.TLSConfig) {
	s.TLS.dflt = cfg
}

// GetTLS reports whether server TLS is enabled and, if so, the resolved
// TLSConfig to listen with.
func (s *Server) GetTLS() (bool, libtls.TLSConfig) {
	if !s.TLS.Enable {
		return false, nil
	}

	var cfg libtls.TLSConfig
	if s.TLS.dflt != nil {
		cfg = s.TLS.Config.NewFrom(s.TLS.dflt)
	} else {
		cfg = s.TLS.Config.New()
	}

	return true, cfg
}
