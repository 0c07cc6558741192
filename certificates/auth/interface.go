/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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
 *
 */

// Package auth is the mTLS posture certificates.Config.SetClientAuth accepts:
// whether falcotcpd asks connecting clients for a certificate at all, and if
// so, whether it must chain to one of the client CAs loaded via
// AddClientCAFile. A reactor with no client CAs loaded only makes sense with
// NoClientCert; Validate in the parent certificates package enforces that.
package auth

import (
	"crypto/tls"
	"strings"
)

const (
	strict  = "strict"
	require = "require"
	verify  = "verify"
	request = "request"
	none    = "none"
)

// ClientAuth wraps tls.ClientAuthType with string/int parsing.
type ClientAuth tls.ClientAuthType

const (
	// NoClientCert requests no client certificate.
	NoClientCert = ClientAuth(tls.NoClientCert)

	// RequestClientCert requests a client certificate but accepts the
	// handshake even if the client offers none or it fails verification.
	RequestClientCert = ClientAuth(tls.RequestClientCert)

	// RequireAnyClientCert requires a client certificate but does not
	// verify it against any CA pool.
	RequireAnyClientCert = ClientAuth(tls.RequireAnyClientCert)

	// VerifyClientCertIfGiven verifies a client certificate against the
	// client CA pool only if the client offers one.
	VerifyClientCertIfGiven = ClientAuth(tls.VerifyClientCertIfGiven)

	// RequireAndVerifyClientCert requires a client certificate and
	// verifies it against the client CA pool. mTLS proper.
	RequireAndVerifyClientCert = ClientAuth(tls.RequireAndVerifyClientCert)
)

// List returns every ClientAuth value.
func List() []ClientAuth {
	return []ClientAuth{
		NoClientCert,
		RequestClientCert,
		RequireAnyClientCert,
		VerifyClientCertIfGiven,
		RequireAndVerifyClientCert,
	}
}

// Parse matches one of "strict"/"require"/"verify"/"request"/"none" in s
// (case-insensitive, substring match) and returns the corresponding
// ClientAuth. "strict" and "require"+"verify" both mean
// RequireAndVerifyClientCert. Returns NoClientCert if nothing matches.
func Parse(s string) ClientAuth {
	s = cleanString(s)

	switch {
	case strings.Contains(s, strict) || (strings.Contains(s, require) && strings.Contains(s, verify)):
		return RequireAndVerifyClientCert
	case strings.Contains(s, verify):
		return VerifyClientCertIfGiven
	case strings.Contains(s, require) && !strings.Contains(s, verify):
		return RequireAnyClientCert
	case strings.Contains(s, request):
		return RequestClientCert
	default:
		return NoClientCert
	}
}

// ParseInt maps a tls.ClientAuthType value to its ClientAuth, or
// NoClientCert if d isn't one of the five known values.
func ParseInt(d int) ClientAuth {
	switch tls.ClientAuthType(d) {
	case tls.RequireAndVerifyClientCert:
		return RequireAndVerifyClientCert
	case tls.VerifyClientCertIfGiven:
		return VerifyClientCertIfGiven
	case tls.RequireAnyClientCert:
		return RequireAnyClientCert
	case tls.RequestClientCert:
		return RequestClientCert
	default:
		return NoClientCert
	}
}

// ParseBytes is Parse over a byte slice.
func ParseBytes(p []byte) ClientAuth {
	return Parse(string(p))
}

func cleanString(s string) string {
	s = strings.ToLower(s)
	s = strings.Replace(s, "\"", "", -1) // nolint
	s = strings.Replace(s, "'", "", -1)  // nolint
	return strings.TrimSpace(s)
}
