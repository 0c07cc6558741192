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

// Package tlsversion is the version floor for the TLS listener socket/config
// builds around a reactor or pool endpoint (see certificates.Config.New).
// falcotcpd never needs anything older than TLS 1.2, so VersionTLS10 and
// VersionTLS11 aren't modeled at all here - a config asking for either
// parses to VersionUnknown and certificates.Config.Validate rejects it.
package tlsversion

import (
	"crypto/tls"
	"strings"
)

// Version represents a TLS protocol version.
// It wraps the int version values from crypto/tls and provides parsing capabilities.
type Version int

const (
	// VersionUnknown represents an unsupported or unrecognized TLS version.
	VersionUnknown Version = iota

	// VersionTLS12 represents TLS 1.2, the minimum version this project accepts.
	VersionTLS12 = Version(tls.VersionTLS12)

	// VersionTLS13 represents TLS 1.3, preferred whenever the peer supports it.
	VersionTLS13 = Version(tls.VersionTLS13)
)

// List returns the supported TLS versions, highest first.
func List() []Version {
	return []Version{
		VersionTLS13,
		VersionTLS12,
	}
}

// ListHigh is an alias of List: with only two supported versions there is no
// separate "legacy-inclusive" listing to distinguish it from.
func ListHigh() []Version {
	return List()
}

// Parse returns the TLS version corresponding as a Version.
//
// The function takes a string that represents a TLS version.
// The string is case-insensitive and can contain any of the following characters:
//   - " (double quote)
//   - ' (single quote)
//   - tls (the string "tls" regardless of case)
//   - ssl (the string "ssl" regardless of case)
//   - . (period)
//   - - (hyphen)
//   - _ (underscore)
//   - (space)
//
// The function returns the TLS version that matches the string, or VersionUnknown if no match is found.
//
// The returned value is a reference to a known TLS version.
// The returned value is not a copy of a known TLS version.
// The returned value is thread-safe.
// Multiple goroutines can call the Parse function at the same time without affecting the correctness of the TLS configuration.
func Parse(s string) Version {
	s = strings.ToLower(s)
	s = strings.Replace(s, "\"", "", -1)  // nolint
	s = strings.Replace(s, "'", "", -1)   // nolint
	s = strings.Replace(s, "tls", "", -1) // nolint
	s = strings.Replace(s, "ssl", "", -1) // nolint
	s = strings.Replace(s, ".", "", -1)   // nolint
	s = strings.Replace(s, "-", "", -1)   // nolint
	s = strings.Replace(s, "_", "", -1)   // nolint
	s = strings.Replace(s, " ", "", -1)   // nolint
	s = strings.TrimSpace(s)

	switch {
	case strings.EqualFold(s, "12"):
		return VersionTLS12
	case strings.EqualFold(s, "13"):
		return VersionTLS13
	default:
		return VersionUnknown
	}
}

// ParseInt returns the Version matching the crypto/tls version constant d, or
// VersionUnknown if d isn't TLS 1.2 or 1.3.
func ParseInt(d int) Version {
	switch d {
	case tls.VersionTLS12:
		return VersionTLS12
	case tls.VersionTLS13:
		return VersionTLS13
	default:
		return VersionUnknown
	}
}

// ParseBytes is Parse over a byte slice, for decoders that hand back []byte
// rather than string.
func ParseBytes(p []byte) Version {
	return Parse(string(p))
}
