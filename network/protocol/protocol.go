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

// Package protocol names the network protocols a socket/config endpoint can
// bind to: the stream and datagram families net.Dial/net.Listen accept,
// plus the raw IP family, under a single comparable, marshalable type.
package protocol

import "math/bits"

// NetworkProtocol identifies a network family understood by this module's
// transports. The zero value, NetworkEmpty, is never a valid bind target.
type NetworkProtocol uint8

const (
	NetworkEmpty NetworkProtocol = iota
	NetworkUnix
	NetworkTCP
	NetworkTCP4
	NetworkTCP6
	NetworkUDP
	NetworkUDP4
	NetworkUDP6
	NetworkIP
	NetworkIP4
	NetworkIP6
	NetworkUnixGram
)

// String renders p the way net.Dial expects as its "network" argument.
// Invalid values return "".
func (p NetworkProtocol) String() string {
	switch p {
	case NetworkUnix:
		return "unix"
	case NetworkTCP:
		return "tcp"
	case NetworkTCP4:
		return "tcp4"
	case NetworkTCP6:
		return "tcp6"
	case NetworkUDP:
		return "udp"
	case NetworkUDP4:
		return "udp4"
	case NetworkUDP6:
		return "udp6"
	case NetworkIP:
		return "ip"
	case NetworkIP4:
		return "ip4"
	case NetworkIP6:
		return "ip6"
	case NetworkUnixGram:
		return "unixgram"
	default:
		return ""
	}
}

// Code is an alias of String kept for symmetry with this codebase's other
// enum types (certificates/auth, certificates/curves) that expose both.
func (p NetworkProtocol) Code() string {
	return p.String()
}

// Int returns the protocol's raw ordinal, or 0 for an invalid value.
func (p NetworkProtocol) Int() int {
	if p.String() == "" {
		return 0
	}
	return int(p)
}

// Int64 is Int as an int64.
func (p NetworkProtocol) Int64() int64 {
	return int64(p.Int())
}

// Uint is Int as a uint.
func (p NetworkProtocol) Uint() uint {
	return uint(p.Int())
}

// Uint64 is Int as a uint64.
func (p NetworkProtocol) Uint64() uint64 {
	return uint64(p.Int())
}

// IsTCP reports whether p names one of the TCP stream families.
func (p NetworkProtocol) IsTCP() bool {
	switch p {
	case NetworkTCP, NetworkTCP4, NetworkTCP6:
		return true
	default:
		return false
	}
}

// IsUDP reports whether p names one of the UDP datagram families.
func (p NetworkProtocol) IsUDP() bool {
	switch p {
	case NetworkUDP, NetworkUDP4, NetworkUDP6:
		return true
	default:
		return false
	}
}

// IsUnix reports whether p is the Unix stream domain socket family.
func (p NetworkProtocol) IsUnix() bool {
	return p == NetworkUnix
}

// IsUnixGram reports whether p is the Unix datagram domain socket family.
func (p NetworkProtocol) IsUnixGram() bool {
	return p == NetworkUnixGram
}

// IsIP reports whether p names one of the raw IP families.
func (p NetworkProtocol) IsIP() bool {
	switch p {
	case NetworkIP, NetworkIP4, NetworkIP6:
		return true
	default:
		return false
	}
}

// Parse matches s (trimmed of surrounding whitespace and quote characters,
// case-insensitively) against a known protocol name, returning NetworkEmpty
// if nothing matches.
func Parse(s string) NetworkProtocol {
	return parseString(s)
}

// ParseBytes is Parse over a byte slice.
func ParseBytes(b []byte) NetworkProtocol {
	return parseString(string(b))
}

// ParseInt64 maps a raw ordinal back to its NetworkProtocol, returning
// NetworkEmpty for anything outside the valid range (including negative
// values and anything that would not fit in a uint8).
func ParseInt64(i int64) NetworkProtocol {
	if i <= 0 || i > int64(NetworkUnixGram) {
		return NetworkEmpty
	}
	if bits.Len64(uint64(i)) > 8 {
		return NetworkEmpty
	}
	return NetworkProtocol(i)
}
