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

// Package certs parses the key+certificate pairs certificates.Config loads
// via AddCertificatePairFile into the tls.Certificate values a reactor's or
// pool's listener presents during the handshake. A pair may come from two
// separate PEM strings/files (ConfigPair) or one combined PEM blob holding
// both the key and the chain (ConfigChain).
package certs

import (
	"crypto/tls"
	"encoding"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Cert is a parsed key+certificate pair, encodable in every format
// certificates.Config persists a TLSConfig under.
type Cert interface {
	encoding.TextMarshaler
	encoding.TextUnmarshaler
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
	toml.Marshaler
	toml.Unmarshaler
	cbor.Marshaler
	cbor.Unmarshaler
	fmt.Stringer

	// Chain returns the PEM chain, or an empty string if this Cert isn't
	// chain-shaped.
	Chain() (string, error)
	// Pair returns the PEM public/private key, or empty strings if this
	// Cert isn't pair-shaped.
	Pair() (pub string, key string, err error)
	// TLS returns the tls.Certificate ready to hand to a *tls.Config.
	TLS() tls.Certificate
	// Model exposes the underlying parsed representation.
	Model() Certif

	// IsChain reports whether this Cert was parsed from a combined PEM chain.
	IsChain() bool
	// IsPair reports whether this Cert was parsed from a separate key/cert pair.
	IsPair() bool
	// IsFile reports whether this Cert's source is a file path rather than inline PEM.
	IsFile() bool
	// GetCerts returns the raw source strings backing this Cert.
	GetCerts() []string
}

// Parse parses a combined PEM chain (key followed by certificate(s)) into a Cert.
func Parse(chain string) (Cert, error) {
	c := ConfigChain(chain)
	return parseCert(&c)
}

// ParsePair parses a separate PEM private key and certificate into a Cert.
func ParsePair(key, pub string) (Cert, error) {
	return parseCert(&ConfigPair{Key: key, Pub: pub})
}

func parseCert(cfg Config) (Cert, error) {
	if c, e := cfg.Cert(); e != nil {
		return nil, e
	} else if c == nil {
		return nil, ErrInvalidPairCertificate
	} else {
		return &Certif{g: cfg, c: *c}, nil
	}
}
