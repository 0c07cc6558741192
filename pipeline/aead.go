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
 *
 */

// Package pipeline implements the compress-then-encrypt send path and the
// decrypt-then-decompress receive path that sits between the frame codec
// and application payloads.
package pipeline

import (
	"crypto/rand"
	"encoding/hex"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	liberr "github.com/FeatheredSystems/falcotcp/errors"
)

const (
	KeySize   = chacha20poly1305.KeySize   // 32
	NonceSize = chacha20poly1305.NonceSize // 12
	TagSize   = chacha20poly1305.Overhead  // 16
)

// GenKey generates a cryptographically secure random 256-bit AEAD key.
func GenKey() ([KeySize]byte, error) {
	var key [KeySize]byte
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		return key, liberr.ErrInvalidConfiguration.Error(err)
	}
	return key, nil
}

// GetHexKey decodes a hex-encoded key, zero-filling or truncating to KeySize.
func GetHexKey(s string) ([KeySize]byte, error) {
	var key [KeySize]byte
	dst, err := hex.DecodeString(s)
	if err != nil {
		return key, liberr.ErrInvalidConfiguration.Error(err)
	}
	n := len(dst)
	if n > KeySize {
		n = KeySize
	}
	copy(key[:], dst[:n])
	return key, nil
}

// AEAD wraps a chacha20poly1305 cipher. Unlike the fixed-nonce coder it is
// descended from, every Seal call draws a fresh nonce from the CSPRNG and
// prefixes it to the ciphertext; every Open call reads the nonce back out of
// the envelope. A single AEAD instance is therefore safe to reuse across an
// unbounded number of messages under the same key.
type AEAD struct {
	aead cipher
}

type cipher interface {
	NonceSize() int
	Overhead() int
	Seal(dst, nonce, plaintext, additionalData []byte) []byte
	Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
}

// NewAEAD builds an AEAD cipher handle from a 32-byte key.
func NewAEAD(key [KeySize]byte) (*AEAD, error) {
	a, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, liberr.ErrInvalidConfiguration.Error(err)
	}
	return &AEAD{aead: a}, nil
}

// Seal encrypts p and returns nonce ‖ ciphertext ‖ tag.
func (a *AEAD) Seal(p []byte) ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, liberr.ErrIoFailed.Error(err)
	}

	out := make([]byte, 0, NonceSize+len(p)+TagSize)
	out = append(out, nonce...)
	return a.aead.Seal(out, nonce, p, nil), nil
}

// Open splits the nonce from the front of the envelope and authenticates +
// decrypts the remainder. AuthenticationFailed is reported as ErrAuthenticationFailed
// per the transport's error kinds, never as a raw cipher error.
func (a *AEAD) Open(envelope []byte) ([]byte, error) {
	if len(envelope) < NonceSize+TagSize {
		return nil, liberr.ErrShortRead.Error()
	}

	nonce := envelope[:NonceSize]
	ciphertext := envelope[NonceSize:]

	p, err := a.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, liberr.ErrAuthenticationFailed.Error(err)
	}
	return p, nil
}
