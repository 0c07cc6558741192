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

package pipeline

import (
	"encoding/binary"
	"io"

	"github.com/FeatheredSystems/falcotcp/compress"
	liberr "github.com/FeatheredSystems/falcotcp/errors"
)

// Config describes how a Pipeline picks its compression algorithm and
// whether it wraps the result in AEAD. A nil *AEAD disables encryption
// entirely, matching the transport's "AEAD is optional" design note.
type Config struct {
	Policy    compress.Policy
	Available compress.Set
	AEAD      *AEAD
}

// Pipeline is the compress-then-encrypt / decrypt-then-decompress chain
// that sits between frame bodies and application payloads.
type Pipeline struct {
	cfg Config
}

// New builds a Pipeline from cfg.
func New(cfg Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// Send compresses plaintext (chosen by the configured policy), then
// encrypts it if AEAD is configured, returning the bytes to place in a
// frame body plus the compression tag to place in the frame header.
//
// LZ4 carries its own 8-byte big-endian original-size prefix ahead of the
// compressed stream; every other algorithm does not. This is a wire
// compatibility quirk of the original format and is applied here, at the
// envelope boundary, rather than inside the compress package.
func (p *Pipeline) Send(plaintext []byte) (body []byte, tag compress.Algorithm, err error) {
	tag = compress.Select(int64(len(plaintext)), p.cfg.Policy, p.cfg.Available)

	compressed, err := compressBytes(tag, plaintext)
	if err != nil {
		return nil, compress.None, err
	}

	if p.cfg.AEAD == nil {
		return compressed, tag, nil
	}

	sealed, err := p.cfg.AEAD.Seal(compressed)
	if err != nil {
		return nil, compress.None, err
	}
	return sealed, tag, nil
}

// Receive reverses Send: decrypt (if AEAD is configured) then decompress
// per the frame header's compression tag.
func (p *Pipeline) Receive(body []byte, tag compress.Algorithm) ([]byte, error) {
	compressed := body

	if p.cfg.AEAD != nil {
		opened, err := p.cfg.AEAD.Open(body)
		if err != nil {
			return nil, err
		}
		compressed = opened
	}

	return decompressBytes(tag, compressed)
}

func compressBytes(tag compress.Algorithm, plaintext []byte) ([]byte, error) {
	if tag == compress.None {
		return plaintext, nil
	}

	var buf bufferWriteCloser
	w, err := tag.Writer(&buf)
	if err != nil {
		return nil, liberr.ErrInvalidConfiguration.Error(err)
	}
	if _, err = w.Write(plaintext); err != nil {
		return nil, liberr.ErrIoFailed.Error(err)
	}
	if err = w.Close(); err != nil {
		return nil, liberr.ErrIoFailed.Error(err)
	}

	if tag != compress.LZ4 {
		return buf.Bytes(), nil
	}

	out := make([]byte, 8, 8+buf.Len())
	binary.BigEndian.PutUint64(out, uint64(len(plaintext)))
	out = append(out, buf.Bytes()...)
	return out, nil
}

func decompressBytes(tag compress.Algorithm, compressed []byte) ([]byte, error) {
	if tag == compress.None {
		return compressed, nil
	}

	payload := compressed
	if tag == compress.LZ4 {
		if len(payload) < 8 {
			return nil, liberr.ErrDecompressionFailed.Error()
		}
		payload = payload[8:]
	}

	r, err := tag.Reader(bytesReader(payload))
	if err != nil {
		return nil, liberr.ErrDecompressionFailed.Error(err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, liberr.ErrDecompressionFailed.Error(err)
	}
	return out, nil
}
