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

// Package frame implements FalcoTCP's 9-byte message header and the body
// read/write helpers built on top of it. Nothing here assumes a message
// arrives in a single read or write; every body transfer goes through
// io.ReadFull so a frame split across several TCP segments is handled
// transparently.
package frame

import (
	"encoding/binary"
	"io"

	"github.com/FeatheredSystems/falcotcp/compress"
	liberr "github.com/FeatheredSystems/falcotcp/errors"
)

// HeaderSize is the fixed wire size of a message header: an 8-byte
// little-endian body length followed by a 1-byte compression tag.
const HeaderSize = 9

// Header is the decoded form of the 9-byte frame header.
type Header struct {
	Size        uint64
	Compression compress.Algorithm
}

// Encode writes the header's wire representation: size as little-endian
// uint64, compression tag as a single byte.
func (h Header) Encode() [HeaderSize]byte {
	var b [HeaderSize]byte
	binary.LittleEndian.PutUint64(b[0:8], h.Size)
	b[8] = uint8(h.Compression)
	return b
}

// DecodeHeader parses a 9-byte buffer into a Header. The compression byte
// tolerates unknown values, decoding them to compress.None per the wire
// format's "tolerant reader" rule.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, liberr.ErrShortRead.Error()
	}
	return Header{
		Size:        binary.LittleEndian.Uint64(b[0:8]),
		Compression: compress.Parse(b[8]),
	}, nil
}

// ReadHeader reads exactly HeaderSize bytes from r and decodes them. A
// zero-byte read (clean connection close between frames) surfaces as io.EOF;
// any other short read surfaces as ErrShortRead.
func ReadHeader(r io.Reader) (Header, error) {
	var b [HeaderSize]byte

	n, err := io.ReadFull(r, b[:])
	if err != nil {
		if err == io.EOF && n == 0 {
			return Header{}, io.EOF
		}
		if err == io.ErrUnexpectedEOF {
			return Header{}, liberr.ErrShortRead.Error(err)
		}
		return Header{}, liberr.ErrIoFailed.Error(err)
	}

	return DecodeHeader(b[:])
}

// ReadBody reads exactly Size bytes following a header. A partial body
// (peer closed mid-message) surfaces as ErrShortRead, never a bare io.EOF,
// since by this point the message is known to be incomplete rather than
// absent.
func ReadBody(r io.Reader, h Header) ([]byte, error) {
	body := make([]byte, h.Size)
	if h.Size == 0 {
		return body, nil
	}

	if _, err := io.ReadFull(r, body); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, liberr.ErrShortRead.Error(err)
		}
		return nil, liberr.ErrIoFailed.Error(err)
	}

	return body, nil
}

// ReadFrame reads a full header+body frame from r.
func ReadFrame(r io.Reader) (Header, []byte, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return Header{}, nil, err
	}

	body, err := ReadBody(r, h)
	if err != nil {
		return Header{}, nil, err
	}

	return h, body, nil
}

// WriteFrame writes a header, then body, to w as two separate writes (the
// second is skipped for an empty body); callers must not assume a
// partial write is an error on its own, io.Writer's contract already
// guarantees Write returns an error whenever n < len(p).
func WriteFrame(w io.Writer, compression compress.Algorithm, body []byte) error {
	h := Header{Size: uint64(len(body)), Compression: compression}
	enc := h.Encode()

	if _, err := w.Write(enc[:]); err != nil {
		return liberr.ErrIoFailed.Error(err)
	}

	if len(body) == 0 {
		return nil
	}

	if _, err := w.Write(body); err != nil {
		return liberr.ErrIoFailed.Error(err)
	}

	return nil
}
