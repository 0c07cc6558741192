/*
 *  MIT License
 *
 *  Copyright (c) 2020 Nicolas JUHEL
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

package compress

import "bytes"

// Algorithm is the wire tag carried in byte 8 of every FalcoTCP message
// header. Values are fixed by the wire format and must never be reordered.
type Algorithm uint8

const (
	None Algorithm = iota
	LZMA
	GZIP
	LZ4
	ZSTD
)

// Set is a bitmask of algorithms a peer is willing to accept, used by
// Select to restrict its pick to what the other end actually enabled.
type Set uint8

const (
	SetLZMA Set = 1 << iota
	SetGZIP
	SetLZ4
	SetZSTD
)

func (s Set) Has(a Algorithm) bool {
	switch a {
	case LZMA:
		return s&SetLZMA != 0
	case GZIP:
		return s&SetGZIP != 0
	case LZ4:
		return s&SetLZ4 != 0
	case ZSTD:
		return s&SetZSTD != 0
	default:
		return true
	}
}

// AllAlgorithms is the full enabled set, used when a config leaves
// the algorithm allow-list empty.
const AllAlgorithms = SetLZMA | SetGZIP | SetLZ4 | SetZSTD

func List() []Algorithm {
	return []Algorithm{
		None,
		LZMA,
		GZIP,
		LZ4,
		ZSTD,
	}
}

func ListString() []string {
	var (
		lst = List()
		res = make([]string, len(lst))
	)
	for i := range lst {
		res[i] = lst[i].String()
	}
	return res
}

func (a Algorithm) IsNone() bool {
	return a == None
}

// Parse decodes the wire byte into an Algorithm. Unknown values decode to
// None, matching the "tolerant reader" rule for the compression tag.
func Parse(b uint8) Algorithm {
	switch Algorithm(b) {
	case LZMA, GZIP, LZ4, ZSTD:
		return Algorithm(b)
	default:
		return None
	}
}

func (a Algorithm) String() string {
	switch a {
	case GZIP:
		return "gzip"
	case LZMA:
		return "lzma"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return "none"
	}
}

func (a Algorithm) Extension() string {
	switch a {
	case GZIP:
		return ".gz"
	case LZMA:
		return ".xz"
	case LZ4:
		return ".lz4"
	case ZSTD:
		return ".zst"
	default:
		return ""
	}
}

func (a Algorithm) DetectHeader(h []byte) bool {
	if len(h) < 4 {
		return false
	}

	switch a {
	case GZIP:
		exp := []byte{31, 139}
		return bytes.Equal(h[0:2], exp)
	case LZ4:
		exp := []byte{0x04, 0x22, 0x4D, 0x18}
		return bytes.Equal(h[0:4], exp)
	case LZMA:
		if len(h) < 6 {
			return false
		}
		exp := []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
		return bytes.Equal(h[0:6], exp)
	case ZSTD:
		exp := []byte{0x28, 0xB5, 0x2F, 0xFD}
		return bytes.Equal(h[0:4], exp)
	default:
		return false
	}
}
