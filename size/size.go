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

// Package size provides a byte-count type used for buffer and file size
// configuration fields (e.g. logger/config's FileBufferSize), with the usual
// binary magnitude constants and octal-free parsing from plain integers.
package size

import (
	"fmt"
	"strconv"
)

// Size counts bytes. It is always non-negative; ParseInt64 takes the
// absolute value of its input.
type Size int64

const (
	SizeNul  Size = 0
	SizeUnit Size = 1
	SizeKilo Size = SizeUnit << 10
	SizeMega Size = SizeKilo << 10
	SizeGiga Size = SizeMega << 10
	SizeTera Size = SizeGiga << 10
	SizePeta Size = SizeTera << 10
	SizeExa  Size = SizePeta << 10
)

// ParseInt64 returns the Size for i, taking the absolute value.
func ParseInt64(i int64) Size {
	if i < 0 {
		i = -i
	}
	return Size(i)
}

// SizeFromInt64 is an alias for ParseInt64.
func SizeFromInt64(i int64) Size {
	return ParseInt64(i)
}

// ParseUint64 returns the Size for i.
func ParseUint64(i uint64) Size {
	return Size(i)
}

// Parse parses a plain base-10 byte count (no unit suffix).
func Parse(s string) (Size, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ParseInt64(i), nil
}

// Int64 returns the size in bytes.
func (s Size) Int64() int64 {
	return int64(s)
}

// Uint64 returns the size in bytes.
func (s Size) Uint64() uint64 {
	if s < 0 {
		return 0
	}
	return uint64(s)
}

// String renders the size using the largest binary unit that keeps the
// mantissa >= 1 (e.g. "1.50 MiB").
func (s Size) String() string {
	switch {
	case s >= SizeExa:
		return fmt.Sprintf("%.2f EiB", float64(s)/float64(SizeExa))
	case s >= SizePeta:
		return fmt.Sprintf("%.2f PiB", float64(s)/float64(SizePeta))
	case s >= SizeTera:
		return fmt.Sprintf("%.2f TiB", float64(s)/float64(SizeTera))
	case s >= SizeGiga:
		return fmt.Sprintf("%.2f GiB", float64(s)/float64(SizeGiga))
	case s >= SizeMega:
		return fmt.Sprintf("%.2f MiB", float64(s)/float64(SizeMega))
	case s >= SizeKilo:
		return fmt.Sprintf("%.2f KiB", float64(s)/float64(SizeKilo))
	default:
		return fmt.Sprintf("%d B", int64(s))
	}
}
