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

// Package perm wraps os.FileMode with octal and symbolic ("rwxr-xr-x")
// string parsing, so logger config files can express file/path permissions
// as plain strings instead of raw integers.
package perm

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Perm is a file permission, convertible to and from os.FileMode.
type Perm os.FileMode

// Parse parses an octal ("0644") or symbolic ("rwxr-xr-x", optionally
// prefixed with a file-type character) permission string.
func Parse(s string) (Perm, error) {
	return parseString(s)
}

// ParseFileMode wraps an os.FileMode as a Perm.
func ParseFileMode(p os.FileMode) Perm {
	return Perm(p)
}

// ParseInt parses i as an octal permission value.
func ParseInt(i int) (Perm, error) {
	return parseString(strconv.FormatInt(int64(i), 8))
}

// ParseInt64 parses i as an octal permission value.
func ParseInt64(i int64) (Perm, error) {
	return parseString(strconv.FormatInt(i, 8))
}

// ParseByte parses p as an octal or symbolic permission string.
func ParseByte(p []byte) (Perm, error) {
	return parseString(string(p))
}

func parseString(s string) (Perm, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.ReplaceAll(s, "'", "")

	if v, e := strconv.ParseUint(s, 8, 32); e == nil {
		return Perm(v), nil
	}

	return parseSymbolic(s)
}

func parseSymbolic(s string) (Perm, error) {
	if len(s) != 9 && len(s) != 10 {
		return 0, fmt.Errorf("invalid permission %q", s)
	}

	var mode os.FileMode
	start := 0

	if len(s) == 10 {
		switch s[0] {
		case '-':
		case 'd':
			mode |= os.ModeDir
		case 'l':
			mode |= os.ModeSymlink
		case 'c':
			mode |= os.ModeDevice | os.ModeCharDevice
		case 'b':
			mode |= os.ModeDevice
		case 'p':
			mode |= os.ModeNamedPipe
		case 's':
			mode |= os.ModeSocket
		default:
			return 0, fmt.Errorf("invalid file type character: %c", s[0])
		}
		start = 1
	}

	group := func(chars string) (os.FileMode, error) {
		var v os.FileMode
		switch chars[0] {
		case 'r':
			v += 4
		case '-':
		default:
			return 0, fmt.Errorf("invalid read permission character: %c", chars[0])
		}
		switch chars[1] {
		case 'w':
			v += 2
		case '-':
		default:
			return 0, fmt.Errorf("invalid write permission character: %c", chars[1])
		}
		switch chars[2] {
		case 'x':
			v += 1
		case '-':
		default:
			return 0, fmt.Errorf("invalid execute permission character: %c", chars[2])
		}
		return v, nil
	}

	for i := 0; i < 3; i++ {
		g, err := group(s[start+i*3 : start+i*3+3])
		if err != nil {
			return 0, err
		}
		mode |= g << uint(6-i*3)
	}

	return Perm(mode), nil
}

// FileMode returns p as an os.FileMode.
func (p Perm) FileMode() os.FileMode { return os.FileMode(p.Uint32()) }

// String renders p as an octal number, e.g. "0644".
func (p Perm) String() string { return fmt.Sprintf("%#o", p.Uint64()) }

func (p Perm) Int64() int64 {
	if uint64(p) > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(p)
}

func (p Perm) Uint64() uint64 { return uint64(p) }

func (p Perm) Uint32() uint32 {
	if uint64(p) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(p)
}
