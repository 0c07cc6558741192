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

// Package compress provides the wire compression tag used by FalcoTCP
// messages, plus a size-and-policy based Algorithm selector.
//
// The Algorithm enum's numeric values are fixed by the wire format
// (None=0, LZMA=1, GZIP=2, LZ4=3, ZSTD=4) and must never be reordered;
// unknown tags decode to None rather than failing the connection.
//
// Select implements the Performance/Ratio/Balanced policy described by the
// transport: Performance always picks LZ4, Ratio always picks LZMA, and
// Balanced moves from LZMA (under 10 MiB) to GZIP (under 200 MiB) to ZSTD
// (under 300 MiB) to LZ4 (300 MiB and up) as payload size grows, falling back through the
// available set when a preferred algorithm isn't enabled for the peer.
//
// Reader/Writer wrap the stdlib gzip codec and the pierrec/lz4,
// ulikunitz/xz and klauspost/compress/zstd libraries behind one
// interface so the pipeline package never imports a compression library
// directly.
package compress
