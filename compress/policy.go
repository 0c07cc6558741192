/*
 *  MIT License
 *
 *  Copyright (c) 2025 Nicolas JUHEL
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

// Policy selects which tradeoff Select should optimize for.
type Policy uint8

const (
	// Balanced escalates the algorithm as payload size grows.
	Balanced Policy = iota
	// Performance always prefers the fastest codec (LZ4).
	Performance
	// Ratio always prefers the smallest output (LZMA).
	Ratio
)

// Size tier boundaries (bytes) used by the Balanced policy. Each constant is
// the exclusive upper bound of its tier.
const (
	balancedSmallCeiling  = 10 * 1024 * 1024
	balancedMediumCeiling = 200 * 1024 * 1024
	balancedLargeCeiling  = 300 * 1024 * 1024
)

// Select picks an Algorithm for a payload of the given size, honoring policy
// and falling back through a preference chain restricted to available.
// A size of 0 or below always yields None: there is nothing to compress.
func Select(size int64, policy Policy, available Set) Algorithm {
	if size <= 0 {
		return None
	}

	switch policy {
	case Performance:
		return pick(available, LZ4, ZSTD, GZIP)
	case Ratio:
		return pick(available, LZMA, ZSTD, GZIP, LZ4)
	default:
		return selectBalanced(size, available)
	}
}

func selectBalanced(size int64, available Set) Algorithm {
	switch {
	case size < balancedSmallCeiling:
		return pick(available, LZMA, GZIP, ZSTD, LZ4)
	case size < balancedMediumCeiling:
		return pick(available, GZIP, ZSTD, LZ4)
	case size < balancedLargeCeiling:
		return pick(available, ZSTD, GZIP)
	default:
		return pick(available, LZ4)
	}
}

// pick returns the first preferred algorithm present in available, or None
// if the set is empty (e.g. a misconfigured peer that enabled nothing).
func pick(available Set, preference ...Algorithm) Algorithm {
	for _, a := range preference {
		if available.Has(a) {
			return a
		}
	}
	return None
}
