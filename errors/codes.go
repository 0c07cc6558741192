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

package errors

// Error kinds shared by every FalcoTCP component: configuration, framing,
// transport, cryptography and compression all report through these codes
// rather than raw error strings, so a caller can switch on CodeError instead
// of matching message text.
const (
	ErrInvalidConfiguration CodeError = iota + MinAvailable
	ErrIoFailed
	ErrTimeout
	ErrShortRead
	ErrAuthenticationFailed
	ErrDecompressionFailed
	ErrPoolExhausted
)

func init() {
	RegisterIdFctMessage(ErrInvalidConfiguration, getCommonMessage)
}

func getCommonMessage(code CodeError) (message string) {
	switch code {
	case UnknownError:
		return ""
	case ErrInvalidConfiguration:
		return "invalid configuration"
	case ErrIoFailed:
		return "i/o operation failed"
	case ErrTimeout:
		return "operation timed out"
	case ErrShortRead:
		return "short read: connection closed before frame was complete"
	case ErrAuthenticationFailed:
		return "AEAD authentication failed"
	case ErrDecompressionFailed:
		return "decompression failed"
	case ErrPoolExhausted:
		return "connection pool exhausted"
	}

	return ""
}
