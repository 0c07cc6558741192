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

package reactor

// State is one step of a client record's lifecycle. Every transition in the
// reactor is one of the arrows below; there is no other way to move between
// states.
//
//	NonExistent -> (accept)          -> Idle
//	Idle        -> (submit recv hdr) -> HeadersReading
//	HeadersReading -> (9 bytes in)   -> HeadersReady
//	HeadersReady-> (submit recv body)-> BodyReading
//	BodyReading -> (size bytes in)   -> Available
//	Available   -> (handed to app)   -> Processing
//	Processing  -> (apply response)  -> Ready
//	Ready       -> (submit write)    -> Writing
//	Writing     -> (all bytes out)   -> Idle
//	any state   -> (error|timeout|drop) -> Kill -> (submit close) -> reclaimed
type State uint8

const (
	NonExistent State = iota
	Idle
	HeadersReading
	HeadersReady
	BodyReading
	Available
	Processing
	Ready
	Writing
	Kill
)

func (s State) String() string {
	switch s {
	case NonExistent:
		return "NonExistent"
	case Idle:
		return "Idle"
	case HeadersReading:
		return "HeadersReading"
	case HeadersReady:
		return "HeadersReady"
	case BodyReading:
		return "BodyReading"
	case Available:
		return "Available"
	case Processing:
		return "Processing"
	case Ready:
		return "Ready"
	case Writing:
		return "Writing"
	case Kill:
		return "Kill"
	default:
		return "unknown"
	}
}
