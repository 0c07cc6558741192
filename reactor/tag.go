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

// opKind identifies which submitted operation a completion reports on.
type opKind uint8

const (
	opAccept opKind = iota
	opRecvHeader
	opRecvBody
	opWrite
	opClose
)

// tag packs (generation, slot, op) into the opaque uint64 a completion
// carries. The author log (Reactor.generation) compares its current
// generation for a slot against the one baked into a completion's tag; a
// mismatch means the slot was killed and reused since the operation was
// submitted, and the completion is discarded rather than applied to the
// wrong client record. This is the generation+slot+op scheme the design
// notes describe as the use-after-free guard for a completion queue.
func makeTag(generation uint32, slot uint32, op opKind) uint64 {
	return uint64(generation)<<32 | uint64(slot)<<8 | uint64(op)
}

func decodeTag(tag uint64) (generation uint32, slot uint32, op opKind) {
	generation = uint32(tag >> 32)
	slot = uint32((tag >> 8) & 0xFFFFFF)
	op = opKind(tag & 0xFF)
	return
}
