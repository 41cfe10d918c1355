/*
Copyright (c) 2017 Simon Schmidt

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package bitstream

// Writer writes bits least-significant-bit first into a caller-owned
// byte buffer. It never allocates: exceeding the buffer sets a sticky
// failure flag instead of growing.
//
// Pending bits accumulate in a 64-bit cache (wider than the reader's
// 32-bit cache) so that a single call depositing up to 32 bits never
// overflows against bits already pending from a previous call.
type Writer struct {
	buf    []byte
	pos    int
	bitPos uint
	cache  uint64
	failed bool
}

// NewWriter returns a Writer that fills buf from the start.
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

// WriteBits deposits the low n bits of x (bit 0 first), 1 <= n <= 32.
// Once the buffer is exhausted, WriteBits sets the sticky failure flag
// and all further writes are no-ops.
func (w *Writer) WriteBits(x uint32, n int) {
	if w.failed || n == 0 {
		return
	}
	mask := uint64(1)<<uint(n) - 1
	w.cache |= (uint64(x) & mask) << w.bitPos
	w.bitPos += uint(n)
	for w.bitPos >= 8 {
		if w.pos >= len(w.buf) {
			w.failed = true
			return
		}
		w.buf[w.pos] = byte(w.cache)
		w.cache >>= 8
		w.pos++
		w.bitPos -= 8
	}
}

// ForceFlush writes out any partial trailing byte and returns the
// total number of bytes written so far.
func (w *Writer) ForceFlush() int {
	if !w.failed && w.bitPos > 0 {
		if w.pos >= len(w.buf) {
			w.failed = true
		} else {
			w.buf[w.pos] = byte(w.cache)
			w.pos++
			w.bitPos = 0
			w.cache = 0
		}
	}
	return w.pos
}

// Size returns the number of whole bytes written so far, not counting
// an unflushed partial byte.
func (w *Writer) Size() int {
	return w.pos
}

// Failed reports whether a write has ever exceeded the buffer.
func (w *Writer) Failed() bool {
	return w.failed
}
