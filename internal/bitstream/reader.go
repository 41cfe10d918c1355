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

// Package bitstream implements the bit-granular serializers that the
// Huffman tree representation and symbol stream are transmitted over.
//
// Reader mirrors the sliding 32-bit bit cache of the reference HZR
// decoder: a byte cursor plus a bit position within a cache word that
// is refilled one byte at a time as it drains. Unchecked methods trust
// the caller to have kept at least four bytes of look-ahead available
// (the fast decode loop in internal/block guarantees this via a safety
// margin); checked methods verify bounds and set a sticky failure flag
// instead.
package bitstream

var bitsMask = [33]uint32{
	0,
	0x00000001, 0x00000003, 0x00000007, 0x0000000f,
	0x0000001f, 0x0000003f, 0x0000007f, 0x000000ff,
	0x000001ff, 0x000003ff, 0x000007ff, 0x00000fff,
	0x00001fff, 0x00003fff, 0x00007fff, 0x0000ffff,
	0x0001ffff, 0x0003ffff, 0x0007ffff, 0x000fffff,
	0x001fffff, 0x003fffff, 0x007fffff, 0x00ffffff,
	0x01ffffff, 0x03ffffff, 0x07ffffff, 0x0fffffff,
	0x1fffffff, 0x3fffffff, 0x7fffffff, 0xffffffff,
}

// Reader reads bits least-significant-bit first from a byte buffer.
type Reader struct {
	buf     []byte
	pos     int // byte_ptr, relative to buf[0]
	bitPos  int // 0..31
	cache   uint32
	failed  bool
}

// NewReader positions a Reader at the start of buf and pre-loads the
// bit cache with up to four bytes of look-ahead.
func NewReader(buf []byte) *Reader {
	r := &Reader{buf: buf}
	n := len(buf)
	if n > 4 {
		n = 4
	}
	for i := 0; i < n; i++ {
		r.cache |= uint32(buf[i]) << uint(8*i)
	}
	return r
}

func (r *Reader) updateCacheUnchecked() {
	for r.bitPos >= 8 {
		r.cache = (r.cache >> 8) | (uint32(r.buf[r.pos+4]) << 24)
		r.pos++
		r.bitPos -= 8
	}
}

func (r *Reader) updateCacheSafe() {
	for r.bitPos >= 8 {
		r.cache >>= 8
		if r.pos+4 < len(r.buf) {
			r.cache |= uint32(r.buf[r.pos+4]) << 24
		}
		r.pos++
		r.bitPos -= 8
	}
}

// ReadBit reads one bit without bounds checking. The caller must have
// at least four bytes of look-ahead remaining.
func (r *Reader) ReadBit() uint32 {
	x := (r.cache >> uint(r.bitPos)) & 1
	r.bitPos++
	r.updateCacheUnchecked()
	return x
}

// ReadBitChecked reads one bit, setting the sticky failure flag and
// returning 0 if the read would pass the end of the buffer.
func (r *Reader) ReadBitChecked() uint32 {
	if r.pos >= len(r.buf) {
		r.failed = true
		return 0
	}
	x := (r.cache >> uint(r.bitPos)) & 1
	r.bitPos++
	r.updateCacheSafe()
	return x
}

// ReadBits reads 1..32 bits without bounds checking.
func (r *Reader) ReadBits(bits int) uint32 {
	bitsToRead := 32 - r.bitPos
	if bitsToRead > bits {
		bitsToRead = bits
	}
	x := (r.cache >> uint(r.bitPos)) & bitsMask[bitsToRead]
	r.bitPos += bitsToRead
	bits -= bitsToRead
	r.updateCacheUnchecked()

	if bits > 0 {
		x |= (r.cache & bitsMask[bits]) << uint(bitsToRead)
		r.bitPos += bits
		r.updateCacheUnchecked()
	}
	return x
}

// ReadBitsChecked reads 1..32 bits, setting the sticky failure flag
// and returning 0 if the read would pass the end of the buffer.
func (r *Reader) ReadBitsChecked(bits int) uint32 {
	newBitPos := r.bitPos + bits
	newBytePtr := r.pos + (newBitPos >> 3)
	if newBytePtr > len(r.buf) || (newBytePtr == len(r.buf) && (newBitPos&7) != 0) {
		r.failed = true
		return 0
	}

	bitsToRead := 32 - r.bitPos
	if bitsToRead > bits {
		bitsToRead = bits
	}
	x := (r.cache >> uint(r.bitPos)) & bitsMask[bitsToRead]
	r.bitPos += bitsToRead
	bits -= bitsToRead
	r.updateCacheSafe()

	if bits > 0 {
		x |= (r.cache & bitsMask[bits]) << uint(bitsToRead)
		r.bitPos += bits
		r.updateCacheSafe()
	}
	return x
}

// Peek8 returns the next 8 bits without consuming them.
func (r *Reader) Peek8() uint8 {
	return uint8(r.cache >> uint(r.bitPos))
}

// Advance skips n bits without bounds checking.
func (r *Reader) Advance(n int) {
	r.bitPos += n
	r.updateCacheUnchecked()
}

// AdvanceChecked skips n bits, setting the sticky failure flag if the
// advance would pass the end of the buffer.
func (r *Reader) AdvanceChecked(n int) {
	newBitPos := r.bitPos + n
	newBytePtr := r.pos + (newBitPos >> 3)
	if newBytePtr > len(r.buf) || (newBytePtr == len(r.buf) && (newBitPos&7) != 0) {
		r.failed = true
		return
	}
	r.bitPos = newBitPos
	r.updateCacheSafe()
}

// BytePos returns the current byte cursor, for the fast/tail loop
// safety-margin check.
func (r *Reader) BytePos() int {
	return r.pos
}

// Len returns the number of bytes in the underlying buffer.
func (r *Reader) Len() int {
	return len(r.buf)
}

// Failed reports whether a checked operation has failed. Once set, it
// stays set.
func (r *Reader) Failed() bool {
	return r.failed
}

// AtEnd reports whether the cursor sits at the end of the buffer, or
// one byte before it with only sub-byte padding bits remaining.
func (r *Reader) AtEnd() bool {
	return (r.pos == len(r.buf) && r.bitPos == 0) ||
		(r.pos == len(r.buf)-1 && r.bitPos > 0)
}
