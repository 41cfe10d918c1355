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

// Package block encodes and decodes single HZR blocks: the choice
// between storing a block raw, as a single repeated fill byte, or as
// a canonical-Huffman-plus-zero-run-length symbol stream, and the
// symbol stream's construction in each direction.
package block

import (
	"github.com/mbitsnbites/hzr/internal/bitstream"
	"github.com/mbitsnbites/hzr/internal/huffman"
	"github.com/mbitsnbites/hzr/internal/rle"
)

// Mode identifies how a block's payload is encoded.
type Mode byte

const (
	ModeCopy    Mode = 0
	ModeHuffRLE Mode = 1
	ModeFill    Mode = 2
)

// MaxSize is the largest number of decoded bytes a single block may
// cover.
const MaxSize = 65536

// isFillable reports whether every byte of src has the same value,
// returning that value. A one-byte block trivially qualifies.
func isFillable(src []byte) (fill byte, ok bool) {
	if len(src) == 0 {
		return 0, false
	}
	fill = src[0]
	for _, b := range src[1:] {
		if b != fill {
			return 0, false
		}
	}
	return fill, true
}

// histogram counts literal and RLE symbol occurrences across src,
// collapsing runs of two or more zero bytes into RLE tokens exactly
// as the symbol-stream emitter will.
func histogram(src []byte) (symbols [huffman.NumSymbols]huffman.SymbolInfo) {
	i := 0
	for i < len(src) {
		if src[i] != 0 {
			symbols[src[i]].Count++
			i++
			continue
		}
		run := 1
		for i+run < len(src) && src[i+run] == 0 && run < rle.MaxRun {
			run++
		}
		if run == 1 {
			symbols[0].Count++
			i++
			continue
		}
		span := run
		for run > 0 {
			symbol, _, _, used := rle.Encode(run)
			symbols[symbol].Count++
			run -= used
		}
		i += span
	}
	return
}

// emitSymbols writes src's symbol stream (literals interleaved with
// RLE tokens for zero runs) using the prefix codes assigned in
// symbols. It returns false if w overflows partway through.
func emitSymbols(w *bitstream.Writer, src []byte, symbols *[huffman.NumSymbols]huffman.SymbolInfo) bool {
	i := 0
	for i < len(src) {
		if src[i] != 0 {
			s := &symbols[src[i]]
			w.WriteBits(s.Code, s.Bits)
			i++
			if w.Failed() {
				return false
			}
			continue
		}
		run := 1
		for i+run < len(src) && src[i+run] == 0 && run < rle.MaxRun {
			run++
		}
		if run == 1 {
			s := &symbols[0]
			w.WriteBits(s.Code, s.Bits)
			i++
			if w.Failed() {
				return false
			}
			continue
		}
		remaining := run
		for remaining > 0 {
			symbol, extraBits, extraValue, used := rle.Encode(remaining)
			s := &symbols[symbol]
			w.WriteBits(s.Code, s.Bits)
			if extraBits > 0 {
				w.WriteBits(extraValue, extraBits)
			}
			if w.Failed() {
				return false
			}
			remaining -= used
		}
		i += run
	}
	return true
}

// Encode chooses an encoding for src and writes the resulting payload
// (not including the 7-byte block header) into scratch, which must be
// at least len(src) bytes. It returns the mode chosen and the number
// of bytes written. COPY is always available as a fallback, so Encode
// never fails.
func Encode(scratch []byte, src []byte) (mode Mode, n int) {
	if fill, ok := isFillable(src); ok {
		scratch[0] = fill
		return ModeFill, 1
	}

	symbols := histogram(src)
	nodes, root := huffman.Build(&symbols)
	w := bitstream.NewWriter(scratch[:len(src)])
	huffman.Emit(w, nodes, root, &symbols)
	if !w.Failed() && emitSymbols(w, src, &symbols) {
		size := w.ForceFlush()
		if !w.Failed() && size < len(src) {
			return ModeHuffRLE, size
		}
	}

	copy(scratch[:len(src)], src)
	return ModeCopy, len(src)
}
