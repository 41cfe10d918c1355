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

package block

import (
	"github.com/mbitsnbites/hzr/internal/bitstream"
	"github.com/mbitsnbites/hzr/internal/huffman"
	"github.com/mbitsnbites/hzr/internal/rle"
)

// safetyMargin is how many whole bytes of look-ahead the unchecked
// bitstream reads need available at all times; Decode switches to the
// checked, slower path once fewer than this many bytes remain.
const safetyMargin = 10

// decodeSymbolFast reads one symbol using the unchecked reader
// methods, walking the tree's lookup table in a single step when the
// code is 8 bits or shorter.
func decodeSymbolFast(r *bitstream.Reader, tree *huffman.DecodeTree) int {
	e := tree.Lut[r.Peek8()]
	if e.Node == -1 {
		r.Advance(int(e.Bits))
		return int(e.Symbol)
	}
	r.Advance(8)
	node := e.Node
	for tree.Nodes[node].Symbol < 0 {
		if r.ReadBit() == 0 {
			node = tree.Nodes[node].ChildA
		} else {
			node = tree.Nodes[node].ChildB
		}
	}
	return int(tree.Nodes[node].Symbol)
}

// decodeSymbolChecked mirrors decodeSymbolFast using the bounds-
// checked reader methods. The caller must inspect r.Failed() after
// calling it; a failure mid-walk leaves the returned symbol
// meaningless.
func decodeSymbolChecked(r *bitstream.Reader, tree *huffman.DecodeTree) int {
	e := tree.Lut[r.Peek8()]
	if e.Node == -1 {
		r.AdvanceChecked(int(e.Bits))
		return int(e.Symbol)
	}
	r.AdvanceChecked(8)
	if r.Failed() {
		return 0
	}
	node := e.Node
	for tree.Nodes[node].Symbol < 0 {
		bit := r.ReadBitChecked()
		if r.Failed() {
			return 0
		}
		if bit == 0 {
			node = tree.Nodes[node].ChildA
		} else {
			node = tree.Nodes[node].ChildB
		}
	}
	return int(tree.Nodes[node].Symbol)
}

// Decode reconstructs a block's original bytes from its payload
// (everything past the 7-byte block header) according to mode, into
// dst[:decodedLen].
func Decode(dst []byte, payload []byte, mode Mode, decodedLen int) error {
	switch mode {
	case ModeCopy:
		if len(payload) != decodedLen {
			return ErrStructural
		}
		copy(dst[:decodedLen], payload)
		return nil

	case ModeFill:
		if len(payload) != 1 {
			return ErrStructural
		}
		fill := payload[0]
		for i := 0; i < decodedLen; i++ {
			dst[i] = fill
		}
		return nil

	case ModeHuffRLE:
		return decodeHuffRLE(dst, payload, decodedLen)

	default:
		return ErrStructural
	}
}

func decodeHuffRLE(dst []byte, payload []byte, decodedLen int) error {
	r := bitstream.NewReader(payload)

	var tree huffman.DecodeTree
	if err := tree.Recover(r); err != nil {
		return ErrCorruptTree
	}
	if r.Failed() {
		return ErrCorruptTree
	}

	out := 0
	for out < decodedLen {
		fast := r.BytePos()+safetyMargin <= r.Len()

		var symbol int
		if fast {
			symbol = decodeSymbolFast(r, &tree)
		} else {
			symbol = decodeSymbolChecked(r, &tree)
			if r.Failed() {
				return ErrTruncated
			}
		}

		if symbol < 256 {
			dst[out] = byte(symbol)
			out++
			continue
		}

		extraBits := rle.ExtraBits(symbol)
		var extraValue uint32
		if extraBits > 0 {
			if fast {
				extraValue = r.ReadBits(extraBits)
			} else {
				extraValue = r.ReadBitsChecked(extraBits)
				if r.Failed() {
					return ErrTruncated
				}
			}
		}

		n := rle.Decode(symbol, extraValue)
		if n == 0 || out+n > decodedLen {
			return ErrStructural
		}
		for i := 0; i < n; i++ {
			dst[out+i] = 0
		}
		out += n
	}

	return nil
}
