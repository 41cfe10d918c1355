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

package huffman

import (
	"errors"

	"github.com/mbitsnbites/hzr/internal/bitstream"
)

// ErrTreeOverflow is returned by Recover when a transmitted tree would
// need more than MaxTreeNodes nodes, or when the bit stream runs out
// while the tree description is still being read.
var ErrTreeOverflow = errors.New("huffman: corrupt or oversized tree description")

// DecodeNode is one node of the decode-side tree, stored in a flat
// pool. Children are indices into DecodeTree.Nodes; -1 means "no
// child". A negative Symbol marks an internal node.
type DecodeNode struct {
	ChildA, ChildB int32
	Symbol         int32
}

// DecodeLutEntry is one of the 256 direct-lookup-table slots keyed by
// the next 8 bits of input. Node == -1 means the lookup already
// produced a terminal decode of Symbol, consuming Bits bits; otherwise
// Bits (always 8) bits have been consumed and the walk continues at
// node index Node.
type DecodeLutEntry struct {
	Node   int32
	Symbol int32
	Bits   int32
}

// DecodeTree is the decode side's pre-allocated node pool plus its
// 256-entry fast-path lookup table.
type DecodeTree struct {
	Nodes [MaxTreeNodes]DecodeNode
	Lut   [256]DecodeLutEntry
	Root  int32
	count int32
}

// pending describes one not-yet-visited slot in the tree being
// recovered: the parent to attach to (or -1 for the root), which
// child index to fill, and the code/bit-length the new node inherits.
type pending struct {
	parent    int32
	setChildB bool
	code      uint32
	bits      int
}

// Recover reconstructs a DecodeTree from its preorder bit-stream
// description (see internal/huffman.Emit for the writer side). It
// walks iteratively with an explicit stack rather than recursing, so
// that node-count bounds can be checked before each allocation instead
// of relying on call-stack depth.
func (t *DecodeTree) Recover(r *bitstream.Reader) error {
	stack := []pending{{parent: -1, code: 0, bits: 0}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if t.count >= MaxTreeNodes {
			return ErrTreeOverflow
		}
		idx := t.count
		t.count++
		node := &t.Nodes[idx]
		node.Symbol = -1
		node.ChildA = -1
		node.ChildB = -1

		switch {
		case top.parent < 0:
			t.Root = idx
		case top.setChildB:
			t.Nodes[top.parent].ChildB = idx
		default:
			t.Nodes[top.parent].ChildA = idx
		}

		isLeaf := r.ReadBitChecked()
		if r.Failed() {
			return ErrTreeOverflow
		}

		if isLeaf != 0 {
			symbol := int32(r.ReadBitsChecked(SymbolBits))
			if r.Failed() {
				return ErrTreeOverflow
			}
			node.Symbol = symbol

			if top.bits <= 8 {
				bits := top.bits
				if bits < 1 {
					bits = 1
				}
				dups := uint32(256) >> uint(top.bits)
				for i := uint32(0); i < dups; i++ {
					entry := &t.Lut[(i<<uint(top.bits))|top.code]
					entry.Node = -1
					entry.Bits = int32(bits)
					entry.Symbol = symbol
				}
			}
			continue
		}

		if top.bits == 8 {
			entry := &t.Lut[top.code]
			entry.Node = idx
			entry.Bits = 8
			entry.Symbol = 0
		}

		// Push child B first so that child A, pushed last, is
		// visited first (preorder: this node, then A, then B).
		stack = append(stack,
			pending{parent: idx, setChildB: true, code: top.code + (1 << uint(top.bits)), bits: top.bits + 1},
			pending{parent: idx, setChildB: false, code: top.code, bits: top.bits + 1},
		)
	}

	return nil
}
