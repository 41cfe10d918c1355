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

import "github.com/mbitsnbites/hzr/internal/bitstream"

// encodeNode is one node of the encoder's working tree. Children are
// indices into the node slice; -1 means "no child". A negative Symbol
// marks an internal node.
type encodeNode struct {
	childA, childB int
	count          int
	symbol         int
}

// Build constructs a canonical Huffman tree over the symbols with a
// non-zero count, by repeatedly merging the two lightest remaining
// nodes. Ties are broken deterministically: scanning left to right,
// the first node at the minimum count becomes node_1, and the next
// node at (or above) that count becomes node_2 — this fixes the
// output regardless of map/slice iteration order.
//
// It returns the node pool and the index of the root, or root == -1
// if symbols has no non-zero counts at all.
func Build(symbols *[NumSymbols]SymbolInfo) (nodes []encodeNode, root int) {
	nodes = make([]encodeNode, 0, MaxTreeNodes)
	for sym := 0; sym < NumSymbols; sym++ {
		if symbols[sym].Count > 0 {
			nodes = append(nodes, encodeNode{childA: -1, childB: -1, count: symbols[sym].Count, symbol: sym})
		}
	}
	numSymbols := len(nodes)
	if numSymbols == 0 {
		return nodes, -1
	}
	if numSymbols == 1 {
		return nodes, 0
	}

	root = -1
	nodesLeft := numSymbols
	for nodesLeft > 1 {
		idx1, idx2 := -1, -1
		for k := 0; k < len(nodes); k++ {
			if nodes[k].count <= 0 {
				continue
			}
			if idx1 == -1 || nodes[k].count < nodes[idx1].count {
				idx2 = idx1
				idx1 = k
			} else if idx2 == -1 || nodes[k].count < nodes[idx2].count {
				idx2 = k
			}
		}

		parent := encodeNode{
			childA: idx1,
			childB: idx2,
			count:  nodes[idx1].count + nodes[idx2].count,
			symbol: -1,
		}
		nodes[idx1].count = 0
		nodes[idx2].count = 0
		nodes = append(nodes, parent)
		root = len(nodes) - 1
		nodesLeft--
	}
	return nodes, root
}

// Emit writes the preorder tree description (one flag bit per node,
// a 9-bit symbol per leaf) to w, and fills in Code/Bits for every
// symbol reachable from root. An empty node pool writes nothing (the
// caller handles the all-empty block itself). A single-node pool (one
// distinct symbol) forces that leaf's code to bits=1 per the wire
// format's rule for degenerate trees.
func Emit(w *bitstream.Writer, nodes []encodeNode, root int, symbols *[NumSymbols]SymbolInfo) {
	switch len(nodes) {
	case 0:
		return
	case 1:
		// Single-symbol tree: emit the lone leaf directly with a
		// virtual one-bit descent.
		emitNode(w, nodes, 0, symbols, 0, 1)
	default:
		emitNode(w, nodes, root, symbols, 0, 0)
	}
}

func emitNode(w *bitstream.Writer, nodes []encodeNode, idx int, symbols *[NumSymbols]SymbolInfo, code uint32, bits int) {
	n := &nodes[idx]
	if n.symbol >= 0 {
		w.WriteBits(1, 1)
		w.WriteBits(uint32(n.symbol), SymbolBits)
		symbols[n.symbol].Code = code
		symbols[n.symbol].Bits = bits
		return
	}

	w.WriteBits(0, 1)
	emitNode(w, nodes, n.childA, symbols, code, bits+1)
	emitNode(w, nodes, n.childB, symbols, code+(1<<uint(bits)), bits+1)
}
