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

// Package huffman implements the canonical Huffman tree used by HZR:
// a fixed 261-symbol alphabet (256 literal bytes plus five RLE
// tokens), a deterministic O(n²) tree builder, a preorder tree
// transmission format, and a decode side built around a pre-allocated
// node pool and a 256-entry direct lookup table.
package huffman

const (
	// NumSymbols is the size of the HZR alphabet: 256 literal bytes
	// plus five RLE tokens (256..260).
	NumSymbols = 261

	// SymbolBits is the width of a symbol value on the wire.
	SymbolBits = 9

	// MaxTreeNodes bounds the node pool: at most NumSymbols leaves and
	// NumSymbols-1 internal nodes.
	MaxTreeNodes = 2*NumSymbols - 1
)

// RLE token symbols. See internal/rle for the run-length mapping.
const (
	SymTwoZeros       = 256
	SymUpTo6Zeros     = 257
	SymUpTo22Zeros    = 258
	SymUpTo278Zeros   = 259
	SymUpTo16662Zeros = 260
)

// SymbolInfo holds encoder-side bookkeeping for one symbol: its
// frequency count and, once a tree has been built, its assigned
// prefix code and bit length.
type SymbolInfo struct {
	Count int
	Code  uint32
	Bits  int
}
