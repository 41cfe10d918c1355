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

// Package rle maps runs of zero bytes onto the five extra Huffman
// symbols HZR reserves for that purpose (256..260), and back. A lone
// zero byte is never given special treatment here: it is emitted as
// ordinary literal symbol 0 by the caller.
package rle

import "github.com/mbitsnbites/hzr/internal/huffman"

// MaxRun is the longest zero run a single RLE symbol can describe.
// Longer runs must be split by the caller into multiple symbols.
const MaxRun = 16662

// run describes one RLE symbol's coverage: the shortest run length it
// represents and how many extra bits follow it on the wire to select
// among the lengths it covers.
type run struct {
	symbol    int
	base      int
	extraBits int
}

// runs is ordered from shortest to longest coverage; Encode scans it
// from the end so the longest symbol that still fits is preferred.
var runs = [...]run{
	{huffman.SymTwoZeros, 2, 0},
	{huffman.SymUpTo6Zeros, 3, 2},
	{huffman.SymUpTo22Zeros, 7, 4},
	{huffman.SymUpTo278Zeros, 23, 8},
	{huffman.SymUpTo16662Zeros, 279, 14},
}

// Encode picks the RLE symbol that covers the largest prefix of a run
// of n zero bytes (2 <= n), and returns that symbol, the number of
// extra bits to follow it, the extra bits' value, and how many zero
// bytes the symbol accounts for. The caller loops, subtracting used
// from n, until n drops to 0 or 1 (a trailing lone zero is a literal).
func Encode(n int) (symbol, extraBits int, extraValue uint32, used int) {
	if n > MaxRun {
		n = MaxRun
	}
	for i := len(runs) - 1; i >= 0; i-- {
		r := runs[i]
		if n >= r.base {
			return r.symbol, r.extraBits, uint32(n - r.base), n
		}
	}
	// n < 2 is a caller error; there is no RLE symbol for it.
	return 0, 0, 0, 0
}

// ExtraBits returns the number of extra bits that follow an RLE
// symbol on the wire, or 0 if symbol is not an RLE symbol.
func ExtraBits(symbol int) int {
	for _, r := range runs {
		if r.symbol == symbol {
			return r.extraBits
		}
	}
	return 0
}

// Decode returns the zero-run length an RLE symbol plus its trailing
// extra-bits value represents. It returns 0 if symbol is not an RLE
// symbol.
func Decode(symbol int, extraValue uint32) int {
	for _, r := range runs {
		if r.symbol == symbol {
			return r.base + int(extraValue)
		}
	}
	return 0
}
