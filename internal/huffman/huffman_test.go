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
	"math/rand"
	"testing"

	"github.com/icza/huffman"
	"github.com/mbitsnbites/hzr/internal/bitstream"
)

func TestBuildEmitRecoverRoundTrip(t *testing.T) {
	var symbols [NumSymbols]SymbolInfo
	rng := rand.New(rand.NewSource(42))
	for i := range symbols {
		if rng.Intn(3) != 0 {
			symbols[i].Count = 1 + rng.Intn(5000)
		}
	}

	nodes, root := Build(&symbols)
	if len(nodes) == 0 {
		t.Fatal("expected at least one populated symbol")
	}

	buf := make([]byte, 8192)
	w := bitstream.NewWriter(buf)
	Emit(w, nodes, root, &symbols)
	if w.Failed() {
		t.Fatal("emit overflowed the buffer")
	}
	n := w.ForceFlush()

	r := bitstream.NewReader(buf[:n])
	var tree DecodeTree
	if err := tree.Recover(r); err != nil {
		t.Fatalf("Recover: %v", err)
	}

	for sym := 0; sym < NumSymbols; sym++ {
		if symbols[sym].Count == 0 {
			continue
		}
		node := tree.Root
		for i := 0; i < symbols[sym].Bits; i++ {
			bit := (symbols[sym].Code >> uint(i)) & 1
			if bit == 0 {
				node = tree.Nodes[node].ChildA
			} else {
				node = tree.Nodes[node].ChildB
			}
		}
		if got := int(tree.Nodes[node].Symbol); got != sym {
			t.Fatalf("symbol %d: decoded path led to symbol %d", sym, got)
		}
	}
}

func TestBuildSingleSymbol(t *testing.T) {
	var symbols [NumSymbols]SymbolInfo
	symbols[42].Count = 7

	nodes, root := Build(&symbols)
	if len(nodes) != 1 {
		t.Fatalf("len(nodes) = %d, want 1", len(nodes))
	}

	buf := make([]byte, 64)
	w := bitstream.NewWriter(buf)
	Emit(w, nodes, root, &symbols)
	n := w.ForceFlush()

	if symbols[42].Bits != 1 {
		t.Fatalf("degenerate tree: Bits = %d, want 1", symbols[42].Bits)
	}

	r := bitstream.NewReader(buf[:n])
	var tree DecodeTree
	if err := tree.Recover(r); err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if tree.Nodes[tree.Root].Symbol != 42 {
		t.Fatalf("decoded root symbol = %d, want 42", tree.Nodes[tree.Root].Symbol)
	}
	for _, e := range tree.Lut {
		if e.Node != -1 || e.Symbol != 42 || e.Bits != 1 {
			t.Fatalf("degenerate tree LUT entry = %+v, want {-1, 42, 1}", e)
		}
	}
}

func TestBuildNoSymbols(t *testing.T) {
	var symbols [NumSymbols]SymbolInfo
	nodes, root := Build(&symbols)
	if len(nodes) != 0 || root != -1 {
		t.Fatalf("Build of an empty histogram = (%d nodes, root %d), want (0, -1)", len(nodes), root)
	}
}

// TestPrefixCodesAreUniquelyDecodable verifies the classic Huffman
// invariant (Kraft equality for a complete code) holds for Build's
// output: for two or more symbols, summing 2^-bits over every
// assigned code must equal exactly 1.
func TestPrefixCodesAreUniquelyDecodable(t *testing.T) {
	var symbols [NumSymbols]SymbolInfo
	counts := []int{5, 9, 12, 13, 16, 45, 900}
	for i, c := range counts {
		symbols[i].Count = c
	}

	nodes, root := Build(&symbols)
	buf := make([]byte, 8192)
	w := bitstream.NewWriter(buf)
	Emit(w, nodes, root, &symbols)

	var num, den uint64 = 0, 1 << 20
	for i := range counts {
		num += den >> uint(symbols[i].Bits)
	}
	if num != den {
		t.Fatalf("Kraft sum = %d/%d, want %d/%d (not a complete prefix code)", num, den, den, den)
	}
}

// TestIndependentBuilderAgreesOnCodeLengthBound cross-checks Build
// against github.com/icza/huffman, an independently written Huffman
// tree builder already vendored in by the surrounding module: for the
// same histogram, no correct Huffman construction can ever need a
// strictly shorter weighted code length than another, so if this
// package's tree scores worse than the independent one on the exact
// same counts, something in Build is wrong.
func TestIndependentBuilderAgreesOnCodeLengthBound(t *testing.T) {
	counts := map[int]int{
		3: 1, 7: 2, 11: 4, 19: 8, 23: 16, 29: 32, 260: 1000, 0: 5000,
	}

	var symbols [NumSymbols]SymbolInfo
	for sym, c := range counts {
		symbols[sym].Count = c
	}
	nodes, root := Build(&symbols)
	buf := make([]byte, 4096)
	w := bitstream.NewWriter(buf)
	Emit(w, nodes, root, &symbols)

	var ourBits int64
	for sym, c := range counts {
		ourBits += int64(c) * int64(symbols[sym].Bits)
	}

	leaves := make([]*huffman.Node, 0, len(counts))
	for sym, c := range counts {
		leaves = append(leaves, &huffman.Node{Value: huffman.ValueType(sym), Count: c})
	}
	// huffman.Build reorders and overwrites the slice it is given, so
	// hand it a copy and keep leaves intact for the sum below.
	huffman.Build(append([]*huffman.Node(nil), leaves...))

	var theirBits int64
	for _, n := range leaves {
		_, bits := n.Code()
		theirBits += int64(n.Count) * int64(bits)
	}

	if ourBits > theirBits {
		t.Fatalf("Build's weighted code length %d exceeds the independent builder's %d for the same histogram", ourBits, theirBits)
	}
}
