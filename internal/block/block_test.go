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
	"bytes"
	"math/rand"
	"testing"
)

func roundTrip(t *testing.T, src []byte) {
	t.Helper()
	scratch := make([]byte, len(src))
	mode, n := Encode(scratch, src)
	payload := append([]byte(nil), scratch[:n]...)

	dst := make([]byte, len(src))
	if err := Decode(dst, payload, mode, len(src)); err != nil {
		t.Fatalf("Decode (mode %d): %v", mode, err)
	}
	if !bytes.Equal(dst, src) {
		t.Fatalf("round trip mismatch (mode %d): got %v, want %v", mode, dst, src)
	}
}

func TestRoundTripAllZeros(t *testing.T) {
	src := make([]byte, 5000)
	roundTrip(t, src)
}

func TestRoundTripAllSameNonZero(t *testing.T) {
	src := make([]byte, 5000)
	for i := range src {
		src[i] = 0x7f
	}
	roundTrip(t, src)
}

func TestRoundTripIncompressible(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	src := make([]byte, 65536)
	rng.Read(src)
	roundTrip(t, src)
}

func TestRoundTripSkewedHistogram(t *testing.T) {
	src := make([]byte, 20000)
	for i := range src {
		if i%10 == 0 {
			src[i] = byte(i)
		}
		// else left at 0, building long zero runs
	}
	roundTrip(t, src)
}

func TestRoundTripSingleByte(t *testing.T) {
	roundTrip(t, []byte{0x42})
}

func TestRoundTripLongZeroRunsAtBoundaries(t *testing.T) {
	src := make([]byte, 100000)
	for i := 0; i < 300; i++ {
		src[i] = byte(i)
	}
	// src[300:99700] stays zero, a run far longer than any single
	// RLE symbol can cover.
	for i := 99700; i < len(src); i++ {
		src[i] = byte(i)
	}
	roundTrip(t, src)
}

func TestEncodeChoosesFillForUniformBlocks(t *testing.T) {
	src := make([]byte, 1000)
	for i := range src {
		src[i] = 0x99
	}
	scratch := make([]byte, len(src))
	mode, n := Encode(scratch, src)
	if mode != ModeFill || n != 1 {
		t.Fatalf("Encode of a uniform block = (mode %d, n %d), want (ModeFill, 1)", mode, n)
	}
}

func TestDecodeRejectsModeMismatch(t *testing.T) {
	if err := Decode(make([]byte, 4), []byte{1, 2, 3}, ModeCopy, 4); err == nil {
		t.Fatal("expected an error for a COPY payload shorter than decodedLen")
	}
	if err := Decode(make([]byte, 4), []byte{1, 2}, ModeFill, 4); err == nil {
		t.Fatal("expected an error for a FILL payload longer than one byte")
	}
}
