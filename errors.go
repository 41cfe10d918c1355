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

package hzr

import "errors"

// Sentinel errors returned by Encode, Decode and Verify. Use
// errors.Is to test for them; wrapped errors carry additional context
// via fmt.Errorf's %w.
var (
	// ErrArgument is returned when a caller-supplied buffer is too
	// small, or another precondition on the arguments themselves is
	// violated.
	ErrArgument = errors.New("hzr: invalid argument")

	// ErrTruncated is returned when the input ends before a complete
	// stream could be read.
	ErrTruncated = errors.New("hzr: truncated input")

	// ErrStructural is returned when the input is internally
	// inconsistent: an out-of-range encoding mode, a symbol stream
	// that overruns its block, a corrupt Huffman tree description.
	ErrStructural = errors.New("hzr: malformed stream")

	// ErrIntegrity is returned when a block's stored CRC-32C does not
	// match the checksum of its encoded payload bytes.
	ErrIntegrity = errors.New("hzr: checksum mismatch")

	// ErrOutputOverflow is returned when decoding would write past
	// the end of the caller-supplied destination buffer.
	ErrOutputOverflow = errors.New("hzr: output buffer too small")
)
