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

// Package hzr implements a lossless byte-stream compressor built from
// a canonical Huffman entropy coder extended with zero-run-length
// tokens, wrapped in a block-structured container with a CRC-32C
// integrity check per block.
//
// Data is split into blocks of up to 65536 bytes. Each block picks
// whichever of three encodings is smallest: a raw copy, a single
// repeated fill byte, or a Huffman-plus-RLE symbol stream. This keeps
// worst-case expansion bounded (see MaxCompressedSize) no matter how
// incompressible the input is.
package hzr

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/mbitsnbites/hzr/internal/block"
	"github.com/mbitsnbites/hzr/internal/crc32c"
)

const (
	masterHeaderSize = 4
	blockHeaderSize  = 7
)

// MaxCompressedSize returns the largest number of bytes Encode could
// ever need to compress decodedSize bytes of input, regardless of
// their content. Callers should size the dst buffer passed to Encode
// at least this large.
func MaxCompressedSize(decodedSize int) int {
	if decodedSize <= 0 {
		return masterHeaderSize
	}
	numBlocks := (decodedSize + block.MaxSize - 1) / block.MaxSize
	return masterHeaderSize + numBlocks*(blockHeaderSize+block.MaxSize)
}

// Encode compresses src into dst, returning the number of bytes
// written. dst must be at least MaxCompressedSize(len(src)) bytes.
func Encode(dst, src []byte) (int, error) {
	need := MaxCompressedSize(len(src))
	if len(dst) < need {
		return 0, fmt.Errorf("%w: dst too small, need at least %d bytes", ErrArgument, need)
	}

	binary.LittleEndian.PutUint32(dst[0:4], uint32(len(src)))
	pos := masterHeaderSize

	scratch := make([]byte, block.MaxSize)
	for off := 0; off < len(src); {
		blockLen := block.MaxSize
		if remaining := len(src) - off; remaining < blockLen {
			blockLen = remaining
		}
		chunk := src[off : off+blockLen]

		mode, n := block.Encode(scratch, chunk)
		payload := scratch[:n]

		binary.LittleEndian.PutUint16(dst[pos:pos+2], uint16(n-1))
		binary.LittleEndian.PutUint32(dst[pos+2:pos+6], crc32c.Checksum(payload))
		dst[pos+6] = byte(mode)
		copy(dst[pos+7:pos+7+n], payload)

		pos += blockHeaderSize + n
		off += blockLen
	}

	return pos, nil
}

// Decode decompresses in into dst. dst must be at least as large as
// the decoded size recorded in in's header; use Verify first if that
// size is not already known and trusted.
func Decode(dst []byte, in []byte) error {
	_, err := walkBlocks(in, dst, true)
	return err
}

// Verify walks the container structurally — every block header parses,
// every encoding_mode is one of the three known values, every payload's
// CRC-32C matches — without decompressing any block's payload. It
// returns the decoded size recorded in the master header on success.
// This is the cheap integrity check callers should run on untrusted
// input before trusting its announced size enough to allocate a
// destination buffer for Decode.
func Verify(in []byte) (int, error) {
	return walkBlocks(in, nil, false)
}

// walkBlocks parses every block header in in, validates its encoding
// mode and CRC-32C, and, when decompress is true, decodes each
// payload into dst. It returns the decoded size recorded in the
// master header.
func walkBlocks(in []byte, dst []byte, decompress bool) (int, error) {
	if len(in) < masterHeaderSize {
		return 0, fmt.Errorf("%w: missing master header", ErrTruncated)
	}
	decodedSize := int(binary.LittleEndian.Uint32(in[0:4]))
	if decompress && len(dst) < decodedSize {
		return 0, ErrOutputOverflow
	}

	pos := masterHeaderSize
	for off := 0; off < decodedSize; {
		if pos+blockHeaderSize > len(in) {
			return 0, fmt.Errorf("%w: missing block header", ErrTruncated)
		}
		encSize := int(binary.LittleEndian.Uint16(in[pos:pos+2])) + 1
		wantCRC := binary.LittleEndian.Uint32(in[pos+2 : pos+6])
		mode := block.Mode(in[pos+6])
		pos += blockHeaderSize

		if mode != block.ModeCopy && mode != block.ModeHuffRLE && mode != block.ModeFill {
			return 0, fmt.Errorf("%w: encoding mode %d out of range", ErrStructural, mode)
		}

		if pos+encSize > len(in) {
			return 0, fmt.Errorf("%w: truncated block payload", ErrTruncated)
		}
		payload := in[pos : pos+encSize]
		pos += encSize

		if crc32c.Checksum(payload) != wantCRC {
			return 0, ErrIntegrity
		}

		blockLen := block.MaxSize
		if remaining := decodedSize - off; remaining < blockLen {
			blockLen = remaining
		}
		if decompress {
			if err := block.Decode(dst[off:off+blockLen], payload, mode, blockLen); err != nil {
				return 0, translateBlockError(err)
			}
		}
		off += blockLen
	}

	return decodedSize, nil
}

func translateBlockError(err error) error {
	switch {
	case errors.Is(err, block.ErrTruncated):
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	case errors.Is(err, block.ErrCorruptTree), errors.Is(err, block.ErrStructural):
		return fmt.Errorf("%w: %v", ErrStructural, err)
	default:
		return err
	}
}
