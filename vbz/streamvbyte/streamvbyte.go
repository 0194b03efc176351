// Copyright 2026 go-vbz Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package streamvbyte implements Stream-VByte packing of uint32 sequences.
//
// A Stream-VByte block is a key stream followed by a data stream. Each value
// gets a 2-bit key code holding its encoded length minus one, and contributes
// that many low-order little-endian bytes to the data stream. Two key stream
// layouts are provided:
//
//   - V0: keys are packed four to a byte, lowest-index value in the lowest
//     two bits, occupying ceil(n/4) bytes ahead of the data stream. V0 decode
//     has a grouped fast path selected at init time (see dispatch.go).
//   - V1: keys form a 2*n-bit little-endian bit stream, padded to a byte
//     boundary, ahead of the data stream.
//
// Decoders are always told the value count by the caller; they never infer it
// from the input length.
package streamvbyte

import "errors"

var (
	// ErrDestinationTooSmall reports that an encode destination cannot hold
	// the encoded block.
	ErrDestinationTooSmall = errors.New("streamvbyte: destination buffer too small")

	// ErrInputCorrupted reports that a decode input is shorter than its key
	// stream implies.
	ErrInputCorrupted = errors.New("streamvbyte: input truncated")
)

// controlCode returns the 2-bit key code for v: encoded length minus one.
func controlCode(v uint32) byte {
	switch {
	case v < 1<<8:
		return 0
	case v < 1<<16:
		return 1
	case v < 1<<24:
		return 2
	default:
		return 3
	}
}

// groupDataLen[key] is the total data length of the four values described by
// one V0 key byte. Each 2-bit field encodes (length - 1), so each contributes
// field+1 bytes.
var groupDataLen [256]uint8

func init() {
	for key := 0; key < 256; key++ {
		len0 := ((key >> 0) & 0x3) + 1
		len1 := ((key >> 2) & 0x3) + 1
		len2 := ((key >> 4) & 0x3) + 1
		len3 := ((key >> 6) & 0x3) + 1
		groupDataLen[key] = uint8(len0 + len1 + len2 + len3)
	}
}

// MaxEncodedSizeV0 returns the worst-case V0 encoded size for n values:
// ceil(n/4) key bytes plus four data bytes per value.
func MaxEncodedSizeV0(n int) int {
	return (n+3)/4 + 4*n
}

// MaxEncodedSizeV1 returns the worst-case V1 encoded size for n values:
// the byte-padded 2*n-bit key stream plus four data bytes per value.
func MaxEncodedSizeV1(n int) int {
	return (2*n+7)/8 + 4*n
}
