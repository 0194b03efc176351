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

package vbz

import (
	"encoding/binary"
	"math"
)

// sizedHeaderLen is the little-endian original-length prefix of a sized frame.
const sizedHeaderLen = 4

// CompressSized behaves like Compress but prefixes the payload with the
// original byte length, making the frame self-describing for DecompressSized.
func CompressSized(dst, src []byte, options *Options) (int, error) {
	if len(src) > math.MaxUint32 {
		return 0, ErrInputSize
	}
	if len(dst) < sizedHeaderLen {
		return 0, ErrDestinationTooSmall
	}
	binary.LittleEndian.PutUint32(dst, uint32(len(src)))

	n, err := Compress(dst[sizedHeaderLen:], src, options)
	if err != nil {
		return 0, err
	}
	return sizedHeaderLen + n, nil
}

// DecompressSized reads the original-length header and decompresses the
// payload into dst, returning the bytes written (the header value).
func DecompressSized(dst, src []byte, options *Options) (int, error) {
	size, err := DecompressedSize(src, options)
	if err != nil {
		return 0, err
	}
	if uint64(size) > uint64(len(dst)) {
		return 0, ErrDestinationTooSmall
	}
	return Decompress(dst[:size], src[sizedHeaderLen:], options)
}

// DecompressedSize returns a sized frame's original-length header without
// touching the payload.
func DecompressedSize(src []byte, options *Options) (uint32, error) {
	if _, err := options.sampleWidth(); err != nil {
		return 0, err
	}
	if len(src) < sizedHeaderLen {
		return 0, ErrInputCorrupted
	}
	return binary.LittleEndian.Uint32(src), nil
}
