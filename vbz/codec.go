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

// Package vbz is a lossless codec for sequences of small fixed-width signed
// integers, primarily the 8-, 16- and 32-bit samples of nanopore signal
// traces.
//
// Compression is a three-stage pipeline: an optional delta + zig-zag
// pre-transform, Stream-VByte integer packing (two selectable layouts, see
// the streamvbyte package), and an optional zstd stage. The sized variants
// prefix a 4-byte little-endian original-length header so round trips are
// self-describing.
//
// The codec holds no state between calls: any number of compress and
// decompress calls may run concurrently as long as each uses its own source
// and destination buffers. Aliasing one call's src and dst is undefined.
package vbz

import (
	"errors"
	"math"

	"github.com/ajroetker/go-vbz/vbz/streamvbyte"
)

// Compress compresses src into dst and returns the bytes written. The source
// length must be a multiple of options.IntegerSize; src is never mutated.
func Compress(dst, src []byte, options *Options) (int, error) {
	width, err := options.sampleWidth()
	if err != nil {
		return 0, err
	}
	if len(src)%width != 0 || len(src) > math.MaxUint32 {
		return 0, ErrInputSize
	}

	n := len(src) / width
	values := make([]uint32, n)
	packSamples(src, values, width, options.PerformDeltaZigZag)

	if options.ZstdCompressionLevel == 0 {
		return encodeValues(dst, values, options.Version)
	}

	bound, err := maxEncodedSize(n, options.Version)
	if err != nil {
		return 0, err
	}
	scratch := make([]byte, bound)
	packed, err := encodeValues(scratch, values, options.Version)
	if err != nil {
		return 0, err
	}
	return zstdCompress(dst, scratch[:packed], options.ZstdCompressionLevel)
}

// Decompress reverses Compress and returns the bytes written, which always
// equals len(dst) on success. The caller communicates the element count
// through the destination: len(dst) must be exactly the decompressed size.
func Decompress(dst, src []byte, options *Options) (int, error) {
	width, err := options.sampleWidth()
	if err != nil {
		return 0, err
	}
	if len(dst)%width != 0 || len(dst) > math.MaxUint32 {
		return 0, ErrInputSize
	}
	n := len(dst) / width

	payload := src
	if options.ZstdCompressionLevel != 0 {
		bound, err := maxEncodedSize(n, options.Version)
		if err != nil {
			return 0, err
		}
		payload, err = zstdDecompress(src, bound)
		if err != nil {
			return 0, err
		}
	}

	values := make([]uint32, n)
	if err := decodeValues(values, payload, options.Version); err != nil {
		return 0, err
	}
	unpackSamples(values, dst, width, options.PerformDeltaZigZag)
	return n * width, nil
}

// MaxCompressedSize returns a conservative upper bound on the size of
// Compress output for any input of inputBytes bytes under these options. It
// is non-decreasing in inputBytes. An invalid IntegerSize yields 0.
func MaxCompressedSize(inputBytes uint32, options *Options) uint32 {
	width, err := options.sampleWidth()
	if err != nil {
		return 0
	}
	n := (int(inputBytes) + width - 1) / width

	bound, err := maxEncodedSize(n, options.Version)
	if err != nil {
		return 0
	}
	if options.ZstdCompressionLevel != 0 {
		bound, err = zstdBound(bound, options.ZstdCompressionLevel)
		if err != nil {
			return 0
		}
	}
	if bound > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(bound)
}

// MaxCompressedSizeSized is MaxCompressedSize plus the sized frame header.
func MaxCompressedSizeSized(inputBytes uint32, options *Options) uint32 {
	if _, err := options.sampleWidth(); err != nil {
		return 0
	}
	if _, err := maxEncodedSize(0, options.Version); err != nil {
		return 0
	}
	// Empty input without zstd legitimately has a zero payload bound.
	bound := MaxCompressedSize(inputBytes, options)
	if bound == 0 && options.ZstdCompressionLevel != 0 {
		return 0
	}
	if bound > math.MaxUint32-sizedHeaderLen {
		return math.MaxUint32
	}
	return bound + sizedHeaderLen
}

func maxEncodedSize(n int, version StreamVByteVersion) (int, error) {
	switch version {
	case V0:
		return streamvbyte.MaxEncodedSizeV0(n), nil
	case V1:
		return streamvbyte.MaxEncodedSizeV1(n), nil
	default:
		return 0, ErrUnknownVersion
	}
}

func encodeValues(dst []byte, values []uint32, version StreamVByteVersion) (int, error) {
	var n int
	var err error
	switch version {
	case V0:
		n, err = streamvbyte.EncodeV0(dst, values)
	case V1:
		n, err = streamvbyte.EncodeV1(dst, values)
	default:
		return 0, ErrUnknownVersion
	}
	return n, mapStreamVByteError(err)
}

func decodeValues(dst []uint32, src []byte, version StreamVByteVersion) error {
	var err error
	switch version {
	case V0:
		_, err = streamvbyte.DecodeV0(dst, src)
	case V1:
		_, err = streamvbyte.DecodeV1(dst, src)
	default:
		return ErrUnknownVersion
	}
	return mapStreamVByteError(err)
}

func mapStreamVByteError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, streamvbyte.ErrDestinationTooSmall):
		return ErrDestinationTooSmall
	case errors.Is(err, streamvbyte.ErrInputCorrupted):
		return ErrInputCorrupted
	default:
		return err
	}
}
