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
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

func int16Bytes(vals []int16) []byte {
	out := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(v))
	}
	return out
}

func int32Bytes(vals []int32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[4*i:], uint32(v))
	}
	return out
}

func compressAll(t *testing.T, src []byte, options *Options) []byte {
	t.Helper()
	dst := make([]byte, MaxCompressedSize(uint32(len(src)), options))
	n, err := Compress(dst, src, options)
	require.NoError(t, err)
	require.LessOrEqual(t, n, len(dst))
	return dst[:n]
}

func decompressAll(t *testing.T, src []byte, originalLen int, options *Options) []byte {
	t.Helper()
	dst := make([]byte, originalLen)
	n, err := Decompress(dst, src, options)
	require.NoError(t, err)
	require.Equal(t, originalLen, n)
	return dst
}

// E1: the delta + zig-zag transformed samples pack into a byte-exact block.
func TestCompressKnownPayload(t *testing.T) {
	src := int32Bytes([]int32{5, 4, 3, 2, 1})
	options := &Options{PerformDeltaZigZag: true, IntegerSize: 4, Version: V0}

	compressed := compressAll(t, src, options)
	require.Equal(t, []byte{0x00, 0x00, 0x0a, 0x01, 0x01, 0x01, 0x01}, compressed)

	require.Equal(t, src, decompressAll(t, compressed, len(src), options))
}

// E2: with the zstd stage enabled the payload is a zstd frame wrapping E1.
func TestCompressZstdWrapsPayload(t *testing.T) {
	src := int32Bytes([]int32{5, 4, 3, 2, 1})
	options := &Options{PerformDeltaZigZag: true, IntegerSize: 4, ZstdCompressionLevel: 100, Version: V0}

	compressed := compressAll(t, src, options)
	require.GreaterOrEqual(t, len(compressed), 4)
	require.Equal(t, zstdMagic, compressed[:4])

	dec, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer dec.Close()
	inner, err := dec.DecodeAll(compressed, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x00, 0x0a, 0x01, 0x01, 0x01, 0x01}, inner)

	require.Equal(t, src, decompressAll(t, compressed, len(src), options))
}

// E6: a single zero sample is one key byte plus one data byte.
func TestCompressSingleZero(t *testing.T) {
	src := int32Bytes([]int32{0})
	options := &Options{IntegerSize: 4, Version: V0}

	compressed := compressAll(t, src, options)
	require.Equal(t, []byte{0x00, 0x00}, compressed)
	require.Equal(t, src, decompressAll(t, compressed, len(src), options))
}

// E4: plain iota data survives the zstd stage and respects the bound.
func TestCompressIotaInt16(t *testing.T) {
	vals := make([]int16, 100)
	for i := range vals {
		vals[i] = int16(i)
	}
	src := int16Bytes(vals)
	options := &Options{IntegerSize: 2, ZstdCompressionLevel: 1, Version: V0}

	compressed := compressAll(t, src, options)
	require.LessOrEqual(t, uint32(len(compressed)), MaxCompressedSize(200, options))
	require.Equal(t, src, decompressAll(t, compressed, len(src), options))
}

// E5 regression: signal-shaped data must actually shrink. Full-range uniform
// noise is incompressible by any lossless codec, so the regression input is a
// bounded-step random walk like a real trace.
func TestCompressRandomWalkShrinks(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	vals := make([]int16, 10000)
	level := int16(0)
	for i := range vals {
		level += int16(rng.Intn(129) - 64)
		vals[i] = level
	}
	src := int16Bytes(vals)
	options := &Options{PerformDeltaZigZag: true, IntegerSize: 2, ZstdCompressionLevel: 1, Version: V0}

	compressed := compressAll(t, src, options)
	require.Less(t, len(compressed), len(src))
	require.Equal(t, src, decompressAll(t, compressed, len(src), options))
}

func TestRoundTripMatrix(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	inputs := map[string][]int64{
		"empty":      {},
		"single":     {0},
		"ones":       {1, 1, 1, 1, 1, 1, 1, 1},
		"descending": {5, 4, 3, 2, 1},
	}
	// Width extremes land in the per-width tables below.
	extremes := map[uint32][]int64{
		1: {math.MinInt8, -1, 0, 1, math.MaxInt8},
		2: {math.MinInt16, -1, 0, 1, math.MaxInt16},
		4: {math.MinInt32, -1, 0, 1, math.MaxInt32},
	}

	widths := []uint32{1, 2, 4}
	versions := []StreamVByteVersion{V0, V1}
	levels := []int{0, 1, 22}

	toBytes := func(width uint32, vals []int64) []byte {
		out := make([]byte, int(width)*len(vals))
		for i, v := range vals {
			switch width {
			case 1:
				out[i] = byte(v)
			case 2:
				binary.LittleEndian.PutUint16(out[2*i:], uint16(v))
			case 4:
				binary.LittleEndian.PutUint32(out[4*i:], uint32(v))
			}
		}
		return out
	}

	for _, width := range widths {
		cases := make(map[string][]byte, len(inputs)+2)
		for name, vals := range inputs {
			cases[name] = toBytes(width, vals)
		}
		cases["extremes"] = toBytes(width, extremes[width])
		random := make([]int64, 1000)
		for i := range random {
			random[i] = rng.Int63() // truncates to the width under test
		}
		cases["random"] = toBytes(width, random)

		for name, src := range cases {
			for _, deltaZigZag := range []bool{false, true} {
				for _, version := range versions {
					for _, level := range levels {
						options := &Options{
							PerformDeltaZigZag:   deltaZigZag,
							IntegerSize:          width,
							ZstdCompressionLevel: level,
							Version:              version,
						}
						label := fmt.Sprintf("w%d/%s/dz=%v/%s/zstd=%d", width, name, deltaZigZag, version, level)
						t.Run(label, func(t *testing.T) {
							compressed := compressAll(t, src, options)
							require.LessOrEqual(t, uint32(len(compressed)), MaxCompressedSize(uint32(len(src)), options))
							require.Equal(t, src, decompressAll(t, compressed, len(src), options))
						})
					}
				}
			}
		}
	}
}

func TestCompressValidatesOptions(t *testing.T) {
	src := int32Bytes([]int32{1, 2, 3})
	dst := make([]byte, 64)

	_, err := Compress(dst, src, &Options{IntegerSize: 3})
	assert.ErrorIs(t, err, ErrInputSize)
	assert.Equal(t, int32(-1), ErrorCode(err))

	_, err = Compress(dst, src[:5], &Options{IntegerSize: 4})
	assert.ErrorIs(t, err, ErrInputSize)

	_, err = Compress(dst, src, &Options{IntegerSize: 4, Version: StreamVByteVersion(9)})
	assert.ErrorIs(t, err, ErrUnknownVersion)
	assert.Equal(t, int32(-5), ErrorCode(err))

	_, err = Decompress(dst[:5], src, &Options{IntegerSize: 4})
	assert.ErrorIs(t, err, ErrInputSize)
}

// Boundary 5: one byte under the bound on a worst-case input must fail
// cleanly rather than truncate.
func TestCompressDestinationTooSmall(t *testing.T) {
	vals := []int32{math.MinInt32, math.MaxInt32, math.MinInt32, math.MaxInt32}
	src := int32Bytes(vals)
	options := &Options{IntegerSize: 4, Version: V0}

	bound := MaxCompressedSize(uint32(len(src)), options)
	need := make([]byte, bound)
	n, err := Compress(need, src, options)
	require.NoError(t, err)
	require.Equal(t, int(bound), n) // worst case hits the bound exactly

	short := make([]byte, bound-1)
	_, err = Compress(short, src, options)
	require.ErrorIs(t, err, ErrDestinationTooSmall)
	require.Equal(t, int32(-2), ErrorCode(err))
}

// Boundary 6: truncating a compressed buffer is detected, with and without
// the zstd stage.
func TestDecompressTruncated(t *testing.T) {
	src := int32Bytes([]int32{5, 4, 3, 2, 1, 100000, -100000})
	for _, level := range []int{0, 5} {
		options := &Options{PerformDeltaZigZag: true, IntegerSize: 4, ZstdCompressionLevel: level, Version: V0}
		compressed := compressAll(t, src, options)

		dst := make([]byte, len(src))
		_, err := Decompress(dst, compressed[:len(compressed)-1], options)
		require.ErrorIs(t, err, ErrInputCorrupted, "zstd level %d", level)
		require.Equal(t, int32(-3), ErrorCode(err))
	}
}

func TestCompressEmptyWithZstd(t *testing.T) {
	options := &Options{IntegerSize: 2, ZstdCompressionLevel: 1, Version: V0}
	compressed := compressAll(t, nil, options)
	require.NotEmpty(t, compressed, "an empty input still emits a valid zstd frame")
	require.Equal(t, zstdMagic, compressed[:4])

	out := decompressAll(t, compressed, 0, options)
	require.Empty(t, out)
}

func TestMaxCompressedSizeMonotone(t *testing.T) {
	for _, options := range []*Options{
		{IntegerSize: 2, Version: V0},
		{IntegerSize: 2, ZstdCompressionLevel: 1, Version: V0},
		{IntegerSize: 4, ZstdCompressionLevel: 22, Version: V1},
	} {
		prev := uint32(0)
		for size := uint32(0); size <= 4096; size += 64 {
			bound := MaxCompressedSize(size, options)
			require.GreaterOrEqual(t, bound, prev, "options %+v size %d", options, size)
			prev = bound
		}
	}
}

func TestMaxCompressedSizeInvalidWidth(t *testing.T) {
	require.Zero(t, MaxCompressedSize(100, &Options{IntegerSize: 3}))
}

// The pre-transform stage is independent of the key stream layout: both
// versions must reproduce the same samples from their own wire forms.
func TestVersionsAgreeThroughTransform(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	vals := make([]int16, 777)
	for i := range vals {
		vals[i] = int16(rng.Intn(1 << 16))
	}
	src := int16Bytes(vals)

	for _, deltaZigZag := range []bool{false, true} {
		v0 := &Options{PerformDeltaZigZag: deltaZigZag, IntegerSize: 2, Version: V0}
		v1 := &Options{PerformDeltaZigZag: deltaZigZag, IntegerSize: 2, Version: V1}

		c0 := compressAll(t, src, v0)
		c1 := compressAll(t, src, v1)
		require.Equal(t, decompressAll(t, c0, len(src), v0), decompressAll(t, c1, len(src), v1))
	}
}

func TestVersionString(t *testing.T) {
	require.NotEmpty(t, Version())
	require.Equal(t, "v0", V0.String())
	require.Equal(t, "v1", V1.String())
	require.Equal(t, "unknown", StreamVByteVersion(3).String())
}

func TestIsError(t *testing.T) {
	require.False(t, IsError(nil))
	require.True(t, IsError(ErrInputCorrupted))
	require.Zero(t, ErrorCode(nil))
}
