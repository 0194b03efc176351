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
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// newZstdEncoder builds a one-shot encoder for the given level.
// WithZeroFrames keeps an empty input round-trippable: an empty Stream-VByte
// payload still produces a valid (empty) zstd frame.
func newZstdEncoder(level int) (*zstd.Encoder, error) {
	return zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
		zstd.WithZeroFrames(true),
		zstd.WithEncoderConcurrency(1),
	)
}

// zstdCompress compresses src into dst and returns the bytes written.
func zstdCompress(dst, src []byte, level int) (int, error) {
	enc, err := newZstdEncoder(level)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrZstd, err)
	}
	defer enc.Close()

	out := enc.EncodeAll(src, nil)
	if len(out) > len(dst) {
		return 0, ErrDestinationTooSmall
	}
	copy(dst, out)
	return len(out), nil
}

// zstdDecompress decompresses src, which must decode to at most maxSize
// bytes. Malformed frames and oversized payloads report ErrInputCorrupted.
func zstdDecompress(src []byte, maxSize int) ([]byte, error) {
	// The decoder caps its window at the memory limit, and every frame
	// declares a window of at least MinWindowSize, so the limit carries that
	// much headroom; the length check below enforces maxSize itself.
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(uint64(maxSize)+zstd.MinWindowSize),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrZstd, err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(src, make([]byte, 0, maxSize))
	if err != nil {
		return nil, fmt.Errorf("%w: zstd frame: %v", ErrInputCorrupted, err)
	}
	if len(out) > maxSize {
		return nil, fmt.Errorf("%w: zstd frame larger than its stage bound", ErrInputCorrupted)
	}
	return out, nil
}

// zstdBound is zstd's worst-case compressed size for a payload of the given
// size at the given level.
func zstdBound(size int, level int) (int, error) {
	enc, err := newZstdEncoder(level)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrZstd, err)
	}
	defer enc.Close()
	return enc.MaxEncodedSize(size), nil
}
