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

import "unsafe"

// SignedSample is a constraint for the sample widths the codec accepts.
type SignedSample interface {
	~int8 | ~int16 | ~int32
}

// unsignedSample mirrors SignedSample for the no-transform widening path.
type unsignedSample interface {
	~uint8 | ~uint16 | ~uint32
}

// sampleView reinterprets a byte buffer as a slice of samples. The caller
// guarantees len(b) is a multiple of the sample size.
func sampleView[T SignedSample | unsignedSample](b []byte) []T {
	if len(b) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), len(b)/int(unsafe.Sizeof(zero)))
}

// deltaZigZagWiden fuses the forward pre-transform with the widening step:
// each sample is replaced by its difference from the previous one (wrapping
// at the sample width), zig-zag mapped to unsigned, and zero-extended into
// dst. src is read only, so the caller's buffer is never mutated.
//
// The zig-zag map is computed at 32 bits on the sign-extended delta; for a
// W-byte delta the result equals the W-byte map zero-extended, so it fits in
// W bytes and shorter key codes still apply downstream.
func deltaZigZagWiden[T SignedSample](src []T, dst []uint32) {
	var prev T
	for i, x := range src {
		d := x - prev
		prev = x
		s := int32(d)
		dst[i] = uint32((s << 1) ^ (s >> 31))
	}
}

// narrowZigZagDelta is the inverse: un-zig-zag, prefix-sum with wrap-around
// at the sample width, and store the narrowed samples into dst.
func narrowZigZagDelta[T SignedSample](src []uint32, dst []T) {
	var prev T
	for i, u := range src {
		s := int32(u>>1) ^ -int32(u&1)
		prev += T(s)
		dst[i] = prev
	}
}

// widen zero-extends raw samples, reinterpreted as unsigned, into dst.
func widen[T unsignedSample](src []T, dst []uint32) {
	for i, v := range src {
		dst[i] = uint32(v)
	}
}

// narrow truncates decoded values back to the sample width.
func narrow[T unsignedSample](src []uint32, dst []T) {
	for i, v := range src {
		dst[i] = T(v)
	}
}

// packSamples turns the source buffer into the widened uint32 vector the
// Stream-VByte stage consumes. width has been validated by the caller.
func packSamples(src []byte, dst []uint32, width int, deltaZigZag bool) {
	switch width {
	case 1:
		if deltaZigZag {
			deltaZigZagWiden(sampleView[int8](src), dst)
		} else {
			widen(sampleView[uint8](src), dst)
		}
	case 2:
		if deltaZigZag {
			deltaZigZagWiden(sampleView[int16](src), dst)
		} else {
			widen(sampleView[uint16](src), dst)
		}
	case 4:
		if deltaZigZag {
			deltaZigZagWiden(sampleView[int32](src), dst)
		} else {
			widen(sampleView[uint32](src), dst)
		}
	}
}

// unpackSamples is the inverse of packSamples, writing samples into dst.
func unpackSamples(src []uint32, dst []byte, width int, deltaZigZag bool) {
	switch width {
	case 1:
		if deltaZigZag {
			narrowZigZagDelta(src, sampleView[int8](dst))
		} else {
			narrow(src, sampleView[uint8](dst))
		}
	case 2:
		if deltaZigZag {
			narrowZigZagDelta(src, sampleView[int16](dst))
		} else {
			narrow(src, sampleView[uint16](dst))
		}
	case 4:
		if deltaZigZag {
			narrowZigZagDelta(src, sampleView[int32](dst))
		} else {
			narrow(src, sampleView[uint32](dst))
		}
	}
}
