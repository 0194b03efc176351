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

package streamvbyte

// The V1 key stream is a little-endian bit stream: key i occupies bits
// [2i, 2i+2), bit b of the stream living in byte b>>3 at position b&7. The
// cursors below are the only key packing logic V1 has; it deliberately shares
// nothing with the V0 packer beyond the code derivation in controlCode.

// bitWriter appends 2-bit fields to a little-endian bit stream.
type bitWriter struct {
	buf    []byte
	bitPos int
}

func (w *bitWriter) write2(c byte) {
	w.buf[w.bitPos>>3] |= c << (w.bitPos & 7)
	w.bitPos += 2
}

// bitReader walks 2-bit fields off a little-endian bit stream.
type bitReader struct {
	buf    []byte
	bitPos int
}

func (r *bitReader) read2() byte {
	c := r.buf[r.bitPos>>3] >> (r.bitPos & 7) & 3
	r.bitPos += 2
	return c
}

// EncodeV1 encodes values into dst using the V1 layout and returns the number
// of bytes written. It returns ErrDestinationTooSmall when dst cannot hold
// the encoded block; dst is not written in that case.
func EncodeV1(dst []byte, values []uint32) (int, error) {
	n := len(values)
	if n == 0 {
		return 0, nil
	}

	keyLen := (2*n + 7) / 8
	size := keyLen
	for _, v := range values {
		size += int(controlCode(v)) + 1
	}
	if size > len(dst) {
		return 0, ErrDestinationTooSmall
	}

	keys := bitWriter{buf: dst[:keyLen]}
	for i := range keys.buf {
		keys.buf[i] = 0
	}

	pos := keyLen
	for _, v := range values {
		c := controlCode(v)
		keys.write2(c)
		dst[pos] = byte(v)
		pos++
		for b := byte(0); b < c; b++ {
			v >>= 8
			dst[pos] = byte(v)
			pos++
		}
	}
	return pos, nil
}

// DecodeV1 decodes len(dst) values from src and returns the number of values
// decoded. It returns ErrInputCorrupted when src is shorter than the key
// stream implies.
func DecodeV1(dst []uint32, src []byte) (int, error) {
	n := len(dst)
	if n == 0 {
		return 0, nil
	}

	keyLen := (2*n + 7) / 8
	if len(src) < keyLen {
		return 0, ErrInputCorrupted
	}
	keys := bitReader{buf: src[:keyLen]}
	data := src[keyLen:]

	pos := 0
	for i := 0; i < n; i++ {
		c := int(keys.read2())
		if pos+c+1 > len(data) {
			return 0, ErrInputCorrupted
		}
		v := uint32(data[pos+c])
		for b := c - 1; b >= 0; b-- {
			v = v<<8 | uint32(data[pos+b])
		}
		dst[i] = v
		pos += c + 1
	}
	return n, nil
}
