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

// EncodeV0 encodes values into dst using the V0 layout and returns the number
// of bytes written. It returns ErrDestinationTooSmall when dst cannot hold
// the encoded block; dst is not written in that case.
func EncodeV0(dst []byte, values []uint32) (int, error) {
	n := len(values)
	if n == 0 {
		return 0, nil
	}

	keyLen := (n + 3) / 4
	size := keyLen
	for _, v := range values {
		size += int(controlCode(v)) + 1
	}
	if size > len(dst) {
		return 0, ErrDestinationTooSmall
	}

	keys := dst[:keyLen]
	for i := range keys {
		keys[i] = 0
	}

	pos := keyLen
	for i, v := range values {
		c := controlCode(v)
		keys[i>>2] |= c << ((i & 3) * 2)
		switch c {
		case 0:
			dst[pos] = byte(v)
			pos++
		case 1:
			dst[pos] = byte(v)
			dst[pos+1] = byte(v >> 8)
			pos += 2
		case 2:
			dst[pos] = byte(v)
			dst[pos+1] = byte(v >> 8)
			dst[pos+2] = byte(v >> 16)
			pos += 3
		case 3:
			dst[pos] = byte(v)
			dst[pos+1] = byte(v >> 8)
			dst[pos+2] = byte(v >> 16)
			dst[pos+3] = byte(v >> 24)
			pos += 4
		}
	}
	return pos, nil
}

// DecodeV0 decodes len(dst) values from src and returns the number of values
// decoded. It returns ErrInputCorrupted when src is shorter than the key
// stream implies.
func DecodeV0(dst []uint32, src []byte) (int, error) {
	if fastPathEnabled {
		return decodeV0Grouped(dst, src)
	}
	return decodeV0Scalar(dst, src)
}

// decodeV0Scalar is the portable reference decoder. The grouped fast path
// must match it value for value on every input.
func decodeV0Scalar(dst []uint32, src []byte) (int, error) {
	n := len(dst)
	if n == 0 {
		return 0, nil
	}

	keyLen := (n + 3) / 4
	if len(src) < keyLen {
		return 0, ErrInputCorrupted
	}
	keys := src[:keyLen]
	data := src[keyLen:]

	pos := 0
	for i := 0; i < n; i++ {
		c := int(keys[i>>2]>>((i&3)*2)) & 3
		if pos+c+1 > len(data) {
			return 0, ErrInputCorrupted
		}
		var v uint32
		switch c {
		case 0:
			v = uint32(data[pos])
		case 1:
			v = uint32(data[pos]) | uint32(data[pos+1])<<8
		case 2:
			v = uint32(data[pos]) | uint32(data[pos+1])<<8 | uint32(data[pos+2])<<16
		case 3:
			v = uint32(data[pos]) | uint32(data[pos+1])<<8 | uint32(data[pos+2])<<16 | uint32(data[pos+3])<<24
		}
		dst[i] = v
		pos += c + 1
	}
	return n, nil
}
