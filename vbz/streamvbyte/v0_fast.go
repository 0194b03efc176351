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

import "encoding/binary"

// lengthMask[l] keeps the low l bytes of a 32-bit load.
var lengthMask = [5]uint32{0, 0xff, 0xffff, 0xffffff, 0xffffffff}

// decodeV0Grouped decodes four values per key byte using whole 32-bit loads,
// the same trick as the SSSE3 shuffle decoder: while at least 16 data bytes
// remain, each lane is a full-word load masked to its encoded length. Groups
// too close to the end of the data stream, and the final partial group, take
// the byte-at-a-time path so the tail behaves exactly like decodeV0Scalar.
func decodeV0Grouped(dst []uint32, src []byte) (int, error) {
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
	i := 0
	for ; i+4 <= n && pos+16 <= len(data); i += 4 {
		key := keys[i>>2]
		l0 := int(key&3) + 1
		l1 := int(key>>2&3) + 1
		l2 := int(key>>4&3) + 1
		l3 := int(key>>6&3) + 1

		w := data[pos:]
		dst[i] = binary.LittleEndian.Uint32(w) & lengthMask[l0]
		w = w[l0:]
		dst[i+1] = binary.LittleEndian.Uint32(w) & lengthMask[l1]
		w = w[l1:]
		dst[i+2] = binary.LittleEndian.Uint32(w) & lengthMask[l2]
		w = w[l2:]
		dst[i+3] = binary.LittleEndian.Uint32(w) & lengthMask[l3]

		pos += int(groupDataLen[key])
	}

	for ; i < n; i++ {
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
