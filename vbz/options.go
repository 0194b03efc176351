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

// StreamVByteVersion selects the Stream-VByte key stream layout.
type StreamVByteVersion uint32

const (
	// V0 packs keys four to a byte ahead of the data stream. This is the
	// default layout and the one with a grouped fast decode path.
	V0 StreamVByteVersion = iota

	// V1 packs keys as a byte-padded 2-bit little-endian bit stream.
	V1
)

// DefaultVersion is the layout used when callers have no reason to choose.
const DefaultVersion = V0

// String returns a human-readable name for the version.
func (v StreamVByteVersion) String() string {
	switch v {
	case V0:
		return "v0"
	case V1:
		return "v1"
	default:
		return "unknown"
	}
}

// Options describes how one buffer is compressed. The zero value is not
// useful; IntegerSize must be set to 1, 2 or 4.
type Options struct {
	// PerformDeltaZigZag applies the delta + zig-zag pre-transform before
	// integer packing. Signal traces compress substantially better with it.
	PerformDeltaZigZag bool

	// IntegerSize is the sample width in bytes: 1, 2 or 4.
	IntegerSize uint32

	// ZstdCompressionLevel selects the zstd stage: 0 disables it, any other
	// value enables it and is handed to zstd as the level. Values outside
	// zstd's range are zstd's business to clamp.
	ZstdCompressionLevel int

	// Version selects the Stream-VByte layout.
	Version StreamVByteVersion
}

// sampleWidth validates IntegerSize and returns it as an int.
func (o *Options) sampleWidth() (int, error) {
	switch o.IntegerSize {
	case 1, 2, 4:
		return int(o.IntegerSize), nil
	}
	return 0, ErrInputSize
}
