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

import "errors"

// Error is a codec failure with a stable numeric code. The codes are part of
// the wire-adjacent ABI (host filters report them as negative return values)
// and must not be renumbered across releases.
type Error struct {
	code int32
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Code returns the stable negative error code.
func (e *Error) Code() int32 { return e.code }

var (
	// ErrInputSize reports a source length that is not a multiple of the
	// sample width, an invalid IntegerSize, or an element count beyond the
	// 32-bit limit.
	ErrInputSize = &Error{-1, "vbz: bad input size for the configured integer size"}

	// ErrDestinationTooSmall reports a destination buffer smaller than the
	// bytes the current stage needs to write.
	ErrDestinationTooSmall = &Error{-2, "vbz: destination buffer too small"}

	// ErrInputCorrupted reports a compressed input whose key stream or
	// length header implies more bytes than are present, or a malformed
	// zstd frame.
	ErrInputCorrupted = &Error{-3, "vbz: compressed input corrupted"}

	// ErrZstd reports a zstd failure not attributable to input corruption.
	ErrZstd = &Error{-4, "vbz: zstd failure"}

	// ErrUnknownVersion reports an unrecognized Stream-VByte version.
	ErrUnknownVersion = &Error{-5, "vbz: unknown stream-vbyte version"}
)

// ErrorCode returns the stable code carried by err, or 0 when err is nil.
// An error that wraps none of the sentinels reports ErrZstd's code, the
// catch-all for unexpected library failures.
func ErrorCode(err error) int32 {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return ErrZstd.code
}

// IsError reports whether a compress or decompress result is a failure.
func IsError(err error) bool { return err != nil }
