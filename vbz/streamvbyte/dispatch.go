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

// fastPathEnabled selects the grouped V0 decoder. Set by init() in
// dispatch_*.go files; the scalar decoder is always available and
// value-identical.
var fastPathEnabled bool

// FastPathEnabled reports whether the grouped V0 decode path is in use.
func FastPathEnabled() bool {
	return fastPathEnabled
}

// PathName returns a human-readable name for the active V0 decode path.
func PathName() string {
	if fastPathEnabled {
		return "grouped"
	}
	return "scalar"
}
