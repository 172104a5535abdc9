// Copyright 2016 CoreOS, Inc
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

// Package flate decodes raw DEFLATE streams (RFC 1951). It implements only
// the decompressor: the bit reader, the canonical Huffman table builder, the
// three block strategies (stored, fixed, dynamic), and the LZ77 window
// writer. Container formats (gzip, zlib), checksums, and random access into
// a compressed stream are out of scope; callers wanting those wrap a
// *Decoder around their own framing.
package flate
