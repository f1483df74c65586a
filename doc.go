// Copyright 2025 Ian Lewis
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

// Package tlk implements reading and writing Infinity Engine TLK V1 string
// table files (dialog.tlk) in pure Go.
//
// A TLK file holds every localized string of a game installation, addressed
// by a numeric string reference. The file layout is little-endian:
//
//  1. An 18 byte header: a 4 byte signature ("TLK "), a 4 byte version
//     ("V1  "), a 16 bit language ID, a 32 bit entry count, and a 32 bit
//     offset to the string data block.
//  2. An entry table of 26 byte fixed-size records: a 16 bit flags field,
//     an 8 byte sound resource reference, 32 bit volume and pitch variance
//     fields, and the 32 bit offset (relative to the string data block) and
//     32 bit length of the entry's text.
//  3. The string data block: the raw bytes of all strings, encoded with a
//     single byte encoding (usually windows-1252) or UTF-8 depending on the
//     game release.
//
// Entries are identified by position: the string reference of an entry is
// its index in the entry table.
//
// More info on the format can be found at this URL:
// https://gibberlings3.github.io/iesdp/file_formats/ie_formats/tlk_v1.htm
package tlk
