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

package tlk

import (
	"bytes"

	"github.com/ianlewis/go-tlk/charset"
)

const (
	// Signature is the TLK file signature.
	Signature = "TLK "

	// Version is the TLK V1 version string.
	Version = "V1  "

	headerSize = 18
	entrySize  = 26

	// SoundSize is the size of an entry's sound resource reference.
	SoundSize = 8
)

// Entry flag bits.
const (
	// FlagText indicates the entry has text in the string data block.
	FlagText = uint16(0x01)

	// FlagSound indicates the entry has an associated sound resource.
	FlagSound = uint16(0x02)

	// FlagToken indicates the entry's text contains engine tokens.
	FlagToken = uint16(0x04)
)

// Entry is a single string table entry. The entry's string reference is its
// position in the table.
type Entry struct {
	// Flags is the entry's flag bitfield.
	Flags uint16

	// Sound is the entry's sound resource reference, padded with zero bytes.
	Sound [SoundSize]byte

	// VolumeVariance is unused by the engine and copied through unchanged.
	VolumeVariance uint32

	// PitchVariance is unused by the engine and copied through unchanged.
	PitchVariance uint32

	// Text is the entry's decoded text.
	Text string
}

// HasText returns whether the text flag is set.
func (e *Entry) HasText() bool {
	return e.Flags&FlagText != 0
}

// HasSound returns whether the sound flag is set.
func (e *Entry) HasSound() bool {
	return e.Flags&FlagSound != 0
}

// SoundName returns the entry's sound resource reference as a string with
// zero byte padding removed.
func (e *Entry) SoundName() string {
	return string(bytes.TrimRight(e.Sound[:], "\x00"))
}

// Table is a decoded TLK string table. A Table is constructed fresh on each
// Decode call and owned by its caller.
type Table struct {
	// LanguageID is the header's language ID.
	LanguageID uint16

	// Charset is the byte encoding the table's text was decoded with. It is
	// used as the default encoding when the table is re-encoded.
	Charset *charset.Charset

	// Entries are the table's entries in file order.
	Entries []*Entry
}

// Text returns the text of the entry with the given string reference, or the
// empty string if the table has no such entry.
func (t *Table) Text(strref int) string {
	if strref < 0 || strref >= len(t.Entries) {
		return ""
	}
	return t.Entries[strref].Text
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.Entries)
}
