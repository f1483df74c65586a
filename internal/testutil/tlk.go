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

package testutil

import (
	"encoding/binary"
)

// Entry describes one entry record for a raw test TLK buffer. Text holds
// the already-encoded string bytes.
type Entry struct {
	Flags  uint16
	Sound  string
	Volume uint32
	Pitch  uint32
	Text   []byte
}

// MakeTLK builds a raw TLK V1 buffer from the given entries. String data
// offsets are assigned in entry order. Tests that need malformed input can
// corrupt the returned bytes directly.
func MakeTLK(languageID uint16, entries []Entry) []byte {
	const (
		headerSize = 18
		entrySize  = 26
	)

	strOffset := headerSize + len(entries)*entrySize

	b := []byte("TLK V1  ")
	b = binary.LittleEndian.AppendUint16(b, languageID)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(entries)))
	b = binary.LittleEndian.AppendUint32(b, uint32(strOffset))

	var stringData []byte
	for _, e := range entries {
		b = binary.LittleEndian.AppendUint16(b, e.Flags)

		var sound [8]byte
		copy(sound[:], e.Sound)
		b = append(b, sound[:]...)

		b = binary.LittleEndian.AppendUint32(b, e.Volume)
		b = binary.LittleEndian.AppendUint32(b, e.Pitch)
		b = binary.LittleEndian.AppendUint32(b, uint32(len(stringData)))
		b = binary.LittleEndian.AppendUint32(b, uint32(len(e.Text)))

		stringData = append(stringData, e.Text...)
	}

	return append(b, stringData...)
}
