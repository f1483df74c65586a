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
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/ianlewis/go-tlk/charset"
)

// ErrTableTooLarge indicates that a table cannot be represented in the TLK
// V1 format's 32 bit count and offset fields.
var ErrTableTooLarge = errors.New("table too large")

// Encode encodes a Table into TLK V1 bytes. Entries are laid out in index
// order and all offsets are recomputed; the string data block is built by
// appending each entry's encoded text in turn, so entry data regions are
// contiguous and never overlap. Encode is deterministic: equal tables
// produce identical bytes.
//
// Encoding is all or nothing. On any error no bytes are returned.
func Encode(t *Table, opts *Options) ([]byte, error) {
	if opts == nil {
		opts = &Options{}
	}
	cs := opts.Charset
	if cs == nil {
		cs = t.Charset
	}
	if cs == nil {
		cs = charset.Windows1252
	}

	count := uint64(len(t.Entries))
	strOffset := headerSize + count*entrySize
	if count > math.MaxUint32 || strOffset > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d entries", ErrTableTooLarge, count)
	}

	records := make([]byte, 0, count*entrySize)
	var stringData []byte

	var rec [entrySize]byte
	for i, e := range t.Entries {
		var raw []byte
		var err error
		if opts.Replace {
			raw, err = cs.EncodeReplace(e.Text)
		} else {
			raw, err = cs.Encode(e.Text)
		}
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		off := uint64(len(stringData))
		if off+uint64(len(raw)) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: string data exceeds 4GiB at entry %d", ErrTableTooLarge, i)
		}
		stringData = append(stringData, raw...)

		// The text flag reflects whether the entry actually has text.
		flags := e.Flags
		if e.Text != "" {
			flags |= FlagText
		} else {
			flags &^= FlagText
		}

		binary.LittleEndian.PutUint16(rec[0:2], flags)
		copy(rec[2:10], e.Sound[:])
		binary.LittleEndian.PutUint32(rec[10:14], e.VolumeVariance)
		binary.LittleEndian.PutUint32(rec[14:18], e.PitchVariance)
		binary.LittleEndian.PutUint32(rec[18:22], uint32(off))
		binary.LittleEndian.PutUint32(rec[22:26], uint32(len(raw)))
		records = append(records, rec[:]...)
	}

	b := make([]byte, 0, strOffset+uint64(len(stringData)))
	b = append(b, Signature...)
	b = append(b, Version...)
	b = binary.LittleEndian.AppendUint16(b, t.LanguageID)
	b = binary.LittleEndian.AppendUint32(b, uint32(count))
	b = binary.LittleEndian.AppendUint32(b, uint32(strOffset))
	b = append(b, records...)
	b = append(b, stringData...)

	return b, nil
}
