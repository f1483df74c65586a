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

	"github.com/ianlewis/go-tlk/charset"
)

// ErrBadSignature indicates that the file does not start with the TLK
// signature.
var ErrBadSignature = errors.New("bad signature")

// ErrBadVersion indicates an unsupported TLK version.
var ErrBadVersion = errors.New("unsupported version")

// ErrTruncated indicates that the file is shorter than its header or entry
// table claims.
var ErrTruncated = errors.New("truncated file")

// ErrInconsistentOffsets indicates that the header's string data offset
// does not agree with the entry count and file size.
var ErrInconsistentOffsets = errors.New("inconsistent offsets")

// ErrDecode indicates that string data could not be decoded with the
// configured charset.
var ErrDecode = errors.New("decoding string data")

// Options are options for decoding and encoding tables.
type Options struct {
	// Charset is the byte encoding of the string data. Decode defaults to
	// [charset.Windows1252]. Encode defaults to the table's charset.
	Charset *charset.Charset

	// Replace substitutes a replacement character for undecodable bytes and
	// unmappable characters instead of failing. The default is strict:
	// conversion errors abort the whole operation.
	Replace bool
}

// DefaultOptions is the default options for decoding and encoding.
var DefaultOptions = &Options{
	Charset: charset.Windows1252,
}

// Decode decodes a TLK V1 file into a Table. The returned table's entries
// are in file order. All header and entry offsets are validated against the
// buffer before use so malformed input fails with an error rather than a
// panic.
func Decode(b []byte, opts *Options) (*Table, error) {
	if opts == nil {
		opts = DefaultOptions
	}
	cs := opts.Charset
	if cs == nil {
		cs = charset.Windows1252
	}

	if len(b) < headerSize {
		return nil, fmt.Errorf("%w: header requires %d bytes, have %d", ErrTruncated, headerSize, len(b))
	}
	if string(b[0:4]) != Signature {
		return nil, fmt.Errorf("%w: %q", ErrBadSignature, b[0:4])
	}
	if string(b[4:8]) != Version {
		return nil, fmt.Errorf("%w: %q", ErrBadVersion, b[4:8])
	}

	languageID := binary.LittleEndian.Uint16(b[8:10])
	count := binary.LittleEndian.Uint32(b[10:14])
	strOffset := binary.LittleEndian.Uint32(b[14:18])

	entriesEnd := headerSize + uint64(count)*entrySize
	if entriesEnd > uint64(len(b)) {
		return nil, fmt.Errorf("%w: entry table requires %d bytes, have %d", ErrTruncated, entriesEnd, len(b))
	}
	if uint64(strOffset) < entriesEnd || uint64(strOffset) > uint64(len(b)) {
		return nil, fmt.Errorf("%w: string data offset %d outside of range %d-%d", ErrInconsistentOffsets, strOffset, entriesEnd, len(b))
	}

	t := &Table{
		LanguageID: languageID,
		Charset:    cs,
		Entries:    make([]*Entry, 0, count),
	}

	for i := uint64(0); i < uint64(count); i++ {
		rec := b[headerSize+i*entrySize:][:entrySize]

		e := &Entry{
			Flags:          binary.LittleEndian.Uint16(rec[0:2]),
			VolumeVariance: binary.LittleEndian.Uint32(rec[10:14]),
			PitchVariance:  binary.LittleEndian.Uint32(rec[14:18]),
		}
		copy(e.Sound[:], rec[2:10])

		off := binary.LittleEndian.Uint32(rec[18:22])
		length := binary.LittleEndian.Uint32(rec[22:26])

		start := uint64(strOffset) + uint64(off)
		end := start + uint64(length)
		if end > uint64(len(b)) {
			return nil, fmt.Errorf("%w: entry %d: string data at offset %d, length %d exceeds file size %d", ErrTruncated, i, off, length, len(b))
		}

		raw := b[start:end]
		if opts.Replace {
			e.Text = cs.DecodeReplace(raw)
		} else {
			text, err := cs.Decode(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: entry %d: %v", ErrDecode, i, err)
			}
			e.Text = text
		}

		t.Entries = append(t.Entries, e)
	}

	return t, nil
}
