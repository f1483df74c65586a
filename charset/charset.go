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

// Package charset implements the byte encodings used by TLK string data.
//
// Classic game releases encode string data with the windows-1252 single
// byte encoding. Some Enhanced Edition installs use UTF-8 instead. The
// encoding is not recorded in the file itself, so callers select it by
// name.
package charset

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownCharset indicates that a charset name is not recognized.
var ErrUnknownCharset = errors.New("unknown charset")

// ErrInvalidBytes indicates that a byte sequence is not valid for the
// charset.
var ErrInvalidBytes = errors.New("invalid bytes for charset")

// ErrUnmappable indicates that text contains a character that cannot be
// represented in the charset.
var ErrUnmappable = errors.New("unmappable character")

// Charset is a named byte encoding for TLK string data.
type Charset struct {
	name       string
	enc        encoding.Encoding
	singleByte bool
}

// Windows1252 is the windows-1252 single byte encoding used by classic
// game releases.
var Windows1252 = &Charset{
	name:       "windows-1252",
	enc:        charmap.Windows1252,
	singleByte: true,
}

// UTF8 is the UTF-8 encoding used by some Enhanced Edition releases.
var UTF8 = &Charset{
	name: "utf-8",
	enc:  unicode.UTF8,
}

// Get returns the charset with the given name. Common aliases such as
// "cp1252" and "utf8" are recognized.
func Get(name string) (*Charset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "windows-1252", "windows1252", "cp1252", "1252", "latin1", "western-8bit":
		return Windows1252, nil
	case "utf-8", "utf8", "unicode", "universal":
		return UTF8, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
	}
}

// Names returns the canonical names of all supported charsets.
func Names() []string {
	return []string{Windows1252.name, UTF8.name}
}

// Name returns the charset's canonical name.
func (c *Charset) Name() string {
	return c.name
}

// String implements [fmt.Stringer].
func (c *Charset) String() string {
	return c.name
}

// ASCIICompatible returns whether the charset encodes the ASCII range as
// single identical bytes. Text that uses only ASCII characters produces the
// same bytes under any ASCII compatible charset.
func (c *Charset) ASCIICompatible() bool {
	// Both windows-1252 and UTF-8 are ASCII supersets.
	return true
}

// SingleByte returns whether the charset encodes every character as a
// single byte.
func (c *Charset) SingleByte() bool {
	return c.singleByte
}

// Decode decodes bytes into text. It returns an error wrapping
// ErrInvalidBytes if the bytes are not valid for the charset.
func (c *Charset) Decode(b []byte) (string, error) {
	if c == UTF8 {
		// The UTF-8 decoder substitutes U+FFFD for invalid sequences
		// without reporting them, so validate explicitly.
		v, _, err := transform.Bytes(encoding.UTF8Validator, b)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidBytes, err)
		}
		return string(v), nil
	}

	s, err := c.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBytes, err)
	}
	return string(s), nil
}

// DecodeReplace decodes bytes into text, substituting the Unicode
// replacement character for invalid sequences.
func (c *Charset) DecodeReplace(b []byte) string {
	s, _ := c.enc.NewDecoder().Bytes(b)
	return string(s)
}

// Encode encodes text into the charset's bytes. It returns an error
// wrapping ErrUnmappable if the text contains a character that the charset
// cannot represent.
func (c *Charset) Encode(s string) ([]byte, error) {
	b, err := c.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnmappable, err)
	}
	return b, nil
}

// EncodeReplace encodes text into the charset's bytes, substituting the
// charset's substitute character for unmappable characters.
func (c *Charset) EncodeReplace(s string) ([]byte, error) {
	b, err := encoding.ReplaceUnsupported(c.enc.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encoding text: %w", err)
	}
	return b, nil
}

// Compatible returns whether text decoded from charset a and text decoded
// from charset b may be combined and encoded with either charset. Charsets
// are compatible if they are identical, or if both are ASCII compatible and
// the combined text uses only ASCII characters. The latter condition is
// data dependent and must be checked by the caller; Compatible only reports
// the capability.
func Compatible(a, b *Charset) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.name == b.name {
		return true
	}
	return a.ASCIICompatible() && b.ASCIICompatible()
}
