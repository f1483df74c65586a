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

// Package merge combines two language versions of a TLK string table into a
// single bilingual table.
//
// Entries are paired by string reference. Pairs whose texts differ are
// joined with a separator. Short strings are joined inline with a separator
// that contains no line break: the engine uses some short strings (area
// names, the auto-save label) to name save folders on disk, and a line
// break in such a string breaks folder creation and crashes the game's save
// routine. Whether a pair is short is a length heuristic, not a semantic
// classification; the set of strings that back folder names is not stable
// across game versions.
package merge

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	tlk "github.com/ianlewis/go-tlk"
	"github.com/ianlewis/go-tlk/charset"
)

// ErrIncompatibleCharsets indicates that the two tables' charsets cannot be
// combined without corrupting text.
var ErrIncompatibleCharsets = errors.New("incompatible charsets")

// Options are options for merging two tables.
type Options struct {
	// Separator joins the two texts of a long-form pair. Defaults to a
	// single line break.
	Separator string

	// InlineSeparator joins the two texts of a short-form pair. It must not
	// introduce a line break; any line breaks are folded to spaces.
	// Defaults to " ~ ", which contains no characters that are illegal in
	// filesystem paths.
	InlineSeparator string

	// ShortThreshold is the length in runes below which both texts of a
	// pair must be for the pair to be short-form. Defaults to 32.
	ShortThreshold int

	// Swap reverses which language is shown first for every pair.
	Swap bool
}

// DefaultOptions is the default merge options.
var DefaultOptions = &Options{
	Separator:       "\n",
	InlineSeparator: " ~ ",
	ShortThreshold:  32,
}

// Stats summarizes what a merge did to each entry pair.
type Stats struct {
	// Total is the number of entries in the merged table.
	Total int

	// Combined is the number of long-form pairs joined with Separator.
	Combined int

	// Inline is the number of short-form pairs joined with InlineSeparator.
	Inline int

	// Kept is the number of pairs where one side's text was used unchanged.
	Kept int

	// Empty is the number of pairs with no text on either side.
	Empty int
}

var lineBreakFolder = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// Merge combines the primary and secondary tables into a new bilingual
// table. The inputs are not modified.
//
// Entries are paired by string reference. The tables need not have the same
// number of entries; a side missing an entry contributes empty text and the
// other side's entry passes through unchanged. Merged entries keep the
// primary entry's flags, sound resource, and variance fields; only the text
// flag is adjusted to reflect the merged text.
//
// Merge fails with ErrIncompatibleCharsets before producing any output if
// the tables' charsets differ and the text is not limited to the ASCII
// range both charsets share.
func Merge(primary, secondary *tlk.Table, opts *Options) (*tlk.Table, *Stats, error) {
	if opts == nil {
		opts = DefaultOptions
	}
	separator := opts.Separator
	if separator == "" {
		separator = DefaultOptions.Separator
	}
	inline := opts.InlineSeparator
	if inline == "" {
		inline = DefaultOptions.InlineSeparator
	}
	// The inline separator must never smuggle a line break into a
	// short-form string.
	inline = lineBreakFolder.Replace(inline)
	threshold := opts.ShortThreshold
	if threshold == 0 {
		threshold = DefaultOptions.ShortThreshold
	}

	cs, err := compatibleCharset(primary, secondary)
	if err != nil {
		return nil, nil, err
	}

	n := len(primary.Entries)
	if len(secondary.Entries) > n {
		n = len(secondary.Entries)
	}

	merged := &tlk.Table{
		LanguageID: primary.LanguageID,
		Charset:    cs,
		Entries:    make([]*tlk.Entry, 0, n),
	}
	stats := &Stats{Total: n}

	for i := 0; i < n; i++ {
		var pEntry, sEntry *tlk.Entry
		if i < len(primary.Entries) {
			pEntry = primary.Entries[i]
		}
		if i < len(secondary.Entries) {
			sEntry = secondary.Entries[i]
		}

		var pText, sText string
		if pEntry != nil {
			pText = pEntry.Text
		}
		if sEntry != nil {
			sText = sEntry.Text
		}
		if opts.Swap {
			pText, sText = sText, pText
		}

		text := combine(pText, sText, separator, inline, threshold, stats)

		// Non-text metadata comes from the primary side.
		meta := pEntry
		if meta == nil {
			meta = sEntry
		}
		entry := &tlk.Entry{
			Flags:          meta.Flags,
			Sound:          meta.Sound,
			VolumeVariance: meta.VolumeVariance,
			PitchVariance:  meta.PitchVariance,
			Text:           text,
		}
		if text != "" {
			entry.Flags |= tlk.FlagText
		} else {
			entry.Flags &^= tlk.FlagText
		}
		merged.Entries = append(merged.Entries, entry)
	}

	return merged, stats, nil
}

// combine merges one pair of texts. Texts are compared after trimming
// surrounding whitespace but the original text is preserved in the output.
func combine(p, s, separator, inline string, threshold int, stats *Stats) string {
	pTrim := strings.TrimSpace(p)
	sTrim := strings.TrimSpace(s)

	switch {
	case pTrim == "" && sTrim == "":
		stats.Empty++
		return ""
	case pTrim == sTrim || sTrim == "":
		stats.Kept++
		return p
	case pTrim == "":
		stats.Kept++
		return s
	}

	if shortForm(p, threshold) && shortForm(s, threshold) {
		stats.Inline++
		return p + inline + s
	}

	stats.Combined++
	return p + separator + s
}

// shortForm returns whether text may back a filesystem-visible string: it
// is below the length threshold and contains no line break of its own.
func shortForm(text string, threshold int) bool {
	return utf8.RuneCountInString(text) < threshold && !strings.ContainsAny(text, "\r\n")
}

// compatibleCharset validates that the two tables' texts can be combined
// and returns the charset for the merged table.
func compatibleCharset(primary, secondary *tlk.Table) (*charset.Charset, error) {
	pc := primary.Charset
	if pc == nil {
		pc = charset.Windows1252
	}
	sc := secondary.Charset
	if sc == nil {
		sc = charset.Windows1252
	}

	if pc.Name() == sc.Name() {
		return pc, nil
	}
	if !charset.Compatible(pc, sc) {
		return nil, fmt.Errorf("%w: %v and %v", ErrIncompatibleCharsets, pc, sc)
	}
	// The charsets agree only on the ASCII range, so the actual text must
	// be limited to it.
	if !asciiOnly(primary) || !asciiOnly(secondary) {
		return nil, fmt.Errorf("%w: %v and %v tables contain non-ASCII text", ErrIncompatibleCharsets, pc, sc)
	}
	return pc, nil
}

// asciiOnly returns whether every entry of the table contains only ASCII
// text.
func asciiOnly(t *tlk.Table) bool {
	for _, e := range t.Entries {
		for i := 0; i < len(e.Text); i++ {
			if e.Text[i] > 0x7f {
				return false
			}
		}
	}
	return true
}
