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

package main

import (
	"fmt"
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	tlk "github.com/ianlewis/go-tlk"
	"github.com/ianlewis/go-tlk/charset"
	"github.com/ianlewis/go-tlk/lang"
)

var dumpCommand = &cli.Command{
	Name:      "dump",
	Usage:     "Dump the entries of a TLK file",
	ArgsUsage: "[TLK_FILE]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "encoding",
			Usage: "text encoding of the TLK file (windows-1252 or utf-8)",
			Value: charset.Windows1252.Name(),
		},
		&cli.IntFlag{
			Name:  "max",
			Usage: "show at most `N` entries",
			Value: 100,
		},
		&cli.BoolFlag{
			Name:  "show-empty",
			Usage: "include entries with no text",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("%w: expected a single TLK_FILE argument", ErrFlagParse)
		}

		cs, err := charset.Get(c.String("encoding"))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		}

		t, err := lang.Load(c.Args().Get(0), &tlk.Options{Charset: cs})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrTlkutil, err)
		}

		fmt.Fprintf(c.App.Writer, "%d entries, language ID %d, %v\n", t.Len(), t.LanguageID, t.Charset)

		tbl := table.New("Strref", "Flags", "Sound", "Length", "Text").WithWriter(c.App.Writer)
		shown := 0
		for strref, e := range t.Entries {
			if shown >= c.Int("max") {
				break
			}
			if !c.Bool("show-empty") && strings.TrimSpace(e.Text) == "" {
				continue
			}
			tbl.AddRow(strref, fmt.Sprintf("%02x", e.Flags), e.SoundName(), len(e.Text), dumpText(e.Text))
			shown++
		}
		tbl.Print()

		return nil
	},
}

// dumpText renders entry text as a single truncated line.
func dumpText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", `\n`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\n`)

	runes := []rune(s)
	if len(runes) > 80 {
		return string(runes[:79]) + "…"
	}
	return s
}
