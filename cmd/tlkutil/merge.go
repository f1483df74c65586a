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
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	tlk "github.com/ianlewis/go-tlk"
	"github.com/ianlewis/go-tlk/charset"
	"github.com/ianlewis/go-tlk/lang"
	"github.com/ianlewis/go-tlk/merge"
)

var mergeCommand = &cli.Command{
	Name:      "merge",
	Usage:     "Merge two installed languages into bilingual TLK files",
	ArgsUsage: "[GAME_DIR]",
	Description: `Merge the primary and secondary language's dialog.tlk (and dialogf.tlk if
present) into bilingual files where every string shows both languages.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "primary-lang",
			Usage:    "primary language `CODE` (shown first), e.g. de_DE",
			Aliases:  []string{"p"},
			Required: true,
		},
		&cli.StringFlag{
			Name:     "secondary-lang",
			Usage:    "secondary language `CODE` (shown second), e.g. en_US",
			Aliases:  []string{"s"},
			Required: true,
		},
		&cli.StringFlag{
			Name:  "separator",
			Usage: "`SEP` between languages; \\n and \\t are expanded",
			Value: `\n`,
		},
		&cli.StringFlag{
			Name:  "inline-separator",
			Usage: "`SEP` between languages for short strings",
			Value: " ~ ",
		},
		&cli.IntFlag{
			Name:  "short-threshold",
			Usage: "strings shorter than `N` characters merge inline",
			Value: merge.DefaultOptions.ShortThreshold,
		},
		&cli.BoolFlag{
			Name:  "swap",
			Usage: "show the secondary language first",
		},
		&cli.StringFlag{
			Name:  "encoding",
			Usage: "text encoding of the TLK files (windows-1252 or utf-8)",
			Value: charset.Windows1252.Name(),
		},
		&cli.BoolFlag{
			Name:  "replace",
			Usage: "substitute a placeholder for unconvertible characters instead of failing",
		},
		&cli.StringFlag{
			Name:    "output-dir",
			Usage:   "write merged files to `DIR`",
			Aliases: []string{"o"},
			Value:   "./output",
		},
		&cli.BoolFlag{
			Name:  "install",
			Usage: "install merged files into the game, backing up originals",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("%w: expected a single GAME_DIR argument", ErrFlagParse)
		}
		gameDir := c.Args().Get(0)
		primaryLang := c.String("primary-lang")
		secondaryLang := c.String("secondary-lang")
		outputDir := c.String("output-dir")

		cs, err := charset.Get(c.String("encoding"))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		}
		opts := &tlk.Options{
			Charset: cs,
			Replace: c.Bool("replace"),
		}
		mergeOpts := &merge.Options{
			Separator:       parseSeparator(c.String("separator")),
			InlineSeparator: parseSeparator(c.String("inline-separator")),
			ShortThreshold:  c.Int("short-threshold"),
			Swap:            c.Bool("swap"),
		}

		var processed []string
		for _, filename := range []string{lang.DialogFile, lang.DialogFFile} {
			primaryPath := lang.Path(gameDir, primaryLang, filename)
			if _, err := os.Stat(primaryPath); err != nil {
				if filename == lang.DialogFile {
					return fmt.Errorf("%w: %s not found at %q", ErrTlkutil, filename, primaryPath)
				}
				continue
			}

			secondaryPath, err := lang.ResolveSecondary(gameDir, secondaryLang, filename)
			if err != nil {
				fmt.Fprintf(c.App.Writer, "skipping %s: %v\n", filename, err)
				continue
			}

			primary, err := lang.Load(primaryPath, opts)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTlkutil, err)
			}
			secondary, err := lang.Load(secondaryPath, opts)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTlkutil, err)
			}

			merged, stats, err := merge.Merge(primary, secondary, mergeOpts)
			if err != nil {
				return fmt.Errorf("%w: merging %s: %w", ErrTlkutil, filename, err)
			}

			outPath := filepath.Join(outputDir, filename)
			if err := lang.Save(outPath, merged, opts); err != nil {
				return fmt.Errorf("%w: %w", ErrTlkutil, err)
			}

			fmt.Fprintf(c.App.Writer, "%s: %d entries (%d bilingual, %d inline, %d kept, %d empty) -> %s\n",
				filename, stats.Total, stats.Combined, stats.Inline, stats.Kept, stats.Empty, outPath)
			processed = append(processed, filename)
		}

		if c.Bool("install") {
			for _, filename := range processed {
				src := filepath.Join(outputDir, filename)
				if err := lang.Install(gameDir, primaryLang, src); err != nil {
					return fmt.Errorf("%w: %w", ErrTlkutil, err)
				}
				fmt.Fprintf(c.App.Writer, "installed %s -> %s\n", src, lang.Path(gameDir, primaryLang, filename))
			}
		}

		return nil
	},
}
