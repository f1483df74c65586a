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
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-tlk/lang"
)

var restoreCommand = &cli.Command{
	Name:      "restore",
	Usage:     "Restore original TLK files from backups",
	ArgsUsage: "[GAME_DIR]",
	Description: `Undo a previous 'merge --install' by restoring the .bak backups of the
primary language's TLK files.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "primary-lang",
			Usage:    "primary language `CODE`, e.g. de_DE",
			Aliases:  []string{"p"},
			Required: true,
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("%w: expected a single GAME_DIR argument", ErrFlagParse)
		}
		gameDir := c.Args().Get(0)
		code := c.String("primary-lang")

		restored := 0
		for _, filename := range []string{lang.DialogFile, lang.DialogFFile} {
			err := lang.Restore(gameDir, code, filename)
			if errors.Is(err, lang.ErrNoBackup) {
				continue
			}
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTlkutil, err)
			}
			fmt.Fprintf(c.App.Writer, "restored %s\n", lang.Path(gameDir, code, filename))
			restored++
		}

		if restored == 0 {
			return fmt.Errorf("%w: no backups found for %s", ErrTlkutil, code)
		}
		return nil
	},
}
