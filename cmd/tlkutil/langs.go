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

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-tlk/lang"
)

var langsCommand = &cli.Command{
	Name:      "langs",
	Usage:     "List installed languages",
	ArgsUsage: "[GAME_DIR]",
	Description: `List the language directories of a game installation. With no argument,
well known install locations are searched.`,
	Action: func(c *cli.Context) error {
		if c.NArg() > 1 {
			return fmt.Errorf("%w: expected at most one GAME_DIR argument", ErrFlagParse)
		}

		gameDir := c.Args().Get(0)
		if gameDir == "" {
			gameDir = findGameDir()
			if gameDir == "" {
				return fmt.Errorf("%w: no game installation found; pass GAME_DIR", ErrTlkutil)
			}
			fmt.Fprintf(c.App.Writer, "found game at %s\n", gameDir)
		}

		langs, err := lang.List(gameDir)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrTlkutil, err)
		}

		tbl := table.New("Language", "dialog.tlk").WithWriter(c.App.Writer)
		for _, l := range langs {
			size := "missing"
			if l.DialogSize >= 0 {
				size = fmt.Sprintf("%d bytes", l.DialogSize)
			}
			tbl.AddRow(l.Code, size)
		}
		tbl.Print()

		return nil
	},
}

// findGameDir returns the first well known install location that looks like
// a game directory.
func findGameDir() string {
	for _, dir := range gameLocations() {
		if info, err := os.Stat(filepath.Join(dir, "lang")); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}
