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

package lang_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	tlk "github.com/ianlewis/go-tlk"
	"github.com/ianlewis/go-tlk/charset"
	"github.com/ianlewis/go-tlk/internal/testutil"
	"github.com/ianlewis/go-tlk/lang"
)

// writeGame writes a game directory with the given language TLK files.
func writeGame(t *testing.T, files map[string][]byte) string {
	t.Helper()

	gameDir := t.TempDir()
	for path, b := range files {
		full := filepath.Join(gameDir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, b, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return gameDir
}

func dialogTLK(t *testing.T, texts ...string) []byte {
	t.Helper()

	var entries []testutil.Entry
	for _, text := range texts {
		entries = append(entries, testutil.Entry{
			Flags: tlk.FlagText,
			Text:  []byte(text),
		})
	}
	return testutil.MakeTLK(0, entries)
}

// TestList tests language directory enumeration.
func TestList(t *testing.T) {
	t.Parallel()

	dialog := dialogTLK(t, "Hallo Welt")
	gameDir := writeGame(t, map[string][]byte{
		"lang/de_DE/dialog.tlk": dialog,
		"lang/en_US/dialog.tlk": dialog,
		"lang/fr_FR/.keep":      {},
	})

	langs, err := lang.List(gameDir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	expected := []lang.Language{
		{Code: "de_DE", DialogSize: int64(len(dialog))},
		{Code: "en_US", DialogSize: int64(len(dialog))},
		{Code: "fr_FR", DialogSize: -1},
	}
	if diff := cmp.Diff(expected, langs); diff != "" {
		t.Fatalf("List (-want, +got):\n%s", diff)
	}
}

// TestResolveSecondary tests the dialogf.tlk fallback.
func TestResolveSecondary(t *testing.T) {
	t.Parallel()

	gameDir := writeGame(t, map[string][]byte{
		"lang/de_DE/dialog.tlk":  dialogTLK(t, "Hallo"),
		"lang/de_DE/dialogf.tlk": dialogTLK(t, "Hallo"),
		"lang/en_US/dialog.tlk":  dialogTLK(t, "Hello"),
	})

	tests := []struct {
		name     string
		code     string
		filename string

		expected string
		err      error
	}{
		{
			name:     "file exists",
			code:     "de_DE",
			filename: lang.DialogFFile,
			expected: lang.Path(gameDir, "de_DE", lang.DialogFFile),
		},
		{
			name:     "dialogf falls back to dialog",
			code:     "en_US",
			filename: lang.DialogFFile,
			expected: lang.Path(gameDir, "en_US", lang.DialogFile),
		},
		{
			name:     "missing language",
			code:     "pl_PL",
			filename: lang.DialogFile,
			err:      os.ErrNotExist,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			path, err := lang.ResolveSecondary(gameDir, test.code, test.filename)
			if test.err != nil {
				if !errors.Is(err, test.err) {
					t.Fatalf("ResolveSecondary: want error %v, got: %v", test.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveSecondary: %v", err)
			}
			if path != test.expected {
				t.Fatalf("ResolveSecondary; want: %q, got: %q", test.expected, path)
			}
		})
	}
}

// TestLoadSave tests the file round trip.
func TestLoadSave(t *testing.T) {
	t.Parallel()

	table := &tlk.Table{
		Charset: charset.Windows1252,
		Entries: []*tlk.Entry{
			{Flags: tlk.FlagText, Text: "Hallo Welt"},
		},
	}

	path := filepath.Join(t.TempDir(), "out", "dialog.tlk")
	if err := lang.Save(path, table, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := lang.Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want, got := "Hallo Welt", loaded.Text(0); want != got {
		t.Fatalf("Text; want: %q, got: %q", want, got)
	}
}

// TestSave_noPartialOutput tests that a failed encode leaves no file
// behind.
func TestSave_noPartialOutput(t *testing.T) {
	t.Parallel()

	table := &tlk.Table{
		Charset: charset.Windows1252,
		Entries: []*tlk.Entry{
			// Unmappable in windows-1252.
			{Flags: tlk.FlagText, Text: "Σίγμα"},
		},
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "dialog.tlk")
	if err := lang.Save(path, table, nil); !errors.Is(err, charset.ErrUnmappable) {
		t.Fatalf("Save: want error %v, got: %v", charset.ErrUnmappable, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("Save: %d files left behind on error", len(entries))
	}
}

// TestInstallRestore tests install with backup and restore.
func TestInstallRestore(t *testing.T) {
	t.Parallel()

	original := dialogTLK(t, "original")
	merged := dialogTLK(t, "merged")
	updated := dialogTLK(t, "updated")

	gameDir := writeGame(t, map[string][]byte{
		"lang/de_DE/dialog.tlk": original,
		"output/dialog.tlk":     merged,
	})
	src := filepath.Join(gameDir, "output", "dialog.tlk")
	dst := lang.Path(gameDir, "de_DE", lang.DialogFile)

	if err := lang.Install(gameDir, "de_DE", src); err != nil {
		t.Fatalf("Install: %v", err)
	}

	installed, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(merged, installed); diff != "" {
		t.Fatalf("Install (-want, +got):\n%s", diff)
	}

	backup, err := os.ReadFile(dst + lang.BackupExt)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(original, backup); diff != "" {
		t.Fatalf("Install backup (-want, +got):\n%s", diff)
	}

	// A second install must not clobber the original backup.
	if err := os.WriteFile(src, updated, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := lang.Install(gameDir, "de_DE", src); err != nil {
		t.Fatalf("Install: %v", err)
	}
	backup, err = os.ReadFile(dst + lang.BackupExt)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(original, backup); diff != "" {
		t.Fatalf("Install backup after reinstall (-want, +got):\n%s", diff)
	}

	if err := lang.Restore(gameDir, "de_DE", lang.DialogFile); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	restored, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(original, restored); diff != "" {
		t.Fatalf("Restore (-want, +got):\n%s", diff)
	}
	if _, err := os.Stat(dst + lang.BackupExt); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Restore: backup not removed: %v", err)
	}

	// Restoring again fails with ErrNoBackup.
	if err := lang.Restore(gameDir, "de_DE", lang.DialogFile); !errors.Is(err, lang.ErrNoBackup) {
		t.Fatalf("Restore: want error %v, got: %v", lang.ErrNoBackup, err)
	}
}
