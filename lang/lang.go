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

// Package lang locates and manages per-language TLK files in a game
// installation.
//
// A game installation keeps one directory per installed language under
// lang/, e.g. lang/en_US/dialog.tlk. Gendered languages additionally carry
// a dialogf.tlk with feminine forms; languages without one use dialog.tlk
// for both.
package lang

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tlk "github.com/ianlewis/go-tlk"
)

const (
	// DialogFile is the main string table file name.
	DialogFile = "dialog.tlk"

	// DialogFFile is the feminine string table file name used by gendered
	// languages.
	DialogFFile = "dialogf.tlk"

	// BackupExt is the extension appended to backed up files.
	BackupExt = ".bak"
)

// ErrNoBackup indicates that there is no backup file to restore.
var ErrNoBackup = errors.New("no backup")

// Language is an installed language directory.
type Language struct {
	// Code is the language code, e.g. "en_US".
	Code string

	// DialogSize is the size of the language's dialog.tlk in bytes, or -1
	// if the language has no dialog.tlk.
	DialogSize int64
}

// Dir returns the directory of the given language in a game installation.
func Dir(gameDir, code string) string {
	return filepath.Join(gameDir, "lang", code)
}

// Path returns the path of a TLK file for the given language.
func Path(gameDir, code, filename string) string {
	return filepath.Join(Dir(gameDir, code), filename)
}

// List returns the installed languages of a game installation in directory
// order.
func List(gameDir string) ([]Language, error) {
	langDir := filepath.Join(gameDir, "lang")
	entries, err := os.ReadDir(langDir)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", langDir, err)
	}

	var langs []Language
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		l := Language{
			Code:       entry.Name(),
			DialogSize: -1,
		}
		if info, err := os.Stat(Path(gameDir, l.Code, DialogFile)); err == nil {
			l.DialogSize = info.Size()
		}
		langs = append(langs, l)
	}
	return langs, nil
}

// ResolveSecondary returns the path of the secondary language's TLK file to
// merge against. If the secondary language has no dialogf.tlk its
// dialog.tlk is used instead, since only gendered languages carry one.
func ResolveSecondary(gameDir, code, filename string) (string, error) {
	path := Path(gameDir, code, filename)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if filename == DialogFFile {
		fallback := Path(gameDir, code, DialogFile)
		if _, err := os.Stat(fallback); err == nil {
			return fallback, nil
		}
	}
	return "", fmt.Errorf("no %s for language %s: %w", filename, code, os.ErrNotExist)
}

// Load reads and decodes a TLK file.
func Load(path string, opts *tlk.Options) (*tlk.Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	t, err := tlk.Decode(b, opts)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	return t, nil
}

// Save encodes a table and writes it to path. The file is written to a
// temporary file first and renamed into place so a failed encode or write
// never leaves a partial file behind.
func Save(path string, t *tlk.Table, opts *tlk.Options) error {
	b, err := tlk.Encode(t, opts)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %q: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmp := f.Name()
	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing %q: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %q: %w", tmp, err)
	}
	return nil
}

// Install copies the file at src into the language directory for code,
// overwriting the installed file of the same name. The installed file is
// backed up with BackupExt first unless a backup already exists, so the
// original survives repeated installs.
func Install(gameDir, code, src string) error {
	dst := Path(gameDir, code, filepath.Base(src))
	bak := dst + BackupExt

	_, dstErr := os.Stat(dst)
	_, bakErr := os.Stat(bak)
	if dstErr == nil && bakErr != nil {
		if err := copyFile(dst, bak); err != nil {
			return fmt.Errorf("backing up %q: %w", dst, err)
		}
	}

	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("installing %q: %w", src, err)
	}
	return nil
}

// Restore puts the backup of the given file back in place and removes the
// backup. It fails with ErrNoBackup if no backup exists.
func Restore(gameDir, code, filename string) error {
	dst := Path(gameDir, code, filename)
	bak := dst + BackupExt

	if _, err := os.Stat(bak); err != nil {
		return fmt.Errorf("%w for %q", ErrNoBackup, dst)
	}
	if err := copyFile(bak, dst); err != nil {
		return fmt.Errorf("restoring %q: %w", dst, err)
	}
	if err := os.Remove(bak); err != nil {
		return fmt.Errorf("removing %q: %w", bak, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	b, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, b, 0o644)
}
