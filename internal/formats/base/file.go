// Package base provides helpers shared by the format parsers and writers.
package base

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/cdlconvert/core/errors"
)

// FileInfo holds an input file and its fingerprint.
type FileInfo struct {
	Path      string
	Data      []byte
	Hash      string // hex BLAKE3-256 of Data
	Size      int64
	Extension string // lower case, without the dot
}

// ReadFileInfo reads a file and fingerprints its content.
func ReadFileInfo(path string) (*FileInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	return &FileInfo{
		Path:      path,
		Data:      data,
		Hash:      Fingerprint(data),
		Size:      int64(len(data)),
		Extension: Extension(path),
	}, nil
}

// Fingerprint returns the hex BLAKE3-256 digest of data.
func Fingerprint(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// WriteOutput writes data to path through a temporary file in the same
// directory, so a failed write never leaves a partial file behind. Parent
// directories must already exist.
func WriteOutput(path string, data []byte) error {
	tempFile, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return errors.NewIO("write", path, err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return errors.NewIO("write", path, err)
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return errors.NewIO("write", path, err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		os.Remove(tempPath)
		return errors.NewIO("write", path, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.NewIO("write", path, err)
	}
	return nil
}

// Extension returns the lower case extension of path without the dot.
func Extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Stem returns the base name of path without its last extension.
func Stem(path string) string {
	name := filepath.Base(path)
	if path == "" || name == "." || name == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// IDFromFilename returns the base name of path up to its first period, so
// "A001.v2.rcdl" becomes "A001".
func IDFromFilename(path string) string {
	if path == "" {
		return ""
	}
	name := filepath.Base(path)
	id, _, _ := strings.Cut(name, ".")
	return id
}

// SplitLines splits data on LF, CRLF or CR line endings.
func SplitLines(data []byte) []string {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// UnsupportedOperation returns the standard error for an operation a format lacks.
func UnsupportedOperation(operation, format string) error {
	return errors.NewUnsupported(format, "format does not support "+operation)
}
