// Package validation checks input files and derived output names before the
// converter reads or writes them.
package validation

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/FocuswithJustin/cdlconvert/core/errors"
)

// Limits on inputs and derived names.
const (
	// MaxFileSize is the largest input accepted (64 MB).
	MaxFileSize = 64 << 20
	// MaxFilenameLength bounds a derived output filename.
	MaxFilenameLength = 255
	// MaxPathLength bounds the destination directory path.
	MaxPathLength = 4096
	// sniffLength is how much of an input DetectContent looks at.
	sniffLength = 512
)

// Validation errors.
var (
	ErrPathTraversal    = errors.New("path traversal detected")
	ErrInvalidFilename  = errors.New("invalid filename")
	ErrPathTooLong      = errors.New("path too long")
	ErrFilenameTooLong  = errors.New("filename too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrFileTooLarge     = errors.New("file too large")
	ErrContentMismatch  = errors.New("content does not match format")
)

// ValidateFilename rejects derived output names that are empty, reserved,
// too long, contain separators or control characters, or start with a hyphen.
// Output names come from correction ids and input stems, so they are never
// trusted as paths.
func ValidateFilename(filename string) error {
	switch {
	case filename == "":
		return ErrInvalidFilename
	case len(filename) > MaxFilenameLength:
		return ErrFilenameTooLong
	case filename == "." || filename == "..":
		return fmt.Errorf("%w: reserved name", ErrInvalidFilename)
	case strings.ContainsAny(filename, `/\`):
		return fmt.Errorf("%w: path separator not allowed", ErrInvalidFilename)
	case strings.HasPrefix(filename, "-"):
		return fmt.Errorf("%w: filename cannot start with hyphen", ErrInvalidFilename)
	}
	if strings.IndexFunc(filename, unicode.IsControl) >= 0 {
		return fmt.Errorf("%w: control character not allowed", ErrInvalidFilename)
	}
	return nil
}

// ValidatePath checks a destination directory path for length and control
// characters. It does not touch the filesystem.
func ValidatePath(path string) error {
	switch {
	case path == "":
		return ErrEmptyPath
	case len(path) > MaxPathLength:
		return ErrPathTooLong
	case strings.IndexFunc(path, unicode.IsControl) >= 0:
		return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
	}
	return nil
}

// ValidateOutputPath checks a derived output filename and returns it joined
// to the destination directory. The result never leaves destination.
func ValidateOutputPath(destination, filename string) (string, error) {
	if err := ValidateFilename(filename); err != nil {
		return "", fmt.Errorf("output %q: %w", filename, err)
	}
	if destination == "" {
		destination = "."
	}
	if err := ValidatePath(destination); err != nil {
		return "", err
	}

	full := filepath.Join(destination, filename)
	absDest, err := filepath.Abs(destination)
	if err != nil {
		return "", fmt.Errorf("resolving destination: %w", err)
	}
	absFull, err := filepath.Abs(full)
	if err != nil {
		return "", fmt.Errorf("resolving output %q: %w", filename, err)
	}
	if rel, err := filepath.Rel(absDest, absFull); err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("output %q: %w", filename, ErrPathTraversal)
	}
	return full, nil
}

// Content describes the broad layout of a file.
type Content string

const (
	ContentXML    Content = "xml"
	ContentText   Content = "text"
	ContentBinary Content = "binary"
	ContentEmpty  Content = "empty"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// DetectContent classifies the first bytes of a file, skipping a UTF-8 BOM
// and leading whitespace.
func DetectContent(buf []byte) Content {
	buf = bytes.TrimPrefix(buf, utf8BOM)
	trimmed := bytes.TrimLeft(buf, " \t\r\n")
	switch {
	case len(trimmed) == 0:
		return ContentEmpty
	case !isLikelyText(buf):
		return ContentBinary
	case trimmed[0] == '<':
		return ContentXML
	default:
		return ContentText
	}
}

// ValidateInput checks that data is small enough and looks like the layout
// its format expects. xml selects the CC, CCC and CDL layout; the text
// formats reject binary and XML content. Empty input passes so the parser
// can report it. Failures are StructuralErrors naming format that also
// match ErrFileTooLarge or ErrContentMismatch.
func ValidateInput(data []byte, filename, format string, xml bool) error {
	if len(data) > MaxFileSize {
		return &errors.StructuralError{
			Format:  format,
			Path:    filename,
			Message: fmt.Sprintf("input is %d bytes, limit is %d", len(data), MaxFileSize),
			Err:     ErrFileTooLarge,
		}
	}
	head := data
	if len(head) > sniffLength {
		head = head[:sniffLength]
	}
	content := DetectContent(head)
	want := ContentText
	if xml {
		want = ContentXML
	}
	if content == ContentEmpty || content == want {
		return nil
	}
	return &errors.StructuralError{
		Format:  format,
		Path:    filename,
		Message: fmt.Sprintf("found %s content, expected %s", content, want),
		Err:     ErrContentMismatch,
	}
}

// isLikelyText reports whether buf has no NUL bytes and at least 95% of its
// ASCII range is printable. Bytes above 0x7f count for neither side.
func isLikelyText(buf []byte) bool {
	if len(buf) == 0 || bytes.IndexByte(buf, 0) != -1 {
		return false
	}
	printable, control := 0, 0
	for _, b := range buf {
		switch {
		case b >= 0x20 && b <= 0x7e, b == '\t', b == '\n', b == '\r':
			printable++
		case b < 0x20:
			control++
		}
	}
	return printable > 0 && float64(printable)/float64(printable+control) > 0.95
}
