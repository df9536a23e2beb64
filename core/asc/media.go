package asc

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/FocuswithJustin/cdlconvert/core/xml"
)

var (
	frameSequence   = regexp.MustCompile(`^([ \w.-]+[_.])([0-9]+)(\.[a-zA-Z0-9]{3})$`)
	poundSequence   = regexp.MustCompile(`^([ \w.-]+[_.])(#+)(\.[a-zA-Z0-9]{3})$`)
	percentSequence = regexp.MustCompile(`^([ \w.-]+[_.])(%[0-9]+d)(\.[a-zA-Z0-9]{3})$`)
)

// MediaRef is a reference image or directory, split into protocol, directory
// and filename. Path helpers ignore the protocol.
type MediaRef struct {
	Protocol string
	Dir      string
	Filename string
}

// NewMediaRef splits uri into its parts.
func NewMediaRef(uri string) *MediaRef {
	m := &MediaRef{}
	m.SetRef(uri)
	return m
}

// SetRef replaces every part from uri.
func (m *MediaRef) SetRef(uri string) {
	m.Protocol = ""
	if proto, rest, ok := strings.Cut(uri, "://"); ok {
		m.Protocol = proto
		uri = rest
	}
	m.Dir, m.Filename = splitPath(uri)
}

// splitPath splits at the last slash, trimming trailing slashes from the
// directory unless it is the root.
func splitPath(p string) (string, string) {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return "", p
	}
	dir, file := p[:i+1], p[i+1:]
	if trimmed := strings.TrimRight(dir, "/"); trimmed != "" {
		dir = trimmed
	}
	return dir, file
}

// Path returns the directory joined with the filename.
func (m *MediaRef) Path() string {
	switch {
	case m.Dir == "":
		return m.Filename
	case m.Filename == "":
		return m.Dir
	case strings.HasSuffix(m.Dir, "/"):
		return m.Dir + m.Filename
	default:
		return m.Dir + "/" + m.Filename
	}
}

// Ref returns the full URI including the protocol.
func (m *MediaRef) Ref() string {
	if m.Protocol != "" {
		return m.Protocol + "://" + m.Path()
	}
	return m.Path()
}

func (m *MediaRef) IsAbs() bool { return filepath.IsAbs(m.Path()) }

// Exists reports whether the path is present on the local file system.
func (m *MediaRef) Exists() bool {
	_, err := os.Stat(m.Path())
	return err == nil
}

// IsDir reports whether the path is an existing directory.
func (m *MediaRef) IsDir() bool {
	info, err := os.Stat(m.Path())
	return err == nil && info.IsDir()
}

// MakeAbsolute resolves the directory against the working directory.
func (m *MediaRef) MakeAbsolute() error {
	if m.IsAbs() {
		return nil
	}
	abs, err := filepath.Abs(m.Path())
	if err != nil {
		return err
	}
	if m.Filename == "" {
		m.Dir = abs
		return nil
	}
	m.Dir = filepath.Dir(abs)
	return nil
}

// Relocate moves the reference into dir, keeping the filename.
func (m *MediaRef) Relocate(dir string) {
	m.Dir = dir
}

// Sequences returns the image sequences the reference names, written with
// '#' frame padding. A directory yields every sequence found in it, in
// directory order; a %d pattern is returned as written.
func (m *MediaRef) Sequences() []string {
	if m.IsDir() {
		entries, err := os.ReadDir(m.Path())
		if err != nil {
			return nil
		}
		var seqs []string
		seen := make(map[string]bool)
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if name, ok := sequenceName(e.Name()); ok && !seen[name] {
				seen[name] = true
				seqs = append(seqs, name)
			}
		}
		return seqs
	}

	if name, ok := sequenceName(m.Filename); ok {
		return []string{name}
	}
	if poundSequence.MatchString(m.Filename) || percentSequence.MatchString(m.Filename) {
		return []string{m.Filename}
	}
	return nil
}

func sequenceName(filename string) (string, bool) {
	match := frameSequence.FindStringSubmatch(filename)
	if match == nil {
		return "", false
	}
	return match[1] + strings.Repeat("#", len(match[2])) + match[3], true
}

// IsSequence reports whether the reference names at least one image sequence.
func (m *MediaRef) IsSequence() bool { return len(m.Sequences()) > 0 }

// BuildElement projects the reference as a MediaRef element.
func (m *MediaRef) BuildElement() *xml.Node {
	return xml.NewElement("MediaRef").SetAttr("ref", m.Ref())
}

func (m *MediaRef) XML() string { return m.BuildElement().XML() }
func (m *MediaRef) XMLRoot() string { return m.BuildElement().XMLRoot() }
