// Package formats maps file formats to their parsers and writers.
package formats

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/FocuswithJustin/cdlconvert/core/asc"
	"github.com/FocuswithJustin/cdlconvert/core/errors"
	"github.com/FocuswithJustin/cdlconvert/internal/formats/ale"
	"github.com/FocuswithJustin/cdlconvert/internal/formats/base"
	"github.com/FocuswithJustin/cdlconvert/internal/formats/cc"
	"github.com/FocuswithJustin/cdlconvert/internal/formats/ccc"
	"github.com/FocuswithJustin/cdlconvert/internal/formats/cdl"
	"github.com/FocuswithJustin/cdlconvert/internal/formats/flex"
	"github.com/FocuswithJustin/cdlconvert/internal/formats/rnh"
)

// Format identifies a supported file format.
type Format int

const (
	Unknown Format = iota
	ALE
	FLEx
	CC
	CCC
	CDL
	RNH
)

// All lists every known format in a stable order.
var All = []Format{ALE, FLEx, CC, CCC, CDL, RNH}

var formatInfo = map[Format]struct {
	name       string
	ext        string
	collection bool
	writable   bool
}{
	ALE:  {"ale", "ale", true, false},
	FLEx: {"flex", "flex", true, false},
	CC:   {"cc", "cc", false, true},
	CCC:  {"ccc", "ccc", true, true},
	CDL:  {"cdl", "cdl", true, true},
	RNH:  {"rcdl", "rcdl", false, true},
}

// aliases maps lower case names and extensions to formats.
var aliases = map[string]Format{
	"ale":  ALE,
	"flex": FLEx,
	"cc":   CC,
	"ccc":  CCC,
	"cdl":  CDL,
	"rcdl": RNH,
	"rnh":  RNH,
}

func (f Format) String() string {
	if info, ok := formatInfo[f]; ok {
		return info.name
	}
	return "unknown"
}

// Extension returns the extension written for the format, without the dot.
func (f Format) Extension() string { return formatInfo[f].ext }

// IsCollection reports whether the format holds a collection rather than a
// single correction.
func (f Format) IsCollection() bool { return formatInfo[f].collection }

// Writable reports whether the format has a writer.
func (f Format) Writable() bool { return formatInfo[f].writable }

// IsXML reports whether the format is one of the ASC XML layouts.
func (f Format) IsXML() bool { return f == CC || f == CCC || f == CDL }

// FromName returns the format called name, ignoring case.
func FromName(name string) (Format, error) {
	if f, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f, nil
	}
	return Unknown, errors.NewUnsupported("format", fmt.Sprintf("%q is not a known format", name))
}

// FromExtension returns the format for a file extension, with or without
// the leading dot.
func FromExtension(ext string) (Format, error) {
	if f, ok := aliases[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return f, nil
	}
	return Unknown, errors.NewUnsupported("format", fmt.Sprintf("no parser for extension %q", ext))
}

// FromPath returns the format matching the extension of path.
func FromPath(path string) (Format, error) {
	return FromExtension(filepath.Ext(path))
}

// ParseNames converts a list of format names, as given on the command line.
func ParseNames(names []string) ([]Format, error) {
	var out []Format
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		f, err := FromName(name)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Parse runs the parser for f. The result is a *asc.ColorCorrection for CC
// and RNH and a *asc.ColorCollection for every other format.
func Parse(reg *asc.Registry, f Format, data []byte, name string) (asc.Element, error) {
	switch f {
	case ALE:
		return nonNil(ale.Parse(reg, data, name))
	case FLEx:
		return nonNil(flex.Parse(reg, data, name))
	case CCC:
		return nonNil(ccc.Parse(reg, data, name))
	case CDL:
		return nonNil(cdl.Parse(reg, data, name))
	case CC:
		return nonNil(cc.Parse(reg, data, name))
	case RNH:
		return nonNil(rnh.Parse(reg, data, name))
	default:
		return nil, errors.NewUnsupported("format", fmt.Sprintf("no parser for %s", f))
	}
}

// nonNil keeps a typed nil pointer from escaping as a non-nil interface.
func nonNil[T asc.Element](v T, err error) (asc.Element, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ParseFile reads path and parses it. The format is taken from the file
// extension unless override is set.
func ParseFile(reg *asc.Registry, path string, override Format) (asc.Element, *base.FileInfo, error) {
	f := override
	if f == Unknown {
		var err error
		if f, err = FromPath(path); err != nil {
			return nil, nil, err
		}
	}
	info, err := base.ReadFileInfo(path)
	if err != nil {
		return nil, nil, err
	}
	entity, err := Parse(reg, f, info.Data, path)
	if err != nil {
		return nil, info, err
	}
	return entity, info, nil
}

// Write renders entity in format f. Single correction formats take a
// *asc.ColorCorrection and collection formats a *asc.ColorCollection;
// anything else is unsupported.
func Write(f Format, entity asc.Element) ([]byte, error) {
	if !f.Writable() {
		return nil, base.UnsupportedOperation("writing", f.String())
	}
	switch v := entity.(type) {
	case *asc.ColorCorrection:
		switch f {
		case CC:
			return cc.Write(v)
		case RNH:
			return rnh.Write(v)
		}
	case *asc.ColorCollection:
		switch f {
		case CCC:
			return ccc.Write(v)
		case CDL:
			return cdl.Write(v)
		}
	}
	return nil, errors.NewUnsupported(f.String(), fmt.Sprintf("cannot write a %T", entity))
}

// WriteFile renders entity and writes it to path.
func WriteFile(f Format, entity asc.Element, path string) error {
	data, err := Write(f, entity)
	if err != nil {
		return err
	}
	return base.WriteOutput(path, data)
}
