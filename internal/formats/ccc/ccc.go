// Package ccc reads and writes ColorCorrectionCollection XML files.
package ccc

import (
	"fmt"

	"github.com/FocuswithJustin/cdlconvert/core/asc"
	"github.com/FocuswithJustin/cdlconvert/core/errors"
	"github.com/FocuswithJustin/cdlconvert/core/xml"
	"github.com/FocuswithJustin/cdlconvert/internal/formats/base"
	"github.com/FocuswithJustin/cdlconvert/internal/formats/cc"
)

// FormatName is used in error messages.
const FormatName = "CCC"

// Parse reads a ColorCorrectionCollection into a corrections collection.
// The collection's own descriptions and colorspace are read once; every
// ColorCorrection child is parsed like a CC file.
func Parse(reg *asc.Registry, data []byte, name string) (*asc.ColorCollection, error) {
	return base.Atomic(reg, func() (*asc.ColorCollection, error) { return parse(reg, data, name) })
}

func parse(reg *asc.Registry, data []byte, name string) (*asc.ColorCollection, error) {
	doc, err := xml.Parse(data)
	if err != nil {
		return nil, &errors.StructuralError{Format: FormatName, Path: name, Message: "malformed XML", Err: err}
	}
	root := doc.Root()
	if root.Name() != "ColorCorrectionCollection" {
		return nil, errors.NewStructural(FormatName, name, fmt.Sprintf("expected a ColorCorrectionCollection root, found %q", root.Name()))
	}
	children := root.ChildrenNamed("ColorCorrection")
	if len(children) == 0 {
		return nil, errors.NewStructural(FormatName, name, "collection holds no ColorCorrection")
	}

	col := asc.NewColorCollection(reg, asc.ModeCorrections)
	col.FileIn = name
	asc.ReadHeader(root, &col.ColorSpace, &col.Descriptive)

	for i, child := range children {
		correction, err := cc.ParseElement(reg, child, name)
		if err != nil {
			return nil, errors.Wrapf(err, "color correction %d", i+1)
		}
		if err := col.Append(correction); err != nil {
			return nil, err
		}
	}
	return col, nil
}

// Write renders col as a ColorCorrectionCollection. Decision lists contribute
// the corrections their decisions own or reference.
func Write(col *asc.ColorCollection) ([]byte, error) {
	if col == nil {
		return nil, errors.NewStructural(FormatName, "", "no collection to write")
	}
	n, err := col.CCCElement()
	if err != nil {
		return nil, err
	}
	return []byte(n.XMLRoot()), nil
}

// WriteFile writes col to path.
func WriteFile(col *asc.ColorCollection, path string) error {
	data, err := Write(col)
	if err != nil {
		return err
	}
	return base.WriteOutput(path, data)
}
