// Package cc reads and writes single ColorCorrection XML files.
package cc

import (
	"fmt"

	"github.com/FocuswithJustin/cdlconvert/core/asc"
	"github.com/FocuswithJustin/cdlconvert/core/errors"
	"github.com/FocuswithJustin/cdlconvert/core/xml"
	"github.com/FocuswithJustin/cdlconvert/internal/formats/base"
)

// FormatName is used in error messages.
const FormatName = "CC"

// Parse reads a document whose root is a ColorCorrection.
func Parse(reg *asc.Registry, data []byte, name string) (*asc.ColorCorrection, error) {
	doc, err := xml.Parse(data)
	if err != nil {
		return nil, &errors.StructuralError{Format: FormatName, Path: name, Message: "malformed XML", Err: err}
	}
	cc, err := ParseElement(reg, doc.Root(), name)
	if err != nil {
		return nil, err
	}
	return cc, nil
}

// ParseElement reads an already parsed ColorCorrection element, as found
// inside CCC and CDL documents.
//
// The id attribute is required under the strict policy; the lenient policy
// treats a missing id as blank. At least one of the SOP and SAT nodes is
// required under the strict policy.
func ParseElement(reg *asc.Registry, n *xml.Node, name string) (*asc.ColorCorrection, error) {
	return base.Atomic(reg, func() (*asc.ColorCorrection, error) { return parseElement(reg, n, name) })
}

func parseElement(reg *asc.Registry, n *xml.Node, name string) (*asc.ColorCorrection, error) {
	if n == nil || n.Name() != "ColorCorrection" {
		return nil, errors.NewStructural(FormatName, name, fmt.Sprintf("expected a ColorCorrection element, found %q", n.Name()))
	}

	id, ok := n.Attr("id")
	if !ok && reg.Strict() {
		return nil, errors.NewStructural(FormatName, name, "ColorCorrection has no id attribute")
	}

	sopNode := n.FirstChildNamed(asc.SOPElementNames...)
	satNode := n.FirstChildNamed(asc.SATElementNames...)
	if sopNode == nil && satNode == nil && reg.Strict() {
		return nil, errors.NewStructural(FormatName, name, fmt.Sprintf("ColorCorrection %q has neither a SOP nor a SAT node", id))
	}

	cc, err := reg.NewColorCorrection(id, name)
	if err != nil {
		return nil, err
	}
	asc.ReadHeader(n, &cc.ColorSpace, &cc.Descriptive)

	if sopNode != nil {
		if err := readSOP(cc, sopNode, name); err != nil {
			return nil, err
		}
	}
	if satNode != nil {
		if err := readSAT(cc, satNode, name); err != nil {
			return nil, err
		}
	}
	return cc, nil
}

func readSOP(cc *asc.ColorCorrection, n *xml.Node, name string) error {
	for _, f := range []struct {
		element string
		field   string
		set     func(...any) error
	}{
		{"Slope", "slope", cc.SetSlope},
		{"Offset", "offset", cc.SetOffset},
		{"Power", "power", cc.SetPower},
	} {
		text, ok := xml.ChildText(n, f.element)
		if !ok {
			return errors.NewStructural(FormatName, name, fmt.Sprintf("%s of %q is missing %s", n.Name(), cc.ID(), f.element))
		}
		t, err := base.ParseTriple(FormatName, name, f.field, text)
		if err != nil {
			return err
		}
		if err := f.set(t[0], t[1], t[2]); err != nil {
			return err
		}
	}
	asc.ReadHeader(n, nil, &cc.EnsureSOP().Descriptive)
	return nil
}

func readSAT(cc *asc.ColorCorrection, n *xml.Node, name string) error {
	text, ok := xml.ChildText(n, "Saturation")
	if !ok {
		return errors.NewStructural(FormatName, name, fmt.Sprintf("%s of %q is missing Saturation", n.Name(), cc.ID()))
	}
	if err := cc.SetSat(text); err != nil {
		return err
	}
	asc.ReadHeader(n, nil, &cc.EnsureSAT().Descriptive)
	return nil
}

// Write renders cc as a standalone XML document.
func Write(cc *asc.ColorCorrection) ([]byte, error) {
	if cc == nil {
		return nil, errors.NewStructural(FormatName, "", "no color correction to write")
	}
	return []byte(cc.XMLRoot()), nil
}

// WriteFile writes cc to path.
func WriteFile(cc *asc.ColorCorrection, path string) error {
	data, err := Write(cc)
	if err != nil {
		return err
	}
	return base.WriteOutput(path, data)
}
