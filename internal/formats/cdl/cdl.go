// Package cdl reads and writes ColorDecisionList XML files.
package cdl

import (
	"fmt"

	"github.com/FocuswithJustin/cdlconvert/core/asc"
	"github.com/FocuswithJustin/cdlconvert/core/errors"
	"github.com/FocuswithJustin/cdlconvert/core/xml"
	"github.com/FocuswithJustin/cdlconvert/internal/formats/base"
	"github.com/FocuswithJustin/cdlconvert/internal/formats/cc"
)

// FormatName is used in error messages.
const FormatName = "CDL"

// Parse reads a ColorDecisionList into a decisions collection.
func Parse(reg *asc.Registry, data []byte, name string) (*asc.ColorCollection, error) {
	return base.Atomic(reg, func() (*asc.ColorCollection, error) { return parse(reg, data, name) })
}

func parse(reg *asc.Registry, data []byte, name string) (*asc.ColorCollection, error) {
	doc, err := xml.Parse(data)
	if err != nil {
		return nil, &errors.StructuralError{Format: FormatName, Path: name, Message: "malformed XML", Err: err}
	}
	root := doc.Root()
	if root.Name() != "ColorDecisionList" {
		return nil, errors.NewStructural(FormatName, name, fmt.Sprintf("expected a ColorDecisionList root, found %q", root.Name()))
	}
	children := root.ChildrenNamed("ColorDecision")
	if len(children) == 0 {
		return nil, errors.NewStructural(FormatName, name, "decision list holds no ColorDecision")
	}

	col := asc.NewColorCollection(reg, asc.ModeDecisions)
	col.FileIn = name
	asc.ReadHeader(root, &col.ColorSpace, &col.Descriptive)

	for i, child := range children {
		cd, err := parseDecision(reg, child, name)
		if err != nil {
			return nil, errors.Wrapf(err, "color decision %d", i+1)
		}
		if err := col.Append(cd); err != nil {
			return nil, err
		}
	}
	return col, nil
}

// parseDecision reads one ColorDecision. A full correction wins over a
// reference when both are present.
func parseDecision(reg *asc.Registry, n *xml.Node, name string) (*asc.ColorDecision, error) {
	var cd *asc.ColorDecision
	if ccNode := n.FirstChildNamed("ColorCorrection"); ccNode != nil {
		correction, err := cc.ParseElement(reg, ccNode, name)
		if err != nil {
			return nil, err
		}
		cd = asc.NewColorDecision(correction)
	} else if refNode := n.FirstChildNamed("ColorCorrectionRef"); refNode != nil {
		id, ok := refNode.Attr("ref")
		if !ok {
			return nil, errors.NewStructural(FormatName, name, "ColorCorrectionRef has no ref attribute")
		}
		cd = asc.NewColorDecisionRef(asc.NewColorCorrectionRef(reg, id))
	} else {
		return nil, errors.NewStructural(FormatName, name, "ColorDecision holds neither a ColorCorrection nor a ColorCorrectionRef")
	}

	asc.ReadHeader(n, &cd.ColorSpace, &cd.Descriptive)
	if media := n.FirstChildNamed("MediaRef"); media != nil {
		uri, ok := media.Attr("ref")
		if !ok {
			return nil, errors.NewStructural(FormatName, name, "MediaRef has no ref attribute")
		}
		cd.MediaRef = asc.NewMediaRef(uri)
	}
	return cd, nil
}

// Write renders col as a ColorDecisionList. Correction collections have each
// correction wrapped in a decision.
func Write(col *asc.ColorCollection) ([]byte, error) {
	if col == nil {
		return nil, errors.NewStructural(FormatName, "", "no collection to write")
	}
	return []byte(col.CDLElement().XMLRoot()), nil
}

// WriteFile writes col to path.
func WriteFile(col *asc.ColorCollection, path string) error {
	data, err := Write(col)
	if err != nil {
		return err
	}
	return base.WriteOutput(path, data)
}
