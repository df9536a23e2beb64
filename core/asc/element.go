// Package asc models ASC CDL color corrections, decisions and collections, and
// the registry that owns correction identity for a conversion session.
package asc

import "github.com/FocuswithJustin/cdlconvert/core/xml"

// XMLNS is the schema namespace written on collection roots.
const XMLNS = "urn:ASC:CDL:v1.01"

// Element is implemented by every entity with an XML projection.
type Element interface {
	BuildElement() *xml.Node
	XML() string
	XMLRoot() string
}

// Descriptive holds the free text Description entries of an ASC entity.
// Empty strings are kept and written as empty elements.
type Descriptive struct {
	Descriptions []string
}

// AddDescription appends a description.
func (d *Descriptive) AddDescription(desc string) {
	d.Descriptions = append(d.Descriptions, desc)
}

// ColorSpace holds the optional input and viewing descriptions.
type ColorSpace struct {
	InputDescription   string
	ViewingDescription string
}

// appendHeader writes the colorspace fields and descriptions in schema order.
func appendHeader(n *xml.Node, cs *ColorSpace, d *Descriptive) {
	if cs != nil {
		if cs.InputDescription != "" {
			n.AddTextElement("InputDescription", cs.InputDescription)
		}
		if cs.ViewingDescription != "" {
			n.AddTextElement("ViewingDescription", cs.ViewingDescription)
		}
	}
	for _, desc := range d.Descriptions {
		n.AddTextElement("Description", desc)
	}
}

// ReadHeader fills cs and d from an element's InputDescription,
// ViewingDescription and Description children.
func ReadHeader(n *xml.Node, cs *ColorSpace, d *Descriptive) {
	if cs != nil {
		if text, ok := xml.ChildText(n, "InputDescription"); ok {
			cs.InputDescription = text
		}
		if text, ok := xml.ChildText(n, "ViewingDescription"); ok {
			cs.ViewingDescription = text
		}
	}
	if d != nil {
		d.Descriptions = append(d.Descriptions, xml.Descriptions(n)...)
	}
}
