package asc

import (
	"github.com/FocuswithJustin/cdlconvert/core/errors"
	"github.com/FocuswithJustin/cdlconvert/core/xml"
)

// ColorCorrectionRef points at a correction by id. The id is kept as written
// and resolved against the registry on demand.
type ColorCorrectionRef struct {
	id       string
	registry *Registry
}

// NewColorCorrectionRef creates a reference resolved through reg.
func NewColorCorrectionRef(reg *Registry, id string) *ColorCorrectionRef {
	return &ColorCorrectionRef{id: id, registry: reg}
}

// ID returns the referenced id.
func (r *ColorCorrectionRef) ID() string { return r.id }

// SetID points the reference at another id. Under the strict policy the id
// must already be registered.
func (r *ColorCorrectionRef) SetID(id string) error {
	if r.registry != nil && r.registry.Strict() && !r.registry.Contains(id) {
		return errors.NewUnresolved(id)
	}
	r.id = id
	return nil
}

// Resolve returns the referenced correction. A missing target is an
// UnresolvedError under the strict policy and nil, nil otherwise.
func (r *ColorCorrectionRef) Resolve() (*ColorCorrection, error) {
	if r.registry == nil {
		return nil, nil
	}
	return r.registry.Lookup(r.id)
}

// BuildElement projects the reference as a ColorCorrectionRef element.
func (r *ColorCorrectionRef) BuildElement() *xml.Node {
	return xml.NewElement("ColorCorrectionRef").SetAttr("ref", r.id)
}

func (r *ColorCorrectionRef) XML() string { return r.BuildElement().XML() }
func (r *ColorCorrectionRef) XMLRoot() string { return r.BuildElement().XMLRoot() }
