package asc

import (
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/FocuswithJustin/cdlconvert/core/numeric"
	"github.com/FocuswithJustin/cdlconvert/core/xml"
)

// ColorCorrection is one grade: an id, optional SOP and SAT nodes and
// descriptive metadata. Corrections are created through a Registry.
type ColorCorrection struct {
	ColorSpace
	Descriptive

	// FileIn is the file the correction was read from, if any.
	FileIn string
	// FileOut is set by DetermineDest.
	FileOut string

	id       string
	registry *Registry
	sop      *SopNode
	sat      *SatNode
}

func (cc *ColorCorrection) collectionChild() {}

// ID returns the registered, sanitized id.
func (cc *ColorCorrection) ID() string { return cc.id }

// Registry returns the registry owning the correction, or nil after a reset.
func (cc *ColorCorrection) Registry() *Registry { return cc.registry }

// SetID renames the correction in its registry.
func (cc *ColorCorrection) SetID(id string) error {
	if cc.registry == nil {
		cc.id = SanitizeID(id)
		return nil
	}
	return cc.registry.Rename(cc, id)
}

func (cc *ColorCorrection) policy() Policy {
	if cc.registry == nil {
		return PolicyLenient
	}
	return cc.registry.policy
}

// SOP returns the SOP node, or nil if the correction has none.
func (cc *ColorCorrection) SOP() *SopNode { return cc.sop }

// SAT returns the SAT node, or nil if the correction has none.
func (cc *ColorCorrection) SAT() *SatNode { return cc.sat }

func (cc *ColorCorrection) HasSOP() bool { return cc.sop != nil }
func (cc *ColorCorrection) HasSAT() bool { return cc.sat != nil }

// EnsureSOP returns the SOP node, creating an identity node first if needed.
func (cc *ColorCorrection) EnsureSOP() *SopNode {
	if cc.sop == nil {
		cc.sop = NewSopNode(cc.policy())
	}
	return cc.sop
}

// EnsureSAT returns the SAT node, creating an identity node first if needed.
func (cc *ColorCorrection) EnsureSAT() *SatNode {
	if cc.sat == nil {
		cc.sat = NewSatNode(cc.policy())
	}
	return cc.sat
}

// ClearSOP removes the SOP node.
func (cc *ColorCorrection) ClearSOP() { cc.sop = nil }

// ClearSAT removes the SAT node.
func (cc *ColorCorrection) ClearSAT() { cc.sat = nil }

// Slope returns the slope, or the identity slope without a SOP node.
func (cc *ColorCorrection) Slope() numeric.Triple {
	if cc.sop == nil {
		return numeric.Uniform(numeric.One)
	}
	return cc.sop.slope
}

// Offset returns the offset, or the identity offset without a SOP node.
func (cc *ColorCorrection) Offset() numeric.Triple {
	if cc.sop == nil {
		return numeric.Uniform(numeric.Zero)
	}
	return cc.sop.offset
}

// Power returns the power, or the identity power without a SOP node.
func (cc *ColorCorrection) Power() numeric.Triple {
	if cc.sop == nil {
		return numeric.Uniform(numeric.One)
	}
	return cc.sop.power
}

// Sat returns the saturation, or 1 without a SAT node.
func (cc *ColorCorrection) Sat() decimal.Decimal {
	if cc.sat == nil {
		return numeric.One
	}
	return cc.sat.sat
}

// SetSlope sets the slope, creating the SOP node if needed. A rejected value
// leaves the correction as it was.
func (cc *ColorCorrection) SetSlope(values ...any) error {
	return cc.withSOP(func(s *SopNode) error { return s.SetSlope(values...) })
}

func (cc *ColorCorrection) SetOffset(values ...any) error {
	return cc.withSOP(func(s *SopNode) error { return s.SetOffset(values...) })
}

func (cc *ColorCorrection) SetPower(values ...any) error {
	return cc.withSOP(func(s *SopNode) error { return s.SetPower(values...) })
}

// SetSat sets the saturation, creating the SAT node if needed.
func (cc *ColorCorrection) SetSat(v any) error {
	created := cc.sat == nil
	if err := cc.EnsureSAT().SetSat(v); err != nil {
		if created {
			cc.sat = nil
		}
		return err
	}
	return nil
}

func (cc *ColorCorrection) withSOP(apply func(*SopNode) error) error {
	created := cc.sop == nil
	if err := apply(cc.EnsureSOP()); err != nil {
		if created {
			cc.sop = nil
		}
		return err
	}
	return nil
}

// DetermineDest sets FileOut to directory/id.ext and returns it.
func (cc *ColorCorrection) DetermineDest(ext, directory string) string {
	cc.FileOut = filepath.Join(directory, cc.id+"."+ext)
	return cc.FileOut
}

// BuildElement projects the correction as a ColorCorrection element.
func (cc *ColorCorrection) BuildElement() *xml.Node {
	n := xml.NewElement("ColorCorrection").SetAttr("id", cc.id)
	appendHeader(n, &cc.ColorSpace, &cc.Descriptive)
	if cc.sop != nil {
		n.AddChild(cc.sop.BuildElement())
	}
	if cc.sat != nil {
		n.AddChild(cc.sat.BuildElement())
	}
	return n
}

func (cc *ColorCorrection) XML() string { return cc.BuildElement().XML() }
func (cc *ColorCorrection) XMLRoot() string { return cc.BuildElement().XMLRoot() }
