package asc

import (
	"github.com/shopspring/decimal"

	"github.com/FocuswithJustin/cdlconvert/core/errors"
	"github.com/FocuswithJustin/cdlconvert/core/numeric"
	"github.com/FocuswithJustin/cdlconvert/core/xml"
)

// Element names accepted when reading SOP and SAT nodes, in lookup order.
var (
	SOPElementNames = []string{"ASC_SOP", "SOPNode", "SopNode"}
	SATElementNames = []string{"ASC_SAT", "SATNode", "SatNode"}
)

// SopNode holds slope, offset and power.
type SopNode struct {
	Descriptive

	slope  numeric.Triple
	offset numeric.Triple
	power  numeric.Triple
	policy Policy
}

// NewSopNode returns an identity SOP node whose setters follow policy.
func NewSopNode(policy Policy) *SopNode {
	return &SopNode{
		slope:  numeric.Uniform(numeric.One),
		offset: numeric.Uniform(numeric.Zero),
		power:  numeric.Uniform(numeric.One),
		policy: policy,
	}
}

func (s *SopNode) Slope() numeric.Triple { return s.slope }
func (s *SopNode) Offset() numeric.Triple { return s.offset }
func (s *SopNode) Power() numeric.Triple { return s.power }

// SetSlope sets the slope from one value or three.
func (s *SopNode) SetSlope(values ...any) error {
	return s.set(&s.slope, fieldSlope, values)
}

// SetOffset sets the offset from one value or three.
func (s *SopNode) SetOffset(values ...any) error {
	return s.set(&s.offset, fieldOffset, values)
}

// SetPower sets the power from one value or three.
func (s *SopNode) SetPower(values ...any) error {
	return s.set(&s.power, fieldPower, values)
}

func (s *SopNode) set(dst *numeric.Triple, field string, values []any) error {
	t, err := numeric.ToTriple(field, values...)
	if err != nil {
		return err
	}
	if s.policy == PolicyStrict {
		for _, d := range t {
			if err := checkRange(field, d); err != nil {
				return err
			}
		}
	}
	*dst = t
	return nil
}

// BuildElement projects the node as SOPNode.
func (s *SopNode) BuildElement() *xml.Node {
	n := xml.NewElement("SOPNode")
	appendHeader(n, nil, &s.Descriptive)
	n.AddTextElement("Slope", s.slope.String())
	n.AddTextElement("Offset", s.offset.String())
	n.AddTextElement("Power", s.power.String())
	return n
}

func (s *SopNode) XML() string { return s.BuildElement().XML() }
func (s *SopNode) XMLRoot() string { return s.BuildElement().XMLRoot() }

// SatNode holds a saturation value.
type SatNode struct {
	Descriptive

	sat    decimal.Decimal
	policy Policy
}

// NewSatNode returns an identity SAT node whose setter follows policy.
func NewSatNode(policy Policy) *SatNode {
	return &SatNode{sat: numeric.One, policy: policy}
}

func (s *SatNode) Sat() decimal.Decimal { return s.sat }

// SetSat sets the saturation.
func (s *SatNode) SetSat(v any) error {
	d, err := numeric.ParseField(fieldSat, v)
	if err != nil {
		return err
	}
	if s.policy == PolicyStrict {
		if err := checkRange(fieldSat, d); err != nil {
			return err
		}
	}
	s.sat = d
	return nil
}

// BuildElement projects the node as SATNode.
func (s *SatNode) BuildElement() *xml.Node {
	n := xml.NewElement("SATNode")
	appendHeader(n, nil, &s.Descriptive)
	n.AddTextElement("Saturation", numeric.Format(s.sat))
	return n
}

func (s *SatNode) XML() string { return s.BuildElement().XML() }
func (s *SatNode) XMLRoot() string { return s.BuildElement().XMLRoot() }

// checkRange applies the hard limits every writer can represent.
func checkRange(field string, d decimal.Decimal) error {
	lim := hardLimits[field]
	if lim.contains(d) {
		return nil
	}
	return errors.NewInvalidValue(field, numeric.Format(d), lim.describe())
}
