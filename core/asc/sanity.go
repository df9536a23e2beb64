package asc

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/FocuswithJustin/cdlconvert/core/numeric"
)

const (
	fieldSlope  = "slope"
	fieldOffset = "offset"
	fieldPower  = "power"
	fieldSat    = "saturation"
)

// limit is an interval with independently open or closed ends.
type limit struct {
	min, max         decimal.Decimal
	minOpen, maxOpen bool
}

func (l limit) contains(d decimal.Decimal) bool {
	if l.minOpen && d.LessThanOrEqual(l.min) || !l.minOpen && d.LessThan(l.min) {
		return false
	}
	if l.maxOpen && d.GreaterThanOrEqual(l.max) || !l.maxOpen && d.GreaterThan(l.max) {
		return false
	}
	return true
}

func (l limit) interval() string {
	lo, hi := "[", "]"
	if l.minOpen {
		lo = "("
	}
	if l.maxOpen {
		hi = ")"
	}
	return fmt.Sprintf("%s%s, %s%s", lo, numeric.Format(l.min), numeric.Format(l.max), hi)
}

func (l limit) describe() string {
	return "must be within " + l.interval()
}

var (
	maxValue = decimal.NewFromInt(65535)

	hardLimits = map[string]limit{
		fieldSlope:  {min: numeric.Zero, max: maxValue},
		fieldOffset: {min: maxValue.Neg(), max: maxValue},
		fieldPower:  {min: numeric.Zero, max: maxValue, minOpen: true},
		fieldSat:    {min: numeric.Zero, max: maxValue},
	}

	usualLimits = map[string]limit{
		fieldSlope:  {min: numeric.MustDecimal("0.1"), max: numeric.MustDecimal("3.0"), minOpen: true, maxOpen: true},
		fieldOffset: {min: numeric.One.Neg(), max: numeric.One, minOpen: true, maxOpen: true},
		fieldPower:  {min: numeric.MustDecimal("0.1"), max: numeric.MustDecimal("3.0"), minOpen: true, maxOpen: true},
		fieldSat:    {min: numeric.MustDecimal("0.1"), max: numeric.MustDecimal("3.0"), minOpen: true, maxOpen: true},
	}
)

// Severity ranks a sanity finding.
type Severity int

const (
	// SeverityUnusual marks a legal value outside the range grades normally use.
	SeverityUnusual Severity = iota
	// SeverityInvalid marks a value no writer should emit.
	SeverityInvalid
)

func (s Severity) String() string {
	if s == SeverityInvalid {
		return "invalid"
	}
	return "unusual"
}

// Finding describes one suspicious value of a correction.
type Finding struct {
	ID       string
	Field    string
	Value    decimal.Decimal
	Reason   string
	Severity Severity
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s %s value %s %s", f.ID, f.Severity, f.Field, numeric.Format(f.Value), f.Reason)
}

var channelNames = [3]string{"r", "g", "b"}

// SanityCheck reports unusual and invalid values of cc without modifying it.
// Fields of absent nodes are not checked.
func SanityCheck(cc *ColorCorrection) []Finding {
	var findings []Finding
	check := func(field, label string, d decimal.Decimal) {
		if lim := hardLimits[field]; !lim.contains(d) {
			findings = append(findings, Finding{ID: cc.ID(), Field: label, Value: d, Reason: lim.describe(), Severity: SeverityInvalid})
			return
		}
		if lim := usualLimits[field]; !lim.contains(d) {
			findings = append(findings, Finding{ID: cc.ID(), Field: label, Value: d, Reason: "is outside " + lim.interval(), Severity: SeverityUnusual})
		}
	}

	if sop := cc.SOP(); sop != nil {
		for _, f := range []struct {
			field string
			value numeric.Triple
		}{
			{fieldSlope, sop.Slope()},
			{fieldOffset, sop.Offset()},
			{fieldPower, sop.Power()},
		} {
			for i, d := range f.value {
				check(f.field, f.field+"."+channelNames[i], d)
			}
		}
	}
	if sat := cc.SAT(); sat != nil {
		check(fieldSat, fieldSat, sat.Sat())
	}
	return findings
}
