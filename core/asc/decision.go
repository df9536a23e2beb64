package asc

import "github.com/FocuswithJustin/cdlconvert/core/xml"

// ColorDecision pairs a correction, either owned or referenced, with an
// optional media reference.
type ColorDecision struct {
	ColorSpace
	Descriptive

	MediaRef *MediaRef

	correction *ColorCorrection
	ref        *ColorCorrectionRef
}

// NewColorDecision creates a decision owning cc.
func NewColorDecision(cc *ColorCorrection) *ColorDecision {
	return &ColorDecision{correction: cc}
}

// NewColorDecisionRef creates a decision holding a reference.
func NewColorDecisionRef(ref *ColorCorrectionRef) *ColorDecision {
	return &ColorDecision{ref: ref}
}

func (cd *ColorDecision) collectionChild() {}

// IsRef reports whether the decision holds a reference rather than a correction.
func (cd *ColorDecision) IsRef() bool { return cd.ref != nil }

// Ref returns the held reference, or nil.
func (cd *ColorDecision) Ref() *ColorCorrectionRef { return cd.ref }

// Owned returns the owned correction, or nil for a reference decision.
func (cd *ColorDecision) Owned() *ColorCorrection { return cd.correction }

// SetCorrection makes the decision own cc, dropping any reference.
func (cd *ColorDecision) SetCorrection(cc *ColorCorrection) {
	cd.correction, cd.ref = cc, nil
}

// SetRef makes the decision hold ref, dropping any owned correction.
func (cd *ColorDecision) SetRef(ref *ColorCorrectionRef) {
	cd.correction, cd.ref = nil, ref
}

// ID returns the owned correction's id or the referenced id.
func (cd *ColorDecision) ID() string {
	if cd.ref != nil {
		return cd.ref.ID()
	}
	if cd.correction != nil {
		return cd.correction.ID()
	}
	return ""
}

// Correction returns the owned correction or resolves the reference.
func (cd *ColorDecision) Correction() (*ColorCorrection, error) {
	if cd.ref != nil {
		return cd.ref.Resolve()
	}
	return cd.correction, nil
}

// BuildElement projects the decision, writing references as references.
func (cd *ColorDecision) BuildElement() *xml.Node {
	return cd.buildElement(nil)
}

// buildElement writes inline in place of the payload when it is non-nil.
func (cd *ColorDecision) buildElement(inline *ColorCorrection) *xml.Node {
	n := xml.NewElement("ColorDecision")
	appendHeader(n, &cd.ColorSpace, &cd.Descriptive)
	if cd.MediaRef != nil {
		n.AddChild(cd.MediaRef.BuildElement())
	}
	switch {
	case inline != nil:
		n.AddChild(inline.BuildElement())
	case cd.ref != nil:
		n.AddChild(cd.ref.BuildElement())
	case cd.correction != nil:
		n.AddChild(cd.correction.BuildElement())
	}
	return n
}

func (cd *ColorDecision) XML() string { return cd.BuildElement().XML() }
func (cd *ColorDecision) XMLRoot() string { return cd.BuildElement().XMLRoot() }
