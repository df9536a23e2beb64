package asc

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/FocuswithJustin/cdlconvert/core/errors"
	"github.com/FocuswithJustin/cdlconvert/core/xml"
)

// ErrWrongChild is wrapped by errors returned when a child does not fit a
// collection's mode.
var ErrWrongChild = errors.ErrWrongChild

// Mode decides which kind of child a collection holds.
type Mode int

const (
	// ModeUnset collections take the mode of their first child.
	ModeUnset Mode = iota
	// ModeCorrections collections hold ColorCorrections, as in CCC files.
	ModeCorrections
	// ModeDecisions collections hold ColorDecisions, as in CDL files.
	ModeDecisions
)

func (m Mode) String() string {
	switch m {
	case ModeCorrections:
		return "corrections"
	case ModeDecisions:
		return "decisions"
	default:
		return "unset"
	}
}

// Child is implemented by the types a collection can hold.
type Child interface {
	collectionChild()
}

const collectionCounter = "color_collection"

// ColorCollection is an ordered set of corrections or decisions with shared
// descriptive metadata.
type ColorCollection struct {
	ColorSpace
	Descriptive

	FileIn  string
	FileOut string

	registry    *Registry
	mode        Mode
	corrections []*ColorCorrection
	decisions   []*ColorDecision
	number      int
}

// NewColorCollection creates an empty collection bound to reg.
func NewColorCollection(reg *Registry, mode Mode) *ColorCollection {
	return &ColorCollection{
		registry: reg,
		mode:     mode,
		number:   reg.Next(collectionCounter),
	}
}

func (c *ColorCollection) Mode() Mode { return c.mode }
func (c *ColorCollection) Registry() *Registry { return c.registry }
func (c *ColorCollection) XMLNS() string { return XMLNS }
func (c *ColorCollection) IsDecisionList() bool { return c.mode == ModeDecisions }

// Corrections returns the held corrections.
func (c *ColorCollection) Corrections() []*ColorCorrection { return c.corrections }

// Decisions returns the held decisions.
func (c *ColorCollection) Decisions() []*ColorDecision { return c.decisions }

// Len returns the number of children.
func (c *ColorCollection) Len() int { return len(c.corrections) + len(c.decisions) }

// IDs returns the ids of the full corrections held directly or inside decisions.
// Reference decisions contribute nothing.
func (c *ColorCollection) IDs() []string {
	var ids []string
	for _, cc := range c.corrections {
		ids = append(ids, cc.ID())
	}
	for _, cd := range c.decisions {
		if owned := cd.Owned(); owned != nil {
			ids = append(ids, owned.ID())
		}
	}
	return ids
}

func (c *ColorCollection) hasID(id string) bool {
	for _, existing := range c.IDs() {
		if existing == id {
			return true
		}
	}
	return false
}

// Append adds children in order. The first child fixes an unset mode. A child
// of the wrong kind is an error; a child whose correction id is already held
// is a DuplicateIDError under the strict policy and is skipped otherwise.
func (c *ColorCollection) Append(children ...Child) error {
	for _, child := range children {
		if err := c.append(child); err != nil {
			return err
		}
	}
	return nil
}

func (c *ColorCollection) append(child Child) error {
	switch v := child.(type) {
	case *ColorCorrection:
		if err := c.claim(ModeCorrections, "ColorCorrection"); err != nil {
			return err
		}
		if c.hasID(v.ID()) {
			return c.duplicate(v.ID())
		}
		c.corrections = append(c.corrections, v)
	case *ColorDecision:
		if err := c.claim(ModeDecisions, "ColorDecision"); err != nil {
			return err
		}
		if owned := v.Owned(); owned != nil && c.hasID(owned.ID()) {
			return c.duplicate(owned.ID())
		}
		c.decisions = append(c.decisions, v)
	default:
		return fmt.Errorf("%w: unsupported child type %T", ErrWrongChild, child)
	}
	return nil
}

func (c *ColorCollection) claim(mode Mode, kind string) error {
	if c.mode == ModeUnset {
		c.mode = mode
	}
	if c.mode != mode {
		return fmt.Errorf("%w: cannot add a %s to a collection of %s", ErrWrongChild, kind, c.mode)
	}
	return nil
}

func (c *ColorCollection) duplicate(id string) error {
	if c.registry != nil && c.registry.Strict() {
		return errors.Wrap(errors.NewDuplicateID(id), "collection already holds this correction")
	}
	return nil
}

func (c *ColorCollection) children() []Child {
	children := make([]Child, 0, c.Len())
	for _, cc := range c.corrections {
		children = append(children, cc)
	}
	for _, cd := range c.decisions {
		children = append(children, cd)
	}
	return children
}

// Copy returns a new collection with the same metadata and the same children.
// The children themselves are shared, not copied.
func (c *ColorCollection) Copy() *ColorCollection {
	dup := NewColorCollection(c.registry, c.mode)
	dup.ColorSpace = c.ColorSpace
	dup.Descriptions = append([]string(nil), c.Descriptions...)
	dup.FileIn = c.FileIn
	dup.corrections = append([]*ColorCorrection(nil), c.corrections...)
	dup.decisions = append([]*ColorDecision(nil), c.decisions...)
	return dup
}

// Merge returns a copy of c extended with the descriptions and children of
// others. Children already present, including c itself, are added once;
// colorspace fields and FileIn come from c.
func (c *ColorCollection) Merge(others ...*ColorCollection) (*ColorCollection, error) {
	merged := c.Copy()
	seen := make(map[Child]bool)
	for _, child := range merged.children() {
		seen[child] = true
	}
	for _, other := range others {
		if other == nil || other == c {
			continue
		}
		merged.Descriptions = append(merged.Descriptions, other.Descriptions...)
		for _, child := range other.children() {
			if seen[child] {
				continue
			}
			seen[child] = true
			if err := merged.append(child); err != nil {
				return nil, err
			}
		}
	}
	return merged, nil
}

// DefaultExt returns the extension matching the collection's mode.
func (c *ColorCollection) DefaultExt() string {
	if c.mode == ModeDecisions {
		return "cdl"
	}
	return "ccc"
}

// DetermineDest sets FileOut to directory/name.ext and returns it. The name
// is the stem of FileIn, else color_collection_NNN numbered in creation order.
func (c *ColorCollection) DetermineDest(ext, directory string) string {
	var name string
	if c.FileIn != "" {
		base := filepath.Base(c.FileIn)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	} else {
		name = fmt.Sprintf("%s_%03d", collectionCounter, c.number)
	}
	c.FileOut = filepath.Join(directory, name+"."+ext)
	return c.FileOut
}

// BuildElement projects the collection in its natural form: a correction
// collection for corrections, a decision list for decisions.
func (c *ColorCollection) BuildElement() *xml.Node {
	if c.mode == ModeDecisions {
		return c.CDLElement()
	}
	n, _ := c.CCCElement()
	return n
}

func (c *ColorCollection) XML() string { return c.BuildElement().XML() }
func (c *ColorCollection) XMLRoot() string { return c.BuildElement().XMLRoot() }

func (c *ColorCollection) root(name string) *xml.Node {
	n := xml.NewElement(name).SetAttr("xmlns", XMLNS)
	appendHeader(n, &c.ColorSpace, &c.Descriptive)
	return n
}

// CCCElement builds a ColorCorrectionCollection. Decisions contribute their
// corrections, each id once; an unresolved reference is an error under the
// strict policy and is skipped otherwise.
func (c *ColorCollection) CCCElement() (*xml.Node, error) {
	n := c.root("ColorCorrectionCollection")
	for _, cc := range c.corrections {
		n.AddChild(cc.BuildElement())
	}
	written := make(map[string]bool)
	for _, cd := range c.decisions {
		cc, err := cd.Correction()
		if err != nil {
			return nil, err
		}
		if cc == nil || written[cc.ID()] {
			continue
		}
		written[cc.ID()] = true
		n.AddChild(cc.BuildElement())
	}
	return n, nil
}

// CDLElement builds a ColorDecisionList. Corrections are wrapped in
// decisions. A reference whose id the collection holds stays a reference;
// any other reference is inlined when it resolves and kept as is otherwise.
func (c *ColorCollection) CDLElement() *xml.Node {
	n := c.root("ColorDecisionList")
	for _, cd := range c.decisions {
		var inline *ColorCorrection
		if cd.IsRef() && !c.hasID(cd.ID()) {
			if cc, err := cd.Correction(); err == nil {
				inline = cc
			}
		}
		n.AddChild(cd.buildElement(inline))
	}
	for _, cc := range c.corrections {
		n.AddChild(NewColorDecision(cc).BuildElement())
	}
	return n
}
