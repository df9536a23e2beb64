package base

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/cdlconvert/core/errors"
	"github.com/FocuswithJustin/cdlconvert/core/numeric"
)

// packedSOP is the grammar for the combined SOP notation used by ALE and
// FLEx: "(1.4 1.9 1.7)(-0.1 -0.26 -0.20)(0.87 1.0 1.32)".
//
//nolint:govet // participle grammar tags are not standard struct tags
type packedSOP struct {
	Groups []*sopGroup `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type sopGroup struct {
	Values []string `"(" @Value* ")"`
}

// Values are lexed loosely so that a malformed number surfaces as a value
// error rather than a syntax error.
var sopLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Paren", Pattern: `[()]`},
	{Name: "Value", Pattern: `[^()\s]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var sopParser = participle.MustBuild[packedSOP](
	participle.Lexer(sopLexer),
	participle.Elide("Whitespace"),
)

// SOP holds the three triples of a packed SOP value.
type SOP struct {
	Slope, Offset, Power numeric.Triple
}

// ParsePackedSOP parses a packed SOP value. format names the caller in errors.
func ParsePackedSOP(format, name, text string) (*SOP, error) {
	text = strings.TrimSpace(text)
	parsed, err := sopParser.ParseString(name, text)
	if err != nil {
		return nil, &errors.StructuralError{Format: format, Path: name, Message: fmt.Sprintf("malformed ASC_SOP %q", text), Err: err}
	}
	if len(parsed.Groups) != 3 {
		return nil, errors.NewStructural(format, name, fmt.Sprintf("ASC_SOP needs 3 groups, found %d in %q", len(parsed.Groups), text))
	}

	var sop SOP
	fields := []struct {
		field string
		dst   *numeric.Triple
	}{
		{"slope", &sop.Slope},
		{"offset", &sop.Offset},
		{"power", &sop.Power},
	}
	for i, f := range fields {
		values := parsed.Groups[i].Values
		if len(values) != 3 {
			return nil, errors.NewStructural(format, name, fmt.Sprintf("ASC_SOP %s needs 3 values, found %d", f.field, len(values)))
		}
		t, err := numeric.StringsToTriple(f.field, values)
		if err != nil {
			return nil, err
		}
		*f.dst = t
	}
	return &sop, nil
}

// ParseTriple parses three whitespace separated numbers, as found in the
// separate slope, offset and power columns and in CC text fields.
func ParseTriple(format, name, field, text string) (numeric.Triple, error) {
	tokens := strings.Fields(text)
	if len(tokens) != 3 {
		return numeric.Triple{}, errors.NewStructural(format, name, fmt.Sprintf("%s needs 3 values, found %d", field, len(tokens)))
	}
	return numeric.StringsToTriple(field, tokens)
}

// Apply copies the triples onto setters, usually a correction's SOP node.
func (s *SOP) Apply(setSlope, setOffset, setPower func(...any) error) error {
	for _, step := range []struct {
		set func(...any) error
		t   numeric.Triple
	}{
		{setSlope, s.Slope},
		{setOffset, s.Offset},
		{setPower, s.Power},
	} {
		if err := step.set(step.t[0], step.t[1], step.t[2]); err != nil {
			return err
		}
	}
	return nil
}
