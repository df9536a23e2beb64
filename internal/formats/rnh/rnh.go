// Package rnh reads and writes the Rhythm & Hues single line CDL format:
//
//	slopeR slopeG slopeB offsetR offsetG offsetB powerR powerG powerB [sat]
//
// The correction id comes from the file name, never from the content.
package rnh

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/cdlconvert/core/asc"
	"github.com/FocuswithJustin/cdlconvert/core/errors"
	"github.com/FocuswithJustin/cdlconvert/core/numeric"
	"github.com/FocuswithJustin/cdlconvert/internal/formats/base"
)

// FormatName is used in error messages.
const FormatName = "RNH"

// Parse reads the first line of data. Nine values set slope, offset and
// power; a tenth sets saturation.
func Parse(reg *asc.Registry, data []byte, name string) (*asc.ColorCorrection, error) {
	return base.Atomic(reg, func() (*asc.ColorCorrection, error) { return parse(reg, data, name) })
}

func parse(reg *asc.Registry, data []byte, name string) (*asc.ColorCorrection, error) {
	first := base.SplitLines(data)[0]
	tokens := strings.Fields(first)
	if len(tokens) != 9 && len(tokens) != 10 {
		return nil, errors.NewStructural(FormatName, name, fmt.Sprintf("expected 9 or 10 values, found %d", len(tokens)))
	}

	cc, err := reg.NewColorCorrection(base.IDFromFilename(name), name)
	if err != nil {
		return nil, err
	}
	sop := &base.SOP{}
	for i, f := range []struct {
		field string
		dst   *numeric.Triple
	}{
		{"slope", &sop.Slope},
		{"offset", &sop.Offset},
		{"power", &sop.Power},
	} {
		t, err := numeric.StringsToTriple(f.field, tokens[i*3:i*3+3])
		if err != nil {
			return nil, err
		}
		*f.dst = t
	}
	if err := sop.Apply(cc.SetSlope, cc.SetOffset, cc.SetPower); err != nil {
		return nil, err
	}
	if len(tokens) == 10 {
		if err := cc.SetSat(tokens[9]); err != nil {
			return nil, err
		}
	}
	return cc, nil
}

// Write renders cc on one line without a trailing newline. A correction
// without SOP writes identity values; saturation is written only when set.
func Write(cc *asc.ColorCorrection) ([]byte, error) {
	if cc == nil {
		return nil, errors.NewStructural(FormatName, "", "no color correction to write")
	}
	values := make([]string, 0, 10)
	values = append(values, cc.Slope().Strings()...)
	values = append(values, cc.Offset().Strings()...)
	values = append(values, cc.Power().Strings()...)
	if cc.HasSAT() {
		values = append(values, numeric.Format(cc.Sat()))
	}
	return []byte(strings.Join(values, " ")), nil
}

// WriteFile writes cc to path.
func WriteFile(cc *asc.ColorCorrection, path string) error {
	data, err := Write(cc)
	if err != nil {
		return err
	}
	return base.WriteOutput(path, data)
}
