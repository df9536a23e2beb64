// Package ale reads CDL values from Avid Log Exchange files.
//
// An ALE file is tab separated text. A line starting with "Column" announces
// the header line that follows it and a line starting with "Data" announces
// one row per clip until the end of the file.
package ale

import (
	"strings"

	"github.com/FocuswithJustin/cdlconvert/core/asc"
	"github.com/FocuswithJustin/cdlconvert/core/errors"
	"github.com/FocuswithJustin/cdlconvert/internal/formats/base"
)

// FormatName is used in error messages.
const FormatName = "ALE"

// Column names, compared case-insensitively.
const (
	colSOP          = "asc_sop"
	colSAT          = "asc_sat"
	colSlope        = "asc_slope"
	colOffset       = "asc_offset"
	colPower        = "asc_power"
	colScanFilename = "scan filename"
	colName         = "name"
)

type section int

const (
	sectionHeading section = iota
	sectionColumn
	sectionData
)

// Parse reads every data row of an ALE file into a corrections collection.
// Row ids come from the Scan Filename column, falling back to Name. A row
// without CDL cells yields a correction without SOP or SAT.
func Parse(reg *asc.Registry, data []byte, name string) (*asc.ColorCollection, error) {
	return base.Atomic(reg, func() (*asc.ColorCollection, error) { return parse(reg, data, name) })
}

func parse(reg *asc.Registry, data []byte, name string) (*asc.ColorCollection, error) {
	col := asc.NewColorCollection(reg, asc.ModeCorrections)
	col.FileIn = name

	var columns map[string]int
	state := sectionHeading
	for _, line := range base.SplitLines(data) {
		switch {
		case strings.HasPrefix(line, "Column"):
			state = sectionColumn
			continue
		case strings.HasPrefix(line, "Data"):
			if columns == nil {
				return nil, errors.NewStructural(FormatName, name, "Data section before any Column header")
			}
			state = sectionData
			continue
		}

		switch state {
		case sectionColumn:
			columns = make(map[string]int)
			for i, field := range strings.Split(line, "\t") {
				key := strings.ToLower(strings.TrimSpace(field))
				if _, seen := columns[key]; !seen && key != "" {
					columns[key] = i
				}
			}
			state = sectionHeading
		case sectionData:
			if strings.TrimSpace(line) == "" {
				continue
			}
			cc, err := parseRow(reg, columns, strings.Split(line, "\t"), name)
			if err != nil {
				return nil, err
			}
			if err := col.Append(cc); err != nil {
				return nil, err
			}
		}
	}
	return col, nil
}

func parseRow(reg *asc.Registry, columns map[string]int, cells []string, name string) (*asc.ColorCorrection, error) {
	cell := func(key string) string {
		i, ok := columns[key]
		if !ok || i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[i])
	}

	id := cell(colScanFilename)
	if id == "" {
		id = cell(colName)
	}
	cc, err := reg.NewColorCorrection(id, name)
	if err != nil {
		return nil, err
	}

	if packed := cell(colSOP); packed != "" {
		sop, err := base.ParsePackedSOP(FormatName, name, packed)
		if err != nil {
			return nil, err
		}
		if err := sop.Apply(cc.SetSlope, cc.SetOffset, cc.SetPower); err != nil {
			return nil, err
		}
	} else {
		for _, f := range []struct {
			key   string
			field string
			set   func(...any) error
		}{
			{colSlope, "slope", cc.SetSlope},
			{colOffset, "offset", cc.SetOffset},
			{colPower, "power", cc.SetPower},
		} {
			text := cell(f.key)
			if text == "" {
				continue
			}
			t, err := base.ParseTriple(FormatName, name, f.field, text)
			if err != nil {
				return nil, err
			}
			if err := f.set(t[0], t[1], t[2]); err != nil {
				return nil, err
			}
		}
	}

	if sat := cell(colSAT); sat != "" {
		if err := cc.SetSat(sat); err != nil {
			return nil, err
		}
	}
	return cc, nil
}
