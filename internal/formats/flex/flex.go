// Package flex reads CDL values from DaVinci FLEx telecine EDLs.
//
// Every FLEx line starts with a three digit marker. Lines 000-099 describe the
// session, 100 starts a take and the remaining markers carry take data at fixed
// columns:
//
//	010  title            columns 10-79
//	110  slate            scene 10-17, take 24-31, camera reel 42-49
//	701  ASC_SOP          (r g b)(r g b)(r g b)
//	702  ASC_SAT          last field of the line
package flex

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/cdlconvert/core/asc"
	"github.com/FocuswithJustin/cdlconvert/core/errors"
	"github.com/FocuswithJustin/cdlconvert/internal/formats/base"
)

// FormatName is used in error messages.
const FormatName = "FLEx"

const (
	markerTitle  = "010"
	markerRecord = "100"
	markerSlate  = "110"
	markerSOP    = "701"
	markerSAT    = "702"
)

type state int

const (
	awaitingRecord state = iota
	inRecord
	recordComplete
)

// record collects the lines of one take.
type record struct {
	slate []string
	sop   string
	sat   string
}

// scanner walks a FLEx file line by line. Takes are turned into corrections
// as soon as the next 100 line or the end of the file completes them.
type scanner struct {
	reg      *asc.Registry
	name     string
	fallback string
	title    string
	state    state
	current  record
	col      *asc.ColorCollection
}

// Parse reads every take of a FLEx EDL into a corrections collection. A take
// without 701 or 702 lines yields a correction without SOP or SAT.
func Parse(reg *asc.Registry, data []byte, name string) (*asc.ColorCollection, error) {
	return base.Atomic(reg, func() (*asc.ColorCollection, error) { return parse(reg, data, name) })
}

func parse(reg *asc.Registry, data []byte, name string) (*asc.ColorCollection, error) {
	s := &scanner{
		reg:      reg,
		name:     name,
		fallback: base.IDFromFilename(name),
		col:      asc.NewColorCollection(reg, asc.ModeCorrections),
	}
	s.col.FileIn = name

	for n, line := range base.SplitLines(data) {
		if err := s.line(line); err != nil {
			return nil, errors.Wrapf(err, "line %d", n+1)
		}
	}
	if err := s.finish(); err != nil {
		return nil, err
	}
	return s.col, nil
}

func (s *scanner) line(line string) error {
	if len(line) < 3 {
		return nil
	}
	switch marker := line[:3]; marker {
	case markerTitle:
		s.title = strings.TrimSpace(columns(line, 10, 80))
	case markerRecord:
		if err := s.finish(); err != nil {
			return err
		}
		s.open()
	case markerSlate, markerSOP, markerSAT:
		if s.state != inRecord {
			s.open()
		}
		switch marker {
		case markerSlate:
			s.current.slate = []string{
				strings.TrimSpace(columns(line, 10, 18)),
				strings.TrimSpace(columns(line, 24, 32)),
				strings.TrimSpace(columns(line, 42, 50)),
			}
		case markerSOP:
			text := line[3:]
			if i := strings.Index(text, "ASC_SOP"); i >= 0 {
				text = text[i+len("ASC_SOP"):]
			}
			s.current.sop = text
		case markerSAT:
			fields := strings.Fields(line[3:])
			if len(fields) == 0 {
				return errors.NewStructural(FormatName, s.name, "702 line without a saturation value")
			}
			s.current.sat = fields[len(fields)-1]
		}
	}
	return nil
}

func (s *scanner) open() {
	s.state = inRecord
	s.current = record{}
}

// finish turns the open take, if any, into a correction.
func (s *scanner) finish() error {
	if s.state != inRecord {
		return nil
	}
	s.state = recordComplete

	cc, err := s.reg.NewColorCorrection(s.recordID(), s.name)
	if err != nil {
		return err
	}
	if s.title != "" {
		cc.AddDescription(s.title)
	}
	if s.current.sop != "" {
		sop, err := base.ParsePackedSOP(FormatName, s.name, s.current.sop)
		if err != nil {
			return err
		}
		if err := sop.Apply(cc.SetSlope, cc.SetOffset, cc.SetPower); err != nil {
			return err
		}
	}
	if s.current.sat != "" {
		if err := cc.SetSat(s.current.sat); err != nil {
			return err
		}
	}
	return s.col.Append(cc)
}

// recordID joins the non-empty slate fields, else numbers the take after the
// title or the file name.
func (s *scanner) recordID() string {
	var parts []string
	for _, field := range s.current.slate {
		if field != "" {
			parts = append(parts, field)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, "_")
	}
	prefix := s.title
	if prefix == "" {
		prefix = s.fallback
	}
	return fmt.Sprintf("%s%03d", prefix, s.col.Len()+1)
}

// columns returns line[from:to], clipped to the line length.
func columns(line string, from, to int) string {
	if from >= len(line) {
		return ""
	}
	if to > len(line) {
		to = len(line)
	}
	return line[from:to]
}
