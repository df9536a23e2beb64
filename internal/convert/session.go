// Package convert runs conversions: it parses inputs into one registry,
// optionally sanity checks them and writes every requested output.
package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/FocuswithJustin/cdlconvert/core/asc"
	"github.com/FocuswithJustin/cdlconvert/core/errors"
	"github.com/FocuswithJustin/cdlconvert/core/numeric"
	"github.com/FocuswithJustin/cdlconvert/internal/formats"
	"github.com/FocuswithJustin/cdlconvert/internal/formats/base"
	"github.com/FocuswithJustin/cdlconvert/internal/logging"
	"github.com/FocuswithJustin/cdlconvert/internal/validation"
)

// ErrSanity is returned when a strict run finds questionable values.
var ErrSanity = errors.New("sanity check failed")

// Options configure a Session.
type Options struct {
	Strict      bool
	Input       formats.Format // forces the input format; Unknown detects it per file
	Outputs     []formats.Format
	Destination string
	Check       bool
	DryRun      bool
}

// Session converts any number of inputs. Corrections from every input share
// one registry, so references in a CDL resolve against corrections read
// earlier in the same session. A Session is not safe for concurrent use.
type Session struct {
	opts   Options
	reg    *asc.Registry
	report *Report
}

// NewSession creates a session with a fresh registry.
func NewSession(opts Options, runID string) *Session {
	policy := asc.PolicyLenient
	if opts.Strict {
		policy = asc.PolicyStrict
	}
	if len(opts.Outputs) == 0 {
		opts.Outputs = []formats.Format{formats.CC}
	}
	return &Session{
		opts: opts,
		reg:  asc.NewRegistry(policy),
		report: &Report{
			RunID:   runID,
			Started: time.Now().UTC(),
			Policy:  policy.String(),
			DryRun:  opts.DryRun,
		},
	}
}

// Registry returns the session's registry.
func (s *Session) Registry() *asc.Registry { return s.reg }

// Report returns the report built so far.
func (s *Session) Report() *Report { return s.report }

// Run converts every path in order. A strict session stops at the first
// failure; a lenient one converts what it can and returns the failures
// joined.
func (s *Session) Run(ctx context.Context, paths []string) error {
	ctx = logging.WithRunID(ctx, s.report.RunID)
	if err := s.prepareDestination(ctx); err != nil {
		return err
	}

	var failures []error
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Convert(ctx, path); err != nil {
			logging.ConversionError(ctx, path, "convert", err)
			s.report.Errors = append(s.report.Errors, ErrorRecord{Input: path, Error: err.Error()})
			if s.opts.Strict {
				return err
			}
			failures = append(failures, err)
		}
	}
	return errors.Join(failures...)
}

func (s *Session) prepareDestination(ctx context.Context) error {
	if err := validation.ValidatePath(s.destination()); err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	if _, err := os.Stat(s.destination()); err == nil {
		return nil
	}
	if s.opts.DryRun {
		logging.InfoContext(ctx, "destination missing, not created on dry run", "destination", s.destination())
		return nil
	}
	logging.InfoContext(ctx, "creating destination", "destination", s.destination())
	if err := os.MkdirAll(s.destination(), 0o755); err != nil {
		return errors.NewIO("create", s.destination(), err)
	}
	return nil
}

func (s *Session) destination() string {
	if s.opts.Destination == "" {
		return "."
	}
	return s.opts.Destination
}

// Convert parses one input, checks it when asked and writes every output.
func (s *Session) Convert(ctx context.Context, path string) error {
	logging.DebugContext(ctx, "converting input", "path", path, "outputs", len(s.opts.Outputs))
	entity, err := s.parse(ctx, path)
	if err != nil {
		return err
	}
	if s.opts.Check {
		if err := s.check(ctx, path, entity); err != nil {
			return err
		}
	}
	for _, f := range s.opts.Outputs {
		if err := s.write(ctx, path, entity, f); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) parse(ctx context.Context, path string) (asc.Element, error) {
	f := s.opts.Input
	if f == formats.Unknown {
		var err error
		if f, err = formats.FromPath(path); err != nil {
			return nil, err
		}
	}
	info, err := base.ReadFileInfo(path)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateInput(info.Data, path, f.String(), f.IsXML()); err != nil {
		return nil, err
	}
	entity, err := formats.Parse(s.reg, f, info.Data, path)
	if err != nil {
		return nil, err
	}

	count := len(corrections(entity))
	s.report.addInput(info, f.String(), count)
	logging.FileParsed(ctx, path, f.String(), info.Hash, count)
	warnUnresolved(ctx, path, entity)
	return entity, nil
}

// warnUnresolved logs every reference decision of entity whose target is not
// registered. Such decisions contribute no correction to the outputs.
func warnUnresolved(ctx context.Context, path string, entity asc.Element) {
	col, ok := entity.(*asc.ColorCollection)
	if !ok {
		return
	}
	for _, cd := range col.Decisions() {
		if !cd.IsRef() {
			continue
		}
		if cc, err := cd.Correction(); err != nil || cc == nil {
			logging.WarnContext(ctx, "unresolved reference", "path", path, "id", cd.ID())
		}
	}
}

// corrections returns the corrections held by entity. Decisions contribute
// their resolved corrections once each.
func corrections(entity asc.Element) []*asc.ColorCorrection {
	switch v := entity.(type) {
	case *asc.ColorCorrection:
		return []*asc.ColorCorrection{v}
	case *asc.ColorCollection:
		out := append([]*asc.ColorCorrection(nil), v.Corrections()...)
		seen := make(map[*asc.ColorCorrection]bool)
		for _, cd := range v.Decisions() {
			cc, err := cd.Correction()
			if err != nil || cc == nil || seen[cc] {
				continue
			}
			seen[cc] = true
			out = append(out, cc)
		}
		return out
	}
	return nil
}

func (s *Session) check(ctx context.Context, path string, entity asc.Element) error {
	var found int
	for _, cc := range corrections(entity) {
		for _, finding := range asc.SanityCheck(cc) {
			found++
			s.report.addFinding(path, finding)
			logging.SanityFinding(ctx, finding.ID, finding.Field, numeric.Format(finding.Value), finding.Severity.String(), finding.Reason)
		}
	}
	if found > 0 && s.opts.Strict {
		return fmt.Errorf("%w: %d questionable values in %s", ErrSanity, found, path)
	}
	return nil
}

// write renders entity in format f. Single correction formats get one file
// per correction of a collection; collection formats get a single input
// correction wrapped in a collection named after the input.
func (s *Session) write(ctx context.Context, path string, entity asc.Element, f formats.Format) error {
	if f.IsCollection() {
		col, ok := entity.(*asc.ColorCollection)
		if !ok {
			col = asc.NewColorCollection(s.reg, asc.ModeUnset)
			col.FileIn = path
			if err := col.Append(entity.(*asc.ColorCorrection)); err != nil {
				return err
			}
		}
		return s.emit(ctx, path, col, f, col.DetermineDest(f.Extension(), s.destination()))
	}

	targets := []*asc.ColorCorrection{}
	switch v := entity.(type) {
	case *asc.ColorCorrection:
		targets = append(targets, v)
	case *asc.ColorCollection:
		targets = corrections(v)
	}
	for _, cc := range targets {
		if err := s.emit(ctx, path, cc, f, cc.DetermineDest(f.Extension(), s.destination())); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) emit(ctx context.Context, source string, entity asc.Element, f formats.Format, dest string) error {
	out, err := validation.ValidateOutputPath(filepath.Dir(dest), filepath.Base(dest))
	if err != nil {
		return err
	}
	data, err := formats.Write(f, entity)
	if err != nil {
		return err
	}
	if !s.opts.DryRun {
		if err := base.WriteOutput(out, data); err != nil {
			return err
		}
	}
	s.report.Outputs = append(s.report.Outputs, OutputRecord{
		Path:    out,
		Format:  f.String(),
		Source:  source,
		Bytes:   len(data),
		Written: !s.opts.DryRun,
	})
	logging.FileWritten(ctx, out, f.String(), len(data), s.opts.DryRun)
	return nil
}
