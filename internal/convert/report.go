package convert

import (
	"encoding/json"
	"time"

	"github.com/FocuswithJustin/cdlconvert/core/asc"
	"github.com/FocuswithJustin/cdlconvert/core/numeric"
	"github.com/FocuswithJustin/cdlconvert/internal/formats/base"
)

// Report records what a run read, wrote and found.
type Report struct {
	RunID    string          `json:"run_id"`
	Started  time.Time       `json:"started"`
	Policy   string          `json:"policy"`
	DryRun   bool            `json:"dry_run"`
	Inputs   []InputRecord   `json:"inputs"`
	Outputs  []OutputRecord  `json:"outputs"`
	Findings []FindingRecord `json:"findings,omitempty"`
	Errors   []ErrorRecord   `json:"errors,omitempty"`
}

// InputRecord describes one parsed input file.
type InputRecord struct {
	Path        string `json:"path"`
	Format      string `json:"format"`
	Blake3      string `json:"blake3"`
	Size        int64  `json:"size"`
	Corrections int    `json:"corrections"`
}

// OutputRecord describes one rendered output. Written is false on dry runs.
type OutputRecord struct {
	Path    string `json:"path"`
	Format  string `json:"format"`
	Source  string `json:"source"`
	Bytes   int    `json:"bytes"`
	Written bool   `json:"written"`
}

// FindingRecord is a sanity finding tied to its input file.
type FindingRecord struct {
	Input    string `json:"input"`
	ID       string `json:"id"`
	Field    string `json:"field"`
	Value    string `json:"value"`
	Severity string `json:"severity"`
	Reason   string `json:"reason"`
}

// ErrorRecord is an input that could not be converted.
type ErrorRecord struct {
	Input string `json:"input"`
	Error string `json:"error"`
}

func (r *Report) addInput(info *base.FileInfo, format string, corrections int) {
	r.Inputs = append(r.Inputs, InputRecord{
		Path:        info.Path,
		Format:      format,
		Blake3:      info.Hash,
		Size:        info.Size,
		Corrections: corrections,
	})
}

func (r *Report) addFinding(input string, f asc.Finding) {
	r.Findings = append(r.Findings, FindingRecord{
		Input:    input,
		ID:       f.ID,
		Field:    f.Field,
		Value:    numeric.Format(f.Value),
		Severity: f.Severity.String(),
		Reason:   f.Reason,
	})
}

// JSON renders the report with indentation.
func (r *Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteFile writes the report as JSON to path.
func (r *Report) WriteFile(path string) error {
	data, err := r.JSON()
	if err != nil {
		return err
	}
	return base.WriteOutput(path, data)
}
