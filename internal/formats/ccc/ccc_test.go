package ccc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/FocuswithJustin/cdlconvert/core/asc"
	"github.com/FocuswithJustin/cdlconvert/core/errors"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<ColorCorrectionCollection xmlns="urn:ASC:CDL:v1.01">
    <InputDescription>LogC</InputDescription>
    <ViewingDescription>Rec709</ViewingDescription>
    <Description>reel one</Description>
    <ColorCorrection id="014_xf_seqGrade_v01">
        <Description>Cool look for forest</Description>
        <SOPNode>
            <Slope>1.014 1.0104 0.62</Slope>
            <Offset>-0.00315 -0.00124 0.3103</Offset>
            <Power>1.0 0.9983 1.0</Power>
        </SOPNode>
    </ColorCorrection>
    <ColorCorrection id="f51.200">
        <SatNode>
            <Saturation>1.09</Saturation>
        </SatNode>
    </ColorCorrection>
</ColorCorrectionCollection>
`

// snapshot is the comparable content of a parsed collection.
type snapshot struct {
	Input, Viewing string
	Descriptions   []string
	Corrections    []correction
}

type correction struct {
	ID                   string
	Descriptions         []string
	Slope, Offset, Power string
	Sat                  string
	HasSOP, HasSAT       bool
}

func snap(col *asc.ColorCollection) snapshot {
	s := snapshot{Input: col.InputDescription, Viewing: col.ViewingDescription, Descriptions: col.Descriptions}
	for _, cc := range col.Corrections() {
		s.Corrections = append(s.Corrections, correction{
			ID:           cc.ID(),
			Descriptions: cc.Descriptions,
			Slope:        cc.Slope().String(),
			Offset:       cc.Offset().String(),
			Power:        cc.Power().String(),
			Sat:          cc.Sat().String(),
			HasSOP:       cc.HasSOP(),
			HasSAT:       cc.HasSAT(),
		})
	}
	return s
}

func TestParse(t *testing.T) {
	col, err := Parse(asc.NewRegistry(asc.PolicyStrict), []byte(sample), "/grades/reel1.ccc")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := snapshot{
		Input:        "LogC",
		Viewing:      "Rec709",
		Descriptions: []string{"reel one"},
		Corrections: []correction{
			{
				ID:           "014_xf_seqGrade_v01",
				Descriptions: []string{"Cool look for forest"},
				Slope:        "1.014 1.0104 0.62",
				Offset:       "-0.00315 -0.00124 0.3103",
				Power:        "1 0.9983 1",
				Sat:          "1",
				HasSOP:       true,
			},
			{ID: "f51.200", Slope: "1 1 1", Offset: "0 0 0", Power: "1 1 1", Sat: "1.09", HasSAT: true},
		},
	}
	if diff := cmp.Diff(want, snap(col)); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
	if col.Mode() != asc.ModeCorrections || col.FileIn != "/grades/reel1.ccc" {
		t.Errorf("mode %v file %q", col.Mode(), col.FileIn)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		policy  asc.Policy
		data    string
		wantErr error
	}{
		{"malformed", asc.PolicyLenient, "<ColorCorrectionCollection>", errors.ErrStructural},
		{"wrong root", asc.PolicyLenient, `<ColorDecisionList><ColorDecision/></ColorDecisionList>`, errors.ErrStructural},
		{"empty collection", asc.PolicyLenient, `<ColorCorrectionCollection><Description>x</Description></ColorCorrectionCollection>`, errors.ErrStructural},
		{"bad child", asc.PolicyLenient, `<ColorCorrectionCollection><ColorCorrection id="a"><SOPNode><Slope>1 1</Slope><Offset>0 0 0</Offset><Power>1 1 1</Power></SOPNode></ColorCorrection></ColorCorrectionCollection>`, errors.ErrStructural},
		{"bad number", asc.PolicyLenient, `<ColorCorrectionCollection><ColorCorrection id="a"><SatNode><Saturation>lots</Saturation></SatNode></ColorCorrection></ColorCorrectionCollection>`, errors.ErrValue},
		{"strict duplicate", asc.PolicyStrict, `<ColorCorrectionCollection><ColorCorrection id="a"><SatNode><Saturation>1</Saturation></SatNode></ColorCorrection><ColorCorrection id="a"><SatNode><Saturation>1</Saturation></SatNode></ColorCorrection></ColorCorrectionCollection>`, errors.ErrDuplicateID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := asc.NewRegistry(tt.policy)
			_, err := Parse(reg, []byte(tt.data), "test.ccc")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if reg.Len() != 0 {
				t.Errorf("failed parse left %v registered", reg.IDs())
			}
		})
	}
}

func TestParseFailureKeepsEarlierInputs(t *testing.T) {
	reg := asc.NewRegistry(asc.PolicyStrict)
	if _, err := reg.NewColorCorrection("earlier", "earlier.cc"); err != nil {
		t.Fatal(err)
	}

	bad := `<ColorCorrectionCollection>
    <ColorCorrection id="a"><SatNode><Saturation>1</Saturation></SatNode></ColorCorrection>
    <ColorCorrection id="b"><SatNode><Saturation>1</Saturation></SatNode></ColorCorrection>
    <ColorCorrection id="c"><SatNode><Saturation>lots</Saturation></SatNode></ColorCorrection>
</ColorCorrectionCollection>`
	if _, err := Parse(reg, []byte(bad), "reel1.ccc"); !errors.Is(err, errors.ErrValue) {
		t.Fatalf("error = %v, want ErrValue", err)
	}
	if diff := cmp.Diff([]string{"earlier"}, reg.IDs()); diff != "" {
		t.Errorf("IDs() after failed parse mismatch (-want +got):\n%s", diff)
	}

	good := strings.Replace(bad, "lots", "0.9", 1)
	col, err := Parse(reg, []byte(good), "reel1.ccc")
	if err != nil {
		t.Fatalf("Parse of fixed file returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, col.IDs()); diff != "" {
		t.Errorf("col.IDs() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLenientDuplicate(t *testing.T) {
	data := `<ColorCorrectionCollection><ColorCorrection id="a"><SatNode><Saturation>1</Saturation></SatNode></ColorCorrection><ColorCorrection id="a"><SatNode><Saturation>2</Saturation></SatNode></ColorCorrection></ColorCorrectionCollection>`
	col, err := Parse(asc.NewRegistry(asc.PolicyLenient), []byte(data), "")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "a001"}, col.IDs()); diff != "" {
		t.Errorf("IDs() mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite(t *testing.T) {
	reg := asc.NewRegistry(asc.PolicyStrict)
	col := asc.NewColorCollection(reg, asc.ModeCorrections)
	col.AddDescription("")
	first, _ := reg.NewColorCorrection("sh010", "")
	first.SetSlope(1.5)
	second, _ := reg.NewColorCorrection("sh020", "")
	second.SetSat("0.80")
	if err := col.Append(first, second); err != nil {
		t.Fatal(err)
	}

	got, err := Write(col)
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	want := `<?xml version="1.0" encoding="UTF-8"?>
<ColorCorrectionCollection xmlns="urn:ASC:CDL:v1.01">
    <Description/>
    <ColorCorrection id="sh010">
        <SOPNode>
            <Slope>1.5 1.5 1.5</Slope>
            <Offset>0 0 0</Offset>
            <Power>1 1 1</Power>
        </SOPNode>
    </ColorCorrection>
    <ColorCorrection id="sh020">
        <SATNode>
            <Saturation>0.8</Saturation>
        </SATNode>
    </ColorCorrection>
</ColorCorrectionCollection>
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Write() mismatch (-want +got):\n%s", diff)
	}

	if _, err := Write(nil); !errors.Is(err, errors.ErrStructural) {
		t.Errorf("Write(nil) error = %v", err)
	}
}

func TestWriteDecisions(t *testing.T) {
	reg := asc.NewRegistry(asc.PolicyStrict)
	owned, _ := reg.NewColorCorrection("owned", "")
	owned.SetSat(1.1)
	elsewhere, _ := reg.NewColorCorrection("elsewhere", "")
	elsewhere.SetSat(0.9)

	col := asc.NewColorCollection(reg, asc.ModeDecisions)
	col.Append(
		asc.NewColorDecision(owned),
		asc.NewColorDecisionRef(asc.NewColorCorrectionRef(reg, "elsewhere")),
		asc.NewColorDecisionRef(asc.NewColorCorrectionRef(reg, "owned")),
	)
	got, err := Write(col)
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if n := strings.Count(string(got), "<ColorCorrection "); n != 2 {
		t.Errorf("wrote %d corrections, want 2:\n%s", n, got)
	}

	missing := asc.NewColorCollection(reg, asc.ModeDecisions)
	missing.Append(asc.NewColorDecisionRef(asc.NewColorCorrectionRef(reg, "nowhere")))
	if _, err := Write(missing); !errors.Is(err, errors.ErrUnresolved) {
		t.Errorf("unresolved ref error = %v, want ErrUnresolved", err)
	}
}

func TestRoundTrip(t *testing.T) {
	reg := asc.NewRegistry(asc.PolicyStrict)
	col, err := Parse(reg, []byte(sample), "reel1.ccc")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "reel1.ccc")
	if err := WriteFile(col, path); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	reg.Reset()
	again, err := Parse(reg, data, path)
	if err != nil {
		t.Fatalf("reparse returned error: %v", err)
	}
	if diff := cmp.Diff(snap(col), snap(again)); diff != "" {
		t.Errorf("round trip mismatch (-first +second):\n%s", diff)
	}
}
