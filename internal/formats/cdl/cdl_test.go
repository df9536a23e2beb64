package cdl

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
<ColorDecisionList xmlns="urn:ASC:CDL:v1.01">
    <InputDescription>Scanned Film</InputDescription>
    <Description>Day 3 dailies</Description>
    <ColorDecision>
        <Description>first decision</Description>
        <MediaRef ref="http://shots/sh010/sh010.####.dpx"/>
        <ColorCorrection id="sh010">
            <SOPNode>
                <Slope>1.1 1.2 1.3</Slope>
                <Offset>0.1 0.2 0.3</Offset>
                <Power>0.9 1.0 1.1</Power>
            </SOPNode>
            <SATNode>
                <Saturation>0.95</Saturation>
            </SATNode>
        </ColorCorrection>
    </ColorDecision>
    <ColorDecision>
        <ColorCorrectionRef ref="sh010"/>
    </ColorDecision>
    <ColorDecision>
        <ViewingDescription>projector</ViewingDescription>
        <ColorCorrectionRef ref="graded_elsewhere"/>
    </ColorDecision>
</ColorDecisionList>
`

type decision struct {
	ID           string
	IsRef        bool
	Viewing      string
	Descriptions []string
	Media        string
}

func snap(col *asc.ColorCollection) []decision {
	var out []decision
	for _, cd := range col.Decisions() {
		d := decision{ID: cd.ID(), IsRef: cd.IsRef(), Viewing: cd.ViewingDescription, Descriptions: cd.Descriptions}
		if cd.MediaRef != nil {
			d.Media = cd.MediaRef.Ref()
		}
		out = append(out, d)
	}
	return out
}

func TestParse(t *testing.T) {
	col, err := Parse(asc.NewRegistry(asc.PolicyLenient), []byte(sample), "day3.cdl")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !col.IsDecisionList() || col.InputDescription != "Scanned Film" {
		t.Errorf("mode %v input %q", col.Mode(), col.InputDescription)
	}
	want := []decision{
		{ID: "sh010", Descriptions: []string{"first decision"}, Media: "http://shots/sh010/sh010.####.dpx"},
		{ID: "sh010", IsRef: true},
		{ID: "graded_elsewhere", IsRef: true, Viewing: "projector"},
	}
	if diff := cmp.Diff(want, snap(col)); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"sh010"}, col.IDs()); diff != "" {
		t.Errorf("IDs() mismatch (-want +got):\n%s", diff)
	}

	media := col.Decisions()[0].MediaRef
	if media.Protocol != "http" || media.Dir != "shots/sh010" || media.Filename != "sh010.####.dpx" {
		t.Errorf("media ref = %+v", media)
	}

	cc, err := col.Decisions()[1].Correction()
	if err != nil || cc == nil || cc.Slope().String() != "1.1 1.2 1.3" {
		t.Errorf("resolved ref = %v, %v", cc, err)
	}
	if cc, err := col.Decisions()[2].Correction(); cc != nil || err != nil {
		t.Errorf("lenient unresolved ref = %v, %v; want nil, nil", cc, err)
	}
}

func TestParseStrictUnresolved(t *testing.T) {
	col, err := Parse(asc.NewRegistry(asc.PolicyStrict), []byte(sample), "day3.cdl")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if _, err := col.Decisions()[2].Correction(); !errors.Is(err, errors.ErrUnresolved) {
		t.Errorf("error = %v, want ErrUnresolved", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", "<ColorDecisionList"},
		{"wrong root", `<ColorCorrectionCollection><ColorCorrection id="a"/></ColorCorrectionCollection>`},
		{"no decisions", `<ColorDecisionList><Description>empty</Description></ColorDecisionList>`},
		{"empty decision", `<ColorDecisionList><ColorDecision><Description>x</Description></ColorDecision></ColorDecisionList>`},
		{"ref without ref", `<ColorDecisionList><ColorDecision><ColorCorrectionRef/></ColorDecision></ColorDecisionList>`},
		{"media without ref", `<ColorDecisionList><ColorDecision><MediaRef/><ColorCorrectionRef ref="a"/></ColorDecision></ColorDecisionList>`},
		{"broken after inline", `<ColorDecisionList><ColorDecision><ColorCorrection id="a"><SatNode><Saturation>1</Saturation></SatNode></ColorCorrection></ColorDecision><ColorDecision><MediaRef/><ColorCorrection id="b"><SatNode><Saturation>1</Saturation></SatNode></ColorCorrection></ColorDecision></ColorDecisionList>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := asc.NewRegistry(asc.PolicyLenient)
			_, err := Parse(reg, []byte(tt.data), "bad.cdl")
			if !errors.Is(err, errors.ErrStructural) {
				t.Errorf("error = %v, want ErrStructural", err)
			}
			if reg.Len() != 0 {
				t.Errorf("failed parse left %v registered", reg.IDs())
			}
		})
	}
}

func TestWrite(t *testing.T) {
	reg := asc.NewRegistry(asc.PolicyStrict)
	target, _ := reg.NewColorCorrection("target", "")
	target.SetSat(1.2)
	held, _ := reg.NewColorCorrection("held", "")
	held.SetSat(0.5)

	col := asc.NewColorCollection(reg, asc.ModeDecisions)
	first := asc.NewColorDecision(held)
	first.MediaRef = asc.NewMediaRef("/plates/held.0001.exr")
	col.Append(
		first,
		asc.NewColorDecisionRef(asc.NewColorCorrectionRef(reg, "held")),
		asc.NewColorDecisionRef(asc.NewColorCorrectionRef(reg, "target")),
	)

	got, err := Write(col)
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	want := `<?xml version="1.0" encoding="UTF-8"?>
<ColorDecisionList xmlns="urn:ASC:CDL:v1.01">
    <ColorDecision>
        <MediaRef ref="/plates/held.0001.exr"/>
        <ColorCorrection id="held">
            <SATNode>
                <Saturation>0.5</Saturation>
            </SATNode>
        </ColorCorrection>
    </ColorDecision>
    <ColorDecision>
        <ColorCorrectionRef ref="held"/>
    </ColorDecision>
    <ColorDecision>
        <ColorCorrection id="target">
            <SATNode>
                <Saturation>1.2</Saturation>
            </SATNode>
        </ColorCorrection>
    </ColorDecision>
</ColorDecisionList>
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Write() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCorrections(t *testing.T) {
	reg := asc.NewRegistry(asc.PolicyLenient)
	col := asc.NewColorCollection(reg, asc.ModeCorrections)
	for _, id := range []string{"a", "b"} {
		cc, _ := reg.NewColorCorrection(id, "")
		cc.SetSlope(2)
		col.Append(cc)
	}
	got, err := Write(col)
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if n := strings.Count(string(got), "<ColorDecision>"); n != 2 {
		t.Errorf("wrote %d decisions, want 2:\n%s", n, got)
	}
	if _, err := Write(nil); err == nil {
		t.Error("Write(nil) succeeded")
	}
}

func TestRoundTrip(t *testing.T) {
	reg := asc.NewRegistry(asc.PolicyLenient)
	col, err := Parse(reg, []byte(sample), "day3.cdl")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "day3.cdl")
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
