package ale

import (
	"strings"
	"testing"

	"github.com/FocuswithJustin/cdlconvert/core/asc"
	"github.com/FocuswithJustin/cdlconvert/core/errors"
	"github.com/FocuswithJustin/cdlconvert/core/numeric"
)

const header = "Heading\n" +
	"FIELD_DELIM\tTABS\n" +
	"VIDEO_FORMAT\t1080\n" +
	"FPS\t24\n" +
	"\n" +
	"Column\n" +
	"Name\tStart\tEnd\tASC_SAT\tASC_SOP\tScan Filename\n" +
	"\n" +
	"Data\n"

func TestParse(t *testing.T) {
	data := header +
		"A001C003\t01:00:00:00\t01:00:10:00\t0.9\t(1.4 1.9 1.7)(-0.1 -0.26 -0.20)(0.87 1.0 1.32)\tA001C003_140215_R1\n" +
		"A001C004\t01:00:10:00\t01:00:20:00\t1.2\t(1 1 1)(0 0 0)(1 1 1)\t\n" +
		"\n"

	reg := asc.NewRegistry(asc.PolicyStrict)
	col, err := Parse(reg, []byte(data), "reel1.ale")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if col.Mode() != asc.ModeCorrections || col.FileIn != "reel1.ale" {
		t.Errorf("collection mode %v file %q", col.Mode(), col.FileIn)
	}
	ccs := col.Corrections()
	if len(ccs) != 2 {
		t.Fatalf("Parse returned %d corrections, want 2", len(ccs))
	}

	first := ccs[0]
	if first.ID() != "A001C003_140215_R1" {
		t.Errorf("first id = %q, want the scan filename", first.ID())
	}
	if got := first.Slope().String(); got != "1.4 1.9 1.7" {
		t.Errorf("slope = %q", got)
	}
	if got := first.Offset().String(); got != "-0.1 -0.26 -0.2" {
		t.Errorf("offset = %q", got)
	}
	if got := first.Power().String(); got != "0.87 1 1.32" {
		t.Errorf("power = %q", got)
	}
	if got := numeric.Format(first.Sat()); got != "0.9" {
		t.Errorf("sat = %q", got)
	}
	if first.FileIn != "reel1.ale" {
		t.Errorf("FileIn = %q", first.FileIn)
	}

	if ccs[1].ID() != "A001C004" {
		t.Errorf("second id = %q, want the Name fallback", ccs[1].ID())
	}
}

func TestParseSeparateColumns(t *testing.T) {
	data := "Column\n" +
		"name\tasc_slope\tasc_offset\tasc_power\n" +
		"Data\n" +
		"shot_010\t1.1 1.2 1.3\t0 0 0.01\t1 1 1\n"

	col, err := Parse(asc.NewRegistry(asc.PolicyLenient), []byte(data), "")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	cc := col.Corrections()[0]
	if cc.ID() != "shot_010" || cc.Slope().String() != "1.1 1.2 1.3" || cc.Offset().String() != "0 0 0.01" {
		t.Errorf("parsed %s slope %s offset %s", cc.ID(), cc.Slope(), cc.Offset())
	}
	if cc.HasSAT() {
		t.Error("row without ASC_SAT has a SAT node")
	}
}

func TestParseRowWithoutCDL(t *testing.T) {
	data := header + "B002\t\t\t\t\tB002_scan\n"

	col, err := Parse(asc.NewRegistry(asc.PolicyStrict), []byte(data), "reel2.ale")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	cc := col.Corrections()[0]
	if cc.HasSOP() || cc.HasSAT() {
		t.Errorf("row without CDL cells produced nodes: sop=%v sat=%v", cc.HasSOP(), cc.HasSAT())
	}
	if got := cc.XML(); !strings.Contains(got, `<ColorCorrection id="B002_scan"/>`) {
		t.Errorf("XML() = %q", got)
	}
}

func TestParseDuplicateIDs(t *testing.T) {
	data := header +
		"A\t\t\t1\t\tsame\n" +
		"B\t\t\t1\t\tsame\n"

	if _, err := Parse(asc.NewRegistry(asc.PolicyStrict), []byte(data), ""); !errors.Is(err, errors.ErrDuplicateID) {
		t.Errorf("strict duplicate error = %v, want ErrDuplicateID", err)
	}

	col, err := Parse(asc.NewRegistry(asc.PolicyLenient), []byte(data), "")
	if err != nil {
		t.Fatalf("lenient Parse returned error: %v", err)
	}
	if got := strings.Join(col.IDs(), ","); got != "same,same001" {
		t.Errorf("ids = %s, want same,same001", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"data before column", "Data\nA\t1\n", errors.ErrStructural},
		{"short sop", header + "A\t\t\t1\t(1 1 1)(0 0 0)\tA\n", errors.ErrStructural},
		{"bad sat", header + "A\t\t\tgray\t\tA\n", errors.ErrValue},
		{"bad sop value", header + "A\t\t\t1\t(1 1 1)(0 zero 0)(1 1 1)\tA\n", errors.ErrValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := asc.NewRegistry(asc.PolicyLenient)
			_, err := Parse(reg, []byte(tt.data), "bad.ale")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if reg.Len() != 0 {
				t.Errorf("failed parse left %v registered", reg.IDs())
			}
		})
	}
}
