package base

import (
	"testing"

	"github.com/FocuswithJustin/cdlconvert/core/errors"
)

func TestParsePackedSOP(t *testing.T) {
	sop, err := ParsePackedSOP("ALE", "reel1.ale", " (1.4 1.9 1.7)(-0.1 -0.26 -0.20) ( 0.87 1.0 1.32 ) ")
	if err != nil {
		t.Fatalf("ParsePackedSOP returned error: %v", err)
	}
	if got := sop.Slope.String(); got != "1.4 1.9 1.7" {
		t.Errorf("Slope = %q", got)
	}
	if got := sop.Offset.String(); got != "-0.1 -0.26 -0.2" {
		t.Errorf("Offset = %q", got)
	}
	if got := sop.Power.String(); got != "0.87 1 1.32" {
		t.Errorf("Power = %q", got)
	}
}

func TestParsePackedSOPErrors(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr error
	}{
		{"empty", "", errors.ErrStructural},
		{"two groups", "(1 1 1)(0 0 0)", errors.ErrStructural},
		{"four groups", "(1 1 1)(0 0 0)(1 1 1)(1 1 1)", errors.ErrStructural},
		{"short group", "(1 1)(0 0 0)(1 1 1)", errors.ErrStructural},
		{"unbalanced", "(1 1 1(0 0 0)(1 1 1)", errors.ErrStructural},
		{"bad number", "(1 x 1)(0 0 0)(1 1 1)", errors.ErrValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePackedSOP("FLEx", "edl.flex", tt.text)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseTriple(t *testing.T) {
	got, err := ParseTriple("ALE", "", "slope", " 1.1\t1.2 1.3 ")
	if err != nil {
		t.Fatalf("ParseTriple returned error: %v", err)
	}
	if got.String() != "1.1 1.2 1.3" {
		t.Errorf("ParseTriple = %q", got.String())
	}
	if _, err := ParseTriple("ALE", "", "slope", "1 1"); !errors.Is(err, errors.ErrStructural) {
		t.Errorf("short triple error = %v, want ErrStructural", err)
	}
	if _, err := ParseTriple("ALE", "", "slope", "1 one 1"); !errors.Is(err, errors.ErrValue) {
		t.Errorf("bad triple error = %v, want ErrValue", err)
	}
}
