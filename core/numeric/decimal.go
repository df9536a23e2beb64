// Package numeric converts CDL values to exact decimals and formats them deterministically.
package numeric

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FocuswithJustin/cdlconvert/core/errors"
)

// Common values used as channel defaults.
var (
	Zero = decimal.Zero
	One  = decimal.NewFromInt(1)
)

// Triple holds one value per color channel, in R, G, B order.
type Triple [3]decimal.Decimal

// Uniform returns a Triple with the same value on every channel.
func Uniform(d decimal.Decimal) Triple {
	return Triple{d, d, d}
}

// ToDecimal converts an integer, float, numeric string or decimal to a decimal.
// Strings keep the precision they are written with; floats use their shortest
// round-tripping representation.
func ToDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int32:
		return decimal.NewFromInt32(n), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case float32:
		if math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
			return decimal.Zero, errors.NewValue("", fmt.Sprint(n), nil)
		}
		return decimal.NewFromFloat32(n), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, errors.NewValue("", fmt.Sprint(n), nil)
		}
		return decimal.NewFromFloat(n), nil
	case string:
		s := strings.TrimSpace(n)
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, errors.NewValue("", n, err)
		}
		return d, nil
	default:
		return decimal.Zero, errors.NewValue("", fmt.Sprintf("%v", v), fmt.Errorf("unsupported type %T", v))
	}
}

// ParseField converts a value like ToDecimal and names the field in any error.
func ParseField(field string, v any) (decimal.Decimal, error) {
	d, err := ToDecimal(v)
	if err != nil {
		var ve *errors.ValueError
		if errors.As(err, &ve) {
			ve.Field = field
		}
		return decimal.Zero, err
	}
	return d, nil
}

// ToTriple converts one value (copied to every channel) or exactly three values.
func ToTriple(field string, values ...any) (Triple, error) {
	switch len(values) {
	case 1:
		d, err := ParseField(field, values[0])
		if err != nil {
			return Triple{}, err
		}
		return Uniform(d), nil
	case 3:
		var t Triple
		for i, v := range values {
			d, err := ParseField(field, v)
			if err != nil {
				return Triple{}, err
			}
			t[i] = d
		}
		return t, nil
	default:
		return Triple{}, errors.NewInvalidValue(field, fmt.Sprint(values),
			fmt.Sprintf("expected 1 or 3 values, got %d", len(values)))
	}
}

// StringsToTriple converts exactly three tokens, as found in SOP text fields.
func StringsToTriple(field string, tokens []string) (Triple, error) {
	values := make([]any, len(tokens))
	for i, tok := range tokens {
		values[i] = tok
	}
	if len(values) != 3 {
		return Triple{}, errors.NewInvalidValue(field, strings.Join(tokens, " "),
			fmt.Sprintf("expected 3 values, got %d", len(tokens)))
	}
	return ToTriple(field, values...)
}

// Format renders a decimal without exponent notation or trailing zeros.
func Format(d decimal.Decimal) string {
	return d.String()
}

// Strings formats each channel.
func (t Triple) Strings() []string {
	return []string{Format(t[0]), Format(t[1]), Format(t[2])}
}

// String joins the channels with single spaces, as written in SOP text fields.
func (t Triple) String() string {
	return strings.Join(t.Strings(), " ")
}

// Equal reports whether every channel is numerically equal.
func (t Triple) Equal(o Triple) bool {
	return t[0].Equal(o[0]) && t[1].Equal(o[1]) && t[2].Equal(o[2])
}

// MustDecimal parses a literal and panics on failure. Intended for constants and tests.
func MustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
