package capsim

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Rate is the fractional return applied to the pot each week. A Rate of
// 0.25 grows the pot by 25% per week. It may be zero or negative.
type Rate struct {
	value decimal.Decimal
}

func R[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Rate {
	return Rate{value: newDecimal(value)}
}

// ParseRate parses a fractional rate like "0.25" or "-0.01".
func ParseRate(s string) (Rate, error) {
	value, err := decimal.NewFromString(s)
	if err != nil {
		return Rate{}, fmt.Errorf("invalid rate %q: %w", s, err)
	}
	return Rate{value: value}, nil
}

// RateFromFloat converts a float rate, rejecting non-finite values that
// would corrupt the decimal arithmetic.
func RateFromFloat(f float64) (Rate, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Rate{}, fmt.Errorf("%w: weekly rate must be finite, got %v", ErrInvalidParameter, f)
	}
	return Rate{value: decimal.NewFromFloat(f)}, nil
}

// Apply returns the profit m earns over one week at rate r.
func (r Rate) Apply(m Money) Money {
	return Money{value: m.value.Mul(r.value), cur: m.cur}
}

// AddOne returns 1+r, the weekly growth factor.
func (r Rate) AddOne() Rate { return Rate{value: r.value.Add(one)} }

var one = decimal.New(1, 0)

func (r Rate) Equal(s Rate) bool { return r.value.Equal(s.value) }
func (r Rate) IsZero() bool      { return r.value.IsZero() }
func (r Rate) IsNegative() bool  { return r.value.IsNegative() }

// Percent returns the rate as a display percentage (0.25 becomes 25%).
func (r Rate) Percent() Percent { return Percent(r.value.InexactFloat64() * 100) }

func (r Rate) String() string { return r.value.String() }

func (r Rate) MarshalJSON() ([]byte, error) {
	return r.value.MarshalJSON()
}

func (r *Rate) UnmarshalJSON(decimalBytes []byte) error {
	return r.value.UnmarshalJSON(decimalBytes)
}

// Percent is a display-only percentage value.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}
