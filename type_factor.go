package pacing

import "github.com/shopspring/decimal"

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt32(int32(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}

}

// Factor is a dimensionless decimal scalar applied to monetary values:
// performance multiples (a 2.5x target MOIC), scenario factors (1.15),
// per-period pacing rates (0.08).
type Factor struct {
	value decimal.Decimal
}

func F[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Factor {
	return Factor{value: newDecimal(value)}
}

func (t Factor) Equal(p Factor) bool       { return t.value.Equal(p.value) }
func (t Factor) LessThan(p Factor) bool    { return t.value.LessThan(p.value) }
func (t Factor) GreaterThan(p Factor) bool { return t.value.GreaterThan(p.value) }
func (t Factor) Div(p Factor) Factor       { return Factor{value: t.value.Div(p.value)} }
func (t Factor) Mul(p Factor) Factor       { return Factor{value: t.value.Mul(p.value)} }
func (t Factor) Add(p Factor) Factor       { return Factor{value: t.value.Add(p.value)} }
func (t Factor) Sub(p Factor) Factor       { return Factor{value: t.value.Sub(p.value)} }
func (t Factor) IsNegative() bool          { return t.value.IsNegative() }
func (t Factor) IsPositive() bool          { return t.value.IsPositive() }
func (t Factor) IsZero() bool              { return t.value.IsZero() }
func (t Factor) String() string            { return t.value.String() + "x" }

// MarshalJSON implements the json.Marshaler interface.
func (t Factor) MarshalJSON() ([]byte, error) {
	return t.value.MarshalJSON()
}
func (t *Factor) UnmarshalJSON(decimalBytes []byte) error {
	return t.value.UnmarshalJSON(decimalBytes)
}
