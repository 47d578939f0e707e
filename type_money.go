package valutatrade

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a monetary value in one currency, kept as an exact decimal in
// major units. Formatting delegates to go-money's per-currency rules.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M builds a Money from a decimal amount and a currency code.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

// MFloat builds a Money from a float; test and display helper only, exact
// arithmetic must go through decimal values.
func MFloat(value float64, currency string) Money {
	return Money{value: decimal.NewFromFloat(value), cur: currency}
}

func (m Money) Currency() string            { return m.cur }
func (m Money) Amount() decimal.Decimal     { return m.value }
func (m Money) IsZero() bool                { return m.value.IsZero() }
func (m Money) IsNegative() bool            { return m.value.IsNegative() }
func (m Money) Equal(n Money) bool          { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) LessThan(n Money) bool       { return m.value.LessThan(n.value) }
func (m Money) Add(n Money) Money           { return Money{value: m.value.Add(n.value), cur: mergeCur(m, n)} }
func (m Money) Sub(n Money) Money           { return Money{value: m.value.Sub(n.value), cur: mergeCur(m, n)} }
func (m Money) Mul(q decimal.Decimal) Money { return Money{value: m.value.Mul(q), cur: m.cur} }

// mergeCur makes the "" currency totally weak so that the zero Money is a
// usable accumulator.
func mergeCur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}

// String renders the value with the currency's own formatting rules
// ("$1,234.56"), or as "<decimal> <CODE>" for codes go-money does not know
// (crypto codes mostly).
func (m Money) String() string {
	cur := money.GetCurrency(m.cur)
	if cur == nil {
		return m.value.String() + " " + m.cur
	}
	shifted := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(shifted.IntPart())
}

// MarshalJSON renders Money as {"amount": ..., "currency": "..."}.
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("amount", m.value)
	w.Optional("currency", m.cur)
	return w.MarshalJSON()
}
