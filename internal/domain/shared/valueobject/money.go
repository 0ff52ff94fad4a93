package valueobject

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every formatted amount
const CurrencySymbol = "R$"

// Money is an immutable amount in Brazilian reais
type Money struct {
	amount decimal.Decimal
}

// NewMoneyBRL creates Money in BRL
func NewMoneyBRL(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// ZeroBRL returns a zero-value Money in BRL
func ZeroBRL() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns a new Money with the sum of both amounts
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// MultiplyByInt returns a new Money multiplied by an integer factor
func (m Money) MultiplyByInt(factor int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(factor))}
}

// Format renders the amount in Brazilian notation with the currency symbol,
// e.g. "R$ 1.234,56". Negative amounts are prefixed with "-".
func (m Money) Format() string {
	return CurrencySymbol + " " + FormatDecimalBR(m.amount, 2)
}

// FormatBRL is a shorthand for formatting a raw decimal as BRL
func FormatBRL(amount decimal.Decimal) string {
	return NewMoneyBRL(amount).Format()
}

// FormatDecimalBR renders d rounded half-up to places decimals with "." as the
// thousands separator and "," as the decimal separator.
func FormatDecimalBR(d decimal.Decimal, places int32) string {
	fixed := d.Abs().StringFixed(places)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if d.Round(places).IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}
