package calculator

import "github.com/shopspring/decimal"

// DefaultPrecision is the number of decimal places in one minor currency unit.
const DefaultPrecision int32 = 2

// Tolerance derives rounding thresholds from the ledger's currency precision.
type Tolerance struct {
	Precision int32
}

// MinorUnit returns the smallest currency unit, e.g. 0.01 for two places.
func (t Tolerance) MinorUnit() decimal.Decimal {
	return decimal.New(1, -t.Precision)
}

// IsZero reports whether d rounds to zero at the ledger precision.
func (t Tolerance) IsZero(d decimal.Decimal) bool {
	return d.Round(t.Precision).IsZero()
}

// Imbalanced reports whether a ledger total is off by at least one minor unit.
// Drift smaller than that is accepted.
func (t Tolerance) Imbalanced(total decimal.Decimal) bool {
	return total.Abs().GreaterThanOrEqual(t.MinorUnit())
}
