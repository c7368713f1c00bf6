package models

import "github.com/shopspring/decimal"

// Balance is the net signed amount owed to (positive) or by (negative) a participant.
type Balance struct {
	Participant string          `json:"participant"`
	Amount      decimal.Decimal `json:"amount"`
}

// Balances holds one entry per participant in order of first appearance.
type Balances []Balance

// Get returns the balance for a participant and whether it exists.
func (b Balances) Get(participant string) (decimal.Decimal, bool) {
	for _, bal := range b {
		if bal.Participant == participant {
			return bal.Amount, true
		}
	}
	return decimal.Zero, false
}

// Total sums every balance. It should be zero for a consistent ledger.
func (b Balances) Total() decimal.Decimal {
	total := decimal.Zero
	for _, bal := range b {
		total = total.Add(bal.Amount)
	}
	return total
}

// Map returns the balances keyed by participant.
func (b Balances) Map() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(b))
	for _, bal := range b {
		m[bal.Participant] = bal.Amount
	}
	return m
}
