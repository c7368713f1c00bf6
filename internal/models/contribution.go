package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Contribution represents one signed cash movement.
// A positive amount means the participant paid more than their share and is
// owed money. A negative amount means they owe.
type Contribution struct {
	// ID is the unique identifier assigned by a session ledger (UUID format).
	// Empty for contributions that were never added to a ledger.
	ID string `json:"id,omitempty"`

	// Participant is the trimmed participant name.
	Participant string `json:"participant"`

	// Amount is the signed contribution.
	Amount decimal.Decimal `json:"amount"`
}

// NormalizeName trims surrounding whitespace from a participant name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}
