package models

import "github.com/shopspring/decimal"

// Role tells whether a party is owed money or owes money.
type Role string

const (
	RoleCreditor Role = "creditor"
	RoleDebtor   Role = "debtor"
)

// Party is a creditor or debtor entry. Magnitude is always positive.
type Party struct {
	Participant string          `json:"participant"`
	Magnitude   decimal.Decimal `json:"magnitude"`
}

// Instruction is one directed payment that reduces a debtor's and a creditor's
// outstanding magnitude by the same amount.
type Instruction struct {
	// Payer is the debtor settling up.
	Payer string `json:"payer"`

	// Payee is the creditor being paid.
	Payee string `json:"payee"`

	// Amount is the payment, always positive.
	Amount decimal.Decimal `json:"amount"`
}

// Residual is a party left with a nonzero remaining magnitude after a
// settlement run. It only happens when creditor and debtor totals differ.
type Residual struct {
	Participant string          `json:"participant"`
	Role        Role            `json:"role"`
	Remaining   decimal.Decimal `json:"remaining"`
}

// Plan is the output of a settlement run.
type Plan struct {
	// Instructions are listed in emission order.
	Instructions []Instruction `json:"instructions"`

	// Unsettled lists parties the run could not fully settle.
	Unsettled []Residual `json:"unsettled,omitempty"`
}

// Settled reports whether every party was fully settled.
func (p Plan) Settled() bool {
	return len(p.Unsettled) == 0
}
