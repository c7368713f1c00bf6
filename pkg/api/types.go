// Package api defines the settleup.v1 ReconcileService wire contract.
//
// Messages are plain Go structs carried as JSON by the Connect protocol.
// Amounts are decimal strings (numbers are accepted on input).
package api

import "github.com/shopspring/decimal"

// Contribution is one signed cash movement. Positive: is owed. Negative: owes.
type Contribution struct {
	ID          string          `json:"id,omitempty"`
	Participant string          `json:"participant"`
	Amount      decimal.Decimal `json:"amount"`
}

// Balance is a participant's net amount.
type Balance struct {
	Participant string          `json:"participant"`
	Amount      decimal.Decimal `json:"amount"`
}

// Instruction is one payment from a debtor to a creditor.
type Instruction struct {
	Payer  string          `json:"payer"`
	Payee  string          `json:"payee"`
	Amount decimal.Decimal `json:"amount"`
}

// Residual is a party the run could not fully settle.
type Residual struct {
	Participant string          `json:"participant"`
	Role        string          `json:"role"`
	Remaining   decimal.Decimal `json:"remaining"`
}

type SettleRequest struct {
	Contributions []Contribution `json:"contributions"`
}

type SettleResponse struct {
	Balances     []Balance       `json:"balances"`
	Total        decimal.Decimal `json:"total"`
	Instructions []Instruction   `json:"instructions"`
	Unsettled    []Residual      `json:"unsettled,omitempty"`
	Warnings     []string        `json:"warnings,omitempty"`

	// Report is the plain-text rendering of the run.
	Report string `json:"report"`
}

type AddContributionRequest struct {
	Participant string          `json:"participant"`
	Amount      decimal.Decimal `json:"amount"`
}

type AddContributionResponse struct {
	Contribution Contribution `json:"contribution"`
}

type RemoveContributionsRequest struct {
	IDs []string `json:"ids"`
}

type RemoveContributionsResponse struct {
	Removed int `json:"removed"`
}

type ListContributionsRequest struct{}

type ListContributionsResponse struct {
	Contributions []Contribution `json:"contributions"`
}

type ClearLedgerRequest struct{}

type ClearLedgerResponse struct {
	Cleared int `json:"cleared"`
}

type ProcessLedgerRequest struct{}

type ImportTextRequest struct {
	Text string `json:"text"`
}

type ImportTextResponse struct {
	Added  []Contribution `json:"added"`
	Errors []string       `json:"errors,omitempty"`
}
