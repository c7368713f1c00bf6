package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

// Outcome is everything a front end needs to present one reconciliation.
type Outcome struct {
	Balances  models.Balances
	Total     decimal.Decimal
	Creditors []models.Party
	Debtors   []models.Party
	Plan      models.Plan

	// Imbalanced is set when the total is off zero by at least one minor unit.
	Imbalanced bool
}

// Reconcile aggregates, classifies and settles a snapshot of contributions.
func (e *Engine) Reconcile(contributions []models.Contribution) Outcome {
	balances := Aggregate(contributions)
	total := balances.Total()
	creditors, debtors := Classify(balances)

	return Outcome{
		Balances:   balances,
		Total:      total,
		Creditors:  creditors,
		Debtors:    debtors,
		Plan:       e.Plan(creditors, debtors),
		Imbalanced: e.tol.Imbalanced(total),
	}
}

// Reconcile runs the full pipeline with a new engine built from opts.
func Reconcile(contributions []models.Contribution, opts ...Option) Outcome {
	return NewEngine(opts...).Reconcile(contributions)
}
