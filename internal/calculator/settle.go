package calculator

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

// Engine matches debtors to creditors. It holds no state between runs.
type Engine struct {
	tol Tolerance
}

// Option configures an Engine.
type Option func(*Engine)

// WithPrecision sets the number of decimal places in one minor currency unit.
func WithPrecision(places int32) Option {
	return func(e *Engine) {
		if places >= 0 {
			e.tol.Precision = places
		}
	}
}

// NewEngine creates an Engine. The default precision is two decimal places.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{tol: Tolerance{Precision: DefaultPrecision}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tolerance returns the rounding thresholds the engine works with.
func (e *Engine) Tolerance() Tolerance {
	return e.tol
}

// Settle runs the default engine and returns only the payment instructions.
func Settle(creditors, debtors []models.Party) []models.Instruction {
	return NewEngine().Plan(creditors, debtors).Instructions
}

type entry struct {
	name      string
	remaining decimal.Decimal
}

// Plan greedily settles debtors against creditors, largest first.
//
// Both lists are sorted by magnitude descending; ties keep input order. The
// debtor at the head of the queue pays each creditor in turn
// min(debtor remaining, creditor remaining) until the debtor is settled.
// Creditors are dropped as soon as they are fully paid. A debtor that still
// owes after the scan goes back to the tail of the queue. The run ends when
// either side is empty; anything left over is reported in Plan.Unsettled.
//
// The inputs are never modified.
func (e *Engine) Plan(creditors, debtors []models.Party) models.Plan {
	creditorList := e.sorted(creditors)
	debtorQueue := e.sorted(debtors)
	plan := models.Plan{Instructions: []models.Instruction{}}

	for len(debtorQueue) > 0 && len(creditorList) > 0 {
		debtor := debtorQueue[0]
		debtorQueue = debtorQueue[1:]

		for i := 0; i < len(creditorList) && !e.tol.IsZero(debtor.remaining); {
			creditor := &creditorList[i]

			payment := decimal.Min(debtor.remaining, creditor.remaining)
			if payment.IsPositive() {
				plan.Instructions = append(plan.Instructions, models.Instruction{
					Payer:  debtor.name,
					Payee:  creditor.name,
					Amount: payment,
				})
				debtor.remaining = debtor.remaining.Sub(payment)
				creditor.remaining = creditor.remaining.Sub(payment)
			}

			if e.tol.IsZero(creditor.remaining) {
				creditorList = slices.Delete(creditorList, i, i+1)
				continue
			}
			i++
		}

		if !e.tol.IsZero(debtor.remaining) {
			debtorQueue = append(debtorQueue, debtor)
		}
	}

	for _, d := range debtorQueue {
		plan.Unsettled = append(plan.Unsettled, models.Residual{
			Participant: d.name,
			Role:        models.RoleDebtor,
			Remaining:   d.remaining,
		})
	}
	for _, c := range creditorList {
		plan.Unsettled = append(plan.Unsettled, models.Residual{
			Participant: c.name,
			Role:        models.RoleCreditor,
			Remaining:   c.remaining,
		})
	}

	return plan
}

// sorted copies parties with a non-negligible magnitude, largest first.
func (e *Engine) sorted(parties []models.Party) []entry {
	list := make([]entry, 0, len(parties))
	for _, p := range parties {
		if !p.Magnitude.IsPositive() || e.tol.IsZero(p.Magnitude) {
			continue
		}
		list = append(list, entry{name: p.Participant, remaining: p.Magnitude})
	}
	slices.SortStableFunc(list, func(a, b entry) int {
		return b.remaining.Cmp(a.remaining)
	})
	return list
}
