// Package report formats a reconciliation for people to read.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
)

// Labels holds the user-facing strings of a report.
// Format strings receive already formatted amounts.
type Labels struct {
	Balances  string
	Warnings  string
	Debts     string
	NoDebts   string
	Payment   string // payer, payee, amount
	Imbalance string // total
	Unsettled string // participant, role, remaining
	Creditor  string // role name of a party that is owed money
	Debtor    string // role name of a party that owes money
}

// EnglishLabels is the default label set.
var EnglishLabels = Labels{
	Balances:  "Balances:",
	Warnings:  "Warnings:",
	Debts:     "Debts:",
	NoDebts:   "Nothing to settle.",
	Payment:   "%s pays %s %s",
	Imbalance: "Warning: the total of all balances is %s, not zero.",
	Unsettled: "%s (%s) is left with %s unsettled.",
	Creditor:  "creditor",
	Debtor:    "debtor",
}

// HebrewLabels is the Hebrew label set.
var HebrewLabels = Labels{
	Balances:  "יתרות:",
	Warnings:  "אזהרות:",
	Debts:     "חובות:",
	NoDebts:   "אין חובות.",
	Payment:   "%s חייב ל-%s %s",
	Imbalance: "אזהרה: היתרה הכוללת של הרווחים וההפסדים היא %s, שאינה 0.",
	Unsettled: "%s (%s) נותר עם %s שלא הוסדרו.",
	Creditor:  "זכאי",
	Debtor:    "חייב",
}

// role returns the label for r, or r itself when the set has none.
func (l Labels) role(r models.Role) string {
	switch {
	case r == models.RoleCreditor && l.Creditor != "":
		return l.Creditor
	case r == models.RoleDebtor && l.Debtor != "":
		return l.Debtor
	}
	return string(r)
}

type options struct {
	currency  string
	precision int32
	labels    Labels
}

// Option configures a report.
type Option func(*options)

// WithCurrency sets the symbol printed before every amount.
func WithCurrency(symbol string) Option {
	return func(o *options) { o.currency = symbol }
}

// WithPrecision sets the number of decimal places printed.
func WithPrecision(places int32) Option {
	return func(o *options) {
		if places >= 0 {
			o.precision = places
		}
	}
}

// WithLabels replaces the label set.
func WithLabels(l Labels) Option {
	return func(o *options) { o.labels = l }
}

// Line is one participant's formatted balance.
type Line struct {
	Participant string `json:"participant"`
	Amount      string `json:"amount"`
}

// Report is a formatted reconciliation.
type Report struct {
	Balances []Line   `json:"balances"`
	Warnings []string `json:"warnings,omitempty"`
	Debts    []string `json:"debts"`

	labels Labels
}

// Build formats balances, instructions and warnings.
// The imbalance warning is added when |total| reaches one minor unit.
func Build(balances models.Balances, plan models.Plan, total decimal.Decimal, opts ...Option) Report {
	o := options{currency: "₪", precision: calculator.DefaultPrecision, labels: EnglishLabels}
	for _, opt := range opts {
		opt(&o)
	}

	r := Report{
		Balances: make([]Line, 0, len(balances)),
		Debts:    make([]string, 0, len(plan.Instructions)),
		labels:   o.labels,
	}

	for _, bal := range balances {
		r.Balances = append(r.Balances, Line{Participant: bal.Participant, Amount: o.money(bal.Amount)})
	}

	if (calculator.Tolerance{Precision: o.precision}).Imbalanced(total) {
		r.Warnings = append(r.Warnings, fmt.Sprintf(o.labels.Imbalance, o.money(total)))
	}
	for _, res := range plan.Unsettled {
		r.Warnings = append(r.Warnings, fmt.Sprintf(o.labels.Unsettled, res.Participant, o.labels.role(res.Role), o.money(res.Remaining)))
	}

	for _, in := range plan.Instructions {
		r.Debts = append(r.Debts, fmt.Sprintf(o.labels.Payment, in.Payer, in.Payee, o.money(in.Amount)))
	}

	return r
}

// FromOutcome builds a report for a full reconciliation run.
func FromOutcome(out calculator.Outcome, opts ...Option) Report {
	return Build(out.Balances, out.Plan, out.Total, opts...)
}

// Text renders the report as plain text sections.
func (r Report) Text() string {
	labels := r.labels
	if labels == (Labels{}) {
		labels = EnglishLabels
	}

	var b strings.Builder
	b.WriteString(labels.Balances + "\n")
	for _, line := range r.Balances {
		fmt.Fprintf(&b, "%s: %s\n", line.Participant, line.Amount)
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n" + labels.Warnings + "\n")
		for _, w := range r.Warnings {
			b.WriteString(w + "\n")
		}
	}

	b.WriteString("\n" + labels.Debts + "\n")
	if len(r.Debts) == 0 {
		b.WriteString(labels.NoDebts + "\n")
	}
	for _, d := range r.Debts {
		b.WriteString(d + "\n")
	}

	return b.String()
}

// WriteTo writes the text rendering to w.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.Text())
	return int64(n), err
}

func (o options) money(d decimal.Decimal) string {
	return o.currency + d.StringFixed(o.precision)
}

// LabelsFor returns the label set for a language code, English by default.
func LabelsFor(lang string) Labels {
	if lang == "he" {
		return HebrewLabels
	}
	return EnglishLabels
}
