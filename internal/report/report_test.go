package report

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBuild_Balanced(t *testing.T) {
	out := calculator.Reconcile([]models.Contribution{
		{Participant: "Ann", Amount: dec("30")},
		{Participant: "Bob", Amount: dec("-30")},
	})

	r := FromOutcome(out)

	assert.Equal(t, []Line{{Participant: "Ann", Amount: "₪30.00"}, {Participant: "Bob", Amount: "₪-30.00"}}, r.Balances)
	assert.Empty(t, r.Warnings)
	assert.Equal(t, []string{"Bob pays Ann ₪30.00"}, r.Debts)

	want := "Balances:\nAnn: ₪30.00\nBob: ₪-30.00\n\nDebts:\nBob pays Ann ₪30.00\n"
	assert.Equal(t, want, r.Text())
}

func TestBuild_Empty(t *testing.T) {
	r := FromOutcome(calculator.Reconcile(nil))

	assert.Empty(t, r.Balances)
	assert.Empty(t, r.Warnings)
	assert.Empty(t, r.Debts)
	assert.Equal(t, "Balances:\n\nDebts:\nNothing to settle.\n", r.Text())
}

func TestBuild_WarnsOnImbalanceAndResidual(t *testing.T) {
	out := calculator.Reconcile([]models.Contribution{
		{Participant: "Ann", Amount: dec("10")},
		{Participant: "Bob", Amount: dec("-9.99")},
	})

	r := FromOutcome(out, WithCurrency("$"))

	require.Len(t, r.Warnings, 2)
	assert.Equal(t, "Warning: the total of all balances is $0.01, not zero.", r.Warnings[0])
	assert.Equal(t, "Ann (creditor) is left with $0.01 unsettled.", r.Warnings[1])
	assert.Equal(t, []string{"Bob pays Ann $9.99"}, r.Debts)
	assert.Contains(t, r.Text(), "\nWarnings:\n")
}

func TestBuild_SubUnitDriftIsNotWarned(t *testing.T) {
	balances := models.Balances{
		{Participant: "Ann", Amount: dec("10.004")},
		{Participant: "Bob", Amount: dec("-10")},
	}

	r := Build(balances, models.Plan{}, balances.Total())

	assert.Empty(t, r.Warnings)
	assert.Equal(t, "₪10.00", r.Balances[0].Amount)
}

func TestBuild_Options(t *testing.T) {
	balances := models.Balances{{Participant: "Ann", Amount: dec("7")}, {Participant: "Bob", Amount: dec("-7")}}
	plan := models.Plan{Instructions: []models.Instruction{{Payer: "Bob", Payee: "Ann", Amount: dec("7")}}}

	r := Build(balances, plan, decimal.Zero, WithLabels(HebrewLabels), WithPrecision(0), WithCurrency(""))

	assert.Equal(t, []string{"Bob חייב ל-Ann 7"}, r.Debts)

	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Contains(t, buf.String(), "יתרות:\n")
	assert.Contains(t, buf.String(), "חובות:\n")
}

func TestLabelsFor(t *testing.T) {
	assert.Equal(t, HebrewLabels, LabelsFor("he"))
	assert.Equal(t, EnglishLabels, LabelsFor("en"))
	assert.Equal(t, EnglishLabels, LabelsFor(""))
}

func TestBuild_LocalizedRoles(t *testing.T) {
	plan := models.Plan{Unsettled: []models.Residual{
		{Participant: "Ann", Role: models.RoleCreditor, Remaining: dec("2")},
		{Participant: "Bob", Role: models.RoleDebtor, Remaining: dec("1")},
	}}

	tests := []struct {
		name   string
		labels Labels
		want   []string
	}{
		{
			name:   "hebrew",
			labels: HebrewLabels,
			want:   []string{"Ann (זכאי) נותר עם 2.00 שלא הוסדרו.", "Bob (חייב) נותר עם 1.00 שלא הוסדרו."},
		},
		{
			name:   "custom set without role names",
			labels: Labels{Unsettled: "%s/%s/%s"},
			want:   []string{"Ann/creditor/2.00", "Bob/debtor/1.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Build(nil, plan, decimal.Zero, WithLabels(tt.labels), WithCurrency(""))
			assert.Equal(t, tt.want, r.Warnings)
		})
	}
}
