package calculator

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/models"
)

func TestSettle(t *testing.T) {
	tests := []struct {
		name      string
		creditors []models.Party
		debtors   []models.Party
		want      []models.Instruction
	}{
		{
			name:      "no parties",
			creditors: nil,
			debtors:   nil,
			want:      []models.Instruction{},
		},
		{
			name:      "no debtors",
			creditors: []models.Party{party("Ann", "10")},
			want:      []models.Instruction{},
		},
		{
			name:    "no creditors",
			debtors: []models.Party{party("Bob", "10")},
			want:    []models.Instruction{},
		},
		{
			name:      "exact pair",
			creditors: []models.Party{party("Ann", "30")},
			debtors:   []models.Party{party("Bob", "30")},
			want:      []models.Instruction{{Payer: "Bob", Payee: "Ann", Amount: dec("30")}},
		},
		{
			name:      "one creditor two debtors",
			creditors: []models.Party{party("Ann", "20")},
			debtors:   []models.Party{party("Bob", "10"), party("Cara", "10")},
			want: []models.Instruction{
				{Payer: "Bob", Payee: "Ann", Amount: dec("10")},
				{Payer: "Cara", Payee: "Ann", Amount: dec("10")},
			},
		},
		{
			name:      "one debtor two creditors",
			creditors: []models.Party{party("Ann", "10"), party("Bob", "5")},
			debtors:   []models.Party{party("Cara", "15")},
			want: []models.Instruction{
				{Payer: "Cara", Payee: "Ann", Amount: dec("10")},
				{Payer: "Cara", Payee: "Bob", Amount: dec("5")},
			},
		},
		{
			name:      "largest debtor pays largest creditor first",
			creditors: []models.Party{party("Ann", "5"), party("Bob", "25")},
			debtors:   []models.Party{party("Cara", "12"), party("Dan", "18")},
			want: []models.Instruction{
				{Payer: "Dan", Payee: "Bob", Amount: dec("18")},
				{Payer: "Cara", Payee: "Bob", Amount: dec("7")},
				{Payer: "Cara", Payee: "Ann", Amount: dec("5")},
			},
		},
		{
			name:      "ties keep input order",
			creditors: []models.Party{party("Zed", "10"), party("Amy", "10")},
			debtors:   []models.Party{party("Yan", "10"), party("Bea", "10")},
			want: []models.Instruction{
				{Payer: "Yan", Payee: "Zed", Amount: dec("10")},
				{Payer: "Bea", Payee: "Amy", Amount: dec("10")},
			},
		},
		{
			name:      "cents are matched exactly",
			creditors: []models.Party{party("Ann", "33.34"), party("Bob", "33.33")},
			debtors:   []models.Party{party("Cara", "66.67")},
			want: []models.Instruction{
				{Payer: "Cara", Payee: "Ann", Amount: dec("33.34")},
				{Payer: "Cara", Payee: "Bob", Amount: dec("33.33")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Settle(tt.creditors, tt.debtors)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].Payer, got[i].Payer, "instruction %d payer", i)
				assert.Equal(t, tt.want[i].Payee, got[i].Payee, "instruction %d payee", i)
				assert.True(t, tt.want[i].Amount.Equal(got[i].Amount), "instruction %d amount: want %s, got %s", i, tt.want[i].Amount, got[i].Amount)
			}
		})
	}
}

func TestPlan_DoesNotMutateInputs(t *testing.T) {
	creditors := []models.Party{party("Ann", "5"), party("Bob", "25")}
	debtors := []models.Party{party("Cara", "30")}

	NewEngine().Plan(creditors, debtors)

	assert.Equal(t, "Ann", creditors[0].Participant)
	assertDecimal(t, "5", creditors[0].Magnitude)
	assert.Equal(t, "Bob", creditors[1].Participant)
	assertDecimal(t, "25", creditors[1].Magnitude)
	assertDecimal(t, "30", debtors[0].Magnitude)
}

func TestPlan_ReportsResidualCreditor(t *testing.T) {
	plan := NewEngine().Plan(
		[]models.Party{party("Ann", "10")},
		[]models.Party{party("Bob", "9.99")},
	)

	require.Len(t, plan.Instructions, 1)
	assertDecimal(t, "9.99", plan.Instructions[0].Amount)
	require.Len(t, plan.Unsettled, 1)
	assert.Equal(t, "Ann", plan.Unsettled[0].Participant)
	assert.Equal(t, models.RoleCreditor, plan.Unsettled[0].Role)
	assertDecimal(t, "0.01", plan.Unsettled[0].Remaining)
	assert.False(t, plan.Settled())
}

func TestPlan_ReportsResidualDebtor(t *testing.T) {
	plan := NewEngine().Plan(
		[]models.Party{party("Ann", "10")},
		[]models.Party{party("Bob", "8"), party("Cara", "7")},
	)

	require.Len(t, plan.Instructions, 2)
	assertDecimal(t, "8", plan.Instructions[0].Amount)
	assertDecimal(t, "2", plan.Instructions[1].Amount)
	require.Len(t, plan.Unsettled, 1)
	assert.Equal(t, "Cara", plan.Unsettled[0].Participant)
	assert.Equal(t, models.RoleDebtor, plan.Unsettled[0].Role)
	assertDecimal(t, "5", plan.Unsettled[0].Remaining)
}

func TestPlan_DropsSubUnitDust(t *testing.T) {
	plan := NewEngine().Plan(
		[]models.Party{party("Ann", "10"), party("Dust", "0.004")},
		[]models.Party{party("Bob", "10.003")},
	)

	require.Len(t, plan.Instructions, 1)
	assert.Equal(t, "Ann", plan.Instructions[0].Payee)
	assertDecimal(t, "10", plan.Instructions[0].Amount)
	assert.True(t, plan.Settled())
}

func TestPlan_PrecisionOption(t *testing.T) {
	creditors := []models.Party{party("Ann", "10")}
	debtors := []models.Party{party("Bob", "9.6")}

	whole := NewEngine(WithPrecision(0)).Plan(creditors, debtors)
	assert.True(t, whole.Settled(), "0.4 rounds away at whole units")

	cents := NewEngine().Plan(creditors, debtors)
	assert.False(t, cents.Settled())
}

func TestPlan_Idempotent(t *testing.T) {
	creditors := []models.Party{party("Ann", "40"), party("Bob", "15.5"), party("Cara", "15.5")}
	debtors := []models.Party{party("Dan", "30"), party("Eve", "21"), party("Fay", "20")}

	engine := NewEngine()
	first := engine.Plan(creditors, debtors)
	second := engine.Plan(creditors, debtors)

	assert.Equal(t, first, second)
}

func TestPlan_ConservesBalancedTotals(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	engine := NewEngine()

	for round := 0; round < 100; round++ {
		creditors, debtors := randomBalancedParties(rng)
		plan := engine.Plan(creditors, debtors)

		require.True(t, plan.Settled(), "round %d left residuals: %+v", round, plan.Unsettled)

		paid := make(map[string]decimal.Decimal)
		received := make(map[string]decimal.Decimal)
		for _, in := range plan.Instructions {
			require.True(t, in.Amount.IsPositive(), "round %d emitted non-positive payment", round)
			paid[in.Payer] = paid[in.Payer].Add(in.Amount)
			received[in.Payee] = received[in.Payee].Add(in.Amount)
		}
		for _, d := range debtors {
			assert.True(t, d.Magnitude.Equal(paid[d.Participant]), "round %d: %s paid %s of %s", round, d.Participant, paid[d.Participant], d.Magnitude)
		}
		for _, c := range creditors {
			assert.True(t, c.Magnitude.Equal(received[c.Participant]), "round %d: %s received %s of %s", round, c.Participant, received[c.Participant], c.Magnitude)
		}
		for name, left := range applyPlan(creditors, debtors, plan.Instructions) {
			assert.True(t, left.IsZero(), "round %d: %s left with %s", round, name, left)
		}
	}
}

func TestPlan_NeverOverpays(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	engine := NewEngine()

	for round := 0; round < 100; round++ {
		creditors, debtors := randomBalancedParties(rng)
		// Skew the creditor side so totals differ.
		if len(creditors) > 0 {
			creditors[0].Magnitude = creditors[0].Magnitude.Add(decimal.New(rng.Int63n(5000), -2))
		}

		plan := engine.Plan(creditors, debtors)
		for name, left := range applyPlan(creditors, debtors, plan.Instructions) {
			assert.False(t, left.IsNegative(), "round %d: %s overpaid by %s", round, name, left.Neg())
		}
	}
}

// randomBalancedParties builds creditors and debtors whose totals match to the cent.
func randomBalancedParties(rng *rand.Rand) ([]models.Party, []models.Party) {
	var balances models.Balances
	total := decimal.Zero
	n := rng.Intn(10) + 1
	for i := 0; i < n; i++ {
		amount := decimal.New(rng.Int63n(20001)-10000, -2)
		balances = append(balances, models.Balance{Participant: string(rune('A' + i)), Amount: amount})
		total = total.Add(amount)
	}
	balances = append(balances, models.Balance{Participant: "Z", Amount: total.Neg()})
	return Classify(balances)
}
