package calculator

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mmynk/settleup/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func contrib(name, amount string) models.Contribution {
	return models.Contribution{Participant: name, Amount: dec(amount)}
}

func party(name, magnitude string) models.Party {
	return models.Party{Participant: name, Magnitude: dec(magnitude)}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, label ...string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s want %s, got %s", strings.Join(label, " "), want, got)
}

// applyPlan replays instructions against the starting magnitudes and returns
// what each party still has outstanding.
func applyPlan(creditors, debtors []models.Party, instructions []models.Instruction) map[string]decimal.Decimal {
	remaining := make(map[string]decimal.Decimal)
	for _, c := range creditors {
		remaining[c.Participant] = c.Magnitude
	}
	for _, d := range debtors {
		remaining[d.Participant] = d.Magnitude
	}
	for _, in := range instructions {
		remaining[in.Payer] = remaining[in.Payer].Sub(in.Amount)
		remaining[in.Payee] = remaining[in.Payee].Sub(in.Amount)
	}
	return remaining
}
