package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

// Aggregate reduces contributions into one net balance per participant.
// Balances are returned in order of each participant's first appearance.
// Participants without contributions never appear.
func Aggregate(contributions []models.Contribution) models.Balances {
	index := make(map[string]int)
	balances := models.Balances{}

	for _, c := range contributions {
		name := models.NormalizeName(c.Participant)
		i, exists := index[name]
		if !exists {
			i = len(balances)
			index[name] = i
			balances = append(balances, models.Balance{Participant: name, Amount: decimal.Zero})
		}
		balances[i].Amount = balances[i].Amount.Add(c.Amount)
	}

	return balances
}

// Classify partitions balances into creditors (owed money) and debtors (owe money).
// Debtor magnitudes are negated so both lists hold positive amounts.
// A participant with a balance of exactly zero lands in neither list.
func Classify(balances models.Balances) (creditors, debtors []models.Party) {
	creditors = []models.Party{}
	debtors = []models.Party{}

	for _, bal := range balances {
		switch bal.Amount.Sign() {
		case 1:
			creditors = append(creditors, models.Party{Participant: bal.Participant, Magnitude: bal.Amount})
		case -1:
			debtors = append(debtors, models.Party{Participant: bal.Participant, Magnitude: bal.Amount.Neg()})
		}
	}

	return creditors, debtors
}
