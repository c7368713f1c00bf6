// Package ledger holds the contributions of one interactive session.
package ledger

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

var (
	ErrEmptyParticipant = errors.New("participant name is required")
	ErrNotFound         = errors.New("contribution not found")
)

// Ledger is an ordered, editable list of contributions.
// It is safe for concurrent use. Settlement runs should work on a Snapshot.
type Ledger struct {
	mu            sync.Mutex
	contributions []models.Contribution
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Add appends a contribution and returns it with its generated ID.
func (l *Ledger) Add(participant string, amount decimal.Decimal) (models.Contribution, error) {
	name := models.NormalizeName(participant)
	if name == "" {
		return models.Contribution{}, ErrEmptyParticipant
	}

	c := models.Contribution{
		ID:          uuid.New().String(),
		Participant: name,
		Amount:      amount,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.contributions = append(l.contributions, c)

	return c, nil
}

// Load appends a batch of contributions, assigning IDs where missing.
// Entries with an empty participant are rejected and nothing is added.
func (l *Ledger) Load(batch []models.Contribution) ([]models.Contribution, error) {
	added := make([]models.Contribution, 0, len(batch))
	for i, c := range batch {
		c.Participant = models.NormalizeName(c.Participant)
		if c.Participant == "" {
			return nil, fmt.Errorf("entry %d: %w", i+1, ErrEmptyParticipant)
		}
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		added = append(added, c)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.contributions = append(l.contributions, added...)

	return added, nil
}

// Remove deletes the contributions with the given IDs and returns how many
// were removed. If any ID is unknown the ledger is left untouched.
func (l *Ledger) Remove(ids ...string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	for id := range drop {
		if !slices.ContainsFunc(l.contributions, func(c models.Contribution) bool { return c.ID == id }) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
	}

	before := len(l.contributions)
	l.contributions = slices.DeleteFunc(l.contributions, func(c models.Contribution) bool {
		return drop[c.ID]
	})
	return before - len(l.contributions), nil
}

// Snapshot returns a copy of the current contributions in insertion order.
func (l *Ledger) Snapshot() []models.Contribution {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.contributions)
}

// Len returns the number of contributions.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.contributions)
}

// Clear drops every contribution and returns how many were removed.
func (l *Ledger) Clear() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.contributions)
	l.contributions = nil
	return n
}
