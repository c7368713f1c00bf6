// Package models defines the core domain models for settleup.
//
// # Models
//
//   - Contribution: one signed cash movement for a participant
//   - Balance: a participant's net amount after aggregation
//   - Party: a creditor or debtor with a positive magnitude
//   - Instruction: one directed payment from a debtor to a creditor
//   - Plan: the instructions of a settlement run plus any residual parties
//
// Participants are identified by name strings. Names are trimmed and compared
// case-sensitively; "ann" and "Ann" are two different people.
//
// All amounts use decimal.Decimal so that a payment equal to the smaller of two
// remaining magnitudes always leaves an exact zero behind.
package models
