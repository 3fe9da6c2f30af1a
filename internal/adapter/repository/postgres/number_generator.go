package postgres

import (
	"math/rand/v2"
	"strconv"
)

// AccountNumberGenerator produces random 8-digit account numbers.
// Candidates are not checked for uniqueness here; the unique constraint
// on accounts.number is the arbiter, and callers retry on collision.
type AccountNumberGenerator struct{}

// NewAccountNumberGenerator creates a new AccountNumberGenerator.
func NewAccountNumberGenerator() *AccountNumberGenerator {
	return &AccountNumberGenerator{}
}

// Generate returns a candidate account number.
func (g *AccountNumberGenerator) Generate() string {
	return strconv.Itoa(10000000 + rand.IntN(90000000))
}
