package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account.
type AccountType string

const (
	AccountTypeSavings  AccountType = "savings"
	AccountTypeChecking AccountType = "checking"
)

// IsValid checks if the account type is known.
func (t AccountType) IsValid() bool {
	return t == AccountTypeSavings || t == AccountTypeChecking
}

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusInactive  AccountStatus = "inactive"
	AccountStatusSuspended AccountStatus = "suspended"
	AccountStatusBlocked   AccountStatus = "blocked"
)

// IsValid checks if the status is a known lifecycle state.
func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusActive, AccountStatusInactive, AccountStatusSuspended, AccountStatusBlocked:
		return true
	}
	return false
}

// Account represents a customer account holding a balance.
// The balance changes only through the transfer orchestrator and is never
// negative at a committed state.
type Account struct {
	ID         string
	Number     string
	Type       AccountType
	Balance    decimal.Decimal
	Status     AccountStatus
	CustomerID string
	OpenedAt   time.Time
	UpdatedAt  time.Time
}

// ValidateActive checks that the account may take part in operations.
func (a *Account) ValidateActive() error {
	if a.Status != AccountStatusActive {
		return ErrAccountNotActive
	}
	return nil
}

// ValidateDebit checks if the account can be debited by amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.Sub(amount).IsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns the balance after a debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}
