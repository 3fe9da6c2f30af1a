package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind encodes the direction of a balance change. Amounts are
// always positive; the kind carries the sign.
type MovementKind string

const (
	MovementDeposit          MovementKind = "deposit"
	MovementWithdrawal       MovementKind = "withdrawal"
	MovementTransferSent     MovementKind = "transfer_sent"
	MovementTransferReceived MovementKind = "transfer_received"
)

// IsValid checks if the kind is known.
func (k MovementKind) IsValid() bool {
	switch k {
	case MovementDeposit, MovementWithdrawal, MovementTransferSent, MovementTransferReceived:
		return true
	}
	return false
}

// IsCredit reports whether the kind increases the account balance.
func (k MovementKind) IsCredit() bool {
	return k == MovementDeposit || k == MovementTransferReceived
}

// Movement is an immutable audit record of one balance-affecting event.
// Every committed balance change has exactly one movement; an internal
// transfer produces one per side.
type Movement struct {
	ID          string
	AccountID   string
	Kind        MovementKind
	Amount      decimal.Decimal
	Description string
	TransferID  *string
	CreatedAt   time.Time
}

// Validate checks the movement invariants before it is written.
func (m *Movement) Validate() error {
	if !m.Kind.IsValid() {
		return ErrInvalidMovementKind
	}
	if m.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// SignedAmount returns the amount with the sign implied by the kind,
// as used when re-deriving a balance from the log.
func (m *Movement) SignedAmount() decimal.Decimal {
	if m.Kind.IsCredit() {
		return m.Amount
	}
	return m.Amount.Neg()
}
