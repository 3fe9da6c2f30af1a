package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferKind distinguishes transfers between two local accounts from
// transfers involving an external bank.
type TransferKind string

const (
	TransferInternal TransferKind = "internal"
	TransferExternal TransferKind = "external"
)

// TransferStatus is the state of a transfer. Transitions are monotonic:
// pending may move to completed, failed or cancelled; those are terminal.
type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferCompleted TransferStatus = "completed"
	TransferFailed    TransferStatus = "failed"
	TransferCancelled TransferStatus = "cancelled"
)

// CanTransitionTo reports whether the status may move to next.
func (s TransferStatus) CanTransitionTo(next TransferStatus) bool {
	if s != TransferPending {
		return false
	}
	switch next {
	case TransferCompleted, TransferFailed, TransferCancelled:
		return true
	}
	return false
}

// Transfer records one money movement. An internal transfer references two
// local accounts; an external transfer references the origin account plus a
// bank and a destination account number at that bank. A received external
// transfer carries only the credited local account.
type Transfer struct {
	ID                string
	FromAccountID     *string
	ToAccountID       *string
	BankID            *string
	DestinationNumber string
	Amount            decimal.Decimal
	Kind              TransferKind
	Status            TransferStatus
	ExternalRef       *string
	Description       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate checks the structural invariants of a transfer.
func (t *Transfer) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	switch t.Kind {
	case TransferInternal:
		if t.FromAccountID == nil || t.ToAccountID == nil {
			return ErrAccountNotFound
		}
		if *t.FromAccountID == *t.ToAccountID {
			return ErrSameAccount
		}
	case TransferExternal:
		if t.FromAccountID == nil && t.ToAccountID == nil {
			return ErrAccountNotFound
		}
	default:
		return ErrInvalidTransferKind
	}
	return nil
}

// IsTerminal reports whether the transfer reached a final status.
func (t *Transfer) IsTerminal() bool {
	return t.Status != TransferPending
}
