package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransferStatusTransitions(t *testing.T) {
	tests := []struct {
		from TransferStatus
		to   TransferStatus
		want bool
	}{
		{TransferPending, TransferCompleted, true},
		{TransferPending, TransferFailed, true},
		{TransferPending, TransferCancelled, true},
		{TransferPending, TransferPending, false},
		{TransferCompleted, TransferFailed, false},
		{TransferCompleted, TransferCancelled, false},
		{TransferFailed, TransferCompleted, false},
		{TransferCancelled, TransferCompleted, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s: expected %v, got %v", tt.from, tt.to, tt.want, got)
		}
	}
}

func TestTransferValidate(t *testing.T) {
	accA := "acc-a"
	accB := "acc-b"

	tests := []struct {
		name     string
		transfer Transfer
		wantErr  error
	}{
		{
			name: "valid internal",
			transfer: Transfer{
				FromAccountID: &accA,
				ToAccountID:   &accB,
				Amount:        decimal.RequireFromString("10"),
				Kind:          TransferInternal,
			},
		},
		{
			name: "internal to same account",
			transfer: Transfer{
				FromAccountID: &accA,
				ToAccountID:   &accA,
				Amount:        decimal.RequireFromString("10"),
				Kind:          TransferInternal,
			},
			wantErr: ErrSameAccount,
		},
		{
			name: "internal missing destination",
			transfer: Transfer{
				FromAccountID: &accA,
				Amount:        decimal.RequireFromString("10"),
				Kind:          TransferInternal,
			},
			wantErr: ErrAccountNotFound,
		},
		{
			name: "valid external outbound",
			transfer: Transfer{
				FromAccountID:     &accA,
				DestinationNumber: "87654321",
				Amount:            decimal.RequireFromString("10"),
				Kind:              TransferExternal,
			},
		},
		{
			name: "valid external inbound",
			transfer: Transfer{
				ToAccountID: &accB,
				Amount:      decimal.RequireFromString("10"),
				Kind:        TransferExternal,
			},
		},
		{
			name: "external with no account",
			transfer: Transfer{
				Amount: decimal.RequireFromString("10"),
				Kind:   TransferExternal,
			},
			wantErr: ErrAccountNotFound,
		},
		{
			name: "non-positive amount",
			transfer: Transfer{
				FromAccountID: &accA,
				ToAccountID:   &accB,
				Amount:        decimal.Zero,
				Kind:          TransferInternal,
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "unknown kind",
			transfer: Transfer{
				FromAccountID: &accA,
				Amount:        decimal.RequireFromString("10"),
				Kind:          TransferKind("wire"),
			},
			wantErr: ErrInvalidTransferKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transfer.Validate()
			if err != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTransferIsTerminal(t *testing.T) {
	for status, want := range map[TransferStatus]bool{
		TransferPending:   false,
		TransferCompleted: true,
		TransferFailed:    true,
		TransferCancelled: true,
	} {
		transfer := Transfer{Status: status}
		if transfer.IsTerminal() != want {
			t.Errorf("%s: expected terminal=%v", status, want)
		}
	}
}
