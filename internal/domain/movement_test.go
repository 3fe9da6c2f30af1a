package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMovementKindIsCredit(t *testing.T) {
	for kind, want := range map[MovementKind]bool{
		MovementDeposit:          true,
		MovementTransferReceived: true,
		MovementWithdrawal:       false,
		MovementTransferSent:     false,
	} {
		if kind.IsCredit() != want {
			t.Errorf("%s: expected credit=%v", kind, want)
		}
	}
}

func TestMovementValidate(t *testing.T) {
	tests := []struct {
		name     string
		movement Movement
		wantErr  error
	}{
		{
			name:     "valid",
			movement: Movement{Kind: MovementDeposit, Amount: decimal.RequireFromString("10")},
		},
		{
			name:     "unknown kind",
			movement: Movement{Kind: MovementKind("fee"), Amount: decimal.RequireFromString("10")},
			wantErr:  ErrInvalidMovementKind,
		},
		{
			name:     "zero amount",
			movement: Movement{Kind: MovementDeposit, Amount: decimal.Zero},
			wantErr:  ErrInvalidAmount,
		},
		{
			name:     "negative amount",
			movement: Movement{Kind: MovementDeposit, Amount: decimal.RequireFromString("-1")},
			wantErr:  ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.movement.Validate(); err != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMovementSignedAmount(t *testing.T) {
	amount := decimal.RequireFromString("25.50")

	credit := Movement{Kind: MovementTransferReceived, Amount: amount}
	if !credit.SignedAmount().Equal(amount) {
		t.Errorf("expected %s, got %s", amount, credit.SignedAmount())
	}

	debit := Movement{Kind: MovementWithdrawal, Amount: amount}
	if !debit.SignedAmount().Equal(amount.Neg()) {
		t.Errorf("expected %s, got %s", amount.Neg(), debit.SignedAmount())
	}
}
