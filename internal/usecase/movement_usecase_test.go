package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banklink/banklink/internal/domain"
	"github.com/banklink/banklink/internal/usecase"
	"github.com/banklink/banklink/internal/usecase/mocks"
)

func TestListMovementsByAccount(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	movementRepo := mocks.NewMockMovementRepository()

	accountRepo.Seed(&domain.Account{ID: "acc-1", Number: "10000001", Status: domain.AccountStatusActive})

	now := time.Now().UTC()
	for i, age := range []time.Duration{48 * time.Hour, 24 * time.Hour, time.Hour} {
		err := movementRepo.Create(context.Background(), nil, &domain.Movement{
			ID:        "mov-" + string(rune('a'+i)),
			AccountID: "acc-1",
			Kind:      domain.MovementDeposit,
			Amount:    decimal.RequireFromString("10"),
			CreatedAt: now.Add(-age),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	uc := usecase.NewMovementUseCase(movementRepo, accountRepo)

	all, err := uc.ListMovementsByAccount(context.Background(), usecase.ListMovementsInput{AccountID: "acc-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 movements, got %d", len(all))
	}

	from := now.Add(-36 * time.Hour)
	recent, err := uc.ListMovementsByAccount(context.Background(), usecase.ListMovementsInput{
		AccountID: "acc-1",
		From:      &from,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("expected 2 movements in range, got %d", len(recent))
	}

	_, err = uc.ListMovementsByAccount(context.Background(), usecase.ListMovementsInput{AccountID: "missing"})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestComputeBalance(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	movementRepo := mocks.NewMockMovementRepository()

	accountRepo.Seed(&domain.Account{ID: "acc-1", Number: "10000001", Status: domain.AccountStatusActive})

	entries := []struct {
		kind   domain.MovementKind
		amount string
	}{
		{domain.MovementDeposit, "100.00"},
		{domain.MovementWithdrawal, "30.00"},
		{domain.MovementTransferReceived, "20.00"},
		{domain.MovementTransferSent, "15.00"},
	}
	for i, e := range entries {
		err := movementRepo.Create(context.Background(), nil, &domain.Movement{
			ID:        "mov-" + string(rune('a'+i)),
			AccountID: "acc-1",
			Kind:      e.kind,
			Amount:    decimal.RequireFromString(e.amount),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	uc := usecase.NewMovementUseCase(movementRepo, accountRepo)

	balance, err := uc.ComputeBalance(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if balance.String() != "75" {
		t.Errorf("expected 75, got %s", balance)
	}
}

func TestCorrectDescription(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	movementRepo := mocks.NewMockMovementRepository()

	err := movementRepo.Create(context.Background(), nil, &domain.Movement{
		ID:          "mov-1",
		AccountID:   "acc-1",
		Kind:        domain.MovementDeposit,
		Amount:      decimal.RequireFromString("10"),
		Description: "typo",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uc := usecase.NewMovementUseCase(movementRepo, accountRepo)

	movement, err := uc.CorrectDescription(context.Background(), "mov-1", "fixed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if movement.Description != "fixed" {
		t.Errorf("expected corrected description, got %q", movement.Description)
	}

	// Financial fields stay untouched.
	stored, _ := movementRepo.GetByID(context.Background(), "mov-1")
	if stored.Amount.String() != "10" || stored.Kind != domain.MovementDeposit {
		t.Errorf("financial fields changed: %+v", stored)
	}

	if _, err := uc.CorrectDescription(context.Background(), "missing", "x"); !errors.Is(err, domain.ErrMovementNotFound) {
		t.Errorf("expected ErrMovementNotFound, got %v", err)
	}
}
