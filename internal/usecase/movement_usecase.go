package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banklink/banklink/internal/domain"
)

// MovementUseCase exposes read access to the append-only movement log.
// Movements are written only by the transfer orchestrator; the single
// mutation allowed here is a description correction.
type MovementUseCase struct {
	movementRepo MovementRepository
	accountRepo  AccountRepository
}

// NewMovementUseCase creates a new MovementUseCase.
func NewMovementUseCase(movementRepo MovementRepository, accountRepo AccountRepository) *MovementUseCase {
	return &MovementUseCase{
		movementRepo: movementRepo,
		accountRepo:  accountRepo,
	}
}

// GetMovement retrieves a movement by ID.
func (uc *MovementUseCase) GetMovement(ctx context.Context, id string) (*domain.Movement, error) {
	return uc.movementRepo.GetByID(ctx, id)
}

// ListMovementsInput represents input for listing an account's movements.
type ListMovementsInput struct {
	AccountID string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// ListMovementsByAccount lists an account's movements newest first,
// optionally restricted to a date range.
func (uc *MovementUseCase) ListMovementsByAccount(ctx context.Context, input ListMovementsInput) ([]*domain.Movement, error) {
	if _, err := uc.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.movementRepo.ListByAccount(ctx, input.AccountID, MovementFilter{
		From:   input.From,
		To:     input.To,
		Limit:  limit,
		Offset: offset,
	})
}

// ComputeBalance independently re-derives an account's balance from the
// log: deposits and received transfers count as credits, withdrawals and
// sent transfers as debits.
func (uc *MovementUseCase) ComputeBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return decimal.Zero, err
	}

	return uc.movementRepo.SumByAccount(ctx, accountID)
}

// CorrectDescription updates the free-text description of a movement. The
// financial fields are immutable.
func (uc *MovementUseCase) CorrectDescription(ctx context.Context, id, description string) (*domain.Movement, error) {
	movement, err := uc.movementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.movementRepo.UpdateDescription(ctx, id, description); err != nil {
		return nil, err
	}

	movement.Description = description

	return movement, nil
}
