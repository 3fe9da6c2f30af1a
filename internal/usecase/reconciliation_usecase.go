package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banklink/banklink/internal/domain"
	"github.com/banklink/banklink/internal/infrastructure/metrics"
)

// ReconciliationUseCase cross-checks stored account balances against the
// movement log. After every committed operation the two must agree.
type ReconciliationUseCase struct {
	accountRepo  AccountRepository
	movementRepo MovementRepository
}

// NewReconciliationUseCase creates a new reconciliation use case.
func NewReconciliationUseCase(accountRepo AccountRepository, movementRepo MovementRepository) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
	}
}

// ReconciliationResult represents the result of a reconciliation check.
type ReconciliationResult struct {
	AccountID         string
	AccountNumber     string
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	IsReconciled      bool
	CheckedAt         time.Time
}

// ReconcileAccount compares one account's stored balance with the balance
// re-derived from its movements. Opening balances are recorded as deposit
// movements, so a healthy account always reconciles exactly.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, accountID string) (*ReconciliationResult, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	calculated, err := uc.movementRepo.SumByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	difference := account.Balance.Sub(calculated)

	result := &ReconciliationResult{
		AccountID:         account.ID,
		AccountNumber:     account.Number,
		RecordedBalance:   account.Balance,
		CalculatedBalance: calculated,
		Difference:        difference,
		IsReconciled:      difference.IsZero(),
		CheckedAt:         time.Now().UTC(),
	}

	if !result.IsReconciled {
		metrics.ReconciliationMismatches.Inc()
	}

	return result, nil
}

// ReconciliationReport represents a ledger-wide reconciliation sweep.
type ReconciliationReport struct {
	TotalAccounts      int
	ReconciledAccounts int
	Discrepancies      []*ReconciliationResult
	CheckedAt          time.Time
}

// ReconcileAll sweeps every account and reports the discrepancies.
func (uc *ReconciliationUseCase) ReconcileAll(ctx context.Context) (*ReconciliationReport, error) {
	limit, offset := domain.ValidatePagination(1000, 0)

	report := &ReconciliationReport{
		Discrepancies: make([]*ReconciliationResult, 0),
		CheckedAt:     time.Now().UTC(),
	}

	for {
		accounts, err := uc.accountRepo.List(ctx, limit, offset)
		if err != nil {
			return nil, err
		}

		for _, account := range accounts {
			result, err := uc.ReconcileAccount(ctx, account.ID)
			if err != nil {
				return nil, fmt.Errorf("reconcile account %s: %w", account.ID, err)
			}

			report.TotalAccounts++
			if result.IsReconciled {
				report.ReconciledAccounts++
			} else {
				report.Discrepancies = append(report.Discrepancies, result)
			}
		}

		if len(accounts) < limit {
			break
		}

		offset += limit
	}

	return report, nil
}
