package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banklink/banklink/internal/domain"
	"github.com/banklink/banklink/internal/infrastructure/metrics"
)

// maxNumberAttempts bounds account number generation retries. The unique
// constraint on the number column is the authoritative collision detector;
// there is no pre-check query.
const maxNumberAttempts = 5

// AccountUseCase handles account lifecycle operations. Balances are never
// mutated here after opening; that is the transfer orchestrator's job.
type AccountUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	movementRepo MovementRepository
	customerRepo CustomerRepository
	idGen        IDGenerator
	numberGen    NumberGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	movementRepo MovementRepository,
	customerRepo CustomerRepository,
	idGen IDGenerator,
	numberGen NumberGenerator,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		customerRepo: customerRepo,
		idGen:        idGen,
		numberGen:    numberGen,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	CustomerID     string
	Type           domain.AccountType
	InitialBalance decimal.Decimal
}

// CreateAccount creates a new active account with a generated unique
// 8-digit number. On a number collision the insert is retried with a fresh
// candidate, up to maxNumberAttempts. A non-zero initial balance is
// recorded as an opening deposit movement in the same unit of work, so the
// movement log always reconciles with the stored balance.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if !input.Type.IsValid() {
		return nil, domain.ErrInvalidAccountType
	}

	if input.InitialBalance.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	if _, err := uc.customerRepo.GetByID(ctx, input.CustomerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:         uc.idGen.Generate(),
		Type:       input.Type,
		Balance:    input.InitialBalance,
		Status:     domain.AccountStatusActive,
		CustomerID: input.CustomerID,
		OpenedAt:   now,
		UpdatedAt:  now,
	}

	var err error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		account.Number = uc.numberGen.Generate()

		err = uc.createAccount(ctx, account, now)
		if err == nil {
			metrics.AccountsCreated.Inc()
			return account, nil
		}

		if !errors.Is(err, domain.ErrDuplicateNumber) {
			return nil, err
		}
	}

	return nil, err
}

func (uc *AccountUseCase) createAccount(ctx context.Context, account *domain.Account, now time.Time) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.CreateTx(ctx, tx, account); err != nil {
		return err
	}

	if account.Balance.IsPositive() {
		movement := &domain.Movement{
			ID:          uc.idGen.Generate(),
			AccountID:   account.ID,
			Kind:        domain.MovementDeposit,
			Amount:      account.Balance,
			Description: "Opening balance",
			CreatedAt:   now,
		}

		if err := uc.movementRepo.Create(ctx, tx, movement); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetAccountByNumber retrieves an account by its external-facing number.
func (uc *AccountUseCase) GetAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if err := domain.ValidateAccountNumber(number); err != nil {
		return nil, err
	}

	return uc.accountRepo.GetByNumber(ctx, number)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.accountRepo.List(ctx, limit, offset)
}

// ListAccountsByCustomer lists a customer's accounts.
func (uc *AccountUseCase) ListAccountsByCustomer(ctx context.Context, customerID string) ([]*domain.Account, error) {
	return uc.accountRepo.ListByCustomer(ctx, customerID)
}

// SetAccountStatus moves an account to a new lifecycle state.
func (uc *AccountUseCase) SetAccountStatus(ctx context.Context, id string, status domain.AccountStatus) (*domain.Account, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidAccountStatus
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.accountRepo.UpdateStatus(ctx, id, status, now); err != nil {
		return nil, err
	}

	account.Status = status
	account.UpdatedAt = now

	return account, nil
}

// DeleteAccount deletes an account. Deletion is restricted: the balance
// must be zero and no movements may reference the account.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id string) error {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !account.Balance.IsZero() {
		return domain.ErrBalanceNotZero
	}

	count, err := uc.movementRepo.CountByAccount(ctx, id)
	if err != nil {
		return err
	}

	if count > 0 {
		return domain.ErrAccountHasMovements
	}

	return uc.accountRepo.Delete(ctx, id)
}
