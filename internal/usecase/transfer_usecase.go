package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/banklink/banklink/internal/domain"
	"github.com/banklink/banklink/internal/infrastructure/metrics"
)

// TransferUseCase orchestrates every balance-mutating operation: deposits,
// withdrawals, internal transfers, outbound external transfers and received
// external transfers. Balance writes and movement writes always share one
// transaction; the only step outside the transactional store is the gateway
// notification, which is recovered through compensation instead of rollback.
type TransferUseCase struct {
	txManager    TransactionManager
	retrier      Retrier
	accountRepo  AccountRepository
	transferRepo TransferRepository
	movementRepo MovementRepository
	bankRepo     BankRepository
	gateway      BankGateway
	idGen        IDGenerator
	cfg          TransferConfig
}

// TransferConfig holds orchestrator settings.
type TransferConfig struct {
	// OriginBankName is the label sent to counterpart institutions.
	OriginBankName string
	// GatewayTimeout bounds the external bank call.
	GatewayTimeout time.Duration
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	retrier Retrier,
	accountRepo AccountRepository,
	transferRepo TransferRepository,
	movementRepo MovementRepository,
	bankRepo BankRepository,
	gateway BankGateway,
	idGen IDGenerator,
	cfg TransferConfig,
) *TransferUseCase {
	if cfg.OriginBankName == "" {
		cfg.OriginBankName = "BankLink"
	}
	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = 30 * time.Second
	}

	return &TransferUseCase{
		txManager:    txManager,
		retrier:      retrier,
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
		movementRepo: movementRepo,
		bankRepo:     bankRepo,
		gateway:      gateway,
		idGen:        idGen,
		cfg:          cfg,
	}
}

// OperationResult is the outcome of a single-account operation.
type OperationResult struct {
	Account  *domain.Account
	Movement *domain.Movement
}

// DepositInput represents input for a deposit.
type DepositInput struct {
	AccountID   string
	Amount      decimal.Decimal
	Description string
}

// Deposit credits an account and records the matching movement atomically.
func (uc *TransferUseCase) Deposit(ctx context.Context, input DepositInput) (*OperationResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var result *OperationResult

	err := uc.retrier.Retry(ctx, func() error {
		res, err := uc.applySingle(ctx, input.AccountID, domain.MovementDeposit, input.Amount, orDefault(input.Description, "Deposit"))
		if err != nil {
			return err
		}

		result = res

		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.DepositsTotal.Inc()

	return result, nil
}

// WithdrawInput represents input for a withdrawal.
type WithdrawInput struct {
	AccountID   string
	Amount      decimal.Decimal
	Description string
}

// Withdraw debits an account and records the matching movement atomically.
// Fails with ErrInsufficientFunds before anything is written.
func (uc *TransferUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*OperationResult, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var result *OperationResult

	err := uc.retrier.Retry(ctx, func() error {
		res, err := uc.applySingle(ctx, input.AccountID, domain.MovementWithdrawal, input.Amount, orDefault(input.Description, "Withdrawal"))
		if err != nil {
			return err
		}

		result = res

		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.WithdrawalsTotal.Inc()

	return result, nil
}

// applySingle runs a one-account credit or debit as one unit of work.
func (uc *TransferUseCase) applySingle(ctx context.Context, accountID string, kind domain.MovementKind, amount decimal.Decimal, description string) (*OperationResult, error) {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	if err := account.ValidateActive(); err != nil {
		return nil, err
	}

	var newBalance decimal.Decimal
	if kind.IsCredit() {
		newBalance = account.ApplyCredit(amount)
	} else {
		if err := account.ValidateDebit(amount); err != nil {
			return nil, err
		}

		newBalance = account.ApplyDebit(amount)
	}

	movement, err := uc.appendMovement(ctx, tx, account.ID, kind, amount, description, nil, now)
	if err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	account.Balance = newBalance
	account.UpdatedAt = now

	return &OperationResult{Account: account, Movement: movement}, nil
}

// TransferInput represents input for an internal transfer.
type TransferInput struct {
	FromAccountID     string
	DestinationNumber string
	Amount            decimal.Decimal
	Description       string
}

// Transfer moves funds between two local accounts. Both balance writes,
// both movements and the transfer record commit or roll back together; no
// partial state is ever observable.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.Transfer, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	// Resolve the destination id up front so both rows can be locked in
	// sorted order (deadlock prevention). State is re-read under lock.
	destination, err := uc.accountRepo.GetByNumber(ctx, input.DestinationNumber)
	if err != nil {
		return nil, err
	}

	if destination.ID == input.FromAccountID {
		return nil, domain.ErrSameAccount
	}

	var transfer *domain.Transfer

	err = uc.retrier.Retry(ctx, func() error {
		t, err := uc.transferInternal(ctx, input, destination.ID)
		if err != nil {
			return err
		}

		transfer = t

		return nil
	})
	if err != nil {
		metrics.TransferErrors.WithLabelValues("internal").Inc()
		return nil, err
	}

	metrics.TransfersCreated.WithLabelValues("internal").Inc()

	return transfer, nil
}

func (uc *TransferUseCase) transferInternal(ctx context.Context, input TransferInput, destinationID string) (*domain.Transfer, error) {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := []string{input.FromAccountID, destinationID}
	sort.Strings(ids)

	locked := make(map[string]*domain.Account, 2)
	for _, id := range ids {
		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return nil, err
		}

		locked[id] = account
	}

	origin := locked[input.FromAccountID]
	destination := locked[destinationID]

	if err := origin.ValidateActive(); err != nil {
		return nil, err
	}

	if err := origin.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	if err := destination.ValidateActive(); err != nil {
		return nil, err
	}

	transfer := &domain.Transfer{
		ID:                uc.idGen.Generate(),
		FromAccountID:     &origin.ID,
		ToAccountID:       &destination.ID,
		DestinationNumber: destination.Number,
		Amount:            input.Amount,
		Kind:              domain.TransferInternal,
		Status:            domain.TransferCompleted,
		Description:       input.Description,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	if err := uc.transferRepo.Create(ctx, tx, transfer); err != nil {
		return nil, err
	}

	sentDesc := fmt.Sprintf("Transfer to account %s. %s", destination.Number, input.Description)
	if _, err := uc.appendMovement(ctx, tx, origin.ID, domain.MovementTransferSent, input.Amount, sentDesc, &transfer.ID, now); err != nil {
		return nil, err
	}

	receivedDesc := fmt.Sprintf("Transfer from account %s. %s", origin.Number, input.Description)
	if _, err := uc.appendMovement(ctx, tx, destination.ID, domain.MovementTransferReceived, input.Amount, receivedDesc, &transfer.ID, now); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, origin.ID, origin.ApplyDebit(input.Amount), now); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, destination.ID, destination.ApplyCredit(input.Amount), now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return transfer, nil
}

// ExternalTransferInput represents input for an outbound external transfer.
type ExternalTransferInput struct {
	FromAccountID     string
	BankID            string
	DestinationNumber string
	Amount            decimal.Decimal
	Description       string
}

// TransferExternal sends funds to an account at a counterpart bank.
//
// The local debit, its movement and a pending transfer record commit first,
// so no database lock spans the network call. The gateway is then notified
// with a bounded timeout; on success the transfer completes, on any failure
// the debit is compensated with an equal credit and the transfer is marked
// failed. A gateway failure is reported through the returned transfer's
// status, not as an error.
//
// Once the debit commits the operation always runs to a terminal status;
// there is no caller-facing cancellation of an in-flight transfer.
func (uc *TransferUseCase) TransferExternal(ctx context.Context, input ExternalTransferInput) (*domain.Transfer, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	bank, err := uc.bankRepo.GetByID(ctx, input.BankID)
	if err != nil {
		return nil, err
	}

	if err := bank.ValidateActive(); err != nil {
		return nil, err
	}

	var transfer *domain.Transfer

	err = uc.retrier.Retry(ctx, func() error {
		t, err := uc.debitForExternal(ctx, input, bank)
		if err != nil {
			return err
		}

		transfer = t

		return nil
	})
	if err != nil {
		metrics.TransferErrors.WithLabelValues("external").Inc()
		return nil, err
	}

	// The debit is committed: from here the operation must reach a terminal
	// status even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	externalRef, gatewayErr := uc.notifyBank(ctx, bank, GatewayNotification{
		DestinationNumber: input.DestinationNumber,
		Amount:            input.Amount,
		Description:       input.Description,
		OriginBank:        uc.cfg.OriginBankName,
		SentAt:            time.Now().UTC(),
	})

	err = uc.retrier.Retry(ctx, func() error {
		t, err := uc.resolveExternal(ctx, transfer.ID, externalRef, gatewayErr)
		if err != nil {
			return err
		}

		transfer = t

		return nil
	})
	if err != nil {
		return nil, err
	}

	if transfer.Status == domain.TransferCompleted {
		metrics.TransfersCreated.WithLabelValues("external").Inc()
	} else {
		metrics.TransferCompensations.Inc()
	}

	return transfer, nil
}

// debitForExternal commits the local side of an outbound transfer: debit,
// sent movement and a pending transfer record, as one unit of work.
func (uc *TransferUseCase) debitForExternal(ctx context.Context, input ExternalTransferInput, bank *domain.ExternalBank) (*domain.Transfer, error) {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	origin, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.FromAccountID)
	if err != nil {
		return nil, err
	}

	if err := origin.ValidateActive(); err != nil {
		return nil, err
	}

	if err := origin.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	transfer := &domain.Transfer{
		ID:                uc.idGen.Generate(),
		FromAccountID:     &origin.ID,
		BankID:            &bank.ID,
		DestinationNumber: input.DestinationNumber,
		Amount:            input.Amount,
		Kind:              domain.TransferExternal,
		Status:            domain.TransferPending,
		Description:       input.Description,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	if err := uc.transferRepo.Create(ctx, tx, transfer); err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("External transfer to %s account %s. %s", bank.Name, input.DestinationNumber, input.Description)
	if _, err := uc.appendMovement(ctx, tx, origin.ID, domain.MovementTransferSent, input.Amount, desc, &transfer.ID, now); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, origin.ID, origin.ApplyDebit(input.Amount), now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return transfer, nil
}

// notifyBank calls the gateway with a bounded timeout. A panic inside the
// client is converted to an error so the compensation path always runs.
func (uc *TransferUseCase) notifyBank(ctx context.Context, bank *domain.ExternalBank, notification GatewayNotification) (ref string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic in gateway: %v", domain.ErrGatewayFailure, r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.GatewayTimeout)
	defer cancel()

	return uc.gateway.SendTransfer(ctx, bank, notification)
}

// resolveExternal finishes a pending external transfer: completed with the
// counterpart's reference, or failed with the debit credited back. Both
// outcomes commit in one unit of work against the locked transfer row.
func (uc *TransferUseCase) resolveExternal(ctx context.Context, transferID, externalRef string, gatewayErr error) (*domain.Transfer, error) {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	transfer, err := uc.transferRepo.GetByIDForUpdate(ctx, tx, transferID)
	if err != nil {
		return nil, err
	}

	// Nothing else moves a pending transfer to a terminal status, so one
	// here means the row was mutated outside the orchestrator. On gateway
	// success the counterpart has credited funds this ledger no longer
	// accounts for; that must not pass silently.
	if transfer.IsTerminal() {
		if gatewayErr == nil {
			log.Error().
				Str("transfer_id", transfer.ID).
				Str("status", string(transfer.Status)).
				Str("external_ref", externalRef).
				Msg("counterpart accepted a transfer already resolved locally")
			metrics.TransferInconsistencies.Inc()
		}

		return transfer, nil
	}

	if gatewayErr == nil {
		if err := uc.transferRepo.UpdateStatus(ctx, tx, transfer.ID, domain.TransferCompleted, &externalRef, now); err != nil {
			return nil, err
		}

		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}

		transfer.Status = domain.TransferCompleted
		transfer.ExternalRef = &externalRef
		transfer.UpdatedAt = now

		return transfer, nil
	}

	log.Warn().
		Err(gatewayErr).
		Str("transfer_id", transfer.ID).
		Msg("external gateway failed, compensating debit")

	if err := uc.compensate(ctx, tx, transfer, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	transfer.Status = domain.TransferFailed
	transfer.UpdatedAt = now

	return transfer, nil
}

// compensate credits the debited amount back to the origin account and
// marks the transfer failed, inside the caller's transaction.
func (uc *TransferUseCase) compensate(ctx context.Context, tx Transaction, transfer *domain.Transfer, now time.Time) error {
	if !transfer.Status.CanTransitionTo(domain.TransferFailed) {
		return domain.ErrTransferNotPending
	}

	if transfer.FromAccountID == nil {
		return domain.ErrAccountNotFound
	}

	origin, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, *transfer.FromAccountID)
	if err != nil {
		return err
	}

	desc := fmt.Sprintf("Reversal of external transfer %s", transfer.ID)
	if _, err := uc.appendMovement(ctx, tx, origin.ID, domain.MovementTransferReceived, transfer.Amount, desc, &transfer.ID, now); err != nil {
		return err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, origin.ID, origin.ApplyCredit(transfer.Amount), now); err != nil {
		return err
	}

	return uc.transferRepo.UpdateStatus(ctx, tx, transfer.ID, domain.TransferFailed, nil, now)
}

// ReceiveExternalInput represents an inbound transfer from another bank.
type ReceiveExternalInput struct {
	DestinationNumber string
	OriginBank        string
	OriginNumber      string
	ExternalRef       string
	Amount            decimal.Decimal
	Description       string
}

// ReceiveExternal credits a local account with funds announced by a
// counterpart bank, as one unit of work.
func (uc *TransferUseCase) ReceiveExternal(ctx context.Context, input ReceiveExternalInput) (*domain.Transfer, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var transfer *domain.Transfer

	err := uc.retrier.Retry(ctx, func() error {
		t, err := uc.receiveExternal(ctx, input)
		if err != nil {
			return err
		}

		transfer = t

		return nil
	})
	if err != nil {
		metrics.TransferErrors.WithLabelValues("received").Inc()
		return nil, err
	}

	metrics.TransfersCreated.WithLabelValues("received").Inc()

	return transfer, nil
}

func (uc *TransferUseCase) receiveExternal(ctx context.Context, input ReceiveExternalInput) (*domain.Transfer, error) {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	destination, err := uc.accountRepo.GetByNumberForUpdate(ctx, tx, input.DestinationNumber)
	if err != nil {
		return nil, err
	}

	if err := destination.ValidateActive(); err != nil {
		return nil, err
	}

	var externalRef *string
	if input.ExternalRef != "" {
		externalRef = &input.ExternalRef
	}

	transfer := &domain.Transfer{
		ID:                uc.idGen.Generate(),
		ToAccountID:       &destination.ID,
		DestinationNumber: destination.Number,
		Amount:            input.Amount,
		Kind:              domain.TransferExternal,
		Status:            domain.TransferCompleted,
		ExternalRef:       externalRef,
		Description:       fmt.Sprintf("From %s. %s", input.OriginBank, input.Description),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	if err := uc.transferRepo.Create(ctx, tx, transfer); err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Transfer from %s account %s. %s", input.OriginBank, input.OriginNumber, input.Description)
	if _, err := uc.appendMovement(ctx, tx, destination.ID, domain.MovementTransferReceived, input.Amount, desc, &transfer.ID, now); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, destination.ID, destination.ApplyCredit(input.Amount), now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return transfer, nil
}

// GetTransfer retrieves a transfer by ID.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, id string) (*domain.Transfer, error) {
	return uc.transferRepo.GetByID(ctx, id)
}

// ListTransfersByAccountInput represents input for listing transfers.
type ListTransfersByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransfersByAccount lists transfers for an account, newest first.
func (uc *TransferUseCase) ListTransfersByAccount(ctx context.Context, input ListTransfersByAccountInput) ([]*domain.Transfer, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.transferRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}

func (uc *TransferUseCase) appendMovement(ctx context.Context, tx Transaction, accountID string, kind domain.MovementKind, amount decimal.Decimal, description string, transferID *string, now time.Time) (*domain.Movement, error) {
	movement := &domain.Movement{
		ID:          uc.idGen.Generate(),
		AccountID:   accountID,
		Kind:        kind,
		Amount:      amount,
		Description: description,
		TransferID:  transferID,
		CreatedAt:   now,
	}

	if err := movement.Validate(); err != nil {
		return nil, err
	}

	if err := uc.movementRepo.Create(ctx, tx, movement); err != nil {
		return nil, err
	}

	return movement, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
