package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banklink/banklink/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	CreateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByNumberForUpdate(ctx context.Context, tx Transaction, number string) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Account, error)
	CountByCustomer(ctx context.Context, customerID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

// MovementFilter narrows movement listings.
type MovementFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// MovementRepository defines data access for the append-only movement log.
type MovementRepository interface {
	Create(ctx context.Context, tx Transaction, movement *domain.Movement) error
	GetByID(ctx context.Context, id string) (*domain.Movement, error)
	ListByAccount(ctx context.Context, accountID string, filter MovementFilter) ([]*domain.Movement, error)
	CountByAccount(ctx context.Context, accountID string) (int64, error)
	// SumByAccount re-derives the balance from the log: credits minus debits.
	SumByAccount(ctx context.Context, accountID string) (decimal.Decimal, error)
	UpdateDescription(ctx context.Context, id, description string) error
}

// TransferRepository defines data access for transfers.
type TransferRepository interface {
	Create(ctx context.Context, tx Transaction, transfer *domain.Transfer) error
	GetByID(ctx context.Context, id string) (*domain.Transfer, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Transfer, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.TransferStatus, externalRef *string, updatedAt time.Time) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transfer, error)
	CountPendingByBank(ctx context.Context, bankID string) (int64, error)
}

// BankRepository defines data access for external bank reference data.
type BankRepository interface {
	Create(ctx context.Context, bank *domain.ExternalBank) error
	GetByID(ctx context.Context, id string) (*domain.ExternalBank, error)
	GetByRoutingCode(ctx context.Context, code string) (*domain.ExternalBank, error)
	List(ctx context.Context, limit, offset int) ([]*domain.ExternalBank, error)
	Update(ctx context.Context, bank *domain.ExternalBank) error
	Delete(ctx context.Context, id string) error
}

// CustomerRepository defines data access for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient store errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// NumberGenerator produces candidate account numbers. Uniqueness is
// enforced by the store, not by the generator.
type NumberGenerator interface {
	Generate() string
}

// GatewayNotification is the payload sent to a counterpart bank.
type GatewayNotification struct {
	DestinationNumber string
	Amount            decimal.Decimal
	Description       string
	OriginBank        string
	SentAt            time.Time
}

// BankGateway notifies a counterpart institution of an outbound transfer.
// Implementations must be time-bounded; any failure is reported as an
// error, never swallowed.
type BankGateway interface {
	SendTransfer(ctx context.Context, bank *domain.ExternalBank, notification GatewayNotification) (externalRef string, err error)
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
