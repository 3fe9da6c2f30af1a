package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/banklink/banklink/internal/domain"
	"github.com/banklink/banklink/internal/usecase"
)

const accountColumns = `id, number, type, balance, status, customer_id, opened_at, updated_at`

// AccountRepository implements account persistence.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, number, type, balance, status, customer_id, opened_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		account.ID,
		account.Number,
		account.Type,
		decimalToNumeric(account.Balance),
		account.Status,
		account.CustomerID,
		account.OpenedAt,
		account.UpdatedAt,
	)
	if isUniqueViolation(err, "accounts_number_key") {
		return domain.ErrDuplicateNumber
	}

	return err
}

// CreateTx inserts a new account within a transaction.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, number, type, balance, status, customer_id, opened_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := pgxTx(tx).Exec(ctx, query,
		account.ID,
		account.Number,
		account.Type,
		decimalToNumeric(account.Balance),
		account.Status,
		account.CustomerID,
		account.OpenedAt,
		account.UpdatedAt,
	)
	if isUniqueViolation(err, "accounts_number_key") {
		return domain.ErrDuplicateNumber
	}

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	return scanAccount(r.pool.QueryRow(ctx, query, id))
}

// GetByNumber retrieves an account by its number.
func (r *AccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE number = $1`

	return scanAccount(r.pool.QueryRow(ctx, query, number))
}

// GetByIDForUpdate retrieves an account by ID with a row lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`

	return scanAccount(pgxTx(tx).QueryRow(ctx, query, id))
}

// GetByNumberForUpdate retrieves an account by number with a row lock.
func (r *AccountRepository) GetByNumberForUpdate(ctx context.Context, tx usecase.Transaction, number string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE number = $1 FOR UPDATE`

	return scanAccount(pgxTx(tx).QueryRow(ctx, query, number))
}

// UpdateBalance sets the stored balance within a transaction.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE accounts SET balance = $2, updated_at = $3 WHERE id = $1`

	tag, err := pgxTx(tx).Exec(ctx, query, id, decimalToNumeric(balance), updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// UpdateStatus sets the account status.
func (r *AccountRepository) UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error {
	query := `UPDATE accounts SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// List retrieves accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY opened_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// ListByCustomer retrieves all accounts of a customer.
func (r *AccountRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE customer_id = $1
		ORDER BY opened_at DESC
	`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// CountByCustomer counts a customer's accounts.
func (r *AccountRepository) CountByCustomer(ctx context.Context, customerID string) (int64, error) {
	query := `SELECT COUNT(*) FROM accounts WHERE customer_id = $1`

	var count int64
	err := r.pool.QueryRow(ctx, query, customerID).Scan(&count)

	return count, err
}

// Delete removes an account.
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM accounts WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account domain.Account
		balance pgtype.Numeric
	)

	err := row.Scan(
		&account.ID,
		&account.Number,
		&account.Type,
		&balance,
		&account.Status,
		&account.CustomerID,
		&account.OpenedAt,
		&account.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	account.Balance = numericToDecimal(balance)

	return &account, nil
}

func scanAccounts(rows pgx.Rows) ([]*domain.Account, error) {
	var accounts []*domain.Account

	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}
