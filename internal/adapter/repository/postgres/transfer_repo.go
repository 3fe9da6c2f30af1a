package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/banklink/banklink/internal/domain"
	"github.com/banklink/banklink/internal/usecase"
)

const transferColumns = `id, from_account_id, to_account_id, bank_id, destination_number, amount, kind, status, external_ref, description, created_at, updated_at`

// TransferRepository implements transfer persistence.
type TransferRepository struct {
	pool *pgxpool.Pool
}

// NewTransferRepository creates a new transfer repository.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{pool: pool}
}

// Create inserts a transfer within a transaction.
func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	query := `
		INSERT INTO transfers (id, from_account_id, to_account_id, bank_id, destination_number, amount, kind, status, external_ref, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := pgxTx(tx).Exec(ctx, query,
		transfer.ID,
		transfer.FromAccountID,
		transfer.ToAccountID,
		transfer.BankID,
		transfer.DestinationNumber,
		decimalToNumeric(transfer.Amount),
		transfer.Kind,
		transfer.Status,
		transfer.ExternalRef,
		transfer.Description,
		transfer.CreatedAt,
		transfer.UpdatedAt,
	)

	return err
}

// GetByID retrieves a transfer by ID.
func (r *TransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`

	return scanTransfer(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves a transfer by ID with a row lock, so the
// status check and the status write of a resolution commit as one.
func (r *TransferRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1 FOR UPDATE`

	return scanTransfer(pgxTx(tx).QueryRow(ctx, query, id))
}

// UpdateStatus records a status transition within a transaction. A nil
// externalRef leaves the stored reference untouched.
func (r *TransferRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransferStatus, externalRef *string, updatedAt time.Time) error {
	query := `
		UPDATE transfers
		SET status = $2, external_ref = COALESCE($3, external_ref), updated_at = $4
		WHERE id = $1
	`

	tag, err := pgxTx(tx).Exec(ctx, query, id, status, externalRef, updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransferNotFound
	}

	return nil
}

// ListByAccount retrieves transfers touching an account, newest first.
func (r *TransferRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers
		WHERE from_account_id = $1 OR to_account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*domain.Transfer
	for rows.Next() {
		transfer, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}

		transfers = append(transfers, transfer)
	}

	return transfers, rows.Err()
}

// CountPendingByBank counts pending transfers routed through a bank.
func (r *TransferRepository) CountPendingByBank(ctx context.Context, bankID string) (int64, error) {
	query := `SELECT COUNT(*) FROM transfers WHERE bank_id = $1 AND status = $2`

	var count int64
	err := r.pool.QueryRow(ctx, query, bankID, domain.TransferPending).Scan(&count)

	return count, err
}

func scanTransfer(row pgx.Row) (*domain.Transfer, error) {
	var (
		transfer domain.Transfer
		amount   pgtype.Numeric
	)

	err := row.Scan(
		&transfer.ID,
		&transfer.FromAccountID,
		&transfer.ToAccountID,
		&transfer.BankID,
		&transfer.DestinationNumber,
		&amount,
		&transfer.Kind,
		&transfer.Status,
		&transfer.ExternalRef,
		&transfer.Description,
		&transfer.CreatedAt,
		&transfer.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransferNotFound
	}
	if err != nil {
		return nil, err
	}

	transfer.Amount = numericToDecimal(amount)

	return &transfer, nil
}
