package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/banklink/banklink/internal/domain"
	"github.com/banklink/banklink/internal/usecase"
)

const movementColumns = `id, account_id, kind, amount, description, transfer_id, created_at`

// MovementRepository implements the append-only movement log.
type MovementRepository struct {
	pool *pgxpool.Pool
}

// NewMovementRepository creates a new movement repository.
func NewMovementRepository(pool *pgxpool.Pool) *MovementRepository {
	return &MovementRepository{pool: pool}
}

// Create appends a movement within a transaction. Movements are only
// ever written alongside the balance change they record.
func (r *MovementRepository) Create(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error {
	query := `
		INSERT INTO movements (id, account_id, kind, amount, description, transfer_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := pgxTx(tx).Exec(ctx, query,
		movement.ID,
		movement.AccountID,
		movement.Kind,
		decimalToNumeric(movement.Amount),
		movement.Description,
		movement.TransferID,
		movement.CreatedAt,
	)

	return err
}

// GetByID retrieves a movement by ID.
func (r *MovementRepository) GetByID(ctx context.Context, id string) (*domain.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`

	return scanMovement(r.pool.QueryRow(ctx, query, id))
}

// ListByAccount retrieves an account's movements, newest first, optionally
// bounded by a time window.
func (r *MovementRepository) ListByAccount(ctx context.Context, accountID string, filter usecase.MovementFilter) ([]*domain.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE account_id = $1`
	args := []any{accountID}

	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}

	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND created_at < $%d", len(args))
	}

	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*domain.Movement
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}

		movements = append(movements, movement)
	}

	return movements, rows.Err()
}

// CountByAccount counts an account's movements.
func (r *MovementRepository) CountByAccount(ctx context.Context, accountID string) (int64, error) {
	query := `SELECT COUNT(*) FROM movements WHERE account_id = $1`

	var count int64
	err := r.pool.QueryRow(ctx, query, accountID).Scan(&count)

	return count, err
}

// SumByAccount derives the balance from the log: credits add, debits
// subtract.
func (r *MovementRepository) SumByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE WHEN kind IN ('deposit', 'transfer_received') THEN amount ELSE -amount END
		), 0)
		FROM movements
		WHERE account_id = $1
	`

	var sum pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&sum); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

// UpdateDescription corrects a movement's description. The financial
// fields are immutable.
func (r *MovementRepository) UpdateDescription(ctx context.Context, id, description string) error {
	query := `UPDATE movements SET description = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, description)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrMovementNotFound
	}

	return nil
}

func scanMovement(row pgx.Row) (*domain.Movement, error) {
	var (
		movement domain.Movement
		amount   pgtype.Numeric
	)

	err := row.Scan(
		&movement.ID,
		&movement.AccountID,
		&movement.Kind,
		&amount,
		&movement.Description,
		&movement.TransferID,
		&movement.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMovementNotFound
	}
	if err != nil {
		return nil, err
	}

	movement.Amount = numericToDecimal(amount)

	return &movement, nil
}
