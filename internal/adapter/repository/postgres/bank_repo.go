package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/banklink/banklink/internal/domain"
)

const bankColumns = `id, name, routing_code, base_url, active, created_at, updated_at`

// BankRepository implements external bank reference data persistence.
type BankRepository struct {
	pool *pgxpool.Pool
}

// NewBankRepository creates a new bank repository.
func NewBankRepository(pool *pgxpool.Pool) *BankRepository {
	return &BankRepository{pool: pool}
}

// Create inserts a new external bank.
func (r *BankRepository) Create(ctx context.Context, bank *domain.ExternalBank) error {
	query := `
		INSERT INTO external_banks (id, name, routing_code, base_url, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		bank.ID,
		bank.Name,
		bank.RoutingCode,
		bank.BaseURL,
		bank.Active,
		bank.CreatedAt,
		bank.UpdatedAt,
	)
	if isUniqueViolation(err, "external_banks_routing_code_key") {
		return domain.ErrDuplicateRoutingCode
	}

	return err
}

// GetByID retrieves an external bank by ID.
func (r *BankRepository) GetByID(ctx context.Context, id string) (*domain.ExternalBank, error) {
	query := `SELECT ` + bankColumns + ` FROM external_banks WHERE id = $1`

	return scanBank(r.pool.QueryRow(ctx, query, id))
}

// GetByRoutingCode retrieves an external bank by its routing code.
func (r *BankRepository) GetByRoutingCode(ctx context.Context, code string) (*domain.ExternalBank, error) {
	query := `SELECT ` + bankColumns + ` FROM external_banks WHERE routing_code = $1`

	return scanBank(r.pool.QueryRow(ctx, query, code))
}

// List retrieves external banks with pagination.
func (r *BankRepository) List(ctx context.Context, limit, offset int) ([]*domain.ExternalBank, error) {
	query := `
		SELECT ` + bankColumns + `
		FROM external_banks
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banks []*domain.ExternalBank
	for rows.Next() {
		bank, err := scanBank(rows)
		if err != nil {
			return nil, err
		}

		banks = append(banks, bank)
	}

	return banks, rows.Err()
}

// Update updates a bank's mutable fields. The routing code is immutable.
func (r *BankRepository) Update(ctx context.Context, bank *domain.ExternalBank) error {
	query := `
		UPDATE external_banks
		SET name = $2, base_url = $3, active = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		bank.ID,
		bank.Name,
		bank.BaseURL,
		bank.Active,
		bank.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrBankNotFound
	}

	return nil
}

// Delete removes an external bank.
func (r *BankRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM external_banks WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrBankNotFound
	}

	return nil
}

func scanBank(row pgx.Row) (*domain.ExternalBank, error) {
	var bank domain.ExternalBank

	err := row.Scan(
		&bank.ID,
		&bank.Name,
		&bank.RoutingCode,
		&bank.BaseURL,
		&bank.Active,
		&bank.CreatedAt,
		&bank.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBankNotFound
	}
	if err != nil {
		return nil, err
	}

	return &bank, nil
}
