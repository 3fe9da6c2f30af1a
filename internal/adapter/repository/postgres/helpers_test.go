package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: "accounts_number_key"}

	assert.True(t, isUniqueViolation(uniqueErr, "accounts_number_key"))
	assert.True(t, isUniqueViolation(uniqueErr, ""), "empty constraint matches any unique violation")
	assert.False(t, isUniqueViolation(uniqueErr, "customers_email_key"))

	wrapped := errors.Join(errors.New("insert account"), uniqueErr)
	assert.True(t, isUniqueViolation(wrapped, "accounts_number_key"))

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "40001"}, ""))
	assert.False(t, isUniqueViolation(errors.New("plain error"), ""))
	assert.False(t, isUniqueViolation(nil, ""))
}

func TestDecimalNumericRoundTrip(t *testing.T) {
	values := []string{"0", "1", "100.25", "-42.50", "0.01", "999999999.99", "1000000000"}

	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			d := decimal.RequireFromString(v)

			n := decimalToNumeric(d)
			require.True(t, n.Valid)

			got := numericToDecimal(n)
			assert.True(t, got.Equal(d), "expected %s, got %s", d, got)
		})
	}
}

func TestNumericToDecimalInvalid(t *testing.T) {
	got := numericToDecimal(decimalToNumeric(decimal.Zero))
	assert.True(t, got.IsZero())

	invalid := numericToDecimal(pgtype.Numeric{})
	assert.True(t, invalid.IsZero(), "invalid numeric maps to zero")
}
