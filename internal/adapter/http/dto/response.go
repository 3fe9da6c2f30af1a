package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/banklink/banklink/internal/domain"
	"github.com/banklink/banklink/internal/usecase"
)

// CustomerResponse represents a customer in API responses.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerFromDomain converts a domain customer to a response.
func CustomerFromDomain(c *domain.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}

// CustomersFromDomain converts domain customers to responses.
func CustomersFromDomain(customers []*domain.Customer) []*CustomerResponse {
	result := make([]*CustomerResponse, len(customers))
	for i, c := range customers {
		result[i] = CustomerFromDomain(c)
	}
	return result
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID         string          `json:"id"`
	Number     string          `json:"number"`
	Type       string          `json:"type"`
	Balance    decimal.Decimal `json:"balance"`
	Status     string          `json:"status"`
	CustomerID string          `json:"customer_id"`
	OpenedAt   time.Time       `json:"opened_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:         a.ID,
		Number:     a.Number,
		Type:       string(a.Type),
		Balance:    a.Balance,
		Status:     string(a.Status),
		CustomerID: a.CustomerID,
		OpenedAt:   a.OpenedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// MovementResponse represents a movement in API responses.
type MovementResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	TransferID  *string         `json:"transfer_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// MovementFromDomain converts a domain movement to a response.
func MovementFromDomain(m *domain.Movement) *MovementResponse {
	return &MovementResponse{
		ID:          m.ID,
		AccountID:   m.AccountID,
		Kind:        string(m.Kind),
		Amount:      m.Amount,
		Description: m.Description,
		TransferID:  m.TransferID,
		CreatedAt:   m.CreatedAt,
	}
}

// MovementsFromDomain converts domain movements to responses.
func MovementsFromDomain(movements []*domain.Movement) []*MovementResponse {
	result := make([]*MovementResponse, len(movements))
	for i, m := range movements {
		result[i] = MovementFromDomain(m)
	}
	return result
}

// OperationResponse represents the outcome of a deposit or withdrawal.
type OperationResponse struct {
	Account  *AccountResponse  `json:"account"`
	Movement *MovementResponse `json:"movement"`
}

// OperationFromResult converts an operation result to a response.
func OperationFromResult(r *usecase.OperationResult) *OperationResponse {
	return &OperationResponse{
		Account:  AccountFromDomain(r.Account),
		Movement: MovementFromDomain(r.Movement),
	}
}

// TransferResponse represents a transfer in API responses.
type TransferResponse struct {
	ID                string          `json:"id"`
	FromAccountID     *string         `json:"from_account_id,omitempty"`
	ToAccountID       *string         `json:"to_account_id,omitempty"`
	BankID            *string         `json:"bank_id,omitempty"`
	DestinationNumber string          `json:"destination_number"`
	Amount            decimal.Decimal `json:"amount"`
	Kind              string          `json:"kind"`
	Status            string          `json:"status"`
	ExternalRef       *string         `json:"external_ref,omitempty"`
	Description       string          `json:"description"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TransferFromDomain converts a domain transfer to a response.
func TransferFromDomain(t *domain.Transfer) *TransferResponse {
	return &TransferResponse{
		ID:                t.ID,
		FromAccountID:     t.FromAccountID,
		ToAccountID:       t.ToAccountID,
		BankID:            t.BankID,
		DestinationNumber: t.DestinationNumber,
		Amount:            t.Amount,
		Kind:              string(t.Kind),
		Status:            string(t.Status),
		ExternalRef:       t.ExternalRef,
		Description:       t.Description,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

// TransfersFromDomain converts domain transfers to responses.
func TransfersFromDomain(transfers []*domain.Transfer) []*TransferResponse {
	result := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferFromDomain(t)
	}
	return result
}

// BankResponse represents an external bank in API responses.
type BankResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	RoutingCode string    `json:"routing_code"`
	BaseURL     string    `json:"base_url"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BankFromDomain converts a domain bank to a response.
func BankFromDomain(b *domain.ExternalBank) *BankResponse {
	return &BankResponse{
		ID:          b.ID,
		Name:        b.Name,
		RoutingCode: b.RoutingCode,
		BaseURL:     b.BaseURL,
		Active:      b.Active,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// BanksFromDomain converts domain banks to responses.
func BanksFromDomain(banks []*domain.ExternalBank) []*BankResponse {
	result := make([]*BankResponse, len(banks))
	for i, b := range banks {
		result[i] = BankFromDomain(b)
	}
	return result
}

// BalanceResponse represents a computed balance in API responses.
type BalanceResponse struct {
	AccountID         string          `json:"account_id"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
}

// ReconciliationResponse represents a single-account reconciliation check.
type ReconciliationResponse struct {
	AccountID         string          `json:"account_id"`
	AccountNumber     string          `json:"account_number"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	IsReconciled      bool            `json:"is_reconciled"`
	CheckedAt         time.Time       `json:"checked_at"`
}

// ReconciliationFromResult converts a reconciliation result to a response.
func ReconciliationFromResult(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		AccountID:         r.AccountID,
		AccountNumber:     r.AccountNumber,
		RecordedBalance:   r.RecordedBalance,
		CalculatedBalance: r.CalculatedBalance,
		Difference:        r.Difference,
		IsReconciled:      r.IsReconciled,
		CheckedAt:         r.CheckedAt,
	}
}

// ReconciliationReportResponse represents a ledger-wide sweep.
type ReconciliationReportResponse struct {
	TotalAccounts      int                       `json:"total_accounts"`
	ReconciledAccounts int                       `json:"reconciled_accounts"`
	Discrepancies      []*ReconciliationResponse `json:"discrepancies"`
	CheckedAt          time.Time                 `json:"checked_at"`
}

// ReconciliationReportFromResult converts a report to a response.
func ReconciliationReportFromResult(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	discrepancies := make([]*ReconciliationResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = ReconciliationFromResult(d)
	}

	return &ReconciliationReportResponse{
		TotalAccounts:      r.TotalAccounts,
		ReconciledAccounts: r.ReconciledAccounts,
		Discrepancies:      discrepancies,
		CheckedAt:          r.CheckedAt,
	}
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:     u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   string(u.Role),
		Active: u.Active,
	}
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
