package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/banklink/banklink/internal/domain"
	"github.com/banklink/banklink/internal/usecase"
)

// CreateCustomerRequest represents a request to register a customer.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCustomerRequest) ToUseCaseInput() usecase.CreateCustomerInput {
	return usecase.CreateCustomerInput{
		Name:  r.Name,
		Email: r.Email,
	}
}

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	CustomerID     string          `json:"customer_id"`
	Type           string          `json:"type"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		CustomerID:     r.CustomerID,
		Type:           domain.AccountType(r.Type),
		InitialBalance: r.InitialBalance,
	}
}

// UpdateAccountStatusRequest represents a request to change account status.
type UpdateAccountStatusRequest struct {
	Status string `json:"status"`
}

// OperationRequest represents a deposit or withdrawal request.
type OperationRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// CreateTransferRequest represents a request for an internal transfer.
type CreateTransferRequest struct {
	FromAccountID     string          `json:"from_account_id"`
	DestinationNumber string          `json:"destination_number"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		FromAccountID:     r.FromAccountID,
		DestinationNumber: r.DestinationNumber,
		Amount:            r.Amount,
		Description:       r.Description,
	}
}

// CreateExternalTransferRequest represents a request for an outbound
// external transfer.
type CreateExternalTransferRequest struct {
	FromAccountID     string          `json:"from_account_id"`
	BankID            string          `json:"bank_id"`
	DestinationNumber string          `json:"destination_number"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateExternalTransferRequest) ToUseCaseInput() usecase.ExternalTransferInput {
	return usecase.ExternalTransferInput{
		FromAccountID:     r.FromAccountID,
		BankID:            r.BankID,
		DestinationNumber: r.DestinationNumber,
		Amount:            r.Amount,
		Description:       r.Description,
	}
}

// ReceiveTransferRequest represents an inbound transfer announced by a
// counterpart bank.
type ReceiveTransferRequest struct {
	DestinationNumber string          `json:"destination_number"`
	OriginBank        string          `json:"origin_bank"`
	OriginNumber      string          `json:"origin_number"`
	Reference         string          `json:"reference"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
}

// ToUseCaseInput converts to use case input.
func (r *ReceiveTransferRequest) ToUseCaseInput() usecase.ReceiveExternalInput {
	return usecase.ReceiveExternalInput{
		DestinationNumber: r.DestinationNumber,
		OriginBank:        r.OriginBank,
		OriginNumber:      r.OriginNumber,
		ExternalRef:       r.Reference,
		Amount:            r.Amount,
		Description:       r.Description,
	}
}

// CreateBankRequest represents a request to register an external bank.
type CreateBankRequest struct {
	Name        string `json:"name"`
	RoutingCode string `json:"routing_code"`
	BaseURL     string `json:"base_url"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBankRequest) ToUseCaseInput() usecase.CreateBankInput {
	return usecase.CreateBankInput{
		Name:        r.Name,
		RoutingCode: r.RoutingCode,
		BaseURL:     r.BaseURL,
	}
}

// UpdateBankRequest represents a request to update an external bank.
type UpdateBankRequest struct {
	Name    string `json:"name"`
	BaseURL string `json:"base_url"`
	Active  *bool  `json:"active"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateBankRequest) ToUseCaseInput() usecase.UpdateBankInput {
	return usecase.UpdateBankInput{
		Name:    r.Name,
		BaseURL: r.BaseURL,
		Active:  r.Active,
	}
}

// UpdateMovementDescriptionRequest represents a description correction.
type UpdateMovementDescriptionRequest struct {
	Description string `json:"description"`
}

// MovementListQuery represents query parameters for listing movements.
type MovementListQuery struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// CreateUserRequest represents a request to create a user.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
		Role:     domain.Role(r.Role),
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
