package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountNotActive     = errors.New("account is not active")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrDuplicateNumber      = errors.New("account number already in use")
	ErrBalanceNotZero       = errors.New("account balance must be zero")
	ErrAccountHasMovements  = errors.New("account has movements")
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrInvalidAccountStatus = errors.New("invalid account status")

	// Movement errors
	ErrMovementNotFound    = errors.New("movement not found")
	ErrInvalidMovementKind = errors.New("invalid movement kind")

	// Transfer errors
	ErrTransferNotFound    = errors.New("transfer not found")
	ErrSameAccount         = errors.New("cannot transfer to same account")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidTransferKind = errors.New("invalid transfer kind")
	ErrTransferNotPending  = errors.New("transfer is not pending")
	ErrGatewayFailure      = errors.New("external bank gateway failure")

	// External bank errors
	ErrBankNotFound            = errors.New("external bank not found")
	ErrBankInactive            = errors.New("external bank is not active")
	ErrDuplicateRoutingCode    = errors.New("routing code already in use")
	ErrBankHasPendingTransfers = errors.New("external bank has pending transfers")
	ErrInvalidBankInput        = errors.New("bank name, routing code and base URL are required")

	// Customer errors
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrCustomerHasAccounts = errors.New("customer has accounts")
	ErrDuplicateEmail      = errors.New("email already in use")

	// User errors
	ErrUserNotFound = errors.New("user not found")
)
