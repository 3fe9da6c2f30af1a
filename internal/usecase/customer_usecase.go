package usecase

import (
	"context"
	"time"

	"github.com/banklink/banklink/internal/domain"
)

// CustomerUseCase manages the customer registry.
type CustomerUseCase struct {
	customerRepo CustomerRepository
	accountRepo  AccountRepository
	idGen        IDGenerator
}

// NewCustomerUseCase creates a new CustomerUseCase.
func NewCustomerUseCase(customerRepo CustomerRepository, accountRepo AccountRepository, idGen IDGenerator) *CustomerUseCase {
	return &CustomerUseCase{
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		idGen:        idGen,
	}
}

// CreateCustomerInput represents input for creating a customer.
type CreateCustomerInput struct {
	Name  string
	Email string
}

// CreateCustomer registers a new customer.
func (uc *CustomerUseCase) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Email:     input.Email,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID.
func (uc *CustomerUseCase) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return uc.customerRepo.GetByID(ctx, id)
}

// ListCustomersInput represents input for listing customers.
type ListCustomersInput struct {
	Limit  int
	Offset int
}

// ListCustomers lists customers with pagination.
func (uc *CustomerUseCase) ListCustomers(ctx context.Context, input ListCustomersInput) ([]*domain.Customer, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.customerRepo.List(ctx, limit, offset)
}

// DeleteCustomer removes a customer. Restricted while any of their
// accounts exist.
func (uc *CustomerUseCase) DeleteCustomer(ctx context.Context, id string) error {
	if _, err := uc.customerRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := uc.accountRepo.CountByCustomer(ctx, id)
	if err != nil {
		return err
	}

	if count > 0 {
		return domain.ErrCustomerHasAccounts
	}

	return uc.customerRepo.Delete(ctx, id)
}
