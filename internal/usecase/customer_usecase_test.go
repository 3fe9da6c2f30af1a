package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/banklink/banklink/internal/domain"
	"github.com/banklink/banklink/internal/usecase"
	"github.com/banklink/banklink/internal/usecase/mocks"
)

type customerFixture struct {
	customerRepo *mocks.MockCustomerRepository
	accountRepo  *mocks.MockAccountRepository
	uc           *usecase.CustomerUseCase
}

func newCustomerFixture() *customerFixture {
	f := &customerFixture{
		customerRepo: mocks.NewMockCustomerRepository(),
		accountRepo:  mocks.NewMockAccountRepository(),
	}

	f.uc = usecase.NewCustomerUseCase(f.customerRepo, f.accountRepo, mocks.NewMockIDGenerator())

	return f
}

func TestCreateCustomer(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateCustomerInput
		expectError bool
		errorType   error
	}{
		{
			name:  "creates a customer",
			input: usecase.CreateCustomerInput{Name: "Ada", Email: "ada@example.com"},
		},
		{
			name:        "rejects invalid email",
			input:       usecase.CreateCustomerInput{Name: "Ada", Email: "not-an-email"},
			expectError: true,
			errorType:   domain.ErrInvalidEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCustomerFixture()

			customer, err := f.uc.CreateCustomer(context.Background(), tt.input)

			if tt.expectError {
				if !errors.Is(err, tt.errorType) {
					t.Errorf("expected error %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if customer.ID == "" {
				t.Error("expected generated id")
			}
		})
	}
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	f := newCustomerFixture()

	input := usecase.CreateCustomerInput{Name: "Ada", Email: "ada@example.com"}

	if _, err := f.uc.CreateCustomer(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.uc.CreateCustomer(context.Background(), input); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestDeleteCustomer(t *testing.T) {
	f := newCustomerFixture()

	customer, err := f.uc.CreateCustomer(context.Background(), usecase.CreateCustomerInput{
		Name: "Ada", Email: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.uc.DeleteCustomer(context.Background(), customer.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.uc.GetCustomer(context.Background(), customer.ID); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Error("customer still present after delete")
	}
}

func TestDeleteCustomerWithAccounts(t *testing.T) {
	f := newCustomerFixture()

	customer, err := f.uc.CreateCustomer(context.Background(), usecase.CreateCustomerInput{
		Name: "Ada", Email: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.accountRepo.Seed(&domain.Account{
		ID:         "acc-1",
		Number:     "10000001",
		CustomerID: customer.ID,
		Status:     domain.AccountStatusActive,
	})

	if err := f.uc.DeleteCustomer(context.Background(), customer.ID); !errors.Is(err, domain.ErrCustomerHasAccounts) {
		t.Errorf("expected ErrCustomerHasAccounts, got %v", err)
	}
}

func TestDeleteCustomerNotFound(t *testing.T) {
	f := newCustomerFixture()

	if err := f.uc.DeleteCustomer(context.Background(), "missing"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("expected ErrCustomerNotFound, got %v", err)
	}
}
