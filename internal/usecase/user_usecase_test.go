package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/banklink/banklink/internal/domain"
	"github.com/banklink/banklink/internal/usecase"
	"github.com/banklink/banklink/internal/usecase/mocks"
)

func newUserUseCase() (*usecase.UserUseCase, *mocks.MockUserRepository) {
	repo := mocks.NewMockUserRepository()
	return usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator()), repo
}

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateUserInput
		expectError bool
		errorType   error
	}{
		{
			name: "creates a user",
			input: usecase.CreateUserInput{
				Email:    "op@example.com",
				Name:     "Op",
				Password: "Sup3rSecret",
				Role:     domain.RoleOperator,
			},
		},
		{
			name: "rejects invalid email",
			input: usecase.CreateUserInput{
				Email:    "not-an-email",
				Password: "Sup3rSecret",
				Role:     domain.RoleViewer,
			},
			expectError: true,
			errorType:   domain.ErrInvalidEmail,
		},
		{
			name: "rejects weak password",
			input: usecase.CreateUserInput{
				Email:    "op@example.com",
				Password: "short",
				Role:     domain.RoleViewer,
			},
			expectError: true,
			errorType:   domain.ErrPasswordTooWeak,
		},
		{
			name: "rejects password without mixed case and digits",
			input: usecase.CreateUserInput{
				Email:    "op@example.com",
				Password: "alllowercase",
				Role:     domain.RoleViewer,
			},
			expectError: true,
			errorType:   domain.ErrPasswordTooWeak,
		},
		{
			name: "rejects unknown role",
			input: usecase.CreateUserInput{
				Email:    "op@example.com",
				Password: "Sup3rSecret",
				Role:     domain.Role("superuser"),
			},
			expectError: true,
			errorType:   domain.ErrInsufficientRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo := newUserUseCase()

			user, err := uc.CreateUser(context.Background(), tt.input)

			if tt.expectError {
				if !errors.Is(err, tt.errorType) {
					t.Errorf("expected error %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if user.HashedPassword != "" {
				t.Error("hashed password leaked in response")
			}

			// The stored record carries a hash, never the plaintext.
			stored, _ := repo.GetByID(context.Background(), user.ID)
			if stored.HashedPassword == "" || stored.HashedPassword == tt.input.Password {
				t.Error("password not hashed at rest")
			}
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	uc, _ := newUserUseCase()

	input := usecase.CreateUserInput{
		Email:    "op@example.com",
		Password: "Sup3rSecret",
		Role:     domain.RoleOperator,
	}

	if _, err := uc.CreateUser(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uc.CreateUser(context.Background(), input); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	uc, _ := newUserUseCase()

	created, err := uc.CreateUser(context.Background(), usecase.CreateUserInput{
		Email:    "op@example.com",
		Name:     "Op",
		Password: "Sup3rSecret",
		Role:     domain.RoleOperator,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
		Email:    "op@example.com",
		Password: "Sup3rSecret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.ID != created.ID {
		t.Errorf("expected %s, got %s", created.ID, user.ID)
	}

	if user.HashedPassword != "" {
		t.Error("hashed password leaked in response")
	}
}

func TestAuthenticateFailures(t *testing.T) {
	uc, _ := newUserUseCase()

	if _, err := uc.CreateUser(context.Background(), usecase.CreateUserInput{
		Email:    "op@example.com",
		Password: "Sup3rSecret",
		Role:     domain.RoleOperator,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Unknown user and wrong password are indistinguishable to the caller.
	tests := []struct {
		name  string
		input usecase.AuthenticateInput
	}{
		{"wrong password", usecase.AuthenticateInput{Email: "op@example.com", Password: "WrongPass1"}},
		{"unknown user", usecase.AuthenticateInput{Email: "ghost@example.com", Password: "Sup3rSecret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.Authenticate(context.Background(), tt.input); !errors.Is(err, domain.ErrUnauthorized) {
				t.Errorf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestAuthenticateDeactivatedUser(t *testing.T) {
	uc, _ := newUserUseCase()

	created, err := uc.CreateUser(context.Background(), usecase.CreateUserInput{
		Email:    "op@example.com",
		Password: "Sup3rSecret",
		Role:     domain.RoleOperator,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := uc.DeactivateUser(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
		Email:    "op@example.com",
		Password: "Sup3rSecret",
	}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for deactivated user, got %v", err)
	}
}
