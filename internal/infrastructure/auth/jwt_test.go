package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/banklink/banklink/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "user-1",
		Email: "op@example.com",
		Role:  domain.RoleOperator,
	}
}

func TestGenerateAndVerify(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.Generate(testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("expected user-1, got %s", claims.UserID)
	}

	if claims.Email != "op@example.com" {
		t.Errorf("unexpected email %s", claims.Email)
	}

	if claims.Role != domain.RoleOperator {
		t.Errorf("unexpected role %s", claims.Role)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.Generate(testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := manager.Verify(token); !errors.Is(err, domain.ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", time.Hour).Generate(testUser())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := NewJWTManager("secret-b", time.Hour).Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := manager.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Errorf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}
