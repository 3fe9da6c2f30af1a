package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/banklink/banklink/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrAccountNotFound, http.StatusNotFound},
		{domain.ErrTransferNotFound, http.StatusNotFound},
		{domain.ErrCustomerNotFound, http.StatusNotFound},
		{domain.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{domain.ErrAccountNotActive, http.StatusConflict},
		{domain.ErrTransferNotPending, http.StatusConflict},
		{domain.ErrDuplicateRoutingCode, http.StatusConflict},
		{domain.ErrCustomerHasAccounts, http.StatusConflict},
		{domain.ErrSameAccount, http.StatusBadRequest},
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.ErrInvalidEmail, http.StatusBadRequest},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrExpiredToken, http.StatusUnauthorized},
		{domain.ErrGatewayFailure, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := mapDomainError(tt.err); got != tt.want {
			t.Errorf("%v: expected %d, got %d", tt.err, tt.want, got)
		}
	}
}

func TestMapDomainErrorWrapped(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), domain.ErrInsufficientFunds)
	if got := mapDomainError(wrapped); got != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for wrapped error, got %d", got)
	}
}
