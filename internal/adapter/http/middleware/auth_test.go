package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/banklink/banklink/internal/domain"
	"github.com/banklink/banklink/internal/infrastructure/auth"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour)

	token, err := manager.Generate(&domain.User{ID: "user-1", Email: "op@example.com", Role: domain.RoleOperator})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCalled bool
	}{
		{"valid token", "Bearer " + token, http.StatusOK, true},
		{"missing header", "", http.StatusUnauthorized, false},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized, false},
		{"garbage token", "Bearer nope", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			var gotUser *domain.User

			handler := AuthMiddleware(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotUser, _ = GetUserFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rec.Code)
			}

			if called != tt.wantCalled {
				t.Errorf("expected called=%v, got %v", tt.wantCalled, called)
			}

			if tt.wantCalled {
				if gotUser == nil || gotUser.ID != "user-1" || gotUser.Role != domain.RoleOperator {
					t.Errorf("unexpected user in context: %+v", gotUser)
				}
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		minRole    domain.Role
		userRole   domain.Role
		wantStatus int
	}{
		{"admin passes admin gate", domain.RoleAdmin, domain.RoleAdmin, http.StatusOK},
		{"operator blocked by admin gate", domain.RoleAdmin, domain.RoleOperator, http.StatusForbidden},
		{"operator passes operator gate", domain.RoleOperator, domain.RoleOperator, http.StatusOK},
		{"admin passes operator gate", domain.RoleOperator, domain.RoleAdmin, http.StatusOK},
		{"viewer blocked by operator gate", domain.RoleOperator, domain.RoleViewer, http.StatusForbidden},
		{"viewer passes viewer gate", domain.RoleViewer, domain.RoleViewer, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			handler := RequireRole(tt.minRole)(okHandler(&called))

			user := &domain.User{ID: "user-1", Role: tt.userRole}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(context.WithValue(req.Context(), UserContextKey, user))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestRequireRoleNoUser(t *testing.T) {
	var called bool
	handler := RequireRole(domain.RoleViewer)(okHandler(&called))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}

	if called {
		t.Error("handler must not run without an authenticated user")
	}
}
