package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/accounts", "/api/v1/accounts"},
		{"/api/v1/accounts/abc123", "/api/v1/accounts/:id"},
		{"/api/v1/accounts/abc123/movements", "/api/v1/accounts/:id/movements"},
		{"/api/v1/accounts/abc123/deposits", "/api/v1/accounts/:id/deposits"},
		{"/api/v1/accounts/number/12345678", "/api/v1/accounts/number/:id"},
		{"/api/v1/customers/c1/accounts", "/api/v1/customers/:id/accounts"},
		{"/api/v1/transfers/t1", "/api/v1/transfers/:id"},
		{"/api/v1/movements/m1/description", "/api/v1/movements/:id/description"},
		{"/api/v1/banks/b1", "/api/v1/banks/:id"},
		{"/health", "/health"},
		{"/metrics", "/metrics"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.path, tt.want, got)
		}
	}
}
