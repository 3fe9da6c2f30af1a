package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/banklink/banklink/internal/domain"
	"github.com/banklink/banklink/internal/usecase"
)

func testBank(baseURL string) *domain.ExternalBank {
	return &domain.ExternalBank{
		ID:          "bank-1",
		Name:        "Partner Bank",
		RoutingCode: "PTR01",
		BaseURL:     baseURL,
		Active:      true,
	}
}

func testNotification() usecase.GatewayNotification {
	return usecase.GatewayNotification{
		DestinationNumber: "87654321",
		Amount:            decimal.RequireFromString("125.50"),
		Description:       "invoice 42",
		OriginBank:        "BankLink",
		SentAt:            time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSendTransfer(t *testing.T) {
	var received map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/transfers/receive" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %s", ct)
		}

		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"reference": "REF-99", "status": "accepted"})
	}))
	defer server.Close()

	g := NewHTTPGateway(5*time.Second, zerolog.Nop())

	ref, err := g.SendTransfer(context.Background(), testBank(server.URL), testNotification())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ref != "REF-99" {
		t.Errorf("expected REF-99, got %s", ref)
	}

	want := map[string]string{
		"destination_number": "87654321",
		"amount":             "125.5",
		"description":        "invoice 42",
		"origin_bank":        "BankLink",
		"sent_at":            "2025-06-01T12:00:00Z",
	}
	for k, v := range want {
		if received[k] != v {
			t.Errorf("field %s: expected %q, got %q", k, v, received[k])
		}
	}
}

func TestSendTransferRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "account closed", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	g := NewHTTPGateway(5*time.Second, zerolog.Nop())

	_, err := g.SendTransfer(context.Background(), testBank(server.URL), testNotification())
	if !errors.Is(err, domain.ErrGatewayFailure) {
		t.Errorf("expected ErrGatewayFailure, got %v", err)
	}
}

func TestSendTransferTransportError(t *testing.T) {
	g := NewHTTPGateway(time.Second, zerolog.Nop())

	// Nothing listens here.
	bank := testBank("http://127.0.0.1:1")

	_, err := g.SendTransfer(context.Background(), bank, testNotification())
	if !errors.Is(err, domain.ErrGatewayFailure) {
		t.Errorf("expected ErrGatewayFailure, got %v", err)
	}
}

func TestSendTransferMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	g := NewHTTPGateway(5*time.Second, zerolog.Nop())

	_, err := g.SendTransfer(context.Background(), testBank(server.URL), testNotification())
	if !errors.Is(err, domain.ErrGatewayFailure) {
		t.Errorf("expected ErrGatewayFailure, got %v", err)
	}
}

func TestSendTransferTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	g := NewHTTPGateway(5*time.Second, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := g.SendTransfer(ctx, testBank(server.URL), testNotification())
	if !errors.Is(err, domain.ErrGatewayFailure) {
		t.Errorf("expected ErrGatewayFailure, got %v", err)
	}
}
