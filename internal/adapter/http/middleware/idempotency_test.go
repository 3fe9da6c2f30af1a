package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{entries: make(map[string][]byte)}
}

func (s *fakeIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[key]; ok {
		return true, existing, nil
	}

	if response == nil {
		response = []byte("processing")
	}
	s.entries[key] = response

	return false, nil, nil
}

func (s *fakeIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = response
	return nil
}

func TestIdempotencyReplay(t *testing.T) {
	store := newFakeIdempotencyStore()
	m := NewIdempotencyMiddleware(store)

	calls := 0
	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"acc-1"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "key-1")

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, req)

	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", first.Code)
	}

	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader("{}"))
	req2.Header.Set(IdempotencyKeyHeader, "key-1")

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req2)

	if calls != 1 {
		t.Errorf("expected handler to run once, ran %d times", calls)
	}

	if second.Header().Get("X-Idempotency-Replay") != "true" {
		t.Error("expected replay header on second response")
	}

	if second.Body.String() != `{"id":"acc-1"}` {
		t.Errorf("unexpected replayed body %q", second.Body.String())
	}
}

func TestIdempotencySkipsNonMutating(t *testing.T) {
	store := newFakeIdempotencyStore()
	m := NewIdempotencyMiddleware(store)

	calls := 0
	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
		req.Header.Set(IdempotencyKeyHeader, "key-1")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	if calls != 2 {
		t.Errorf("GET requests must not be deduplicated, ran %d times", calls)
	}
}

func TestIdempotencySkipsMissingKey(t *testing.T) {
	store := newFakeIdempotencyStore()
	m := NewIdempotencyMiddleware(store)

	calls := 0
	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader("{}"))
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	if calls != 2 {
		t.Errorf("keyless requests must not be deduplicated, ran %d times", calls)
	}
}

func TestIdempotencyDoesNotCacheFailures(t *testing.T) {
	store := newFakeIdempotencyStore()
	m := NewIdempotencyMiddleware(store)

	status := http.StatusUnprocessableEntity
	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(`{"error":"insufficient funds"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/acc-1/withdrawals", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	// Retrying after the failure runs the handler again.
	status = http.StatusCreated
	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/acc-1/withdrawals", strings.NewReader("{}"))
	req2.Header.Set(IdempotencyKeyHeader, "key-1")

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req2)

	if second.Header().Get("X-Idempotency-Replay") == "true" {
		t.Error("failed response must not be replayed")
	}

	if second.Code != http.StatusCreated {
		t.Errorf("expected retry to reach the handler, got %d", second.Code)
	}
}
