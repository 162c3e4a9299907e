package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/epc-retail/exclusivity-backend/pkg/logger"
)

type fakeIdempotencyStore struct {
	data map[string]string
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{data: map[string]string{}}
}

func (f *fakeIdempotencyStore) Get(_ context.Context, key string) (string, error) {
	return f.data[key], nil
}

func (f *fakeIdempotencyStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	f.data[key] = value.(string)
	return true, nil
}

func (f *fakeIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "epc:idem:" + scope + ":" + id
}

func (f *fakeIdempotencyStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func idempotentHandler(t *testing.T, store *fakeIdempotencyStore, calls *int32) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{Level: zerolog.Disabled, Output: io.Discard})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	return Idempotency(store, logg)(next)
}

func postUpload(handler http.Handler, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/nbfi/mass-upload-exclusivity-items", strings.NewReader(body))
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestIdempotencyRequiresKeyOnGuardedRoutes(t *testing.T) {
	var calls int32
	handler := idempotentHandler(t, newFakeIdempotencyStore(), &calls)

	rec := postUpload(handler, "", "rows")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a key, got %d: %s", rec.Code, rec.Body.String())
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatal("handler must not run without an idempotency key")
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	var calls int32
	store := newFakeIdempotencyStore()
	handler := idempotentHandler(t, store, &calls)

	first := postUpload(handler, "k-1", "rows")
	if first.Code != http.StatusOK {
		t.Fatalf("first request failed: %d %s", first.Code, first.Body.String())
	}
	if len(store.data) != 1 {
		t.Fatalf("expected one persisted record, got %v", store.data)
	}

	second := postUpload(handler, "k-1", "rows")
	if second.Code != http.StatusOK || second.Body.String() != first.Body.String() {
		t.Fatalf("replay mismatch: %d %s", second.Code, second.Body.String())
	}
	if second.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("replay lost content type: %q", second.Header().Get("Content-Type"))
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("handler must run once, ran %d times", calls)
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	var calls int32
	handler := idempotentHandler(t, newFakeIdempotencyStore(), &calls)

	if rec := postUpload(handler, "k-1", "rows"); rec.Code != http.StatusOK {
		t.Fatalf("first request failed: %d", rec.Code)
	}
	rec := postUpload(handler, "k-1", "different rows")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on hash mismatch, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if payload.Success {
		t.Fatal("hash mismatch must not report success")
	}
}

func TestIdempotencyPassThrough(t *testing.T) {
	var calls int32
	handler := idempotentHandler(t, newFakeIdempotencyStore(), &calls)

	// Unguarded route: no key needed, nothing recorded.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/export/transfer-orders", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unguarded route blocked: %d", rec.Code)
	}

	// Nil store disables the layer entirely.
	logg := logger.New(logger.Options{Level: zerolog.Disabled, Output: io.Discard})
	open := Idempotency(nil, logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec = httptest.NewRecorder()
	open.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/inventory/nbfi/mass-upload-exclusivity-items", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("nil store must pass through, got %d", rec.Code)
	}
}
