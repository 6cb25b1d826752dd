package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientContextRequiresHeader(t *testing.T) {
	t.Parallel()

	handler := ClientContext(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a client id")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestClientContextThreadsID(t *testing.T) {
	t.Parallel()

	var seen string
	handler := ClientContext(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ClientIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Client-Id", "device-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "device-123" {
		t.Fatalf("expected the header value in context, got %q", seen)
	}
}
