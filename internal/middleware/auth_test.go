package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSignAndParseToken(t *testing.T) {
	tok, err := SignToken("u123", "a@example.com", "Alice", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	c, err := parseToken(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.UID != "u123" || c.Email != "a@example.com" || c.Name != "Alice" {
		t.Fatalf("claims mismatch: %+v", c)
	}
}

func TestParseExpiredToken(t *testing.T) {
	tok, err := SignToken("u123", "a@example.com", "", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := parseToken(tok); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestWithAuthAttachesUser(t *testing.T) {
	tok, err := SignToken("u123", "a@example.com", "", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	var gotUID string
	var gotOK bool
	h := WithAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUID, gotOK = UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if !gotOK || gotUID != "u123" {
		t.Fatalf("expected uid u123 in context, got %q (ok=%v)", gotUID, gotOK)
	}

	// Garbage tokens leave the request anonymous rather than failing it.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	gotOK = false
	h.ServeHTTP(httptest.NewRecorder(), req)
	if gotOK {
		t.Fatal("invalid token should not attach a user")
	}
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	h := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
