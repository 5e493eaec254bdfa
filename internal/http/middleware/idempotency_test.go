package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newIdemRouter() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	var seen string
	r := gin.New()
	r.POST("/x", IdempotencyKeyCheck(), func(c *gin.Context) {
		seen = GetIdempotencyKey(c)
		c.Status(http.StatusNoContent)
	})
	return r, &seen
}

func TestIdempotencyKeyCheck_AbsentHeaderPassesThrough(t *testing.T) {
	r, seen := newIdemRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if *seen != "" {
		t.Fatalf("expected empty key, got %q", *seen)
	}
}

func TestIdempotencyKeyCheck_ValidKeyStashed(t *testing.T) {
	r, seen := newIdemRouter()

	for _, key := range []string{
		"550e8400-e29b-41d4-a716-446655440000",
		"client:retry_7",
		"a.b~c",
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.Header.Set(HeaderIdempotencyKey, key)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("key %q: expected 204, got %d", key, w.Code)
		}
		if *seen != key {
			t.Fatalf("key %q: stashed %q", key, *seen)
		}
	}
}

func TestIdempotencyKeyCheck_RejectsMalformedAndOversized(t *testing.T) {
	r, seen := newIdemRouter()

	for _, key := range []string{
		"has space",
		"emoji-☃",
		strings.Repeat("k", maxIdempotencyKeyLen+1),
	} {
		*seen = "untouched"
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.Header.Set(HeaderIdempotencyKey, key)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("key %q: expected 400, got %d", key, w.Code)
		}
		if *seen != "untouched" {
			t.Fatalf("key %q: handler ran despite rejection", key)
		}
	}
}
