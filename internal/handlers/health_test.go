package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status got %d, want %d", rec.Code, http.StatusOK)
	}
}
