package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func serve(adminKey string, header, value string) int {
	e := echo.New()
	e.POST("/admin", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, APIKeyAuth(adminKey))

	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestAPIKeyAuth(t *testing.T) {
	tests := []struct {
		name       string
		adminKey   string
		header     string
		value      string
		wantStatus int
	}{
		{"header key", "s3cret", "X-API-Key", "s3cret", http.StatusNoContent},
		{"bearer token", "s3cret", "Authorization", "Bearer s3cret", http.StatusNoContent},
		{"missing key", "s3cret", "", "", http.StatusUnauthorized},
		{"wrong key", "s3cret", "X-API-Key", "guess", http.StatusUnauthorized},
		{"key prefix only", "s3cret", "X-API-Key", "s3c", http.StatusUnauthorized},
		{"basic auth is not a bearer token", "s3cret", "Authorization", "Basic s3cret", http.StatusUnauthorized},
		{"no admin key configured", "", "X-API-Key", "", http.StatusUnauthorized},
		{"no admin key configured, any key", "", "X-API-Key", "anything", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, serve(tt.adminKey, tt.header, tt.value))
		})
	}
}
