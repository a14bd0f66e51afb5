//go:build unit

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubValidator struct {
	token      string
	customerID uuid.UUID
}

func (v stubValidator) ValidateToken(tokenString string) (uuid.UUID, error) {
	if tokenString != v.token {
		return uuid.Nil, errors.New("invalid token")
	}
	return v.customerID, nil
}

func newAuthEngine(t *testing.T, mw gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.GET("/whoami", mw, func(c *gin.Context) {
		id, ok := GetCustomerID(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, id.String())
	})
	return engine
}

func TestAuthMiddleware(t *testing.T) {
	customerID := uuid.MustParse("7b1f6a0e-2c4d-4e8f-9a1b-3c5d7e9f1a2b")
	m := NewAuthMiddleware(stubValidator{token: "good", customerID: customerID})

	tests := []struct {
		name       string
		optional   bool
		header     string
		wantStatus int
		wantBody   string
	}{
		{"required: valid token", false, "Bearer good", http.StatusOK, customerID.String()},
		{"required: missing token", false, "", http.StatusUnauthorized, "Access token required"},
		{"required: wrong scheme", false, "Basic good", http.StatusUnauthorized, "Access token required"},
		{"required: invalid token", false, "Bearer bad", http.StatusUnauthorized, "Invalid or expired token"},
		{"optional: valid token", true, "Bearer good", http.StatusOK, customerID.String()},
		{"optional: missing token", true, "", http.StatusOK, "anonymous"},
		{"optional: invalid token", true, "Bearer bad", http.StatusOK, "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := m.RequireAuth()
			if tt.optional {
				mw = m.OptionalAuth()
			}
			engine := newAuthEngine(t, mw)

			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
			}
		})
	}
}
