//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"teetime/internal/pkg/config"
	"teetime/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, customerID uuid.UUID) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration).GenerateToken(customerID)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, customerID uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, 1*time.Millisecond).GenerateToken(customerID)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
