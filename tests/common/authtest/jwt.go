//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"notify-dispatch/internal/pkg/config"
	"notify-dispatch/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

// GenerateToken mints a token directly, bypassing the credential check.
// Useful for scope combinations no seeded credential carries.
func (h *JWTHelper) GenerateToken(t *testing.T, tenantID uuid.UUID, service string, scopes []string) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	svc := jwt.NewService(h.cfg.Secret, duration)
	token, err := svc.GenerateToken(tenantID, service, scopes)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, tenantID uuid.UUID, service string, scopes []string) string {
	t.Helper()
	svc := jwt.NewService(h.cfg.Secret, 1*time.Millisecond)
	token, err := svc.GenerateToken(tenantID, service, scopes)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
