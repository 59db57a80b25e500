//go:build unit || e2e

package authtest

import (
	"encoding/json"
	"net/http"
	"testing"

	"notify-dispatch/internal/handler/dto/request"
	"notify-dispatch/tests/common/dbtest"
	"notify-dispatch/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// IssueToken exchanges a seeded credential for a bearer token through the
// real token endpoint.
func IssueToken(t *testing.T, router *gin.Engine, tenantID uuid.UUID, service, secret string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/token",
		request.TokenRequest{TenantID: tenantID, Service: service, Secret: secret}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.AccessToken, "Access token is empty")

	return body.AccessToken
}

// SeedAndIssueToken creates a credential and logs in with it in one step.
func SeedAndIssueToken(t *testing.T, db dbtest.DBLike, router *gin.Engine, tenantID uuid.UUID, service, secret string, scopes []string) string {
	t.Helper()
	dbtest.SeedCredential(t, db, tenantID, service, secret, scopes)
	return IssueToken(t, router, tenantID, service, secret)
}
