package response

import (
	"notify-dispatch/internal/usecase/commands"

	"github.com/google/uuid"
)

type TokenResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	Scopes      []string `json:"scopes"`
}

func FromTokenResult(r *commands.TokenResult) *TokenResponse {
	return &TokenResponse{
		AccessToken: r.Token,
		TokenType:   "bearer",
		Scopes:      r.Scopes,
	}
}

type CredentialResponse struct {
	ID       uuid.UUID `json:"id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Service  string    `json:"service"`
	Scopes   []string  `json:"scopes"`
}

func FromCredentialResult(r *commands.CredentialResult) *CredentialResponse {
	return &CredentialResponse{
		ID:       r.ID,
		TenantID: r.TenantID,
		Service:  r.Service,
		Scopes:   r.Scopes,
	}
}
