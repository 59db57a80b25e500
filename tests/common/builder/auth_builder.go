//go:build unit || e2e

package builder

import (
	"notify-dispatch/internal/domain/credential"
	reqdto "notify-dispatch/internal/handler/dto/request"
	"notify-dispatch/internal/pkg/jwt"
	"notify-dispatch/internal/pkg/password"

	"github.com/google/uuid"
)

type CredentialBuilder struct {
	TenantID uuid.UUID
	Service  string
	Secret   string
	Scopes   []string
}

func NewCredentialBuilder() *CredentialBuilder {
	return &CredentialBuilder{
		TenantID: uuid.New(),
		Service:  "orders",
		Secret:   "orders-secret-0123456789",
		Scopes:   []string{jwt.ScopeSend},
	}
}

func (b *CredentialBuilder) With(mutate func(*CredentialBuilder)) *CredentialBuilder {
	mutate(b)
	return b
}

func (b *CredentialBuilder) BuildTokenRequestDTO() reqdto.TokenRequest {
	return reqdto.TokenRequest{
		TenantID: b.TenantID,
		Service:  b.Service,
		Secret:   b.Secret,
	}
}

func (b *CredentialBuilder) BuildCreateRequestDTO() reqdto.CreateCredentialRequest {
	return reqdto.CreateCredentialRequest{
		TenantID: b.TenantID,
		Service:  b.Service,
		Secret:   b.Secret,
		Scopes:   b.Scopes,
	}
}

// BuildDomain hashes the secret the same way the admin surface does, so
// the entity verifies against BuildTokenRequestDTO.
func (b *CredentialBuilder) BuildDomain() (*credential.Credential, error) {
	hash, err := password.HashPassword(b.Secret)
	if err != nil {
		return nil, err
	}
	return credential.NewCredential(b.TenantID, b.Service, hash, b.Scopes)
}

// Fluent builder methods
func (b *CredentialBuilder) WithTenantID(id uuid.UUID) *CredentialBuilder {
	b.TenantID = id
	return b
}

func (b *CredentialBuilder) WithService(service string) *CredentialBuilder {
	b.Service = service
	return b
}

func (b *CredentialBuilder) WithSecret(secret string) *CredentialBuilder {
	b.Secret = secret
	return b
}

func (b *CredentialBuilder) WithScopes(scopes ...string) *CredentialBuilder {
	b.Scopes = scopes
	return b
}

func (b *CredentialBuilder) AsAdmin() *CredentialBuilder {
	b.Scopes = []string{jwt.ScopeSend, jwt.ScopeAdmin}
	return b
}
