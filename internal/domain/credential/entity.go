package credential

import (
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

var (
	ErrEmptyService    = errors.New("service name is required")
	ErrEmptySecretHash = errors.New("secret hash is required")
	ErrInactive        = errors.New("credential is inactive")
)

// Credential authenticates one upstream service of a tenant. The secret is
// stored only as a bcrypt hash; scopes bound here end up in issued tokens.
type Credential struct {
	id         uuid.UUID
	tenantID   uuid.UUID
	service    string
	secretHash string
	scopes     []string
	isActive   bool
	createdAt  time.Time
	lastUsedAt *time.Time
}

func NewCredential(tenantID uuid.UUID, service, secretHash string, scopes []string) (*Credential, error) {
	service = strings.TrimSpace(service)
	if service == "" {
		return nil, ErrEmptyService
	}
	if secretHash == "" {
		return nil, ErrEmptySecretHash
	}
	return &Credential{
		id:         uuid.New(),
		tenantID:   tenantID,
		service:    service,
		secretHash: secretHash,
		scopes:     slices.Clone(scopes),
		isActive:   true,
		createdAt:  time.Now().UTC(),
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	tenantID uuid.UUID,
	service string,
	secretHash string,
	scopes []string,
	isActive bool,
	createdAt time.Time,
	lastUsedAt *time.Time,
) *Credential {
	return &Credential{
		id:         id,
		tenantID:   tenantID,
		service:    service,
		secretHash: secretHash,
		scopes:     scopes,
		isActive:   isActive,
		createdAt:  createdAt,
		lastUsedAt: lastUsedAt,
	}
}

func (c *Credential) ID() uuid.UUID          { return c.id }
func (c *Credential) TenantID() uuid.UUID    { return c.tenantID }
func (c *Credential) Service() string        { return c.service }
func (c *Credential) SecretHash() string     { return c.secretHash }
func (c *Credential) Scopes() []string       { return slices.Clone(c.scopes) }
func (c *Credential) IsActive() bool         { return c.isActive }
func (c *Credential) CreatedAt() time.Time   { return c.createdAt }
func (c *Credential) LastUsedAt() *time.Time { return c.lastUsedAt }

func (c *Credential) HasScope(scope string) bool {
	return slices.Contains(c.scopes, scope)
}

// EnsureUsable guards token issuance against revoked credentials.
func (c *Credential) EnsureUsable() error {
	if !c.isActive {
		return ErrInactive
	}
	return nil
}
