package request

import (
	"time"

	"github.com/google/uuid"

	"notify-dispatch/internal/domain/notification"
	"notify-dispatch/internal/domain/retrypolicy"
)

type SetBudgetLimitRequest struct {
	TenantID   uuid.UUID `json:"tenant_id" binding:"required"`
	Service    string    `json:"service" binding:"required"`
	Channel    string    `json:"channel" binding:"required"`
	LimitMicro int64     `json:"limit_micro" binding:"min=0"`
}

type UpsertRetryPolicyRequest struct {
	Tenant        string  `json:"tenant" binding:"required"`
	Channel       string  `json:"channel" binding:"required"`
	MaxAttempts   int     `json:"max_attempts" binding:"required,min=1"`
	BaseDelayMS   int64   `json:"base_delay_ms" binding:"required,min=1"`
	Factor        float64 `json:"factor" binding:"required"`
	MaxDelayMS    int64   `json:"max_delay_ms" binding:"required,min=1"`
	JitterBoundMS int64   `json:"jitter_bound_ms" binding:"min=0"`
}

// ToDomain validates the override target and converts the millisecond
// fields. Tenant accepts a UUID or "*", Channel a channel name or "*".
func (r UpsertRetryPolicyRequest) ToDomain() (retrypolicy.PolicyKey, retrypolicy.Policy, error) {
	if r.Tenant != retrypolicy.Wildcard {
		if _, err := uuid.Parse(r.Tenant); err != nil {
			return retrypolicy.PolicyKey{}, retrypolicy.Policy{}, err
		}
	}
	if r.Channel != retrypolicy.Wildcard {
		if _, err := notification.NewChannel(r.Channel); err != nil {
			return retrypolicy.PolicyKey{}, retrypolicy.Policy{}, err
		}
	}
	key := retrypolicy.PolicyKey{Tenant: r.Tenant, Channel: r.Channel}
	policy := retrypolicy.Policy{
		MaxAttempts: r.MaxAttempts,
		BaseDelay:   time.Duration(r.BaseDelayMS) * time.Millisecond,
		Factor:      r.Factor,
		MaxDelay:    time.Duration(r.MaxDelayMS) * time.Millisecond,
		JitterBound: time.Duration(r.JitterBoundMS) * time.Millisecond,
	}
	if err := policy.Validate(); err != nil {
		return retrypolicy.PolicyKey{}, retrypolicy.Policy{}, err
	}
	return key, policy, nil
}

type CreateCredentialRequest struct {
	TenantID uuid.UUID `json:"tenant_id" binding:"required"`
	Service  string    `json:"service" binding:"required"`
	Secret   string    `json:"secret" binding:"required,min=16"`
	Scopes   []string  `json:"scopes" binding:"required,min=1"`
}
