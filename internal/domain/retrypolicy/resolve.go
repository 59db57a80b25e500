package retrypolicy

import (
	"notify-dispatch/internal/domain/notification"

	"github.com/google/uuid"
)

const Wildcard = "*"

// PolicyKey addresses one policy entry. Tenant is a UUID string or
// Wildcard, Channel a channel name or Wildcard.
type PolicyKey struct {
	Tenant  string
	Channel string
}

// PolicySet resolves the policy for a send through the override chain:
// tenant+channel, tenant+*, global+channel, then the built-in default.
type PolicySet struct {
	policies map[PolicyKey]Policy
	fallback Policy
}

func NewPolicySet(policies map[PolicyKey]Policy, fallback Policy) PolicySet {
	if policies == nil {
		policies = map[PolicyKey]Policy{}
	}
	return PolicySet{policies: policies, fallback: fallback}
}

func (s PolicySet) Resolve(tenantID uuid.UUID, channel notification.Channel) Policy {
	tenant := tenantID.String()
	chain := []PolicyKey{
		{Tenant: tenant, Channel: channel.String()},
		{Tenant: tenant, Channel: Wildcard},
		{Tenant: Wildcard, Channel: channel.String()},
		{Tenant: Wildcard, Channel: Wildcard},
	}
	for _, key := range chain {
		if p, ok := s.policies[key]; ok {
			return p
		}
	}
	return s.fallback
}
