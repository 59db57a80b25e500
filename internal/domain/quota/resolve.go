package quota

import (
	"github.com/google/uuid"
)

// Wildcard matches any tenant or any service in a plan key.
const Wildcard = "*"

// PlanKey addresses one plan entry. Tenant is a UUID string or Wildcard,
// Service is a service origin name or Wildcard.
type PlanKey struct {
	Tenant  string
	Service string
}

// PlanSet is an in-memory plan table. Resolution is a pure lookup; loading
// and refreshing the table is the store layer's concern.
type PlanSet struct {
	plans map[PlanKey]Plan
}

func NewPlanSet(plans map[PlanKey]Plan) PlanSet {
	if plans == nil {
		plans = map[PlanKey]Plan{}
	}
	return PlanSet{plans: plans}
}

// Resolve walks the override chain from most to least specific and returns
// the first plan found: tenant+service, tenant+*, global+service, global+*.
func (s PlanSet) Resolve(tenantID uuid.UUID, service string) (Plan, PlanKey, bool) {
	tenant := tenantID.String()
	chain := []PlanKey{
		{Tenant: tenant, Service: service},
		{Tenant: tenant, Service: Wildcard},
		{Tenant: Wildcard, Service: service},
		{Tenant: Wildcard, Service: Wildcard},
	}
	for _, key := range chain {
		if plan, ok := s.plans[key]; ok {
			return plan, key, true
		}
	}
	return Plan{}, PlanKey{}, false
}

func (s PlanSet) Len() int {
	return len(s.plans)
}
