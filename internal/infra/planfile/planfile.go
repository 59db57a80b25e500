package planfile

import (
	"os"

	"notify-dispatch/internal/domain/budget"
	"notify-dispatch/internal/domain/quota"
	"notify-dispatch/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

// File is the operator-managed dispatch plan: provider endpoints, rate
// limit plans, critical templates and the cost table, all in one YAML file.
type File struct {
	Providers         map[string]ProviderConfig `yaml:"providers"`
	RatePlans         []RatePlan                `yaml:"rate_plans"`
	CriticalTemplates []string                  `yaml:"critical_templates"`
	Costs             *CostConfig               `yaml:"cost_table"`
}

type ProviderConfig struct {
	Kind      string `yaml:"kind"`
	Endpoint  string `yaml:"endpoint"`
	APIKey    string `yaml:"api_key"`
	TimeoutMS int    `yaml:"timeout_ms"`

	// SMTP fields, used when kind is smtp.
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`

	// Fallbacks are lower-ranked providers for the same channel, tried in
	// order when the ranks above them have their circuits open. Fallbacks
	// of fallbacks are not read.
	Fallbacks []ProviderConfig `yaml:"fallbacks,omitempty"`
}

type BucketConfig struct {
	Capacity     int64   `yaml:"capacity"`
	RefillPerSec float64 `yaml:"refill_per_sec"`
}

type RatePlan struct {
	Tenant     string       `yaml:"tenant"`
	Service    string       `yaml:"service"`
	PerUser    BucketConfig `yaml:"per_user"`
	PerService BucketConfig `yaml:"per_service"`
	PerTenant  BucketConfig `yaml:"per_tenant"`
}

type CostConfig struct {
	EmailMicro      int64 `yaml:"email_micro"`
	SMSSegmentMicro int64 `yaml:"sms_segment_micro"`
	PushMicro       int64 `yaml:"push_micro"`
	InAppMicro      int64 `yaml:"in_app_micro"`
}

// Load reads the plan file. A missing file falls back to built-in defaults
// so a fresh checkout runs without any provisioning.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errs.Wrap(err, "failed to read plan file")
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, errs.Wrap(err, "failed to parse plan file")
	}
	if _, err := f.PlanSet(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Default mirrors a conservative multi-tenant setup: every provider mocked,
// one global rate plan.
func Default() *File {
	return &File{
		Providers: map[string]ProviderConfig{
			"sms":    {Kind: "mock"},
			"email":  {Kind: "mock"},
			"push":   {Kind: "mock"},
			"in_app": {Kind: "hub"},
		},
		RatePlans: []RatePlan{
			{
				Tenant:     quota.Wildcard,
				Service:    quota.Wildcard,
				PerUser:    BucketConfig{Capacity: 10, RefillPerSec: 1},
				PerService: BucketConfig{Capacity: 100, RefillPerSec: 20},
				PerTenant:  BucketConfig{Capacity: 1000, RefillPerSec: 200},
			},
		},
	}
}

func (f *File) PlanSet() (quota.PlanSet, error) {
	plans := make(map[quota.PlanKey]quota.Plan, len(f.RatePlans))
	for _, rp := range f.RatePlans {
		tenant := rp.Tenant
		if tenant == "" {
			tenant = quota.Wildcard
		}
		service := rp.Service
		if service == "" {
			service = quota.Wildcard
		}
		plan := quota.Plan{
			PerUser:    quota.BucketSpec{Capacity: rp.PerUser.Capacity, RefillPerSec: rp.PerUser.RefillPerSec},
			PerService: quota.BucketSpec{Capacity: rp.PerService.Capacity, RefillPerSec: rp.PerService.RefillPerSec},
			PerTenant:  quota.BucketSpec{Capacity: rp.PerTenant.Capacity, RefillPerSec: rp.PerTenant.RefillPerSec},
		}
		if err := plan.Validate(); err != nil {
			return quota.PlanSet{}, errs.Wrap(err, "invalid rate plan for "+tenant+"/"+service)
		}
		plans[quota.PlanKey{Tenant: tenant, Service: service}] = plan
	}
	return quota.NewPlanSet(plans), nil
}

func (f *File) CostTable() budget.CostTable {
	if f.Costs == nil {
		return budget.DefaultCostTable()
	}
	return budget.CostTable{
		EmailMicro:      f.Costs.EmailMicro,
		SMSSegmentMicro: f.Costs.SMSSegmentMicro,
		PushMicro:       f.Costs.PushMicro,
		InAppMicro:      f.Costs.InAppMicro,
	}
}
