package quota

import (
	"time"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidCapacity = errors.New("bucket capacity must be positive")
	ErrInvalidRefill   = errors.New("bucket refill rate must be positive")
)

// Scope identifies which bucket in the admission chain made a decision.
// Buckets are checked narrowest first: user, then service, then tenant.
type Scope string

const (
	ScopeUser    Scope = "user"
	ScopeService Scope = "service"
	ScopeTenant  Scope = "tenant"
)

func (s Scope) String() string {
	return string(s)
}

// BucketSpec parameterizes one token bucket. Capacity zero disables the
// bucket entirely, which is how plans opt a scope out of limiting.
type BucketSpec struct {
	Capacity     int64
	RefillPerSec float64
}

func (b BucketSpec) Enabled() bool {
	return b.Capacity > 0
}

func (b BucketSpec) Validate() error {
	if b.Capacity < 0 {
		return ErrInvalidCapacity
	}
	if b.Capacity > 0 && b.RefillPerSec <= 0 {
		return ErrInvalidRefill
	}
	return nil
}

// RetryAfter reports how long until one token has accrued on an empty
// bucket, rounded up to a whole second.
func (b BucketSpec) RetryAfter() time.Duration {
	if !b.Enabled() || b.RefillPerSec <= 0 {
		return 0
	}
	d := time.Duration(float64(time.Second) / b.RefillPerSec)
	if r := d.Round(time.Second); r >= d {
		return r
	}
	return d.Round(time.Second) + time.Second
}

// Plan carries the bucket parameters for each scope of one tenant/service
// combination.
type Plan struct {
	PerUser    BucketSpec
	PerService BucketSpec
	PerTenant  BucketSpec
}

func (p Plan) Validate() error {
	if err := p.PerUser.Validate(); err != nil {
		return errors.Wrap(err, "per-user bucket")
	}
	if err := p.PerService.Validate(); err != nil {
		return errors.Wrap(err, "per-service bucket")
	}
	if err := p.PerTenant.Validate(); err != nil {
		return errors.Wrap(err, "per-tenant bucket")
	}
	return nil
}

// Decision is the outcome of an admission check. DeniedBy is only set when
// Allowed is false.
type Decision struct {
	Allowed    bool
	DeniedBy   Scope
	RetryAfter time.Duration
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(scope Scope, retryAfter time.Duration) Decision {
	return Decision{Allowed: false, DeniedBy: scope, RetryAfter: retryAfter}
}
