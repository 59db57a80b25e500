package retrypolicy

import (
	"math"
	"time"

	"notify-dispatch/internal/domain/notification"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")
	ErrInvalidBaseDelay   = errors.New("base delay must be positive")
	ErrInvalidFactor      = errors.New("factor must be at least 1")
)

// Class partitions failures by what a retry could achieve. Admission
// denials are deterministic and never retried; permanent failures will
// fail again until the recipient data changes.
type Class string

const (
	ClassTransient Class = "transient"
	ClassPermanent Class = "permanent"
	ClassAdmission Class = "admission"
)

// Classify maps an error code to its retry class. Unknown codes are treated
// as transient so a new provider failure mode does not silently dead-letter
// traffic.
func Classify(code notification.ErrorCode) Class {
	switch code {
	case notification.ErrCodeQuotaDenied, notification.ErrCodeBudgetDenied:
		return ClassAdmission
	case notification.ErrCodeInvalidRecipient,
		notification.ErrCodeTokenRevoked,
		notification.ErrCodeUnsupportedContent:
		return ClassPermanent
	default:
		return ClassTransient
	}
}

// Policy parameterizes the exponential backoff for one tenant/channel
// combination.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Factor      float64
	MaxDelay    time.Duration
	JitterBound time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   30 * time.Second,
		Factor:      2.0,
		MaxDelay:    10 * time.Minute,
		JitterBound: 10 * time.Second,
	}
}

func (p Policy) Validate() error {
	if p.MaxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}
	if p.BaseDelay <= 0 {
		return ErrInvalidBaseDelay
	}
	if p.Factor < 1 {
		return ErrInvalidFactor
	}
	return nil
}

// BackoffDelay computes the deterministic part of the wait before the next
// attempt. attemptsMade is the 1-based count of attempts already performed,
// so the first retry waits BaseDelay.
func (p Policy) BackoffDelay(attemptsMade int) time.Duration {
	if attemptsMade < 1 {
		attemptsMade = 1
	}
	delay := float64(p.BaseDelay) * math.Pow(p.Factor, float64(attemptsMade-1))
	if delay > float64(p.MaxDelay) {
		return p.MaxDelay
	}
	return time.Duration(delay)
}

// NextAttemptAt schedules the next attempt. jitterFrac must be in [0, 1);
// the caller supplies the randomness so scheduling stays testable.
func (p Policy) NextAttemptAt(now time.Time, attemptsMade int, jitterFrac float64) time.Time {
	jitter := time.Duration(jitterFrac * float64(p.JitterBound))
	return now.UTC().Add(p.BackoffDelay(attemptsMade) + jitter)
}

// ShouldRetry reports whether another attempt is worth making after
// attemptsMade attempts failed with the given class.
func (p Policy) ShouldRetry(attemptsMade int, class Class) bool {
	if class != ClassTransient {
		return false
	}
	return attemptsMade < p.MaxAttempts
}
