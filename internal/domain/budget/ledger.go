package budget

import (
	"time"

	"notify-dispatch/internal/domain/notification"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

var (
	ErrInvalidPeriod = errors.New("invalid budget period")
	ErrNegativeCost  = errors.New("cost must not be negative")
)

// Period is a calendar month in UTC, formatted YYYY-MM. Keying ledgers by
// period makes the monthly reset implicit: a new month reads as a fresh
// ledger with zero consumption.
type Period string

func PeriodOf(t time.Time) Period {
	return Period(t.UTC().Format("2006-01"))
}

func (p Period) String() string {
	return string(p)
}

func (p Period) IsValid() bool {
	_, err := time.Parse("2006-01", string(p))
	return err == nil
}

const (
	warnThreshold = 0.8
	fullThreshold = 1.0
)

// Ledger accumulates delivery spend for one tenant, service, channel and
// period. LimitMicro zero or below means the combination is unmetered.
type Ledger struct {
	tenantID      uuid.UUID
	service       string
	channel       notification.Channel
	period        Period
	limitMicro    int64
	consumedMicro int64
	alert80Sent   bool
	alert100Sent  bool
}

func NewLedger(tenantID uuid.UUID, service string, channel notification.Channel, period Period, limitMicro int64) (*Ledger, error) {
	if !period.IsValid() {
		return nil, ErrInvalidPeriod
	}
	return &Ledger{
		tenantID:   tenantID,
		service:    service,
		channel:    channel,
		period:     period,
		limitMicro: limitMicro,
	}, nil
}

func ReconstructLedger(
	tenantID uuid.UUID,
	service string,
	channel notification.Channel,
	period Period,
	limitMicro int64,
	consumedMicro int64,
	alert80Sent bool,
	alert100Sent bool,
) *Ledger {
	return &Ledger{
		tenantID:      tenantID,
		service:       service,
		channel:       channel,
		period:        period,
		limitMicro:    limitMicro,
		consumedMicro: consumedMicro,
		alert80Sent:   alert80Sent,
		alert100Sent:  alert100Sent,
	}
}

func (l *Ledger) TenantID() uuid.UUID              { return l.tenantID }
func (l *Ledger) Service() string                  { return l.service }
func (l *Ledger) Channel() notification.Channel    { return l.channel }
func (l *Ledger) Period() Period                   { return l.period }
func (l *Ledger) LimitMicro() int64                { return l.limitMicro }
func (l *Ledger) ConsumedMicro() int64             { return l.consumedMicro }
func (l *Ledger) Alert80Sent() bool                { return l.alert80Sent }
func (l *Ledger) Alert100Sent() bool               { return l.alert100Sent }

func (l *Ledger) Metered() bool {
	return l.limitMicro > 0
}

// Utilization is the consumed fraction of the limit. Unmetered ledgers
// report zero.
func (l *Ledger) Utilization() float64 {
	if !l.Metered() {
		return 0
	}
	return float64(l.consumedMicro) / float64(l.limitMicro)
}

// Decision is the outcome of a budget check. Warning marks a High priority
// send that was let through over a spent budget.
type Decision struct {
	Allowed bool
	Warning bool
}

// Check admits or denies an estimated cost against the remaining budget.
// A send whose projected utilization reaches 100% is denied for Normal and
// Low priority; High priority goes through flagged with a warning.
func (l *Ledger) Check(estimatedMicro int64, priority notification.Priority) (Decision, error) {
	if estimatedMicro < 0 {
		return Decision{}, ErrNegativeCost
	}
	if !l.Metered() {
		return Decision{Allowed: true}, nil
	}
	projected := float64(l.consumedMicro+estimatedMicro) / float64(l.limitMicro)
	if projected < fullThreshold {
		return Decision{Allowed: true}, nil
	}
	if priority.AtLeast(notification.PriorityHigh) {
		return Decision{Allowed: true, Warning: true}, nil
	}
	return Decision{Allowed: false}, nil
}

// Consume adds actual spend to the ledger. Call it only after a provider
// accepted the message; denials and failures must not consume budget.
func (l *Ledger) Consume(costMicro int64) error {
	if costMicro < 0 {
		return ErrNegativeCost
	}
	l.consumedMicro += costMicro
	return nil
}

// PendingAlert reports the highest unsent threshold alert, if any. The sent
// flags are one-shot per period.
func (l *Ledger) PendingAlert() (threshold float64, pending bool) {
	if !l.Metered() {
		return 0, false
	}
	u := l.Utilization()
	if u >= fullThreshold && !l.alert100Sent {
		return fullThreshold, true
	}
	if u >= warnThreshold && !l.alert80Sent {
		return warnThreshold, true
	}
	return 0, false
}

// MarkAlerted records that the threshold alert went out. Reaching 100%
// also implies the 80% alert is no longer pending.
func (l *Ledger) MarkAlerted(threshold float64) {
	if threshold >= fullThreshold {
		l.alert100Sent = true
		l.alert80Sent = true
		return
	}
	if threshold >= warnThreshold {
		l.alert80Sent = true
	}
}
