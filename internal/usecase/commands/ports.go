package commands

import (
	"context"
	"fmt"
	"time"

	"notify-dispatch/internal/domain/budget"
	"notify-dispatch/internal/domain/credential"
	"notify-dispatch/internal/domain/notification"
	"notify-dispatch/internal/domain/retrypolicy"

	"github.com/google/uuid"
)

// Event types published on the per-tenant hub channel.
const (
	EventStatusChanged = "notification.status_changed"
	EventInAppMessage  = "notification.in_app"
	EventBudgetAlert   = "budget.alert"
)

type Event struct {
	Type      string    `json:"type"`
	TenantID  uuid.UUID `json:"tenant_id"`
	RecordID  uuid.UUID `json:"record_id,omitzero"`
	Status    string    `json:"status,omitempty"`
	ErrorCode string    `json:"error_code,omitempty"`
	Service   string    `json:"service,omitempty"`
	Channel   string    `json:"channel,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"body,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	At        time.Time `json:"at"`
}

func statusEvent(rec *notification.Record, at time.Time) Event {
	return Event{
		Type:      EventStatusChanged,
		TenantID:  rec.TenantID(),
		RecordID:  rec.ID(),
		Status:    rec.Status().String(),
		ErrorCode: rec.ErrorCode().String(),
		Service:   rec.ServiceOrigin(),
		Channel:   rec.Channel().String(),
		At:        at,
	}
}

type EventHub interface {
	Publish(ctx context.Context, event Event) error
}

// SendOutcome is what a provider reports on acceptance.
type SendOutcome struct {
	ProviderMsgID string
}

// SendFailure carries the machine-readable code of a failed provider call.
type SendFailure struct {
	Code    notification.ErrorCode
	Message string
}

func (f *SendFailure) Error() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

type Provider interface {
	Send(ctx context.Context, rec *notification.Record) (SendOutcome, error)
}

type ProviderRegistry interface {
	For(channel notification.Channel) (Provider, bool)
	// Health reports breaker states per channel in rank order.
	Health() map[notification.Channel][]string
	// Probe actively checks reachability of every ranked provider.
	Probe(ctx context.Context) map[notification.Channel][]bool
}

// DeviceRegistry is told about recipients a provider rejected for good,
// so the owning system can deactivate the address or device token.
type DeviceRegistry interface {
	ReportInvalid(ctx context.Context, tenantID uuid.UUID, channel notification.Channel, recipient string, code notification.ErrorCode) error
}

type NotificationRepository interface {
	Create(ctx context.Context, rec *notification.Record) error
	Update(ctx context.Context, rec *notification.Record) error
	CancelQueued(ctx context.Context, tenantID, id uuid.UUID, now time.Time) error
	ClaimDueByLane(ctx context.Context, lane notification.Lane, batch int, now, leaseUntil time.Time) ([]*notification.Record, error)
	ClaimDueRetries(ctx context.Context, batch int, now, leaseUntil time.Time) ([]*notification.Record, error)
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*notification.Record, error)
	FindByCorrelationKey(ctx context.Context, tenantID uuid.UUID, key string) (*notification.Record, error)
	FindByProviderMsgID(ctx context.Context, providerMsgID string) (*notification.Record, error)
	ExpireCorrelationKeys(ctx context.Context, before time.Time) (int64, error)
}

type BudgetRepository interface {
	FindLedger(ctx context.Context, tenantID uuid.UUID, service string, channel notification.Channel, period budget.Period) (*budget.Ledger, error)
	ConsumeCost(ctx context.Context, tenantID uuid.UUID, service string, channel notification.Channel, period budget.Period, costMicro int64, now time.Time) (*budget.Ledger, error)
	MarkAlertSent(ctx context.Context, tenantID uuid.UUID, service string, channel notification.Channel, period budget.Period, threshold float64, now time.Time) (bool, error)
	ListPendingAlerts(ctx context.Context, period budget.Period) ([]*budget.Ledger, error)
	SetLimit(ctx context.Context, tenantID uuid.UUID, service string, channel notification.Channel, limitMicro int64, period budget.Period, now time.Time) error
}

type RetryPolicyStore interface {
	LoadAll(ctx context.Context) (map[retrypolicy.PolicyKey]retrypolicy.Policy, error)
	Upsert(ctx context.Context, key retrypolicy.PolicyKey, policy retrypolicy.Policy, now time.Time) error
}

type CredentialRepository interface {
	Create(ctx context.Context, cred *credential.Credential) error
	FindByTenantService(ctx context.Context, tenantID uuid.UUID, service string) (*credential.Credential, error)
	TouchLastUsed(ctx context.Context, id uuid.UUID, now time.Time) error
	Deactivate(ctx context.Context, tenantID, id uuid.UUID) error
}

type JobLock interface {
	TryAcquire(ctx context.Context, name string, ttl time.Duration) (release func(), acquired bool, err error)
}
