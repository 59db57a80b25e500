package notification

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cockroachdb/errors"
)

var (
	ErrEmptyTenant        = errors.New("tenant id is required")
	ErrEmptyServiceOrigin = errors.New("service origin is required")
)

// Intent is a validated request to deliver one notification. It is immutable
// once built; admission and routing read it, the record persists it.
type Intent struct {
	tenantID       uuid.UUID
	userID         uuid.UUID
	serviceOrigin  string
	channel        Channel
	recipient      Recipient
	content        Content
	priority       Priority
	templateKey    string
	correlationKey CorrelationKey
	synchronous    bool
	bulk           bool
	quotaOverride  bool
	scheduledFor   *time.Time
}

type IntentParams struct {
	TenantID       uuid.UUID
	UserID         uuid.UUID
	ServiceOrigin  string
	Channel        Channel
	Recipient      Recipient
	Content        Content
	Priority       Priority
	TemplateKey    string
	CorrelationKey CorrelationKey
	Synchronous    bool
	Bulk           bool
	QuotaOverride  bool
	ScheduledFor   *time.Time
}

func NewIntent(p IntentParams) (Intent, error) {
	if p.TenantID == uuid.Nil {
		return Intent{}, ErrEmptyTenant
	}
	origin := strings.TrimSpace(p.ServiceOrigin)
	if origin == "" {
		return Intent{}, ErrEmptyServiceOrigin
	}
	if !p.Channel.IsValid() {
		return Intent{}, ErrInvalidChannel
	}
	if p.Recipient.IsZero() {
		return Intent{}, ErrEmptyRecipient
	}
	priority := p.Priority
	if priority == "" {
		priority = PriorityNormal
	}
	if !priority.IsValid() {
		return Intent{}, ErrInvalidPriority
	}
	var scheduledFor *time.Time
	if p.ScheduledFor != nil {
		t := p.ScheduledFor.UTC()
		scheduledFor = &t
	}
	return Intent{
		tenantID:       p.TenantID,
		userID:         p.UserID,
		serviceOrigin:  origin,
		channel:        p.Channel,
		recipient:      p.Recipient,
		content:        p.Content,
		priority:       priority,
		templateKey:    strings.TrimSpace(p.TemplateKey),
		correlationKey: p.CorrelationKey,
		synchronous:    p.Synchronous,
		bulk:           p.Bulk,
		quotaOverride:  p.QuotaOverride,
		scheduledFor:   scheduledFor,
	}, nil
}

func (i Intent) TenantID() uuid.UUID              { return i.tenantID }
func (i Intent) UserID() uuid.UUID                { return i.userID }
func (i Intent) ServiceOrigin() string            { return i.serviceOrigin }
func (i Intent) Channel() Channel                 { return i.channel }
func (i Intent) Recipient() Recipient             { return i.recipient }
func (i Intent) Content() Content                 { return i.content }
func (i Intent) Priority() Priority               { return i.priority }
func (i Intent) TemplateKey() string              { return i.templateKey }
func (i Intent) CorrelationKey() CorrelationKey   { return i.correlationKey }
func (i Intent) Synchronous() bool                { return i.synchronous }
func (i Intent) Bulk() bool                       { return i.bulk }
func (i Intent) QuotaOverride() bool              { return i.quotaOverride }
func (i Intent) ScheduledFor() *time.Time         { return i.scheduledFor }

// HasUser reports whether the intent targets a known end user, which is what
// makes the per-user rate bucket applicable.
func (i Intent) HasUser() bool {
	return i.userID != uuid.Nil
}
