package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/cockroachdb/errors"
)

var (
	ErrNotQueued         = errors.New("record is not queued")
	ErrNotSent           = errors.New("record is not sent")
	ErrAlreadyTerminal   = errors.New("record is already terminal")
	ErrInvalidLane       = errors.New("invalid lane")
	ErrMissingProviderID = errors.New("provider message id is required")
)

// Record is the persisted lifecycle of one notification. All state changes
// go through the transition methods so illegal moves cannot be persisted.
type Record struct {
	id             uuid.UUID
	tenantID       uuid.UUID
	userID         uuid.UUID
	serviceOrigin  string
	channel        Channel
	recipient      string
	subject        string
	body           string
	priority       Priority
	templateKey    string
	correlationKey string
	lane           Lane
	status         Status
	attemptCount   int
	errorCode      ErrorCode
	errorMessage   string
	providerMsgID  string
	costMicro      int64
	nextAttemptAt  *time.Time
	scheduledFor   *time.Time
	sentAt         *time.Time
	deliveredAt    *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

// NewRecord persists an admitted intent onto the given lane in the Queued
// state with zero attempts.
func NewRecord(id uuid.UUID, intent Intent, lane Lane, now time.Time) (*Record, error) {
	if !lane.IsValid() {
		return nil, ErrInvalidLane
	}
	now = now.UTC()
	return &Record{
		id:             id,
		tenantID:       intent.TenantID(),
		userID:         intent.UserID(),
		serviceOrigin:  intent.ServiceOrigin(),
		channel:        intent.Channel(),
		recipient:      intent.Recipient().Value(),
		subject:        intent.Content().Subject(),
		body:           intent.Content().Body(),
		priority:       intent.Priority(),
		templateKey:    intent.TemplateKey(),
		correlationKey: intent.CorrelationKey().Value(),
		lane:           lane,
		status:         StatusQueued,
		attemptCount:   0,
		scheduledFor:   intent.ScheduledFor(),
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// Reconstruct rebuilds a Record from persistence without validation.
func Reconstruct(
	id uuid.UUID,
	tenantID uuid.UUID,
	userID uuid.UUID,
	serviceOrigin string,
	channel Channel,
	recipient string,
	subject string,
	body string,
	priority Priority,
	templateKey string,
	correlationKey string,
	lane Lane,
	status Status,
	attemptCount int,
	errorCode ErrorCode,
	errorMessage string,
	providerMsgID string,
	costMicro int64,
	nextAttemptAt *time.Time,
	scheduledFor *time.Time,
	sentAt *time.Time,
	deliveredAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) *Record {
	return &Record{
		id:             id,
		tenantID:       tenantID,
		userID:         userID,
		serviceOrigin:  serviceOrigin,
		channel:        channel,
		recipient:      recipient,
		subject:        subject,
		body:           body,
		priority:       priority,
		templateKey:    templateKey,
		correlationKey: correlationKey,
		lane:           lane,
		status:         status,
		attemptCount:   attemptCount,
		errorCode:      errorCode,
		errorMessage:   errorMessage,
		providerMsgID:  providerMsgID,
		costMicro:      costMicro,
		nextAttemptAt:  nextAttemptAt,
		scheduledFor:   scheduledFor,
		sentAt:         sentAt,
		deliveredAt:    deliveredAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (r *Record) ID() uuid.UUID             { return r.id }
func (r *Record) TenantID() uuid.UUID       { return r.tenantID }
func (r *Record) UserID() uuid.UUID         { return r.userID }
func (r *Record) ServiceOrigin() string     { return r.serviceOrigin }
func (r *Record) Channel() Channel          { return r.channel }
func (r *Record) Recipient() string         { return r.recipient }
func (r *Record) Subject() string           { return r.subject }
func (r *Record) Body() string              { return r.body }
func (r *Record) Priority() Priority        { return r.priority }
func (r *Record) TemplateKey() string       { return r.templateKey }
func (r *Record) CorrelationKey() string    { return r.correlationKey }
func (r *Record) Lane() Lane                { return r.lane }
func (r *Record) Status() Status            { return r.status }
func (r *Record) AttemptCount() int         { return r.attemptCount }
func (r *Record) ErrorCode() ErrorCode      { return r.errorCode }
func (r *Record) ErrorMessage() string      { return r.errorMessage }
func (r *Record) ProviderMsgID() string     { return r.providerMsgID }
func (r *Record) CostMicro() int64          { return r.costMicro }
func (r *Record) NextAttemptAt() *time.Time { return r.nextAttemptAt }
func (r *Record) ScheduledFor() *time.Time  { return r.scheduledFor }
func (r *Record) SentAt() *time.Time        { return r.sentAt }
func (r *Record) DeliveredAt() *time.Time   { return r.deliveredAt }
func (r *Record) CreatedAt() time.Time      { return r.createdAt }
func (r *Record) UpdatedAt() time.Time      { return r.updatedAt }

// MarkSent records a successful provider attempt. The attempt counts toward
// the retry limit even though it succeeded.
func (r *Record) MarkSent(providerMsgID string, costMicro int64, now time.Time) error {
	if r.status != StatusQueued {
		return errors.WithDetailf(ErrNotQueued, "status=%s", r.status)
	}
	if providerMsgID == "" {
		return ErrMissingProviderID
	}
	now = now.UTC()
	r.status = StatusSent
	r.attemptCount++
	r.providerMsgID = providerMsgID
	r.costMicro = costMicro
	r.errorCode = ErrCodeNone
	r.errorMessage = ""
	r.nextAttemptAt = nil
	r.sentAt = &now
	r.updatedAt = now
	return nil
}

// MarkDelivered upgrades a sent record when the provider callback confirms
// receipt.
func (r *Record) MarkDelivered(now time.Time) error {
	if r.status != StatusSent {
		return errors.WithDetailf(ErrNotSent, "status=%s", r.status)
	}
	now = now.UTC()
	r.status = StatusDelivered
	r.deliveredAt = &now
	r.updatedAt = now
	return nil
}

// ScheduleRetry records a failed attempt and keeps the record queued for
// another try at nextAt.
func (r *Record) ScheduleRetry(code ErrorCode, message string, nextAt, now time.Time) error {
	if r.status != StatusQueued {
		return errors.WithDetailf(ErrNotQueued, "status=%s", r.status)
	}
	now = now.UTC()
	nextAt = nextAt.UTC()
	r.attemptCount++
	r.errorCode = code
	r.errorMessage = message
	r.nextAttemptAt = &nextAt
	r.updatedAt = now
	return nil
}

// FailAttempt records a failed attempt that will not be retried. The record
// goes terminal and is retained as a dead letter.
func (r *Record) FailAttempt(code ErrorCode, message string, now time.Time) error {
	if r.status != StatusQueued {
		return errors.WithDetailf(ErrNotQueued, "status=%s", r.status)
	}
	now = now.UTC()
	r.attemptCount++
	r.status = StatusFailed
	r.errorCode = code
	r.errorMessage = message
	r.nextAttemptAt = nil
	r.updatedAt = now
	return nil
}

// Deny fails the record without counting an attempt. Admission denials
// (quota, budget) never reach a provider.
func (r *Record) Deny(code ErrorCode, message string, now time.Time) error {
	if r.status != StatusQueued {
		return errors.WithDetailf(ErrNotQueued, "status=%s", r.status)
	}
	now = now.UTC()
	r.status = StatusFailed
	r.errorCode = code
	r.errorMessage = message
	r.nextAttemptAt = nil
	r.updatedAt = now
	return nil
}

// MarkCanceled withdraws a queued record before any further attempt.
func (r *Record) MarkCanceled(now time.Time) error {
	if r.status != StatusQueued {
		return errors.WithDetailf(ErrAlreadyTerminal, "status=%s", r.status)
	}
	now = now.UTC()
	r.status = StatusCanceled
	r.nextAttemptAt = nil
	r.updatedAt = now
	return nil
}

// Requeue puts a failed record back on its lane for a fresh delivery cycle.
// Attempts reset so the retry policy starts over.
func (r *Record) Requeue(now time.Time) error {
	if r.status != StatusFailed {
		return errors.WithDetailf(ErrInvalidStatus, "status=%s", r.status)
	}
	now = now.UTC()
	r.status = StatusQueued
	r.attemptCount = 0
	r.errorCode = ErrCodeNone
	r.errorMessage = ""
	r.nextAttemptAt = nil
	r.updatedAt = now
	return nil
}

// IsRetryPending reports whether the record is queued waiting for its next
// attempt time.
func (r *Record) IsRetryPending() bool {
	return r.status == StatusQueued && r.nextAttemptAt != nil
}
