//go:build unit || e2e

package builder

import (
	"time"

	"notify-dispatch/internal/domain/notification"
	reqdto "notify-dispatch/internal/handler/dto/request"
	"notify-dispatch/internal/usecase/queries"

	"github.com/google/uuid"
)

type IntentBuilder struct {
	TenantID       uuid.UUID
	UserID         uuid.UUID
	ServiceOrigin  string
	Channel        string
	Recipient      string
	Subject        string
	Body           string
	Priority       string
	TemplateKey    string
	CorrelationKey string
	Synchronous    bool
	Bulk           bool
	OverrideQuota  bool
	ScheduledFor   *time.Time
}

func NewIntentBuilder() *IntentBuilder {
	return &IntentBuilder{
		TenantID:      uuid.New(),
		UserID:        uuid.New(),
		ServiceOrigin: "orders",
		Channel:       "email",
		Recipient:     "customer@example.com",
		Subject:       "Order confirmed",
		Body:          "Your order #1234 has been confirmed.",
		Priority:      "normal",
		TemplateKey:   "order_confirmed",
	}
}

func (b *IntentBuilder) With(mutate func(*IntentBuilder)) *IntentBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *IntentBuilder) BuildDomain() (notification.Intent, error) {
	channel, err := notification.NewChannel(b.Channel)
	if err != nil {
		return notification.Intent{}, err
	}

	recipient, err := notification.NewRecipient(channel, b.Recipient)
	if err != nil {
		return notification.Intent{}, err
	}

	content, err := notification.NewContent(b.Subject, b.Body)
	if err != nil {
		return notification.Intent{}, err
	}

	correlationKey, err := notification.NewCorrelationKey(b.CorrelationKey)
	if err != nil {
		return notification.Intent{}, err
	}

	var priority notification.Priority
	if b.Priority != "" {
		priority, err = notification.NewPriority(b.Priority)
		if err != nil {
			return notification.Intent{}, err
		}
	}

	return notification.NewIntent(notification.IntentParams{
		TenantID:       b.TenantID,
		UserID:         b.UserID,
		ServiceOrigin:  b.ServiceOrigin,
		Channel:        channel,
		Recipient:      recipient,
		Content:        content,
		Priority:       priority,
		TemplateKey:    b.TemplateKey,
		CorrelationKey: correlationKey,
		Synchronous:    b.Synchronous,
		Bulk:           b.Bulk,
		QuotaOverride:  b.OverrideQuota,
		ScheduledFor:   b.ScheduledFor,
	})
}

func (b *IntentBuilder) BuildRecord(lane notification.Lane, now time.Time) (*notification.Record, error) {
	intent, err := b.BuildDomain()
	if err != nil {
		return nil, err
	}
	return notification.NewRecord(uuid.New(), intent, lane, now)
}

func (b *IntentBuilder) BuildSendRequestDTO() reqdto.SendNotificationRequest {
	req := reqdto.SendNotificationRequest{
		Channel:        b.Channel,
		Recipient:      b.Recipient,
		Subject:        b.Subject,
		Body:           b.Body,
		Priority:       b.Priority,
		TemplateKey:    b.TemplateKey,
		CorrelationKey: b.CorrelationKey,
		Synchronous:    b.Synchronous,
		Bulk:           b.Bulk,
		OverrideQuota:  b.OverrideQuota,
		ScheduledFor:   b.ScheduledFor,
	}
	if b.UserID != uuid.Nil {
		userID := b.UserID
		req.UserID = &userID
	}
	return req
}

func (b *IntentBuilder) BuildView(lane notification.Lane, status notification.Status) *queries.NotificationView {
	now := time.Now().UTC()
	view := &queries.NotificationView{
		ID:            uuid.New(),
		TenantID:      b.TenantID,
		ServiceOrigin: b.ServiceOrigin,
		Channel:       b.Channel,
		Recipient:     b.Recipient,
		Body:          b.Body,
		Priority:      b.Priority,
		Lane:          lane.String(),
		Status:        status.String(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if b.UserID != uuid.Nil {
		userID := b.UserID
		view.UserID = &userID
	}
	if b.Subject != "" {
		subject := b.Subject
		view.Subject = &subject
	}
	if b.TemplateKey != "" {
		key := b.TemplateKey
		view.TemplateKey = &key
	}
	if b.CorrelationKey != "" {
		key := b.CorrelationKey
		view.CorrelationKey = &key
	}
	return view
}

func (b *IntentBuilder) BuildListItem(lane notification.Lane, status notification.Status) *queries.NotificationListItem {
	return &queries.NotificationListItem{
		ID:            uuid.New(),
		ServiceOrigin: b.ServiceOrigin,
		Channel:       b.Channel,
		Recipient:     b.Recipient,
		Priority:      b.Priority,
		Lane:          lane.String(),
		Status:        status.String(),
		CreatedAt:     time.Now().UTC(),
	}
}

// Fluent builder methods
func (b *IntentBuilder) WithTenantID(id uuid.UUID) *IntentBuilder {
	b.TenantID = id
	return b
}

func (b *IntentBuilder) WithUserID(id uuid.UUID) *IntentBuilder {
	b.UserID = id
	return b
}

func (b *IntentBuilder) WithoutUser() *IntentBuilder {
	b.UserID = uuid.Nil
	return b
}

func (b *IntentBuilder) WithServiceOrigin(origin string) *IntentBuilder {
	b.ServiceOrigin = origin
	return b
}

func (b *IntentBuilder) WithChannel(channel string) *IntentBuilder {
	b.Channel = channel
	return b
}

func (b *IntentBuilder) WithRecipient(recipient string) *IntentBuilder {
	b.Recipient = recipient
	return b
}

func (b *IntentBuilder) WithBody(body string) *IntentBuilder {
	b.Body = body
	return b
}

func (b *IntentBuilder) WithSubject(subject string) *IntentBuilder {
	b.Subject = subject
	return b
}

func (b *IntentBuilder) WithPriority(priority string) *IntentBuilder {
	b.Priority = priority
	return b
}

func (b *IntentBuilder) WithTemplateKey(key string) *IntentBuilder {
	b.TemplateKey = key
	return b
}

func (b *IntentBuilder) WithCorrelationKey(key string) *IntentBuilder {
	b.CorrelationKey = key
	return b
}

func (b *IntentBuilder) AsSynchronous() *IntentBuilder {
	b.Synchronous = true
	return b
}

func (b *IntentBuilder) AsBulk() *IntentBuilder {
	b.Bulk = true
	return b
}

func (b *IntentBuilder) WithQuotaOverride() *IntentBuilder {
	b.OverrideQuota = true
	return b
}
