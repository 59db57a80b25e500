package request

import (
	"time"

	"notify-dispatch/internal/domain/notification"

	"github.com/google/uuid"
)

type SendNotificationRequest struct {
	UserID         *uuid.UUID `json:"user_id,omitempty"`
	Channel        string     `json:"channel" binding:"required"`
	Recipient      string     `json:"recipient" binding:"required"`
	Subject        string     `json:"subject,omitempty"`
	Body           string     `json:"body" binding:"required"`
	Priority       string     `json:"priority,omitempty"`
	TemplateKey    string     `json:"template_key,omitempty"`
	CorrelationKey string     `json:"correlation_key,omitempty"`
	Synchronous    bool       `json:"synchronous,omitempty"`
	Bulk           bool       `json:"bulk,omitempty"`
	OverrideQuota  bool       `json:"override_quota,omitempty"`
	ScheduledFor   *time.Time `json:"scheduled_for,omitempty"`
}

// ToDomain validates the payload into an Intent. Tenant and service origin
// come from the authenticated credential, never from the request body.
// OverrideQuota must already be cleared by the handler unless the caller
// holds the admin scope.
func (r SendNotificationRequest) ToDomain(tenantID uuid.UUID, serviceOrigin string) (notification.Intent, error) {
	channel, err := notification.NewChannel(r.Channel)
	if err != nil {
		return notification.Intent{}, err
	}

	recipient, err := notification.NewRecipient(channel, r.Recipient)
	if err != nil {
		return notification.Intent{}, err
	}

	content, err := notification.NewContent(r.Subject, r.Body)
	if err != nil {
		return notification.Intent{}, err
	}

	priority := notification.Priority(r.Priority)
	if r.Priority != "" {
		priority, err = notification.NewPriority(r.Priority)
		if err != nil {
			return notification.Intent{}, err
		}
	}

	correlationKey, err := notification.NewCorrelationKey(r.CorrelationKey)
	if err != nil {
		return notification.Intent{}, err
	}

	userID := uuid.Nil
	if r.UserID != nil {
		userID = *r.UserID
	}

	return notification.NewIntent(notification.IntentParams{
		TenantID:       tenantID,
		UserID:         userID,
		ServiceOrigin:  serviceOrigin,
		Channel:        channel,
		Recipient:      recipient,
		Content:        content,
		Priority:       priority,
		TemplateKey:    r.TemplateKey,
		CorrelationKey: correlationKey,
		Synchronous:    r.Synchronous,
		Bulk:           r.Bulk,
		QuotaOverride:  r.OverrideQuota,
		ScheduledFor:   r.ScheduledFor,
	})
}
