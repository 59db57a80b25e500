package admission

import (
	"notify-dispatch/internal/domain/notification"

	"github.com/google/uuid"
)

// Subject is the slice of a send that admission decisions depend on. Both
// fresh intents and claimed retry records reduce to one; a retry is a fresh
// admission against current limits, so AdminOverride never carries over to
// retries.
type Subject struct {
	TenantID      uuid.UUID
	UserID        uuid.UUID
	Service       string
	Channel       notification.Channel
	Priority      notification.Priority
	Body          string
	AdminOverride bool
}

func SubjectFromIntent(intent notification.Intent) Subject {
	return Subject{
		TenantID:      intent.TenantID(),
		UserID:        intent.UserID(),
		Service:       intent.ServiceOrigin(),
		Channel:       intent.Channel(),
		Priority:      intent.Priority(),
		Body:          intent.Content().Body(),
		AdminOverride: intent.QuotaOverride(),
	}
}

func SubjectFromRecord(rec *notification.Record) Subject {
	return Subject{
		TenantID: rec.TenantID(),
		UserID:   rec.UserID(),
		Service:  rec.ServiceOrigin(),
		Channel:  rec.Channel(),
		Priority: rec.Priority(),
		Body:     rec.Body(),
	}
}

func (s Subject) HasUser() bool {
	return s.UserID != uuid.Nil
}
