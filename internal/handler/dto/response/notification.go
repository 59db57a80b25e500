package response

import (
	"time"

	"notify-dispatch/internal/usecase/commands"
	"notify-dispatch/internal/usecase/queries"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID             uuid.UUID  `json:"id"`
	TenantID       uuid.UUID  `json:"tenant_id"`
	UserID         *uuid.UUID `json:"user_id,omitempty"`
	ServiceOrigin  string     `json:"service_origin"`
	Channel        string     `json:"channel"`
	Recipient      string     `json:"recipient"`
	Subject        *string    `json:"subject,omitempty"`
	Body           string     `json:"body"`
	Priority       string     `json:"priority"`
	TemplateKey    *string    `json:"template_key,omitempty"`
	CorrelationKey *string    `json:"correlation_key,omitempty"`
	Lane           string     `json:"lane"`
	Status         string     `json:"status"`
	AttemptCount   int32      `json:"attempt_count"`
	ErrorCode      *string    `json:"error_code,omitempty"`
	ErrorMessage   *string    `json:"error_message,omitempty"`
	ProviderMsgID  *string    `json:"provider_msg_id,omitempty"`
	CostMicro      int64      `json:"cost_micro"`
	NextAttemptAt  *time.Time `json:"next_attempt_at,omitempty"`
	ScheduledFor   *time.Time `json:"scheduled_for,omitempty"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type NotificationListResponse struct {
	ID            uuid.UUID `json:"id"`
	ServiceOrigin string    `json:"service_origin"`
	Channel       string    `json:"channel"`
	Recipient     string    `json:"recipient"`
	Priority      string    `json:"priority"`
	Lane          string    `json:"lane"`
	Status        string    `json:"status"`
	AttemptCount  int32     `json:"attempt_count"`
	ErrorCode     *string   `json:"error_code,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// DispatchResponse wraps the send result. The HTTP status carries the
// admission verdict; outcome repeats it for clients that only read bodies.
type DispatchResponse struct {
	Notification  *NotificationResponse `json:"notification"`
	Outcome       string                `json:"outcome"`
	Replayed      bool                  `json:"replayed,omitempty"`
	BudgetWarning bool                  `json:"budget_warning,omitempty"`
}

func FromNotificationView(v *queries.NotificationView) *NotificationResponse {
	return &NotificationResponse{
		ID:             v.ID,
		TenantID:       v.TenantID,
		UserID:         v.UserID,
		ServiceOrigin:  v.ServiceOrigin,
		Channel:        v.Channel,
		Recipient:      v.Recipient,
		Subject:        v.Subject,
		Body:           v.Body,
		Priority:       v.Priority,
		TemplateKey:    v.TemplateKey,
		CorrelationKey: v.CorrelationKey,
		Lane:           v.Lane,
		Status:         v.Status,
		AttemptCount:   v.AttemptCount,
		ErrorCode:      v.ErrorCode,
		ErrorMessage:   v.ErrorMessage,
		ProviderMsgID:  v.ProviderMsgID,
		CostMicro:      v.CostMicro,
		NextAttemptAt:  v.NextAttemptAt,
		ScheduledFor:   v.ScheduledFor,
		SentAt:         v.SentAt,
		DeliveredAt:    v.DeliveredAt,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func FromNotificationList(items []*queries.NotificationListItem) []*NotificationListResponse {
	res := make([]*NotificationListResponse, len(items))
	for i, it := range items {
		res[i] = &NotificationListResponse{
			ID:            it.ID,
			ServiceOrigin: it.ServiceOrigin,
			Channel:       it.Channel,
			Recipient:     it.Recipient,
			Priority:      it.Priority,
			Lane:          it.Lane,
			Status:        it.Status,
			AttemptCount:  it.AttemptCount,
			ErrorCode:     it.ErrorCode,
			CreatedAt:     it.CreatedAt,
		}
	}
	return res
}

func FromDispatchResult(r *commands.DispatchResult) *DispatchResponse {
	return &DispatchResponse{
		Notification:  FromNotificationView(r.Notification),
		Outcome:       string(r.Outcome),
		Replayed:      r.Replayed,
		BudgetWarning: r.BudgetWarning,
	}
}

type BudgetLedgerResponse struct {
	TenantID      uuid.UUID `json:"tenant_id"`
	Service       string    `json:"service"`
	Channel       string    `json:"channel"`
	Period        string    `json:"period"`
	LimitMicro    int64     `json:"limit_micro"`
	ConsumedMicro int64     `json:"consumed_micro"`
	Utilization   float64   `json:"utilization"`
	Alert80Sent   bool      `json:"alert80_sent"`
	Alert100Sent  bool      `json:"alert100_sent"`
}

func FromLedgerList(items []*queries.BudgetLedgerView) []*BudgetLedgerResponse {
	res := make([]*BudgetLedgerResponse, len(items))
	for i, v := range items {
		res[i] = &BudgetLedgerResponse{
			TenantID:      v.TenantID,
			Service:       v.Service,
			Channel:       v.Channel,
			Period:        v.Period,
			LimitMicro:    v.LimitMicro,
			ConsumedMicro: v.ConsumedMicro,
			Utilization:   v.Utilization,
			Alert80Sent:   v.Alert80Sent,
			Alert100Sent:  v.Alert100Sent,
		}
	}
	return res
}
