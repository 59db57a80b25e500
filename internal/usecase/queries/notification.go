package queries

import (
	"context"
	"time"

	"notify-dispatch/internal/domain/budget"
	"notify-dispatch/internal/infra"
	"notify-dispatch/internal/pkg/clock"
	"notify-dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNotificationNotFound = errs.New("notification not found")
	ErrInvalidCursor        = errs.New("invalid cursor")
	ErrInvalidPeriod        = errs.New("invalid billing period")
)

type NotificationView struct {
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

type NotificationListItem struct {
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

type BudgetLedgerView struct {
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

// NotificationFilters narrows listings. Empty fields match everything.
type NotificationFilters struct {
	Status  string
	Channel string
	Service string
}

type NotificationReadStore interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*NotificationView, error)
	ListFirstPage(ctx context.Context, tenantID uuid.UUID, filters NotificationFilters, limit int32) ([]*NotificationListItem, error)
	ListKeyset(ctx context.Context, tenantID uuid.UUID, filters NotificationFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*NotificationListItem, error)
	LedgersByTenant(ctx context.Context, tenantID uuid.UUID, period budget.Period) ([]*BudgetLedgerView, error)
}

type NotificationQueries interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*NotificationView, error)
	List(ctx context.Context, tenantID uuid.UUID, filters NotificationFilters, cursor *Cursor, limit int) ([]*NotificationListItem, *Cursor, error)
	ListDeadLetters(ctx context.Context, tenantID uuid.UUID, cursor *Cursor, limit int) ([]*NotificationListItem, *Cursor, error)
	ListLedgers(ctx context.Context, tenantID uuid.UUID, period string) ([]*BudgetLedgerView, error)
}

type notificationQueriesImpl struct {
	repo  NotificationReadStore
	clock clock.Clock
}

func NewNotificationQueries(repo NotificationReadStore, clk clock.Clock) NotificationQueries {
	return &notificationQueriesImpl{repo: repo, clock: clk}
}

func (q *notificationQueriesImpl) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*NotificationView, error) {
	view, err := q.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *notificationQueriesImpl) List(ctx context.Context, tenantID uuid.UUID, filters NotificationFilters, cursor *Cursor, limit int) ([]*NotificationListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*NotificationListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.ListFirstPage(ctx, tenantID, filters, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.ListKeyset(ctx, tenantID, filters, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

// ListDeadLetters surfaces terminally failed notifications for operator
// review and requeueing.
func (q *notificationQueriesImpl) ListDeadLetters(ctx context.Context, tenantID uuid.UUID, cursor *Cursor, limit int) ([]*NotificationListItem, *Cursor, error) {
	return q.List(ctx, tenantID, NotificationFilters{Status: "failed"}, cursor, limit)
}

func (q *notificationQueriesImpl) ListLedgers(ctx context.Context, tenantID uuid.UUID, period string) ([]*BudgetLedgerView, error) {
	p := budget.Period(period)
	if period == "" {
		p = budget.PeriodOf(q.clock.Now())
	} else if !p.IsValid() {
		return nil, ErrInvalidPeriod
	}
	return q.repo.LedgersByTenant(ctx, tenantID, p)
}
