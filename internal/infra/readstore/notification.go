package readstore

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"notify-dispatch/internal/domain/budget"
	"notify-dispatch/internal/infra"
	"notify-dispatch/internal/infra/db"
	"notify-dispatch/internal/pkg/pgconv"
	"notify-dispatch/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const notificationViewColumns = `
	id, tenant_id, user_id, service_origin, channel, recipient,
	subject, body, priority, template_key, correlation_key, lane,
	status, attempt_count, error_code, error_message, provider_msg_id,
	cost_micro, next_attempt_at, scheduled_for, sent_at, delivered_at,
	created_at, updated_at`

const notificationListColumns = `
	id, service_origin, channel, recipient, priority, lane,
	status, attempt_count, error_code, created_at`

type NotificationReadStore struct {
	db db.DBTX
}

func NewNotificationReadStore(dbtx db.DBTX) *NotificationReadStore {
	return &NotificationReadStore{db: dbtx}
}

func (r *NotificationReadStore) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*queries.NotificationView, error) {
	query := `SELECT ` + notificationViewColumns + ` FROM notifications WHERE tenant_id = $1 AND id = $2`
	view, err := scanNotificationView(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "notification not found", err)
		}
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to find notification view", err)
	}
	return view, nil
}

func (r *NotificationReadStore) ListFirstPage(ctx context.Context, tenantID uuid.UUID, filters queries.NotificationFilters, limit int32) ([]*queries.NotificationListItem, error) {
	query, args := buildListQuery(tenantID, filters, nil, uuid.Nil, limit)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to list notifications", err)
	}
	defer rows.Close()
	return collectListItems(rows)
}

func (r *NotificationReadStore) ListKeyset(ctx context.Context, tenantID uuid.UUID, filters queries.NotificationFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.NotificationListItem, error) {
	query, args := buildListQuery(tenantID, filters, &lastCreatedAt, lastID, limit)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to list notifications keyset", err)
	}
	defer rows.Close()
	return collectListItems(rows)
}

func (r *NotificationReadStore) LedgersByTenant(ctx context.Context, tenantID uuid.UUID, period budget.Period) ([]*queries.BudgetLedgerView, error) {
	query := `
		SELECT tenant_id, service, channel, period, limit_micro, consumed_micro, alert80_sent, alert100_sent
		FROM budget_ledgers
		WHERE tenant_id = $1 AND period = $2
		ORDER BY service, channel`
	rows, err := r.db.Query(ctx, query, tenantID, period.String())
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to list budget ledgers", err)
	}
	defer rows.Close()

	var views []*queries.BudgetLedgerView
	for rows.Next() {
		v := &queries.BudgetLedgerView{}
		if err := rows.Scan(
			&v.TenantID, &v.Service, &v.Channel, &v.Period,
			&v.LimitMicro, &v.ConsumedMicro, &v.Alert80Sent, &v.Alert100Sent,
		); err != nil {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to scan budget ledger row", err)
		}
		if v.LimitMicro > 0 {
			v.Utilization = float64(v.ConsumedMicro) / float64(v.LimitMicro)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to read budget ledger rows", err)
	}
	return views, nil
}

// buildListQuery assembles the filtered listing with optional keyset
// predicate. Positions are assigned in append order so filters stay
// composable.
func buildListQuery(tenantID uuid.UUID, filters queries.NotificationFilters, lastCreatedAt *time.Time, lastID uuid.UUID, limit int32) (string, []any) {
	query := `SELECT ` + notificationListColumns + ` FROM notifications WHERE tenant_id = $1`
	args := []any{tenantID}

	if filters.Status != "" {
		args = append(args, filters.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filters.Channel != "" {
		args = append(args, filters.Channel)
		query += ` AND channel = $` + strconv.Itoa(len(args))
	}
	if filters.Service != "" {
		args = append(args, filters.Service)
		query += ` AND service_origin = $` + strconv.Itoa(len(args))
	}
	if lastCreatedAt != nil {
		args = append(args, *lastCreatedAt, lastID)
		query += ` AND (created_at, id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, limit)
	query += ` ORDER BY created_at DESC, id DESC LIMIT $` + strconv.Itoa(len(args))
	return query, args
}

func collectListItems(rows pgx.Rows) ([]*queries.NotificationListItem, error) {
	var items []*queries.NotificationListItem
	for rows.Next() {
		var (
			item      queries.NotificationListItem
			errorCode string
		)
		if err := rows.Scan(
			&item.ID, &item.ServiceOrigin, &item.Channel, &item.Recipient,
			&item.Priority, &item.Lane, &item.Status, &item.AttemptCount,
			&errorCode, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to scan notification row", err)
		}
		item.ErrorCode = textPtr(errorCode)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to read notification rows", err)
	}
	return items, nil
}

func scanNotificationView(row pgx.Row) (*queries.NotificationView, error) {
	var (
		v             queries.NotificationView
		userID        pgtype.UUID
		subject       string
		templateKey   string
		correlation   pgtype.Text
		errorCode     string
		errorMessage  string
		providerMsgID string
		nextAttemptAt pgtype.Timestamptz
		scheduledFor  pgtype.Timestamptz
		sentAt        pgtype.Timestamptz
		deliveredAt   pgtype.Timestamptz
	)

	if err := row.Scan(
		&v.ID, &v.TenantID, &userID, &v.ServiceOrigin, &v.Channel, &v.Recipient,
		&subject, &v.Body, &v.Priority, &templateKey, &correlation, &v.Lane,
		&v.Status, &v.AttemptCount, &errorCode, &errorMessage, &providerMsgID,
		&v.CostMicro, &nextAttemptAt, &scheduledFor, &sentAt, &deliveredAt,
		&v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}

	v.UserID = pgconv.UUIDPtrFromPgtype(userID)
	v.Subject = textPtr(subject)
	v.TemplateKey = textPtr(templateKey)
	v.CorrelationKey = pgconv.StringPtrFromPgtype(correlation)
	v.ErrorCode = textPtr(errorCode)
	v.ErrorMessage = textPtr(errorMessage)
	v.ProviderMsgID = textPtr(providerMsgID)
	v.NextAttemptAt = pgconv.TimePtrFromPgtype(nextAttemptAt)
	v.ScheduledFor = pgconv.TimePtrFromPgtype(scheduledFor)
	v.SentAt = pgconv.TimePtrFromPgtype(sentAt)
	v.DeliveredAt = pgconv.TimePtrFromPgtype(deliveredAt)
	return &v, nil
}

func textPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
