package repository

import (
	"context"
	"log/slog"
	"time"

	"notify-dispatch/internal/domain/notification"
	"notify-dispatch/internal/infra"
	"notify-dispatch/internal/infra/db"
	"notify-dispatch/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const recordColumns = `
	id, tenant_id, user_id, service_origin, channel, recipient, subject, body,
	priority, template_key, correlation_key, lane, status, attempt_count,
	error_code, error_message, provider_msg_id, cost_micro,
	next_attempt_at, scheduled_for, sent_at, delivered_at, created_at, updated_at`

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(conn db.DBTX) *NotificationRepository {
	return &NotificationRepository{
		db: conn,
	}
}

// Create inserts a new record. A correlation key that already exists for the
// tenant makes the insert a no-op and surfaces as KindDuplicateKey so the
// caller can fetch and replay the prior record.
func (r *NotificationRepository) Create(ctx context.Context, rec *notification.Record) error {
	const query = `
		INSERT INTO notifications (
			id, tenant_id, user_id, service_origin, channel, recipient, subject, body,
			priority, template_key, correlation_key, lane, status, attempt_count,
			scheduled_for, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (tenant_id, correlation_key) WHERE correlation_key IS NOT NULL DO NOTHING`

	tag, err := r.db.Exec(ctx, query,
		rec.ID(),
		rec.TenantID(),
		nullableUUID(rec.UserID()),
		rec.ServiceOrigin(),
		rec.Channel().String(),
		rec.Recipient(),
		rec.Subject(),
		rec.Body(),
		rec.Priority().String(),
		rec.TemplateKey(),
		nullableText(rec.CorrelationKey()),
		rec.Lane().String(),
		rec.Status().String(),
		rec.AttemptCount(),
		pgconv.TimePtrToPgtype(rec.ScheduledFor()),
		pgconv.TimeToPgtype(rec.CreatedAt()),
		pgconv.TimeToPgtype(rec.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to create notification", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(slog.Default(), infra.KindDuplicateKey, "correlation key already used", nil)
	}
	return nil
}

// Update persists the mutable lifecycle fields of a record.
func (r *NotificationRepository) Update(ctx context.Context, rec *notification.Record) error {
	const query = `
		UPDATE notifications SET
			status = $2, attempt_count = $3, error_code = $4, error_message = $5,
			provider_msg_id = $6, cost_micro = $7, next_attempt_at = $8,
			sent_at = $9, delivered_at = $10, updated_at = $11
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		rec.ID(),
		rec.Status().String(),
		rec.AttemptCount(),
		rec.ErrorCode().String(),
		rec.ErrorMessage(),
		rec.ProviderMsgID(),
		rec.CostMicro(),
		pgconv.TimePtrToPgtype(rec.NextAttemptAt()),
		pgconv.TimePtrToPgtype(rec.SentAt()),
		pgconv.TimePtrToPgtype(rec.DeliveredAt()),
		pgconv.TimeToPgtype(rec.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to update notification", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "notification not found", nil)
	}
	return nil
}

// CancelQueued cancels a record only while it is still queued. The status
// check happens in the same statement so the cancel cannot race a worker
// that already sent the message.
func (r *NotificationRepository) CancelQueued(ctx context.Context, tenantID, id uuid.UUID, now time.Time) error {
	const query = `
		UPDATE notifications
		SET status = 'canceled', next_attempt_at = NULL, updated_at = $3
		WHERE id = $1 AND tenant_id = $2 AND status = 'queued'`

	tag, err := r.db.Exec(ctx, query, id, tenantID, pgconv.TimeToPgtype(now.UTC()))
	if err != nil {
		return infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to cancel notification", err)
	}
	if tag.RowsAffected() == 0 {
		const probe = `SELECT status FROM notifications WHERE id = $1 AND tenant_id = $2`
		var status string
		if err := r.db.QueryRow(ctx, probe, id, tenantID).Scan(&status); err != nil {
			if pgconv.IsNoRows(err) {
				return infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "notification not found", err)
			}
			return infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to probe notification status", err)
		}
		return infra.WrapRepoErr(slog.Default(), infra.KindConflict, "notification is no longer queued", nil)
	}
	return nil
}

// ClaimDueByLane leases a batch of never-attempted due records on one lane.
// SKIP LOCKED keeps concurrent pickers from double-claiming; the lease lands
// in next_attempt_at so rows from a crashed worker become due again on their
// own.
func (r *NotificationRepository) ClaimDueByLane(ctx context.Context, lane notification.Lane, batch int, now, leaseUntil time.Time) ([]*notification.Record, error) {
	const query = `
		WITH due AS (
			SELECT id FROM notifications
			WHERE status = 'queued' AND lane = $1 AND attempt_count = 0
			  AND (next_attempt_at IS NULL OR next_attempt_at <= $2)
			  AND (scheduled_for IS NULL OR scheduled_for <= $2)
			ORDER BY created_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		UPDATE notifications n
		SET next_attempt_at = $4, updated_at = $2
		FROM due
		WHERE n.id = due.id
		RETURNING ` + recordColumns

	rows, err := r.db.Query(ctx, query,
		lane.String(),
		pgconv.TimeToPgtype(now.UTC()),
		batch,
		pgconv.TimeToPgtype(leaseUntil.UTC()),
	)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to claim due notifications", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// ClaimDueRetries leases records whose backoff delay has elapsed, across all
// lanes. Rows with attempts are exclusively the retry picker's; lane drains
// only take fresh rows, so the two never double-send.
func (r *NotificationRepository) ClaimDueRetries(ctx context.Context, batch int, now, leaseUntil time.Time) ([]*notification.Record, error) {
	const query = `
		WITH due AS (
			SELECT id FROM notifications
			WHERE status = 'queued' AND attempt_count > 0 AND next_attempt_at <= $1
			ORDER BY next_attempt_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		UPDATE notifications n
		SET next_attempt_at = $3, updated_at = $1
		FROM due
		WHERE n.id = due.id
		RETURNING ` + recordColumns

	rows, err := r.db.Query(ctx, query,
		pgconv.TimeToPgtype(now.UTC()),
		batch,
		pgconv.TimeToPgtype(leaseUntil.UTC()),
	)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to claim due retries", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

func (r *NotificationRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*notification.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM notifications WHERE id = $1 AND tenant_id = $2`

	rec, err := scanRecord(r.db.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "notification not found", err)
		}
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to find notification", err)
	}
	return rec, nil
}

func (r *NotificationRepository) FindByCorrelationKey(ctx context.Context, tenantID uuid.UUID, key string) (*notification.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM notifications WHERE tenant_id = $1 AND correlation_key = $2`

	rec, err := scanRecord(r.db.QueryRow(ctx, query, tenantID, key))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "notification not found", err)
		}
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to find notification by correlation key", err)
	}
	return rec, nil
}

// ExpireCorrelationKeys clears keys older than the dedup window so they can
// be reused. Clearing the key drops the row out of the partial unique index;
// the record itself stays for history.
func (r *NotificationRepository) ExpireCorrelationKeys(ctx context.Context, before time.Time) (int64, error) {
	const query = `
		UPDATE notifications
		SET correlation_key = NULL
		WHERE correlation_key IS NOT NULL AND created_at < $1`

	tag, err := r.db.Exec(ctx, query, pgconv.TimeToPgtype(before.UTC()))
	if err != nil {
		return 0, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to expire correlation keys", err)
	}
	return tag.RowsAffected(), nil
}

func (r *NotificationRepository) FindByProviderMsgID(ctx context.Context, providerMsgID string) (*notification.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM notifications WHERE provider_msg_id = $1 ORDER BY created_at DESC LIMIT 1`

	rec, err := scanRecord(r.db.QueryRow(ctx, query, providerMsgID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "notification not found", err)
		}
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to find notification by provider message id", err)
	}
	return rec, nil
}

func nullableUUID(id uuid.UUID) pgtype.UUID {
	if id == uuid.Nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: id, Valid: true}
}

func nullableText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

func collectRecords(rows pgx.Rows) ([]*notification.Record, error) {
	var records []*notification.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to scan notification row", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to read notification rows", err)
	}
	return records, nil
}

func scanRecord(row pgx.Row) (*notification.Record, error) {
	var (
		id            uuid.UUID
		tenantID      uuid.UUID
		userID        pgtype.UUID
		serviceOrigin string
		channel       string
		recipient     string
		subject       string
		body          string
		priority      string
		templateKey   string
		correlation   pgtype.Text
		lane          string
		status        string
		attemptCount  int
		errorCode     string
		errorMessage  string
		providerMsgID string
		costMicro     int64
		nextAttemptAt pgtype.Timestamptz
		scheduledFor  pgtype.Timestamptz
		sentAt        pgtype.Timestamptz
		deliveredAt   pgtype.Timestamptz
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)

	if err := row.Scan(
		&id, &tenantID, &userID, &serviceOrigin, &channel, &recipient, &subject, &body,
		&priority, &templateKey, &correlation, &lane, &status, &attemptCount,
		&errorCode, &errorMessage, &providerMsgID, &costMicro,
		&nextAttemptAt, &scheduledFor, &sentAt, &deliveredAt, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	var uid uuid.UUID
	if p := pgconv.UUIDPtrFromPgtype(userID); p != nil {
		uid = *p
	}
	var correlationKey string
	if p := pgconv.StringPtrFromPgtype(correlation); p != nil {
		correlationKey = *p
	}

	return notification.Reconstruct(
		id,
		tenantID,
		uid,
		serviceOrigin,
		notification.Channel(channel),
		recipient,
		subject,
		body,
		notification.Priority(priority),
		templateKey,
		correlationKey,
		notification.Lane(lane),
		notification.Status(status),
		attemptCount,
		notification.ErrorCode(errorCode),
		errorMessage,
		providerMsgID,
		costMicro,
		pgconv.TimePtrFromPgtype(nextAttemptAt),
		pgconv.TimePtrFromPgtype(scheduledFor),
		pgconv.TimePtrFromPgtype(sentAt),
		pgconv.TimePtrFromPgtype(deliveredAt),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}
