package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"notify-dispatch/internal/domain/credential"
	"notify-dispatch/internal/infra"
	"notify-dispatch/internal/infra/db"
	"notify-dispatch/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const uniqueViolationCode = "23505"

type CredentialRepository struct {
	db db.DBTX
}

func NewCredentialRepository(conn db.DBTX) *CredentialRepository {
	return &CredentialRepository{
		db: conn,
	}
}

func (r *CredentialRepository) Create(ctx context.Context, cred *credential.Credential) error {
	const query = `
		INSERT INTO service_credentials (id, tenant_id, service, secret_hash, scopes, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		cred.ID(),
		cred.TenantID(),
		cred.Service(),
		cred.SecretHash(),
		cred.Scopes(),
		cred.IsActive(),
		pgconv.TimeToPgtype(cred.CreatedAt()),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return infra.WrapRepoErr(slog.Default(), infra.KindDuplicateKey, "credential already exists for service", err)
		}
		return infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to create credential", err)
	}
	return nil
}

func (r *CredentialRepository) FindByTenantService(ctx context.Context, tenantID uuid.UUID, service string) (*credential.Credential, error) {
	const query = `
		SELECT id, tenant_id, service, secret_hash, scopes, is_active, created_at, last_used_at
		FROM service_credentials
		WHERE tenant_id = $1 AND service = $2`

	var (
		id         uuid.UUID
		tenant     uuid.UUID
		svc        string
		secretHash string
		scopes     []string
		isActive   bool
		createdAt  pgtype.Timestamptz
		lastUsedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, query, tenantID, service).Scan(
		&id, &tenant, &svc, &secretHash, &scopes, &isActive, &createdAt, &lastUsedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "credential not found", err)
		}
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to find credential", err)
	}

	return credential.Reconstruct(
		id, tenant, svc, secretHash, scopes, isActive,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimePtrFromPgtype(lastUsedAt),
	), nil
}

func (r *CredentialRepository) TouchLastUsed(ctx context.Context, id uuid.UUID, now time.Time) error {
	const query = `UPDATE service_credentials SET last_used_at = $2 WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, pgconv.TimeToPgtype(now.UTC())); err != nil {
		return infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to touch credential", err)
	}
	return nil
}

func (r *CredentialRepository) Deactivate(ctx context.Context, tenantID, id uuid.UUID) error {
	const query = `UPDATE service_credentials SET is_active = FALSE WHERE id = $1 AND tenant_id = $2`

	tag, err := r.db.Exec(ctx, query, id, tenantID)
	if err != nil {
		return infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to deactivate credential", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "credential not found", nil)
	}
	return nil
}
