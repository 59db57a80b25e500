package commands

import (
	"context"
	"log/slog"
	"time"

	"notify-dispatch/internal/domain/notification"
	"notify-dispatch/internal/domain/routing"
	reqdto "notify-dispatch/internal/handler/dto/request"
	"notify-dispatch/internal/infra"
	"notify-dispatch/internal/pkg/clock"
	"notify-dispatch/internal/pkg/errs"
	"notify-dispatch/internal/usecase/admission"
	"notify-dispatch/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrDomainValidation        = errs.New("domain validation error")
	ErrRecordNotFound          = errs.New("notification not found")
	ErrNotificationNotQueued   = errs.New("notification is no longer queued")
	ErrInvalidTransition       = errs.New("invalid notification state transition")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// DispatchOutcome tells the API layer what happened to the send, which maps
// directly onto response status codes.
type DispatchOutcome string

const (
	OutcomeSent         DispatchOutcome = "sent"
	OutcomeQueued       DispatchOutcome = "queued"
	OutcomeDeniedQuota  DispatchOutcome = "denied_quota"
	OutcomeDeniedBudget DispatchOutcome = "denied_budget"
	OutcomeFailed       DispatchOutcome = "failed"
	OutcomeCanceled     DispatchOutcome = "canceled"
)

type DispatchResult struct {
	Notification  *queries.NotificationView
	Outcome       DispatchOutcome
	Replayed      bool
	BudgetWarning bool
	RetryAfter    time.Duration
}

type NotificationCommands interface {
	Dispatch(ctx context.Context, req reqdto.SendNotificationRequest, tenantID uuid.UUID, serviceOrigin string) (*DispatchResult, error)
	Cancel(ctx context.Context, tenantID, id uuid.UUID) error
	Requeue(ctx context.Context, tenantID, id uuid.UUID) (*queries.NotificationView, error)
	ConfirmDelivery(ctx context.Context, providerMsgID string) (*queries.NotificationView, error)
}

type notificationUseCaseImpl struct {
	repo                NotificationRepository
	rateLimiter         admission.RateLimiter
	budgetEnforcer      admission.BudgetEnforcer
	router              *routing.Router
	deliverer           Deliverer
	notificationQueries queries.NotificationQueries
	hub                 EventHub
	clock               clock.Clock
	slogger             *slog.Logger
}

func NewNotificationUseCase(
	repo NotificationRepository,
	rateLimiter admission.RateLimiter,
	budgetEnforcer admission.BudgetEnforcer,
	router *routing.Router,
	deliverer Deliverer,
	notificationQueries queries.NotificationQueries,
	hub EventHub,
	clk clock.Clock,
	slogger *slog.Logger,
) NotificationCommands {
	return &notificationUseCaseImpl{
		repo:                repo,
		rateLimiter:         rateLimiter,
		budgetEnforcer:      budgetEnforcer,
		router:              router,
		deliverer:           deliverer,
		notificationQueries: notificationQueries,
		hub:                 hub,
		clock:               clk,
		slogger:             slogger,
	}
}

// Dispatch runs the full admission pipeline for one send: validate, claim
// the correlation key, rate limit, budget check, then deliver inline or
// queue for a lane worker.
func (u *notificationUseCaseImpl) Dispatch(
	ctx context.Context,
	req reqdto.SendNotificationRequest,
	tenantID uuid.UUID,
	serviceOrigin string,
) (*DispatchResult, error) {
	intent, err := req.ToDomain(tenantID, serviceOrigin)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	lane := u.router.Classify(intent)
	now := u.clock.Now()
	rec, err := notification.NewRecord(uuid.New(), intent, lane, now)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := u.repo.Create(ctx, rec); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return u.replayByCorrelation(ctx, tenantID, intent.CorrelationKey().Value())
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	u.publishStatus(ctx, rec)

	subject := admission.SubjectFromIntent(intent)

	rate, err := u.rateLimiter.CheckAndConsume(ctx, subject)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !rate.Allowed {
		result, err := u.denyRecord(ctx, rec, notification.ErrCodeQuotaDenied,
			"rate limit exceeded at "+rate.DeniedBy.String()+" scope")
		if result != nil {
			result.Outcome = OutcomeDeniedQuota
			result.RetryAfter = rate.RetryAfter
		}
		return result, err
	}

	budgetCheck, err := u.budgetEnforcer.Check(ctx, subject)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !budgetCheck.Decision.Allowed {
		result, err := u.denyRecord(ctx, rec, notification.ErrCodeBudgetDenied,
			"monthly budget exhausted for "+subject.Service+"/"+subject.Channel.String())
		if result != nil {
			result.Outcome = OutcomeDeniedBudget
		}
		return result, err
	}

	if lane == notification.LaneSync {
		if err := u.deliverer.Attempt(ctx, rec); err != nil {
			return nil, err
		}
	}

	result, err := u.resultFor(ctx, rec.TenantID(), rec.ID())
	if err != nil {
		return nil, err
	}
	result.BudgetWarning = budgetCheck.Decision.Warning
	return result, nil
}

// replayByCorrelation returns the prior outcome for a correlation key that
// has already been claimed, so retried requests converge on one record.
func (u *notificationUseCaseImpl) replayByCorrelation(ctx context.Context, tenantID uuid.UUID, key string) (*DispatchResult, error) {
	prior, err := u.repo.FindByCorrelationKey(ctx, tenantID, key)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	result, err := u.resultFor(ctx, tenantID, prior.ID())
	if err != nil {
		return nil, err
	}
	result.Replayed = true
	return result, nil
}

func (u *notificationUseCaseImpl) denyRecord(ctx context.Context, rec *notification.Record, code notification.ErrorCode, msg string) (*DispatchResult, error) {
	now := u.clock.Now()
	if err := rec.Deny(code, msg, now); err != nil {
		return nil, errs.Mark(err, ErrInvalidTransition)
	}
	if err := u.repo.Update(ctx, rec); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	u.publishStatus(ctx, rec)
	return u.resultFor(ctx, rec.TenantID(), rec.ID())
}

// resultFor assembles the response from the read store after the write
// settles, so the caller sees exactly what was persisted.
func (u *notificationUseCaseImpl) resultFor(ctx context.Context, tenantID, id uuid.UUID) (*DispatchResult, error) {
	view, err := u.notificationQueries.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &DispatchResult{
		Notification: view,
		Outcome:      outcomeFromView(view),
	}, nil
}

func outcomeFromView(view *queries.NotificationView) DispatchOutcome {
	switch notification.Status(view.Status) {
	case notification.StatusSent, notification.StatusDelivered:
		return OutcomeSent
	case notification.StatusCanceled:
		return OutcomeCanceled
	case notification.StatusFailed:
		if view.ErrorCode != nil {
			switch notification.ErrorCode(*view.ErrorCode) {
			case notification.ErrCodeQuotaDenied:
				return OutcomeDeniedQuota
			case notification.ErrCodeBudgetDenied:
				return OutcomeDeniedBudget
			}
		}
		return OutcomeFailed
	default:
		return OutcomeQueued
	}
}

// Cancel withdraws a queued notification. Races with a concurrent worker
// settle in the database: whoever transitions the row first wins.
func (u *notificationUseCaseImpl) Cancel(ctx context.Context, tenantID, id uuid.UUID) error {
	err := u.repo.CancelQueued(ctx, tenantID, id, u.clock.Now())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrRecordNotFound
		}
		if infra.IsKind(err, infra.KindConflict) {
			return ErrNotificationNotQueued
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	rec, err := u.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		u.slogger.Warn("failed to load canceled notification for event", "id", id.String(), "error", err)
		return nil
	}
	u.publishStatus(ctx, rec)
	return nil
}

// Requeue redrives a dead-lettered notification with a fresh attempt
// budget. It re-enters its lane like a new send.
func (u *notificationUseCaseImpl) Requeue(ctx context.Context, tenantID, id uuid.UUID) (*queries.NotificationView, error) {
	rec, err := u.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := rec.Requeue(u.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrInvalidTransition)
	}
	if err := u.repo.Update(ctx, rec); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	u.publishStatus(ctx, rec)

	view, err := u.notificationQueries.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// ConfirmDelivery applies a provider delivery receipt, looked up by the
// provider's own message id.
func (u *notificationUseCaseImpl) ConfirmDelivery(ctx context.Context, providerMsgID string) (*queries.NotificationView, error) {
	rec, err := u.repo.FindByProviderMsgID(ctx, providerMsgID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := rec.MarkDelivered(u.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrInvalidTransition)
	}
	if err := u.repo.Update(ctx, rec); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	u.publishStatus(ctx, rec)

	view, err := u.notificationQueries.GetByID(ctx, rec.TenantID(), rec.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *notificationUseCaseImpl) publishStatus(ctx context.Context, rec *notification.Record) {
	if err := u.hub.Publish(ctx, statusEvent(rec, u.clock.Now())); err != nil {
		u.slogger.Warn("failed to publish status event", "record_id", rec.ID().String(), "error", err)
	}
}
