package commands

import (
	"context"
	"log/slog"
	"time"

	"notify-dispatch/internal/domain/notification"
	"notify-dispatch/internal/pkg/clock"
	"notify-dispatch/internal/pkg/errs"
	"notify-dispatch/internal/usecase/admission"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var ErrClaimFailed = errs.New("failed to claim due notifications")

// claimLease is how long a claimed row stays invisible to other workers.
// A crashed worker's claims become due again once the lease lapses.
const claimLease = 2 * time.Minute

type LaneRunnerConfig struct {
	BatchSize   int
	Concurrency int
	BulkPerSec  float64
}

// LaneRunner is the worker-facing surface: claim due work and push it
// through the deliverer. Returns how many records were claimed so the
// worker can log drain progress.
type LaneRunner interface {
	DrainLane(ctx context.Context, lane notification.Lane) (int, error)
	RunDueRetries(ctx context.Context) (int, error)
}

type laneRunnerImpl struct {
	repo           NotificationRepository
	deliverer      Deliverer
	rateLimiter    admission.RateLimiter
	budgetEnforcer admission.BudgetEnforcer
	hub            EventHub
	clock          clock.Clock
	cfg            LaneRunnerConfig
	bulkPace       *rate.Limiter
	slogger        *slog.Logger
}

func NewLaneRunner(
	repo NotificationRepository,
	deliverer Deliverer,
	rateLimiter admission.RateLimiter,
	budgetEnforcer admission.BudgetEnforcer,
	hub EventHub,
	clk clock.Clock,
	cfg LaneRunnerConfig,
	slogger *slog.Logger,
) LaneRunner {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	bulkPace := rate.NewLimiter(rate.Inf, 1)
	if cfg.BulkPerSec > 0 {
		bulkPace = rate.NewLimiter(rate.Limit(cfg.BulkPerSec), 1)
	}
	return &laneRunnerImpl{
		repo:           repo,
		deliverer:      deliverer,
		rateLimiter:    rateLimiter,
		budgetEnforcer: budgetEnforcer,
		hub:            hub,
		clock:          clk,
		cfg:            cfg,
		bulkPace:       bulkPace,
		slogger:        slogger,
	}
}

// DrainLane claims one batch of due first-attempt sends and delivers them
// concurrently. Bulk sends additionally pass through the pace limiter so a
// campaign cannot saturate the providers.
func (l *laneRunnerImpl) DrainLane(ctx context.Context, lane notification.Lane) (int, error) {
	now := l.clock.Now()
	records, err := l.repo.ClaimDueByLane(ctx, lane, l.cfg.BatchSize, now, now.Add(claimLease))
	if err != nil {
		return 0, errs.Mark(err, ErrClaimFailed)
	}
	if len(records) == 0 {
		return 0, nil
	}

	var g errgroup.Group
	g.SetLimit(l.cfg.Concurrency)
	for _, rec := range records {
		g.Go(func() error {
			if lane == notification.LaneBulk {
				if err := l.bulkPace.Wait(ctx); err != nil {
					return err
				}
			}
			if err := l.deliverer.Attempt(ctx, rec); err != nil {
				l.slogger.Error("delivery attempt failed", "record_id", rec.ID().String(), "error", err)
				return err
			}
			return nil
		})
	}
	return len(records), g.Wait()
}

// RunDueRetries claims sends whose backoff has elapsed. A retry re-enters
// admission: limits and budget apply at send time, not enqueue time.
func (l *laneRunnerImpl) RunDueRetries(ctx context.Context) (int, error) {
	now := l.clock.Now()
	records, err := l.repo.ClaimDueRetries(ctx, l.cfg.BatchSize, now, now.Add(claimLease))
	if err != nil {
		return 0, errs.Mark(err, ErrClaimFailed)
	}
	if len(records) == 0 {
		return 0, nil
	}

	var g errgroup.Group
	g.SetLimit(l.cfg.Concurrency)
	for _, rec := range records {
		g.Go(func() error {
			if err := l.retryOne(ctx, rec); err != nil {
				l.slogger.Error("retry attempt failed", "record_id", rec.ID().String(), "error", err)
				return err
			}
			return nil
		})
	}
	return len(records), g.Wait()
}

func (l *laneRunnerImpl) retryOne(ctx context.Context, rec *notification.Record) error {
	subject := admission.SubjectFromRecord(rec)

	rateDecision, err := l.rateLimiter.CheckAndConsume(ctx, subject)
	if err != nil {
		return err
	}
	if !rateDecision.Allowed {
		return l.denyClaimed(ctx, rec, notification.ErrCodeQuotaDenied,
			"rate limit exceeded at "+rateDecision.DeniedBy.String()+" scope on retry")
	}

	budgetCheck, err := l.budgetEnforcer.Check(ctx, subject)
	if err != nil {
		return err
	}
	if !budgetCheck.Decision.Allowed {
		return l.denyClaimed(ctx, rec, notification.ErrCodeBudgetDenied,
			"monthly budget exhausted on retry")
	}

	return l.deliverer.Attempt(ctx, rec)
}

func (l *laneRunnerImpl) denyClaimed(ctx context.Context, rec *notification.Record, code notification.ErrorCode, msg string) error {
	now := l.clock.Now()
	if err := rec.Deny(code, msg, now); err != nil {
		return errs.Mark(err, ErrDeliveryPersistFailed)
	}
	if err := l.repo.Update(ctx, rec); err != nil {
		return errs.Mark(err, ErrDeliveryPersistFailed)
	}
	if err := l.hub.Publish(ctx, statusEvent(rec, now)); err != nil {
		l.slogger.Warn("failed to publish status event", "record_id", rec.ID().String(), "error", err)
	}
	return nil
}
