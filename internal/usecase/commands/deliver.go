package commands

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"notify-dispatch/internal/domain/budget"
	"notify-dispatch/internal/domain/notification"
	"notify-dispatch/internal/domain/retrypolicy"
	"notify-dispatch/internal/domain/routing"
	"notify-dispatch/internal/pkg/clock"
	"notify-dispatch/internal/pkg/errs"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

var (
	ErrDeliveryPersistFailed = errs.New("failed to persist delivery outcome")
)

// asyncAttemptTimeout bounds provider calls made from worker lanes so one
// hung call cannot stall a drain batch. Sync sends use the sync latency
// target instead.
const asyncAttemptTimeout = 30 * time.Second

// PolicyResolver yields the retry policy for one send. The concrete
// implementation is an in-memory cache refreshed by the admin surface.
type PolicyResolver interface {
	Resolve(tenantID uuid.UUID, channel notification.Channel) retrypolicy.Policy
}

// Deliverer pushes one queued record through its channel provider and
// settles the outcome on the record: sent, scheduled for retry, or
// terminally failed. The mutated record tells the caller what happened.
type Deliverer interface {
	Attempt(ctx context.Context, rec *notification.Record) error
}

type delivererImpl struct {
	providers ProviderRegistry
	repo      NotificationRepository
	budgets   BudgetRepository
	policies  PolicyResolver
	costs     budget.CostTable
	hub       EventHub
	devices   DeviceRegistry
	clock     clock.Clock
	jitter    func() float64
	slogger   *slog.Logger
}

func NewDeliverer(
	providers ProviderRegistry,
	repo NotificationRepository,
	budgets BudgetRepository,
	policies PolicyResolver,
	costs budget.CostTable,
	hub EventHub,
	devices DeviceRegistry,
	clk clock.Clock,
	slogger *slog.Logger,
) Deliverer {
	return &delivererImpl{
		providers: providers,
		repo:      repo,
		budgets:   budgets,
		policies:  policies,
		costs:     costs,
		hub:       hub,
		devices:   devices,
		clock:     clk,
		jitter:    rand.Float64,
		slogger:   slogger,
	}
}

func (d *delivererImpl) Attempt(ctx context.Context, rec *notification.Record) error {
	provider, ok := d.providers.For(rec.Channel())
	if !ok {
		d.slogger.Error("no provider configured for channel", "channel", rec.Channel().String())
		return d.settleFailure(ctx, rec, notification.ErrCodeProviderUnavailable, "no provider configured for channel")
	}

	timeout := asyncAttemptTimeout
	if rec.Lane() == notification.LaneSync {
		timeout = routing.SyncLatency
	}
	sendCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := provider.Send(sendCtx, rec)
	if err != nil {
		code, msg := failureOf(err)
		return d.settleFailure(ctx, rec, code, msg)
	}
	return d.settleSuccess(ctx, rec, out)
}

func (d *delivererImpl) settleSuccess(ctx context.Context, rec *notification.Record, out SendOutcome) error {
	now := d.clock.Now()
	cost := d.costs.CostMicro(rec.Channel(), rec.Body())
	if err := rec.MarkSent(out.ProviderMsgID, cost, now); err != nil {
		return errs.Mark(err, ErrDeliveryPersistFailed)
	}
	if err := d.repo.Update(ctx, rec); err != nil {
		return errs.Mark(err, ErrDeliveryPersistFailed)
	}

	// Spend is recorded only after the provider accepted. A ledger write
	// failure is not a delivery failure; the scan job reconciles alerts.
	ledger, err := d.budgets.ConsumeCost(ctx, rec.TenantID(), rec.ServiceOrigin(), rec.Channel(), budget.PeriodOf(now), cost, now)
	if err != nil {
		d.slogger.Warn("failed to record budget spend", "record_id", rec.ID().String(), "error", err)
	} else {
		settleBudgetAlert(ctx, d.budgets, d.hub, d.clock, d.slogger, ledger)
	}

	d.publishStatus(ctx, rec, now)
	return nil
}

func (d *delivererImpl) settleFailure(ctx context.Context, rec *notification.Record, code notification.ErrorCode, msg string) error {
	now := d.clock.Now()

	if rec.Lane() == notification.LaneSync {
		// A sync send settles in one attempt; the caller owns any retry
		// or fallback decision.
		if err := rec.FailAttempt(code, msg, now); err != nil {
			return errs.Mark(err, ErrDeliveryPersistFailed)
		}
	} else {
		class := retrypolicy.Classify(code)
		policy := d.policies.Resolve(rec.TenantID(), rec.Channel())
		attemptsMade := rec.AttemptCount() + 1
		if policy.ShouldRetry(attemptsMade, class) {
			nextAt := policy.NextAttemptAt(now, attemptsMade, d.jitter())
			if err := rec.ScheduleRetry(code, msg, nextAt, now); err != nil {
				return errs.Mark(err, ErrDeliveryPersistFailed)
			}
		} else {
			finalCode := code
			if class == retrypolicy.ClassTransient {
				finalCode = notification.ErrCodeAttemptsExhausted
			}
			if err := rec.FailAttempt(finalCode, msg, now); err != nil {
				return errs.Mark(err, ErrDeliveryPersistFailed)
			}
		}
	}

	if err := d.repo.Update(ctx, rec); err != nil {
		return errs.Mark(err, ErrDeliveryPersistFailed)
	}
	if deadCredential(code) {
		d.reportDeadCredential(ctx, rec, code)
	}
	d.publishStatus(ctx, rec, now)
	return nil
}

// deadCredential picks out the rejections that condemn the recipient
// itself rather than this one message.
func deadCredential(code notification.ErrorCode) bool {
	return code == notification.ErrCodeInvalidRecipient || code == notification.ErrCodeTokenRevoked
}

func (d *delivererImpl) reportDeadCredential(ctx context.Context, rec *notification.Record, code notification.ErrorCode) {
	if err := d.devices.ReportInvalid(ctx, rec.TenantID(), rec.Channel(), rec.Recipient(), code); err != nil {
		d.slogger.Warn("failed to report dead recipient", "record_id", rec.ID().String(), "error", err)
	}
}

func (d *delivererImpl) publishStatus(ctx context.Context, rec *notification.Record, at time.Time) {
	if err := d.hub.Publish(ctx, statusEvent(rec, at)); err != nil {
		d.slogger.Warn("failed to publish status event", "record_id", rec.ID().String(), "error", err)
	}
}

// failureOf extracts the machine-readable code from a provider error.
// Errors without one count as provider faults.
func failureOf(err error) (notification.ErrorCode, string) {
	var failure *SendFailure
	if errors.As(err, &failure) {
		return failure.Code, failure.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return notification.ErrCodeSendTimeout, "provider call exceeded deadline"
	}
	return notification.ErrCodeProviderError, err.Error()
}

// settleBudgetAlert fires at most one event per ledger threshold. The
// database flag update is the race arbiter across instances.
func settleBudgetAlert(ctx context.Context, budgets BudgetRepository, hub EventHub, clk clock.Clock, slogger *slog.Logger, ledger *budget.Ledger) {
	threshold, pending := ledger.PendingAlert()
	if !pending {
		return
	}
	now := clk.Now()
	won, err := budgets.MarkAlertSent(ctx, ledger.TenantID(), ledger.Service(), ledger.Channel(), ledger.Period(), threshold, now)
	if err != nil {
		slogger.Warn("failed to mark budget alert", "tenant_id", ledger.TenantID().String(), "error", err)
		return
	}
	if !won {
		return
	}
	event := Event{
		Type:      EventBudgetAlert,
		TenantID:  ledger.TenantID(),
		Service:   ledger.Service(),
		Channel:   ledger.Channel().String(),
		Threshold: threshold,
		At:        now,
	}
	if err := hub.Publish(ctx, event); err != nil {
		slogger.Warn("failed to publish budget alert", "tenant_id", ledger.TenantID().String(), "error", err)
	}
}
