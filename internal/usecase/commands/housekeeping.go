package commands

import (
	"context"
	"log/slog"
	"time"

	"notify-dispatch/internal/pkg/clock"
	"notify-dispatch/internal/pkg/errs"
)

var ErrHousekeepingFailed = errs.New("failed to expire correlation keys")

// Housekeeper retires correlation keys whose dedup window has lapsed. An
// expired key drops out of the unique index, so the same key accepted again
// starts a new send instead of replaying the old one.
type Housekeeper interface {
	ExpireCorrelations(ctx context.Context) (int64, error)
}

type housekeeperImpl struct {
	repo    NotificationRepository
	window  time.Duration
	clock   clock.Clock
	slogger *slog.Logger
}

func NewHousekeeper(repo NotificationRepository, window time.Duration, clk clock.Clock, slogger *slog.Logger) Housekeeper {
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &housekeeperImpl{repo: repo, window: window, clock: clk, slogger: slogger}
}

func (h *housekeeperImpl) ExpireCorrelations(ctx context.Context) (int64, error) {
	before := h.clock.Now().Add(-h.window)
	n, err := h.repo.ExpireCorrelationKeys(ctx, before)
	if err != nil {
		return 0, errs.Mark(err, ErrHousekeepingFailed)
	}
	return n, nil
}
