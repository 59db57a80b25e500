package provider

import (
	"context"

	"notify-dispatch/internal/domain/notification"
	"notify-dispatch/internal/domain/retrypolicy"
	"notify-dispatch/internal/pkg/clock"
	"notify-dispatch/internal/usecase/commands"

	"github.com/cockroachdb/errors"
)

// ChannelProvider is one concrete delivery backend: the usecase-facing
// Send plus a lightweight reachability probe for the ops surface.
type ChannelProvider interface {
	commands.Provider
	HealthCheck(ctx context.Context) bool
}

// rankedProvider pairs one backend with its own breaker. Rank order is
// the plan file order: primary first, then its fallbacks.
type rankedProvider struct {
	inner   ChannelProvider
	breaker Breaker
}

// gateway fronts one channel's ranked providers. A send walks the ranks,
// skipping any whose breaker rejects, so an open primary fails over to
// the next rank. The first rank admitted by its breaker owns the attempt,
// whichever way it ends.
type gateway struct {
	ranks []rankedProvider
	clock clock.Clock
}

func newGateway(clk clock.Clock, ranks ...rankedProvider) *gateway {
	return &gateway{ranks: ranks, clock: clk}
}

func (g *gateway) Send(ctx context.Context, rec *notification.Record) (commands.SendOutcome, error) {
	for _, r := range g.ranks {
		if !r.breaker.Allow(g.clock.Now()) {
			continue
		}
		return g.sendThrough(ctx, r, rec)
	}
	return commands.SendOutcome{}, &commands.SendFailure{
		Code:    notification.ErrCodeProviderUnavailable,
		Message: "circuit open",
	}
}

func (g *gateway) sendThrough(ctx context.Context, r rankedProvider, rec *notification.Record) (commands.SendOutcome, error) {
	out, err := r.inner.Send(ctx, rec)
	if err != nil {
		// A permanent rejection means the provider answered and judged the
		// message, so it counts as a healthy round trip.
		var failure *commands.SendFailure
		if errors.As(err, &failure) && retrypolicy.Classify(failure.Code) == retrypolicy.ClassPermanent {
			r.breaker.RecordSuccess()
		} else {
			r.breaker.RecordFailure(g.clock.Now())
		}
		return commands.SendOutcome{}, err
	}

	r.breaker.RecordSuccess()
	return out, nil
}
