package provider

import (
	"context"
	"log/slog"
	"time"

	"notify-dispatch/internal/domain/notification"
	"notify-dispatch/internal/infra/planfile"
	"notify-dispatch/internal/pkg/clock"
	"notify-dispatch/internal/pkg/errs"
	"notify-dispatch/internal/usecase/commands"
)

// Settings tunes the breaker wrapped around every ranked provider.
type Settings struct {
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

// Registry maps channels to breaker-fronted provider chains built from
// the plan file. Channels without a configured provider are simply absent.
type Registry struct {
	gateways map[notification.Channel]commands.Provider
	ranks    map[notification.Channel][]rankedProvider
}

func NewRegistry(
	configs map[string]planfile.ProviderConfig,
	settings Settings,
	hub commands.EventHub,
	clk clock.Clock,
	slogger *slog.Logger,
) (*Registry, error) {
	reg := &Registry{
		gateways: make(map[notification.Channel]commands.Provider, len(configs)),
		ranks:    make(map[notification.Channel][]rankedProvider, len(configs)),
	}
	for name, pc := range configs {
		channel, err := notification.NewChannel(name)
		if err != nil {
			return nil, errs.Wrap(err, "invalid provider channel "+name)
		}
		chain := append([]planfile.ProviderConfig{pc}, pc.Fallbacks...)
		ranks := make([]rankedProvider, 0, len(chain))
		for _, rc := range chain {
			inner, err := build(channel, rc, hub, clk, slogger)
			if err != nil {
				return nil, errs.Wrap(err, "failed to build provider for "+name)
			}
			ranks = append(ranks, rankedProvider{
				inner:   inner,
				breaker: NewMemoryBreaker(settings.BreakerThreshold, settings.BreakerCooldown),
			})
		}
		reg.ranks[channel] = ranks
		reg.gateways[channel] = newGateway(clk, ranks...)
	}
	return reg, nil
}

func build(
	channel notification.Channel,
	pc planfile.ProviderConfig,
	hub commands.EventHub,
	clk clock.Clock,
	slogger *slog.Logger,
) (ChannelProvider, error) {
	switch pc.Kind {
	case "http":
		if pc.Endpoint == "" {
			return nil, errs.New("http provider requires an endpoint")
		}
		return NewHTTPProvider(channel, pc.Endpoint, pc.APIKey, time.Duration(pc.TimeoutMS)*time.Millisecond), nil
	case "smtp":
		if pc.Host == "" {
			return nil, errs.New("smtp provider requires a host")
		}
		return NewSMTPProvider(pc.Host, pc.Port, pc.Username, pc.Password, pc.From)
	case "hub":
		return NewHubProvider(hub, clk), nil
	case "mock":
		return NewMockProvider(channel, slogger), nil
	default:
		return nil, errs.New("unknown provider kind: " + pc.Kind)
	}
}

func (r *Registry) For(channel notification.Channel) (commands.Provider, bool) {
	p, ok := r.gateways[channel]
	return p, ok
}

// Health reports breaker states per channel in rank order for the ops
// surface.
func (r *Registry) Health() map[notification.Channel][]string {
	out := make(map[notification.Channel][]string, len(r.ranks))
	for channel, ranks := range r.ranks {
		states := make([]string, len(ranks))
		for i, rp := range ranks {
			states[i] = string(rp.breaker.State())
		}
		out[channel] = states
	}
	return out
}

// Probe actively checks every ranked backend. Results do not feed the
// breakers; only real send traffic moves circuit state.
func (r *Registry) Probe(ctx context.Context) map[notification.Channel][]bool {
	out := make(map[notification.Channel][]bool, len(r.ranks))
	for channel, ranks := range r.ranks {
		healthy := make([]bool, len(ranks))
		for i, rp := range ranks {
			healthy[i] = rp.inner.HealthCheck(ctx)
		}
		out[channel] = healthy
	}
	return out
}
