package provider

import (
	"context"

	"notify-dispatch/internal/domain/notification"
	"notify-dispatch/internal/pkg/clock"
	"notify-dispatch/internal/usecase/commands"
)

// hubProvider treats the tenant event stream as the delivery channel for
// in-app notifications. Publishing is the send; connected clients receive
// the message live, offline clients read it from the store on next fetch.
type hubProvider struct {
	hub   commands.EventHub
	clock clock.Clock
}

func NewHubProvider(hub commands.EventHub, clk clock.Clock) ChannelProvider {
	return &hubProvider{hub: hub, clock: clk}
}

// The hub port has no probe surface; failures surface on publish.
func (p *hubProvider) HealthCheck(context.Context) bool { return true }

func (p *hubProvider) Send(ctx context.Context, rec *notification.Record) (commands.SendOutcome, error) {
	event := commands.Event{
		Type:     commands.EventInAppMessage,
		TenantID: rec.TenantID(),
		RecordID: rec.ID(),
		Service:  rec.ServiceOrigin(),
		Channel:  rec.Channel().String(),
		Subject:  rec.Subject(),
		Body:     rec.Body(),
		At:       p.clock.Now(),
	}
	if err := p.hub.Publish(ctx, event); err != nil {
		return commands.SendOutcome{}, &commands.SendFailure{
			Code:    notification.ErrCodeProviderUnavailable,
			Message: err.Error(),
		}
	}
	return commands.SendOutcome{ProviderMsgID: rec.ID().String()}, nil
}
