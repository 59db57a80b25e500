package provider

import (
	"context"
	"log/slog"

	"notify-dispatch/internal/domain/notification"
	"notify-dispatch/internal/usecase/commands"

	"github.com/google/uuid"
)

// mockProvider accepts everything and fabricates a message id. Used in
// local development and e2e runs where no real delivery backend exists.
type mockProvider struct {
	channel notification.Channel
	slogger *slog.Logger
}

func NewMockProvider(channel notification.Channel, slogger *slog.Logger) ChannelProvider {
	return &mockProvider{channel: channel, slogger: slogger}
}

func (p *mockProvider) HealthCheck(context.Context) bool { return true }

func (p *mockProvider) Send(_ context.Context, rec *notification.Record) (commands.SendOutcome, error) {
	msgID := "mock-" + uuid.NewString()
	p.slogger.Debug("mock provider accepted message",
		"channel", p.channel.String(),
		"record_id", rec.ID().String(),
		"provider_msg_id", msgID,
	)
	return commands.SendOutcome{ProviderMsgID: msgID}, nil
}
