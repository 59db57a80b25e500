// Package devices carries permanent recipient rejections out of the
// dispatch core. Credential stores live in the sending services; the
// bundled registry records the dead credential in the structured log for
// the owning system to pick up.
package devices

import (
	"context"
	"log/slog"

	"notify-dispatch/internal/domain/notification"

	"github.com/google/uuid"
)

type LogRegistry struct {
	slogger *slog.Logger
}

func NewLogRegistry(slogger *slog.Logger) *LogRegistry {
	return &LogRegistry{slogger: slogger}
}

func (r *LogRegistry) ReportInvalid(_ context.Context, tenantID uuid.UUID, channel notification.Channel, recipient string, code notification.ErrorCode) error {
	r.slogger.Info("recipient credential rejected by provider",
		"tenant_id", tenantID.String(),
		"channel", channel.String(),
		"recipient", recipient,
		"error_code", code.String(),
	)
	return nil
}
