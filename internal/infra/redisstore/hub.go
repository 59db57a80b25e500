package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"notify-dispatch/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
)

// EventHub fans dispatch lifecycle events out over redis pub/sub. Tenant
// dashboards and websocket bridges subscribe to their own channel.
type EventHub struct {
	rdb *redis.Client
}

func NewEventHub(rdb *redis.Client) *EventHub {
	return &EventHub{
		rdb: rdb,
	}
}

func eventChannel(tenant string) string {
	return "notify:events:" + tenant
}

func (h *EventHub) Publish(ctx context.Context, event commands.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := h.rdb.Publish(ctx, eventChannel(event.TenantID.String()), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
