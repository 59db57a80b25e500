package routing

import (
	"time"

	"notify-dispatch/internal/domain/notification"
)

// Latency targets per lane. Queue workers drain at cadences matching these.
const (
	SyncLatency     = 2 * time.Second
	PriorityLatency = 5 * time.Second
	StandardLatency = 30 * time.Second
	BulkLatency     = 5 * time.Minute
)

// DefaultCriticalTemplates are time-critical flows that must go out on the
// synchronous path regardless of priority.
var DefaultCriticalTemplates = []string{
	"driver_assigned",
	"ride_assigned",
	"otp",
	"two_factor",
}

// Router classifies admitted intents onto delivery lanes. Classification is
// pure: same intent, same lane.
type Router struct {
	critical map[string]struct{}
}

func NewRouter(criticalTemplates []string) *Router {
	if len(criticalTemplates) == 0 {
		criticalTemplates = DefaultCriticalTemplates
	}
	critical := make(map[string]struct{}, len(criticalTemplates))
	for _, k := range criticalTemplates {
		critical[k] = struct{}{}
	}
	return &Router{critical: critical}
}

// Classify picks the lane for an intent. Rules apply in order: the
// synchronous path wins over everything, High priority beats the bulk
// flag, and Low priority sends always ride the bulk lane.
func (r *Router) Classify(intent notification.Intent) notification.Lane {
	if intent.Synchronous() || r.isCritical(intent.TemplateKey()) {
		return notification.LaneSync
	}
	if intent.Priority() == notification.PriorityHigh {
		return notification.LanePriority
	}
	if intent.Bulk() || intent.Priority() == notification.PriorityLow {
		return notification.LaneBulk
	}
	return notification.LaneStandard
}

// ExpectedLatency reports the delivery target for a lane.
func (r *Router) ExpectedLatency(lane notification.Lane) time.Duration {
	switch lane {
	case notification.LaneSync:
		return SyncLatency
	case notification.LanePriority:
		return PriorityLatency
	case notification.LaneBulk:
		return BulkLatency
	default:
		return StandardLatency
	}
}

func (r *Router) isCritical(templateKey string) bool {
	if templateKey == "" {
		return false
	}
	_, ok := r.critical[templateKey]
	return ok
}
