package notification

// Channel is the delivery medium a notification goes out on.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
	ChannelInApp Channel = "in_app"
)

func (c Channel) String() string {
	return string(c)
}

func (c Channel) IsValid() bool {
	switch c {
	case ChannelSMS, ChannelEmail, ChannelPush, ChannelInApp:
		return true
	default:
		return false
	}
}

func NewChannel(s string) (Channel, error) {
	ch := Channel(s)
	if !ch.IsValid() {
		return "", ErrInvalidChannel
	}
	return ch, nil
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

var priorityRank = map[Priority]int{
	PriorityLow:    1,
	PriorityNormal: 2,
	PriorityHigh:   3,
}

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	_, ok := priorityRank[p]
	return ok
}

// AtLeast reports whether p ranks equal to or above other.
func (p Priority) AtLeast(other Priority) bool {
	return priorityRank[p] >= priorityRank[other]
}

func NewPriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

// Status is the record lifecycle state. Queued is the only non-terminal
// state; a queued record with attempts > 0 and a next-attempt time is
// retry-pending but still Queued. Sent may still move to Delivered on a
// provider callback.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusQueued, StatusSent, StatusDelivered, StatusFailed, StatusCanceled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further dispatch work happens for the record.
// Sent is terminal for dispatch even though a callback may upgrade it.
func (s Status) IsTerminal() bool {
	return s == StatusSent || s == StatusDelivered || s == StatusFailed || s == StatusCanceled
}

// Lane is the delivery path a record is routed onto. Synchronous sends
// happen inline on the request; the queue lanes are drained by workers at
// cadences matching their latency targets.
type Lane string

const (
	LaneSync     Lane = "sync"
	LanePriority Lane = "priority"
	LaneStandard Lane = "standard"
	LaneBulk     Lane = "bulk"
)

func (l Lane) String() string {
	return string(l)
}

func (l Lane) IsValid() bool {
	switch l {
	case LaneSync, LanePriority, LaneStandard, LaneBulk:
		return true
	default:
		return false
	}
}

// ErrorCode is the machine-readable failure vocabulary shared by the
// orchestrator, the provider gateways and the API layer.
type ErrorCode string

const (
	ErrCodeNone                ErrorCode = ""
	ErrCodeQuotaDenied         ErrorCode = "quota_denied"
	ErrCodeBudgetDenied        ErrorCode = "budget_denied"
	ErrCodeProviderUnavailable ErrorCode = "provider_unavailable"
	ErrCodeProviderError       ErrorCode = "provider_error"
	ErrCodeProviderRateLimited ErrorCode = "provider_rate_limited"
	ErrCodeSendTimeout         ErrorCode = "send_timeout"
	ErrCodeInvalidRecipient    ErrorCode = "invalid_recipient"
	ErrCodeTokenRevoked        ErrorCode = "token_revoked"
	ErrCodeUnsupportedContent  ErrorCode = "unsupported_content"
	ErrCodeAttemptsExhausted   ErrorCode = "attempts_exhausted"
)

func (e ErrorCode) String() string {
	return string(e)
}
