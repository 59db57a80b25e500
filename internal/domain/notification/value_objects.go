package notification

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidChannel       = errors.New("invalid channel")
	ErrInvalidPriority      = errors.New("invalid priority")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrEmptyRecipient       = errors.New("recipient is required")
	ErrInvalidRecipient     = errors.New("recipient does not match channel format")
	ErrEmptyBody            = errors.New("body is required")
	ErrBodyTooLong          = errors.New("body exceeds maximum length")
	ErrSubjectTooLong       = errors.New("subject exceeds maximum length")
	ErrCorrelationKeyTooLong = errors.New("correlation key exceeds maximum length")
)

const (
	maxSubjectLength        = 256
	maxBodyLength           = 64 * 1024
	maxCorrelationKeyLength = 128
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+[1-9][0-9]{6,14}$`)
)

// Recipient is a channel-qualified address: an E.164 number for SMS, an
// email address for email, and an opaque device or user token for push
// and in-app.
type Recipient struct {
	value string
}

func NewRecipient(channel Channel, value string) (Recipient, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Recipient{}, ErrEmptyRecipient
	}
	switch channel {
	case ChannelSMS:
		if !phoneRegex.MatchString(v) {
			return Recipient{}, ErrInvalidRecipient
		}
	case ChannelEmail:
		if !emailRegex.MatchString(strings.ToLower(v)) {
			return Recipient{}, ErrInvalidRecipient
		}
	case ChannelPush, ChannelInApp:
		// Opaque tokens, validated by the provider.
	default:
		return Recipient{}, ErrInvalidChannel
	}
	return Recipient{value: v}, nil
}

func (r Recipient) Value() string {
	return r.value
}

func (r Recipient) IsZero() bool {
	return r.value == ""
}

// CorrelationKey deduplicates intents within the dedup window. Empty means
// no deduplication.
type CorrelationKey struct {
	value string
}

func NewCorrelationKey(value string) (CorrelationKey, error) {
	v := strings.TrimSpace(value)
	if len(v) > maxCorrelationKeyLength {
		return CorrelationKey{}, ErrCorrelationKeyTooLong
	}
	return CorrelationKey{value: v}, nil
}

func (k CorrelationKey) Value() string {
	return k.value
}

func (k CorrelationKey) IsZero() bool {
	return k.value == ""
}

// Content is the rendered subject and body handed to a provider. Subject is
// only meaningful for email and push.
type Content struct {
	subject string
	body    string
}

func NewContent(subject, body string) (Content, error) {
	if strings.TrimSpace(body) == "" {
		return Content{}, ErrEmptyBody
	}
	if len(body) > maxBodyLength {
		return Content{}, ErrBodyTooLong
	}
	if len(subject) > maxSubjectLength {
		return Content{}, ErrSubjectTooLong
	}
	return Content{subject: subject, body: body}, nil
}

func (c Content) Subject() string {
	return c.subject
}

func (c Content) Body() string {
	return c.body
}
