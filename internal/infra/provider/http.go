package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"notify-dispatch/internal/domain/notification"
	"notify-dispatch/internal/usecase/commands"

	"github.com/cockroachdb/errors"
)

const defaultHTTPTimeout = 10 * time.Second

// httpProvider posts the rendered notification as JSON to an external
// delivery API. SMS and push gateways share this wire shape.
type httpProvider struct {
	channel  notification.Channel
	endpoint string
	apiKey   string
	http     *http.Client
}

type httpSendRequest struct {
	To      string `json:"to"`
	Channel string `json:"channel"`
	Subject string `json:"subject,omitempty"`
	Content string `json:"content"`
	Ref     string `json:"ref"`
}

type httpSendResponse struct {
	MessageID string `json:"messageId"`
	Status    string `json:"status"`
	Error     string `json:"error"`
}

func NewHTTPProvider(channel notification.Channel, endpoint, apiKey string, timeout time.Duration) ChannelProvider {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &httpProvider{
		channel:  channel,
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

func (p *httpProvider) Send(ctx context.Context, rec *notification.Record) (commands.SendOutcome, error) {
	payload, err := json.Marshal(httpSendRequest{
		To:      rec.Recipient(),
		Channel: p.channel.String(),
		Subject: rec.Subject(),
		Content: rec.Body(),
		Ref:     rec.ID().String(),
	})
	if err != nil {
		return commands.SendOutcome{}, errors.Wrap(err, "failed to encode send request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return commands.SendOutcome{}, errors.Wrap(err, "failed to build send request")
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return commands.SendOutcome{}, &commands.SendFailure{
				Code:    notification.ErrCodeSendTimeout,
				Message: "provider call exceeded deadline",
			}
		}
		return commands.SendOutcome{}, &commands.SendFailure{
			Code:    notification.ErrCodeProviderUnavailable,
			Message: err.Error(),
		}
	}
	defer resp.Body.Close()

	var out httpSendResponse
	_ = json.NewDecoder(resp.Body).Decode(&out)

	switch {
	case resp.StatusCode/100 == 2:
		return commands.SendOutcome{ProviderMsgID: out.MessageID}, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return commands.SendOutcome{}, &commands.SendFailure{
			Code:    notification.ErrCodeProviderRateLimited,
			Message: responseMessage(out, resp.StatusCode),
		}
	case resp.StatusCode/100 == 4:
		return commands.SendOutcome{}, &commands.SendFailure{
			Code:    rejectionCode(out.Error),
			Message: responseMessage(out, resp.StatusCode),
		}
	default:
		return commands.SendOutcome{}, &commands.SendFailure{
			Code:    notification.ErrCodeProviderError,
			Message: responseMessage(out, resp.StatusCode),
		}
	}
}

// HealthCheck probes the endpoint with a HEAD request. Any HTTP response
// counts as healthy; what gateways answer to a HEAD varies.
func (p *httpProvider) HealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.endpoint, nil)
	if err != nil {
		return false
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

// rejectionCode maps the provider's machine-readable rejection onto our
// taxonomy. Unrecognized 4xx rejections stay retryable so a provider-side
// misconfiguration does not silently kill messages.
func rejectionCode(providerError string) notification.ErrorCode {
	switch providerError {
	case "invalid_recipient", "invalid_number", "invalid_address":
		return notification.ErrCodeInvalidRecipient
	case "token_revoked", "unregistered":
		return notification.ErrCodeTokenRevoked
	case "unsupported_content", "payload_too_large":
		return notification.ErrCodeUnsupportedContent
	default:
		return notification.ErrCodeProviderError
	}
}

func responseMessage(out httpSendResponse, statusCode int) string {
	if out.Error != "" {
		return fmt.Sprintf("%s (http=%d)", out.Error, statusCode)
	}
	return fmt.Sprintf("provider returned http=%d", statusCode)
}
