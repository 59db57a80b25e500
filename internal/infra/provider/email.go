package provider

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"net/textproto"
	"time"

	"notify-dispatch/internal/domain/notification"
	"notify-dispatch/internal/usecase/commands"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jordan-wright/email"
)

const (
	defaultSMTPTimeout = 15 * time.Second
	smtpPoolSize       = 4
)

// smtpProvider delivers email over a pooled SMTP connection. The generated
// Message-Id doubles as the provider message id so delivery callbacks can
// reference it.
type smtpProvider struct {
	pool *email.Pool
	addr string
	host string
	from string
}

func NewSMTPProvider(host string, port int, username, password, from string) (ChannelProvider, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	pool, err := email.NewPool(addr, smtpPoolSize, auth)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create smtp pool")
	}
	return &smtpProvider{pool: pool, addr: addr, host: host, from: from}, nil
}

func (p *smtpProvider) Send(ctx context.Context, rec *notification.Record) (commands.SendOutcome, error) {
	msgID := fmt.Sprintf("<%s@%s>", uuid.New(), p.host)

	e := email.NewEmail()
	e.From = p.from
	e.To = []string{rec.Recipient()}
	e.Subject = rec.Subject()
	e.Text = []byte(rec.Body())
	e.Headers.Set("Message-Id", msgID)

	timeout := defaultSMTPTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return commands.SendOutcome{}, &commands.SendFailure{
				Code:    notification.ErrCodeSendTimeout,
				Message: "smtp deadline already expired",
			}
		}
	}

	if err := p.pool.Send(e, timeout); err != nil {
		return commands.SendOutcome{}, smtpFailure(err)
	}
	return commands.SendOutcome{ProviderMsgID: msgID}, nil
}

// HealthCheck dials the relay without sending. The pool's connections are
// not touched.
func (p *smtpProvider) HealthCheck(ctx context.Context) bool {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// smtpFailure translates SMTP reply codes. 5xx replies are the server's
// final word on the message, 4xx means try again later.
func smtpFailure(err error) *commands.SendFailure {
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch {
		case protoErr.Code == 550 || protoErr.Code == 551 || protoErr.Code == 553:
			return &commands.SendFailure{Code: notification.ErrCodeInvalidRecipient, Message: protoErr.Error()}
		case protoErr.Code == 552:
			return &commands.SendFailure{Code: notification.ErrCodeUnsupportedContent, Message: protoErr.Error()}
		case protoErr.Code/100 == 5:
			return &commands.SendFailure{Code: notification.ErrCodeProviderError, Message: protoErr.Error()}
		default:
			return &commands.SendFailure{Code: notification.ErrCodeProviderUnavailable, Message: protoErr.Error()}
		}
	}
	if errors.Is(err, email.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return &commands.SendFailure{Code: notification.ErrCodeSendTimeout, Message: "smtp send timed out"}
	}
	return &commands.SendFailure{Code: notification.ErrCodeProviderUnavailable, Message: err.Error()}
}
