package mailer

import (
	"context"
	"errors"
	"time"

	tpl "github.com/mzkhan/auth-api/pkg/mailer/templates"

	"github.com/mzkhan/auth-api/pkg/helpers"
)

var ErrQueueUnavailable = errors.New("mail queue unavailable")

// QueueNotifier delivers recovery codes by enqueueing an email job; the
// email worker does the actual Mailgun send. A publish failure is the only
// delivery error the request path ever sees.
type QueueNotifier struct {
	Pub     *helpers.RabbitPublisher
	Enabled bool
}

func NewQueueNotifier(pub *helpers.RabbitPublisher, enabled bool) *QueueNotifier {
	return &QueueNotifier{Pub: pub, Enabled: enabled}
}

func (n *QueueNotifier) SendOTP(ctx context.Context, email, name, code string, expiresAt time.Time) error {
	if !n.Enabled {
		return nil
	}
	if n.Pub == nil {
		return ErrQueueUnavailable
	}
	job := EmailJob{
		To:       email,
		Template: tpl.OTPCode,
		Data: map[string]any{
			"Name":      name,
			"Code":      code,
			"ExpiresAt": expiresAt.UTC().Format(time.RFC3339),
		},
	}
	return n.Pub.PublishJSON(ctx, job)
}
