package notification

import (
	"context"

	"github.com/rs/zerolog"
)

// DevSender logs messages instead of delivering them. Used in local
// development where no mail provider is configured.
type DevSender struct {
	log zerolog.Logger
}

func NewDevSender(log zerolog.Logger) *DevSender {
	return &DevSender{log: log}
}

func (d *DevSender) Send(_ context.Context, recipient, subject, body string) error {
	d.log.Info().
		Str("recipient", recipient).
		Str("subject", subject).
		Int("body_bytes", len(body)).
		Msg("dev mailer: message not delivered")
	d.log.Debug().Str("body", body).Msg("dev mailer body")
	return nil
}
