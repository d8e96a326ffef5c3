package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Bus implements the EventPublisher port on NATS and exposes queue
// subscriptions for consumers (the registration delivery worker).
type Bus struct {
	conn *nats.Conn
	log  zerolog.Logger
}

// Connect establishes the NATS connection.
func Connect(url string, log zerolog.Logger) (*Bus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Bus{conn: conn, log: log}, nil
}

// Publish marshals payload as JSON and publishes it under subject.
func (b *Bus) Publish(_ context.Context, subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event %q: %w", subject, err)
	}
	if err := b.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %q: %w", subject, err)
	}
	b.log.Debug().Str("subject", subject).Int("bytes", len(data)).Msg("event published")
	return nil
}

// QueueSubscribe delivers messages on subject to handler; subscribers sharing
// a queue name split the stream between them.
func (b *Bus) QueueSubscribe(subject, queue string, handler func(data []byte)) error {
	if _, err := b.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		handler(msg.Data)
	}); err != nil {
		return fmt.Errorf("subscribe %q: %w", subject, err)
	}
	return nil
}

// Close drains the connection.
func (b *Bus) Close() {
	_ = b.conn.Drain()
}
