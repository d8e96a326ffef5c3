package ports

import "context"

// NotificationSender delivers a rendered message to a recipient.
type NotificationSender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// TemplateRenderer renders a named template against a context map.
type TemplateRenderer interface {
	Render(name string, data map[string]any) (string, error)
}

// EventPublisher publishes an asynchronous event. Used only by the
// registration workflow, which decouples credential delivery from its own
// completion.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}
