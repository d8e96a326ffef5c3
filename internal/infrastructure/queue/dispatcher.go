package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicore/identity-service/internal/api/metrics"
	"github.com/clinicore/identity-service/internal/core/domain"
	"github.com/clinicore/identity-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes registration events to a fixed set of delivery workers
// using consistent hashing on the recipient email, so messages for the same
// recipient are sent in order.
type Dispatcher struct {
	workers  []chan domain.UserRegisteredEvent
	renderer ports.TemplateRenderer
	sender   ports.NotificationSender
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, renderer ports.TemplateRenderer, sender ports.NotificationSender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.UserRegisteredEvent, numWorkers),
		renderer: renderer,
		sender:   sender,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.UserRegisteredEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its recipient.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event domain.UserRegisteredEvent) {
	d.workers[d.shardIndex(event.Email)] <- event
}

// shardIndex maps a recipient email deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.UserRegisteredEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.deliver(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("user_id", event.UserID).
					Int("worker_id", id).
					Msg("activation mail delivery failed")
			}
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event domain.UserRegisteredEvent) error {
	start := time.Now()

	body, err := d.renderer.Render("account_activation", map[string]any{
		"first_name":         event.FirstName,
		"last_name":          event.LastName,
		"temporary_password": event.TemporaryPassword,
		"activation_code":    event.ActivationCode,
		"expiration_minutes": event.ExpiresInMinutes,
	})
	if err == nil {
		err = d.sender.Send(ctx, event.Email, "Activate your account", body)
	}

	result := "sent"
	if err != nil {
		result = "error"
	}
	metrics.NotificationDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	return err
}
