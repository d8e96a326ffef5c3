// Package metrics defines and registers all custom Prometheus metrics for the
// identity service. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "blocked", "inactive", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successful registrations by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of identities registered, by role.",
	},
	[]string{"role"},
)

// ActivationsTotal counts activation attempts by outcome.
// Label:
//   - result: "success", "expired", "mismatch", "not_found", "error"
var ActivationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activations_total",
		Help:      "Total number of account activation attempts, by result.",
	},
	[]string{"result"},
)

// RecoveryRequestsTotal counts password recovery code issuances.
var RecoveryRequestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recovery_requests_total",
		Help:      "Total number of password recovery codes issued.",
	},
)

// TokensIssuedTotal counts access tokens issued.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of access tokens issued.",
	},
)

// NotificationDuration measures end-to-end delivery time of one message by
// the registration delivery worker.
// Label:
//   - result: "sent" or "error"
var NotificationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of rendering and sending a registration notification.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
