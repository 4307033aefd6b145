// Package metrics defines and registers the custom Prometheus metrics of the
// hotel API. Metrics are registered with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hotel"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts token requests.
// Label:
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of token requests, by result.",
	},
	[]string{"result"},
)

// UsersCreatedTotal counts accounts created through the API.
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created, by role.",
	},
	[]string{"role"},
)

// ── Room metrics ──────────────────────────────────────────────────────────────

// RoomChangesTotal counts successful room and room type mutations.
// Label:
//   - operation: "create_type", "remove_type", "create_room", "remove_room", "update_room"
var RoomChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rooms_changes_total",
		Help:      "Total number of room and room type mutations, by operation.",
	},
	[]string{"operation"},
)

// ── Error and idempotency metrics ─────────────────────────────────────────────

// DomainErrorsTotal counts errors rendered by the HTTP error handler.
var DomainErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "domain_errors_total",
		Help:      "Total number of errors returned to clients, by error kind.",
	},
	[]string{"error"},
)

// IdempotencyReplaysTotal counts responses served from the idempotency store.
var IdempotencyReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotency_replays_total",
		Help:      "Total number of responses replayed for a repeated Idempotency-Key.",
	},
)
