// Package metrics defines and registers the custom Prometheus metrics of the
// allegro catalog API. It is the single source of truth for metric names,
// labels and help strings.
//
// Metrics are registered with the default registry through promauto, so they
// are exported by the /metrics handler without further setup.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "allegro"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts login attempts.
// Label:
//   - outcome: "granted", "denied", "throttled" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// AuthorizationDenialsTotal counts admin checks that refused the caller.
// Label:
//   - operation: the gated operation (e.g. "add_piece", "search_release")
var AuthorizationDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_denials_total",
		Help:      "Total number of requests refused by the admin check.",
	},
	[]string{"operation"},
)

// UsersCreatedTotal counts created users.
// Label:
//   - bootstrap: "true" for the first user, "false" otherwise
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created.",
	},
	[]string{"bootstrap"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogWritesTotal counts base rows created.
// Label:
//   - kind: performer, composer, songwriter, piece, release or recording
var CatalogWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_writes_total",
		Help:      "Total number of catalog entities created, by kind.",
	},
	[]string{"kind"},
)

// EdgeWriteFailuresTotal counts edge rows that could not be inserted. The
// enclosing write still reports success.
// Label:
//   - edge: the edge table (e.g. "piece_composers")
var EdgeWriteFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "edge_write_failures_total",
		Help:      "Total number of edge rows whose insert failed and was skipped.",
	},
	[]string{"edge"},
)

// EdgeReadFailuresTotal counts edge lookups that failed and were read as empty.
var EdgeReadFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "edge_read_failures_total",
		Help:      "Total number of edge lookups that failed and defaulted to empty.",
	},
	[]string{"edge"},
)

// SearchRequestsTotal counts authorized searches.
var SearchRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_requests_total",
		Help:      "Total number of authorized searches, by kind.",
	},
	[]string{"kind"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsDroppedTotal counts events discarded because a worker was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped because the worker queue was full.",
	},
)

// AuditEventsFailedTotal counts events the audit store rejected.
var AuditEventsFailedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_failed_total",
		Help:      "Total number of audit events that failed to persist.",
	},
)

// AuditQueueDepth tracks pending events per worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
