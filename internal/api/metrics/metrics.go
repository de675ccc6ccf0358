// Package metrics defines all custom Prometheus metrics for the blog API.
// It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry on package init, so
// they appear at /metrics next to the echo request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// ── Account metrics ───────────────────────────────────────────────────────────

// AuthRequestsTotal counts account operations by outcome.
// Labels:
//   - operation: "register", "login", "disable", "enable", "isuser"
//   - result: "ok", "rejected" (client error) or "error" (server error)
var AuthRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_requests_total",
		Help:      "Total number of account operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostWritesTotal counts successful post mutations.
// Label:
//   - operation: "create", "update", "delete", "like", "unlike"
var PostWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_writes_total",
		Help:      "Total number of successful post mutations, by operation.",
	},
	[]string{"operation"},
)

// ── Audit trail metrics ───────────────────────────────────────────────────────

// AuditEventsTotal counts account events handled by the dispatcher.
// Labels:
//   - type: the account event type (e.g. "registered")
//   - result: "recorded", "failed" or "dropped" (queue full or closed)
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of account audit events, by type and result.",
	},
	[]string{"type", "result"},
)

// AuditQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of events pending in each audit worker channel.",
	},
	[]string{"worker_id"},
)

// AuditRecordDuration measures how long persisting one audit event takes.
var AuditRecordDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_record_duration_seconds",
		Help:      "Duration of persisting a single account audit event.",
		Buckets:   prometheus.DefBuckets,
	},
)
