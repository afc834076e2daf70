// Package metrics defines and registers all custom Prometheus metrics for
// the questions API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default Prometheus registry at init
// time via promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "questions"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthEventsProcessedTotal counts auth events persisted by the audit pipeline.
// Labels:
//   - action: "register", "login" or "refresh"
//   - outcome: "success" or "failure"
var AuthEventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_processed_total",
		Help:      "Total number of authentication events recorded in the audit trail.",
	},
	[]string{"action", "outcome"},
)

// GuardDenialsTotal counts requests rejected by the access guard.
// Label:
//   - reason: short description of the rejection (e.g. "token expired", "insufficient role")
var GuardDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total number of requests rejected by the access guard, by reason.",
	},
	[]string{"reason"},
)

// AuditQueueDepth tracks the number of auth events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of auth events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Questions metrics ─────────────────────────────────────────────────────────

// QuestionsCreatedTotal counts newly submitted questions.
var QuestionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "questions_created_total",
		Help:      "Total number of questions submitted.",
	},
)
