// Package metrics defines and registers all custom Prometheus metrics for the
// SpotJobs API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry at init time via promauto;
// the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "spotjobs"

// ── Registration metrics ──────────────────────────────────────────────────────

// CodesIssuedTotal counts verification codes issued and delivered.
// Label:
//   - purpose: "registration" or "password_reset"
var CodesIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "codes_issued_total",
		Help:      "Total number of verification codes issued, by purpose.",
	},
	[]string{"purpose"},
)

// RegistrationsCommittedTotal counts pending registrations promoted to
// durable accounts.
// Label:
//   - role: "User" or "Recruiter"
var RegistrationsCommittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_committed_total",
		Help:      "Total number of registrations committed, by role.",
	},
	[]string{"role"},
)

// ── Application metrics ───────────────────────────────────────────────────────

// ApplicationsCreatedTotal counts successfully created job applications.
var ApplicationsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_created_total",
		Help:      "Total number of job applications created.",
	},
)

// ApplicationsDuplicateTotal counts applies rejected as duplicates, whether by
// the pre-check or by the unique index.
var ApplicationsDuplicateTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_duplicate_total",
		Help:      "Total number of apply attempts rejected as duplicates.",
	},
)

// ── Scoring metrics ───────────────────────────────────────────────────────────

// ScoringInvocationsTotal counts scoring function invocations.
// Label:
//   - result: "ok" or "error"
var ScoringInvocationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scoring_invocations_total",
		Help:      "Total number of scoring function invocations, by result.",
	},
	[]string{"result"},
)

// ScoringCallbacksTotal counts scoring callback deliveries.
// Label:
//   - result: "applied", "duplicate", "remote_error", or "error"
var ScoringCallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scoring_callbacks_total",
		Help:      "Total number of scoring callbacks received, by outcome.",
	},
	[]string{"result"},
)

// ScoringQueueDepth tracks the number of requests waiting in each dispatcher
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ScoringQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "scoring_queue_depth",
		Help:      "Current number of scoring requests pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
