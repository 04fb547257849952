// Package metrics defines and registers all custom Prometheus metrics for the
// admin console. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// RosterLoadsTotal counts roster loads.
// Label:
//   - result: "ok" or "error"
var RosterLoadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roster_loads_total",
		Help:      "Total number of roster loads from the user service, by result.",
	},
	[]string{"result"},
)

// RoleChangesTotal counts role-change submissions.
// Label:
//   - result: "ok", "rejected" (validation/remote rejection), or "transport"
var RoleChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_changes_total",
		Help:      "Total number of role-change submissions, by result.",
	},
	[]string{"result"},
)

// CreditAdjustmentsTotal counts credit-adjustment commits.
// Label:
//   - result: "ok", "rejected", "duplicate", or "transport"
var CreditAdjustmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credit_adjustments_total",
		Help:      "Total number of credit-adjustment commits, by result.",
	},
	[]string{"result"},
)

// MutationDuration measures the end-to-end duration of a mutation submit,
// including the upstream call.
// Label:
//   - kind: "role_change" or "credit_adjustment"
var MutationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "mutation_duration_seconds",
		Help:      "Duration of mutation submissions from request to upstream confirmation.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)

// AuditQueueDepth tracks the number of audit entries waiting in each recorder
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each recorder worker channel.",
	},
	[]string{"worker_id"},
)
