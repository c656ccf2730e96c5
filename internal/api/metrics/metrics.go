// Package metrics defines and registers all custom Prometheus metrics for the
// CRM service. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at package init via
// promauto, so importing any consumer is enough to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm"

// ── Record metrics ────────────────────────────────────────────────────────────

// CustomersCreatedTotal counts newly created customers.
var CustomersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_created_total",
		Help:      "Total number of customers created.",
	},
)

// CustomersDeletedTotal counts deleted customers.
var CustomersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_deleted_total",
		Help:      "Total number of customers deleted (their leads cascade).",
	},
)

// LeadsCreatedTotal counts newly created leads by initial pipeline status.
var LeadsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leads_created_total",
		Help:      "Total number of leads created, by initial status.",
	},
	[]string{"status"},
)

// ── State store metrics ───────────────────────────────────────────────────────

// StoreDispatchesTotal counts completed state store dispatches.
// Labels:
//   - action: the committed transition (e.g. "customers_fetched", "fail")
//   - result: "ok" or "error"
var StoreDispatchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_dispatches_total",
		Help:      "Total number of state store dispatches, by action and result.",
	},
	[]string{"action", "result"},
)

// StoreStaleDropsTotal counts fetch completions discarded by the staleness
// guard because a newer fetch for the same resource was already dispatched.
// Label:
//   - resource: "customers", "leads", or "all-leads"
var StoreStaleDropsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_stale_drops_total",
		Help:      "Total number of stale fetch completions discarded by the state store.",
	},
	[]string{"resource"},
)

// ── Activity trail metrics ────────────────────────────────────────────────────

// ActivityProcessedTotal counts audit events successfully persisted.
// Label:
//   - action: "created", "updated", or "deleted"
var ActivityProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_processed_total",
		Help:      "Total number of activity events successfully recorded.",
	},
	[]string{"action"},
)

// ActivityErrorsTotal counts audit events that failed to persist.
var ActivityErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of activity events that failed recording.",
	},
)

// ActivityQueueDepth tracks the number of events waiting in each dispatcher
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity events pending per dispatcher worker.",
	},
	[]string{"worker_id"},
)
