// Package metrics defines and registers all custom Prometheus metrics
// for the inventory API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at import
// time via promauto and exposed on /metrics by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory"

// ── Gate metrics ──────────────────────────────────────────────────────────────

// GateDecisionsTotal counts every request-gate verdict.
// Labels:
//   - decision: "allow", "login" or "unauthorized"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of request gate decisions, by verdict.",
	},
	[]string{"decision"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsActive tracks the number of sessions currently tracked by the
// idle monitor.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Number of sessions currently tracked by the idle monitor.",
	},
)

// IdleSignOutsTotal counts sessions force-logged-out by the idle monitor.
var IdleSignOutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idle_sign_outs_total",
		Help:      "Total number of sessions terminated for inactivity.",
	},
)

// SessionExtensionsTotal counts explicit "keep me signed in" actions
// taken from the idle warning dialog.
var SessionExtensionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_extensions_total",
		Help:      "Total number of explicit session extensions.",
	},
)

// ── Business metrics ──────────────────────────────────────────────────────────

// InvoicesIssuedTotal counts invoices successfully created.
var InvoicesIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoices_issued_total",
		Help:      "Total number of invoices issued.",
	},
)

// ServiceOrdersTotal counts service order lifecycle transitions.
// Label:
//   - status: the status the order moved into (e.g. "repairing")
var ServiceOrdersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "service_orders_total",
		Help:      "Total number of service order status transitions, by new status.",
	},
	[]string{"status"},
)
