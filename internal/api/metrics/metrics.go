// Package metrics defines the custom Prometheus metrics of the iNest API. It
// is the single source of truth for metric names, labels, and help strings.
//
// Metrics register with the default registry at package init; HTTP request
// metrics come from the echoprometheus middleware wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inest"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - operation: "register" or "login"
//   - result: "success", "conflict", "invalid", "throttled", "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register and login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// AccessDeniedTotal counts requests stopped by an auth or role gate.
// Label:
//   - reason: "missing_token", "invalid_token", "no_identity", "role"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected by access-control gates.",
	},
	[]string{"reason"},
)

// ── Directory metrics ─────────────────────────────────────────────────────────

// ListingMutationsTotal counts successful listing writes.
// Labels:
//   - resource: "bakers", "laundry", "medicals"
//   - operation: "create", "update", "delete"
var ListingMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listing_mutations_total",
		Help:      "Total number of listing records created, updated or deleted.",
	},
	[]string{"resource", "operation"},
)

// ReportsSubmittedTotal counts WhistleNest submissions.
// Labels:
//   - type: report type
//   - anonymous: "true" or "false"
var ReportsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_submitted_total",
		Help:      "Total number of whistle-blower reports submitted.",
	},
	[]string{"type", "anonymous"},
)

// ReportStatusChangesTotal counts admin moderation updates.
// Label:
//   - status: the new status
var ReportStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_status_changes_total",
		Help:      "Total number of report status updates applied by admins.",
	},
	[]string{"status"},
)
