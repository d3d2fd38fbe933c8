// Package metrics defines and registers all custom Prometheus metrics for the
// client portal API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// AuthzDenialsTotal counts requests rejected by the access-control layer.
// Label:
//   - reason: "unauthenticated" (no valid session) or "forbidden" (role or ownership mismatch)
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of requests denied by authorization checks.",
	},
	[]string{"reason"},
)

// UnresolvedRefsTotal counts responses where a referenced record could not be
// resolved and a placeholder was substituted.
// Label:
//   - resource: the kind of missing record (e.g. "client")
var UnresolvedRefsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unresolved_refs_total",
		Help:      "Total number of placeholder substitutions for unresolvable references.",
	},
	[]string{"resource"},
)

// PaymentsRecordedTotal counts payments recorded against invoices.
// Label:
//   - method: "manual" or "paypal"
var PaymentsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_recorded_total",
		Help:      "Total number of payments recorded, by method.",
	},
	[]string{"method"},
)

// ContactSubmissionsTotal counts public contact form submissions accepted.
var ContactSubmissionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_submissions_total",
		Help:      "Total number of contact form submissions accepted.",
	},
)

// SessionsIssuedTotal counts successful logins.
var SessionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of sessions issued via login.",
	},
)
