// Package metrics defines and registers the custom Prometheus metrics for
// the Sifrex auth API. It is the single source of truth for metric names,
// labels, and help strings; registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sifrex_auth"

// LoginsTotal counts credential login attempts by terminal outcome.
// Label:
//   - outcome: "success", "invalid_credentials", "rate_limited", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of credential login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SessionsResolvedTotal counts successful session resolutions.
// Label:
//   - source: "token" or "static" (development bypass)
var SessionsResolvedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_resolved_total",
		Help:      "Total number of sessions successfully resolved, by source.",
	},
	[]string{"source"},
)

// RoleDenialsTotal counts role-gate denials.
// Label:
//   - required: the minimum role the gate demanded
var RoleDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_denials_total",
		Help:      "Total number of requests denied by the role gate, by required role.",
	},
	[]string{"required"},
)

// TokenRefreshTotal counts refresh-token exchanges.
// Label:
//   - outcome: "success" or "rejected"
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of refresh token exchanges, by outcome.",
	},
	[]string{"outcome"},
)
