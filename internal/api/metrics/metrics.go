// Package metrics defines and registers all custom Prometheus metrics for
// the libreria API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "libreria"

// AccountsCreatedTotal counts accounts created through each entry path.
// Label:
//   - source: "admin" (POST /api/users) or "register" (self-service signup)
var AccountsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_created_total",
		Help:      "Total number of accounts created, by entry path.",
	},
	[]string{"source"},
)

// LoginAttemptsTotal counts authentication attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// PasswordRecoveriesTotal counts issued temporary passwords.
var PasswordRecoveriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_recoveries_total",
		Help:      "Total number of temporary passwords issued via recovery.",
	},
)

// CatalogCacheTotal counts catalog cache lookups.
// Label:
//   - result: "hit" or "miss"
var CatalogCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_total",
		Help:      "Total number of catalog cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
