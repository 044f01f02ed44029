// Package metrics defines and registers all custom Prometheus metrics for the
// portal. It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry at import time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// Login result label values.
const (
	ResultSuccess = "success"
	ResultInvalid = "invalid_credentials"
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "invalid_credentials" (unknown usernames and wrong
//     passwords share the label, mirroring the response contract)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// LogoutsTotal counts explicit logouts. Sessions that simply expire are not
// observable here; they age out of the session store.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of explicit logouts.",
	},
)

// SessionsIssuedTotal counts sessions minted by successful logins.
var SessionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of session cookies issued.",
	},
)
