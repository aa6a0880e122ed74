package application

import (
	"expvar"

	"github.com/prometheus/client_golang/prometheus"
)

// authEvents is exported at /debug/vars under "auth".
var authEvents = expvar.NewMap("auth")

// authEventsTotal mirrors authEvents for Prometheus scrapes at /api/metrics.
var authEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "portfolio",
	Subsystem: "auth",
	Name:      "events_total",
	Help:      "Session lifecycle events by kind.",
}, []string{"event"})

func init() {
	prometheus.MustRegister(authEventsTotal)
}

const (
	evSignup         = "signups"
	evLogin          = "logins"
	evLoginFailure   = "login_failures"
	evRefresh        = "refreshes"
	evRefreshFailure = "refresh_failures"
	evLogout         = "logouts"
	evPasswordReset  = "password_resets"
)

func countAuth(event string) {
	authEvents.Add(event, 1)
	authEventsTotal.WithLabelValues(event).Inc()
}
