package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// operation labels
const (
	opRegister = "register"
	opLogin    = "login"
	opLogout   = "logout"
	opGuard    = "guard"
	opIdentify = "identify"
)

// outcome labels
const (
	outcomeOK                 = "ok"
	outcomeInvalidInput       = "invalid_input"
	outcomeDuplicateUsername  = "duplicate_username"
	outcomeInvalidCredentials = "invalid_credentials"
	outcomeError              = "error"
	outcomeAllow              = "allow"
	outcomeDeny               = "deny"
)

var authEvents = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Namespace: "authdemo",
		Name:      "auth_events_total",
		Help:      "Number of authentication flow calls, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

func countEvent(operation, outcome string) {
	authEvents.WithLabelValues(operation, outcome).Inc()
}
