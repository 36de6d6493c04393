// Package metrics exposes Prometheus collectors for the authentication core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginAttempts counts authentication calls by outcome
	// (success, invalid_credentials, account_inactive, validation_error,
	// storage_error, internal_error).
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "facultyauth",
		Name:      "login_attempts_total",
		Help:      "Authentication attempts by outcome.",
	}, []string{"outcome"})

	// Registrations counts registration calls by outcome
	// (success, validation_error, duplicate, storage_error).
	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "facultyauth",
		Name:      "registrations_total",
		Help:      "Registration attempts by outcome.",
	}, []string{"outcome"})

	// AuditWriteFailures counts swallowed login-attempt audit writes. A nonzero
	// rate means the audit trail has gaps even though logins kept working.
	AuditWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "facultyauth",
		Name:      "audit_write_failures_total",
		Help:      "Best-effort login attempt records that failed to persist.",
	})

	// AttemptsPruned counts login attempts removed by the retention job
	AttemptsPruned = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "facultyauth",
		Name:      "login_attempts_pruned_total",
		Help:      "Login attempts removed by the retention job.",
	})
)
