// Package metrics holds the Prometheus instruments for the core banking
// operations. Instruments are package-level and registered once via
// promauto; HTTP-level metrics live in the HTTP middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Operation metrics
	DepositsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "banklink_deposits_total",
		Help: "Total number of committed deposits",
	})

	WithdrawalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "banklink_withdrawals_total",
		Help: "Total number of committed withdrawals",
	})

	TransfersCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "banklink_transfers_created_total",
			Help: "Total number of completed transfers by kind",
		},
		[]string{"kind"},
	)

	TransferErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "banklink_transfer_errors_total",
			Help: "Total number of rejected or failed transfer operations by kind",
		},
		[]string{"kind"},
	)

	TransferCompensations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "banklink_transfer_compensations_total",
		Help: "Total number of external transfers compensated after a gateway failure",
	})

	TransferInconsistencies = promauto.NewCounter(prometheus.CounterOpts{
		Name: "banklink_transfer_inconsistencies_total",
		Help: "Gateway acceptances for transfers already in a terminal status locally",
	})

	// Account metrics
	AccountsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "banklink_accounts_created_total",
		Help: "Total number of accounts created",
	})

	// Gateway metrics
	GatewayRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "banklink_gateway_requests_total",
			Help: "Total external bank gateway calls by outcome",
		},
		[]string{"outcome"},
	)

	GatewayDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "banklink_gateway_duration_seconds",
		Help:    "Duration of external bank gateway calls",
		Buckets: prometheus.DefBuckets,
	})

	// Reconciliation metrics
	ReconciliationMismatches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "banklink_reconciliation_mismatches_total",
		Help: "Total accounts whose stored balance diverged from the movement log",
	})
)
