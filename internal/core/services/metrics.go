package services

import (
	"strings"
	"time"

	"github.com/SscSPs/teller_ledger_app/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ledgerOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teller_ledger_operations_total",
		Help: "Total ledger operations, labeled by operation and outcome kind",
	}, []string{"operation", "outcome"})

	ledgerOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "teller_ledger_operation_duration_seconds",
		Help:    "Latency distribution of ledger operations including the unit of work",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5},
	}, []string{"operation"})
)

const (
	opOnboardClient  = "onboard_client"
	opOpenAccount    = "open_account"
	opDeposit        = "deposit"
	opWithdrawal     = "withdrawal"
	opTransfer       = "transfer"
	opRequestCredit  = "request_credit"
	outcomeSucceeded = "ok"
)

func observeOperation(operation string, start time.Time, err error) {
	outcome := outcomeSucceeded
	if err != nil {
		outcome = strings.ToLower(apperrors.KindOf(err))
	}
	ledgerOperationsTotal.WithLabelValues(operation, outcome).Inc()
	ledgerOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
