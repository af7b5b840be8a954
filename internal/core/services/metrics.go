package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ledgerTransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pq_ledger_transactions_total",
			Help: "Committed ledger transactions by type.",
		},
		[]string{"type"},
	)

	ledgerPagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pq_ledger_pages_total",
			Help: "A4-equivalent pages moved through the ledger by transaction type.",
		},
		[]string{"type"},
	)

	printBatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pq_print_batches_total",
			Help: "Print batch submissions by outcome.",
		},
		[]string{"outcome"},
	)

	printJobTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pq_print_job_transitions_total",
			Help: "Print job status changes by target status.",
		},
		[]string{"status"},
	)

	paymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pq_payments_total",
			Help: "Top-up payments by resulting status.",
		},
		[]string{"status"},
	)

	activePaymentPolls = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pq_payment_polls_active",
			Help: "Payments currently being polled at the gateway.",
		},
	)
)
