package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InvoicesProcessed counts processed invoices by final status.
	InvoicesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoices_processed_total",
		Help: "Total number of invoices processed, labeled by final status.",
	}, []string{"status"})

	// FraudVerdicts counts positive fraud verdicts by reason.
	FraudVerdicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fraud_verdicts_total",
		Help: "Total number of positive fraud verdicts, labeled by reason.",
	}, []string{"reason"})

	// DuplicateSubmissions counts rejected duplicate invoice IDs.
	DuplicateSubmissions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "duplicate_invoice_submissions_total",
		Help: "Total number of submissions rejected as duplicates.",
	})
)
