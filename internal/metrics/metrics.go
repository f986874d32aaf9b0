package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OperationsTotal counts gateway operations (execute_sql, get_schema,
	// get_example_queries) by outcome.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cumcp_operations_total",
			Help: "Total number of gateway operations",
		},
		[]string{"operation", "status"},
	)
	// OperationDuration is the end-to-end latency of gateway operations.
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cumcp_operation_duration_seconds",
			Help:    "Gateway operation latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	// RowsReturned tracks result sizes after the row cap is applied.
	RowsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cumcp_rows_returned",
			Help:    "Rows returned per successful query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 6),
		},
	)
	// TruncationsTotal counts results cut off at the row cap.
	TruncationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cumcp_truncations_total",
			Help: "Total number of truncated query results",
		},
	)
	// ErrorsTotal counts translated error reports by kind.
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cumcp_errors_total",
			Help: "Total number of error reports by kind",
		},
		[]string{"kind"},
	)
)
