package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	checkoutsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "checkout",
			Name:      "requests_total",
			Help:      "Total number of checkout requests by result",
		},
		[]string{"result"},
	)

	checkoutDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: "checkout",
			Name:      "duration_seconds",
			Help:      "Histogram of checkout durations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	webhooksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "payment",
			Name:      "webhooks_total",
			Help:      "Total number of payment webhooks by result",
		},
		[]string{"result"},
	)
)

var (
	notificationsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "notification_consumer",
			Name:      "sent_total",
			Help:      "Total number of successfully handled notifications",
		},
	)

	notificationsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "notification_consumer",
			Name:      "failed_total",
			Help:      "Total number of failed notification attempts",
		},
	)

	notificationsDuplicate = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "notification_consumer",
			Name:      "duplicates_total",
			Help:      "Total number of notifications skipped as already handled",
		},
	)

	notificationsDLQ = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "notification_consumer",
			Name:      "dlq_total",
			Help:      "Total number of notifications written to DLQ",
		},
	)

	commitErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "notification_consumer",
			Name:      "commit_errors_total",
			Help:      "Total number of Kafka commit errors",
		},
	)

	notificationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: "notification_consumer",
			Name:      "processing_duration_seconds",
			Help:      "Histogram of notification processing durations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		checkoutsTotal,
		checkoutDuration,
		webhooksTotal,

		notificationsSent,
		notificationsFailed,
		notificationsDuplicate,
		notificationsDLQ,
		commitErrors,
		notificationDuration,
	)
}
