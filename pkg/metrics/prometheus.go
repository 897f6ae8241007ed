package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	FanoutJobsEnqueued prometheus.Counter
	FanoutJobsDropped  prometheus.Counter
	FanoutDuration     prometheus.Histogram
	NotificationsSent  *prometheus.CounterVec
	ErrorsCount        *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		FanoutJobsEnqueued: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fanout_jobs_enqueued_total",
			Help:      "The total number of fan-out jobs enqueued by flight updates",
		}),
		FanoutJobsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fanout_jobs_dropped_total",
			Help:      "The total number of fan-out jobs dropped because the queue was full",
		}),
		FanoutDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fanout_duration_seconds",
			Help:      "Time taken to fan out one flight update to all assigned users",
			Buckets:   prometheus.DefBuckets,
		}),
		NotificationsSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "The total number of notification delivery attempts by channel and outcome",
		}, []string{"channel", "status"}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
