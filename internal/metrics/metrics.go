package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JobsEnqueuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "legalease_jobs_enqueued_total",
		Help: "Total number of processing jobs enqueued",
	})

	JobsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "legalease_jobs_completed_total",
		Help: "Total number of processing jobs that finished with a terminal status",
	})

	JobsRetriedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "legalease_jobs_retried_total",
		Help: "Total number of job retries scheduled",
	})

	JobsFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "legalease_jobs_failed_total",
		Help: "Total number of jobs that exhausted their retry budget",
	})

	QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "legalease_queue_depth",
		Help: "Current number of undelivered jobs in the processing queue",
	})

	JobsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "legalease_jobs_in_flight",
		Help: "Current number of jobs being processed",
	})

	JobProcessingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "legalease_job_processing_duration_seconds",
		Help:    "Time taken to run the processing pipeline for one job",
		Buckets: prometheus.DefBuckets,
	})
)
