package webhook

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// reviewsTotal counts handled ConversionReview requests.
	// Labels: status (success, failure, malformed)
	reviewsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crdtools",
		Subsystem: "webhook",
		Name:      "reviews_total",
		Help:      "Total ConversionReview requests handled",
	}, []string{"status"})

	// objectsTotal counts converted objects.
	// Labels: outcome (converted, identity, failed)
	objectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crdtools",
		Subsystem: "webhook",
		Name:      "objects_total",
		Help:      "Total objects processed across all reviews",
	}, []string{"outcome"})

	// conversionSeconds measures the time spent converting one review's batch.
	conversionSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "crdtools",
		Subsystem: "webhook",
		Name:      "conversion_seconds",
		Help:      "Batch conversion latency in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
	})
)
