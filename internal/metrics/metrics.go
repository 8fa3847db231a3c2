// SPDX-License-Identifier: Apache-2.0

// Package metrics holds the prometheus golden-signal instrumentation for
// the media source subsystem, grounded on the teacher's
// domain/session/manager/metrics.go package-level promauto vars.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	acquireDetailTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediasource_acquire_detail_total",
			Help: "Total acquire-detail outcomes by result.",
		},
		[]string{"result"},
	)

	acquireDetailSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mediasource_acquire_detail_seconds",
			Help:    "Time spent acquiring detail for a source.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"result"},
	)

	framePointerTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediasource_frame_pointer_resolved_total",
			Help: "Frame pointer descriptors resolved, by media type and whether blank.",
		},
		[]string{"media_type", "blank"},
	)

	cacheInvalidateErasedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediasource_cache_invalidate_erased_total",
			Help: "Cache keys erased by invalidate-cache.",
		},
		[]string{"media_type"},
	)

	duplicateTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediasource_duplicate_total",
			Help: "Duplicate operations by outcome.",
		},
		[]string{"result"},
	)
)

// ObserveAcquireDetail records the outcome and latency of one
// acquire-detail invocation.
func ObserveAcquireDetail(result string, start time.Time) {
	acquireDetailTotal.WithLabelValues(result).Inc()
	acquireDetailSeconds.WithLabelValues(result).Observe(time.Since(start).Seconds())
}

// ObserveFramePointer records one resolved frame descriptor.
func ObserveFramePointer(mediaType string, blank bool) {
	framePointerTotal.WithLabelValues(mediaType, boolLabel(blank)).Inc()
}

// ObserveCacheErase records n keys erased for mediaType during
// invalidate-cache.
func ObserveCacheErase(mediaType string, n int) {
	if n <= 0 {
		return
	}
	cacheInvalidateErasedTotal.WithLabelValues(mediaType).Add(float64(n))
}

// ObserveDuplicate records the outcome of one duplicate operation.
func ObserveDuplicate(result string) {
	duplicateTotal.WithLabelValues(result).Inc()
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
