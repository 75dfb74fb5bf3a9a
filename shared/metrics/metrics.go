package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	BookingActionCreated   = "created"
	BookingActionConfirmed = "confirmed"
	BookingActionCancelled = "cancelled"
	BookingActionRemoved   = "removed"
	BookingActionErased    = "erased"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roomly_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roomly_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roomly_booking_transitions_total",
			Help: "Total number of booking lifecycle transitions",
		},
		[]string{"action", "role"},
	)

	BookingConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roomly_booking_conflicts_total",
			Help: "Total number of bookings rejected for overlapping an active booking",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBookingTransition(action, role string) {
	BookingTransitionsTotal.WithLabelValues(action, role).Inc()
}

func RecordBookingConflict() {
	BookingConflictsTotal.Inc()
}
