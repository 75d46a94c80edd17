package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "makeup_studio"

// Metrics holds the booking and HTTP collectors. A nil *Metrics records
// nothing.
type Metrics struct {
	registry *prometheus.Registry

	BookingsCreated   prometheus.Counter
	BookingConflicts  prometheus.Counter
	StatusTransitions *prometheus.CounterVec
	HTTPRequests      *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		BookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Appointments successfully booked.",
		}),
		BookingConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "Booking attempts rejected because the slot was taken.",
		}),
		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointment_status_transitions_total",
			Help:      "Appointment status changes by target status.",
		}, []string{"status"}),
		HTTPRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.BookingsCreated,
		m.BookingConflicts,
		m.StatusTransitions,
		m.HTTPRequests,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) BookingCreated() {
	if m == nil {
		return
	}
	m.BookingsCreated.Inc()
}

func (m *Metrics) BookingConflict() {
	if m == nil {
		return
	}
	m.BookingConflicts.Inc()
}

func (m *Metrics) StatusChanged(status string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.
		WithLabelValues(route, method, strconv.Itoa(status)).
		Observe(elapsed.Seconds())
}
