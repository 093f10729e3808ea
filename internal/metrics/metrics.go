package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	UpdatesHandled        *prometheus.CounterVec
	HandlerDuration       prometheus.Histogram
	BookingsCreated       prometheus.Counter
	BookingsCancelled     prometheus.Counter
	BookingsRejected      *prometheus.CounterVec
	SearchRequestsCreated prometheus.Counter
	NotificationsSent     prometheus.Counter
	NotifierRuns          prometheus.Counter
}

// New creates and registers all application metrics.
func New(namespace string) *Metrics {
	return &Metrics{
		UpdatesHandled: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_handled_total",
			Help:      "Total number of Telegram updates handled",
		}, []string{"type"}),
		HandlerDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "handler_duration_seconds",
			Help:      "Time spent handling one update",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Total number of appointments booked",
		}),
		BookingsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_cancelled_total",
			Help:      "Total number of appointments cancelled",
		}),
		BookingsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_rejected_total",
			Help:      "Total number of booking attempts rejected",
		}, []string{"reason"}),
		SearchRequestsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_created_total",
			Help:      "Total number of notify-me requests created",
		}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "Total number of freed-slot notifications sent",
		}),
		NotifierRuns: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifier_runs_total",
			Help:      "Total number of notifier scan passes",
		}),
	}
}
