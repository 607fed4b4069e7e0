package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration *prometheus.HistogramVec
	DBOpenConns     prometheus.Gauge
	DBIdleConns     prometheus.Gauge
	DBInUseConns    prometheus.Gauge
	DBWaitCount     prometheus.Gauge

	// Фоновый воркер напоминаний
	ReminderTicksTotal     prometheus.Counter
	ReminderTickErrors     prometheus.Counter
	ReminderSentTotal      prometheus.Counter
	ReminderSkippedOverlap prometheus.Counter
}

// New регистрирует коллекторы в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),

		DBOpenConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open database connections",
			ConstLabels: constLabels,
		}),
		DBIdleConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle database connections",
			ConstLabels: constLabels,
		}),
		DBInUseConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "In-use database connections",
			ConstLabels: constLabels,
		}),
		DBWaitCount: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),

		ReminderTicksTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "reminder_ticks_total",
			Help:        "Total reminder worker ticks",
			ConstLabels: constLabels,
		}),
		ReminderTickErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "reminder_tick_errors_total",
			Help:        "Reminder worker ticks that ended with an error",
			ConstLabels: constLabels,
		}),
		ReminderSentTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "reminder_notifications_sent_total",
			Help:        "Reminder notifications sent",
			ConstLabels: constLabels,
		}),
		ReminderSkippedOverlap: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "reminder_ticks_skipped_total",
			Help:        "Reminder ticks skipped because the previous tick was still running",
			ConstLabels: constLabels,
		}),
	}
}
