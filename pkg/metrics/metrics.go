package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
		[]string{"service"},
	)

	// Business metrics
	FareEstimatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fare_estimates_total",
			Help: "Total number of fare estimates computed",
		},
		[]string{"service", "vehicle_class", "status"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Total number of bookings created",
		},
		[]string{"service", "vehicle_class", "status"},
	)

	TariffReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tariff_reloads_total",
			Help: "Total number of tariff table reload attempts",
		},
		[]string{"service", "status"},
	)

	ActiveMetersGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "active_meters_total",
			Help: "Current number of running taxi meters",
		},
		[]string{"service"},
	)

	WebSocketConnectionsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "websocket_connections_total",
			Help: "Current number of active WebSocket connections",
		},
		[]string{"service"},
	)

	DatabaseQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "database_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"service", "operation", "status"},
	)

	DatabaseQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "database_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)

	RabbitMQMessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rabbitmq_messages_published_total",
			Help: "Total number of messages published to RabbitMQ",
		},
		[]string{"service", "queue", "status"},
	)
)

// RecordHTTPMetrics records HTTP request metrics
func RecordHTTPMetrics(service, method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	HttpRequestsTotal.WithLabelValues(service, method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(service, method, path, status).Observe(duration.Seconds())
}

// RecordFareEstimate records a fare estimate computation
func RecordFareEstimate(service, vehicleClass string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	FareEstimatesTotal.WithLabelValues(service, vehicleClass, status).Inc()
}

// RecordBooking records a booking creation attempt
func RecordBooking(service, vehicleClass string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	BookingsTotal.WithLabelValues(service, vehicleClass, status).Inc()
}

// RecordTariffReload records a tariff reload attempt
func RecordTariffReload(service string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	TariffReloadsTotal.WithLabelValues(service, status).Inc()
}

// RecordDatabaseQuery records database query metrics
func RecordDatabaseQuery(service, operation string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	DatabaseQueriesTotal.WithLabelValues(service, operation, status).Inc()
	DatabaseQueryDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// RecordRabbitMQPublish records RabbitMQ publish metrics
func RecordRabbitMQPublish(service, queue string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	RabbitMQMessagesPublished.WithLabelValues(service, queue, status).Inc()
}
