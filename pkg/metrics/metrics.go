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
	ReportsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mileage_reports_generated_total",
			Help: "Total number of mileage report requests by outcome",
		},
		[]string{"service", "status"},
	)

	ReportGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mileage_report_generation_duration_seconds",
			Help:    "Time spent turning a timesheet export into trips",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	TripsDerivedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mileage_trips_derived_total",
			Help: "Total number of trips derived",
		},
		[]string{"service"},
	)

	EntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mileage_entries_total",
			Help: "Timesheet entries seen by the parser, by outcome",
		},
		[]string{"service", "outcome"},
	)

	ReportCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mileage_report_cache_total",
			Help: "Report cache lookups by result",
		},
		[]string{"service", "result"},
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

	RabbitMQMessagesConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rabbitmq_messages_consumed_total",
			Help: "Total number of messages consumed from RabbitMQ",
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

// RecordReport records the outcome of one report generation.
func RecordReport(service string, trips int, err error, duration time.Duration) {
	ReportsGeneratedTotal.WithLabelValues(service, statusOf(err)).Inc()
	ReportGenerationDuration.WithLabelValues(service).Observe(duration.Seconds())
	if err == nil {
		TripsDerivedTotal.WithLabelValues(service).Add(float64(trips))
	}
}

// RecordEntries records how many entries were kept, discarded as malformed
// and dropped as zero-duration.
func RecordEntries(service string, kept, discarded, dropped int) {
	EntriesTotal.WithLabelValues(service, "kept").Add(float64(kept))
	EntriesTotal.WithLabelValues(service, "discarded").Add(float64(discarded))
	EntriesTotal.WithLabelValues(service, "dropped").Add(float64(dropped))
}

// RecordCache records a report cache lookup.
func RecordCache(service string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	ReportCacheTotal.WithLabelValues(service, result).Inc()
}

// RecordDatabaseQuery records database query metrics
func RecordDatabaseQuery(service, operation string, err error, duration time.Duration) {
	DatabaseQueriesTotal.WithLabelValues(service, operation, statusOf(err)).Inc()
	DatabaseQueryDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// RecordRabbitMQPublish records RabbitMQ publish metrics
func RecordRabbitMQPublish(service, queue string, err error) {
	RabbitMQMessagesPublished.WithLabelValues(service, queue, statusOf(err)).Inc()
}

// RecordRabbitMQConsume records RabbitMQ consume metrics
func RecordRabbitMQConsume(service, queue string, err error) {
	RabbitMQMessagesConsumed.WithLabelValues(service, queue, statusOf(err)).Inc()
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
