package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Temutjin2k/mileage-report/pkg/metrics"
)

// Metrics records HTTP metrics
func (m *Middleware) Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip metrics endpoint to avoid recursion
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		inFlight := metrics.HttpRequestsInFlight.WithLabelValues(m.service)
		inFlight.Inc()
		defer inFlight.Dec()

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		metrics.RecordHTTPMetrics(m.service, r.Method, metricPath(r.URL.Path), rw.status, time.Since(start))
	})
}

// metricPath replaces report ids in the path so every report shares one series.
func metricPath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if err := uuid.Validate(s); err == nil && s != "" {
			segments[i] = "{report_id}"
		}
	}
	return strings.Join(segments, "/")
}
