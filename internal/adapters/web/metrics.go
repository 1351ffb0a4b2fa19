package web

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "profitlens_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "profitlens_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})

	assistantTurnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "profitlens_assistant_turns_total",
		Help: "Count of AI assistant chat turns by result",
	}, []string{"result"})
)

// Metrics records request count and duration for every request.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		status := http.StatusText(rec.status)
		httpRequestsTotal.WithLabelValues(r.Method, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, status).Observe(time.Since(start).Seconds())
	})
}

// observeAssistantTurn increments the chat turn counter with a result label.
func observeAssistantTurn(result string) {
	assistantTurnsTotal.WithLabelValues(result).Inc()
}
