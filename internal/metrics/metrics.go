// Package metrics exposes Prometheus instrumentation for the HTTP surface,
// the event store and the search index.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/starford/dagaz/internal/eventstore"
)

// Route labels for requests that did not resolve to a chi pattern.
const (
	routeUnmatched = "unmatched"
	routeUnknown   = "unknown"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dagaz_http_requests_total",
		Help: "Total number of HTTP requests processed.",
	}, []string{"method", "route"})

	httpErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dagaz_http_errors_total",
		Help: "Total number of HTTP requests resulting in server errors.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dagaz_http_request_duration_seconds",
		Help:    "Histogram of latencies for HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	storeChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dagaz_store_changes_total",
		Help: "Total number of event store mutations by operation.",
	}, []string{"op"})

	storeEvents = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dagaz_store_events",
		Help: "Number of events currently held in the store.",
	})

	indexLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dagaz_index_latency_seconds",
		Help:    "Histogram of search index operation latencies.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "route"})
)

// Middleware records request metrics labelled by the chi route pattern.
// Requests that match no route share a single label.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			// The pattern is only complete once routing has finished.
			route := routePattern(r.Context())
			method := r.Method
			statusCode := strconv.Itoa(status)

			httpRequestsTotal.WithLabelValues(method, route).Inc()
			httpRequestDuration.WithLabelValues(method, route, statusCode).Observe(time.Since(start).Seconds())
			if status >= http.StatusInternalServerError {
				httpErrorsTotal.WithLabelValues(method, route, statusCode).Inc()
			}
		})
	}
}

// Handler exposes the Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StoreListener counts store mutations and tracks the collection size.
// size is called after every change.
func StoreListener(size func() int) eventstore.Listener {
	return func(c eventstore.Change) {
		storeChangesTotal.WithLabelValues(string(c.Op)).Inc()
		storeEvents.Set(float64(size()))
	}
}

// ObserveIndexLatency records index latency for a given operation, associating it with the request route when available.
func ObserveIndexLatency(ctx context.Context, operation string, start time.Time) {
	indexLatency.WithLabelValues(operation, routeFromContext(ctx)).Observe(time.Since(start).Seconds())
}

func routeFromContext(ctx context.Context) string {
	if route := routePattern(ctx); route != routeUnmatched {
		return route
	}
	return routeUnknown
}

func routePattern(ctx context.Context) string {
	if rctx := chi.RouteContext(ctx); rctx != nil {
		if pattern := strings.TrimSpace(rctx.RoutePattern()); pattern != "" {
			return pattern
		}
	}
	return routeUnmatched
}
