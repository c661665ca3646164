package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elevatex_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ResponseTimeHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "elevatex_http_response_time_seconds",
			Help:    "Histogram of response times",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	PlacementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elevatex_placements_total",
			Help: "Users placed, by placement type",
		},
		[]string{"type"},
	)

	PlacementFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elevatex_placement_failures_total",
			Help: "Failed placements, by reason",
		},
		[]string{"reason"},
	)

	CommissionCreditsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elevatex_commission_credits_total",
			Help: "Commission credits applied, by level",
		},
		[]string{"level"},
	)

	CommissionSkipsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elevatex_commission_skips_total",
			Help: "Ancestors skipped during commission, by reason",
		},
		[]string{"reason"},
	)

	ChainsCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "elevatex_chains_completed_total",
			Help: "Chains that reached their required size",
		},
	)

	PayoutsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elevatex_payouts_processed_total",
			Help: "Gateway payments confirmed, by outcome",
		},
		[]string{"outcome"},
	)
)

func ObserveCommission(level int) {
	CommissionCreditsTotal.WithLabelValues(strconv.Itoa(level)).Inc()
}

// Middleware records request counts and latencies labelled by chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
		ResponseTimeHistogram.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
