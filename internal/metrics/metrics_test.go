package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/notifications/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/notifications/{id}", "418"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notifications/5", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/notifications/{id}", "418"))
	assert.Equal(t, before+1, after)
}

func TestObserveCommission(t *testing.T) {
	before := testutil.ToFloat64(CommissionCreditsTotal.WithLabelValues("3"))
	ObserveCommission(3)
	assert.Equal(t, before+1, testutil.ToFloat64(CommissionCreditsTotal.WithLabelValues("3")))
}

func TestHandlerExposesCounters(t *testing.T) {
	PlacementsTotal.WithLabelValues("system").Inc()

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "elevatex_placements_total"))
}
