package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Middleware)
	router.Get("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/v1/item/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/item/42", nil))

	counter, err := requestsTotal.GetMetricWithLabelValues(http.MethodGet, "/v1/ping", "200")
	require.NoError(t, err)
	assert.Equal(t, float64(2), testutil.ToFloat64(counter))

	// path label is the route pattern, not the raw URL
	counter, err = requestsTotal.GetMetricWithLabelValues(http.MethodGet, "/v1/item/{id}", "404")
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(counter))

	assert.Equal(t, float64(0), testutil.ToFloat64(requestsInFlight))

	assert.Equal(t, 2, testutil.CollectAndCount(requestDuration, "accountd_http_request_duration_seconds"))
}
