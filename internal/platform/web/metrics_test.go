package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Metrics_Middleware(t *testing.T) {
	// given
	m := NewMetrics("catalog")
	router := chi.NewRouter()
	router.Use(m.Middleware)
	router.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	router.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	// when
	for _, path := range []string{"/items/1", "/items/2", "/ok", "/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	// then
	assert.InDelta(t, 2, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/items/{id}", "404")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/ok", "200")), 0)
	assert.Equal(t, 3, testutil.CollectAndCount(m.requests))
	assert.Equal(t, 3, testutil.CollectAndCount(m.duration))
}

func Test_Metrics_Handler(t *testing.T) {
	// given
	m := NewMetrics("catalog")
	m.requests.WithLabelValues("GET", "/ok", "200").Inc()
	rr := httptest.NewRecorder()

	// when
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// then
	require.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `catalog_http_requests_total{method="GET",route="/ok",status="200"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
