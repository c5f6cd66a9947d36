package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/abgdnv/gocatalog/internal/config"
	"github.com/abgdnv/gocatalog/internal/product/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func Test_SetupDependencies_Publisher(t *testing.T) {
	// given
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	// when
	withEvents := SetupDependencies(testLogger(), publisher)
	withoutEvents := SetupDependencies(testLogger(), nil)

	// then
	assert.IsType(t, &events.PublishingService{}, withEvents.ProductService)
	assert.NotEqual(t, withEvents.ProductService, withoutEvents.ProductService)
	assert.NotNil(t, withoutEvents.Metrics)
}

func Test_SetupHttpHandler_Metrics(t *testing.T) {
	testCases := []struct {
		name         string
		metrics      config.MetricsConfig
		expectedCode int
	}{
		{name: "metrics enabled", metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"}, expectedCode: http.StatusOK},
		{name: "metrics disabled", metrics: config.MetricsConfig{}, expectedCode: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			h := SetupHttpHandler(SetupDependencies(testLogger(), nil), tc.metrics)
			create := httptest.NewRequest(http.MethodPost, "/api/v1/products",
				strings.NewReader(`{"name":"Widget","description":"A widget","price":9.99,"quantity":5,"category":"Tools"}`))
			h.ServeHTTP(httptest.NewRecorder(), create)
			rr := httptest.NewRecorder()

			// when
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedCode == http.StatusOK {
				body, err := io.ReadAll(rr.Body)
				require.NoError(t, err)
				assert.Regexp(t, `catalog_http_requests_total\{method="POST",route="/api/v1/products/?",status="201"\} 1`, string(body))
			}
		})
	}
}

func Test_SetupHttpServer(t *testing.T) {
	// given
	var cfg config.Config
	cfg.HTTPServer.Port = 8088
	cfg.HTTPServer.MaxHeaderBytes = 4096
	cfg.HTTPServer.Timeout.Read = time.Second
	cfg.HTTPServer.Timeout.Write = 2 * time.Second

	// when
	srv := SetupHttpServer(SetupDependencies(testLogger(), nil), &cfg)

	// then
	assert.Equal(t, ":8088", srv.Addr)
	assert.Equal(t, 4096, srv.MaxHeaderBytes)
	assert.Equal(t, time.Second, srv.ReadTimeout)
	assert.Equal(t, 2*time.Second, srv.WriteTimeout)
	assert.NotNil(t, srv.Handler)
}

func Test_SetupGrpcServer(t *testing.T) {
	srv := SetupGrpcServer(SetupDependencies(testLogger(), nil), false)
	defer srv.Stop()

	info := srv.GetServiceInfo()

	require.Contains(t, info, "catalog.v1.CatalogService")
	assert.Len(t, info["catalog.v1.CatalogService"].Methods, 5)
	assert.NotContains(t, info, "grpc.reflection.v1.ServerReflection")
}
