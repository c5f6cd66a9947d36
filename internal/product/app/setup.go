// Package app contains the application setup for the catalog service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/gocatalog/internal/config"
	"github.com/abgdnv/gocatalog/internal/platform/server"
	"github.com/abgdnv/gocatalog/internal/platform/web"
	"github.com/abgdnv/gocatalog/internal/product/events"
	grpcImpl "github.com/abgdnv/gocatalog/internal/product/grpc"
	"github.com/abgdnv/gocatalog/internal/product/handler"
	"github.com/abgdnv/gocatalog/internal/product/service"
	"github.com/abgdnv/gocatalog/internal/product/store"
	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc"
)

const metricsNamespace = "catalog"

type Dependencies struct {
	ProductService service.ProductService
	Metrics        *web.Metrics
	Logger         *slog.Logger
}

// SetupDependencies creates the single in-memory store of the process and the service over it.
// A nil publisher disables product events.
func SetupDependencies(logger *slog.Logger, publisher events.Publisher) *Dependencies {
	var pService service.ProductService = service.NewService(store.NewInMemoryStore())
	if publisher != nil {
		pService = events.NewPublishingService(pService, publisher, logger)
	}

	return &Dependencies{
		ProductService: pService,
		Metrics:        web.NewMetrics(metricsNamespace),
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the routes and middleware of the catalog.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies, metrics config.MetricsConfig) http.Handler {
	var mux *chi.Mux
	if metrics.Enabled && deps.Metrics != nil {
		mux = server.NewChiRouter(deps.Logger, deps.Metrics.Middleware)
		mux.Method(http.MethodGet, metrics.Path, deps.Metrics.Handler())
	} else {
		mux = server.NewChiRouter(deps.Logger)
	}
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the catalog.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := handler.NewHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the catalog.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps, cfg.Metrics)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}

// SetupGrpcServer initializes the gRPC server for the catalog.
func SetupGrpcServer(deps *Dependencies, reflectionEnabled bool) *grpc.Server {
	// Service registration function for gRPC server
	catalogRegisterFunc := func(s *grpc.Server) {
		grpcImpl.RegisterCatalogServer(s, grpcImpl.NewServer(deps.ProductService, deps.Logger))
	}
	// create a new gRPC server with reflection if enabled
	return server.NewGRPCServer(deps.Logger, reflectionEnabled, catalogRegisterFunc)
}
