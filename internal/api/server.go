package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/vaidashi/dessert-order-tracker/internal/app"
	"github.com/vaidashi/dessert-order-tracker/internal/config"
	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
	"github.com/vaidashi/dessert-order-tracker/pkg/middleware"
)

type Server struct {
	config     *config.Config
	logger     logger.Logger
	router     *mux.Router
	httpServer *http.Server
	app        *app.App
	throttle   *middleware.Throttle
}

// NewServer creates a new API server over the services in a
func NewServer(cfg *config.Config, logger logger.Logger, a *app.App) *Server {
	r := mux.NewRouter()

	server := &Server{
		router: r,
		httpServer: &http.Server{
			Addr:         cfg.Address(),
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:   logger,
		config:   cfg,
		app:      a,
		throttle: middleware.NewThrottle(cfg.Render.Burst, cfg.Render.PerSecond, logger),
	}

	server.setupRoutes()

	return server
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones and closes the store
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)

	if closeErr := s.app.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	return err
}

// ServeHTTP lets the server be driven directly, as in tests
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupRoutes configures all the routes for our API
func (s *Server) setupRoutes() {
	s.router.Use(s.loggingMiddleware)

	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", s.healthCheckHandler).Methods(http.MethodGet)

	// Orders
	api.HandleFunc("/orders", s.getOrdersHandler).Methods(http.MethodGet)
	api.HandleFunc("/orders", s.createOrderHandler).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}", s.getOrderByIDHandler).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", s.updateOrderHandler).Methods(http.MethodPut)
	api.HandleFunc("/orders/{id}", s.deleteOrderHandler).Methods(http.MethodDelete)
	api.HandleFunc("/orders/{id}/status", s.updateOrderStatusHandler).Methods(http.MethodPatch)
	api.HandleFunc("/orders/{id}/receipt", s.generateReceiptHandler).Methods(http.MethodPost)
	api.Handle("/orders/{id}/receipt", s.throttled(s.getReceiptHandler)).Methods(http.MethodGet)

	// Prices
	api.HandleFunc("/prices", s.getPricesHandler).Methods(http.MethodGet)
	api.HandleFunc("/prices", s.updatePricesHandler).Methods(http.MethodPut)
	api.HandleFunc("/prices/quote", s.quoteHandler).Methods(http.MethodGet)

	// Reports
	api.HandleFunc("/reports/dashboard", s.dashboardHandler).Methods(http.MethodGet)
	api.Handle("/reports/sales-by-date.png", s.throttled(s.salesChartHandler)).Methods(http.MethodGet)
	api.Handle("/reports/revenue-breakdown.png", s.throttled(s.revenueChartHandler)).Methods(http.MethodGet)
}

// throttled puts an image rendering handler behind the shared render throttle
func (s *Server) throttled(h http.HandlerFunc) http.Handler {
	return s.throttle.Middleware(h)
}

// Middleware for logging requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := middleware.NewStatusRecorder(w)

		next.ServeHTTP(rec, r)

		s.logger.Info("Request processed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.StatusCode,
			"duration", time.Since(start),
			"remoteAddr", r.RemoteAddr,
		)
	})
}
