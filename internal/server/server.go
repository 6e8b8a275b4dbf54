package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tally/internal/config"
	"tally/internal/logging"
	"tally/internal/service"
)

// Server serves the ledger API over HTTP.
type Server struct {
	bind    string
	logger  *slog.Logger
	service *service.Service

	listener net.Listener
	server   *http.Server
}

// New wires the API server over the given service. The bind address comes
// from the http section of the configuration.
func New(cfg *config.Config, svc *service.Service, logger *slog.Logger) (*Server, error) {
	if cfg == nil || svc == nil {
		return nil, errors.New("server requires config and service")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	srv := &Server{
		bind:    cfg.HTTP.Listen,
		logger:  logger.With(logging.String(logging.FieldComponent, "server")),
		service: svc,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(srv.requestLogger)
	router.Use(middleware.Recoverer)

	router.Get("/health", srv.handleHealth)

	router.Group(func(r chi.Router) {
		r.Use(basicAuth(cfg.HTTP.Username, cfg.HTTP.Password))

		r.Get("/periods", srv.handlePeriods)
		r.Get("/periods/{period}", srv.handleList)
		r.Post("/periods/{period}", srv.handleAdd)
		r.Get("/periods/{period}/{table}/{eid}", srv.handleGet)
		r.Patch("/periods/{period}/{table}/{eid}", srv.handleUpdate)
		r.Delete("/periods/{period}/{table}/{eid}", srv.handleRemove)
		r.Post("/copy", srv.handleCopy)
	})

	srv.server = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

// Handler exposes the router, mainly for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins listening and serving until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Addr returns the bound listener address, useful when binding to port 0.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.bind
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// requestLogger records one line per request with the chi request id.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("http request",
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Int("status", ww.Status()),
				logging.Duration("duration", time.Since(start)),
				logging.String(logging.FieldCorrelationID, middleware.GetReqID(r.Context())))
		}()

		next.ServeHTTP(ww, r.WithContext(
			logging.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))))
	})
}
