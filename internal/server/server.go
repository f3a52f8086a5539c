// Package server serves cached Pardot artifacts over HTTP so that pages
// outside the CLI can embed forms, dynamic content and tracking code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pardot/pkg/integrations/pardot"
	"github.com/matzehuels/pardot/pkg/settings"
)

// RequestTimeout bounds each request, including any upstream fetch.
const RequestTimeout = 30 * time.Second

// Fetcher is the subset of *pardot.Client the server needs.
type Fetcher interface {
	Campaigns(ctx context.Context) pardot.Result[[]pardot.Campaign]
	FormEmbedCode(ctx context.Context, id string) pardot.Result[string]
	DynamicContentURL(ctx context.Context, id string) pardot.Result[string]
	TrackingCodeTemplate(ctx context.Context) pardot.Result[string]
}

// Server routes embed and API requests to a Fetcher.
type Server struct {
	fetcher  Fetcher
	settings settings.Store
	logger   *log.Logger
}

// New creates a Server. A nil logger means log.Default().
func New(f Fetcher, st settings.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{fetcher: f, settings: st, logger: logger}
}

// Handler returns the router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(s.recoverer)
	r.Use(middleware.Timeout(RequestTimeout))

	r.Get("/healthz", s.health)
	r.Get("/api/campaigns", s.campaigns)
	r.Route("/embed", func(r chi.Router) {
		r.Get("/forms/{id}", s.form)
		r.Get("/dynamic-content/{id}", s.dynamicContent)
		r.Get("/tracking-code", s.trackingCode)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
