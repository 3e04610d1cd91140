// Package docserver serves the OpenAPI document generated from a route file
// over HTTP, rewritten per request for the proxy headers it arrived with.
package docserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/erraggy/restoas/forwarded"
	"github.com/erraggy/restoas/parser"
	"github.com/erraggy/restoas/reader"
)

// Server generates and serves the document.
type Server struct {
	routes       *reader.RouteFile
	document     reader.Config
	documentPath string
	logger       *slog.Logger
	metrics      *Metrics
	readTimeout  time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithDocumentPath sets the URL prefix of the document endpoints.
func WithDocumentPath(p string) Option {
	return func(s *Server) { s.documentPath = p }
}

// WithLogger sets the request and generation logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics sets the collectors. By default each Server has its own.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithReadTimeout sets the read header timeout used by ListenAndServe.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) { s.readTimeout = d }
}

// New returns a Server for the routes in rf described by document.
func New(rf *reader.RouteFile, document reader.Config, opts ...Option) *Server {
	s := &Server{
		routes:       rf,
		document:     document,
		documentPath: "/",
		readTimeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	return s
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Handler returns the HTTP handler serving:
//
//	GET <documentPath>/openapi.json
//	GET <documentPath>/openapi.yaml
//	GET /metrics
//	GET /healthz
//
// The optional route query parameter filters the documented routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+path.Join(s.documentPath, "openapi.json"), s.serveDocument(parser.SourceFormatJSON))
	mux.HandleFunc("GET "+path.Join(s.documentPath, "openapi.yaml"), s.serveDocument(parser.SourceFormatYAML))
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return withRequestID(instrument(s.logger, s.metrics)(mux))
}

// ListenAndServe serves on addr until ctx is done, then shuts down within
// shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.readTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("document server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("document server shutting down")
	return srv.Shutdown(shutdownCtx)
}

// Generate builds the document for routeFilter and applies the forwarded
// headers in h.
func (s *Server) Generate(routeFilter string, h http.Header) (*parser.OAS2Document, error) {
	start := time.Now()
	doc, err := reader.Read(s.routes.Rests, routeFilter, s.document,
		reader.WithClassResolver(s.routes.ClassResolver()),
		reader.WithLogger(parser.NewSlogAdapter(s.logger)),
	)
	s.metrics.generation.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.generationErrors.Inc()
		return nil, err
	}
	forwarded.Apply(doc, h)
	return doc, nil
}

func (s *Server) serveDocument(format parser.SourceFormat) http.HandlerFunc {
	contentType := "application/json"
	if format == parser.SourceFormatYAML {
		contentType = "application/yaml"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := s.Generate(r.URL.Query().Get("route"), r.Header)
		if err != nil {
			s.logger.Error("document generation failed",
				"request_id", RequestID(r.Context()),
				"error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data, err := parser.Marshal(doc, format)
		if err != nil {
			s.logger.Error("document serialization failed",
				"request_id", RequestID(r.Context()),
				"error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(data)
	}
}
