package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	cerrors "github.com/PolarWolf314/cipherlab/internal/errors"
	"github.com/PolarWolf314/cipherlab/internal/metrics"
	"github.com/PolarWolf314/cipherlab/internal/workflows"
)

// DefaultAddr matches the port the classroom service has always used.
const DefaultAddr = "0.0.0.0:8080"

var errRateLimited = fmt.Errorf("%w: slow down and try again", cerrors.ErrRateLimited)

// RateLimit configures throttling of the guess endpoints.
type RateLimit struct {
	Enabled bool
	RPS     float64
	Burst   int

	// IdleTTL drops a client's bucket after this long without requests.
	// Zero means DefaultIdleTTL.
	IdleTTL time.Duration
}

// Options configures a Server.
type Options struct {
	Addr      string
	Runner    *workflows.Runner
	AccessLog *logrus.Logger
	Metrics   *metrics.Metrics
	RateLimit RateLimit
}

// Server serves the workflows over HTTP.
type Server struct {
	httpServer *http.Server
	runner     *workflows.Runner
	accessLog  *logrus.Logger
	metrics    *metrics.Metrics
	limiter    *guessLimiter
}

// New builds a Server and its routes. It does not start listening.
func New(opts Options) *Server {
	addr := opts.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	accessLog := opts.AccessLog
	if accessLog == nil {
		accessLog = logrus.New()
		accessLog.SetOutput(io.Discard)
	}

	mux := http.NewServeMux()
	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		runner:    opts.Runner,
		accessLog: accessLog,
		metrics:   opts.Metrics,
		limiter:   newGuessLimiter(opts.RateLimit),
	}

	mux.HandleFunc("POST /download", s.observe("/download", s.handleDownload))
	mux.HandleFunc("GET /artifacts/{id}", s.observe("/artifacts", s.handleArtifact))
	mux.HandleFunc("GET /fetch", s.observe("/fetch", s.handleFetch))
	mux.HandleFunc("GET /get_text", s.observe("/get_text", s.handleGetText))
	mux.HandleFunc("GET /check1", s.observe("/check1", s.throttle("/check1", s.handleCheckExcerpt)))
	mux.HandleFunc("GET /check2", s.observe("/check2", s.throttle("/check2", s.handleCheckPassword)))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", opts.Metrics.Handler())
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return nil
	default:
	}

	errCh := make(chan error, 1)
	go func() {
		err := s.httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
			return
		}
		errCh <- err
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}
