package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	logger "github.com/PolarWolf314/cipherlab/internal/logging"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// observe wraps h with access logging and latency metrics for route.
func (s *Server) observe(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)

		elapsed := time.Since(start)
		s.metrics.ObserveDuration(route, elapsed)
		s.accessLog.WithFields(logrus.Fields{
			"request_id":  requestID,
			"method":      r.Method,
			"route":       route,
			"status":      rec.status,
			"duration_ms": elapsed.Milliseconds(),
			"client":      clientKey(r),
			"identity_fp": logger.Fingerprint(identityParam(r)),
		}).Info("request")
	}
}

// throttle rejects requests from clients that exceeded their budget.
func (s *Server) throttle(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ok, wait := s.limiter.take(clientKey(r), time.Now()); !ok {
			s.metrics.RateLimited(route)
			w.Header().Set("Retry-After", retryAfter(wait))
			s.fail(w, route, errRateLimited)
			return
		}
		h(w, r)
	}
}

// identityParam reads the id without consuming a POST body twice.
func identityParam(r *http.Request) string {
	if id := r.URL.Query().Get("id"); id != "" {
		return id
	}
	if r.PostForm != nil {
		return r.PostForm.Get("id")
	}
	return ""
}
