package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	cerrors "github.com/PolarWolf314/cipherlab/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError reports err to the client. Server-side failures get a fixed
// message so wrapped causes such as file paths stay in the logs.
func writeError(w http.ResponseWriter, err error) {
	status, class := classify(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = publicMessage(status, class)
	}
	writeJSON(w, status, map[string]string{"error": message})
}

func publicMessage(status int, class string) string {
	switch {
	case class == "corpus_unavailable":
		return "corpus unavailable, try again"
	case status == http.StatusServiceUnavailable:
		return "service unavailable, try again"
	default:
		return "internal error"
	}
}

// classify maps an error to an HTTP status and a metrics class.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, cerrors.ErrInvalidIdentity):
		return http.StatusBadRequest, "invalid_identity"
	case errors.Is(err, cerrors.ErrMissingGuess):
		return http.StatusBadRequest, "missing_guess"
	case errors.Is(err, cerrors.ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, cerrors.ErrArtifactNotFound):
		return http.StatusNotFound, "artifact_not_found"
	case errors.Is(err, cerrors.ErrArtifactStoreDisabled):
		return http.StatusNotFound, "artifacts_disabled"
	case errors.Is(err, cerrors.ErrCorpusUnavailable):
		return http.StatusServiceUnavailable, "corpus_unavailable"
	case errors.Is(err, cerrors.ErrEmptyCandidates):
		return http.StatusInternalServerError, "empty_candidates"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "canceled"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
