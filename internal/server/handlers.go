package server

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/PolarWolf314/cipherlab/internal/workflows"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed form body"})
		return
	}

	result, err := s.runner.IssueBundle(r.Context(), workflows.IssueBundleOptions{
		Identity: r.PostForm.Get("id"),
	})
	if err != nil {
		s.fail(w, "/download", err)
		return
	}
	s.metrics.Issued("bundle")

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="passwords-`+result.ArtifactID+`.db"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Bundle)))
	w.Header().Set("X-Artifact-ID", result.ArtifactID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Bundle)
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	blob, err := s.runner.GetArtifact(r.Context(), id)
	if err != nil {
		s.fail(w, "/artifacts", err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="passwords-`+id+`.db"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(blob)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	result, err := s.runner.FetchKey(r.Context(), workflows.FetchKeyOptions{
		Identity: r.URL.Query().Get("id"),
	})
	if err != nil {
		s.fail(w, "/fetch", err)
		return
	}
	s.metrics.Issued("key")
	writeJSON(w, http.StatusOK, map[string]string{"secret_key": result.KeyHex})
}

func (s *Server) handleGetText(w http.ResponseWriter, r *http.Request) {
	result, err := s.runner.IssueExcerpt(r.Context(), workflows.IssueExcerptOptions{
		Identity: r.URL.Query().Get("id"),
	})
	if err != nil {
		s.fail(w, "/get_text", err)
		return
	}
	s.metrics.Issued("excerpt")
	writeJSON(w, http.StatusOK, map[string]string{"response": result.Ciphertext})
}

func (s *Server) handleCheckExcerpt(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := s.runner.CheckExcerpt(r.Context(), workflows.CheckOptions{
		Identity: q.Get("id"),
		Guess:    q.Get("text"),
	})
	if err != nil {
		s.fail(w, "/check1", err)
		return
	}
	s.metrics.Checked("excerpt", result.Matched)
	writeJSON(w, http.StatusOK, map[string]bool{"response": result.Matched})
}

func (s *Server) handleCheckPassword(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := s.runner.CheckPassword(r.Context(), workflows.CheckOptions{
		Identity: q.Get("id"),
		Guess:    q.Get("password"),
	})
	if err != nil {
		s.fail(w, "/check2", err)
		return
	}
	s.metrics.Checked("password", result.Matched)
	writeJSON(w, http.StatusOK, map[string]bool{"response": result.Matched})
}

// fail counts, logs and writes err.
func (s *Server) fail(w http.ResponseWriter, route string, err error) {
	status, class := classify(err)
	s.metrics.Failed(class)
	if status >= http.StatusInternalServerError {
		s.accessLog.WithFields(logrus.Fields{"route": route, "class": class}).WithError(err).Error("request failed")
	}
	writeError(w, err)
}
