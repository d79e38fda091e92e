package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.Issued("bundle")
	m.Issued("bundle")
	m.Checked("password", true)
	m.Checked("password", false)
	m.Failed("invalid_identity")
	m.RateLimited("/check2")
	m.ObserveDuration("/fetch", 3*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	text := string(body)

	for _, want := range []string{
		`cipherlab_artifacts_issued_total{kind="bundle"} 2`,
		`cipherlab_checks_total{kind="password",outcome="match"} 1`,
		`cipherlab_checks_total{kind="password",outcome="miss"} 1`,
		`cipherlab_errors_total{class="invalid_identity"} 1`,
		`cipherlab_rate_limited_total{route="/check2"} 1`,
		`cipherlab_request_duration_seconds_count{route="/fetch"} 1`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected metrics output to contain %q", want)
		}
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.Issued("key")
	m.Checked("excerpt", true)
	m.Failed("x")
	m.RateLimited("/check1")
	m.ObserveDuration("/fetch", time.Second)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 404 {
		t.Errorf("Expected 404 from nil metrics handler, got %d", rec.Code)
	}
}
