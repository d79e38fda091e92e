// Package shared contains helpers used by the integration test packages.
package shared

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/PolarWolf314/cipherlab/internal/artifacts"
	"github.com/PolarWolf314/cipherlab/internal/audit"
	"github.com/PolarWolf314/cipherlab/internal/configs"
	"github.com/PolarWolf314/cipherlab/internal/corpus"
	"github.com/PolarWolf314/cipherlab/internal/metrics"
	"github.com/PolarWolf314/cipherlab/internal/server"
	"github.com/PolarWolf314/cipherlab/internal/workflows"
)

// Passwords is the password corpus every integration test serves.
var Passwords = []string{"password", "letmein", "dragon", "sunshine", "qwerty"}

// Stack is a running server built from a settings file, the way `cipherlab serve` builds it.
type Stack struct {
	Server   *httptest.Server
	Settings *configs.Settings
	Dir      string
}

// AuditEntries returns everything the stack has audited so far.
func (s *Stack) AuditEntries(t *testing.T) []audit.Entry {
	t.Helper()
	entries, err := audit.ReadEntries(s.Settings.Audit.Path)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}
	return entries
}

// StartStack writes a corpus and config into a temp directory, lets mutate
// adjust the settings, and starts a server with an in-memory artifact store.
func StartStack(t *testing.T, mutate func(*configs.Settings)) *Stack {
	t.Helper()
	for _, key := range []string{
		configs.EnvAddr, configs.EnvExcerpts, configs.EnvPasswords, configs.EnvUsername,
		configs.EnvKeyMode, configs.EnvArtifactDir, configs.EnvArtifactInMemory,
		configs.EnvArtifactTTL, configs.EnvRateLimitEnabled, configs.EnvRateLimitRPS,
		configs.EnvRateLimitBurst, configs.EnvRateLimitIdleTTL, configs.EnvAuditPath,
	} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()

	excerpts := filepath.Join(dir, "excerpts.yaml")
	writeFile(t, excerpts, "- title: greeting\n  excerpt: hello world\n- excerpt: abc\n- title: no excerpt\n")
	passwords := filepath.Join(dir, "passwords.txt")
	writeFile(t, passwords, "password\r\nletmein\r\ndragon\r\nsunshine\r\nqwerty\r\n")

	settings := configs.Defaults()
	settings.Corpus.ExcerptsPath = excerpts
	settings.Corpus.PasswordsPath = passwords
	settings.Artifacts.InMemory = true
	settings.Audit.Path = filepath.Join(dir, "audit.jsonl")
	if mutate != nil {
		mutate(settings)
	}

	configPath := filepath.Join(dir, "cipherlab.toml")
	if err := configs.SaveSettings(configPath, settings); err != nil {
		t.Fatalf("Failed to save settings: %v", err)
	}
	loaded, err := configs.LoadSettings(configPath, "")
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}

	mode, err := loaded.KeyMode()
	if err != nil {
		t.Fatalf("Invalid key mode: %v", err)
	}
	ttl, err := loaded.ArtifactTTL()
	if err != nil {
		t.Fatalf("Invalid artifact ttl: %v", err)
	}
	idleTTL, err := loaded.RateLimitIdleTTL()
	if err != nil {
		t.Fatalf("Invalid rate limit idle ttl: %v", err)
	}

	store, err := artifacts.Open(artifacts.Options{InMemory: loaded.Artifacts.InMemory, Dir: loaded.Artifacts.Dir, TTL: ttl})
	if err != nil {
		t.Fatalf("Failed to open artifact store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	runner := &workflows.Runner{
		Corpus:    corpus.NewLoader(loaded.Corpus.ExcerptsPath, loaded.Corpus.PasswordsPath),
		KeyMode:   mode,
		Username:  loaded.Bundle.Username,
		Artifacts: store,
		Audit:     audit.New(loaded.Audit.Path),
	}

	srv := server.New(server.Options{
		Runner:  runner,
		Metrics: metrics.New(),
		RateLimit: server.RateLimit{
			Enabled: loaded.RateLimit.Enabled,
			RPS:     loaded.RateLimit.RPS,
			Burst:   loaded.RateLimit.Burst,
			IdleTTL: idleTTL,
		},
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &Stack{Server: ts, Settings: loaded, Dir: dir}
}

// WaitForExpiry sleeps just past d.
func WaitForExpiry(d time.Duration) {
	time.Sleep(d + 1100*time.Millisecond)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}
