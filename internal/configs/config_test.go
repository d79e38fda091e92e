package configs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PolarWolf314/cipherlab/internal/secrets"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvAddr, EnvExcerpts, EnvPasswords, EnvUsername, EnvKeyMode,
		EnvArtifactDir, EnvArtifactInMemory, EnvArtifactTTL,
		EnvRateLimitEnabled, EnvRateLimitRPS, EnvRateLimitBurst, EnvRateLimitIdleTTL, EnvAuditPath,
	} {
		t.Setenv(key, "")
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	clearEnv(t)
	tempDir := t.TempDir()

	settings, err := LoadSettings(filepath.Join(tempDir, "missing.toml"), filepath.Join(tempDir, ".env"))
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}

	if settings.Server.Addr != DefaultAddr {
		t.Errorf("Expected addr %q, got %q", DefaultAddr, settings.Server.Addr)
	}
	if settings.Bundle.Username != secrets.DefaultUsername {
		t.Errorf("Expected username %q, got %q", secrets.DefaultUsername, settings.Bundle.Username)
	}
	mode, err := settings.KeyMode()
	if err != nil || mode != secrets.KeyModeShared {
		t.Errorf("Expected shared key mode, got %q (%v)", mode, err)
	}
	if settings.ArtifactsEnabled() {
		t.Error("artifact persistence should be off by default")
	}
	ttl, err := settings.ArtifactTTL()
	if err != nil || ttl != 15*time.Minute {
		t.Errorf("Expected 15m ttl, got %v (%v)", ttl, err)
	}
}

func TestLoadSettingsFromFile(t *testing.T) {
	clearEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "cipherlab.toml")

	content := `
[server]
addr = "127.0.0.1:9000"

[corpus]
excerpts = "/data/excerpts.yaml"

[bundle]
key_mode = "split"

[artifacts]
in_memory = true
ttl = "2h"

[rate_limit]
enabled = false
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	settings, err := LoadSettings(configPath, "")
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}

	if settings.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Expected addr from file, got %q", settings.Server.Addr)
	}
	if settings.Corpus.ExcerptsPath != "/data/excerpts.yaml" {
		t.Errorf("Expected excerpts path from file, got %q", settings.Corpus.ExcerptsPath)
	}
	if settings.Corpus.PasswordsPath != DefaultPasswordsPath {
		t.Errorf("Unset keys should keep defaults, got %q", settings.Corpus.PasswordsPath)
	}
	if settings.Bundle.Username != secrets.DefaultUsername {
		t.Errorf("Unset username should keep default, got %q", settings.Bundle.Username)
	}
	if mode, _ := settings.KeyMode(); mode != secrets.KeyModeSplit {
		t.Errorf("Expected split key mode, got %q", mode)
	}
	if !settings.ArtifactsEnabled() {
		t.Error("in-memory artifacts should enable persistence")
	}
	if ttl, _ := settings.ArtifactTTL(); ttl != 2*time.Hour {
		t.Errorf("Expected 2h ttl, got %v", ttl)
	}
	if settings.RateLimit.Enabled {
		t.Error("Expected rate limiting disabled")
	}
}

func TestLoadSettingsEnvOverrides(t *testing.T) {
	clearEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "cipherlab.toml")
	if err := os.WriteFile(configPath, []byte("[server]\naddr = \"127.0.0.1:9000\"\n"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	t.Setenv(EnvAddr, "127.0.0.1:7000")
	t.Setenv(EnvRateLimitBurst, "3")
	t.Setenv(EnvRateLimitRPS, "not-a-number")
	t.Setenv(EnvArtifactInMemory, "yes")

	settings, err := LoadSettings(configPath, "")
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}

	if settings.Server.Addr != "127.0.0.1:7000" {
		t.Errorf("Environment should win over the file, got %q", settings.Server.Addr)
	}
	if settings.RateLimit.Burst != 3 {
		t.Errorf("Expected burst 3, got %d", settings.RateLimit.Burst)
	}
	if settings.RateLimit.RPS != DefaultRateLimitRPS {
		t.Errorf("Invalid rps should fall back, got %v", settings.RateLimit.RPS)
	}
	if !settings.Artifacts.InMemory {
		t.Error("Expected in-memory artifacts from environment")
	}
}

func TestLoadSettingsEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(EnvUsername)
	tempDir := t.TempDir()
	envFile := filepath.Join(tempDir, ".env")
	if err := os.WriteFile(envFile, []byte(EnvUsername+"=teachingfellow\n"), 0600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv(EnvUsername) })

	settings, err := LoadSettings("", envFile)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if settings.Bundle.Username != "teachingfellow" {
		t.Errorf("Expected username from .env, got %q", settings.Bundle.Username)
	}
}

func TestLoadSettingsRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown key mode", "[bundle]\nkey_mode = \"triple\"\n", "invalid key mode"},
		{"bad ttl", "[artifacts]\nttl = \"soon\"\n", "invalid artifact ttl"},
		{"negative ttl", "[artifacts]\nttl = \"-5m\"\n", "must be positive"},
		{"zero burst", "[rate_limit]\nenabled = true\nburst = 0\n", "rate limit"},
		{"bad idle ttl", "[rate_limit]\nidle_ttl = \"forever\"\n", "invalid rate limit idle_ttl"},
		{"malformed toml", "[server\naddr = 1", "failed to load config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			configPath := filepath.Join(t.TempDir(), "cipherlab.toml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0600); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}

			_, err := LoadSettings(configPath, "")
			if err == nil {
				t.Fatal("Expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "nested", "cipherlab.toml")

	original := Defaults()
	original.Bundle.KeyMode = string(secrets.KeyModeSplit)
	original.Audit.Path = "/var/log/cipherlab/audit.jsonl"

	if err := SaveSettings(configPath, original); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	loaded, err := LoadSettings(configPath, "")
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if *loaded != *original {
		t.Errorf("Expected %+v, got %+v", original, loaded)
	}
}

func TestRateLimitIdleTTL(t *testing.T) {
	clearEnv(t)

	settings, err := LoadSettings(filepath.Join(t.TempDir(), "missing.toml"), "")
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	idle, err := settings.RateLimitIdleTTL()
	if err != nil {
		t.Fatalf("RateLimitIdleTTL failed: %v", err)
	}
	if idle != 10*time.Minute {
		t.Errorf("Expected default 10m, got %v", idle)
	}

	t.Setenv(EnvRateLimitIdleTTL, "90s")
	settings, err = LoadSettings(filepath.Join(t.TempDir(), "missing.toml"), "")
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if idle, _ := settings.RateLimitIdleTTL(); idle != 90*time.Second {
		t.Errorf("Expected env override 90s, got %v", idle)
	}
}
