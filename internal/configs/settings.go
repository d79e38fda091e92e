package configs

import (
	"fmt"
	"time"

	"github.com/PolarWolf314/cipherlab/internal/secrets"
)

// Default values used when neither the config file nor the environment sets a field.
const (
	DefaultAddr           = "0.0.0.0:8080"
	DefaultExcerptsPath   = "excerpts.json"
	DefaultPasswordsPath  = "passwords.txt"
	DefaultArtifactTTL    = "15m"
	DefaultRateLimitRPS   = 5
	DefaultRateLimitBurst = 20
	DefaultRateLimitIdle  = "10m"
)

// Settings is the full cipherlab configuration.
type Settings struct {
	Server    ServerSettings    `toml:"server"`
	Corpus    CorpusSettings    `toml:"corpus"`
	Bundle    BundleSettings    `toml:"bundle"`
	Artifacts ArtifactSettings  `toml:"artifacts"`
	RateLimit RateLimitSettings `toml:"rate_limit"`
	Audit     AuditSettings     `toml:"audit"`
}

type ServerSettings struct {
	Addr string `toml:"addr"`
}

type CorpusSettings struct {
	ExcerptsPath  string `toml:"excerpts"`
	PasswordsPath string `toml:"passwords"`
}

type BundleSettings struct {
	Username string `toml:"username"`
	KeyMode  string `toml:"key_mode"`
}

// ArtifactSettings controls persistence of issued bundles. An empty Dir
// disables persistence unless InMemory is set.
type ArtifactSettings struct {
	Dir      string `toml:"dir"`
	InMemory bool   `toml:"in_memory"`
	TTL      string `toml:"ttl"`
}

type RateLimitSettings struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
	IdleTTL string  `toml:"idle_ttl"`
}

type AuditSettings struct {
	Path string `toml:"path"`
}

// Defaults returns the settings used when no config file exists.
func Defaults() *Settings {
	return &Settings{
		Server: ServerSettings{Addr: DefaultAddr},
		Corpus: CorpusSettings{
			ExcerptsPath:  DefaultExcerptsPath,
			PasswordsPath: DefaultPasswordsPath,
		},
		Bundle: BundleSettings{
			Username: secrets.DefaultUsername,
			KeyMode:  string(secrets.KeyModeShared),
		},
		Artifacts: ArtifactSettings{TTL: DefaultArtifactTTL},
		RateLimit: RateLimitSettings{
			Enabled: true,
			RPS:     DefaultRateLimitRPS,
			Burst:   DefaultRateLimitBurst,
			IdleTTL: DefaultRateLimitIdle,
		},
	}
}

// KeyMode returns the parsed bundle key mode.
func (s *Settings) KeyMode() (secrets.KeyMode, error) {
	return secrets.ParseKeyMode(s.Bundle.KeyMode)
}

// ArtifactTTL returns the parsed artifact lifetime.
func (s *Settings) ArtifactTTL() (time.Duration, error) {
	if s.Artifacts.TTL == "" {
		return time.ParseDuration(DefaultArtifactTTL)
	}
	ttl, err := time.ParseDuration(s.Artifacts.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid artifact ttl %q: %w", s.Artifacts.TTL, err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("invalid artifact ttl %q: must be positive", s.Artifacts.TTL)
	}
	return ttl, nil
}

// RateLimitIdleTTL returns how long an idle client's bucket is kept.
func (s *Settings) RateLimitIdleTTL() (time.Duration, error) {
	if s.RateLimit.IdleTTL == "" {
		return time.ParseDuration(DefaultRateLimitIdle)
	}
	idle, err := time.ParseDuration(s.RateLimit.IdleTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid rate limit idle_ttl %q: %w", s.RateLimit.IdleTTL, err)
	}
	if idle <= 0 {
		return 0, fmt.Errorf("invalid rate limit idle_ttl %q: must be positive", s.RateLimit.IdleTTL)
	}
	return idle, nil
}

// ArtifactsEnabled reports whether issued bundles should be persisted.
func (s *Settings) ArtifactsEnabled() bool {
	return s.Artifacts.InMemory || s.Artifacts.Dir != ""
}

// Validate checks fields that cannot be fixed by falling back to a default.
func (s *Settings) Validate() error {
	if _, err := s.KeyMode(); err != nil {
		return err
	}
	if _, err := s.ArtifactTTL(); err != nil {
		return err
	}
	if _, err := s.RateLimitIdleTTL(); err != nil {
		return err
	}
	if s.RateLimit.Enabled && (s.RateLimit.RPS <= 0 || s.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit requires positive rps and burst, got rps=%v burst=%d", s.RateLimit.RPS, s.RateLimit.Burst)
	}
	return nil
}
