package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvAddr             = "CIPHERLAB_ADDR"
	EnvExcerpts         = "CIPHERLAB_EXCERPTS"
	EnvPasswords        = "CIPHERLAB_PASSWORDS"
	EnvUsername         = "CIPHERLAB_USERNAME"
	EnvKeyMode          = "CIPHERLAB_KEY_MODE"
	EnvArtifactDir      = "CIPHERLAB_ARTIFACT_DIR"
	EnvArtifactInMemory = "CIPHERLAB_ARTIFACT_IN_MEMORY"
	EnvArtifactTTL      = "CIPHERLAB_ARTIFACT_TTL"
	EnvRateLimitEnabled = "CIPHERLAB_RATE_LIMIT_ENABLED"
	EnvRateLimitRPS     = "CIPHERLAB_RATE_LIMIT_RPS"
	EnvRateLimitBurst   = "CIPHERLAB_RATE_LIMIT_BURST"
	EnvRateLimitIdleTTL = "CIPHERLAB_RATE_LIMIT_IDLE_TTL"
	EnvAuditPath        = "CIPHERLAB_AUDIT_LOG"
)

// LoadSettings builds the effective settings.
//
// Defaults are overlaid with the TOML file at configPath (skipped when the
// file does not exist), then with variables from envFile (skipped when
// missing; never overriding variables already set), then with the process
// environment.
func LoadSettings(configPath, envFile string) (*Settings, error) {
	settings := Defaults()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := LoadTOML(configPath, settings); err != nil {
				return nil, fmt.Errorf("failed to load config %s: %w", configPath, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config %s: %w", configPath, err)
		}
	}

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
			}
		}
	}

	applyEnv(settings)

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// SaveSettings writes settings to path as TOML.
func SaveSettings(path string, settings *Settings) error {
	if err := SaveTOML(path, settings); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func applyEnv(s *Settings) {
	s.Server.Addr = envString(EnvAddr, s.Server.Addr)
	s.Corpus.ExcerptsPath = envString(EnvExcerpts, s.Corpus.ExcerptsPath)
	s.Corpus.PasswordsPath = envString(EnvPasswords, s.Corpus.PasswordsPath)
	s.Bundle.Username = envString(EnvUsername, s.Bundle.Username)
	s.Bundle.KeyMode = envString(EnvKeyMode, s.Bundle.KeyMode)
	s.Artifacts.Dir = envString(EnvArtifactDir, s.Artifacts.Dir)
	s.Artifacts.InMemory = envBool(EnvArtifactInMemory, s.Artifacts.InMemory)
	s.Artifacts.TTL = envString(EnvArtifactTTL, s.Artifacts.TTL)
	s.RateLimit.Enabled = envBool(EnvRateLimitEnabled, s.RateLimit.Enabled)
	s.RateLimit.RPS = envFloat(EnvRateLimitRPS, s.RateLimit.RPS)
	s.RateLimit.Burst = envInt(EnvRateLimitBurst, s.RateLimit.Burst)
	s.RateLimit.IdleTTL = envString(EnvRateLimitIdleTTL, s.RateLimit.IdleTTL)
	s.Audit.Path = envString(EnvAuditPath, s.Audit.Path)
}

func envString(key, fallback string) string {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		return raw
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
