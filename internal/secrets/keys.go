package secrets

import (
	"crypto/sha256"
	"fmt"
	"io"

	cerrors "github.com/PolarWolf314/cipherlab/internal/errors"
	"golang.org/x/crypto/hkdf"
)

// KeySize is the length of a derived key in bytes (AES-128).
const KeySize = 16

// HKDF info labels used by KeyModeSplit.
const (
	seedKeyContext   = "cipherlab:seed:v1"
	bundleKeyContext = "cipherlab:bundle:v1"
)

// KeyMode selects how the selection seed and the bundle key relate to each other.
type KeyMode string

const (
	// KeyModeShared uses the derived key both as PRNG seed and as AES key.
	KeyModeShared KeyMode = "shared"

	// KeyModeSplit derives two independent keys from the derived key with HKDF.
	KeyModeSplit KeyMode = "split"
)

// KeySet holds the keys that drive one identity's artifacts.
type KeySet struct {
	Seed       []byte
	Encryption []byte
}

// ParseKeyMode parses a configured key mode. An empty string means KeyModeShared.
func ParseKeyMode(raw string) (KeyMode, error) {
	switch KeyMode(raw) {
	case "", KeyModeShared:
		return KeyModeShared, nil
	case KeyModeSplit:
		return KeyModeSplit, nil
	default:
		return "", fmt.Errorf("%w: %q", cerrors.ErrInvalidKeyMode, raw)
	}
}

// ValidateIdentity reports ErrInvalidIdentity unless identity is a non-empty
// string of ASCII digits.
func ValidateIdentity(identity string) error {
	if identity == "" {
		return cerrors.ErrInvalidIdentity
	}
	for i := 0; i < len(identity); i++ {
		if identity[i] < '0' || identity[i] > '9' {
			return cerrors.ErrInvalidIdentity
		}
	}
	return nil
}

// DeriveKey returns the first 16 bytes of SHA-256 over the UTF-8 identity.
func DeriveKey(identity string) []byte {
	sum := sha256.Sum256([]byte(identity))
	key := make([]byte, KeySize)
	copy(key, sum[:KeySize])
	return key
}

// DeriveKeySet derives the seed and encryption keys for identity under mode.
// The identity is not validated here; callers run ValidateIdentity first.
func DeriveKeySet(identity string, mode KeyMode) (KeySet, error) {
	base := DeriveKey(identity)

	switch mode {
	case "", KeyModeShared:
		return KeySet{Seed: base, Encryption: base}, nil
	case KeyModeSplit:
		seed, err := expandKey(base, seedKeyContext)
		if err != nil {
			return KeySet{}, err
		}
		enc, err := expandKey(base, bundleKeyContext)
		if err != nil {
			return KeySet{}, err
		}
		return KeySet{Seed: seed, Encryption: enc}, nil
	default:
		return KeySet{}, fmt.Errorf("%w: %q", cerrors.ErrInvalidKeyMode, mode)
	}
}

func expandKey(secret []byte, info string) ([]byte, error) {
	reader := hkdf.New(sha256.New, secret, nil, []byte(info))
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive %s key: %w", info, err)
	}
	return key, nil
}
