package errors

import "errors"

// Identity errors indicate the participant token is unusable.
var (
	// ErrInvalidIdentity indicates the identity is missing or not composed entirely of digits.
	ErrInvalidIdentity = errors.New("invalid identity: expected a non-empty numeric id")
)

// Corpus errors indicate problems with the static candidate data.
var (
	// ErrEmptyCandidates indicates a selection was attempted over an empty candidate list.
	// Corpora are static, so callers should not retry.
	ErrEmptyCandidates = errors.New("candidate list is empty")

	// ErrCorpusUnavailable indicates the corpus storage is missing or unreadable.
	// Safe to retry once storage is restored.
	ErrCorpusUnavailable = errors.New("corpus is unavailable")
)

// Cryptographic errors indicate failures while building or opening a credential bundle.
var (
	// ErrInvalidKeyLength indicates the key is not a 16-byte AES-128 key.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrInvalidCiphertext indicates a bundle is too short or not block aligned.
	ErrInvalidCiphertext = errors.New("invalid bundle ciphertext")

	// ErrInvalidPadding indicates the PKCS#7 padding of a decrypted bundle is malformed.
	ErrInvalidPadding = errors.New("invalid PKCS#7 padding")

	// ErrInvalidKeyMode indicates an unknown key derivation mode was configured.
	ErrInvalidKeyMode = errors.New("invalid key mode")
)

// Request errors indicate client input problems at the boundary.
var (
	// ErrMissingGuess indicates a check was requested without a guess.
	ErrMissingGuess = errors.New("a guess is required")

	// ErrRateLimited indicates the client exceeded the allowed request rate.
	ErrRateLimited = errors.New("too many requests")
)

// Artifact errors indicate issues with persisted bundles.
var (
	// ErrArtifactNotFound indicates the artifact id is unknown or has expired.
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrArtifactStoreDisabled indicates persistence was requested but no store is configured.
	ErrArtifactStoreDisabled = errors.New("artifact store is disabled")
)
