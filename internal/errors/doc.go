// Package errors provides typed error values for the cipherlab application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. The HTTP
// layer maps each sentinel to a status code and the CLI layer maps each one
// to a user-facing hint.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Identity errors: malformed participant tokens (ErrInvalidIdentity)
//   - Corpus errors: candidate data problems (ErrEmptyCandidates, ErrCorpusUnavailable)
//   - Crypto errors: key and bundle failures (ErrInvalidKeyLength, ErrInvalidPadding)
//   - Request errors: missing input or throttling (ErrMissingGuess, ErrRateLimited)
//   - Artifact errors: persisted bundle lookups (ErrArtifactNotFound)
//
// # Usage
//
// Return errors from internal packages:
//
//	if len(candidates) == 0 {
//	    return zero, errors.ErrEmptyCandidates
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("reading %s: %w", path, errors.ErrCorpusUnavailable)
//
// Handle errors at the boundary:
//
//	if errors.Is(err, cerrors.ErrCorpusUnavailable) {
//	    // transient, safe to retry once storage is back
//	}
package errors
