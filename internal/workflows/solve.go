package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/cipherlab/internal/secrets"
)

// OpenBundleOptions configures the open bundle workflow.
type OpenBundleOptions struct {
	Identity string
	Bundle   []byte
}

// OpenBundleResult contains a decrypted bundle.
type OpenBundleResult struct {
	// Credential is the "<username>:<hex sha256>" plaintext.
	Credential string
}

// OpenBundle decrypts a bundle issued to identity. Instructor tooling only;
// the server never exposes it.
func (r *Runner) OpenBundle(ctx context.Context, opts OpenBundleOptions) (*OpenBundleResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	keys, err := r.keys(opts.Identity)
	if err != nil {
		return nil, err
	}

	credential, err := secrets.DecryptBundle(keys.Encryption, opts.Bundle)
	if err != nil {
		return nil, fmt.Errorf("opening bundle: %w", err)
	}
	return &OpenBundleResult{Credential: credential}, nil
}

// SolveOptions configures the solve workflow.
type SolveOptions struct {
	Identity   string
	Ciphertext string
}

// SolveResult contains deciphered text.
type SolveResult struct {
	Plaintext string
	Mapping   secrets.LetterMapping
}

// Solve undoes the identity's substitution cipher on opts.Ciphertext.
// Instructor tooling only.
func (r *Runner) Solve(ctx context.Context, opts SolveOptions) (*SolveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	keys, err := r.keys(opts.Identity)
	if err != nil {
		return nil, err
	}

	mapping := secrets.PermuteAlphabet(keys.Seed)
	return &SolveResult{
		Plaintext: secrets.ReverseCipher(opts.Ciphertext, mapping),
		Mapping:   mapping,
	}, nil
}
