package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/cipherlab/internal/artifacts"
	"github.com/PolarWolf314/cipherlab/internal/audit"
	cerrors "github.com/PolarWolf314/cipherlab/internal/errors"
	"github.com/PolarWolf314/cipherlab/internal/secrets"
)

// IssueExcerptOptions configures the issue excerpt workflow.
type IssueExcerptOptions struct {
	Identity string
}

// IssueExcerptResult contains an identity's enciphered excerpt.
type IssueExcerptResult struct {
	// Ciphertext is the excerpt run through the identity's letter mapping.
	Ciphertext string

	// Plaintext is the selected excerpt. Never sent to participants.
	Plaintext string

	// Mapping is the identity's letter mapping.
	Mapping secrets.LetterMapping
}

// IssueExcerpt selects the identity's excerpt and enciphers it.
//
// Returns ErrInvalidIdentity if the identity is not numeric.
// Returns ErrCorpusUnavailable if the corpus cannot be loaded.
// Returns ErrEmptyCandidates if the corpus holds no excerpts.
func (r *Runner) IssueExcerpt(ctx context.Context, opts IssueExcerptOptions) (*IssueExcerptResult, error) {
	result, err := r.issueExcerpt(ctx, opts)
	r.record(audit.OpIssueExcerpt, opts.Identity, audit.Entry{}, err)
	return result, err
}

func (r *Runner) issueExcerpt(ctx context.Context, opts IssueExcerptOptions) (*IssueExcerptResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	keys, err := r.keys(opts.Identity)
	if err != nil {
		return nil, err
	}

	excerpt, err := r.pickExcerpt(keys)
	if err != nil {
		return nil, err
	}

	mapping := secrets.PermuteAlphabet(keys.Seed)
	return &IssueExcerptResult{
		Ciphertext: secrets.ApplyCipher(excerpt, mapping),
		Plaintext:  excerpt,
		Mapping:    mapping,
	}, nil
}

// IssueBundleOptions configures the issue bundle workflow.
type IssueBundleOptions struct {
	Identity string
}

// IssueBundleResult contains a freshly encrypted credential bundle.
type IssueBundleResult struct {
	// ArtifactID uniquely names this bundle.
	ArtifactID string

	// Bundle is IV || AES-128-CBC ciphertext.
	Bundle []byte

	// Persisted reports whether the bundle was saved to the artifact store.
	Persisted bool
}

// IssueBundle selects the identity's password, formats the credential and
// encrypts it under the identity's key. Each call produces new bytes.
//
// Returns ErrInvalidIdentity if the identity is not numeric.
// Returns ErrCorpusUnavailable if the corpus cannot be loaded.
// Returns ErrEmptyCandidates if the corpus holds no passwords.
func (r *Runner) IssueBundle(ctx context.Context, opts IssueBundleOptions) (*IssueBundleResult, error) {
	result, err := r.issueBundle(ctx, opts)
	entry := audit.Entry{}
	if result != nil {
		entry.ArtifactID = result.ArtifactID
	}
	r.record(audit.OpIssueBundle, opts.Identity, entry, err)
	return result, err
}

func (r *Runner) issueBundle(ctx context.Context, opts IssueBundleOptions) (*IssueBundleResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	keys, err := r.keys(opts.Identity)
	if err != nil {
		return nil, err
	}

	password, err := r.pickPassword(keys)
	if err != nil {
		return nil, err
	}

	bundle, err := secrets.EncryptBundle(keys.Encryption, secrets.FormatCredential(r.Username, password))
	if err != nil {
		return nil, fmt.Errorf("encrypting bundle: %w", err)
	}

	result := &IssueBundleResult{
		ArtifactID: artifacts.NewID(),
		Bundle:     bundle,
	}

	if r.Artifacts != nil {
		if err := r.Artifacts.Put(result.ArtifactID, bundle); err != nil {
			return nil, fmt.Errorf("persisting bundle: %w", err)
		}
		result.Persisted = true
	}

	return result, nil
}

// GetArtifact returns a previously persisted bundle.
//
// Returns ErrArtifactStoreDisabled if no store is configured.
// Returns ErrArtifactNotFound if the id is unknown or expired.
func (r *Runner) GetArtifact(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.Artifacts == nil {
		return nil, cerrors.ErrArtifactStoreDisabled
	}
	return r.Artifacts.Get(id)
}

func (r *Runner) pickExcerpt(keys secrets.KeySet) (string, error) {
	c, err := r.Corpus.Load()
	if err != nil {
		return "", err
	}
	excerpt, err := c.PickExcerpt(keys.Seed)
	if err != nil {
		return "", fmt.Errorf("selecting excerpt: %w", err)
	}
	return excerpt, nil
}

func (r *Runner) pickPassword(keys secrets.KeySet) (string, error) {
	c, err := r.Corpus.Load()
	if err != nil {
		return "", err
	}
	password, err := c.PickPassword(keys.Seed)
	if err != nil {
		return "", fmt.Errorf("selecting password: %w", err)
	}
	return password, nil
}
