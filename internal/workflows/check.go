package workflows

import (
	"context"
	"crypto/subtle"

	"github.com/PolarWolf314/cipherlab/internal/audit"
	cerrors "github.com/PolarWolf314/cipherlab/internal/errors"
	"github.com/PolarWolf314/cipherlab/internal/secrets"
)

type pickFunc func(secrets.KeySet) (string, error)

// CheckOptions configures the check workflows.
type CheckOptions struct {
	Identity string
	Guess    string
}

// CheckResult reports whether a guess matched.
type CheckResult struct {
	Matched bool
}

// CheckExcerpt reports whether opts.Guess is exactly the identity's
// plaintext excerpt.
//
// Returns ErrInvalidIdentity if the identity is not numeric.
// Returns ErrMissingGuess if the guess is empty.
func (r *Runner) CheckExcerpt(ctx context.Context, opts CheckOptions) (*CheckResult, error) {
	result, err := r.check(ctx, opts, r.pickExcerpt)
	r.record(audit.OpCheckExcerpt, opts.Identity, checkEntry(result), err)
	return result, err
}

// CheckPassword reports whether opts.Guess is exactly the identity's
// selected password.
//
// Returns ErrInvalidIdentity if the identity is not numeric.
// Returns ErrMissingGuess if the guess is empty.
func (r *Runner) CheckPassword(ctx context.Context, opts CheckOptions) (*CheckResult, error) {
	result, err := r.check(ctx, opts, r.pickPassword)
	r.record(audit.OpCheckPassword, opts.Identity, checkEntry(result), err)
	return result, err
}

func (r *Runner) check(ctx context.Context, opts CheckOptions, pick pickFunc) (*CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	keys, err := r.keys(opts.Identity)
	if err != nil {
		return nil, err
	}
	if opts.Guess == "" {
		return nil, cerrors.ErrMissingGuess
	}

	want, err := pick(keys)
	if err != nil {
		return nil, err
	}

	matched := subtle.ConstantTimeCompare([]byte(opts.Guess), []byte(want)) == 1
	return &CheckResult{Matched: matched}, nil
}

func checkEntry(result *CheckResult) audit.Entry {
	if result == nil {
		return audit.Entry{}
	}
	return audit.Entry{Matched: audit.Bool(result.Matched)}
}
