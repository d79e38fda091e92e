package workflows

import (
	"context"
	"encoding/hex"

	"github.com/PolarWolf314/cipherlab/internal/audit"
)

// FetchKeyOptions configures the fetch key workflow.
type FetchKeyOptions struct {
	Identity string
}

// FetchKeyResult contains the key handed to a participant.
type FetchKeyResult struct {
	// KeyHex is the lowercase hex of the bundle encryption key.
	KeyHex string
}

// FetchKey returns the key a participant needs to open their bundle.
//
// Returns ErrInvalidIdentity if the identity is not numeric.
func (r *Runner) FetchKey(ctx context.Context, opts FetchKeyOptions) (*FetchKeyResult, error) {
	result, err := r.fetchKey(ctx, opts)
	r.record(audit.OpFetchKey, opts.Identity, audit.Entry{}, err)
	return result, err
}

func (r *Runner) fetchKey(ctx context.Context, opts FetchKeyOptions) (*FetchKeyResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	keys, err := r.keys(opts.Identity)
	if err != nil {
		return nil, err
	}

	return &FetchKeyResult{KeyHex: hex.EncodeToString(keys.Encryption)}, nil
}
