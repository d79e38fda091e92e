package workflows

import (
	"github.com/PolarWolf314/cipherlab/internal/audit"
	"github.com/PolarWolf314/cipherlab/internal/corpus"
	logger "github.com/PolarWolf314/cipherlab/internal/logging"
	"github.com/PolarWolf314/cipherlab/internal/secrets"
)

// ArtifactStore persists issued bundles under unique ids.
type ArtifactStore interface {
	Put(id string, blob []byte) error
	Get(id string) ([]byte, error)
}

// Runner carries the dependencies shared by every workflow.
type Runner struct {
	// Corpus supplies excerpt and password candidates.
	Corpus corpus.Source

	// KeyMode selects shared or split keys.
	KeyMode secrets.KeyMode

	// Username is written into credential bundles. Empty means secrets.DefaultUsername.
	Username string

	// Artifacts persists bundles when non-nil.
	Artifacts ArtifactStore

	// Audit records every operation when non-nil.
	Audit *audit.Log
}

// keys validates identity and derives its key set.
func (r *Runner) keys(identity string) (secrets.KeySet, error) {
	if err := secrets.ValidateIdentity(identity); err != nil {
		return secrets.KeySet{}, err
	}
	return secrets.DeriveKeySet(identity, r.KeyMode)
}

func (r *Runner) record(op, identity string, entry audit.Entry, err error) {
	entry.Operation = op
	entry.IdentityFP = logger.Fingerprint(identity)
	if err != nil {
		entry.Error = err.Error()
		entry.Matched = nil
	}
	r.Audit.Record(entry)
}
