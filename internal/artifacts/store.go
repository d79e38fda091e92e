// Package artifacts persists issued credential bundles under unique ids.
//
// Bundles are always returned inline to the caller; the store only exists so
// a participant can download the same bytes again for a limited time. Every
// bundle gets its own uuid key and a TTL, so concurrent requests never share
// an output location.
package artifacts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	cerrors "github.com/PolarWolf314/cipherlab/internal/errors"
)

const keyPrefix = "bundle/"

// Options configures Open.
type Options struct {
	// Dir is the badger directory. Ignored when InMemory is set.
	Dir string

	// InMemory keeps everything in memory; useful for tests and single-node demos.
	InMemory bool

	// TTL is how long a bundle stays downloadable.
	TTL time.Duration
}

// Store is a badger-backed bundle store.
type Store struct {
	db  *badger.DB
	ttl time.Duration

	mu     sync.Mutex
	stopGC context.CancelFunc
	gc     sync.WaitGroup
}

// Open opens (or creates) the store described by opts.
func Open(opts Options) (*Store, error) {
	if opts.TTL <= 0 {
		return nil, fmt.Errorf("artifact ttl must be positive, got %v", opts.TTL)
	}

	var bopts badger.Options
	switch {
	case opts.InMemory:
		bopts = badger.DefaultOptions("").WithInMemory(true)
	case opts.Dir != "":
		bopts = badger.DefaultOptions(opts.Dir)
	default:
		return nil, cerrors.ErrArtifactStoreDisabled
	}
	bopts.Logger = nil

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact store: %w", err)
	}

	return &Store{db: db, ttl: opts.TTL}, nil
}

// NewID returns a fresh artifact id.
func NewID() string {
	return uuid.New().String()
}

// Put stores blob under id until the TTL elapses.
func (s *Store) Put(id string, blob []byte) error {
	key, err := artifactKey(id)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(key, blob).WithTTL(s.ttl))
	})
}

// Get returns the bundle stored under id, or ErrArtifactNotFound when it is
// unknown or has expired.
func (s *Store) Get(id string) ([]byte, error) {
	key, err := artifactKey(id)
	if err != nil {
		return nil, err
	}

	var blob []byte
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", cerrors.ErrArtifactNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", id, err)
	}
	return blob, nil
}

// Delete removes the bundle stored under id. Deleting an unknown id is not an error.
func (s *Store) Delete(id string) error {
	key, err := artifactKey(id)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// TTL returns the lifetime applied to new bundles.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// RunGC reclaims value log space every interval until ctx is done.
func (s *Store) RunGC(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for ctx.Err() == nil && s.db.RunValueLogGC(0.5) == nil {
			}
		}
	}
}

// StartGC runs RunGC in the background. Close stops it and waits for any
// collection in progress before closing the database.
func (s *Store) StartGC(ctx context.Context, interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopGC != nil {
		return
	}
	ctx, s.stopGC = context.WithCancel(ctx)
	s.gc.Add(1)
	go func() {
		defer s.gc.Done()
		s.RunGC(ctx, interval)
	}()
}

// Close stops background GC, then flushes and closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.stopGC != nil {
		s.stopGC()
	}
	s.mu.Unlock()
	s.gc.Wait()

	return s.db.Close()
}

func artifactKey(id string) ([]byte, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", cerrors.ErrArtifactNotFound, id)
	}
	return []byte(keyPrefix + id), nil
}
