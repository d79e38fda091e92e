package artifacts

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	cerrors "github.com/PolarWolf314/cipherlab/internal/errors"
)

func openTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	store, err := Open(Options{InMemory: true, TTL: ttl})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutGet(t *testing.T) {
	store := openTestStore(t, time.Hour)
	id := NewID()
	blob := []byte("0123456789abcdef0123456789abcdef")

	if err := store.Put(id, blob); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(got, blob) {
		t.Errorf("Expected %x, got %x", blob, got)
	}
}

func TestGetUnknown(t *testing.T) {
	store := openTestStore(t, time.Hour)

	if _, err := store.Get(NewID()); !errors.Is(err, cerrors.ErrArtifactNotFound) {
		t.Errorf("Expected ErrArtifactNotFound, got %v", err)
	}
	if _, err := store.Get("../../etc/passwd"); !errors.Is(err, cerrors.ErrArtifactNotFound) {
		t.Errorf("Expected ErrArtifactNotFound for a malformed id, got %v", err)
	}
}

func TestIDsAreUnique(t *testing.T) {
	store := openTestStore(t, time.Hour)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
		if err := store.Put(id, []byte{byte(i)}); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}
	for id := range seen {
		if _, err := store.Get(id); err != nil {
			t.Errorf("Get(%s) failed: %v", id, err)
		}
	}
}

func TestExpiry(t *testing.T) {
	store := openTestStore(t, time.Second)
	id := NewID()
	if err := store.Put(id, []byte("short lived")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	time.Sleep(2100 * time.Millisecond)

	if _, err := store.Get(id); !errors.Is(err, cerrors.ErrArtifactNotFound) {
		t.Errorf("Expected expired artifact to be gone, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	store := openTestStore(t, time.Hour)
	id := NewID()
	if err := store.Put(id, []byte("x")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(id); !errors.Is(err, cerrors.ErrArtifactNotFound) {
		t.Errorf("Expected ErrArtifactNotFound after delete, got %v", err)
	}
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()
	id := NewID()

	store, err := Open(Options{Dir: dir, TTL: time.Hour})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.Put(id, []byte("persisted")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := Open(Options{Dir: dir, TTL: time.Hour})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(id)
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if string(got) != "persisted" {
		t.Errorf("Expected %q, got %q", "persisted", got)
	}
}

func TestOpenValidation(t *testing.T) {
	if _, err := Open(Options{InMemory: true}); err == nil {
		t.Error("Expected error for zero ttl")
	}
	if _, err := Open(Options{TTL: time.Minute}); !errors.Is(err, cerrors.ErrArtifactStoreDisabled) {
		t.Errorf("Expected ErrArtifactStoreDisabled, got %v", err)
	}
}

func TestCloseStopsBackgroundGC(t *testing.T) {
	store, err := Open(Options{Dir: t.TempDir(), TTL: time.Hour})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.Put(NewID(), []byte("bundle")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	store.StartGC(context.Background(), time.Millisecond)
	store.StartGC(context.Background(), time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	closed := make(chan error, 1)
	go func() { closed <- store.Close() }()

	select {
	case err := <-closed:
		if err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return while GC was running")
	}

	gcDone := make(chan struct{})
	go func() {
		store.gc.Wait()
		close(gcDone)
	}()
	select {
	case <-gcDone:
	case <-time.After(time.Second):
		t.Fatal("GC goroutine still running after Close")
	}
}
