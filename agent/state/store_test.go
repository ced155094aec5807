package state

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Load(ctx, "missing"); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("Load(missing) error = %v, want ErrStateNotFound", err)
	}

	s := NewSession("s-1", time.Now())
	s.Stage = StageAwaitingName
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Mutating the original must not leak into the stored copy.
	s.Stage = StageAwaitingContact

	got, err := store.Load(ctx, "s-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Stage != StageAwaitingName {
		t.Fatalf("loaded stage = %q, want awaiting_name", got.Stage)
	}

	if err := store.Delete(ctx, "s-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Load(ctx, "s-1"); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("Load() after delete error = %v, want ErrStateNotFound", err)
	}
}

func TestMemoryStoreRejectsEmptySessionID(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Load(ctx, "   "); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("Load() error = %v, want ErrInvalidSession", err)
	}
	if err := store.Save(ctx, nil); !errors.Is(err, ErrNilSession) {
		t.Fatalf("Save(nil) error = %v, want ErrNilSession", err)
	}
	if err := store.Save(ctx, &Session{}); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("Save(empty id) error = %v, want ErrInvalidSession", err)
	}
}

func TestMemoryStorePrunesExpiredSessions(t *testing.T) {
	t.Parallel()

	current := time.Now()
	store := NewMemoryStore(
		WithTTL(time.Hour),
		WithClock(func() time.Time { return current }),
	)
	ctx := context.Background()

	s := NewSession("s-old", current)
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	current = current.Add(2 * time.Hour)
	if _, err := store.Load(ctx, "s-old"); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("Load() after TTL error = %v, want ErrStateNotFound", err)
	}
}
