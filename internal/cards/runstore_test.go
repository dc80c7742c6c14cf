package cards

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRunStorePutGet(t *testing.T) {
	store := NewRunStore(15 * time.Minute)
	run := &Run{ID: uuid.New(), PDF: []byte("%PDF"), CSV: []byte("a,b\n"), CardCount: 2}
	store.Put(run)

	got, ok := store.Get(run.ID)
	if !ok {
		t.Fatal("Get() = false, want run present")
	}
	if got.CardCount != 2 {
		t.Errorf("CardCount = %d, want 2", got.CardCount)
	}

	if _, ok := store.Get(uuid.New()); ok {
		t.Error("Get() with unknown ID = true, want false")
	}
}

func TestRunStoreExpiry(t *testing.T) {
	store := NewRunStore(15 * time.Minute)
	current := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	run := &Run{ID: uuid.New()}
	store.Put(run)

	current = current.Add(14 * time.Minute)
	if _, ok := store.Get(run.ID); !ok {
		t.Fatal("run expired before TTL")
	}

	current = current.Add(2 * time.Minute)
	if _, ok := store.Get(run.ID); ok {
		t.Fatal("run still present after TTL")
	}
}
