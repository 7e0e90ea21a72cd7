package session

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStore_GetUnknown(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_PutGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := New("conv-1")
	s.CurrentIntent = "FindNearestStation"
	s.Slots["location"] = "Noida"
	s.History = append(s.History, "hello", "station chahiye")
	s.RetryCount = 1

	if err := store.Put(ctx, s); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, "conv-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.CurrentIntent != s.CurrentIntent || got.RetryCount != 1 {
		t.Errorf("session fields not preserved: %+v", got)
	}
	if got.Slots["location"] != "Noida" {
		t.Errorf("slots not preserved: %+v", got.Slots)
	}
	if len(got.History) != 2 {
		t.Errorf("history not preserved: %+v", got.History)
	}
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := New("conv-1")
	if err := store.Put(ctx, s); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Mutations after Put and after Get must not leak into the store.
	s.Slots["location"] = "Delhi"

	got, err := store.Get(ctx, "conv-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, ok := got.Slots["location"]; ok {
		t.Error("mutation after Put leaked into the store")
	}

	got.Slots["date_range"] = "yesterday"
	again, err := store.Get(ctx, "conv-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, ok := again.Slots["date_range"]; ok {
		t.Error("mutation after Get leaked into the store")
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Put(ctx, New("conv-1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete(ctx, "conv-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "conv-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting an unknown id is not an error.
	if err := store.Delete(ctx, "never-existed"); err != nil {
		t.Fatalf("Delete unknown id: %v", err)
	}
}

func TestSession_RecentHistory(t *testing.T) {
	s := New("conv-1")
	s.History = []string{"one", "two", "three", "four"}

	recent := s.RecentHistory(2)
	if len(recent) != 2 || recent[0] != "three" || recent[1] != "four" {
		t.Errorf("RecentHistory(2) = %v", recent)
	}
	if got := s.RecentHistory(10); len(got) != 4 {
		t.Errorf("RecentHistory(10) = %v", got)
	}
}
